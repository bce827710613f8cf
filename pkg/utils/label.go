package utils

// Label 是推荐链路中的一等公民：可解释、可追踪、可透传。
// Value 与 Source 的语义由业务自定义；这里只提供标准化的合并规则。
type Label struct {
	Value  string `json:"value"`
	Source string `json:"source"` // recall / recommend / filter / rerank ...
}

// 常用 Label key
const (
	LabelProvenance = "provenance" // 推荐来源：popular / cf / hybrid（列表级）
	LabelOrigin     = "origin"     // 单个物品来源：cf / popular（hybrid 列表中区分补足项）
	LabelRank       = "rank"       // 截断后的最终位置
	LabelFiltered   = "filtered"   // 被过滤的原因
	LabelColdStart  = "cold_start" // 用户级：是否冷启动
)

// MergeLabel 用于合并同名 Label，遵循"保留历史、可追踪"的默认策略。
// - Value: 以 '|' 累积
// - Source: 以 ',' 累积
func MergeLabel(existing Label, incoming Label) Label {
	if existing.Value == "" {
		return incoming
	}
	if incoming.Value == "" {
		return existing
	}

	merged := existing
	merged.Value = existing.Value + "|" + incoming.Value
	switch {
	case existing.Source == "":
		merged.Source = incoming.Source
	case incoming.Source == "":
		merged.Source = existing.Source
	default:
		merged.Source = existing.Source + "," + incoming.Source
	}
	return merged
}
