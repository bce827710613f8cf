package core

import "github.com/rushteam/tourrec/pkg/utils"

// RecommendContext 承载用户/场景/请求参数，贯穿整个 Pipeline 透传。
type RecommendContext struct {
	UserID UserID
	Scene  string

	// N 是请求的推荐数量；<= 0 时由上层使用默认值
	N int

	// Labels 是用户级标签，可驱动整个 Pipeline 行为
	// 例如：冷启动用户、推荐来源（popular / cf / hybrid）
	Labels map[string]utils.Label

	// Params 请求级上下文参数（例如 region、visit_month）
	Params map[string]any
}

// PutLabel 写入用户级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取用户级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
