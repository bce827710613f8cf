package core

import "github.com/rushteam/tourrec/pkg/utils"

// UserID / ItemID 与上游数据保持一致，均为数值 ID（景点 ID、游客 ID）。
type (
	UserID = int64
	ItemID = int64
)

// ScoredItem 是引擎内部的最小结果单元：物品 ID + 分数。
// 分数语义由来源决定：cf 为预测评分，popular 为历史平均分。
type ScoredItem struct {
	ID    ItemID  `json:"id"`
	Score float64 `json:"score"`
}

// Item 是 Pipeline 中的统一承载结构：分数、元信息、标签。
// Labels 用于解释与策略驱动；Score 用于排序决策。
type Item struct {
	ID     ItemID
	Score  float64
	Meta   map[string]any
	Labels map[string]utils.Label
}

func NewItem(id ItemID) *Item {
	return &Item{
		ID:     id,
		Meta:   make(map[string]any),
		Labels: make(map[string]utils.Label),
	}
}

// NewScoredItem 从 ScoredItem 构造 Pipeline Item。
func NewScoredItem(s ScoredItem) *Item {
	it := NewItem(s.ID)
	it.Score = s.Score
	return it
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// Scored 返回去掉标签与元信息后的 ScoredItem。
func (it *Item) Scored() ScoredItem {
	return ScoredItem{ID: it.ID, Score: it.Score}
}
