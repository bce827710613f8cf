package recommend

import (
	"strconv"

	"github.com/rushteam/tourrec/core"
	"github.com/rushteam/tourrec/matrix"
)

// LabeledItem 是展示层使用的结果：景点名称 + 分数。
type LabeledItem struct {
	ID    core.ItemID `json:"id"`
	Name  string      `json:"name"`
	Score float64     `json:"score"`
}

// LabelResolver 把景点 ID 映射为展示名称；缺失时回退为 ID 字符串。纯函数，无失败路径。
type LabelResolver struct {
	Labels matrix.LabelMap
}

// Name 返回景点展示名称。
func (r LabelResolver) Name(itemID core.ItemID) string {
	if name, ok := r.Labels.Name(itemID); ok {
		return name
	}
	return strconv.FormatInt(itemID, 10)
}

// Resolve 按原顺序解析推荐列表。
func (r LabelResolver) Resolve(rec *Recommendation) []LabeledItem {
	if rec == nil {
		return []LabeledItem{}
	}
	out := make([]LabeledItem, len(rec.Items))
	for i, it := range rec.Items {
		out[i] = LabeledItem{ID: it.ID, Name: r.Name(it.ID), Score: it.Score}
	}
	return out
}
