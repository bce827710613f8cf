package matrix

import "github.com/rushteam/tourrec/core"

// LabelMap 是 景点 ID → 展示名称 的只读字典。
// 空名称在构建时即被丢弃，因此"没有名称"与"ID 不在字典中"是同一种状态，
// 文件、Store 等任何来源加载的结果一致。
type LabelMap map[core.ItemID]string

// NewLabelMap 拷贝输入并丢弃空名称，避免调用方之后的修改影响快照。
func NewLabelMap(src map[core.ItemID]string) LabelMap {
	out := make(LabelMap, len(src))
	for id, name := range src {
		if name != "" {
			out[id] = name
		}
	}
	return out
}

// Name 返回景点名称；ID 不在字典中时返回 false。
func (l LabelMap) Name(itemID core.ItemID) (string, bool) {
	name, ok := l[itemID]
	return name, ok
}

// ReferenceData 是一次加载得到的全部参考数据。
type ReferenceData struct {
	Matrix    *RatingMatrix
	Neighbors *NeighborList
	Labels    LabelMap
}
