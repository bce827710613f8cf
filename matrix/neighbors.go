package matrix

import (
	"fmt"
	"math"
	"slices"

	"github.com/rushteam/tourrec/core"
)

// Neighbor 是离线预计算的相似用户及其相似度。
// 相似度通常在 [-1, 1]；符号参与加权，但不参与邻居排序（上游已选好 TopK）。
type Neighbor struct {
	User       core.UserID `json:"user" yaml:"user"`
	Similarity float64     `json:"similarity" yaml:"similarity"`
}

// NeighborList 是 用户 → 有序相似用户列表 的只读映射。
// 不在表中的用户视为没有邻居（空列表），不是错误。
type NeighborList struct {
	m map[core.UserID][]Neighbor
}

// NewNeighborList 拷贝输入并校验相似度为有限数。
func NewNeighborList(src map[core.UserID][]Neighbor) (*NeighborList, error) {
	nl := &NeighborList{m: make(map[core.UserID][]Neighbor, len(src))}
	for u, ns := range src {
		for _, n := range ns {
			if math.IsNaN(n.Similarity) || math.IsInf(n.Similarity, 0) {
				return nil, fmt.Errorf("user %d neighbor %d: %w", u, n.User, core.ErrInvalidSimilarity)
			}
		}
		nl.m[u] = slices.Clone(ns)
	}
	return nl, nil
}

// Of 返回用户的相似用户列表（只读，调用方不得修改）。
func (nl *NeighborList) Of(userID core.UserID) []Neighbor {
	if nl == nil {
		return nil
	}
	return nl.m[userID]
}

// Len 返回拥有邻居列表的用户数。
func (nl *NeighborList) Len() int {
	if nl == nil {
		return 0
	}
	return len(nl.m)
}

// Users 返回拥有邻居列表的用户（升序）。
func (nl *NeighborList) Users() []core.UserID {
	if nl == nil {
		return nil
	}
	out := make([]core.UserID, 0, len(nl.m))
	for u := range nl.m {
		out = append(out, u)
	}
	slices.Sort(out)
	return out
}
