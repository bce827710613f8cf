// Package matrix 提供推荐引擎的只读参考数据：稀疏评分矩阵、相似用户表与景点名称。
//
// 所有结构构建完成后不可变，可在多个请求之间无锁共享；
// 需要更新时整体重建，再由上层做原子替换。
package matrix

import (
	"fmt"
	"math"
	"slices"

	"github.com/rushteam/tourrec/core"
)

// RatingMatrix 是稀疏的 用户 × 物品 评分矩阵（map of maps）。
//
//   - 行：用户；列：物品；缺失即"未评分"
//   - 用户行可以为空：用户已知但没有任何评分（不属于冷启动）
//   - 物品目录 = 所有出现过的物品 + 显式声明的物品，按 ID 升序
type RatingMatrix struct {
	rows  map[core.UserID]map[core.ItemID]float64
	users []core.UserID // 升序
	items []core.ItemID // 升序
	count int
}

// HasUser 判断用户是否为矩阵中的一行。
func (m *RatingMatrix) HasUser(userID core.UserID) bool {
	if m == nil {
		return false
	}
	_, ok := m.rows[userID]
	return ok
}

// Rating 返回 (userID, itemID) 的评分；未评分返回 false。
func (m *RatingMatrix) Rating(userID core.UserID, itemID core.ItemID) (float64, bool) {
	if m == nil {
		return 0, false
	}
	row, ok := m.rows[userID]
	if !ok {
		return 0, false
	}
	r, ok := row[itemID]
	return r, ok
}

// HasRated 判断用户是否对物品评过分。
func (m *RatingMatrix) HasRated(userID core.UserID, itemID core.ItemID) bool {
	_, ok := m.Rating(userID, itemID)
	return ok
}

// RatedCount 返回用户已评分的物品数。
func (m *RatingMatrix) RatedCount(userID core.UserID) int {
	if m == nil {
		return 0
	}
	return len(m.rows[userID])
}

// Users 返回所有用户 ID（升序，副本）。
func (m *RatingMatrix) Users() []core.UserID {
	if m == nil {
		return nil
	}
	return slices.Clone(m.users)
}

// Items 返回物品目录（升序，副本）。
func (m *RatingMatrix) Items() []core.ItemID {
	if m == nil {
		return nil
	}
	return slices.Clone(m.items)
}

func (m *RatingMatrix) NumUsers() int {
	if m == nil {
		return 0
	}
	return len(m.users)
}

func (m *RatingMatrix) NumItems() int {
	if m == nil {
		return 0
	}
	return len(m.items)
}

// NumRatings 返回非空评分条数。
func (m *RatingMatrix) NumRatings() int {
	if m == nil {
		return 0
	}
	return m.count
}

// Each 以确定的顺序（用户升序、行内物品升序）遍历所有评分。
// 浮点累加与顺序相关，固定顺序保证多次加载结果逐位一致。
func (m *RatingMatrix) Each(fn func(userID core.UserID, itemID core.ItemID, rating float64)) {
	if m == nil {
		return
	}
	for _, u := range m.users {
		row := m.rows[u]
		keys := make([]core.ItemID, 0, len(row))
		for i := range row {
			keys = append(keys, i)
		}
		slices.Sort(keys)
		for _, i := range keys {
			fn(u, i, row[i])
		}
	}
}

// Builder 用于构建 RatingMatrix；Build 之后 Builder 可以继续复用，产物互不影响。
type Builder struct {
	rows  map[core.UserID]map[core.ItemID]float64
	items map[core.ItemID]struct{}
}

func NewBuilder() *Builder {
	return &Builder{
		rows:  make(map[core.UserID]map[core.ItemID]float64),
		items: make(map[core.ItemID]struct{}),
	}
}

// Set 写入一条评分；同一 (user, item) 重复写入时后者覆盖前者。
func (b *Builder) Set(userID core.UserID, itemID core.ItemID, rating float64) error {
	if math.IsNaN(rating) || math.IsInf(rating, 0) {
		return fmt.Errorf("user %d item %d: %w", userID, itemID, core.ErrInvalidRating)
	}
	row, ok := b.rows[userID]
	if !ok {
		row = make(map[core.ItemID]float64)
		b.rows[userID] = row
	}
	row[itemID] = rating
	b.items[itemID] = struct{}{}
	return nil
}

// AddUser 声明一个已知用户（可以没有任何评分）。
func (b *Builder) AddUser(userID core.UserID) {
	if _, ok := b.rows[userID]; !ok {
		b.rows[userID] = make(map[core.ItemID]float64)
	}
}

// AddItem 声明目录中的物品（可以没有任何评分）。
func (b *Builder) AddItem(itemID core.ItemID) {
	b.items[itemID] = struct{}{}
}

// Build 产出不可变的 RatingMatrix（深拷贝）。
func (b *Builder) Build() *RatingMatrix {
	m := &RatingMatrix{
		rows:  make(map[core.UserID]map[core.ItemID]float64, len(b.rows)),
		users: make([]core.UserID, 0, len(b.rows)),
		items: make([]core.ItemID, 0, len(b.items)),
	}
	for u, row := range b.rows {
		cp := make(map[core.ItemID]float64, len(row))
		for i, r := range row {
			cp[i] = r
		}
		m.rows[u] = cp
		m.users = append(m.users, u)
		m.count += len(cp)
	}
	for i := range b.items {
		m.items = append(m.items, i)
	}
	slices.Sort(m.users)
	slices.Sort(m.items)
	return m
}
