package matrix

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/rushteam/tourrec/core"
)

// StoreAdapter 基于 core.Store 读写参考数据，用于从 Redis 等存储加载离线产物。
//
// Key 约定（KeyPrefix 默认 "tour"）：
//
//	{KeyPrefix}:users              所有已知用户 ID（JSON 数组）
//	{KeyPrefix}:items              物品目录（JSON 数组）
//	{KeyPrefix}:user:{userID}      用户评分行（JSON 对象 itemID → rating）
//	{KeyPrefix}:neighbors:{userID} 相似用户列表（JSON 数组）
//	{KeyPrefix}:labels             景点名称；KeyValueStore 用 Hash，否则为 JSON 对象
type StoreAdapter struct {
	store     core.Store
	KeyPrefix string
}

// NewStoreAdapter 创建一个基于 core.Store 的参考数据适配器。
func NewStoreAdapter(s core.Store, keyPrefix string) *StoreAdapter {
	if keyPrefix == "" {
		keyPrefix = "tour"
	}
	return &StoreAdapter{
		store:     s,
		KeyPrefix: keyPrefix,
	}
}

func (a *StoreAdapter) Name() string {
	return "matrix_store_adapter:" + a.store.Name()
}

func (a *StoreAdapter) usersKey() string  { return a.KeyPrefix + ":users" }
func (a *StoreAdapter) itemsKey() string  { return a.KeyPrefix + ":items" }
func (a *StoreAdapter) labelsKey() string { return a.KeyPrefix + ":labels" }

func (a *StoreAdapter) userKey(userID core.UserID) string {
	return a.KeyPrefix + ":user:" + strconv.FormatInt(userID, 10)
}

func (a *StoreAdapter) neighborsKey(userID core.UserID) string {
	return a.KeyPrefix + ":neighbors:" + strconv.FormatInt(userID, 10)
}

// Save 把参考数据写入 Store。
func (a *StoreAdapter) Save(ctx context.Context, data *ReferenceData) error {
	kvs := make(map[string][]byte)

	users := data.Matrix.Users()
	rows := make(map[core.UserID]map[core.ItemID]float64, len(users))
	for _, u := range users {
		rows[u] = make(map[core.ItemID]float64)
	}
	data.Matrix.Each(func(u core.UserID, i core.ItemID, r float64) {
		rows[u][i] = r
	})
	for u, row := range rows {
		b, err := json.Marshal(row)
		if err != nil {
			return err
		}
		kvs[a.userKey(u)] = b
	}

	neighborUsers := data.Neighbors.Users()
	for _, u := range neighborUsers {
		b, err := json.Marshal(data.Neighbors.Of(u))
		if err != nil {
			return err
		}
		kvs[a.neighborsKey(u)] = b
	}

	// users 列表同时覆盖只有邻居没有评分的用户，Load 时按 key 是否存在区分
	allUsers := users
	for _, u := range neighborUsers {
		if !data.Matrix.HasUser(u) {
			allUsers = append(allUsers, u)
		}
	}
	usersData, err := json.Marshal(allUsers)
	if err != nil {
		return err
	}
	kvs[a.usersKey()] = usersData

	itemsData, err := json.Marshal(data.Matrix.Items())
	if err != nil {
		return err
	}
	kvs[a.itemsKey()] = itemsData

	if err := a.store.BatchSet(ctx, kvs); err != nil {
		return err
	}
	return a.saveLabels(ctx, data.Labels)
}

// saveLabels 整体覆盖景点名称：先删除旧 key，目录中已移除的景点不会残留。
func (a *StoreAdapter) saveLabels(ctx context.Context, labels LabelMap) error {
	if err := a.store.Delete(ctx, a.labelsKey()); err != nil {
		return err
	}
	if kv, ok := a.store.(core.KeyValueStore); ok {
		fields := make(map[string][]byte, len(labels))
		for id, name := range labels {
			fields[strconv.FormatInt(id, 10)] = []byte(name)
		}
		return kv.HMSet(ctx, a.labelsKey(), fields)
	}
	b, err := json.Marshal(labels)
	if err != nil {
		return err
	}
	return a.store.Set(ctx, a.labelsKey(), b)
}

// Load 从 Store 读取并物化参考数据；缺失的 key 视为空。
func (a *StoreAdapter) Load(ctx context.Context) (*ReferenceData, error) {
	var users []core.UserID
	if err := a.getJSON(ctx, a.usersKey(), &users); err != nil {
		return nil, err
	}
	var items []core.ItemID
	if err := a.getJSON(ctx, a.itemsKey(), &items); err != nil {
		return nil, err
	}

	keys := make([]string, 0, 2*len(users))
	for _, u := range users {
		keys = append(keys, a.userKey(u), a.neighborsKey(u))
	}
	vals, err := a.store.BatchGet(ctx, keys)
	if err != nil {
		return nil, err
	}

	b := NewBuilder()
	for _, i := range items {
		b.AddItem(i)
	}
	src := make(map[core.UserID][]Neighbor)
	for _, u := range users {
		if raw, ok := vals[a.userKey(u)]; ok {
			var row map[core.ItemID]float64
			if err := json.Unmarshal(raw, &row); err != nil {
				return nil, err
			}
			b.AddUser(u)
			for i, r := range row {
				if err := b.Set(u, i, r); err != nil {
					return nil, err
				}
			}
		}
		if raw, ok := vals[a.neighborsKey(u)]; ok {
			var ns []Neighbor
			if err := json.Unmarshal(raw, &ns); err != nil {
				return nil, err
			}
			src[u] = ns
		}
	}
	neighbors, err := NewNeighborList(src)
	if err != nil {
		return nil, err
	}

	labels, err := a.loadLabels(ctx)
	if err != nil {
		return nil, err
	}

	return &ReferenceData{
		Matrix:    b.Build(),
		Neighbors: neighbors,
		Labels:    labels,
	}, nil
}

func (a *StoreAdapter) loadLabels(ctx context.Context) (LabelMap, error) {
	if kv, ok := a.store.(core.KeyValueStore); ok {
		fields, err := kv.HGetAll(ctx, a.labelsKey())
		if err != nil {
			if core.IsStoreNotFound(err) {
				return LabelMap{}, nil
			}
			return nil, err
		}
		labels := make(LabelMap, len(fields))
		for f, v := range fields {
			id, err := strconv.ParseInt(f, 10, 64)
			if err != nil || len(v) == 0 {
				continue
			}
			labels[id] = string(v)
		}
		return labels, nil
	}

	var raw map[core.ItemID]string
	if err := a.getJSON(ctx, a.labelsKey(), &raw); err != nil {
		return nil, err
	}
	return NewLabelMap(raw), nil
}

func (a *StoreAdapter) getJSON(ctx context.Context, key string, v any) error {
	data, err := a.store.Get(ctx, key)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil
		}
		return err
	}
	return json.Unmarshal(data, v)
}
