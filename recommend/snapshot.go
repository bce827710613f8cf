package recommend

import (
	"sync/atomic"
	"time"

	"github.com/rushteam/tourrec/matrix"
	"github.com/rushteam/tourrec/recall"
)

// Snapshot 是一份不可变的参考数据快照：评分矩阵、相似用户表、热门榜、景点名称。
// 发布之后任何组件都不得修改它；更新数据时构建新快照并通过 Holder 原子替换。
type Snapshot struct {
	Version  uint64
	LoadedAt time.Time

	Matrix    *matrix.RatingMatrix
	Neighbors *matrix.NeighborList
	Labels    matrix.LabelMap

	// Ranker 持有完整热门榜；Popular 是缓存的前 PopularSize 个，用于冷启动与补足
	Ranker  *recall.PopularityRanker
	Popular recall.PopularityRanking
}

// NewSnapshot 物化快照并计算一次热门榜。popularSize <= 0 表示使用完整榜单。
func NewSnapshot(data *matrix.ReferenceData, popularSize int) *Snapshot {
	ranker := recall.NewPopularityRanker(data.Matrix)
	if popularSize <= 0 {
		popularSize = ranker.Len()
	}
	labels := data.Labels
	if labels == nil {
		labels = matrix.LabelMap{}
	}
	return &Snapshot{
		LoadedAt:  time.Now(),
		Matrix:    data.Matrix,
		Neighbors: data.Neighbors,
		Labels:    labels,
		Ranker:    ranker,
		Popular:   ranker.TopN(popularSize),
	}
}

// Composer 返回绑定到本快照的 Composer。
func (s *Snapshot) Composer() *Composer {
	return &Composer{
		Matrix:  s.Matrix,
		Scorer:  &recall.NeighborScorer{Matrix: s.Matrix, Neighbors: s.Neighbors},
		Popular: s.Popular,
	}
}

// Resolver 返回绑定到本快照的 LabelResolver。
func (s *Snapshot) Resolver() LabelResolver {
	return LabelResolver{Labels: s.Labels}
}

// Holder 持有当前生效的快照；读取无锁，替换为整体原子操作，
// 并发读者永远不会看到部分更新的数据。
type Holder struct {
	cur     atomic.Pointer[Snapshot]
	version atomic.Uint64
}

func NewHolder(s *Snapshot) *Holder {
	h := &Holder{}
	if s != nil {
		h.Swap(s)
	}
	return h
}

// Load 返回当前快照（可能为 nil）。
func (h *Holder) Load() *Snapshot {
	return h.cur.Load()
}

// Swap 发布新快照并返回旧快照。s 在发布前被赋予单调递增的版本号。
func (h *Holder) Swap(s *Snapshot) *Snapshot {
	s.Version = h.version.Add(1)
	return h.cur.Swap(s)
}
