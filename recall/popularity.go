package recall

import (
	"sort"

	"github.com/rushteam/tourrec/core"
	"github.com/rushteam/tourrec/matrix"
)

// PopularityRanking 是按平均评分降序排列的全局热门榜。
type PopularityRanking []core.ScoredItem

// PopularityRanker 是热门召回源：每次矩阵加载时计算一次全局热门榜。
//
// 排序规则：
//   - 分数 = 对该物品评过分的所有用户的平均评分
//   - 平均分降序；平均分相同按物品 ID 升序（稳定排序）
//   - 没有任何评分的目录物品不进入榜单（平均分无定义）
//
// 用途：冷启动用户的直接答案 + hybrid 结果的补足来源。
type PopularityRanker struct {
	ranking PopularityRanking
}

// NewPopularityRanker 基于评分矩阵计算完整热门榜。空矩阵得到空榜单。
func NewPopularityRanker(m *matrix.RatingMatrix) *PopularityRanker {
	sums := make(map[core.ItemID]float64)
	counts := make(map[core.ItemID]int)
	m.Each(func(_ core.UserID, itemID core.ItemID, rating float64) {
		sums[itemID] += rating
		counts[itemID]++
	})

	// 目录本身按 ID 升序，稳定排序后同分物品保持 ID 升序
	ranking := make(PopularityRanking, 0, len(counts))
	for _, itemID := range m.Items() {
		n := counts[itemID]
		if n == 0 {
			continue
		}
		ranking = append(ranking, core.ScoredItem{
			ID:    itemID,
			Score: sums[itemID] / float64(n),
		})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Score > ranking[j].Score
	})

	return &PopularityRanker{ranking: ranking}
}

func (p *PopularityRanker) Name() string {
	return "recall.popular"
}

// TopN 返回前 n 个（目录不足 n 时返回全部，n <= 0 返回空）。返回值为副本。
func (p *PopularityRanker) TopN(n int) PopularityRanking {
	if n <= 0 || p == nil {
		return PopularityRanking{}
	}
	if n > len(p.ranking) {
		n = len(p.ranking)
	}
	out := make(PopularityRanking, n)
	copy(out, p.ranking[:n])
	return out
}

// Ranking 返回完整热门榜（副本）。
func (p *PopularityRanker) Ranking() PopularityRanking {
	if p == nil {
		return PopularityRanking{}
	}
	return p.TopN(len(p.ranking))
}

// Len 返回榜单长度。
func (p *PopularityRanker) Len() int {
	if p == nil {
		return 0
	}
	return len(p.ranking)
}
