package recommend

import (
	"fmt"

	"github.com/rushteam/tourrec/core"
	"github.com/rushteam/tourrec/matrix"
	"github.com/rushteam/tourrec/recall"
)

// Recommendation 是一次请求的推荐结果（请求级对象，不共享）。
//
// 注意：hybrid 列表中 cf 项的分数是预测评分，popular 项的分数是历史平均分，
// 两者不在同一标定尺度上，调用方不应跨来源比较分数。
type Recommendation struct {
	UserID     core.UserID       `json:"user_id"`
	Items      []core.ScoredItem `json:"items"`
	Provenance Provenance        `json:"provenance"`

	// Personalized 是列表前部来自协同过滤的条目数；其余为热门补足
	Personalized int `json:"personalized"`
}

// Composer 编排 冷启动判断 → 协同过滤 → 热门补足。
//
// 状态机（每个请求终止于其一）：
//   - popular：用户不在评分矩阵中，直接返回热门榜前 N
//   - cf：协同过滤结果取前 N，恰好 N 个
//   - hybrid：协同过滤结果不足 N 个（包括 0 个），按热门榜顺序补足，跳过已存在的物品
//
// Composer 不持有可变状态，可被任意多个 goroutine 并发调用。
type Composer struct {
	Matrix  *matrix.RatingMatrix
	Scorer  *recall.NeighborScorer
	Popular recall.PopularityRanking
}

// Recommend 为用户产出最多 n 个推荐。n <= 0 返回 core.ErrInvalidCount。
func (c *Composer) Recommend(userID core.UserID, n int) (*Recommendation, error) {
	if n <= 0 {
		return nil, fmt.Errorf("recommend user %d n=%d: %w", userID, n, core.ErrInvalidCount)
	}

	if !c.Matrix.HasUser(userID) {
		items := make([]core.ScoredItem, min(n, len(c.Popular)))
		copy(items, c.Popular)
		return &Recommendation{
			UserID:     userID,
			Items:      items,
			Provenance: ProvenancePopular,
		}, nil
	}

	ranked, err := c.Scorer.Ranked(userID)
	if err != nil {
		return nil, err
	}
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	rec := &Recommendation{
		UserID:       userID,
		Items:        ranked,
		Provenance:   ProvenanceCF,
		Personalized: len(ranked),
	}
	if len(ranked) == n {
		return rec, nil
	}

	rec.Items = fillFromPopular(ranked, c.Popular, n)
	rec.Provenance = ProvenanceHybrid
	return rec, nil
}

// fillFromPopular 按热门榜顺序补足到 n 个，跳过已出现的物品；热门榜耗尽时提前结束。
func fillFromPopular(base []core.ScoredItem, popular recall.PopularityRanking, n int) []core.ScoredItem {
	seen := make(map[core.ItemID]struct{}, len(base))
	out := make([]core.ScoredItem, 0, n)
	for _, it := range base {
		seen[it.ID] = struct{}{}
		out = append(out, it)
	}
	for _, it := range popular {
		if len(out) >= n {
			break
		}
		if _, ok := seen[it.ID]; ok {
			continue
		}
		seen[it.ID] = struct{}{}
		out = append(out, it)
	}
	return out
}
