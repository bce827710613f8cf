package recall

import (
	"fmt"
	"math"
	"sort"

	"github.com/rushteam/tourrec/core"
	"github.com/rushteam/tourrec/matrix"
)

// NeighborScorer 是基于用户的协同过滤打分器（u2i），相似用户由离线预计算给出。
//
// 对目标用户每个未评分物品 i：
//
//	score(i) = Σ sim(u,v)·r(v,i) / Σ |sim(u,v)|    （v 为对 i 评过分的相似用户）
//
// 分母为 0（没有相似用户评过 i，或用户没有相似用户）时，i 不出现在结果中，
// 不会被赋予 0 或其他默认分。这里不做任何兜底，兜底由 recommend.Composer 负责。
type NeighborScorer struct {
	Matrix    *matrix.RatingMatrix
	Neighbors *matrix.NeighborList
}

func (s *NeighborScorer) Name() string {
	return "recall.u2i"
}

// Score 返回目标用户所有可预测的未评分物品的预测分。
// 用户不在评分矩阵中属于调用方错误，返回 core.ErrUserNotFound。
func (s *NeighborScorer) Score(userID core.UserID) (map[core.ItemID]float64, error) {
	if !s.Matrix.HasUser(userID) {
		return nil, fmt.Errorf("score user %d: %w", userID, core.ErrUserNotFound)
	}

	scores := make(map[core.ItemID]float64)
	neighbors := s.Neighbors.Of(userID)
	if len(neighbors) == 0 {
		return scores, nil
	}

	for _, itemID := range s.Matrix.Items() {
		if s.Matrix.HasRated(userID, itemID) {
			continue
		}
		var weightedSum, massSum float64
		for _, nb := range neighbors {
			rating, ok := s.Matrix.Rating(nb.User, itemID)
			if !ok {
				continue
			}
			weightedSum += nb.Similarity * rating
			massSum += math.Abs(nb.Similarity)
		}
		if massSum > 0 {
			scores[itemID] = weightedSum / massSum
		}
	}
	return scores, nil
}

// Ranked 返回按预测分降序（同分按物品 ID 升序）排列的打分结果。
func (s *NeighborScorer) Ranked(userID core.UserID) ([]core.ScoredItem, error) {
	scores, err := s.Score(userID)
	if err != nil {
		return nil, err
	}
	out := make([]core.ScoredItem, 0, len(scores))
	for id, score := range scores {
		out = append(out, core.ScoredItem{ID: id, Score: score})
	}
	SortByScore(out)
	return out, nil
}

// SortByScore 原地排序：分数降序，同分按 ID 升序，结果与输入顺序无关。
func SortByScore(items []core.ScoredItem) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return items[i].ID < items[j].ID
	})
}
