package rerank

import (
	"context"
	"strconv"

	"github.com/rushteam/tourrec/core"
	"github.com/rushteam/tourrec/pipeline"
	"github.com/rushteam/tourrec/pkg/utils"
)

// TopNNode 是一个 Top-N 截断节点，保留前 N 个物品并写入最终位置标签（从 1 开始）。
// 通常放在过滤节点之后，保证最终返回数量不超过请求值。
//
// 示例：
//
//	p := &pipeline.Pipeline{
//	    Nodes: []pipeline.Node{
//	        &recommend.HybridNode{Holder: holder, N: 10}, // 多召回一些
//	        &filter.FilterNode{...},                      // 过滤
//	        &rerank.TopNNode{N: 5},                       // 截取 Top 5
//	    },
//	}
type TopNNode struct {
	// N 要保留的物品数量；N <= 0 时使用 RecommendContext.N，二者都 <= 0 则不截断
	N int
}

func (n *TopNNode) Name() string {
	return "rerank.topn"
}

func (n *TopNNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopNNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	limit := n.N
	if limit <= 0 && rctx != nil {
		limit = rctx.N
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	for i, it := range items {
		it.PutLabel(utils.LabelRank, utils.Label{Value: strconv.Itoa(i + 1), Source: "rerank"})
	}
	return items, nil
}
