package recommend

import (
	"context"
	"fmt"

	"github.com/rushteam/tourrec/core"
	"github.com/rushteam/tourrec/pipeline"
	"github.com/rushteam/tourrec/pkg/conv"
	"github.com/rushteam/tourrec/pkg/utils"
)

// HybridNode 把 Composer 接入 Pipeline：作为召回阶段产出带来源标签的候选，
// 后续可以接 filter / rerank 节点。
//
// 标签：
//   - 用户级 provenance：popular / cf / hybrid；cold_start：true / false
//   - 物品级 provenance 同上；origin：cf（协同过滤项）/ popular（热门项）
type HybridNode struct {
	Holder *Holder

	// N 是默认推荐数量；RecommendContext.N > 0 时优先使用请求值
	N int
}

func (n *HybridNode) Name() string        { return "recommend.hybrid" }
func (n *HybridNode) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *HybridNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	if rctx == nil {
		return nil, nil
	}
	count := rctx.N
	if count <= 0 {
		count = n.N
	}
	if count <= 0 {
		count = (&core.DefaultRecommendConfig{}).DefaultTopN()
	}

	snap := n.Holder.Load()
	if snap == nil {
		return nil, fmt.Errorf("%s user %d: %w", n.Name(), rctx.UserID, core.ErrSnapshotUnavailable)
	}
	rec, err := snap.Composer().Recommend(rctx.UserID, count)
	if err != nil {
		return nil, err
	}

	coldStart := "false"
	if rec.Provenance == ProvenancePopular {
		coldStart = "true"
	}
	rctx.PutLabel(utils.LabelProvenance, utils.Label{Value: rec.Provenance.String(), Source: "recommend"})
	rctx.PutLabel(utils.LabelColdStart, utils.Label{Value: coldStart, Source: "recommend"})

	out := make([]*core.Item, 0, len(rec.Items))
	for i, s := range rec.Items {
		it := core.NewScoredItem(s)
		origin := "popular"
		if i < rec.Personalized {
			origin = "cf"
		}
		it.PutLabel(utils.LabelProvenance, utils.Label{Value: rec.Provenance.String(), Source: "recommend"})
		it.PutLabel(utils.LabelOrigin, utils.Label{Value: origin, Source: "recall"})
		it.Meta["name"] = snap.Resolver().Name(s.ID)
		out = append(out, it)
	}
	return out, nil
}

// NodeBuilder 返回绑定到 holder 的 recommend.hybrid 构建器，供 config.Register 使用。
func NodeBuilder(holder *Holder) pipeline.NodeBuilder {
	return func(cfg map[string]any) (pipeline.Node, error) {
		return &HybridNode{
			Holder: holder,
			N:      int(conv.ConfigGetInt64(cfg, "n", 0)),
		}, nil
	}
}
