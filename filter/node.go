package filter

import (
	"context"

	"github.com/rushteam/tourrec/core"
	"github.com/rushteam/tourrec/pipeline"
	"github.com/rushteam/tourrec/pkg/utils"
)

// FilterNode 是过滤 Node，可以组合多个过滤器进行过滤。
// 如果任何一个过滤器返回 true，该物品就会被过滤掉；保留项维持原有顺序。
type FilterNode struct {
	Filters []Filter

	// Dropped 记录被过滤的物品（带 filtered 标签），便于 explain；nil 表示不记录
	Dropped func(item *core.Item)
}

func (n *FilterNode) Name() string {
	return "filter.node"
}

func (n *FilterNode) Kind() pipeline.Kind {
	return pipeline.KindFilter
}

func (n *FilterNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(n.Filters) == 0 || len(items) == 0 {
		return items, nil
	}

	out := make([]*core.Item, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}

		reason := ""
		for _, f := range n.Filters {
			ok, err := f.ShouldFilter(ctx, rctx, item)
			if err != nil {
				// 过滤器错误时不中断流程，视为保留
				continue
			}
			if ok {
				reason = f.Name()
				break
			}
		}

		if reason != "" {
			item.PutLabel(utils.LabelFiltered, utils.Label{Value: "true", Source: reason})
			if n.Dropped != nil {
				n.Dropped(item)
			}
			continue
		}
		out = append(out, item)
	}

	return out, nil
}
