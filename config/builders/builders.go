package builders

import (
	"fmt"

	"github.com/rushteam/tourrec/config"
	"github.com/rushteam/tourrec/filter"
	"github.com/rushteam/tourrec/pipeline"
	"github.com/rushteam/tourrec/pkg/conv"
	"github.com/rushteam/tourrec/rerank"
)

func init() {
	config.Register("filter", BuildFilterNode)
	config.Register("rerank.topn", BuildTopNNode)
}

func BuildTopNNode(cfg map[string]any) (pipeline.Node, error) {
	return &rerank.TopNNode{N: int(conv.ConfigGetInt64(cfg, "n", 0))}, nil
}

func BuildFilterNode(cfg map[string]any) (pipeline.Node, error) {
	filtersConfig, ok := cfg["filters"].([]any)
	if !ok {
		return nil, fmt.Errorf("filters not found or invalid")
	}
	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, fc := range filtersConfig {
		filterMap, ok := fc.(map[string]any)
		if !ok {
			continue
		}
		filterType := conv.ConfigGet(filterMap, "type", "")
		switch filterType {
		case "blacklist":
			ids := conv.SliceAnyToInt64(filterMap["item_ids"])
			filters = append(filters, filter.NewBlacklistFilter(ids, nil, ""))
		case "expr":
			expr := conv.ConfigGet(filterMap, "expr", "")
			if expr == "" {
				return nil, fmt.Errorf("expr filter: expr is empty")
			}
			f, err := filter.NewExprFilter(expr)
			if err != nil {
				return nil, fmt.Errorf("expr filter: %w", err)
			}
			filters = append(filters, f)
		default:
			return nil, fmt.Errorf("unknown filter type: %s", filterType)
		}
	}
	return &filter.FilterNode{Filters: filters}, nil
}
