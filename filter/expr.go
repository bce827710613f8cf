package filter

import (
	"context"

	"github.com/rushteam/tourrec/core"
	"github.com/rushteam/tourrec/pkg/dsl"
)

// ExprFilter 用 CEL 表达式描述过滤规则，表达式为 true 的物品被过滤。
//
// 示例：
//
//	label.origin == "popular" && item.score < 3.5   // 去掉低分热门补足项
//	item.meta.name.contains("Closed")
type ExprFilter struct {
	prg *dsl.Program
}

// NewExprFilter 编译表达式；编译失败返回错误。
func NewExprFilter(expr string) (*ExprFilter, error) {
	prg, err := dsl.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &ExprFilter{prg: prg}, nil
}

func (f *ExprFilter) Name() string {
	return "filter.expr"
}

func (f *ExprFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	return f.prg.Eval(item, rctx)
}
