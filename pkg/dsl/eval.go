// Package dsl 是基于 CEL (Common Expression Language) 的 Label DSL 解释器。
//
// 表达式语法（CEL 标准语法）：
//   - 标签：label.origin == "cf" / label.provenance != "popular"
//   - 数值：item.score >= 4.0 / item.id == 1024
//   - 逻辑：label.origin == "popular" && item.score < 3.5
//   - 元信息：item.meta.name.contains("Temple")
//   - 请求：rctx.scene == "home" / rctx.params.region == "Asia"
//
// 访问不存在的 key 会报错，需要时先用 has(label.origin) 判断存在性。
package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/tourrec/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvErr  error
	celEnvOnce sync.Once
)

func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("item", cel.DynType),
			cel.Variable("label", cel.DynType),
			cel.Variable("rctx", cel.DynType),
		)
	})
	return celEnv, celEnvErr
}

// Program 是编译后的表达式，可被多个 goroutine 并发求值。
type Program struct {
	expr string
	prg  cel.Program
}

// Compile 编译表达式；返回值类型在 Eval 时校验。
func Compile(expr string) (*Program, error) {
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %w", issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return &Program{expr: expr, prg: prg}, nil
}

// String 返回原始表达式。
func (p *Program) String() string { return p.expr }

// Eval 对单个物品求值。
func (p *Program) Eval(item *core.Item, rctx *core.RecommendContext) (bool, error) {
	out, _, err := p.prg.Eval(buildInput(item, rctx))
	if err != nil {
		return false, fmt.Errorf("eval error: %w", err)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

// Evaluate 编译并执行一次表达式；空表达式视为 true。
func Evaluate(expr string, item *core.Item, rctx *core.RecommendContext) (bool, error) {
	if expr == "" {
		return true, nil
	}
	p, err := Compile(expr)
	if err != nil {
		return false, err
	}
	return p.Eval(item, rctx)
}

func buildInput(item *core.Item, rctx *core.RecommendContext) map[string]any {
	labels := map[string]any{}
	itemMap := map[string]any{
		"id":     int64(0),
		"score":  0.0,
		"meta":   map[string]any{},
		"labels": labels,
	}
	if item != nil {
		for k, v := range item.Labels {
			labels[k] = v.Value
		}
		meta := item.Meta
		if meta == nil {
			meta = map[string]any{}
		}
		itemMap["id"] = item.ID
		itemMap["score"] = item.Score
		itemMap["meta"] = meta
	}

	rctxMap := map[string]any{
		"user_id": int64(0),
		"scene":   "",
		"params":  map[string]any{},
		"labels":  map[string]any{},
	}
	if rctx != nil {
		userLabels := make(map[string]any, len(rctx.Labels))
		for k, v := range rctx.Labels {
			userLabels[k] = v.Value
		}
		params := rctx.Params
		if params == nil {
			params = map[string]any{}
		}
		rctxMap["user_id"] = rctx.UserID
		rctxMap["scene"] = rctx.Scene
		rctxMap["params"] = params
		rctxMap["labels"] = userLabels
	}

	return map[string]any{
		"item":  itemMap,
		"label": labels,
		"rctx":  rctxMap,
	}
}
