package config

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rushteam/tourrec/pipeline"
)

// 使用配置驱动时，需在 main 或入口处 import _ "github.com/rushteam/tourrec/config/builders"
// 以触发内置 Node（filter、rerank.topn）的 init 注册。
// recommend.hybrid 依赖运行时的快照，由入口调用 Register("recommend.hybrid", recommend.NodeBuilder(holder)) 注册。

// NodeBuilder 与 pipeline.NodeBuilder 一致：根据 config 构建 Node。
type NodeBuilder = pipeline.NodeBuilder

var (
	defaultBuilders   = make(map[string]NodeBuilder)
	defaultBuildersMu sync.RWMutex
)

// Register 注册一种 Node 的构建逻辑，供 DefaultFactory 与配置驱动使用。
func Register(typeName string, builder NodeBuilder) {
	if typeName == "" || builder == nil {
		return
	}
	defaultBuildersMu.Lock()
	defer defaultBuildersMu.Unlock()
	defaultBuilders[typeName] = builder
}

// SupportedTypes 返回当前已注册的 Node 类型列表（排序），用于错误提示与校验。
func SupportedTypes() []string {
	defaultBuildersMu.RLock()
	defer defaultBuildersMu.RUnlock()
	types := make([]string, 0, len(defaultBuilders))
	for t := range defaultBuilders {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// DefaultFactory 返回基于当前注册表构建的 NodeFactory。
func DefaultFactory() *pipeline.NodeFactory {
	defaultBuildersMu.RLock()
	defer defaultBuildersMu.RUnlock()
	f := pipeline.NewNodeFactory()
	for typeName, builder := range defaultBuilders {
		f.Register(typeName, builder)
	}
	return f
}

// ValidatePipelineConfig 校验 pipeline 配置中所有 node 类型均已注册。
func ValidatePipelineConfig(cfg *pipeline.Config) error {
	if cfg == nil {
		return nil
	}
	defaultBuildersMu.RLock()
	defer defaultBuildersMu.RUnlock()
	for _, nc := range cfg.Pipeline.Nodes {
		if nc.Type == "" {
			continue
		}
		if _, ok := defaultBuilders[nc.Type]; !ok {
			types := make([]string, 0, len(defaultBuilders))
			for t := range defaultBuilders {
				types = append(types, t)
			}
			sort.Strings(types)
			return fmt.Errorf("unsupported node type %q (supported: %v)", nc.Type, types)
		}
	}
	return nil
}
