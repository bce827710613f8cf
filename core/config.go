package core

// RecommendConfig 是推荐相关的配置接口，用于提供默认值。
type RecommendConfig interface {
	// DefaultTopN 返回默认推荐数量
	DefaultTopN() int

	// DefaultPopularSize 返回缓存的热门榜长度（冷启动与补足都从这里取）
	DefaultPopularSize() int

	// DefaultBatchConcurrency 返回批量推荐的默认并发度
	DefaultBatchConcurrency() int
}

// DefaultRecommendConfig 是默认的推荐配置实现。
type DefaultRecommendConfig struct{}

func (c *DefaultRecommendConfig) DefaultTopN() int {
	return 5
}

func (c *DefaultRecommendConfig) DefaultPopularSize() int {
	return 10
}

func (c *DefaultRecommendConfig) DefaultBatchConcurrency() int {
	return 8
}
