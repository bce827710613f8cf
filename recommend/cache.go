package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/allegro/bigcache/v3"

	"github.com/rushteam/tourrec/core"
)

// ResultCache 是基于 bigcache 的本地结果缓存。
//
// 推荐结果对同一快照是确定的，key 中带快照版本号：
// 快照替换后旧 key 自然失效，不需要主动清理。
type ResultCache struct {
	cache *bigcache.BigCache
}

// NewResultCache 创建结果缓存。ttl 为全局过期时间，maxMB 为内存上限。
func NewResultCache(ctx context.Context, ttl time.Duration, maxMB int) (*ResultCache, error) {
	cfg := bigcache.DefaultConfig(ttl)
	cfg.HardMaxCacheSize = maxMB
	cfg.CleanWindow = time.Minute
	cfg.Verbose = false

	c, err := bigcache.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("init bigcache: %w", err)
	}
	return &ResultCache{cache: c}, nil
}

func cacheKey(version uint64, userID core.UserID, n int) string {
	return fmt.Sprintf("v%d:u%d:n%d", version, userID, n)
}

// Get 读取缓存；未命中返回 (nil, false)。
func (c *ResultCache) Get(version uint64, userID core.UserID, n int) (*Result, bool) {
	data, err := c.cache.Get(cacheKey(version, userID, n))
	if err != nil {
		return nil, false
	}
	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, false
	}
	return &res, true
}

// Set 写入缓存。
func (c *ResultCache) Set(res *Result, n int) error {
	data, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return c.cache.Set(cacheKey(res.Version, res.UserID, n), data)
}

// Len 返回缓存条目数。
func (c *ResultCache) Len() int {
	return c.cache.Len()
}

// Close 释放缓存资源。
func (c *ResultCache) Close() error {
	return c.cache.Close()
}
