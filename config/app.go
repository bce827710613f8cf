package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/rushteam/tourrec/core"
	"github.com/rushteam/tourrec/pipeline"
	"github.com/rushteam/tourrec/pkg/logging"
)

// AppConfig 是服务级配置（YAML）。
//
//	recommend:
//	  top_n: 5
//	  popular_size: 10
//	data:
//	  file: ./data/attractions.yaml
//	log:
//	  level: info
//	cache:
//	  enabled: true
//	  ttl: 10m
//	  max_mb: 64
//	pipeline:
//	  name: attraction_feed
//	  nodes: [...]
type AppConfig struct {
	Recommend RecommendConfig `yaml:"recommend"`
	Data      DataConfig      `yaml:"data"`
	Log       logging.Config  `yaml:"log"`
	Cache     CacheConfig     `yaml:"cache"`

	pipeline.Config `yaml:",inline"`
}

// RecommendConfig 是推荐引擎参数。
type RecommendConfig struct {
	TopN             int `yaml:"top_n" validate:"gte=0"`
	PopularSize      int `yaml:"popular_size" validate:"gte=-1"` // 0 使用默认值 10，-1 表示完整热门榜
	BatchConcurrency int `yaml:"batch_concurrency" validate:"gte=0"`
}

// DataConfig 描述参考数据来源：文件或 Redis，至少配置一个；同时配置时优先 Redis。
type DataConfig struct {
	File      string      `yaml:"file"`
	KeyPrefix string      `yaml:"key_prefix"`
	Redis     RedisConfig `yaml:"redis"`
}

// RedisConfig 定义 Redis 连接参数。
type RedisConfig struct {
	Addr     string `yaml:"addr" validate:"omitempty,hostname_port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db" validate:"gte=0"`
	PoolSize int    `yaml:"pool_size" validate:"gte=0"`
}

// CacheConfig 定义结果缓存参数。
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"`
	MaxMB   int           `yaml:"max_mb" validate:"gte=0"`
}

// ErrNoDataSource 表示既没有配置数据文件也没有配置 Redis。
var ErrNoDataSource = errors.New("config: data.file or data.redis.addr is required")

var validate = validator.New()

// LoadAppConfig 从 YAML 文件加载并校验配置。
func LoadAppConfig(path string) (*AppConfig, error) {
	cfg, err := ReadAppConfig(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ReadAppConfig 读取 YAML 文件并填充默认值，不做校验；
// 适用于入口需要先用命令行参数覆盖部分字段的场景。
func ReadAppConfig(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return decodeAppConfig(data)
}

// ParseAppConfig 解析 YAML 字节，填充默认值并校验。
func ParseAppConfig(data []byte) (*AppConfig, error) {
	cfg, err := decodeAppConfig(data)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeAppConfig(data []byte) (*AppConfig, error) {
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults 为未配置的字段填充默认值。
func (c *AppConfig) ApplyDefaults() {
	defaults := &core.DefaultRecommendConfig{}
	if c.Recommend.TopN == 0 {
		c.Recommend.TopN = defaults.DefaultTopN()
	}
	if c.Recommend.PopularSize == 0 {
		c.Recommend.PopularSize = defaults.DefaultPopularSize()
	}
	if c.Recommend.BatchConcurrency == 0 {
		c.Recommend.BatchConcurrency = defaults.DefaultBatchConcurrency()
	}
	if c.Data.KeyPrefix == "" {
		c.Data.KeyPrefix = "tour"
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = 10 * time.Minute
	}
	if c.Cache.MaxMB == 0 {
		c.Cache.MaxMB = 64
	}
	if c.Log.Service == "" {
		c.Log.Service = "tourrec"
	}
}

// Validate 校验字段约束与数据来源。
func (c *AppConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if c.Data.File == "" && c.Data.Redis.Addr == "" {
		return ErrNoDataSource
	}
	return nil
}
