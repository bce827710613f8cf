package config

import (
	"errors"
	"testing"
	"time"

	"github.com/rushteam/tourrec/pipeline"
)

func TestParseAppConfig(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
		check   func(t *testing.T, cfg *AppConfig)
	}{
		{
			name: "defaults applied",
			yaml: `
data:
  file: ./attractions.yaml
`,
			check: func(t *testing.T, cfg *AppConfig) {
				if cfg.Recommend.TopN != 5 || cfg.Recommend.PopularSize != 10 || cfg.Recommend.BatchConcurrency != 8 {
					t.Errorf("Recommend = %+v", cfg.Recommend)
				}
				if cfg.Data.KeyPrefix != "tour" || cfg.Cache.TTL != 10*time.Minute || cfg.Cache.MaxMB != 64 {
					t.Errorf("Data/Cache defaults = %+v / %+v", cfg.Data, cfg.Cache)
				}
				if cfg.Log.Service != "tourrec" {
					t.Errorf("Log.Service = %q", cfg.Log.Service)
				}
			},
		},
		{
			name: "full config",
			yaml: `
recommend:
  top_n: 3
  popular_size: 20
data:
  redis:
    addr: localhost:6379
  key_prefix: bali
log:
  level: debug
  format: text
cache:
  enabled: true
  ttl: 30s
pipeline:
  name: attraction_feed
  nodes:
    - type: recommend.hybrid
      config: {n: 10}
    - type: rerank.topn
      config: {n: 3}
`,
			check: func(t *testing.T, cfg *AppConfig) {
				if cfg.Recommend.TopN != 3 || cfg.Recommend.PopularSize != 20 {
					t.Errorf("Recommend = %+v", cfg.Recommend)
				}
				if cfg.Data.Redis.Addr != "localhost:6379" || cfg.Data.KeyPrefix != "bali" {
					t.Errorf("Data = %+v", cfg.Data)
				}
				if !cfg.Cache.Enabled || cfg.Cache.TTL != 30*time.Second {
					t.Errorf("Cache = %+v", cfg.Cache)
				}
				if cfg.Pipeline.Name != "attraction_feed" || len(cfg.Pipeline.Nodes) != 2 {
					t.Errorf("Pipeline = %+v", cfg.Pipeline)
				}
			},
		},
		{
			name:    "missing data source",
			yaml:    `recommend: {top_n: 3}`,
			wantErr: true,
		},
		{
			name: "invalid log level",
			yaml: `
data: {file: a.yaml}
log: {level: verbose}
`,
			wantErr: true,
		},
		{
			name: "negative top_n",
			yaml: `
data: {file: a.yaml}
recommend: {top_n: -1}
`,
			wantErr: true,
		},
		{
			name: "full popular ranking",
			yaml: `
data: {file: a.yaml}
recommend: {popular_size: -1}
`,
			check: func(t *testing.T, cfg *AppConfig) {
				if cfg.Recommend.PopularSize != -1 {
					t.Errorf("PopularSize = %d, want -1", cfg.Recommend.PopularSize)
				}
			},
		},
		{
			name: "zero popular_size uses default",
			yaml: `
data: {file: a.yaml}
recommend: {popular_size: 0}
`,
			check: func(t *testing.T, cfg *AppConfig) {
				if cfg.Recommend.PopularSize != 10 {
					t.Errorf("PopularSize = %d, want 10", cfg.Recommend.PopularSize)
				}
			},
		},
		{
			name: "popular_size below -1",
			yaml: `
data: {file: a.yaml}
recommend: {popular_size: -2}
`,
			wantErr: true,
		},
		{
			name: "invalid redis addr",
			yaml: `
data:
  redis: {addr: "not an address"}
`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseAppConfig([]byte(tt.yaml))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAppConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestParseAppConfig_NoDataSource(t *testing.T) {
	_, err := ParseAppConfig([]byte(`log: {level: info}`))
	if !errors.Is(err, ErrNoDataSource) {
		t.Errorf("ParseAppConfig() error = %v, want ErrNoDataSource", err)
	}
}

func TestRegistry(t *testing.T) {
	Register("test.noop", func(map[string]any) (pipeline.Node, error) { return nil, nil })
	Register("", nil) // 忽略

	found := false
	for _, typ := range SupportedTypes() {
		if typ == "test.noop" {
			found = true
		}
		if typ == "" {
			t.Errorf("empty type registered")
		}
	}
	if !found {
		t.Errorf("SupportedTypes() missing test.noop")
	}

	cfg := &pipeline.Config{}
	cfg.Pipeline.Nodes = []pipeline.NodeConfig{{Type: "test.noop"}}
	if err := ValidatePipelineConfig(cfg); err != nil {
		t.Errorf("ValidatePipelineConfig() error = %v", err)
	}
	cfg.Pipeline.Nodes = append(cfg.Pipeline.Nodes, pipeline.NodeConfig{Type: "missing.node"})
	if err := ValidatePipelineConfig(cfg); err == nil {
		t.Errorf("ValidatePipelineConfig() should reject unknown type")
	}
	if _, err := DefaultFactory().Build("test.noop", nil); err != nil {
		t.Errorf("DefaultFactory().Build() error = %v", err)
	}
}
