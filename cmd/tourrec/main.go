package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rushteam/tourrec/config"
	_ "github.com/rushteam/tourrec/config/builders"
	"github.com/rushteam/tourrec/core"
	"github.com/rushteam/tourrec/matrix"
	"github.com/rushteam/tourrec/pkg/logging"
	"github.com/rushteam/tourrec/pkg/utils"
	"github.com/rushteam/tourrec/recommend"
	"github.com/rushteam/tourrec/store"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML 配置文件路径")
		dataPath   = flag.String("data", "", "数据集文件路径（覆盖配置中的 data.file）")
		users      = flag.String("user", "10", "用户 ID，多个用逗号分隔")
		topN       = flag.Int("n", 0, "推荐数量（0 表示使用配置值）")
		usePipe    = flag.Bool("pipeline", false, "使用配置中的 pipeline 产出结果")
	)
	flag.Parse()

	if err := run(*configPath, *dataPath, *users, *topN, *usePipe); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(configPath, dataPath, users string, topN int, usePipe bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := loadConfig(configPath, dataPath)
	if err != nil {
		return err
	}
	logger := logging.New(cfg.Log)

	data, err := loadReferenceData(ctx, cfg, logger)
	if err != nil {
		return err
	}

	opts := []recommend.Option{
		recommend.WithLogger(logger),
		recommend.WithMetrics(recommend.NewMetrics(nil)),
		recommend.WithPopularSize(cfg.Recommend.PopularSize),
		recommend.WithBatchConcurrency(cfg.Recommend.BatchConcurrency),
	}
	if cfg.Cache.Enabled {
		cache, err := recommend.NewResultCache(ctx, cfg.Cache.TTL, cfg.Cache.MaxMB)
		if err != nil {
			return err
		}
		defer cache.Close()
		opts = append(opts, recommend.WithCache(cache))
	}
	svc := recommend.NewService(data, opts...)

	userIDs, err := parseUserIDs(users)
	if err != nil {
		return err
	}
	n := topN
	if n <= 0 {
		n = cfg.Recommend.TopN
	}

	if usePipe {
		return runPipeline(ctx, cfg, svc, userIDs, n)
	}

	results, err := svc.RecommendBatch(ctx, userIDs, n)
	if err != nil {
		return err
	}
	for _, res := range results {
		printResult(res)
	}
	return nil
}

func loadConfig(configPath, dataPath string) (*config.AppConfig, error) {
	cfg := &config.AppConfig{}
	if configPath != "" {
		var err error
		if cfg, err = config.ReadAppConfig(configPath); err != nil {
			return nil, err
		}
	} else {
		cfg.ApplyDefaults()
	}
	if dataPath != "" {
		cfg.Data.File = dataPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadReferenceData(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (*matrix.ReferenceData, error) {
	if cfg.Data.Redis.Addr != "" {
		rs, err := store.NewRedisStore(ctx, store.RedisOptions{
			Addr:     cfg.Data.Redis.Addr,
			Password: cfg.Data.Redis.Password,
			DB:       cfg.Data.Redis.DB,
			PoolSize: cfg.Data.Redis.PoolSize,
		})
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		defer rs.Close()
		logger.Info("loading reference data", slog.String("source", "redis"), slog.String("prefix", cfg.Data.KeyPrefix))
		return matrix.NewStoreAdapter(rs, cfg.Data.KeyPrefix).Load(ctx)
	}

	logger.Info("loading reference data", slog.String("source", "file"), slog.String("path", cfg.Data.File))
	ds, err := matrix.LoadDatasetFile(cfg.Data.File)
	if err != nil {
		return nil, err
	}
	return ds.Build()
}

func runPipeline(ctx context.Context, cfg *config.AppConfig, svc *recommend.Service, userIDs []core.UserID, n int) error {
	config.Register("recommend.hybrid", recommend.NodeBuilder(svc.Holder()))
	if len(cfg.Pipeline.Nodes) == 0 {
		return fmt.Errorf("pipeline has no nodes")
	}
	if err := config.ValidatePipelineConfig(&cfg.Config); err != nil {
		return err
	}
	p, err := cfg.Config.BuildPipeline(config.DefaultFactory())
	if err != nil {
		return err
	}

	for _, userID := range userIDs {
		rctx := &core.RecommendContext{UserID: userID, N: n, Scene: cfg.Pipeline.Name}
		items, err := p.Run(ctx, rctx, nil)
		if err != nil {
			return err
		}
		provenance := recommend.ProvenancePopular
		if lbl, ok := rctx.GetLabel(utils.LabelProvenance); ok {
			provenance = recommend.Provenance(lbl.Value)
		}
		res := &recommend.Result{
			UserID:     userID,
			Provenance: provenance,
			Message:    provenance.Message(),
			Items:      make([]recommend.LabeledItem, 0, len(items)),
		}
		for _, it := range items {
			name, _ := it.Meta["name"].(string)
			res.Items = append(res.Items, recommend.LabeledItem{ID: it.ID, Name: name, Score: it.Score})
		}
		printResult(res)
	}
	return nil
}

func parseUserIDs(s string) ([]core.UserID, error) {
	parts := strings.Split(s, ",")
	out := make([]core.UserID, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid user id %q: %w", p, err)
		}
		out = append(out, id)
	}
	return out, nil
}

func printResult(res *recommend.Result) {
	fmt.Printf("=== user %d [%s] ===\n", res.UserID, res.Provenance)
	fmt.Println(res.Message)
	for i, it := range res.Items {
		fmt.Printf("%d. %s — Preference Score: %.2f\n", i+1, it.Name, it.Score)
	}
}
