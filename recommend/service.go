package recommend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/tourrec/core"
	"github.com/rushteam/tourrec/matrix"
)

// Result 是交给展示层的最终载荷。
type Result struct {
	UserID     core.UserID   `json:"user_id"`
	Version    uint64        `json:"version"`
	Provenance Provenance    `json:"provenance"`
	Message    string        `json:"message"`
	Items      []LabeledItem `json:"items"`
}

// Service 是推荐引擎对外的入口：持有当前快照，处理单个/批量请求，支持热替换数据。
type Service struct {
	holder      *Holder
	logger      *slog.Logger
	metrics     *Metrics
	cache       *ResultCache
	popularSize int
	batchLimit  int
}

// Option 配置 Service。
type Option func(*Service)

// WithLogger 设置日志
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics 设置指标
func WithMetrics(m *Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithCache 设置结果缓存
func WithCache(c *ResultCache) Option {
	return func(s *Service) { s.cache = c }
}

// WithPopularSize 设置缓存的热门榜长度
func WithPopularSize(n int) Option {
	return func(s *Service) { s.popularSize = n }
}

// WithBatchConcurrency 设置批量推荐的并发度
func WithBatchConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.batchLimit = n
		}
	}
}

// NewService 基于初始参考数据创建服务。
func NewService(data *matrix.ReferenceData, opts ...Option) *Service {
	defaults := &core.DefaultRecommendConfig{}
	s := &Service{
		logger:      slog.New(slog.DiscardHandler),
		popularSize: defaults.DefaultPopularSize(),
		batchLimit:  defaults.DefaultBatchConcurrency(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.holder = NewHolder(nil)
	s.Reload(data)
	return s
}

// Holder 返回快照持有者（供 Pipeline Node 等共享同一份数据）。
func (s *Service) Holder() *Holder {
	return s.holder
}

// Snapshot 返回当前快照。
func (s *Service) Snapshot() *Snapshot {
	return s.holder.Load()
}

// Reload 用新数据构建快照并原子替换；正在处理的请求继续使用旧快照。
func (s *Service) Reload(data *matrix.ReferenceData) *Snapshot {
	snap := NewSnapshot(data, s.popularSize)
	old := s.holder.Swap(snap)

	attrs := []any{
		slog.Uint64("version", snap.Version),
		slog.Int("users", snap.Matrix.NumUsers()),
		slog.Int("items", snap.Matrix.NumItems()),
		slog.Int("ratings", snap.Matrix.NumRatings()),
		slog.Int("popular", len(snap.Popular)),
	}
	if old != nil {
		attrs = append(attrs, slog.Uint64("previous_version", old.Version))
	}
	s.logger.Info("reference snapshot published", attrs...)

	if s.metrics != nil {
		s.metrics.SnapshotVersion.Set(float64(snap.Version))
		s.metrics.CatalogSize.Set(float64(snap.Matrix.NumItems()))
	}
	return snap
}

// Recommend 为单个用户产出推荐并解析景点名称。
func (s *Service) Recommend(ctx context.Context, userID core.UserID, n int) (*Result, error) {
	return s.recommendOn(ctx, s.holder.Load(), userID, n)
}

// RecommendBatch 并发为多个用户产出推荐，结果顺序与 userIDs 一致。
// 整个批次使用同一份快照；任意请求违反调用约定时返回第一个错误。
func (s *Service) RecommendBatch(ctx context.Context, userIDs []core.UserID, n int) ([]*Result, error) {
	snap := s.holder.Load()
	out := make([]*Result, len(userIDs))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(s.batchLimit)
	for i, userID := range userIDs {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			res, err := s.recommendOn(egCtx, snap, userID, n)
			if err != nil {
				return err
			}
			out[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) recommendOn(ctx context.Context, snap *Snapshot, userID core.UserID, n int) (*Result, error) {
	start := time.Now()
	logger := s.logger.With(slog.Int64("user_id", userID), slog.Int("n", n))

	if snap == nil {
		if s.metrics != nil {
			s.metrics.Errors.Inc()
		}
		return nil, fmt.Errorf("recommend user %d: %w", userID, core.ErrSnapshotUnavailable)
	}

	if s.cache != nil {
		if res, ok := s.cache.Get(snap.Version, userID, n); ok {
			s.observeCache("hit")
			s.observeRequest(res.Provenance, start)
			logger.DebugContext(ctx, "recommendation served from cache")
			return res, nil
		}
		s.observeCache("miss")
	}

	rec, err := snap.Composer().Recommend(userID, n)
	if err != nil {
		if s.metrics != nil {
			s.metrics.Errors.Inc()
		}
		if errors.Is(err, core.ErrInvalidCount) {
			logger.WarnContext(ctx, "rejected recommendation request", slog.Any("error", err))
		}
		return nil, err
	}

	res := &Result{
		UserID:     userID,
		Version:    snap.Version,
		Provenance: rec.Provenance,
		Message:    rec.Provenance.Message(),
		Items:      snap.Resolver().Resolve(rec),
	}

	if s.cache != nil {
		if err := s.cache.Set(res, n); err != nil {
			logger.WarnContext(ctx, "result cache write failed", slog.Any("error", err))
		}
	}
	s.observeRequest(rec.Provenance, start)
	logger.DebugContext(ctx, "recommendation complete",
		slog.String("provenance", rec.Provenance.String()),
		slog.Int("returned", len(res.Items)),
		slog.Int("personalized", rec.Personalized),
		slog.Uint64("version", snap.Version),
	)
	return res, nil
}

func (s *Service) observeRequest(p Provenance, start time.Time) {
	if s.metrics != nil {
		s.metrics.Requests.WithLabelValues(p.String()).Inc()
		s.metrics.Latency.Observe(time.Since(start).Seconds())
	}
}

func (s *Service) observeCache(result string) {
	if s.metrics != nil {
		s.metrics.CacheLookups.WithLabelValues(result).Inc()
	}
}
