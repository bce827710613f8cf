package recommend

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics 是推荐服务的 Prometheus 指标。
type Metrics struct {
	Requests        *prometheus.CounterVec // 按来源统计请求数 (provenance)
	Errors          prometheus.Counter
	Latency         prometheus.Histogram
	CacheLookups    *prometheus.CounterVec // result: hit / miss
	SnapshotVersion prometheus.Gauge
	CatalogSize     prometheus.Gauge
}

// NewMetrics 创建并注册指标；reg 为 nil 时使用独立的 Registry。
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tourrec",
			Name:      "recommend_requests_total",
			Help:      "Recommendation requests by provenance.",
		}, []string{"provenance"}),
		Errors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tourrec",
			Name:      "recommend_errors_total",
			Help:      "Recommendation requests rejected by contract checks.",
		}),
		Latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tourrec",
			Name:      "recommend_duration_seconds",
			Help:      "Recommendation latency in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tourrec",
			Name:      "result_cache_lookups_total",
			Help:      "Result cache lookups by outcome.",
		}, []string{"result"}),
		SnapshotVersion: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tourrec",
			Name:      "snapshot_version",
			Help:      "Version of the reference data snapshot currently served.",
		}),
		CatalogSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tourrec",
			Name:      "catalog_items",
			Help:      "Number of items in the served catalog.",
		}),
	}
	reg.MustRegister(m.Requests, m.Errors, m.Latency, m.CacheLookups, m.SnapshotVersion, m.CatalogSize)
	return m
}
