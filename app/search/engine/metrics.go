package engine

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ==================== 搜索指标 ====================
//
// 对接：Prometheus / Grafana
// 维度：实体类型 + 命中方式，用于观察兜底触发比例与各类型延迟

// Metrics 搜索引擎指标
type Metrics struct {
	searchDuration *prometheus.HistogramVec
	searchTotal    *prometheus.CounterVec
	fuzzyFallback  *prometheus.CounterVec
	cacheHits      *prometheus.CounterVec
	historyErrors  prometheus.Counter
}

// NewMetrics 创建并注册搜索指标
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "search"
	}

	return &Metrics{
		searchDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "duration_seconds",
				Help:      "Search duration (ranking + filtering) in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"entity_type"},
		),
		searchTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total number of search requests",
			},
			[]string{"entity_type", "status"},
		),
		fuzzyFallback: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fuzzy_fallback_total",
				Help:      "Searches answered by the similarity fallback",
			},
			[]string{"entity_type"},
		),
		cacheHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_hits_total",
				Help:      "Result cache hits",
			},
			[]string{"entity_type"},
		),
		historyErrors: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "history_write_errors_total",
				Help:      "Best-effort history writes that failed",
			},
		),
	}
}

// RecordSearch 记录一次搜索
func (m *Metrics) RecordSearch(t EntityType, d time.Duration, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.searchTotal.WithLabelValues(string(t), status).Inc()
	if err == nil {
		m.searchDuration.WithLabelValues(string(t)).Observe(d.Seconds())
	}
}

// RecordFuzzyFallback 记录一次兜底命中
func (m *Metrics) RecordFuzzyFallback(t EntityType) {
	if m == nil {
		return
	}
	m.fuzzyFallback.WithLabelValues(string(t)).Inc()
}

// RecordCacheHit 记录一次缓存命中
func (m *Metrics) RecordCacheHit(t EntityType) {
	if m == nil {
		return
	}
	m.cacheHits.WithLabelValues(string(t)).Inc()
}

// RecordHistoryError 记录一次历史写入失败
func (m *Metrics) RecordHistoryError() {
	if m == nil {
		return
	}
	m.historyErrors.Inc()
}
