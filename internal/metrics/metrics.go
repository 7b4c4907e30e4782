// Package metrics provides Prometheus-backed implementations of the
// observability hooks, used by the serve command. The engine and cache
// never import Prometheus directly; they emit events through
// pkg/observability and this package turns them into metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/transferflow/transferflow/pkg/observability"
)

const namespace = "transferflow"

// Hooks implements observability.TransformHooks and observability.CacheHooks
// on top of a private Prometheus registry.
type Hooks struct {
	registry *prometheus.Registry

	transformsTotal   *prometheus.CounterVec
	transformDuration prometheus.Histogram
	transformCycles   prometheus.Counter
	cyclesBroken      prometheus.Counter
	brokenFlowValue   prometheus.Counter

	cacheHits   *prometheus.CounterVec
	cacheMisses *prometheus.CounterVec
	cacheWrites *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New creates hooks over a fresh registry.
func New() *Hooks {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Hooks{
		registry: reg,
		transformsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transforms_total",
			Help:      "Completed transform runs by configuration.",
		}, []string{"level", "flow", "metric"}),
		transformDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "transform_duration_seconds",
			Help:      "Wall-clock duration of transform runs.",
			Buckets:   prometheus.DefBuckets,
		}),
		transformCycles: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transforms_with_cycles_total",
			Help:      "Transform runs whose net graph contained cycles before breaking.",
		}),
		cyclesBroken: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cycle_edges_removed_total",
			Help:      "Edges removed by the weakest-link cycle breaker.",
		}),
		brokenFlowValue: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cycle_flow_value_discarded_total",
			Help:      "Total flow value discarded by cycle breaking.",
		}),
		cacheHits: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Cache hits by key type.",
		}, []string{"key_type"}),
		cacheMisses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Cache misses by key type.",
		}, []string{"key_type"}),
		cacheWrites: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_writes_total",
			Help:      "Cache writes by key type.",
		}, []string{"key_type"}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

// Register installs these hooks as the process-wide observability backend.
func (h *Hooks) Register() {
	observability.SetTransformHooks(h)
	observability.SetCacheHooks(h)
}

// Handler returns the /metrics HTTP handler for the private registry.
func (h *Hooks) Handler() http.Handler {
	return promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{})
}

// OnTransformStart implements observability.TransformHooks.
func (h *Hooks) OnTransformStart(level, flowType, metric string, nodeCount int) {}

// OnTransformComplete implements observability.TransformHooks.
func (h *Hooks) OnTransformComplete(level, flowType, metric string, nodes, links int, hasCycles bool, duration time.Duration) {
	h.transformsTotal.WithLabelValues(level, flowType, metric).Inc()
	h.transformDuration.Observe(duration.Seconds())
	if hasCycles {
		h.transformCycles.Inc()
	}
}

// OnCycleBroken implements observability.TransformHooks.
func (h *Hooks) OnCycleBroken(from, to string, value float64) {
	h.cyclesBroken.Inc()
	h.brokenFlowValue.Add(value)
}

// OnCacheHit implements observability.CacheHooks.
func (h *Hooks) OnCacheHit(keyType string) { h.cacheHits.WithLabelValues(keyType).Inc() }

// OnCacheMiss implements observability.CacheHooks.
func (h *Hooks) OnCacheMiss(keyType string) { h.cacheMisses.WithLabelValues(keyType).Inc() }

// OnCacheSet implements observability.CacheHooks.
func (h *Hooks) OnCacheSet(keyType string, size int) { h.cacheWrites.WithLabelValues(keyType).Inc() }

// ObserveHTTP records one served HTTP request.
func (h *Hooks) ObserveHTTP(route string, code int, duration time.Duration) {
	h.httpRequests.WithLabelValues(route, httpCode(code)).Inc()
	h.httpDuration.WithLabelValues(route).Observe(duration.Seconds())
}

func httpCode(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

// Ensure Hooks implements both hook interfaces.
var (
	_ observability.TransformHooks = (*Hooks)(nil)
	_ observability.CacheHooks     = (*Hooks)(nil)
)
