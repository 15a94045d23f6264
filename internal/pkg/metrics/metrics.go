package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "touristapi",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "touristapi",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"method", "path"})

	httpResponseSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "touristapi",
		Subsystem: "http",
		Name:      "response_size_bytes",
		Help:      "HTTP response size in bytes",
		Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
	}, []string{"method", "path"})

	// Upstream provider metrics
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "touristapi",
		Subsystem: "upstream",
		Name:      "requests_total",
		Help:      "Outbound provider calls by outcome (ok, absent, error)",
	}, []string{"provider", "outcome"})

	UpstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "touristapi",
		Subsystem: "upstream",
		Name:      "request_duration_seconds",
		Help:      "Outbound provider call latency in seconds",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 20},
	}, []string{"provider"})

	// Lookup pipeline metrics
	Lookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "touristapi",
		Subsystem: "lookup",
		Name:      "total",
		Help:      "Completed lookups by outcome (results, empty, search_failed)",
	}, []string{"outcome"})

	LookupDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "touristapi",
		Subsystem: "lookup",
		Name:      "duration_seconds",
		Help:      "End-to-end lookup latency in seconds",
		Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40},
	})

	CandidatesDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "touristapi",
		Subsystem: "lookup",
		Name:      "candidates_dropped_total",
		Help:      "Candidates dropped because no summary was available",
	})

	EnglishFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "touristapi",
		Subsystem: "lookup",
		Name:      "english_fallbacks_total",
		Help:      "Candidates served from the English edition",
	}, []string{"lang"})

	CondenserPath = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "touristapi",
		Subsystem: "condenser",
		Name:      "requests_total",
		Help:      "Condensation requests by path (generator, fallback)",
	}, []string{"path"})

	Translations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "touristapi",
		Subsystem: "condenser",
		Name:      "translations_total",
		Help:      "Translation requests by outcome (translated, unchanged)",
	}, []string{"outcome"})

	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "touristapi",
		Subsystem: "events",
		Name:      "published_total",
		Help:      "Lookup events published by outcome",
	}, []string{"outcome"})
)

// ObserveUpstream records one provider call.
func ObserveUpstream(provider, outcome string, start time.Time) {
	UpstreamRequests.WithLabelValues(provider, outcome).Inc()
	UpstreamDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())
}

// Middleware records request metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(duration)
		httpResponseSize.WithLabelValues(method, path).Observe(float64(len(c.Response().Body())))

		return err
	}
}

// Handler returns a Fiber handler serving Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	handler := promhttp.Handler()
	return func(c *fiber.Ctx) error {
		fasthttpadaptor.NewFastHTTPHandler(handler)(c.Context())
		return nil
	}
}
