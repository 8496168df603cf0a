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
		Namespace: "freshconnect",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "freshconnect",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "path"})

	// Market-specific metrics
	DiscoverySearches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "freshconnect",
		Subsystem: "discovery",
		Name:      "searches_total",
		Help:      "Total vendor discovery searches executed",
	}, []string{"sort"})

	DiscoveryResults = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "freshconnect",
		Subsystem: "discovery",
		Name:      "results_returned",
		Help:      "Vendors returned per discovery search",
		Buckets:   []float64{0, 1, 2, 5, 10, 20, 50},
	})

	LocationFixes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "freshconnect",
		Subsystem: "geolocation",
		Name:      "fixes_total",
		Help:      "Location acquisition attempts by provider and outcome",
	}, []string{"provider", "status"})

	InventoryMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "freshconnect",
		Subsystem: "inventory",
		Name:      "mutations_total",
		Help:      "Dashboard inventory mutations by operation",
	}, []string{"op"})

	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "freshconnect",
		Subsystem: "auth",
		Name:      "login_attempts_total",
		Help:      "Vendor login attempts by outcome",
	}, []string{"status"})

	ActiveWebSockets = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "freshconnect",
		Subsystem: "ws",
		Name:      "active_connections",
		Help:      "Current number of active WebSocket connections",
	})

	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "freshconnect",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Total cache hits",
	}, []string{"operation"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "freshconnect",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Total cache misses",
	}, []string{"operation"})
)

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

		return err
	}
}

// Handler returns a Fiber handler serving the Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	handler := promhttp.Handler()
	return func(c *fiber.Ctx) error {
		fasthttpadaptor.NewFastHTTPHandler(handler)(c.Context())
		return nil
	}
}
