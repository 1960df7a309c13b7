package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"github.com/ericsone1/youcra-v03-new-sub000/internal/engine"
)

// Metrics holds all Prometheus collectors for the certification backend.
var Metrics = struct {
	CertificationsTotal  prometheus.Counter
	CountdownExpirations *prometheus.CounterVec
	WatchSecondsTotal    prometheus.Counter
	ActiveSessions       prometheus.GaugeFunc
	RequestDuration      *prometheus.HistogramVec
	RequestsInFlight     prometheus.Gauge
	CacheHits            prometheus.Counter
	CacheMisses          prometheus.Counter
	DBPoolActive         prometheus.GaugeFunc
	DBPoolIdle           prometheus.GaugeFunc
}{}

// InitMetrics registers all Prometheus metrics. Call once at startup.
func InitMetrics(pool *pgxpool.Pool, manager *engine.Manager) {
	Metrics.CertificationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "youcra_certifications_total",
			Help: "Total watch certifications recorded.",
		},
	)

	Metrics.CountdownExpirations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "youcra_countdown_expirations_total",
			Help: "Total auto-advance countdowns that ran to expiry, by kind.",
		},
		[]string{"kind"},
	)

	Metrics.WatchSecondsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "youcra_watch_seconds_total",
			Help: "Total playing-state seconds accumulated across all sessions.",
		},
	)

	Metrics.RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "youcra_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	Metrics.RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "youcra_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	)

	Metrics.CacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "youcra_cache_hits_total",
			Help: "Total Redis cache hits.",
		},
	)

	Metrics.CacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "youcra_cache_misses_total",
			Help: "Total Redis cache misses.",
		},
	)

	if manager != nil {
		Metrics.ActiveSessions = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "youcra_active_sessions",
				Help: "Number of live watch sessions.",
			},
			func() float64 {
				return float64(manager.ActiveCount())
			},
		)
		prometheus.MustRegister(Metrics.ActiveSessions)
	}

	// DB pool gauges — read live stats from pgxpool
	if pool != nil {
		Metrics.DBPoolActive = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "youcra_db_connection_pool_active",
				Help: "Number of active database connections.",
			},
			func() float64 {
				return float64(pool.Stat().AcquiredConns())
			},
		)

		Metrics.DBPoolIdle = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "youcra_db_connection_pool_idle",
				Help: "Number of idle database connections.",
			},
			func() float64 {
				return float64(pool.Stat().IdleConns())
			},
		)

		prometheus.MustRegister(Metrics.DBPoolActive)
		prometheus.MustRegister(Metrics.DBPoolIdle)
	}

	prometheus.MustRegister(
		Metrics.CertificationsTotal,
		Metrics.CountdownExpirations,
		Metrics.WatchSecondsTotal,
		Metrics.RequestDuration,
		Metrics.RequestsInFlight,
		Metrics.CacheHits,
		Metrics.CacheMisses,
	)
}

// EngineHooks returns engine callbacks that feed the Prometheus collectors.
func EngineHooks() engine.Hooks {
	return engine.Hooks{
		OnCountdownExpired: func(kind engine.CountdownKind) {
			Metrics.CountdownExpirations.WithLabelValues(string(kind)).Inc()
		},
		OnWatchSecond: func() {
			Metrics.WatchSecondsTotal.Inc()
		},
	}
}

// MetricsMiddleware records request duration and in-flight count for Prometheus.
func MetricsMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		// Don't instrument the /metrics endpoint itself
		if c.Path() == "/metrics" {
			return c.Next()
		}

		// Copy path and method into owned strings BEFORE c.Next() — Fiber
		// returns slices backed by the fasthttp buffer which can be reused
		// or overwritten by handlers (especially fasthttpadaptor).
		path := string([]byte(c.Path()))
		method := string([]byte(c.Method()))
		endpoint := sanitizeEndpoint(path)

		Metrics.RequestsInFlight.Inc()
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())

		Metrics.RequestDuration.WithLabelValues(endpoint, method, status).Observe(duration)
		Metrics.RequestsInFlight.Dec()

		return err
	}
}

// sanitizeEndpoint normalizes paths to avoid cardinality explosion.
func sanitizeEndpoint(path string) string {
	switch {
	case len(path) > 11 && path[:11] == "/api/rooms/":
		return "/api/rooms/:roomId"
	case len(path) > 11 && path[:11] == "/api/users/":
		return "/api/users/:uid"
	default:
		return path
	}
}

// MetricsHandler serves the Prometheus /metrics endpoint via Fiber.
func MetricsHandler() fiber.Handler {
	httpHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c fiber.Ctx) error {
		httpHandler(c.RequestCtx())
		return nil
	}
}
