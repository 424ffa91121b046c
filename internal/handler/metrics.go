package handler

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"github.com/mathieu-neron/NewsBoard/newsboard-go/internal/dashboard"
	"github.com/mathieu-neron/NewsBoard/newsboard-go/internal/middleware"
)

// Metrics holds all Prometheus collectors for the NewsBoard backend.
var Metrics = struct {
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge
	ChartsDrawn      *prometheus.CounterVec
	ChartsSkipped    *prometheus.CounterVec
	InitFailures     *prometheus.CounterVec
	RenderDuration   *prometheus.HistogramVec
	PayloadWrites    *prometheus.CounterVec
	DBPoolActive     prometheus.GaugeFunc
	DBPoolIdle       prometheus.GaugeFunc
}{}

var metricsOnce sync.Once

// InitMetrics registers all Prometheus metrics. Only the first call has an effect.
func InitMetrics(pool *pgxpool.Pool) {
	metricsOnce.Do(func() { initMetrics(pool) })
}

func initMetrics(pool *pgxpool.Pool) {
	Metrics.RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "newsboard_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	Metrics.RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "newsboard_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	)

	Metrics.ChartsDrawn = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsboard_charts_drawn_total",
			Help: "Charts drawn, by slot.",
		},
		[]string{"slot"},
	)

	Metrics.ChartsSkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsboard_charts_skipped_total",
			Help: "Chart slots skipped because their payload had no labels, by slot.",
		},
		[]string{"slot"},
	)

	Metrics.InitFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsboard_dashboard_init_failures_total",
			Help: "Dashboard initializations aborted by a failure, by failing slot.",
		},
		[]string{"slot"},
	)

	Metrics.RenderDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "newsboard_render_duration_seconds",
			Help:    "Duration of page renders, by output format.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"format"},
	)

	Metrics.PayloadWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsboard_payload_writes_total",
			Help: "Stored payload writes, by slot.",
		},
		[]string{"slot"},
	)

	// DB pool gauges read live stats from pgxpool
	if pool != nil {
		Metrics.DBPoolActive = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "newsboard_db_connection_pool_active",
				Help: "Number of active database connections.",
			},
			func() float64 {
				return float64(pool.Stat().AcquiredConns())
			},
		)

		Metrics.DBPoolIdle = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "newsboard_db_connection_pool_idle",
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
		Metrics.RequestDuration,
		Metrics.RequestsInFlight,
		Metrics.ChartsDrawn,
		Metrics.ChartsSkipped,
		Metrics.InitFailures,
		Metrics.RenderDuration,
		Metrics.PayloadWrites,
	)
}

// RecordReport counts the outcome of one dashboard initialization.
func RecordReport(rep dashboard.Report) {
	if Metrics.ChartsDrawn == nil {
		return
	}
	for _, slot := range rep.Drawn {
		Metrics.ChartsDrawn.WithLabelValues(string(slot)).Inc()
	}
	for _, slot := range rep.Skipped {
		Metrics.ChartsSkipped.WithLabelValues(string(slot)).Inc()
	}
	for _, f := range rep.Failures {
		Metrics.InitFailures.WithLabelValues(string(f.Slot)).Inc()
	}
}

func recordRender(format string, d time.Duration) {
	if Metrics.RenderDuration == nil {
		return
	}
	Metrics.RenderDuration.WithLabelValues(format).Observe(d.Seconds())
}

func recordPayloadWrite(slot string) {
	if Metrics.PayloadWrites == nil {
		return
	}
	Metrics.PayloadWrites.WithLabelValues(slot).Inc()
}

// MetricsMiddleware records request duration and in-flight count for Prometheus.
func MetricsMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		// Don't instrument the /metrics endpoint itself
		if c.Path() == "/metrics" || Metrics.RequestDuration == nil {
			return c.Next()
		}

		// Copy path and method into owned strings BEFORE c.Next(); Fiber
		// returns slices backed by the fasthttp buffer which can be reused
		// or overwritten by handlers (especially fasthttpadaptor).
		path := string([]byte(c.Path()))
		method := string([]byte(c.Method()))
		endpoint := middleware.SanitizePath(path)

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

// MetricsHandler serves the Prometheus /metrics endpoint via Fiber.
func MetricsHandler() fiber.Handler {
	httpHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c fiber.Ctx) error {
		httpHandler(c.RequestCtx())
		return nil
	}
}
