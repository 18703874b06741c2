package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/filip867/Karl-Filip/internal/application/usecase"
)

// Metrics holds the collectors exposed on /metrics.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.HistogramVec
	imports  *prometheus.CounterVec
	rows     *prometheus.CounterVec
	listings prometheus.Gauge
	revenue  prometheus.Gauge
}

// NewMetrics registers the report collectors on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "rapport",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		imports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rapport",
			Name:      "imports_total",
			Help:      "Imports by result.",
		}, []string{"result"}),
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rapport",
			Name:      "import_rows_total",
			Help:      "Imported rows by outcome.",
		}, []string{"outcome"}),
		listings: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "rapport",
			Name:      "current_listings",
			Help:      "Listings in the current-year figures.",
		}),
		revenue: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "rapport",
			Name:      "current_revenue_kr",
			Help:      "Total owner revenue of the current year.",
		}),
	}
	m.registry.MustRegister(m.requests, m.imports, m.rows, m.listings, m.revenue)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Instrument records the duration of every request under its route pattern.
func (m *Metrics) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
	})
}

// ObserveImport counts an import attempt and its row outcomes.
func (m *Metrics) ObserveImport(result *usecase.ImportResult, err error) {
	if err != nil {
		m.imports.WithLabelValues("error").Inc()
		return
	}
	m.imports.WithLabelValues("ok").Inc()
	m.rows.WithLabelValues("retained").Add(float64(result.Stats.Retained))
	m.rows.WithLabelValues("dropped_month").Add(float64(result.Stats.DroppedMonth))
	m.rows.WithLabelValues("other_year").Add(float64(result.Stats.OtherYear))
	m.listings.Set(float64(result.Info.Listings))
	m.revenue.Set(float64(result.Total))
}
