package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the API.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	loginsTotal     *prometheus.CounterVec
	sessionsPurged  prometheus.Counter
	uploadsTotal    prometheus.Counter
	rateLimited     prometheus.Counter
}

// NewMetricsService registers the core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	loginsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "logins_total",
		Help: "Successful logins by role",
	}, []string{"role"})

	sessionsPurged := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sessions_purged_total",
		Help: "Expired sessions removed on access",
	})

	uploadsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "uploads_total",
		Help: "Files stored through the upload endpoints",
	})

	rateLimited := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limited_total",
		Help: "Requests rejected by the rate limiter",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, loginsTotal, sessionsPurged, uploadsTotal, rateLimited, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:        registry,
		handler:         handler,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		loginsTotal:     loginsTotal,
		sessionsPurged:  sessionsPurged,
		uploadsTotal:    uploadsTotal,
		rateLimited:     rateLimited,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records per-request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// IncLogin counts a successful login for the given role.
func (m *MetricsService) IncLogin(role string) {
	if m == nil {
		return
	}
	m.loginsTotal.WithLabelValues(role).Inc()
}

// IncSessionPurged counts an expired session removed on access.
func (m *MetricsService) IncSessionPurged() {
	if m == nil {
		return
	}
	m.sessionsPurged.Inc()
}

// AddSessionsPurged counts a batch of expired sessions removed by the
// background sweeper.
func (m *MetricsService) AddSessionsPurged(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.sessionsPurged.Add(float64(n))
}

// IncUpload counts a stored upload.
func (m *MetricsService) IncUpload() {
	if m == nil {
		return
	}
	m.uploadsTotal.Inc()
}

// IncRateLimited counts a request rejected by the rate limiter.
func (m *MetricsService) IncRateLimited() {
	if m == nil {
		return
	}
	m.rateLimited.Inc()
}
