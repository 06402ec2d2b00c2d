package service

import (
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation behind a private
// registry so tests can run collectors side by side.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	storeReads      *prometheus.CounterVec
	storeWrites     *prometheus.CounterVec
}

// NewMetricsService registers the core collectors.
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

	storeReads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_partition_reads_total",
		Help: "Total partition reads by outcome",
	}, []string{"partition", "outcome"})

	storeWrites := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_partition_writes_total",
		Help: "Total partition writes by outcome",
	}, []string{"partition", "outcome"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, storeReads, storeWrites, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		storeReads:      storeReads,
		storeWrites:     storeWrites,
	}
}

// Handler exposes the Prometheus scrape endpoint.
func (s *MetricsService) Handler() http.Handler {
	return s.handler
}

// ObserveRequest records one finished HTTP request.
func (s *MetricsService) ObserveRequest(method, path, status string, duration time.Duration) {
	s.requestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
	s.requestTotal.WithLabelValues(method, path, status).Inc()
}

// ObserveStoreRead records a partition read outcome.
func (s *MetricsService) ObserveStoreRead(partition, outcome string) {
	s.storeReads.WithLabelValues(partition, outcome).Inc()
}

// ObserveStoreWrite records a partition write outcome.
func (s *MetricsService) ObserveStoreWrite(partition, outcome string) {
	s.storeWrites.WithLabelValues(partition, outcome).Inc()
}
