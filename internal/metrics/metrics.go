// Package metrics provides Prometheus metrics collection for the taxi data service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// CacheOperationsTotal tracks cache operations by operation and result
	// (get/hit, get/miss, get/error, set/success, delete/success, ...).
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"operation", "result"},
	)

	// StoreQueryDuration tracks store query duration by operation.
	StoreQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_query_duration_seconds",
			Help:    "Store query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
		},
		[]string{"operation"},
	)

	// LoaderRowsTotal tracks rows appended to the store by the batch loader.
	LoaderRowsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loader_rows_total",
			Help: "Total number of rows loaded into the store",
		},
	)

	// LoaderFilesTotal tracks files processed by the batch loader, by outcome.
	LoaderFilesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loader_files_total",
			Help: "Total number of source files processed",
		},
		[]string{"status"},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordCacheOperation records metrics for a cache operation.
func RecordCacheOperation(operation, result string) {
	CacheOperationsTotal.WithLabelValues(operation, result).Inc()
}

// RecordStoreQuery records the duration of a store query.
func RecordStoreQuery(operation string, duration time.Duration) {
	StoreQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordLoaderFile records the outcome of a processed source file.
func RecordLoaderFile(status string, rows int) {
	LoaderFilesTotal.WithLabelValues(status).Inc()
	if rows > 0 {
		LoaderRowsTotal.Add(float64(rows))
	}
}
