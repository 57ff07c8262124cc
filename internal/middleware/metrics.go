package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ==================== Prometheus 指标 ====================

var (
	// HTTP 请求指标
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "market_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "market_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// 报价单导入指标
	importRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "market_import_runs_total",
			Help: "Total number of price list import runs",
		},
		[]string{"status"},
	)

	importListingsUpdated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "market_import_listings_updated_total",
			Help: "Total number of listings written by imports",
		},
	)

	// 订单指标
	ordersCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "market_orders_created_total",
			Help: "Total number of orders created",
		},
	)
)

// RecordImportRun 记录一次导入结果
func RecordImportRun(status string, updated int) {
	importRunsTotal.WithLabelValues(status).Inc()
	if updated > 0 {
		importListingsUpdated.Add(float64(updated))
	}
}

// RecordOrderCreated 记录一次下单
func RecordOrderCreated() {
	ordersCreatedTotal.Inc()
}

// ==================== Gin 中间件 ====================

// Metrics HTTP 指标采集中间件
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		method := c.Request.Method
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path, status).Observe(duration)
	}
}
