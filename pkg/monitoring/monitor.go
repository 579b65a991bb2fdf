package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// SubmissionCounter outcome: scored, partial, invalid, not_found, catalog_error
	SubmissionCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_submissions_total",
			Help: "Quiz submissions by outcome",
		},
		[]string{"outcome"},
	)

	RecordFailureCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "quiz_answer_record_failures_total",
			Help: "Answer records that could not be persisted",
		},
	)

	PercentageScore = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "quiz_percentage_score",
			Help:    "Distribution of submission percentage scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)
)

const (
	OutcomeScored       = "scored"
	OutcomePartial      = "partial"
	OutcomeInvalid      = "invalid"
	OutcomeNotFound     = "not_found"
	OutcomeCatalogError = "catalog_error"
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(SubmissionCounter)
		prometheus.MustRegister(RecordFailureCounter)
		prometheus.MustRegister(PercentageScore)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
