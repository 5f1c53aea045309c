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

	// 可视化组件计算次数，result 为 ok / invalid / placeholder
	VisualizationEvaluations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "math_edu_visualization_evaluations_total",
			Help: "Visualization evaluations by animation type and result",
		},
		[]string{"type", "result"},
	)

	LessonCompletions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "math_edu_lesson_completions_total",
			Help: "Lessons marked as completed",
		},
	)

	HomeworkSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "math_edu_homework_submissions_total",
			Help: "Homework submissions by kind (text, file)",
		},
		[]string{"kind"},
	)

	GradesRecorded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "math_edu_grades_recorded_total",
			Help: "Grades created or overwritten",
		},
	)

	LiveConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "math_edu_live_feed_connections",
			Help: "Admin websocket connections on this instance",
		},
	)

	LiveEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "math_edu_live_events_total",
			Help: "Live feed events published by type",
		},
		[]string{"type"},
	)
)

var initOnce sync.Once

func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			VisualizationEvaluations,
			LessonCompletions,
			HomeworkSubmissions,
			GradesRecorded,
			LiveConnections,
			LiveEvents,
		)
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
