package utils

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ReqCount counts HTTP requests by method, path and status.
	ReqCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "styleloop_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// ReqDuration observes request latency by method and path.
	ReqDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "styleloop_request_duration_seconds",
			Help: "Request duration seconds",
		},
		[]string{"method", "path"},
	)

	// AchievementUnlocks counts unlock events by category.
	AchievementUnlocks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "styleloop_achievement_unlocks_total",
			Help: "Achievements unlocked",
		},
		[]string{"category"},
	)

	// StreakResets counts streak resets after a gap.
	StreakResets = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "styleloop_streak_resets_total",
			Help: "Streaks reset after a missed day",
		},
	)
)

// InitMetrics registers all collectors with the default registry.
func InitMetrics() {
	prometheus.MustRegister(ReqCount, ReqDuration, AchievementUnlocks, StreakResets)
}

// MetricsMiddleware records request count and duration per route.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		ReqCount.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		ReqDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
