package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	requestIDHeader    = "X-Request-ID"
	maxRequestIDLength = 128
	unmatchedRoute     = "unmatched"
)

// RequestIDMiddleware echoes a caller-supplied X-Request-ID when it is short
// printable ASCII and generates a UUID otherwise.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if !validRequestID(requestID) {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)
		c.Set(requestIDHeader, requestID)
		c.Next()
	}
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}

// AccessLogMiddleware logs one line per request: server errors at error
// level, client errors at warn, everything else at info.
func AccessLogMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		switch {
		case status >= http.StatusInternalServerError:
			level = slog.LevelError
		case status >= http.StatusBadRequest:
			level = slog.LevelWarn
		}

		requestID, _ := c.Get(requestIDHeader)
		logger.LogAttrs(c.Request.Context(), level, "http request",
			slog.String("method", c.Request.Method),
			slog.String("route", c.FullPath()),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Int64("latency_ms", time.Since(start).Milliseconds()),
			slog.Any("request_id", requestID),
			slog.String("client_ip", c.ClientIP()),
			slog.String("user", actingUser(c)),
		)
	}
}

// MetricsMiddleware records request counts and latencies labelled by method,
// route template and status. Both vectors take exactly those three labels.
func MetricsMiddleware(requests *prometheus.CounterVec, duration *prometheus.HistogramVec) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		status := strconv.Itoa(c.Writer.Status())

		requests.WithLabelValues(c.Request.Method, route, status).Inc()
		duration.WithLabelValues(c.Request.Method, route, status).Observe(time.Since(start).Seconds())
	}
}
