package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/breakbetter-backend/internal/platform/ctxutil"
	"github.com/yungbote/breakbetter-backend/internal/platform/logger"
)

// Liveness and scrape traffic only shows up at debug level.
var quietRoutes = map[string]bool{
	"/healthcheck": true,
	"/metrics":     true,
}

func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	if log == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := requestLogFields(c, time.Since(start))
		status := c.Writer.Status()
		switch {
		case status >= 500:
			log.Error("HTTP request", fields...)
		case status >= 400:
			log.Warn("HTTP request", fields...)
		case quietRoutes[c.FullPath()]:
			log.Debug("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	}
}

func requestLogFields(c *gin.Context, dur time.Duration) []interface{} {
	route := c.FullPath()
	if route == "" {
		route = c.Request.URL.Path
	}
	fields := []interface{}{
		"method", c.Request.Method,
		"route", route,
		"status", c.Writer.Status(),
		"bytes", c.Writer.Size(),
		"duration_ms", dur.Milliseconds(),
	}
	ctx := c.Request.Context()
	traceID, requestID := ctxutil.TraceIDs(ctx)
	if traceID != "" {
		fields = append(fields, "trace_id", traceID)
	}
	if requestID != "" {
		fields = append(fields, "request_id", requestID)
	}
	if rd := ctxutil.GetRequestData(ctx); rd != nil && rd.UserID != uuid.Nil {
		fields = append(fields, "user_id", rd.UserID.String())
	}
	if len(c.Errors) > 0 {
		fields = append(fields, "errors", c.Errors.String())
	}
	return fields
}
