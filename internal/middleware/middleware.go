package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/ArowuTest/estatehub-backend/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextRequestID is the context key holding the request ID
const ContextRequestID = "RequestID"

// CORSMiddleware allows credentialed requests from the configured origins
func CORSMiddleware(allowedHosts []string) gin.HandlerFunc {
	allowAll := false
	allowed := make(map[string]bool, len(allowedHosts))
	for _, h := range allowedHosts {
		if h == "*" {
			allowAll = true
		}
		allowed[strings.TrimRight(h, "/")] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (allowAll || allowed[origin]) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Vary", "Origin")
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// RequestIDMiddleware is a middleware for adding a request ID to the context
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(ContextRequestID, requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()
	}
}

// LoggerMiddleware is a middleware for logging requests
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", latency.String(),
			"clientIp", c.ClientIP(),
			"requestId", c.GetString(ContextRequestID),
		}
		if len(c.Errors) > 0 {
			args = append(args, "errors", c.Errors.String())
		}

		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			logger.Error("Request failed", args...)
		case status >= http.StatusBadRequest:
			logger.Warn("Request rejected", args...)
		default:
			logger.Info("Request handled", args...)
		}
	}
}

// RecoveryMiddleware turns panics into a 500 response
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("Panic recovered", "panic", recovered, "path", c.Request.URL.Path, "requestId", c.GetString(ContextRequestID))
		abort(c, http.StatusInternalServerError, "Internal server error")
	})
}
