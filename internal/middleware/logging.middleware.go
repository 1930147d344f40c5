package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LoggingMiddleware provides request logging functionality
type LoggingMiddleware struct {
	config *MiddlewareConfig
}

// NewLoggingMiddleware creates a new logging middleware
func NewLoggingMiddleware(config *MiddlewareConfig) *LoggingMiddleware {
	return &LoggingMiddleware{
		config: config,
	}
}

// RequestLogger provides request logging middleware
func (l *LoggingMiddleware) RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.config.LoggingEnabled {
			c.Next()
			return
		}

		start := time.Now()

		requestID := generateRequestID()
		c.Set("requestId", requestID)

		logger := l.createRequestLogger(c, requestID)

		c.Next()

		duration := time.Since(start)

		logger.Info("Request completed",
			zap.Int("status", c.Writer.Status()),
			zap.Int("size", c.Writer.Size()),
			zap.Duration("duration", duration),
			zap.String("error", c.Errors.String()))

		if duration > 5*time.Second {
			logger.Warn("Slow request detected",
				zap.Duration("duration", duration),
				zap.String("path", c.Request.URL.Path))
		}
	}
}

// createRequestLogger creates a logger with request context
func (l *LoggingMiddleware) createRequestLogger(c *gin.Context, requestID string) *zap.Logger {
	fields := []zap.Field{
		zap.String("requestId", requestID),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
	}

	if l.config.LogIPAddress {
		fields = append(fields, zap.String("ip", getClientIP(c)))
	}

	if l.config.LogUserAgent {
		fields = append(fields, zap.String("userAgent", c.GetHeader("User-Agent")))
	}

	return zap.L().With(fields...)
}

// SecurityLogger records authentication attempts and failures.
func (l *LoggingMiddleware) SecurityLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.Request.URL.Path
		isAuthPath := c.Request.Method == "POST" &&
			(path == "/api/v1/auth/login" || path == "/api/v1/auth/register")

		if isAuthPath {
			zap.L().Info("Authentication attempt",
				zap.String("path", path),
				zap.Int("status", c.Writer.Status()),
				zap.String("ip", getClientIP(c)),
				zap.String("userAgent", c.GetHeader("User-Agent")))
		}

		if c.Writer.Status() == http.StatusUnauthorized {
			zap.L().Warn("Authentication failed",
				zap.String("path", path),
				zap.String("ip", getClientIP(c)),
				zap.String("userAgent", c.GetHeader("User-Agent")))
		}
	}
}

func generateRequestID() string {
	return uuid.New().String()
}
