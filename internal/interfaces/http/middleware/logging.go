package middleware

import (
	"time"

	"github.com/YouSangSon/movie-catalog-service/internal/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Logger는 HTTP 요청/응답을 로깅합니다
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		ctx := c.Request.Context()
		duration := time.Since(start)
		statusCode := c.Writer.Status()
		fields := []zap.Field{
			logger.HTTPMethod(c.Request.Method),
			logger.HTTPPath(path),
			logger.HTTPStatus(statusCode),
			logger.RemoteAddr(c.ClientIP()),
			logger.DurationMs(duration),
			zap.Int("response_size", c.Writer.Size()),
		}

		if len(c.Errors) > 0 {
			logger.Error(ctx, "request completed with errors",
				append(fields, zap.Strings("errors", c.Errors.Errors()))...,
			)
			return
		}

		logLevel := logger.Info
		if statusCode >= 500 {
			logLevel = logger.Error
		} else if statusCode >= 400 {
			logLevel = logger.Warn
		}
		logLevel(ctx, "request completed", fields...)
	}
}
