package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/YouSangSon/movie-catalog-service/internal/application/dto"
	"github.com/YouSangSon/movie-catalog-service/internal/pkg/errors"
	"github.com/YouSangSon/movie-catalog-service/internal/pkg/logger"
	"github.com/YouSangSon/movie-catalog-service/internal/pkg/metrics"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Limiter는 키별 요청 허용 여부를 판단합니다
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
	Limit() int64
}

// RateLimit는 클라이언트 IP 기반 rate limiting 미들웨어입니다.
// 제한기 장애 시에는 요청을 통과시킵니다
func RateLimit(limiter Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		clientIP := c.ClientIP()

		allowed, retryAfter, err := limiter.Allow(ctx, clientIP)
		if err != nil {
			logger.Warn(ctx, "rate limit check failed, allowing request",
				zap.String("client_ip", clientIP),
				zap.Error(err),
			)
			c.Next()
			return
		}

		if !allowed {
			metrics.GetMetrics().RecordRateLimitRejected()
			logger.Warn(ctx, "rate limit exceeded",
				zap.String("client_ip", clientIP),
				zap.Int64("limit", limiter.Limit()),
			)

			seconds := int(math.Ceil(retryAfter.Seconds()))
			if seconds < 1 {
				seconds = 1
			}
			c.Header("Retry-After", strconv.Itoa(seconds))
			appErr := errors.ErrRateLimitExceeded
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error:   string(appErr.Code),
				Message: appErr.Message,
			})
			return
		}

		c.Next()
	}
}
