package middleware

import (
	"github.com/YouSangSon/movie-catalog-service/internal/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader는 request ID 헤더 이름입니다
	RequestIDHeader = "X-Request-ID"

	// RequestIDKey는 gin context에서 request ID를 저장하는 키입니다
	RequestIDKey = "request_id"
)

// RequestID는 요청마다 고유한 ID를 부여하는 미들웨어입니다.
// 들어온 헤더가 있으면 그대로 쓰고, request context와 로거에도 기록합니다
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set(RequestIDKey, requestID)
		c.Writer.Header().Set(RequestIDHeader, requestID)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), requestID))

		c.Next()
	}
}

// GetRequestID는 gin context의 request ID를 반환합니다
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}
