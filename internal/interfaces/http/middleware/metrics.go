package middleware

import (
	"strconv"
	"time"

	"github.com/YouSangSon/movie-catalog-service/internal/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// Metrics는 Prometheus HTTP 메트릭을 수집합니다. 경로 라벨은 라우트 템플릿입니다
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		m.RecordHTTPRequest(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
			c.Writer.Size(),
		)
	}
}
