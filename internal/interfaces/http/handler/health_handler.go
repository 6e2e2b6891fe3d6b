package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheckFunc는 의존성 상태를 확인하는 함수입니다
type HealthCheckFunc func(ctx context.Context) error

// Dependency는 헬스체크 대상 의존성입니다. Critical이 false면 실패해도 degraded입니다
type Dependency struct {
	Name     string
	Check    HealthCheckFunc
	Critical bool
}

// HealthHandler는 헬스체크 핸들러입니다
type HealthHandler struct {
	version      string
	dependencies []Dependency
	timeout      time.Duration
}

// NewHealthHandler는 새로운 HealthHandler를 생성합니다
func NewHealthHandler(version string, dependencies ...Dependency) *HealthHandler {
	return &HealthHandler{
		version:      version,
		dependencies: dependencies,
		timeout:      2 * time.Second,
	}
}

// HealthResponse는 헬스체크 응답입니다
type HealthResponse struct {
	Status    string                 `json:"status"` // "healthy", "degraded", "unhealthy"
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Checks    map[string]HealthCheck `json:"checks"`
}

// HealthCheck는 개별 의존성 체크 결과입니다
type HealthCheck struct {
	Status   string  `json:"status"`
	Message  string  `json:"message,omitempty"`
	Duration float64 `json:"duration_ms"`
}

// Health godoc
// @Summary      Health check
// @Description  Check the health status of the service and its dependencies
// @Tags         health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Failure      503  {object}  HealthResponse
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   h.version,
		Checks:    make(map[string]HealthCheck, len(h.dependencies)),
	}

	for _, dep := range h.dependencies {
		start := time.Now()
		err := dep.Check(ctx)
		check := HealthCheck{
			Status:   "healthy",
			Duration: float64(time.Since(start).Milliseconds()),
		}
		if err != nil {
			check.Status = "unhealthy"
			check.Message = err.Error()
			if dep.Critical {
				response.Status = "unhealthy"
			} else if response.Status == "healthy" {
				response.Status = "degraded"
			}
		}
		response.Checks[dep.Name] = check
	}

	statusCode := http.StatusOK
	if response.Status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}
	c.JSON(statusCode, response)
}

// Ready godoc
// @Summary      Readiness check
// @Description  Check if the service is ready to accept traffic (Kubernetes readiness probe)
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]interface{}
// @Router       /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	for _, dep := range h.dependencies {
		if !dep.Critical {
			continue
		}
		if err := dep.Check(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"reason": dep.Name + " check failed",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"timestamp": time.Now(),
	})
}
