package router

import (
	httpHandler "github.com/YouSangSon/movie-catalog-service/internal/interfaces/http/handler"
	"github.com/YouSangSon/movie-catalog-service/internal/interfaces/http/middleware"
	"github.com/YouSangSon/movie-catalog-service/internal/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options는 라우터 구성입니다. 서비스가 제공하지 않는 핸들러는 nil입니다
type Options struct {
	Environment   string
	EnableTracing bool
	EnableMetrics bool
	Metrics       *metrics.Metrics

	// RateLimiter가 nil이면 /v1 그룹에 속도 제한을 걸지 않습니다
	RateLimiter middleware.Limiter

	Health     *httpHandler.HealthHandler
	MovieInfos *httpHandler.MovieInfoHandler
	Reviews    *httpHandler.ReviewHandler
	Movies     *httpHandler.MovieHandler
}

// SetupRouter는 서비스의 모든 라우트를 구성합니다
func SetupRouter(opts Options) *gin.Engine {
	if opts.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global Middlewares
	router.Use(middleware.RequestID())
	if opts.EnableTracing {
		router.Use(middleware.Tracing())
	}
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	if opts.EnableMetrics && opts.Metrics != nil {
		router.Use(middleware.Metrics(opts.Metrics))
	}

	// ============================================
	// Health & Metrics Endpoints (no rate limit)
	// ============================================
	if opts.Health != nil {
		router.GET("/health", opts.Health.Health)
		router.GET("/ready", opts.Health.Ready)
	}
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ============================================
	// API v1 Group
	// ============================================
	v1 := router.Group("/v1")
	if opts.RateLimiter != nil {
		v1.Use(middleware.RateLimit(opts.RateLimiter))
	}

	if h := opts.MovieInfos; h != nil {
		movieInfos := v1.Group("/movieinfos")
		{
			movieInfos.POST("", h.Add)
			movieInfos.GET("", h.GetAll)
			movieInfos.GET("/:id", h.GetByID)
			movieInfos.PUT("/:id", h.Update)
			movieInfos.DELETE("/:id", h.Delete)
		}
	}

	if h := opts.Reviews; h != nil {
		reviews := v1.Group("/reviews")
		{
			reviews.POST("", h.Add)
			reviews.GET("", h.List)
			reviews.PUT("/:id", h.Update)
			reviews.DELETE("/:id", h.Delete)
		}
	}

	if h := opts.Movies; h != nil {
		movies := v1.Group("/movies")
		{
			movies.GET("", h.List)
			movies.GET("/:id", h.GetByID)
		}
	}

	return router
}
