package app

import (
	"context"
	"fmt"

	"github.com/YouSangSon/movie-catalog-service/internal/application/usecase"
	"github.com/YouSangSon/movie-catalog-service/internal/config"
	"github.com/YouSangSon/movie-catalog-service/internal/domain/repository"
	"github.com/YouSangSon/movie-catalog-service/internal/infrastructure/persistence/memory"
	"github.com/YouSangSon/movie-catalog-service/internal/infrastructure/persistence/mongodb"
	"github.com/YouSangSon/movie-catalog-service/internal/infrastructure/upstream"
	grpcServer "github.com/YouSangSon/movie-catalog-service/internal/interfaces/grpc"
	httpHandler "github.com/YouSangSon/movie-catalog-service/internal/interfaces/http/handler"
	"github.com/YouSangSon/movie-catalog-service/internal/interfaces/http/router"
	"github.com/YouSangSon/movie-catalog-service/internal/pkg/circuitbreaker"
	"github.com/YouSangSon/movie-catalog-service/internal/pkg/logger"
)

// services는 role별로 구성된 HTTP 라우트와 헬스체크 대상입니다
type services struct {
	routes       router.Options
	dependencies []httpHandler.Dependency
}

// grpcChecks는 critical 의존성만 gRPC health 감시 대상으로 돌려줍니다
func (s *services) grpcChecks() []grpcServer.CheckFunc {
	checks := make([]grpcServer.CheckFunc, 0, len(s.dependencies))
	for _, dep := range s.dependencies {
		if dep.Critical {
			checks = append(checks, grpcServer.CheckFunc(dep.Check))
		}
	}
	return checks
}

func newServices(ctx context.Context, cfg *config.Config, infra *infrastructure) (*services, error) {
	s := &services{}

	switch cfg.App.Role {
	case config.RoleMovieInfo:
		var repo repository.MovieInfoRepository = memory.NewMovieInfoRepository()
		if infra.database != nil {
			repo = mongodb.NewMovieInfoRepository(infra.database)
		}
		uc := usecase.NewMovieInfoUseCase(repo, infra.publisher)
		s.routes.MovieInfos = httpHandler.NewMovieInfoHandler(uc)
		s.dependencies = append(s.dependencies, httpHandler.Dependency{
			Name: storageName(infra), Check: uc.HealthCheck, Critical: true,
		})

	case config.RoleReview:
		var repo repository.ReviewRepository = memory.NewReviewRepository()
		if infra.database != nil {
			repo = mongodb.NewReviewRepository(infra.database)
		}
		uc := usecase.NewReviewUseCase(repo, infra.publisher, cfg.Validation.MaxRating)
		s.routes.Reviews = httpHandler.NewReviewHandler(uc)
		s.dependencies = append(s.dependencies, httpHandler.Dependency{
			Name: storageName(infra), Check: uc.HealthCheck, Critical: true,
		})

	case config.RoleMovies:
		breakerConfig := circuitbreaker.Config{
			MaxRequests: cfg.Upstream.CircuitBreaker.MaxRequests,
			Interval:    cfg.Upstream.CircuitBreaker.Interval,
			Timeout:     cfg.Upstream.CircuitBreaker.Timeout,
		}
		if threshold := cfg.Upstream.CircuitBreaker.FailureThreshold; threshold > 0 {
			breakerConfig.ReadyToTrip = func(counts circuitbreaker.Counts) bool {
				return counts.ConsecutiveFailures >= threshold
			}
		}

		movieInfos := upstream.NewMovieInfoClient(upstream.Config{
			BaseURL:        cfg.Upstream.MovieInfoURL,
			Timeout:        cfg.Upstream.Timeout,
			CircuitBreaker: breakerConfig,
		})
		reviews := upstream.NewReviewClient(upstream.Config{
			BaseURL:        cfg.Upstream.ReviewURL,
			Timeout:        cfg.Upstream.Timeout,
			CircuitBreaker: breakerConfig,
		})
		uc := usecase.NewMovieUseCase(movieInfos, reviews, cfg.Upstream.BatchConcurrency)
		s.routes.Movies = httpHandler.NewMovieHandler(uc)

		// upstream 장애는 degraded로만 보고합니다
		s.dependencies = append(s.dependencies,
			httpHandler.Dependency{Name: "movieinfo-service", Check: breakerCheck(movieInfos.BreakerState)},
			httpHandler.Dependency{Name: "review-service", Check: breakerCheck(reviews.BreakerState)},
		)

	default:
		return nil, fmt.Errorf("unknown role %q", cfg.App.Role)
	}

	if infra.redis != nil {
		s.dependencies = append(s.dependencies, httpHandler.Dependency{
			Name: "redis",
			Check: func(ctx context.Context) error {
				return infra.redis.Ping(ctx).Err()
			},
		})
	}
	if infra.vault != nil {
		s.dependencies = append(s.dependencies, httpHandler.Dependency{Name: "vault", Check: infra.vault.HealthCheck})
	}
	if infra.limiter != nil {
		s.routes.RateLimiter = infra.limiter
	}

	logger.Info(ctx, "services initialized", logger.Component(string(cfg.App.Role)), logger.Count(len(s.dependencies)))
	return s, nil
}

func storageName(infra *infrastructure) string {
	if infra.database != nil {
		return "mongodb"
	}
	return "memory"
}

func breakerCheck(state func() circuitbreaker.State) httpHandler.HealthCheckFunc {
	return func(context.Context) error {
		if current := state(); current == circuitbreaker.StateOpen {
			return fmt.Errorf("circuit breaker is %s", current)
		}
		return nil
	}
}
