package grpc

import (
	"context"
	"net"
	"time"

	"github.com/YouSangSon/movie-catalog-service/internal/interfaces/grpc/interceptor"
	"github.com/YouSangSon/movie-catalog-service/internal/pkg/logger"
	"github.com/YouSangSon/movie-catalog-service/internal/pkg/metrics"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/reflection"
)

// CheckFunc는 의존성 상태를 확인하는 함수입니다
type CheckFunc func(ctx context.Context) error

// Config는 gRPC 서버 설정입니다
type Config struct {
	// ServiceName은 health 서비스에 등록할 이름입니다. 빈 이름("")은 항상 함께 갱신됩니다
	ServiceName       string
	EnableReflection  bool
	MaxConnectionIdle time.Duration
	CheckInterval     time.Duration
	Metrics           *metrics.Metrics
}

// Server는 grpc.health.v1.Health를 제공하는 gRPC 서버입니다
type Server struct {
	server *grpc.Server
	health *health.Server
	cfg    Config
}

// NewServer는 인터셉터가 연결된 새로운 gRPC 서버를 생성합니다
func NewServer(cfg Config) *Server {
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.GetMetrics()
	}
	if cfg.CheckInterval <= 0 {
		cfg.CheckInterval = 10 * time.Second
	}

	opts := []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(
			interceptor.UnaryRecoveryInterceptor(),
			interceptor.UnaryTracingInterceptor(),
			interceptor.UnaryLoggingInterceptor(),
			interceptor.UnaryMetricsInterceptor(cfg.Metrics),
		),
		grpc.ChainStreamInterceptor(
			interceptor.StreamRecoveryInterceptor(),
			interceptor.StreamTracingInterceptor(),
			interceptor.StreamLoggingInterceptor(),
			interceptor.StreamMetricsInterceptor(cfg.Metrics),
		),
	}
	if cfg.MaxConnectionIdle > 0 {
		opts = append(opts, grpc.KeepaliveParams(keepalive.ServerParameters{
			MaxConnectionIdle: cfg.MaxConnectionIdle,
		}))
	}

	server := grpc.NewServer(opts...)
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(server, healthServer)
	if cfg.EnableReflection {
		reflection.Register(server)
	}

	s := &Server{server: server, health: healthServer, cfg: cfg}
	s.SetServing(false)
	return s
}

// SetServing은 health 상태를 갱신합니다
func (s *Server) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
	if s.cfg.ServiceName != "" {
		s.health.SetServingStatus(s.cfg.ServiceName, status)
	}
}

// WatchDependencies는 ctx가 끝날 때까지 주기적으로 check를 실행해 health 상태에 반영합니다
func (s *Server) WatchDependencies(ctx context.Context, checks ...CheckFunc) {
	run := func() {
		checkCtx, cancel := context.WithTimeout(ctx, s.cfg.CheckInterval)
		defer cancel()

		for _, check := range checks {
			if err := check(checkCtx); err != nil {
				logger.Warn(ctx, "dependency check failed, reporting NOT_SERVING", zap.Error(err))
				s.SetServing(false)
				return
			}
		}
		s.SetServing(true)
	}

	run()
	ticker := time.NewTicker(s.cfg.CheckInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			run()
		}
	}
}

// Serve는 listener에서 요청을 처리합니다. GracefulStop 전까지 반환하지 않습니다
func (s *Server) Serve(lis net.Listener) error {
	return s.server.Serve(lis)
}

// GracefulStop은 health를 NOT_SERVING으로 바꾸고 진행 중인 요청을 마친 뒤 종료합니다
func (s *Server) GracefulStop() {
	s.health.Shutdown()
	s.server.GracefulStop()
}
