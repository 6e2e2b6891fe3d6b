package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/YouSangSon/movie-catalog-service/internal/config"
	grpcServer "github.com/YouSangSon/movie-catalog-service/internal/interfaces/grpc"
	httpHandler "github.com/YouSangSon/movie-catalog-service/internal/interfaces/http/handler"
	"github.com/YouSangSon/movie-catalog-service/internal/interfaces/http/router"
	"github.com/YouSangSon/movie-catalog-service/internal/pkg/logger"
	"github.com/YouSangSon/movie-catalog-service/internal/pkg/metrics"
	"github.com/YouSangSon/movie-catalog-service/internal/pkg/tracing"
	"go.uber.org/zap"
)

// Run은 role에 해당하는 서비스를 설정 로드부터 종료 신호에 의한 graceful shutdown까지 실행합니다
func Run(role config.Role, configName string) error {
	// ============================================
	// 1. Configuration
	// ============================================
	cfg, err := config.LoadConfig("./configs", configName)
	if err != nil {
		return err
	}
	cfg.App.Role = role
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// ============================================
	// 2. Logger Initialization
	// ============================================
	if err := logger.Init(logger.Config{
		Environment: cfg.App.Environment,
		Level:       cfg.Observability.Logging.Level,
		Format:      cfg.Observability.Logging.Format,
		ServiceName: cfg.App.Name,
		Version:     cfg.App.Version,
	}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	logger.Info(ctx, "starting service",
		zap.String("role", string(role)),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
		zap.String("go_version", runtime.Version()),
	)

	// ============================================
	// 3. Metrics Initialization
	// ============================================
	m := metrics.Init(metricsNamespace(cfg.App.Name))

	// ============================================
	// 4. Tracing Initialization
	// ============================================
	tracingShutdown, err := tracing.Init(&tracing.Config{
		ServiceName:    cfg.App.Name,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		JaegerEndpoint: cfg.Observability.Tracing.JaegerEndpoint,
		SampleRatio:    cfg.Observability.Tracing.SamplingRate,
		Enabled:        cfg.Observability.Tracing.Enabled,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracingShutdown(shutdownCtx); err != nil {
			logger.Error(ctx, "failed to shutdown tracing", zap.Error(err))
		}
	}()

	// ============================================
	// 5. Infrastructure (Vault, MongoDB, Redis, Kafka)
	// ============================================
	infra, err := newInfrastructure(ctx, cfg)
	if err != nil {
		return err
	}
	defer infra.close(context.Background())

	// ============================================
	// 6. UseCases & Handlers
	// ============================================
	svc, err := newServices(ctx, cfg, infra)
	if err != nil {
		return err
	}

	// ============================================
	// 7. Router
	// ============================================
	opts := svc.routes
	opts.Environment = cfg.App.Environment
	opts.EnableTracing = cfg.Observability.Tracing.Enabled
	opts.EnableMetrics = cfg.Observability.Metrics.Enabled
	opts.Metrics = m
	opts.Health = httpHandler.NewHealthHandler(cfg.App.Version, svc.dependencies...)
	r := router.SetupRouter(opts)

	// ============================================
	// 8. HTTP Server
	// ============================================
	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.HTTP.Port),
		Handler:        r,
		ReadTimeout:    cfg.Server.HTTP.ReadTimeout,
		WriteTimeout:   cfg.Server.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20, // 1 MB
		IdleTimeout:    120 * time.Second,
	}

	serveErr := make(chan error, 2)
	go func() {
		logger.Info(ctx, "starting HTTP server", zap.Int("port", cfg.Server.HTTP.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- fmt.Errorf("http server: %w", err)
		}
	}()

	// ============================================
	// 9. gRPC Health Server (Optional)
	// ============================================
	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()

	var gs *grpcServer.Server
	if cfg.Server.GRPC.Port > 0 {
		lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.GRPC.Port))
		if err != nil {
			return fmt.Errorf("failed to listen for gRPC: %w", err)
		}

		gs = grpcServer.NewServer(grpcServer.Config{
			ServiceName:       cfg.App.Name,
			EnableReflection:  cfg.Server.GRPC.EnableReflection,
			MaxConnectionIdle: cfg.Server.GRPC.MaxConnectionIdle,
			CheckInterval:     cfg.Server.GRPC.CheckInterval,
			Metrics:           m,
		})
		go gs.WatchDependencies(watchCtx, svc.grpcChecks()...)
		go func() {
			logger.Info(ctx, "starting gRPC health server", zap.Int("port", cfg.Server.GRPC.Port))
			if err := gs.Serve(lis); err != nil {
				serveErr <- fmt.Errorf("grpc server: %w", err)
			}
		}()
	}

	// ============================================
	// 10. Graceful Shutdown
	// ============================================
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	var runErr error
	select {
	case sig := <-quit:
		logger.Info(ctx, "shutting down server gracefully...", zap.String("signal", sig.String()))
	case runErr = <-serveErr:
		logger.Error(ctx, "server stopped unexpectedly", zap.Error(runErr))
	}

	stopWatch()
	if gs != nil {
		gs.GracefulStop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "server forced to shutdown", zap.Error(err))
	}

	logger.Info(ctx, "server exited")
	return runErr
}

// metricsNamespace는 서비스 이름을 Prometheus namespace 규칙에 맞게 바꿉니다
func metricsNamespace(name string) string {
	return strings.NewReplacer("-", "_", ".", "_").Replace(name)
}
