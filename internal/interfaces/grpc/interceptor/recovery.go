package interceptor

import (
	"context"
	"runtime/debug"

	"github.com/YouSangSon/movie-catalog-service/internal/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// UnaryRecoveryInterceptor는 gRPC unary 요청에서 패닉을 복구합니다
func UnaryRecoveryInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = recovered(ctx, info.FullMethod, r)
			}
		}()

		return handler(ctx, req)
	}
}

// StreamRecoveryInterceptor는 gRPC stream 요청에서 패닉을 복구합니다
func StreamRecoveryInterceptor() grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = recovered(ss.Context(), info.FullMethod, r)
			}
		}()

		return handler(srv, ss)
	}
}

func recovered(ctx context.Context, method string, r interface{}) error {
	logger.Error(ctx, "panic recovered in gRPC handler",
		zap.String("method", method),
		zap.Any("panic", r),
		zap.String("stack", string(debug.Stack())),
	)
	return status.Errorf(codes.Internal, "internal server error")
}
