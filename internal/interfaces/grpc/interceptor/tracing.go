package interceptor

import (
	"context"
	"strings"

	"github.com/YouSangSon/movie-catalog-service/internal/pkg/logger"
	"github.com/YouSangSon/movie-catalog-service/internal/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// UnaryTracingInterceptor는 gRPC unary 요청에 span을 추가합니다
func UnaryTracingInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		ctx, span := startServerSpan(ctx, info.FullMethod)
		defer span.End()

		resp, err := handler(ctx, req)
		finishSpan(span, err)
		return resp, err
	}
}

// StreamTracingInterceptor는 gRPC stream 요청에 span을 추가합니다
func StreamTracingInterceptor() grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		ctx, span := startServerSpan(ss.Context(), info.FullMethod)
		defer span.End()

		err := handler(srv, &wrappedServerStream{ServerStream: ss, ctx: ctx})
		finishSpan(span, err)
		return err
	}
}

func startServerSpan(ctx context.Context, fullMethod string) (context.Context, trace.Span) {
	ctx, span := tracing.StartSpan(ctx, fullMethod, trace.WithSpanKind(trace.SpanKindServer))

	service, method := splitFullMethod(fullMethod)
	span.SetAttributes(
		semconv.RPCSystemGRPC,
		semconv.RPCServiceKey.String(service),
		semconv.RPCMethodKey.String(method),
	)

	ctx = logger.WithFields(ctx,
		logger.TraceID(tracing.GetTraceID(ctx)),
		logger.SpanID(tracing.GetSpanID(ctx)),
	)
	return ctx, span
}

func finishSpan(span trace.Span, err error) {
	st := status.Convert(err)
	span.SetAttributes(attribute.String("rpc.grpc.status_code", st.Code().String()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, st.Message())
	}
}

// splitFullMethod는 "/grpc.health.v1.Health/Check"를 서비스와 메서드로 나눕니다
func splitFullMethod(fullMethod string) (string, string) {
	fullMethod = strings.TrimPrefix(fullMethod, "/")
	if i := strings.LastIndex(fullMethod, "/"); i >= 0 {
		return fullMethod[:i], fullMethod[i+1:]
	}
	return fullMethod, ""
}
