package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/YouSangSon/movie-catalog-service/internal/domain/entity"
	"github.com/YouSangSon/movie-catalog-service/internal/pkg/circuitbreaker"
	"github.com/YouSangSon/movie-catalog-service/internal/pkg/logger"
	"github.com/YouSangSon/movie-catalog-service/internal/pkg/metrics"
	"github.com/YouSangSon/movie-catalog-service/internal/pkg/tracing"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	// maxBodySize는 읽을 응답 본문의 최대 크기입니다
	maxBodySize = 4 << 20

	requestIDHeader = "X-Request-ID"
)

// Config는 upstream 서비스 클라이언트 설정입니다
type Config struct {
	BaseURL        string
	Timeout        time.Duration
	CircuitBreaker circuitbreaker.Config
}

// httpClient는 circuit breaker로 보호되는 JSON GET 클라이언트입니다
type httpClient struct {
	name    string
	baseURL string
	client  *http.Client
	breaker *circuitbreaker.CircuitBreaker
}

func newHTTPClient(name string, cfg Config) *httpClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	cbConfig := cfg.CircuitBreaker
	// 404는 대상 서비스가 정상 응답한 것이므로 실패로 세지 않습니다
	cbConfig.IsSuccessful = func(err error) bool {
		return err == nil || errors.Is(err, entity.ErrUpstreamNotFound)
	}
	onStateChange := cbConfig.OnStateChange
	cbConfig.OnStateChange = func(name string, from, to circuitbreaker.State) {
		metrics.GetMetrics().SetCircuitBreakerState(name, int(to))
		logger.Warn(context.Background(), "circuit breaker state changed",
			logger.Upstream(name),
			zap.String("from", from.String()),
			logger.CircuitState(to.String()),
		)
		if onStateChange != nil {
			onStateChange(name, from, to)
		}
	}

	return &httpClient{
		name:    name,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		breaker: circuitbreaker.NewCircuitBreaker(name, cbConfig),
	}
}

// getJSON은 GET 요청 결과를 target에 디코딩합니다.
// 404, 410과 빈 본문은 entity.ErrUpstreamNotFound, 연결 실패와 그 밖의 non-2xx, 열린 circuit은
// entity.ErrUpstreamUnavailable로 분류됩니다. 잘못된 본문은 분류되지 않은 에러입니다
func (c *httpClient) getJSON(ctx context.Context, requestURL string, target interface{}) error {
	_, err := circuitbreaker.Run(ctx, c.breaker, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.do(ctx, requestURL, target)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) || errors.Is(err, circuitbreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %s: %w", entity.ErrUpstreamUnavailable, c.name, err)
	}
	return err
}

func (c *httpClient) do(ctx context.Context, requestURL string, target interface{}) (err error) {
	ctx, span := tracing.StartSpan(ctx, "upstream."+c.name, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	start := time.Now()
	status := 0
	defer func() {
		duration := time.Since(start)
		metrics.GetMetrics().RecordUpstreamRequest(c.name, statusLabel(err), duration)
		logger.LogUpstreamCall(ctx, c.name, requestURL, status, duration.Milliseconds(), err)
		if err != nil && !errors.Is(err, entity.ErrUpstreamNotFound) {
			tracing.RecordError(ctx, err)
		}
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if requestID := logger.RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set(requestIDHeader, requestID)
	}
	tracing.InjectHTTPHeaders(ctx, req.Header)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", entity.ErrUpstreamUnavailable, c.name, err)
	}
	defer resp.Body.Close()

	status = resp.StatusCode
	tracing.SetAttributes(ctx, semconv.HTTPStatusCodeKey.Int(status))

	body := io.LimitReader(resp.Body, maxBodySize)
	switch {
	case status == http.StatusNotFound || status == http.StatusGone:
		_, _ = io.Copy(io.Discard, body)
		return fmt.Errorf("%s returned %d: %w", c.name, status, entity.ErrUpstreamNotFound)
	case status < 200 || status >= 300:
		_, _ = io.Copy(io.Discard, body)
		return fmt.Errorf("%w: %s returned %d", entity.ErrUpstreamUnavailable, c.name, status)
	}

	if err := json.NewDecoder(body).Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%s returned an empty body: %w", c.name, entity.ErrUpstreamNotFound)
		}
		return fmt.Errorf("failed to decode %s response: %w", c.name, err)
	}
	return nil
}

// BreakerState는 circuit breaker의 현재 상태입니다
func (c *httpClient) BreakerState() circuitbreaker.State {
	return c.breaker.State()
}

func statusLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, entity.ErrUpstreamNotFound):
		return "not_found"
	case errors.Is(err, entity.ErrUpstreamUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}
