package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/YouSangSon/movie-catalog-service/internal/domain/entity"
	"github.com/YouSangSon/movie-catalog-service/internal/pkg/circuitbreaker"
)

// ErrorCode는 에러 코드 타입입니다
type ErrorCode string

const (
	// 일반 에러
	ErrCodeInternal   ErrorCode = "INTERNAL_ERROR"
	ErrCodeBadRequest ErrorCode = "BAD_REQUEST"
	ErrCodeNotFound   ErrorCode = "NOT_FOUND"

	// 도메인 에러
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// 업스트림 에러
	ErrCodeUpstreamNotFound   ErrorCode = "UPSTREAM_NOT_FOUND"
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	ErrCodeCircuitOpen        ErrorCode = "CIRCUIT_BREAKER_OPEN"

	// 데이터베이스 에러
	ErrCodeDatabaseConnection ErrorCode = "DATABASE_CONNECTION_ERROR"

	ErrCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
)

// AppError는 애플리케이션 에러입니다
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	HTTPStatus int       `json:"-"`
	Err        error     `json:"-"`
}

// Error는 error 인터페이스를 구현합니다
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap은 원본 에러를 반환합니다
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetails는 상세 정보를 추가합니다
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// New는 새로운 AppError를 생성합니다
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: getHTTPStatus(code),
	}
}

// Wrap은 기존 에러를 AppError로 래핑합니다
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}

	// 이미 AppError인 경우
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: getHTTPStatus(code),
		Err:        err,
	}
}

// FromDomain은 도메인 에러를 응답용 AppError로 변환합니다
func FromDomain(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var validationErr *entity.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return Wrap(err, ErrCodeInvalidInput, validationErr.Error())
	case errors.Is(err, entity.ErrUpstreamNotFound):
		return Wrap(err, ErrCodeUpstreamNotFound, "movie info not found")
	case errors.Is(err, circuitbreaker.ErrCircuitOpen), errors.Is(err, circuitbreaker.ErrTooManyRequests):
		return Wrap(err, ErrCodeCircuitOpen, "dependent service unavailable").WithDetails(upstreamDetails(err))
	case errors.Is(err, entity.ErrUpstreamUnavailable):
		return Wrap(err, ErrCodeServiceUnavailable, "dependent service unavailable")
	case errors.Is(err, entity.ErrReviewNotFound):
		return Wrap(err, ErrCodeNotFound, err.Error())
	case errors.Is(err, entity.ErrMovieInfoNotFound):
		return Wrap(err, ErrCodeNotFound, err.Error())
	default:
		return Wrap(err, ErrCodeInternal, "internal server error")
	}
}

func upstreamDetails(err error) string {
	if errors.Is(err, circuitbreaker.ErrTooManyRequests) {
		return "circuit breaker is half-open"
	}
	return circuitbreaker.ErrCircuitOpen.Error()
}

// Is는 에러가 특정 코드인지 확인합니다
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// GetHTTPStatus는 에러의 HTTP 상태 코드를 반환합니다
func GetHTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// getHTTPStatus는 에러 코드에 대응하는 HTTP 상태 코드를 반환합니다
func getHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeBadRequest, ErrCodeInvalidInput:
		return http.StatusBadRequest
	case ErrCodeNotFound, ErrCodeUpstreamNotFound:
		return http.StatusNotFound
	case ErrCodeServiceUnavailable, ErrCodeCircuitOpen, ErrCodeDatabaseConnection:
		return http.StatusServiceUnavailable
	case ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// 미리 정의된 에러들
var (
	ErrInternal          = New(ErrCodeInternal, "internal server error")
	ErrRateLimitExceeded = New(ErrCodeRateLimitExceeded, "rate limit exceeded")
)
