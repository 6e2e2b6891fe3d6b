package entity

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrMovieInfoNotFound는 영화 정보를 찾을 수 없을 때 발생합니다
	ErrMovieInfoNotFound = errors.New("movie info not found")

	// ErrReviewNotFound는 리뷰를 찾을 수 없을 때 발생합니다
	ErrReviewNotFound = errors.New("review not found")

	// ErrUpstreamNotFound는 영화 정보 서비스가 404를 반환했을 때 발생합니다
	ErrUpstreamNotFound = errors.New("upstream resource not found")

	// ErrUpstreamUnavailable은 의존 서비스에 도달할 수 없을 때 발생합니다
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")
)

// ValidationError는 필드 제약 위반 목록입니다.
// 메시지는 중복 없이 정렬되어 쉼표로 이어집니다
type ValidationError struct {
	Violations []string
}

// NewValidationError는 위반 메시지를 정렬하고 중복을 제거해 ValidationError를 만듭니다
func NewValidationError(violations []string) *ValidationError {
	sorted := slices.Clone(violations)
	slices.Sort(sorted)
	return &ValidationError{Violations: slices.Compact(sorted)}
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Violations, ",")
}

// ReviewNotFound는 주어진 id에 대한 NotFound 에러를 만듭니다
func ReviewNotFound(id string) error {
	return fmt.Errorf("no review for id %s: %w", id, ErrReviewNotFound)
}

// MovieInfoNotFound는 주어진 id에 대한 NotFound 에러를 만듭니다
func MovieInfoNotFound(id string) error {
	return fmt.Errorf("no movie info for id %s: %w", id, ErrMovieInfoNotFound)
}
