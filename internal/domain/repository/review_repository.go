package repository

import (
	"context"
	"iter"

	"github.com/YouSangSon/movie-catalog-service/internal/domain/entity"
)

// ReviewFilter는 리뷰 목록 조회 조건입니다
type ReviewFilter struct {
	// MovieInfoID가 nil이 아니면 해당 영화 정보의 리뷰만 조회합니다
	MovieInfoID *string
}

// ReviewRepository는 리뷰 저장소 인터페이스입니다
type ReviewRepository interface {
	Save(ctx context.Context, review *entity.Review) error

	// FindByID는 id로 조회합니다. 없으면 entity.ErrReviewNotFound를 반환합니다
	FindByID(ctx context.Context, id string) (*entity.Review, error)

	// Find는 조건에 맞는 리뷰를 지연 순회합니다
	Find(ctx context.Context, filter ReviewFilter) iter.Seq2[*entity.Review, error]

	// DeleteByID는 id로 삭제합니다. 없는 id도 에러가 아닙니다
	DeleteByID(ctx context.Context, id string) error

	HealthCheck(ctx context.Context) error
}
