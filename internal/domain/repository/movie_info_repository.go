package repository

import (
	"context"
	"iter"

	"github.com/YouSangSon/movie-catalog-service/internal/domain/entity"
)

// MovieInfoRepository는 영화 정보 저장소 인터페이스입니다
type MovieInfoRepository interface {
	// Save는 id 기준으로 영화 정보를 저장합니다. 이미 있으면 교체합니다
	Save(ctx context.Context, info *entity.MovieInfo) error

	// FindByID는 id로 조회합니다. 없으면 entity.ErrMovieInfoNotFound를 반환합니다
	FindByID(ctx context.Context, id string) (*entity.MovieInfo, error)

	// FindAll은 전체 목록을 지연 순회합니다. 순회할 때마다 저장소를 새로 읽습니다
	FindAll(ctx context.Context) iter.Seq2[*entity.MovieInfo, error]

	// DeleteByID는 id로 삭제합니다. 없는 id도 에러가 아닙니다
	DeleteByID(ctx context.Context, id string) error

	// HealthCheck는 저장소의 상태를 확인합니다
	HealthCheck(ctx context.Context) error
}
