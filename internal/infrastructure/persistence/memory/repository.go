package memory

import (
	"context"
	"iter"

	"github.com/YouSangSon/movie-catalog-service/internal/domain/entity"
	"github.com/YouSangSon/movie-catalog-service/internal/domain/repository"
)

// MovieInfoRepository는 인메모리 영화 정보 저장소입니다
type MovieInfoRepository struct {
	store *store[*entity.MovieInfo]
}

var _ repository.MovieInfoRepository = (*MovieInfoRepository)(nil)

// NewMovieInfoRepository는 새로운 인메모리 영화 정보 저장소를 생성합니다
func NewMovieInfoRepository() *MovieInfoRepository {
	return &MovieInfoRepository{store: newStore((*entity.MovieInfo).Clone)}
}

func (r *MovieInfoRepository) Save(ctx context.Context, info *entity.MovieInfo) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.put(info.ID, info)
	return nil
}

func (r *MovieInfoRepository) FindByID(ctx context.Context, id string) (*entity.MovieInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	info, ok := r.store.get(id)
	if !ok {
		return nil, entity.MovieInfoNotFound(id)
	}
	return info, nil
}

// FindAll은 순회를 시작하는 시점의 스냅샷을 순회합니다
func (r *MovieInfoRepository) FindAll(ctx context.Context) iter.Seq2[*entity.MovieInfo, error] {
	return func(yield func(*entity.MovieInfo, error) bool) {
		iterate(ctx, r.store.snapshot(nil), yield)
	}
}

func (r *MovieInfoRepository) DeleteByID(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.delete(id)
	return nil
}

func (r *MovieInfoRepository) HealthCheck(ctx context.Context) error {
	return nil
}

// ReviewRepository는 인메모리 리뷰 저장소입니다
type ReviewRepository struct {
	store *store[*entity.Review]
}

var _ repository.ReviewRepository = (*ReviewRepository)(nil)

// NewReviewRepository는 새로운 인메모리 리뷰 저장소를 생성합니다
func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{store: newStore((*entity.Review).Clone)}
}

func (r *ReviewRepository) Save(ctx context.Context, review *entity.Review) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.put(review.ID, review)
	return nil
}

func (r *ReviewRepository) FindByID(ctx context.Context, id string) (*entity.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	review, ok := r.store.get(id)
	if !ok {
		return nil, entity.ReviewNotFound(id)
	}
	return review, nil
}

func (r *ReviewRepository) Find(ctx context.Context, filter repository.ReviewFilter) iter.Seq2[*entity.Review, error] {
	var keep func(*entity.Review) bool
	if filter.MovieInfoID != nil {
		movieInfoID := *filter.MovieInfoID
		keep = func(review *entity.Review) bool { return review.MovieInfoID == movieInfoID }
	}

	return func(yield func(*entity.Review, error) bool) {
		iterate(ctx, r.store.snapshot(keep), yield)
	}
}

func (r *ReviewRepository) DeleteByID(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.delete(id)
	return nil
}

func (r *ReviewRepository) HealthCheck(ctx context.Context) error {
	return nil
}

func iterate[T any](ctx context.Context, items []T, yield func(T, error) bool) {
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			var zero T
			yield(zero, err)
			return
		}
		if !yield(item, nil) {
			return
		}
	}
}
