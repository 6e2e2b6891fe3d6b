package usecase_test

import (
	"context"
	"iter"

	"github.com/YouSangSon/movie-catalog-service/internal/domain/entity"
	"github.com/YouSangSon/movie-catalog-service/internal/domain/repository"
	"github.com/stretchr/testify/mock"
)

// MockEventPublisher는 EventPublisher의 mock입니다
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event *entity.CatalogEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockMovieInfoClient는 MovieInfoClient의 mock입니다
type MockMovieInfoClient struct {
	mock.Mock
}

func (m *MockMovieInfoClient) GetMovieInfo(ctx context.Context, id string) (*entity.MovieInfo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.MovieInfo), args.Error(1)
}

// MockReviewClient는 ReviewClient의 mock입니다
type MockReviewClient struct {
	mock.Mock
}

func (m *MockReviewClient) ListReviews(ctx context.Context, movieInfoID string) ([]*entity.Review, error) {
	args := m.Called(ctx, movieInfoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Review), args.Error(1)
}

// MockReviewRepository는 ReviewRepository의 mock입니다
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Save(ctx context.Context, review *entity.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) FindByID(ctx context.Context, id string) (*entity.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Review), args.Error(1)
}

func (m *MockReviewRepository) Find(ctx context.Context, filter repository.ReviewFilter) iter.Seq2[*entity.Review, error] {
	args := m.Called(ctx, filter)
	return args.Get(0).(iter.Seq2[*entity.Review, error])
}

func (m *MockReviewRepository) DeleteByID(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReviewRepository) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	var items []T
	for item, err := range seq {
		if err != nil {
			return items, err
		}
		items = append(items, item)
	}
	return items, nil
}

func iterSeq(seq func(yield func(*entity.Review, error) bool)) iter.Seq2[*entity.Review, error] {
	return seq
}
