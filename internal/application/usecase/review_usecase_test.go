package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"testing"

	"github.com/YouSangSon/movie-catalog-service/internal/application/usecase"
	"github.com/YouSangSon/movie-catalog-service/internal/domain/entity"
	"github.com/YouSangSon/movie-catalog-service/internal/domain/repository"
	"github.com/YouSangSon/movie-catalog-service/internal/infrastructure/persistence/memory"
	apperrors "github.com/YouSangSon/movie-catalog-service/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newReview(movieInfoID, comment string, rating float64) *entity.Review {
	return &entity.Review{MovieInfoID: movieInfoID, Comment: comment, Rating: rating}
}

func TestReviewUseCase_Add_Success(t *testing.T) {
	// Arrange
	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, eventOfType(entity.EventReviewCreated)).Return(nil)
	uc := usecase.NewReviewUseCase(memory.NewReviewRepository(), publisher, entity.DefaultMaxRating)

	// Act
	created, err := uc.Add(context.Background(), newReview("abc", "Awesome Movie", 9.0))

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "abc", created.MovieInfoID)
	publisher.AssertExpectations(t)
}

func TestReviewUseCase_Add_ValidationError(t *testing.T) {
	tests := []struct {
		name     string
		review   *entity.Review
		expected string
	}{
		{
			name:     "empty comment and negative rating",
			review:   newReview("abc", "", -9.0),
			expected: "review.comment must be present,review.rating must be a positive value",
		},
		{
			name:     "rating above maximum",
			review:   newReview("abc", "Awesome Movie", 11),
			expected: "review.rating must not exceed 10",
		},
		{
			name:     "missing movie info id",
			review:   newReview(" ", "Awesome Movie", 5),
			expected: "review.movieInfoId must be present",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := usecase.NewReviewUseCase(memory.NewReviewRepository(), nil, 0)

			created, err := uc.Add(context.Background(), tt.review)

			assert.Nil(t, created)
			var validationErr *entity.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestReviewUseCase_List(t *testing.T) {
	// Arrange
	uc := usecase.NewReviewUseCase(memory.NewReviewRepository(), nil, entity.DefaultMaxRating)
	ctx := context.Background()
	for _, review := range []*entity.Review{
		newReview("abc", "Awesome Movie", 9.0),
		newReview("abc", "Excellent Movie", 8.0),
		newReview("def", "Good Movie", 7.0),
	} {
		_, err := uc.Add(ctx, review)
		require.NoError(t, err)
	}
	movieInfoID := "abc"

	// Act
	all, err := collect(uc.List(ctx, nil))
	require.NoError(t, err)
	filtered, err := collect(uc.List(ctx, &movieInfoID))
	require.NoError(t, err)

	// Assert
	assert.Len(t, all, 3)
	require.Len(t, filtered, 2)
	assert.Equal(t, "Awesome Movie", filtered[0].Comment)
	assert.Equal(t, "Excellent Movie", filtered[1].Comment)
}

func TestReviewUseCase_List_StoreError(t *testing.T) {
	// Arrange
	repo := new(MockReviewRepository)
	storeErr := errors.New("cursor failed")
	var seq = func(yield func(*entity.Review, error) bool) {
		yield(nil, storeErr)
	}
	repo.On("Find", mock.Anything, repository.ReviewFilter{}).Return(iterSeq(seq))
	uc := usecase.NewReviewUseCase(repo, nil, 0)

	// Act
	_, err := collect(uc.List(context.Background(), nil))

	// Assert
	assert.ErrorIs(t, err, storeErr)
	repo.AssertExpectations(t)
}

func TestReviewUseCase_Update(t *testing.T) {
	// Arrange
	uc := usecase.NewReviewUseCase(memory.NewReviewRepository(), nil, entity.DefaultMaxRating)
	ctx := context.Background()
	created, err := uc.Add(ctx, newReview("abc", "Awesome Movie", 9.0))
	require.NoError(t, err)

	// Act
	updated, err := uc.Update(ctx, created.ID, newReview("other", "Not an Awesome Movie", 8.0))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "abc", updated.MovieInfoID)
	assert.Equal(t, "Not an Awesome Movie", updated.Comment)
	assert.Equal(t, 8.0, updated.Rating)
}

func TestReviewUseCase_Update_NotFound(t *testing.T) {
	uc := usecase.NewReviewUseCase(memory.NewReviewRepository(), nil, entity.DefaultMaxRating)

	updated, err := uc.Update(context.Background(), "missing", newReview("abc", "Awesome", 5))

	assert.Nil(t, updated)
	assert.ErrorIs(t, err, entity.ErrReviewNotFound)
	assert.Equal(t, "no review for id missing: review not found", err.Error())
}

func TestReviewUseCase_Update_ValidationError(t *testing.T) {
	uc := usecase.NewReviewUseCase(memory.NewReviewRepository(), nil, entity.DefaultMaxRating)
	ctx := context.Background()
	created, err := uc.Add(ctx, newReview("abc", "Awesome Movie", 9.0))
	require.NoError(t, err)

	_, err = uc.Update(ctx, created.ID, newReview("abc", "", 9.0))

	var validationErr *entity.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestReviewUseCase_DeleteByID(t *testing.T) {
	// Arrange
	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	uc := usecase.NewReviewUseCase(memory.NewReviewRepository(), publisher, entity.DefaultMaxRating)
	ctx := context.Background()
	created, err := uc.Add(ctx, newReview("abc", "Awesome Movie", 9.0))
	require.NoError(t, err)

	// Act
	require.NoError(t, uc.DeleteByID(ctx, created.ID))
	err = uc.DeleteByID(ctx, created.ID)

	// Assert
	assert.NoError(t, err)
	remaining, err := collect(uc.List(ctx, nil))
	require.NoError(t, err)
	assert.Empty(t, remaining)
	deleted := slices.DeleteFunc(slices.Clone(publisher.Calls), func(call mock.Call) bool {
		return call.Arguments.Get(1).(*entity.CatalogEvent).Type != entity.EventReviewDeleted
	})
	assert.Len(t, deleted, 1)
}

func TestReviewUseCase_DeleteByID_AbsentSkipsDelete(t *testing.T) {
	// Arrange
	repo := new(MockReviewRepository)
	repo.On("FindByID", mock.Anything, "missing").Return(nil, entity.ReviewNotFound("missing"))
	uc := usecase.NewReviewUseCase(repo, nil, 0)

	// Act
	err := uc.DeleteByID(context.Background(), "missing")

	// Assert
	assert.NoError(t, err)
	repo.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
}

func TestReviewUseCase_DeleteByID_ConcurrentlyRemoved(t *testing.T) {
	// Arrange
	repo := new(MockReviewRepository)
	publisher := new(MockEventPublisher)
	repo.On("FindByID", mock.Anything, "r1").Return(&entity.Review{ID: "r1", MovieInfoID: "abc", Comment: "ok", Rating: 8}, nil)
	repo.On("DeleteByID", mock.Anything, "r1").Return(entity.ReviewNotFound("r1"))
	uc := usecase.NewReviewUseCase(repo, publisher, 0)

	// Act
	err := uc.DeleteByID(context.Background(), "r1")

	// Assert
	assert.NoError(t, err)
	repo.AssertExpectations(t)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestReviewUseCase_HealthCheck_StorageFailure(t *testing.T) {
	// Arrange
	repo := new(MockReviewRepository)
	cause := errors.New("server selection timeout")
	repo.On("HealthCheck", mock.Anything).Return(cause)
	uc := usecase.NewReviewUseCase(repo, nil, 0)

	// Act
	err := uc.HealthCheck(context.Background())

	// Assert
	assert.ErrorIs(t, err, cause)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeDatabaseConnection))
	assert.Equal(t, http.StatusServiceUnavailable, apperrors.GetHTTPStatus(err))
}
