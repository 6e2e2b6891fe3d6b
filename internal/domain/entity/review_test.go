package entity_test

import (
	"errors"
	"testing"

	"github.com/YouSangSon/movie-catalog-service/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReview_Validate(t *testing.T) {
	tests := []struct {
		name    string
		review  entity.Review
		max     float64
		wantErr string
	}{
		{
			name:   "valid",
			review: entity.Review{MovieInfoID: "abc", Comment: "Awesome Movie", Rating: 9.0},
			max:    10,
		},
		{
			name:    "empty comment and non-positive rating",
			review:  entity.Review{MovieInfoID: "abc", Comment: "", Rating: -9.0},
			max:     10,
			wantErr: "review.comment must be present,review.rating must be a positive value",
		},
		{
			name:    "missing movie info id",
			review:  entity.Review{Comment: "Good", Rating: 5},
			max:     10,
			wantErr: "review.movieInfoId must be present",
		},
		{
			name:    "rating above maximum",
			review:  entity.Review{MovieInfoID: "abc", Comment: "Great", Rating: 10.5},
			max:     10,
			wantErr: "review.rating must not exceed 10",
		},
		{
			name:   "rating equal to maximum",
			review: entity.Review{MovieInfoID: "abc", Comment: "Great", Rating: 10},
			max:    10,
		},
		{
			name:   "no upper bound",
			review: entity.Review{MovieInfoID: "abc", Comment: "Great", Rating: 1000},
			max:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.review.Validate(tt.max)

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var validationErr *entity.ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestReview_ApplyUpdate_OnlyCommentAndRating(t *testing.T) {
	review := &entity.Review{ID: "r1", MovieInfoID: "abc", Comment: "Awesome Movie", Rating: 9.0}

	review.ApplyUpdate(&entity.Review{ID: "r2", MovieInfoID: "other", Comment: "Not an Awesome Movie", Rating: 8.0})

	assert.Equal(t, "r1", review.ID)
	assert.Equal(t, "abc", review.MovieInfoID)
	assert.Equal(t, "Not an Awesome Movie", review.Comment)
	assert.Equal(t, 8.0, review.Rating)
}

func TestNewValidationError_SortsAndDeduplicates(t *testing.T) {
	err := entity.NewValidationError([]string{"b", "a", "b"})

	assert.Equal(t, []string{"a", "b"}, err.Violations)
	assert.Equal(t, "a,b", err.Error())
}

func TestReviewNotFound_WrapsSentinel(t *testing.T) {
	err := entity.ReviewNotFound("r1")

	assert.ErrorIs(t, err, entity.ErrReviewNotFound)
	assert.Contains(t, err.Error(), "no review for id r1")
}
