package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/YouSangSon/movie-catalog-service/internal/application/usecase"
	"github.com/YouSangSon/movie-catalog-service/internal/domain/entity"
	"github.com/YouSangSon/movie-catalog-service/internal/infrastructure/persistence/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func darkKnightRises() *entity.MovieInfo {
	return &entity.MovieInfo{
		Name:        "Dark Knight Rises",
		Year:        2012,
		Cast:        []string{"Christian Bale", "Tom Hardy"},
		ReleaseDate: time.Date(2012, 7, 20, 0, 0, 0, 0, time.UTC),
	}
}

func eventOfType(eventType entity.EventType) interface{} {
	return mock.MatchedBy(func(event *entity.CatalogEvent) bool {
		return event.Type == eventType
	})
}

func TestMovieInfoUseCase_Add_Success(t *testing.T) {
	// Arrange
	publisher := new(MockEventPublisher)
	uc := usecase.NewMovieInfoUseCase(memory.NewMovieInfoRepository(), publisher)
	ctx := context.Background()
	publisher.On("Publish", mock.Anything, eventOfType(entity.EventMovieInfoCreated)).Return(nil)

	// Act
	first, err := uc.Add(ctx, darkKnightRises())
	require.NoError(t, err)
	second, err := uc.Add(ctx, darkKnightRises())
	require.NoError(t, err)

	// Assert
	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)

	found, ok, err := uc.GetByID(ctx, first.ID)
	require.NoError(t, err)
	require.True(t, ok)
	expected := darkKnightRises()
	expected.ID = first.ID
	assert.Equal(t, expected, found)
	publisher.AssertNumberOfCalls(t, "Publish", 2)
}

func TestMovieInfoUseCase_Add_IgnoresClientID(t *testing.T) {
	uc := usecase.NewMovieInfoUseCase(memory.NewMovieInfoRepository(), nil)
	info := darkKnightRises()
	info.ID = "client-chosen"

	created, err := uc.Add(context.Background(), info)

	require.NoError(t, err)
	assert.NotEqual(t, "client-chosen", created.ID)
	assert.Equal(t, "client-chosen", info.ID)
}

func TestMovieInfoUseCase_Add_ValidationError(t *testing.T) {
	// Arrange
	publisher := new(MockEventPublisher)
	repo := memory.NewMovieInfoRepository()
	uc := usecase.NewMovieInfoUseCase(repo, publisher)
	info := &entity.MovieInfo{
		Name:        "",
		Year:        -2005,
		Cast:        []string{""},
		ReleaseDate: time.Date(2005, 6, 15, 0, 0, 0, 0, time.UTC),
	}

	// Act
	created, err := uc.Add(context.Background(), info)

	// Assert
	assert.Nil(t, created)
	var validationErr *entity.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t,
		"movieInfo.cast must be present,movieInfo.name must be present,movieInfo.year must be a Positive Value",
		err.Error(),
	)

	all, err := collect(uc.GetAll(context.Background()))
	require.NoError(t, err)
	assert.Empty(t, all)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestMovieInfoUseCase_GetAll_Restartable(t *testing.T) {
	// Arrange
	uc := usecase.NewMovieInfoUseCase(memory.NewMovieInfoRepository(), nil)
	ctx := context.Background()
	_, err := uc.Add(ctx, darkKnightRises())
	require.NoError(t, err)

	seq := uc.GetAll(ctx)
	first, err := collect(seq)
	require.NoError(t, err)
	assert.Len(t, first, 1)

	// Act
	_, err = uc.Add(ctx, darkKnightRises())
	require.NoError(t, err)
	second, err := collect(seq)

	// Assert
	require.NoError(t, err)
	assert.Len(t, second, 2)
}

func TestMovieInfoUseCase_GetByID_NotFound(t *testing.T) {
	uc := usecase.NewMovieInfoUseCase(memory.NewMovieInfoRepository(), nil)

	info, found, err := uc.GetByID(context.Background(), "missing")

	assert.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, info)
}

func TestMovieInfoUseCase_Update(t *testing.T) {
	// Arrange
	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	uc := usecase.NewMovieInfoUseCase(memory.NewMovieInfoRepository(), publisher)
	ctx := context.Background()
	created, err := uc.Add(ctx, darkKnightRises())
	require.NoError(t, err)

	patch := &entity.MovieInfo{
		ID:          "ignored",
		Name:        "Dark Knight Rises1",
		Year:        2013,
		Cast:        []string{"Christian Bale1", "Tom Hardy1"},
		ReleaseDate: time.Date(2012, 7, 21, 0, 0, 0, 0, time.UTC),
	}

	// Act
	updated, found, err := uc.Update(ctx, created.ID, patch)

	// Assert
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Dark Knight Rises1", updated.Name)
	assert.Equal(t, 2013, updated.Year)

	stored, _, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, stored)
	publisher.AssertCalled(t, "Publish", mock.Anything, eventOfType(entity.EventMovieInfoUpdated))
}

func TestMovieInfoUseCase_Update_NotFound(t *testing.T) {
	uc := usecase.NewMovieInfoUseCase(memory.NewMovieInfoRepository(), nil)

	updated, found, err := uc.Update(context.Background(), "missing", darkKnightRises())

	assert.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, updated)
}

func TestMovieInfoUseCase_Update_RevalidatesMergedRecord(t *testing.T) {
	// Arrange
	uc := usecase.NewMovieInfoUseCase(memory.NewMovieInfoRepository(), nil)
	ctx := context.Background()
	created, err := uc.Add(ctx, darkKnightRises())
	require.NoError(t, err)
	patch := darkKnightRises()
	patch.Year = 0

	// Act
	_, found, err := uc.Update(ctx, created.ID, patch)

	// Assert
	assert.True(t, found)
	var validationErr *entity.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []string{"movieInfo.year must be a Positive Value"}, validationErr.Violations)

	stored, _, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 2012, stored.Year)
}

func TestMovieInfoUseCase_DeleteByID_Idempotent(t *testing.T) {
	// Arrange
	uc := usecase.NewMovieInfoUseCase(memory.NewMovieInfoRepository(), nil)
	ctx := context.Background()
	created, err := uc.Add(ctx, darkKnightRises())
	require.NoError(t, err)

	// Act
	require.NoError(t, uc.DeleteByID(ctx, created.ID))
	secondErr := uc.DeleteByID(ctx, created.ID)

	// Assert
	assert.NoError(t, secondErr)
	_, found, err := uc.GetByID(ctx, created.ID)
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestMovieInfoUseCase_PublishFailureDoesNotFailOperation(t *testing.T) {
	// Arrange
	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))
	uc := usecase.NewMovieInfoUseCase(memory.NewMovieInfoRepository(), publisher)

	// Act
	created, err := uc.Add(context.Background(), darkKnightRises())

	// Assert
	assert.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	publisher.AssertExpectations(t)
}

func TestMovieInfoUseCase_GetAll_CanceledContext(t *testing.T) {
	uc := usecase.NewMovieInfoUseCase(memory.NewMovieInfoRepository(), nil)
	_, err := uc.Add(context.Background(), darkKnightRises())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = collect(uc.GetAll(ctx))

	assert.ErrorIs(t, err, context.Canceled)
}
