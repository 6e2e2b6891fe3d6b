package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/YouSangSon/movie-catalog-service/internal/domain/entity"
	"github.com/YouSangSon/movie-catalog-service/internal/domain/repository"
	"github.com/YouSangSon/movie-catalog-service/internal/infrastructure/persistence/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInfo(id, name string) *entity.MovieInfo {
	return &entity.MovieInfo{
		ID:          id,
		Name:        name,
		Year:        2005,
		Cast:        []string{"Christian Bale"},
		ReleaseDate: time.Date(2005, 6, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestMovieInfoRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewMovieInfoRepository()

	require.NoError(t, repo.Save(ctx, newInfo("a", "Batman Begins")))
	require.NoError(t, repo.Save(ctx, newInfo("b", "The Dark Knight")))

	found, err := repo.FindByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "Batman Begins", found.Name)

	// 반환된 값을 수정해도 저장된 값은 바뀌지 않습니다
	found.Cast[0] = "mutated"
	again, err := repo.FindByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "Christian Bale", again.Cast[0])

	require.NoError(t, repo.DeleteByID(ctx, "a"))
	require.NoError(t, repo.DeleteByID(ctx, "a"))

	_, err = repo.FindByID(ctx, "a")
	assert.ErrorIs(t, err, entity.ErrMovieInfoNotFound)
}

func TestMovieInfoRepository_FindAll_InsertionOrderAndRestart(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewMovieInfoRepository()
	require.NoError(t, repo.Save(ctx, newInfo("z", "first")))
	require.NoError(t, repo.Save(ctx, newInfo("a", "second")))

	seq := repo.FindAll(ctx)
	var names []string
	for info, err := range seq {
		require.NoError(t, err)
		names = append(names, info.Name)
	}
	assert.Equal(t, []string{"first", "second"}, names)

	// 두 번째 순회는 그 사이의 변경을 반영합니다
	require.NoError(t, repo.Save(ctx, newInfo("m", "third")))
	count := 0
	for _, err := range seq {
		require.NoError(t, err)
		count++
	}
	assert.Equal(t, 3, count)
}

func TestMovieInfoRepository_Save_ReplaceKeepsPosition(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewMovieInfoRepository()
	require.NoError(t, repo.Save(ctx, newInfo("a", "one")))
	require.NoError(t, repo.Save(ctx, newInfo("b", "two")))
	require.NoError(t, repo.Save(ctx, newInfo("a", "one updated")))

	var names []string
	for info, err := range repo.FindAll(ctx) {
		require.NoError(t, err)
		names = append(names, info.Name)
	}
	assert.Equal(t, []string{"one updated", "two"}, names)
}

func TestReviewRepository_FindByMovieInfoID(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewReviewRepository()
	require.NoError(t, repo.Save(ctx, &entity.Review{ID: "r1", MovieInfoID: "abc", Comment: "Awesome", Rating: 9}))
	require.NoError(t, repo.Save(ctx, &entity.Review{ID: "r2", MovieInfoID: "xyz", Comment: "Meh", Rating: 4}))
	require.NoError(t, repo.Save(ctx, &entity.Review{ID: "r3", MovieInfoID: "abc", Comment: "Good", Rating: 7}))

	movieInfoID := "abc"
	var ids []string
	for review, err := range repo.Find(ctx, repository.ReviewFilter{MovieInfoID: &movieInfoID}) {
		require.NoError(t, err)
		ids = append(ids, review.ID)
	}
	assert.Equal(t, []string{"r1", "r3"}, ids)

	all := 0
	for _, err := range repo.Find(ctx, repository.ReviewFilter{}) {
		require.NoError(t, err)
		all++
	}
	assert.Equal(t, 3, all)
}

func TestReviewRepository_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	repo := memory.NewReviewRepository()
	require.NoError(t, repo.Save(ctx, &entity.Review{ID: "r1", MovieInfoID: "abc", Comment: "ok", Rating: 1}))
	cancel()

	for review, err := range repo.Find(ctx, repository.ReviewFilter{}) {
		assert.Nil(t, review)
		assert.ErrorIs(t, err, context.Canceled)
	}
	_, err := repo.FindByID(ctx, "r1")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReviewRepository_ConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewReviewRepository()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			review := &entity.Review{MovieInfoID: "abc", Comment: "concurrent", Rating: 5}
			review.AssignID()
			assert.NoError(t, repo.Save(ctx, review))
		}()
	}
	wg.Wait()

	count := 0
	for _, err := range repo.Find(ctx, repository.ReviewFilter{}) {
		require.NoError(t, err)
		count++
	}
	assert.Equal(t, 50, count)
}
