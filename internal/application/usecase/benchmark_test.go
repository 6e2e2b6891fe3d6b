package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/YouSangSon/movie-catalog-service/internal/application/usecase"
	"github.com/YouSangSon/movie-catalog-service/internal/domain/entity"
	"github.com/YouSangSon/movie-catalog-service/internal/infrastructure/persistence/memory"
)

// stubMovieInfoClient는 벤치마크용 고정 응답 클라이언트입니다
type stubMovieInfoClient struct{}

func (stubMovieInfoClient) GetMovieInfo(ctx context.Context, id string) (*entity.MovieInfo, error) {
	return &entity.MovieInfo{
		ID:          id,
		Name:        "Batman Begins",
		Year:        2005,
		Cast:        []string{"Christian Bale", "Michael Cane"},
		ReleaseDate: time.Date(2005, 6, 15, 0, 0, 0, 0, time.UTC),
	}, nil
}

type stubReviewClient struct {
	reviews []*entity.Review
}

func (s stubReviewClient) ListReviews(ctx context.Context, movieInfoID string) ([]*entity.Review, error) {
	return s.reviews, nil
}

func benchmarkMovieInfo() *entity.MovieInfo {
	return &entity.MovieInfo{
		Name:        "The Dark Knight Rises",
		Year:        2012,
		Cast:        []string{"Christian Bale", "Tom Hardy"},
		ReleaseDate: time.Date(2012, 7, 20, 0, 0, 0, 0, time.UTC),
	}
}

// BenchmarkMovieInfoUseCase_Add는 영화 정보 등록 성능을 측정합니다
func BenchmarkMovieInfoUseCase_Add(b *testing.B) {
	uc := usecase.NewMovieInfoUseCase(memory.NewMovieInfoRepository(), nil)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := uc.Add(ctx, benchmarkMovieInfo()); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkReviewUseCase_ListByMovieInfo는 movieInfoId 필터 조회 성능을 측정합니다
func BenchmarkReviewUseCase_ListByMovieInfo(b *testing.B) {
	uc := usecase.NewReviewUseCase(memory.NewReviewRepository(), nil, 10)
	ctx := context.Background()

	for i := 0; i < 1000; i++ {
		_, err := uc.Add(ctx, &entity.Review{
			MovieInfoID: fmt.Sprintf("movie-%d", i%50),
			Comment:     "Awesome Movie",
			Rating:      9,
		})
		if err != nil {
			b.Fatal(err)
		}
	}
	movieInfoID := "movie-7"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		reviews, err := collect(uc.List(ctx, &movieInfoID))
		if err != nil || len(reviews) != 20 {
			b.Fatalf("unexpected result: %d reviews, err=%v", len(reviews), err)
		}
	}
}

// BenchmarkMovieUseCase_RetrieveMovies는 일괄 조합 성능을 측정합니다
func BenchmarkMovieUseCase_RetrieveMovies(b *testing.B) {
	reviews := make([]*entity.Review, 10)
	for i := range reviews {
		reviews[i] = &entity.Review{ID: fmt.Sprintf("r%d", i), MovieInfoID: "abc", Comment: "ok", Rating: 8}
	}
	uc := usecase.NewMovieUseCase(stubMovieInfoClient{}, stubReviewClient{reviews: reviews}, 4)
	ctx := context.Background()
	ids := []string{"a", "b", "c", "d", "e", "f", "g", "h"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := uc.RetrieveMovies(ctx, ids); err != nil {
			b.Fatal(err)
		}
	}
}
