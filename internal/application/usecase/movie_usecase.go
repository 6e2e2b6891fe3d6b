package usecase

import (
	"context"
	"fmt"

	"github.com/YouSangSon/movie-catalog-service/internal/domain/entity"
	"github.com/YouSangSon/movie-catalog-service/internal/pkg/logger"
	"github.com/YouSangSon/movie-catalog-service/internal/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

// defaultBatchConcurrency는 일괄 조회에서 동시에 조합할 영화 수의 기본값입니다
const defaultBatchConcurrency = 4

// MovieInfoClient는 영화 정보 서비스 호출 인터페이스입니다
type MovieInfoClient interface {
	// GetMovieInfo는 없으면 entity.ErrUpstreamNotFound, 도달할 수 없으면 entity.ErrUpstreamUnavailable을 반환합니다
	GetMovieInfo(ctx context.Context, id string) (*entity.MovieInfo, error)
}

// ReviewClient는 리뷰 서비스 호출 인터페이스입니다
type ReviewClient interface {
	ListReviews(ctx context.Context, movieInfoID string) ([]*entity.Review, error)
}

// MovieUseCase는 영화 정보와 리뷰를 하나의 Movie로 조합합니다. 저장 상태는 없습니다
type MovieUseCase struct {
	movieInfos       MovieInfoClient
	reviews          ReviewClient
	batchConcurrency int
}

// NewMovieUseCase는 새로운 MovieUseCase를 생성합니다
func NewMovieUseCase(movieInfos MovieInfoClient, reviews ReviewClient, batchConcurrency int) *MovieUseCase {
	if batchConcurrency <= 0 {
		batchConcurrency = defaultBatchConcurrency
	}
	return &MovieUseCase{
		movieInfos:       movieInfos,
		reviews:          reviews,
		batchConcurrency: batchConcurrency,
	}
}

// RetrieveMovieByID는 영화 정보를 먼저 조회하고, 있을 때만 리뷰 목록을 가져와 합칩니다.
// 부분적으로 채워진 Movie는 반환하지 않습니다
func (uc *MovieUseCase) RetrieveMovieByID(ctx context.Context, id string) (*entity.Movie, error) {
	ctx, span := tracing.StartSpan(ctx, "MovieUseCase.RetrieveMovieByID")
	defer span.End()

	tracing.SetAttributes(ctx, attribute.String("movie_info.id", id))

	info, err := uc.movieInfos.GetMovieInfo(ctx, id)
	if err != nil {
		tracing.RecordError(ctx, err)
		return nil, fmt.Errorf("failed to retrieve movie info %s: %w", id, err)
	}

	reviews, err := uc.reviews.ListReviews(ctx, id)
	if err != nil {
		tracing.RecordError(ctx, err)
		return nil, fmt.Errorf("failed to retrieve reviews for %s: %w", id, err)
	}

	tracing.SetAttributes(ctx, attribute.Int("review.count", len(reviews)))
	logger.Debug(ctx, "movie composed", logger.MovieInfoID(id), logger.Count(len(reviews)))
	return entity.NewMovie(info, reviews), nil
}

// RetrieveMovies는 여러 id를 동시에 조합합니다. 결과 순서는 입력 순서와 같고,
// 하나라도 실패하면 나머지를 취소하고 전체가 실패합니다
func (uc *MovieUseCase) RetrieveMovies(ctx context.Context, ids []string) ([]*entity.Movie, error) {
	ctx, span := tracing.StartSpan(ctx, "MovieUseCase.RetrieveMovies")
	defer span.End()

	tracing.SetAttributes(ctx, attribute.Int("movie.count", len(ids)))

	movies := make([]*entity.Movie, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.batchConcurrency)

	for i, id := range ids {
		g.Go(func() error {
			movie, err := uc.RetrieveMovieByID(gctx, id)
			if err != nil {
				return err
			}
			movies[i] = movie
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		tracing.RecordError(ctx, err)
		return nil, err
	}
	return movies, nil
}
