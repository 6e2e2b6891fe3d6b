package usecase

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/YouSangSon/movie-catalog-service/internal/application/dto"
	"github.com/YouSangSon/movie-catalog-service/internal/domain/entity"
	"github.com/YouSangSon/movie-catalog-service/internal/domain/repository"
	apperrors "github.com/YouSangSon/movie-catalog-service/internal/pkg/errors"
	"github.com/YouSangSon/movie-catalog-service/internal/pkg/logger"
	"github.com/YouSangSon/movie-catalog-service/internal/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ReviewUseCase는 리뷰 저장소 유즈케이스입니다
type ReviewUseCase struct {
	repo      repository.ReviewRepository
	publisher repository.EventPublisher
	maxRating float64
}

// NewReviewUseCase는 새로운 ReviewUseCase를 생성합니다. maxRating이 0 이하면 기본값을 씁니다
func NewReviewUseCase(repo repository.ReviewRepository, publisher repository.EventPublisher, maxRating float64) *ReviewUseCase {
	if maxRating <= 0 {
		maxRating = entity.DefaultMaxRating
	}
	return &ReviewUseCase{
		repo:      repo,
		publisher: publisher,
		maxRating: maxRating,
	}
}

// Add는 리뷰를 검증한 뒤 새 id로 저장합니다
func (uc *ReviewUseCase) Add(ctx context.Context, review *entity.Review) (*entity.Review, error) {
	ctx, span := tracing.StartSpan(ctx, "ReviewUseCase.Add")
	defer span.End()

	if err := review.Validate(uc.maxRating); err != nil {
		logger.Info(ctx, "review rejected", zap.Error(err))
		return nil, err
	}

	created := review.Clone()
	created.AssignID()
	tracing.SetAttributes(ctx,
		attribute.String("review.id", created.ID),
		attribute.String("movie_info.id", created.MovieInfoID),
	)

	if err := uc.repo.Save(ctx, created); err != nil {
		tracing.RecordError(ctx, err)
		return nil, fmt.Errorf("failed to save review: %w", err)
	}

	logger.Info(ctx, "review created", logger.ReviewID(created.ID), logger.MovieInfoID(created.MovieInfoID))
	publishEvent(ctx, uc.publisher, entity.EventReviewCreated, created.ID, dto.FromReview(created))
	return created, nil
}

// List는 리뷰를 지연 순회합니다. movieInfoID가 nil이 아니면 해당 영화의 리뷰만 순회합니다
func (uc *ReviewUseCase) List(ctx context.Context, movieInfoID *string) iter.Seq2[*entity.Review, error] {
	filter := repository.ReviewFilter{MovieInfoID: movieInfoID}

	return func(yield func(*entity.Review, error) bool) {
		ctx, span := tracing.StartSpan(ctx, "ReviewUseCase.List")
		defer span.End()

		if movieInfoID != nil {
			tracing.SetAttributes(ctx, attribute.String("movie_info.id", *movieInfoID))
		}

		for review, err := range uc.repo.Find(ctx, filter) {
			if err != nil {
				tracing.RecordError(ctx, err)
				yield(nil, fmt.Errorf("failed to list reviews: %w", err))
				return
			}
			if !yield(review, nil) {
				return
			}
		}
	}
}

// Update는 comment와 rating만 교체합니다. 없으면 entity.ErrReviewNotFound를 감싼 에러를 반환합니다
func (uc *ReviewUseCase) Update(ctx context.Context, id string, patch *entity.Review) (*entity.Review, error) {
	ctx, span := tracing.StartSpan(ctx, "ReviewUseCase.Update")
	defer span.End()

	tracing.SetAttributes(ctx, attribute.String("review.id", id))

	existing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, entity.ErrReviewNotFound) {
			tracing.RecordError(ctx, err)
			return nil, fmt.Errorf("failed to get review: %w", err)
		}
		return nil, err
	}

	existing.ApplyUpdate(patch)
	if err := existing.Validate(uc.maxRating); err != nil {
		logger.Info(ctx, "review update rejected", logger.ReviewID(id), zap.Error(err))
		return nil, err
	}

	if err := uc.repo.Save(ctx, existing); err != nil {
		tracing.RecordError(ctx, err)
		return nil, fmt.Errorf("failed to save review: %w", err)
	}

	logger.Info(ctx, "review updated", logger.ReviewID(id))
	publishEvent(ctx, uc.publisher, entity.EventReviewUpdated, id, dto.FromReview(existing))
	return existing, nil
}

// DeleteByID는 리뷰를 조회한 뒤 있으면 삭제합니다. 없으면 아무 일도 하지 않고 성공합니다.
// 조회와 삭제 사이에 다른 요청이 먼저 지운 경우도 성공으로 처리합니다
func (uc *ReviewUseCase) DeleteByID(ctx context.Context, id string) error {
	ctx, span := tracing.StartSpan(ctx, "ReviewUseCase.DeleteByID")
	defer span.End()

	tracing.SetAttributes(ctx, attribute.String("review.id", id))

	if _, err := uc.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, entity.ErrReviewNotFound) {
			logger.Debug(ctx, "review already absent", logger.ReviewID(id))
			return nil
		}
		tracing.RecordError(ctx, err)
		return fmt.Errorf("failed to get review: %w", err)
	}

	if err := uc.repo.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, entity.ErrReviewNotFound) {
			logger.Debug(ctx, "review removed concurrently", logger.ReviewID(id))
			return nil
		}
		tracing.RecordError(ctx, err)
		return fmt.Errorf("failed to delete review: %w", err)
	}

	logger.Info(ctx, "review deleted", logger.ReviewID(id))
	publishEvent(ctx, uc.publisher, entity.EventReviewDeleted, id, nil)
	return nil
}

// HealthCheck는 저장소 상태를 확인합니다. 실패는 DATABASE_CONNECTION_ERROR입니다
func (uc *ReviewUseCase) HealthCheck(ctx context.Context) error {
	if err := uc.repo.HealthCheck(ctx); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeDatabaseConnection, "storage unreachable")
	}
	return nil
}
