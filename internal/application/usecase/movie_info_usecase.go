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

// MovieInfoUseCase는 영화 정보 저장소 유즈케이스입니다
type MovieInfoUseCase struct {
	repo      repository.MovieInfoRepository
	publisher repository.EventPublisher
}

// NewMovieInfoUseCase는 새로운 MovieInfoUseCase를 생성합니다. publisher는 nil일 수 있습니다
func NewMovieInfoUseCase(repo repository.MovieInfoRepository, publisher repository.EventPublisher) *MovieInfoUseCase {
	return &MovieInfoUseCase{
		repo:      repo,
		publisher: publisher,
	}
}

// Add는 영화 정보를 검증한 뒤 새 id로 저장합니다
func (uc *MovieInfoUseCase) Add(ctx context.Context, info *entity.MovieInfo) (*entity.MovieInfo, error) {
	ctx, span := tracing.StartSpan(ctx, "MovieInfoUseCase.Add")
	defer span.End()

	if err := info.Validate(); err != nil {
		logger.Info(ctx, "movie info rejected", zap.Error(err))
		return nil, err
	}

	created := info.Clone()
	created.AssignID()
	tracing.SetAttributes(ctx, attribute.String("movie_info.id", created.ID))

	if err := uc.repo.Save(ctx, created); err != nil {
		tracing.RecordError(ctx, err)
		return nil, fmt.Errorf("failed to save movie info: %w", err)
	}

	logger.Info(ctx, "movie info created", logger.MovieInfoID(created.ID))
	publishEvent(ctx, uc.publisher, entity.EventMovieInfoCreated, created.ID, dto.FromMovieInfo(created))
	return created, nil
}

// GetAll은 전체 영화 정보를 지연 순회합니다. 순회할 때마다 저장소를 다시 읽습니다
func (uc *MovieInfoUseCase) GetAll(ctx context.Context) iter.Seq2[*entity.MovieInfo, error] {
	return func(yield func(*entity.MovieInfo, error) bool) {
		ctx, span := tracing.StartSpan(ctx, "MovieInfoUseCase.GetAll")
		defer span.End()

		for info, err := range uc.repo.FindAll(ctx) {
			if err != nil {
				tracing.RecordError(ctx, err)
				yield(nil, fmt.Errorf("failed to list movie infos: %w", err))
				return
			}
			if !yield(info, nil) {
				return
			}
		}
	}
}

// GetByID는 id로 조회합니다. 없으면 found가 false이고 에러는 nil입니다
func (uc *MovieInfoUseCase) GetByID(ctx context.Context, id string) (*entity.MovieInfo, bool, error) {
	ctx, span := tracing.StartSpan(ctx, "MovieInfoUseCase.GetByID")
	defer span.End()

	tracing.SetAttributes(ctx, attribute.String("movie_info.id", id))

	info, err := uc.repo.FindByID(ctx, id)
	if errors.Is(err, entity.ErrMovieInfoNotFound) {
		return nil, false, nil
	}
	if err != nil {
		tracing.RecordError(ctx, err)
		return nil, false, fmt.Errorf("failed to get movie info: %w", err)
	}
	return info, true, nil
}

// Update는 기존 영화 정보의 name, year, cast, releaseDate를 교체합니다.
// 없으면 found가 false입니다. 합쳐진 결과는 Add와 같은 규칙으로 다시 검증합니다
func (uc *MovieInfoUseCase) Update(ctx context.Context, id string, patch *entity.MovieInfo) (*entity.MovieInfo, bool, error) {
	ctx, span := tracing.StartSpan(ctx, "MovieInfoUseCase.Update")
	defer span.End()

	tracing.SetAttributes(ctx, attribute.String("movie_info.id", id))

	existing, err := uc.repo.FindByID(ctx, id)
	if errors.Is(err, entity.ErrMovieInfoNotFound) {
		return nil, false, nil
	}
	if err != nil {
		tracing.RecordError(ctx, err)
		return nil, false, fmt.Errorf("failed to get movie info: %w", err)
	}

	existing.ApplyUpdate(patch)
	if err := existing.Validate(); err != nil {
		logger.Info(ctx, "movie info update rejected", logger.MovieInfoID(id), zap.Error(err))
		return nil, true, err
	}

	if err := uc.repo.Save(ctx, existing); err != nil {
		tracing.RecordError(ctx, err)
		return nil, true, fmt.Errorf("failed to save movie info: %w", err)
	}

	logger.Info(ctx, "movie info updated", logger.MovieInfoID(id))
	publishEvent(ctx, uc.publisher, entity.EventMovieInfoUpdated, id, dto.FromMovieInfo(existing))
	return existing, true, nil
}

// DeleteByID는 영화 정보를 삭제합니다. 없는 id도 성공입니다
func (uc *MovieInfoUseCase) DeleteByID(ctx context.Context, id string) error {
	ctx, span := tracing.StartSpan(ctx, "MovieInfoUseCase.DeleteByID")
	defer span.End()

	tracing.SetAttributes(ctx, attribute.String("movie_info.id", id))

	if err := uc.repo.DeleteByID(ctx, id); err != nil {
		tracing.RecordError(ctx, err)
		return fmt.Errorf("failed to delete movie info: %w", err)
	}

	logger.Info(ctx, "movie info deleted", logger.MovieInfoID(id))
	publishEvent(ctx, uc.publisher, entity.EventMovieInfoDeleted, id, nil)
	return nil
}

// HealthCheck는 저장소 상태를 확인합니다. 실패는 DATABASE_CONNECTION_ERROR입니다
func (uc *MovieInfoUseCase) HealthCheck(ctx context.Context) error {
	if err := uc.repo.HealthCheck(ctx); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeDatabaseConnection, "storage unreachable")
	}
	return nil
}
