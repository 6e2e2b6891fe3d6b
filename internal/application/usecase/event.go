package usecase

import (
	"context"

	"github.com/YouSangSon/movie-catalog-service/internal/domain/entity"
	"github.com/YouSangSon/movie-catalog-service/internal/domain/repository"
	"github.com/YouSangSon/movie-catalog-service/internal/pkg/logger"
	"go.uber.org/zap"
)

// publishEvent는 변경 이벤트를 발행합니다. 실패는 로그만 남기고 호출자에게 전달하지 않습니다
func publishEvent(ctx context.Context, publisher repository.EventPublisher, eventType entity.EventType, entityID string, payload interface{}) {
	if publisher == nil {
		return
	}

	if err := publisher.Publish(ctx, entity.NewCatalogEvent(eventType, entityID, payload)); err != nil {
		logger.Warn(ctx, "failed to publish catalog event",
			zap.String("event_type", string(eventType)),
			zap.String("entity_id", entityID),
			zap.Error(err),
		)
	}
}
