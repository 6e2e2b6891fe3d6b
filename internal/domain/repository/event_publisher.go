package repository

import (
	"context"

	"github.com/YouSangSon/movie-catalog-service/internal/domain/entity"
)

// EventPublisher는 카탈로그 변경 이벤트 발행 인터페이스입니다
type EventPublisher interface {
	Publish(ctx context.Context, event *entity.CatalogEvent) error
	Close() error
}
