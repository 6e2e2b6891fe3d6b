package entity

import "time"

// EventType은 카탈로그 변경 이벤트 종류입니다
type EventType string

const (
	EventMovieInfoCreated EventType = "movieinfo.created"
	EventMovieInfoUpdated EventType = "movieinfo.updated"
	EventMovieInfoDeleted EventType = "movieinfo.deleted"
	EventReviewCreated    EventType = "review.created"
	EventReviewUpdated    EventType = "review.updated"
	EventReviewDeleted    EventType = "review.deleted"
)

// CatalogEvent는 저장소 변경 후 발행되는 이벤트입니다
type CatalogEvent struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	EntityID   string      `json:"entityId"`
	Payload    interface{} `json:"payload,omitempty"`
	OccurredAt time.Time   `json:"occurredAt"`
}

// NewCatalogEvent는 새 이벤트를 만듭니다
func NewCatalogEvent(eventType EventType, entityID string, payload interface{}) *CatalogEvent {
	return &CatalogEvent{
		ID:         NewID(),
		Type:       eventType,
		EntityID:   entityID,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}
}
