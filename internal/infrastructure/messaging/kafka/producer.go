package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/YouSangSon/movie-catalog-service/internal/domain/entity"
	"github.com/YouSangSon/movie-catalog-service/internal/domain/repository"
	"github.com/YouSangSon/movie-catalog-service/internal/pkg/logger"
	"github.com/YouSangSon/movie-catalog-service/internal/pkg/metrics"
	"go.uber.org/zap"
)

// ProducerConfig는 프로듀서 설정입니다
type ProducerConfig struct {
	Brokers          []string
	ClientID         string
	Topic            string
	RequiredAcks     sarama.RequiredAcks
	MaxRetries       int
	RetryBackoff     time.Duration
	EnableIdempotent bool
}

// Producer는 카탈로그 이벤트를 Kafka로 발행하는 동기 프로듀서입니다
type Producer struct {
	producer sarama.SyncProducer
	topic    string
}

var _ repository.EventPublisher = (*Producer)(nil)

// NewSaramaConfig는 프로듀서용 sarama 설정을 만듭니다
func NewSaramaConfig(cfg *ProducerConfig) *sarama.Config {
	config := sarama.NewConfig()
	config.ClientID = cfg.ClientID
	config.Producer.RequiredAcks = cfg.RequiredAcks
	config.Producer.Retry.Max = cfg.MaxRetries
	config.Producer.Retry.Backoff = cfg.RetryBackoff
	config.Producer.Idempotent = cfg.EnableIdempotent
	config.Producer.Return.Successes = true
	config.Producer.Return.Errors = true
	if cfg.EnableIdempotent {
		// idempotent 프로듀서는 WaitForAll과 단일 in-flight 요청이 필요합니다
		config.Producer.RequiredAcks = sarama.WaitForAll
		config.Net.MaxOpenRequests = 1
	}
	config.Version = sarama.V3_6_0_0
	return config
}

// NewProducer는 브로커에 연결된 새로운 Kafka 프로듀서를 생성합니다
func NewProducer(cfg *ProducerConfig) (*Producer, error) {
	syncProducer, err := sarama.NewSyncProducer(cfg.Brokers, NewSaramaConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create sync producer: %w", err)
	}

	logger.Info(context.Background(), "kafka producer initialized",
		zap.Strings("brokers", cfg.Brokers),
		zap.String("client_id", cfg.ClientID),
		logger.Topic(cfg.Topic),
	)

	return NewProducerWithSyncProducer(syncProducer, cfg.Topic), nil
}

// NewProducerWithSyncProducer는 이미 만들어진 sarama.SyncProducer로 프로듀서를 구성합니다
func NewProducerWithSyncProducer(producer sarama.SyncProducer, topic string) *Producer {
	return &Producer{producer: producer, topic: topic}
}

// Publish는 이벤트를 엔티티 id를 키로 발행합니다. 같은 엔티티의 이벤트는 같은 파티션으로 갑니다
func (p *Producer) Publish(ctx context.Context, event *entity.CatalogEvent) error {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	headers := []sarama.RecordHeader{
		{Key: []byte("event_type"), Value: []byte(event.Type)},
		{Key: []byte("event_time"), Value: []byte(event.OccurredAt.Format(time.RFC3339))},
	}
	if requestID := logger.RequestIDFromContext(ctx); requestID != "" {
		headers = append(headers, sarama.RecordHeader{Key: []byte("request_id"), Value: []byte(requestID)})
	}

	msg := &sarama.ProducerMessage{
		Topic:     p.topic,
		Key:       sarama.StringEncoder(event.EntityID),
		Value:     sarama.ByteEncoder(eventJSON),
		Timestamp: event.OccurredAt,
		Headers:   headers,
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		metrics.GetMetrics().RecordEventPublished(p.topic, "error")
		return fmt.Errorf("failed to send event: %w", err)
	}
	metrics.GetMetrics().RecordEventPublished(p.topic, "success")

	logger.Debug(ctx, "event published",
		logger.Topic(p.topic),
		zap.String("event_type", string(event.Type)),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset),
	)
	return nil
}

// Close는 프로듀서를 종료합니다
func (p *Producer) Close() error {
	return p.producer.Close()
}
