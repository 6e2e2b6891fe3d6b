package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama/mocks"
	"github.com/YouSangSon/movie-catalog-service/internal/config"
	"github.com/YouSangSon/movie-catalog-service/internal/infrastructure/messaging/kafka"
	"github.com/YouSangSon/movie-catalog-service/internal/pkg/circuitbreaker"
	"github.com/YouSangSon/movie-catalog-service/internal/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roleConfig(role config.Role) *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "movie-catalog", Role: role},
		Upstream: config.UpstreamConfig{
			MovieInfoURL: "http://movieinfo:8080",
			ReviewURL:    "http://review:8081",
		},
		Validation: config.ValidationConfig{MaxRating: 10},
	}
}

func TestNewServices_Roles(t *testing.T) {
	ctx := context.Background()

	t.Run("movieinfo uses memory storage without mongodb", func(t *testing.T) {
		svc, err := newServices(ctx, roleConfig(config.RoleMovieInfo), &infrastructure{})
		require.NoError(t, err)

		assert.NotNil(t, svc.routes.MovieInfos)
		assert.Nil(t, svc.routes.Reviews)
		assert.Nil(t, svc.routes.Movies)
		assert.Nil(t, svc.routes.RateLimiter)
		require.Len(t, svc.dependencies, 1)
		assert.Equal(t, "memory", svc.dependencies[0].Name)
		assert.True(t, svc.dependencies[0].Critical)
		assert.NoError(t, svc.dependencies[0].Check(ctx))
		assert.Len(t, svc.grpcChecks(), 1)
	})

	t.Run("review", func(t *testing.T) {
		svc, err := newServices(ctx, roleConfig(config.RoleReview), &infrastructure{})
		require.NoError(t, err)

		assert.NotNil(t, svc.routes.Reviews)
		assert.Nil(t, svc.routes.MovieInfos)
	})

	t.Run("movies reports upstreams as non-critical", func(t *testing.T) {
		svc, err := newServices(ctx, roleConfig(config.RoleMovies), &infrastructure{})
		require.NoError(t, err)

		assert.NotNil(t, svc.routes.Movies)
		require.Len(t, svc.dependencies, 2)
		for _, dep := range svc.dependencies {
			assert.False(t, dep.Critical, dep.Name)
			assert.NoError(t, dep.Check(ctx), dep.Name)
		}
		assert.Empty(t, svc.grpcChecks())
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := newServices(ctx, roleConfig("gateway"), &infrastructure{})
		assert.Error(t, err)
	})
}

func TestBreakerCheck(t *testing.T) {
	state := circuitbreaker.StateClosed
	check := breakerCheck(func() circuitbreaker.State { return state })

	assert.NoError(t, check(context.Background()))

	state = circuitbreaker.StateHalfOpen
	assert.NoError(t, check(context.Background()))

	state = circuitbreaker.StateOpen
	assert.EqualError(t, check(context.Background()), "circuit breaker is open")
}

func TestMetricsNamespace(t *testing.T) {
	assert.Equal(t, "movie_catalog", metricsNamespace("movie-catalog"))
	assert.Equal(t, "movies_service_v2", metricsNamespace("movies-service.v2"))
}

func kafkaConfig() *config.Config {
	cfg := roleConfig(config.RoleReview)
	cfg.Kafka = config.KafkaConfig{Enabled: true, Brokers: []string{"localhost:9092"}, Topic: "catalog-events"}
	return cfg
}

func fastRetry() retry.Config {
	return retry.Config{MaxAttempts: 3, InitialInterval: time.Millisecond, MaxInterval: time.Millisecond, Multiplier: 1}
}

func stubKafkaProducer(t *testing.T, fn func(*kafka.ProducerConfig) (*kafka.Producer, error)) {
	original := newKafkaProducer
	newKafkaProducer = fn
	t.Cleanup(func() { newKafkaProducer = original })
}

func TestConnectKafka_RetriesUntilBrokerIsReachable(t *testing.T) {
	// Arrange
	attempts := 0
	stubKafkaProducer(t, func(cfg *kafka.ProducerConfig) (*kafka.Producer, error) {
		attempts++
		if attempts < 2 {
			return nil, errors.New("kafka: client has run out of available brokers")
		}
		return kafka.NewProducerWithSyncProducer(mocks.NewSyncProducer(t, nil), cfg.Topic), nil
	})
	infra := &infrastructure{}

	// Act
	infra.connectKafka(context.Background(), kafkaConfig(), fastRetry())

	// Assert
	assert.Equal(t, 2, attempts)
	require.NotNil(t, infra.producer)
	assert.NotNil(t, infra.publisher)
}

func TestConnectKafka_GivesUpWithoutPublisher(t *testing.T) {
	// Arrange
	attempts := 0
	stubKafkaProducer(t, func(*kafka.ProducerConfig) (*kafka.Producer, error) {
		attempts++
		return nil, errors.New("kafka: client has run out of available brokers")
	})
	infra := &infrastructure{}

	// Act
	infra.connectKafka(context.Background(), kafkaConfig(), fastRetry())

	// Assert
	assert.Equal(t, 3, attempts)
	assert.Nil(t, infra.producer)
	assert.Nil(t, infra.publisher)
}
