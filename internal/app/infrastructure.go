package app

import (
	"context"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/YouSangSon/movie-catalog-service/internal/config"
	"github.com/YouSangSon/movie-catalog-service/internal/domain/repository"
	"github.com/YouSangSon/movie-catalog-service/internal/infrastructure/cache"
	"github.com/YouSangSon/movie-catalog-service/internal/infrastructure/messaging/kafka"
	"github.com/YouSangSon/movie-catalog-service/internal/infrastructure/persistence/mongodb"
	"github.com/YouSangSon/movie-catalog-service/internal/pkg/logger"
	"github.com/YouSangSon/movie-catalog-service/internal/pkg/retry"
	"github.com/YouSangSon/movie-catalog-service/internal/pkg/vault"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// infrastructure는 서비스가 사용하는 외부 연결 모음입니다. 비활성화된 항목은 nil입니다
type infrastructure struct {
	vault     *vault.Client
	mongo     *mongo.Client
	database  *mongo.Database
	redis     *redis.Client
	limiter   *cache.RateLimiter
	producer  *kafka.Producer
	publisher repository.EventPublisher
}

// newInfrastructure는 설정에 따라 Vault, MongoDB, Redis, Kafka 연결을 엽니다.
// 실패하면 이미 연 연결을 닫고 에러를 반환합니다. Kafka 실패는 경고만 남깁니다
func newInfrastructure(ctx context.Context, cfg *config.Config) (infra *infrastructure, err error) {
	infra = &infrastructure{}
	defer func() {
		if err != nil {
			infra.close(context.Background())
			infra = nil
		}
	}()

	// ============================================
	// Vault (Optional)
	// ============================================
	if cfg.Vault.Enabled {
		infra.vault, err = vault.NewClient(ctx, &vault.Config{
			Address:      cfg.Vault.Address,
			AuthMethod:   cfg.Vault.AuthMethod,
			Token:        cfg.Vault.Token,
			RoleID:       cfg.Vault.RoleID,
			SecretID:     cfg.Vault.SecretID,
			K8sRole:      cfg.Vault.K8sRole,
			K8sTokenPath: vault.DefaultConfig().K8sTokenPath,
			Namespace:    cfg.Vault.Namespace,
			MongoDBPath:  cfg.Vault.Paths.MongoDB,
			RedisPath:    cfg.Vault.Paths.Redis,
			CacheEnabled: cfg.Vault.CacheTTL > 0,
			CacheTTL:     cfg.Vault.CacheTTL,
		})
		if err != nil {
			return infra, fmt.Errorf("failed to initialize vault client: %w", err)
		}
	}

	// ============================================
	// MongoDB (movieinfo, review)
	// ============================================
	if cfg.App.Role != config.RoleMovies && cfg.MongoDB.Enabled {
		if err = infra.connectMongo(ctx, cfg); err != nil {
			return infra, err
		}
	}

	// ============================================
	// Redis Rate Limiter (Optional)
	// ============================================
	if cfg.Redis.Enabled {
		if err = infra.connectRedis(ctx, cfg); err != nil {
			return infra, err
		}
	}

	// ============================================
	// Kafka Producer (Optional, movieinfo/review)
	// ============================================
	if cfg.App.Role != config.RoleMovies && cfg.Kafka.Enabled {
		infra.connectKafka(ctx, cfg, retry.DefaultConfig())
	}

	return infra, nil
}

func (i *infrastructure) connectMongo(ctx context.Context, cfg *config.Config) error {
	uri := cfg.MongoDB.URI
	if cfg.MongoDB.UseVault {
		if i.vault == nil {
			return fmt.Errorf("mongodb.use_vault is set but vault is not enabled")
		}
		vaultURI, err := i.vault.GetMongoDBURI(ctx)
		if err != nil {
			return fmt.Errorf("failed to get mongodb uri from vault: %w", err)
		}
		uri = vaultURI
		logger.Info(ctx, "using vault-managed mongodb credentials")
	}

	retryConfig := retry.DefaultConfig()
	if cfg.MongoDB.RetryAttempts > 0 {
		retryConfig.MaxAttempts = cfg.MongoDB.RetryAttempts
	}

	client, err := mongodb.Connect(ctx, &mongodb.Config{
		URI:            uri,
		Database:       cfg.MongoDB.Database,
		MaxPoolSize:    cfg.MongoDB.MaxPoolSize,
		MinPoolSize:    cfg.MongoDB.MinPoolSize,
		ConnectTimeout: cfg.MongoDB.ConnectTimeout,
		Timeout:        cfg.MongoDB.Timeout,
		Retry:          retryConfig,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize mongodb: %w", err)
	}
	i.mongo = client
	i.database = client.Database(cfg.MongoDB.Database)

	if cfg.App.Role == config.RoleReview {
		if err := mongodb.EnsureReviewIndexes(ctx, i.database); err != nil {
			return err
		}
	}
	return nil
}

func (i *infrastructure) connectRedis(ctx context.Context, cfg *config.Config) error {
	password := cfg.Redis.Password
	if cfg.Redis.UseVault && i.vault != nil {
		vaultPassword, err := i.vault.GetRedisPassword(ctx)
		if err != nil {
			return fmt.Errorf("failed to get redis password from vault: %w", err)
		}
		password = vaultPassword
	}

	client, err := cache.NewClient(ctx, cache.Config{
		Addr:         cfg.Redis.Addr,
		Password:     password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	i.redis = client

	if cfg.RateLimit.Enabled {
		i.limiter = cache.NewRateLimiter(client, cfg.App.Name+":ratelimit", cfg.RateLimit.Limit, cfg.RateLimit.Window)
		logger.Info(ctx, "rate limiter initialized",
			zap.Int64("limit", cfg.RateLimit.Limit),
			logger.Duration(cfg.RateLimit.Window),
		)
	}
	return nil
}

var newKafkaProducer = kafka.NewProducer

// connectKafka는 producer 생성을 retryConfig만큼 재시도하고, 끝내 실패하면 이벤트 발행 없이 계속합니다
func (i *infrastructure) connectKafka(ctx context.Context, cfg *config.Config, retryConfig retry.Config) {
	producerConfig := &kafka.ProducerConfig{
		Brokers:          cfg.Kafka.Brokers,
		ClientID:         cfg.Kafka.ClientID,
		Topic:            cfg.Kafka.Topic,
		RequiredAcks:     sarama.RequiredAcks(cfg.Kafka.RequiredAcks),
		MaxRetries:       cfg.Kafka.MaxRetries,
		RetryBackoff:     cfg.Kafka.RetryBackoff,
		EnableIdempotent: cfg.Kafka.EnableIdempotent,
	}
	producer, err := retry.DoWithValue(ctx, retryConfig, func(ctx context.Context) (*kafka.Producer, error) {
		return newKafkaProducer(producerConfig)
	})
	if err != nil {
		logger.Warn(ctx, "failed to initialize kafka producer, events disabled",
			zap.Int("attempts", retryConfig.MaxAttempts),
			zap.Error(err),
		)
		return
	}
	i.producer = producer
	i.publisher = producer
}

// close는 열린 연결을 역순으로 닫습니다
func (i *infrastructure) close(ctx context.Context) {
	if i.producer != nil {
		if err := i.producer.Close(); err != nil {
			logger.Error(ctx, "failed to close kafka producer", zap.Error(err))
		}
	}
	if i.redis != nil {
		if err := i.redis.Close(); err != nil {
			logger.Error(ctx, "failed to close redis client", zap.Error(err))
		}
	}
	if i.mongo != nil {
		disconnectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := i.mongo.Disconnect(disconnectCtx); err != nil {
			logger.Error(ctx, "failed to close mongodb connection", zap.Error(err))
		}
	}
	if i.vault != nil {
		_ = i.vault.Close()
	}
}
