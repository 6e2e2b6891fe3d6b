package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/YouSangSon/movie-catalog-service/internal/pkg/logger"
	"github.com/YouSangSon/movie-catalog-service/internal/pkg/metrics"
	"github.com/YouSangSon/movie-catalog-service/internal/pkg/retry"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const (
	// MovieInfoCollection은 영화 정보 컬렉션명입니다
	MovieInfoCollection = "movie_infos"
	// ReviewCollection은 리뷰 컬렉션명입니다
	ReviewCollection = "reviews"
)

// Config는 MongoDB 설정입니다
type Config struct {
	URI            string
	Database       string
	MaxPoolSize    uint64
	MinPoolSize    uint64
	ConnectTimeout time.Duration
	Timeout        time.Duration
	Retry          retry.Config
}

// Connect는 MongoDB에 연결하고 ping이 성공할 때까지 재시도합니다
func Connect(ctx context.Context, cfg *Config) (*mongo.Client, error) {
	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetServerSelectionTimeout(cfg.ConnectTimeout).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetTimeout(cfg.Timeout).
		SetReadPreference(readpref.Primary())

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	attempt := 0
	err = retry.Do(ctx, cfg.Retry, func(ctx context.Context) error {
		attempt++
		pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()

		if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
			logger.Warn(ctx, "mongodb ping failed", logger.Retry(attempt), zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logger.Info(ctx, "connected to mongodb", logger.DatabaseName(cfg.Database))
	return client, nil
}

// EnsureReviewIndexes는 movieInfoId 조회용 인덱스를 생성합니다
func EnsureReviewIndexes(ctx context.Context, db *mongo.Database) error {
	start := time.Now()

	model := mongo.IndexModel{
		Keys:    bson.D{{Key: "movie_info_id", Value: 1}},
		Options: options.Index().SetName("idx_movie_info_id"),
	}

	name, err := db.Collection(ReviewCollection).Indexes().CreateOne(ctx, model)
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.GetMetrics().RecordDBOperation("create_index", ReviewCollection, status, time.Since(start))
	if err != nil {
		return fmt.Errorf("failed to create review index: %w", err)
	}

	logger.Debug(ctx, "index ensured", logger.Collection(ReviewCollection), zap.String("index", name))
	return nil
}

// ping은 저장소 헬스체크에 사용됩니다
func ping(ctx context.Context, db *mongo.Database) error {
	return db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}

// recordOperation은 작업 결과를 메트릭과 로그에 남깁니다
func recordOperation(ctx context.Context, operation, collection string, start time.Time, err error) {
	duration := time.Since(start)
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.GetMetrics().RecordDBOperation(operation, collection, status, duration)
	logger.LogDBOperation(ctx, operation, collection, duration.Milliseconds(), err)
}
