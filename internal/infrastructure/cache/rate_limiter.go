package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/YouSangSon/movie-catalog-service/internal/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Config는 Redis 연결 설정입니다
type Config struct {
	Addr         string
	Password     string
	DB           int
	PoolSize     int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// NewClient는 Redis 클라이언트를 만들고 연결을 확인합니다
func NewClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MaxRetries:   3,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

// fixedWindowScript는 키의 카운터를 올리고 첫 요청일 때 만료 시간을 설정합니다.
// 반환값은 {현재 카운트, 남은 TTL(ms)}입니다
var fixedWindowScript = redis.NewScript(`
	local current = redis.call('INCR', KEYS[1])
	if current == 1 then
		redis.call('PEXPIRE', KEYS[1], ARGV[1])
	end
	local ttl = redis.call('PTTL', KEYS[1])
	return {current, ttl}
`)

// RateLimiter는 Redis 기반 고정 윈도우 속도 제한기입니다
type RateLimiter struct {
	client redis.Scripter
	prefix string
	limit  int64
	window time.Duration
}

// NewRateLimiter는 새로운 속도 제한기를 생성합니다
func NewRateLimiter(client redis.Scripter, prefix string, limit int64, window time.Duration) *RateLimiter {
	return &RateLimiter{
		client: client,
		prefix: prefix,
		limit:  limit,
		window: window,
	}
}

// Limit은 윈도우당 허용 요청 수입니다
func (rl *RateLimiter) Limit() int64 {
	return rl.limit
}

// Allow는 key에 대한 요청을 허용할지 확인합니다.
// 거부된 경우 윈도우가 끝날 때까지 남은 시간을 함께 반환합니다
func (rl *RateLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	fullKey := rl.key(key)

	values, err := fixedWindowScript.Run(ctx, rl.client, []string{fullKey}, rl.window.Milliseconds()).Int64Slice()
	if err != nil {
		logger.Error(ctx, "rate limit check failed",
			zap.String("key", fullKey),
			zap.Error(err),
		)
		return false, 0, fmt.Errorf("rate limit check failed: %w", err)
	}
	if len(values) != 2 {
		return false, 0, fmt.Errorf("unexpected rate limit script result: %v", values)
	}

	current, ttl := values[0], time.Duration(values[1])*time.Millisecond
	if current > rl.limit {
		if ttl < 0 {
			ttl = rl.window
		}
		return false, ttl, nil
	}
	return true, 0, nil
}

func (rl *RateLimiter) key(key string) string {
	return fmt.Sprintf("%s:%s", rl.prefix, key)
}
