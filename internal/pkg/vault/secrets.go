package vault

import (
	"context"
	"fmt"
	"time"

	"github.com/YouSangSon/movie-catalog-service/internal/pkg/logger"
	"go.uber.org/zap"
)

// GetSecret는 KV v2 시크릿을 가져옵니다
func (c *Client) GetSecret(ctx context.Context, path string) (*Secret, error) {
	if c.config.CacheEnabled {
		if cached := c.getCachedSecret(path); cached != nil {
			return cached, nil
		}
	}

	secret, err := c.client.Logical().ReadWithContext(ctx, path)
	if err != nil {
		logger.Error(ctx, "failed to read secret",
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to read secret: %w", err)
	}

	if secret == nil || secret.Data == nil {
		return nil, fmt.Errorf("secret not found at path: %s", path)
	}

	// KV v2는 실제 값을 data.data 아래에 둡니다
	data := secret.Data
	if nested, ok := secret.Data["data"].(map[string]interface{}); ok {
		data = nested
	}

	result := &Secret{Data: data, FetchedAt: time.Now()}

	if c.config.CacheEnabled {
		c.cacheMutex.Lock()
		c.cache[path] = result
		c.cacheMutex.Unlock()
	}

	logger.Debug(ctx, "secret retrieved", zap.String("path", path))
	return result, nil
}

// GetMongoDBURI는 MongoDB 접속 URI를 가져옵니다.
// uri 키가 없으면 username/password/host로 URI를 조합합니다
func (c *Client) GetMongoDBURI(ctx context.Context) (string, error) {
	secret, err := c.GetSecret(ctx, c.config.MongoDBPath)
	if err != nil {
		return "", fmt.Errorf("failed to get mongodb secret: %w", err)
	}

	if uri, ok := secret.Data["uri"].(string); ok && uri != "" {
		return uri, nil
	}

	username, _ := secret.Data["username"].(string)
	password, _ := secret.Data["password"].(string)
	host, _ := secret.Data["host"].(string)
	if username == "" || password == "" || host == "" {
		return "", fmt.Errorf("mongodb secret at %s has neither uri nor username/password/host", c.config.MongoDBPath)
	}

	return fmt.Sprintf("mongodb://%s:%s@%s", username, password, host), nil
}

// GetRedisPassword는 Redis 비밀번호를 가져옵니다
func (c *Client) GetRedisPassword(ctx context.Context) (string, error) {
	secret, err := c.GetSecret(ctx, c.config.RedisPath)
	if err != nil {
		return "", fmt.Errorf("failed to get redis secret: %w", err)
	}

	password, ok := secret.Data["password"].(string)
	if !ok {
		return "", fmt.Errorf("password not found in redis secret")
	}
	return password, nil
}

// getCachedSecret는 만료되지 않은 캐시 항목을 반환합니다
func (c *Client) getCachedSecret(path string) *Secret {
	c.cacheMutex.RLock()
	defer c.cacheMutex.RUnlock()

	secret, exists := c.cache[path]
	if !exists || secret.expired(c.config.CacheTTL) {
		return nil
	}
	return secret
}
