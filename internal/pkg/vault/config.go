package vault

import (
	"fmt"
	"time"
)

// Config는 Vault 클라이언트 설정입니다
type Config struct {
	// Vault 서버 주소
	Address string

	// 인증 방법 (token, approle, kubernetes)
	AuthMethod string
	Token      string

	// AppRole 설정
	RoleID   string
	SecretID string

	// Kubernetes 설정
	K8sRole      string
	K8sTokenPath string

	Namespace string

	// 시크릿 경로 설정 (KV v2)
	MongoDBPath string // MongoDB 접속 정보 경로
	RedisPath   string // Redis 자격증명 경로

	// 캐시 설정
	CacheEnabled bool
	CacheTTL     time.Duration
}

// DefaultConfig는 기본 Vault 설정을 반환합니다
func DefaultConfig() *Config {
	return &Config{
		Address:      "http://localhost:8200",
		AuthMethod:   "token",
		K8sTokenPath: "/var/run/secrets/kubernetes.io/serviceaccount/token",
		MongoDBPath:  "secret/data/movie-catalog/mongodb",
		RedisPath:    "secret/data/movie-catalog/redis",
		CacheEnabled: true,
		CacheTTL:     5 * time.Minute,
	}
}

// Validate는 설정을 검증합니다
func (c *Config) Validate() error {
	if c.Address == "" {
		return fmt.Errorf("vault address is required")
	}

	switch c.AuthMethod {
	case "token":
		if c.Token == "" {
			return fmt.Errorf("vault token is required for token auth")
		}
	case "approle":
		if c.RoleID == "" || c.SecretID == "" {
			return fmt.Errorf("role_id and secret_id are required for approle auth")
		}
	case "kubernetes":
		if c.K8sRole == "" {
			return fmt.Errorf("kubernetes role is required for kubernetes auth")
		}
	default:
		return fmt.Errorf("unsupported auth method: %s", c.AuthMethod)
	}

	if c.CacheTTL <= 0 {
		c.CacheTTL = 5 * time.Minute
	}

	return nil
}

// Secret은 읽어온 시크릿과 캐시 시각입니다
type Secret struct {
	Data      map[string]interface{}
	FetchedAt time.Time
}

// expired는 캐시 TTL이 지났는지 확인합니다
func (s *Secret) expired(ttl time.Duration) bool {
	return time.Since(s.FetchedAt) > ttl
}
