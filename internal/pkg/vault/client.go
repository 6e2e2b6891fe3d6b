package vault

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/YouSangSon/movie-catalog-service/internal/pkg/logger"
	vault "github.com/hashicorp/vault/api"
	"go.uber.org/zap"
)

// Client는 Vault 클라이언트 래퍼입니다
type Client struct {
	client     *vault.Client
	config     *Config
	cache      map[string]*Secret
	cacheMutex sync.RWMutex
}

// NewClient는 새로운 Vault 클라이언트를 생성하고 인증합니다
func NewClient(ctx context.Context, cfg *Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid vault config: %w", err)
	}

	vaultConfig := vault.DefaultConfig()
	vaultConfig.Address = cfg.Address

	client, err := vault.NewClient(vaultConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create vault client: %w", err)
	}

	if cfg.Namespace != "" {
		client.SetNamespace(cfg.Namespace)
	}

	vaultClient := &Client{
		client: client,
		config: cfg,
		cache:  make(map[string]*Secret),
	}

	if err := vaultClient.authenticate(ctx); err != nil {
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	logger.Info(ctx, "vault client initialized successfully",
		zap.String("address", cfg.Address),
		zap.String("auth_method", cfg.AuthMethod),
	)

	return vaultClient, nil
}

// authenticate는 Vault에 인증합니다
func (c *Client) authenticate(ctx context.Context) error {
	switch c.config.AuthMethod {
	case "token":
		c.client.SetToken(c.config.Token)
		if _, err := c.client.Auth().Token().LookupSelfWithContext(ctx); err != nil {
			return fmt.Errorf("invalid token: %w", err)
		}

	case "approle":
		data := map[string]interface{}{
			"role_id":   c.config.RoleID,
			"secret_id": c.config.SecretID,
		}
		return c.login(ctx, "auth/approle/login", data)

	case "kubernetes":
		jwt, err := os.ReadFile(c.config.K8sTokenPath)
		if err != nil {
			return fmt.Errorf("failed to read k8s service account token: %w", err)
		}
		data := map[string]interface{}{
			"role": c.config.K8sRole,
			"jwt":  string(jwt),
		}
		return c.login(ctx, "auth/kubernetes/login", data)

	default:
		return fmt.Errorf("unsupported auth method: %s", c.config.AuthMethod)
	}

	return nil
}

func (c *Client) login(ctx context.Context, path string, data map[string]interface{}) error {
	secret, err := c.client.Logical().WriteWithContext(ctx, path, data)
	if err != nil {
		return fmt.Errorf("%s failed: %w", path, err)
	}
	if secret == nil || secret.Auth == nil {
		return fmt.Errorf("%s returned no auth info", path)
	}
	c.client.SetToken(secret.Auth.ClientToken)
	return nil
}

// HealthCheck는 Vault 연결 상태를 확인합니다
func (c *Client) HealthCheck(ctx context.Context) error {
	health, err := c.client.Sys().HealthWithContext(ctx)
	if err != nil {
		return fmt.Errorf("vault health check failed: %w", err)
	}

	if health.Sealed {
		return fmt.Errorf("vault is sealed")
	}

	return nil
}

// Close는 캐시를 비우고 토큰을 지웁니다
func (c *Client) Close() error {
	c.cacheMutex.Lock()
	c.cache = make(map[string]*Secret)
	c.cacheMutex.Unlock()

	c.client.ClearToken()
	return nil
}
