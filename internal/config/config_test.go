package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/YouSangSon/movie-catalog-service/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "service.yaml"), []byte(content), 0o600))
	return dir
}

func TestLoadConfig_FileAndDefaults(t *testing.T) {
	dir := writeConfig(t, `
app:
  name: review-service
  role: review
server:
  http:
    port: 8081
upstream:
  timeout: 2s
validation:
  max_rating: 5
`)

	cfg, err := config.LoadConfig(dir, "service")
	require.NoError(t, err)

	assert.Equal(t, "review-service", cfg.App.Name)
	assert.Equal(t, config.RoleReview, cfg.App.Role)
	assert.Equal(t, 8081, cfg.Server.HTTP.Port)
	assert.Equal(t, 2*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, 5.0, cfg.Validation.MaxRating)

	// 파일에 없는 값은 기본값입니다
	assert.Equal(t, 15*time.Second, cfg.Server.HTTP.ShutdownTimeout)
	assert.Equal(t, "movie-catalog.events", cfg.Kafka.Topic)
	assert.Equal(t, uint32(3), cfg.Upstream.CircuitBreaker.MaxRequests)
	assert.False(t, cfg.MongoDB.Enabled)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	dir := writeConfig(t, `
app:
  name: movieinfo-service
  role: movieinfo
`)
	t.Setenv("APP_MONGODB_ENABLED", "true")
	t.Setenv("APP_MONGODB_URI", "mongodb://mongo:27017")
	t.Setenv("APP_SERVER_HTTP_PORT", "9090")
	t.Setenv("APP_KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := config.LoadConfig(dir, "service")
	require.NoError(t, err)

	assert.True(t, cfg.MongoDB.Enabled)
	assert.Equal(t, "mongodb://mongo:27017", cfg.MongoDB.URI)
	assert.Equal(t, 9090, cfg.Server.HTTP.Port)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir(), "does-not-exist")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTP.Port)
	assert.Equal(t, 10.0, cfg.Validation.MaxRating)
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	dir := writeConfig(t, "app: [unterminated")

	_, err := config.LoadConfig(dir, "service")
	assert.Error(t, err)
}

func validConfig(role config.Role) *config.Config {
	return &config.Config{
		App:    config.AppConfig{Name: "svc", Role: role},
		Server: config.ServerConfig{HTTP: config.HTTPServerConfig{Port: 8080}},
		Upstream: config.UpstreamConfig{
			MovieInfoURL: "http://movieinfo:8080",
			ReviewURL:    "http://review:8081",
		},
		Validation: config.ValidationConfig{MaxRating: 10},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *config.Config) {}},
		{name: "missing role", mutate: func(c *config.Config) { c.App.Role = "" }, wantErr: "app.role is required"},
		{name: "unknown role", mutate: func(c *config.Config) { c.App.Role = "gateway" }, wantErr: "unknown app.role"},
		{name: "bad http port", mutate: func(c *config.Config) { c.Server.HTTP.Port = 0 }, wantErr: "server.http.port"},
		{
			name: "movies without review url",
			mutate: func(c *config.Config) {
				c.App.Role = config.RoleMovies
				c.Upstream.ReviewURL = ""
			},
			wantErr: "upstream.review_url is required",
		},
		{
			name: "mongodb without uri",
			mutate: func(c *config.Config) {
				c.MongoDB = config.MongoDBConfig{Enabled: true, Database: "catalog"}
			},
			wantErr: "mongodb.uri is required",
		},
		{
			name: "mongodb vault without vault",
			mutate: func(c *config.Config) {
				c.MongoDB = config.MongoDBConfig{Enabled: true, Database: "catalog", UseVault: true}
			},
			wantErr: "mongodb.use_vault requires vault.enabled",
		},
		{
			name: "review without max rating",
			mutate: func(c *config.Config) {
				c.App.Role = config.RoleReview
				c.Validation.MaxRating = 0
			},
			wantErr: "validation.max_rating",
		},
		{
			name:    "rate limit without redis",
			mutate:  func(c *config.Config) { c.RateLimit = config.RateLimitConfig{Enabled: true, Limit: 10, Window: time.Second} },
			wantErr: "rate_limit requires redis.enabled",
		},
		{
			name:    "kafka without brokers",
			mutate:  func(c *config.Config) { c.Kafka = config.KafkaConfig{Enabled: true, Topic: "events"} },
			wantErr: "kafka.brokers is required",
		},
		{
			name:    "vault token auth without token",
			mutate:  func(c *config.Config) { c.Vault = config.VaultConfig{Enabled: true, Address: "http://vault:8200", AuthMethod: "token"} },
			wantErr: "vault.token is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(config.RoleMovieInfo)
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
