package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Role은 실행할 서비스 종류입니다
type Role string

const (
	RoleMovieInfo Role = "movieinfo"
	RoleReview    Role = "review"
	RoleMovies    Role = "movies"
)

// Config는 애플리케이션 전체 설정입니다
type Config struct {
	App           AppConfig           `mapstructure:"app"`
	Server        ServerConfig        `mapstructure:"server"`
	MongoDB       MongoDBConfig       `mapstructure:"mongodb"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Kafka         KafkaConfig         `mapstructure:"kafka"`
	Vault         VaultConfig         `mapstructure:"vault"`
	Upstream      UpstreamConfig      `mapstructure:"upstream"`
	Validation    ValidationConfig    `mapstructure:"validation"`
	Observability ObservabilityConfig `mapstructure:"observability"`
	RateLimit     RateLimitConfig     `mapstructure:"rate_limit"`
}

// AppConfig는 애플리케이션 기본 설정입니다
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Role        Role   `mapstructure:"role"`
}

// ServerConfig는 서버 설정입니다
type ServerConfig struct {
	HTTP HTTPServerConfig `mapstructure:"http"`
	GRPC GRPCServerConfig `mapstructure:"grpc"`
}

// HTTPServerConfig는 HTTP 서버 설정입니다
type HTTPServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// GRPCServerConfig는 gRPC health 서버 설정입니다. Port가 0이면 띄우지 않습니다
type GRPCServerConfig struct {
	Port              int           `mapstructure:"port"`
	EnableReflection  bool          `mapstructure:"enable_reflection"`
	MaxConnectionIdle time.Duration `mapstructure:"max_connection_idle"`
	CheckInterval     time.Duration `mapstructure:"check_interval"`
}

// MongoDBConfig는 MongoDB 설정입니다. 비활성화되면 메모리 저장소를 씁니다
type MongoDBConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	URI            string        `mapstructure:"uri"`
	Database       string        `mapstructure:"database"`
	UseVault       bool          `mapstructure:"use_vault"`
	MaxPoolSize    uint64        `mapstructure:"max_pool_size"`
	MinPoolSize    uint64        `mapstructure:"min_pool_size"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	Timeout        time.Duration `mapstructure:"timeout"`
	RetryAttempts  int           `mapstructure:"retry_attempts"`
}

// RedisConfig는 Redis 설정입니다
type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	UseVault     bool          `mapstructure:"use_vault"`
}

// KafkaConfig는 Kafka 설정입니다
type KafkaConfig struct {
	Enabled          bool          `mapstructure:"enabled"`
	Brokers          []string      `mapstructure:"brokers"`
	ClientID         string        `mapstructure:"client_id"`
	Topic            string        `mapstructure:"topic"`
	RequiredAcks     int16         `mapstructure:"required_acks"`
	MaxRetries       int           `mapstructure:"max_retries"`
	RetryBackoff     time.Duration `mapstructure:"retry_backoff"`
	EnableIdempotent bool          `mapstructure:"enable_idempotent"`
}

// VaultConfig는 Vault 설정입니다
type VaultConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	Address    string        `mapstructure:"address"`
	Token      string        `mapstructure:"token"`
	AuthMethod string        `mapstructure:"auth_method"`
	RoleID     string        `mapstructure:"role_id"`
	SecretID   string        `mapstructure:"secret_id"`
	K8sRole    string        `mapstructure:"k8s_role"`
	Namespace  string        `mapstructure:"namespace"`
	Paths      VaultPaths    `mapstructure:"paths"`
	CacheTTL   time.Duration `mapstructure:"cache_ttl"`
}

// VaultPaths는 Vault 경로 설정입니다
type VaultPaths struct {
	MongoDB string `mapstructure:"mongodb"`
	Redis   string `mapstructure:"redis"`
}

// UpstreamConfig는 movies 서비스가 호출하는 서비스 설정입니다
type UpstreamConfig struct {
	MovieInfoURL     string               `mapstructure:"movie_info_url"`
	ReviewURL        string               `mapstructure:"review_url"`
	Timeout          time.Duration        `mapstructure:"timeout"`
	BatchConcurrency int                  `mapstructure:"batch_concurrency"`
	CircuitBreaker   CircuitBreakerConfig `mapstructure:"circuit_breaker"`
}

// CircuitBreakerConfig는 upstream circuit breaker 설정입니다
type CircuitBreakerConfig struct {
	MaxRequests      uint32        `mapstructure:"max_requests"`
	Interval         time.Duration `mapstructure:"interval"`
	Timeout          time.Duration `mapstructure:"timeout"`
	FailureThreshold uint32        `mapstructure:"failure_threshold"`
}

// ValidationConfig는 입력 검증 설정입니다
type ValidationConfig struct {
	MaxRating float64 `mapstructure:"max_rating"`
}

// ObservabilityConfig는 관찰성 설정입니다
type ObservabilityConfig struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Tracing TracingConfig `mapstructure:"tracing"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// LoggingConfig는 로깅 설정입니다
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// TracingConfig는 분산 추적 설정입니다
type TracingConfig struct {
	Enabled        bool    `mapstructure:"enabled"`
	JaegerEndpoint string  `mapstructure:"jaeger_endpoint"`
	SamplingRate   float64 `mapstructure:"sampling_rate"`
}

// MetricsConfig는 메트릭 설정입니다
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// RateLimitConfig는 /v1 API 속도 제한 설정입니다. Redis가 활성화되어야 동작합니다
type RateLimitConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Limit   int64         `mapstructure:"limit"`
	Window  time.Duration `mapstructure:"window"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "movie-catalog")
	v.SetDefault("app.version", "dev")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.role", "")

	v.SetDefault("server.http.port", 8080)
	v.SetDefault("server.http.read_timeout", 15*time.Second)
	v.SetDefault("server.http.write_timeout", 15*time.Second)
	v.SetDefault("server.http.shutdown_timeout", 15*time.Second)
	v.SetDefault("server.grpc.port", 0)
	v.SetDefault("server.grpc.enable_reflection", false)
	v.SetDefault("server.grpc.max_connection_idle", 5*time.Minute)
	v.SetDefault("server.grpc.check_interval", 10*time.Second)

	v.SetDefault("mongodb.enabled", false)
	v.SetDefault("mongodb.uri", "")
	v.SetDefault("mongodb.use_vault", false)
	v.SetDefault("mongodb.database", "movie_catalog")
	v.SetDefault("mongodb.max_pool_size", 100)
	v.SetDefault("mongodb.min_pool_size", 5)
	v.SetDefault("mongodb.connect_timeout", 10*time.Second)
	v.SetDefault("mongodb.timeout", 5*time.Second)
	v.SetDefault("mongodb.retry_attempts", 5)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.use_vault", false)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.dial_timeout", 5*time.Second)
	v.SetDefault("redis.read_timeout", 3*time.Second)
	v.SetDefault("redis.write_timeout", 3*time.Second)

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.client_id", "movie-catalog")
	v.SetDefault("kafka.topic", "movie-catalog.events")
	v.SetDefault("kafka.required_acks", -1)
	v.SetDefault("kafka.max_retries", 3)
	v.SetDefault("kafka.retry_backoff", 100*time.Millisecond)
	v.SetDefault("kafka.enable_idempotent", true)

	v.SetDefault("vault.enabled", false)
	v.SetDefault("vault.address", "")
	v.SetDefault("vault.token", "")
	v.SetDefault("vault.auth_method", "token")
	v.SetDefault("vault.role_id", "")
	v.SetDefault("vault.secret_id", "")
	v.SetDefault("vault.k8s_role", "")
	v.SetDefault("vault.namespace", "")
	v.SetDefault("vault.paths.mongodb", "secret/data/movie-catalog/mongodb")
	v.SetDefault("vault.paths.redis", "secret/data/movie-catalog/redis")
	v.SetDefault("vault.cache_ttl", 5*time.Minute)

	v.SetDefault("upstream.movie_info_url", "http://localhost:8080")
	v.SetDefault("upstream.review_url", "http://localhost:8081")
	v.SetDefault("upstream.timeout", 5*time.Second)
	v.SetDefault("upstream.batch_concurrency", 4)
	v.SetDefault("upstream.circuit_breaker.max_requests", 3)
	v.SetDefault("upstream.circuit_breaker.interval", time.Minute)
	v.SetDefault("upstream.circuit_breaker.timeout", 30*time.Second)
	v.SetDefault("upstream.circuit_breaker.failure_threshold", 5)

	v.SetDefault("validation.max_rating", 10.0)

	v.SetDefault("observability.logging.level", "info")
	v.SetDefault("observability.tracing.enabled", false)
	v.SetDefault("observability.tracing.jaeger_endpoint", "http://localhost:14268/api/traces")
	v.SetDefault("observability.tracing.sampling_rate", 1.0)
	v.SetDefault("observability.metrics.enabled", true)

	v.SetDefault("rate_limit.enabled", false)
	v.SetDefault("rate_limit.limit", 100)
	v.SetDefault("rate_limit.window", time.Minute)
}

// LoadConfig는 설정 파일을 로드합니다. 파일이 없으면 기본값과 환경변수만 사용합니다.
// 환경변수는 APP_ 접두사에 키의 "."을 "_"로 바꾼 이름입니다 (예: APP_MONGODB_URI)
func LoadConfig(configPath string, configName string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	if configName != "" {
		v.SetConfigName(configName)
	} else {
		v.SetConfigName("config")
	}
	v.SetConfigType("yaml")

	// 환경변수 바인딩
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// Validate는 설정을 검증합니다
func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app.name is required")
	}

	switch c.App.Role {
	case RoleMovieInfo, RoleReview, RoleMovies:
	case "":
		return fmt.Errorf("app.role is required")
	default:
		return fmt.Errorf("unknown app.role %q", c.App.Role)
	}

	if c.Server.HTTP.Port <= 0 {
		return fmt.Errorf("server.http.port must be positive")
	}

	if c.Server.GRPC.Port < 0 {
		return fmt.Errorf("server.grpc.port must not be negative")
	}

	if c.App.Role == RoleMovies {
		if c.Upstream.MovieInfoURL == "" {
			return fmt.Errorf("upstream.movie_info_url is required")
		}
		if c.Upstream.ReviewURL == "" {
			return fmt.Errorf("upstream.review_url is required")
		}
	} else if c.MongoDB.Enabled {
		if !c.MongoDB.UseVault && c.MongoDB.URI == "" {
			return fmt.Errorf("mongodb.uri is required when vault is not used")
		}
		if c.MongoDB.Database == "" {
			return fmt.Errorf("mongodb.database is required")
		}
		if c.MongoDB.UseVault && !c.Vault.Enabled {
			return fmt.Errorf("mongodb.use_vault requires vault.enabled")
		}
	}

	if c.App.Role == RoleReview && c.Validation.MaxRating <= 0 {
		return fmt.Errorf("validation.max_rating must be positive")
	}

	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr is required")
	}

	if c.RateLimit.Enabled {
		if !c.Redis.Enabled {
			return fmt.Errorf("rate_limit requires redis.enabled")
		}
		if c.RateLimit.Limit <= 0 || c.RateLimit.Window <= 0 {
			return fmt.Errorf("rate_limit.limit and rate_limit.window must be positive")
		}
	}

	if c.Kafka.Enabled {
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("kafka.brokers is required")
		}
		if c.Kafka.Topic == "" {
			return fmt.Errorf("kafka.topic is required")
		}
	}

	if c.Vault.Enabled {
		if c.Vault.Address == "" {
			return fmt.Errorf("vault.address is required")
		}
		if c.Vault.AuthMethod == "token" && c.Vault.Token == "" {
			return fmt.Errorf("vault.token is required for token auth")
		}
	}

	return nil
}
