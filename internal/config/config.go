package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config aggregates application settings that may be sourced from files or environment variables.
type Config struct {
	API        APIConfig        `mapstructure:"api"`
	Session    SessionConfig    `mapstructure:"session"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	MinIO      MinIOConfig      `mapstructure:"minio"`
	Completion CompletionConfig `mapstructure:"completion"`
	Worker     WorkerConfig     `mapstructure:"worker"`
}

// APIConfig contains HTTP server settings.
type APIConfig struct {
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// SessionConfig 控制编辑会话的存储与令牌。
type SessionConfig struct {
	Secret  string        `mapstructure:"secret"`
	TTL     time.Duration `mapstructure:"ttl"`
	Backend string        `mapstructure:"backend"`
}

// DatabaseConfig contains connection options for PostgreSQL.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
}

// RedisConfig 包含 Redis 连接配置。
type RedisConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// MinIOConfig contains connection options for MinIO/S3-compatible storage.
type MinIOConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	PublicEndpoint  string `mapstructure:"public_endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	Bucket          string `mapstructure:"bucket"`
}

// CompletionConfig 配置补全代理及其上游模型。
// ProxyURL 非空时，API 通过 HTTP 调用独立部署的代理。
type CompletionConfig struct {
	Port        int           `mapstructure:"port"`
	Provider    string        `mapstructure:"provider"`
	APIKey      string        `mapstructure:"api_key"`
	GeminiKey   string        `mapstructure:"gemini_key"`
	BaseURL     string        `mapstructure:"base_url"`
	Model       string        `mapstructure:"model"`
	GeminiModel string        `mapstructure:"gemini_model"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Temperature float64       `mapstructure:"temperature"`
	Referer     string        `mapstructure:"referer"`
	Title       string        `mapstructure:"title"`
	Timeout     time.Duration `mapstructure:"timeout"`
	ProxyURL    string        `mapstructure:"proxy_url"`
}

// WorkerConfig contains asynq worker settings.
type WorkerConfig struct {
	Concurrency int    `mapstructure:"concurrency"`
	MetricsPort int    `mapstructure:"metrics_port"`
	MaxRetry    int    `mapstructure:"max_retry"`
	// ChromeBin 为空时由 rod 自动查找或下载浏览器。
	ChromeBin   string `mapstructure:"chrome_bin"`
}

const (
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"

	SessionBackendRedis  = "redis"
	SessionBackendMemory = "memory"
)

// DSN builds a lib/pq compatible connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.Name,
		d.SSLMode,
	)
}

// Addr returns host:port.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// Load reads configuration solely from environment variables (with optional defaults).
func Load() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if err := validate(*cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadCompletion is Load for the standalone proxy, which only needs its own section.
// A missing API key is not an error: the proxy answers 500 per request instead.
func LoadCompletion() (*CompletionConfig, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if err := validateCompletion(cfg.Completion); err != nil {
		return nil, err
	}
	return &cfg.Completion, nil
}

// MustLoad wraps Load and panics on failure.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if err := bindEnv(v); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.allowed_origins", []string{"http://localhost:5173"})
	v.SetDefault("session.ttl", 7*24*time.Hour)
	v.SetDefault("session.backend", SessionBackendRedis)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "resume_builder")
	v.SetDefault("database.user", "resume_builder")
	v.SetDefault("database.password", "resume_builder")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("minio.endpoint", "localhost:9000")
	v.SetDefault("minio.use_ssl", false)
	v.SetDefault("minio.bucket", "resume-exports")
	v.SetDefault("completion.port", 8081)
	v.SetDefault("completion.provider", ProviderOpenRouter)
	v.SetDefault("completion.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("completion.model", "anthropic/claude-3.5-sonnet")
	v.SetDefault("completion.gemini_model", "gemini-2.5-flash")
	v.SetDefault("completion.max_tokens", 500)
	v.SetDefault("completion.temperature", 0.7)
	v.SetDefault("completion.referer", "https://resume-builder.lovable.app")
	v.SetDefault("completion.title", "Resume Builder AI")
	v.SetDefault("completion.timeout", 60*time.Second)
	v.SetDefault("worker.concurrency", 10)
	v.SetDefault("worker.metrics_port", 9091)
	v.SetDefault("worker.max_retry", 5)
}

func bindEnv(v *viper.Viper) error {
	mappings := map[string]string{
		"api.port":                "API_PORT",
		"api.allowed_origins":     "API_ALLOWED_ORIGINS",
		"session.secret":          "SESSION_SECRET",
		"session.ttl":             "SESSION_TTL",
		"session.backend":         "SESSION_BACKEND",
		"database.host":           "DATABASE_HOST",
		"database.port":           "DATABASE_PORT",
		"database.name":           "POSTGRES_DB",
		"database.user":           "POSTGRES_USER",
		"database.password":       "POSTGRES_PASSWORD",
		"database.sslmode":        "DATABASE_SSLMODE",
		"redis.host":              "REDIS_HOST",
		"redis.port":              "REDIS_PORT",
		"minio.endpoint":          "MINIO_ENDPOINT",
		"minio.public_endpoint":   "MINIO_PUBLIC_ENDPOINT",
		"minio.access_key_id":     "MINIO_ACCESS_KEY_ID",
		"minio.secret_access_key": "MINIO_SECRET_ACCESS_KEY",
		"minio.use_ssl":           "MINIO_USE_SSL",
		"minio.bucket":            "MINIO_BUCKET",
		"completion.port":         "COMPLETION_PORT",
		"completion.provider":     "COMPLETION_PROVIDER",
		"completion.api_key":      "OPENROUTER_API_KEY",
		"completion.gemini_key":   "GEMINI_API_KEY",
		"completion.base_url":     "OPENROUTER_BASE_URL",
		"completion.model":        "COMPLETION_MODEL",
		"completion.gemini_model": "GEMINI_MODEL",
		"completion.max_tokens":   "COMPLETION_MAX_TOKENS",
		"completion.temperature":  "COMPLETION_TEMPERATURE",
		"completion.referer":      "COMPLETION_REFERER",
		"completion.title":        "COMPLETION_TITLE",
		"completion.timeout":      "COMPLETION_TIMEOUT",
		"completion.proxy_url":    "COMPLETION_PROXY_URL",
		"worker.concurrency":      "WORKER_CONCURRENCY",
		"worker.metrics_port":     "WORKER_METRICS_PORT",
		"worker.max_retry":        "WORKER_MAX_RETRY",
		"worker.chrome_bin":       "WORKER_CHROME_BIN",
	}

	for key, env := range mappings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s to %s: %w", key, env, err)
		}
	}

	return nil
}

func validate(cfg Config) error {
	if cfg.API.Port <= 0 {
		return errors.New("api port must be positive")
	}
	if cfg.Session.Secret == "" {
		return errors.New("session secret is required")
	}
	if cfg.Session.TTL <= 0 {
		return errors.New("session ttl must be positive")
	}
	if cfg.Session.Backend != SessionBackendRedis && cfg.Session.Backend != SessionBackendMemory {
		return fmt.Errorf("session backend must be %q or %q", SessionBackendRedis, SessionBackendMemory)
	}
	if cfg.Database.Host == "" {
		return errors.New("database host is required")
	}
	if cfg.Database.Port <= 0 {
		return errors.New("database port must be positive")
	}
	if cfg.Database.Name == "" {
		return errors.New("database name is required")
	}
	if cfg.Database.User == "" {
		return errors.New("database user is required")
	}
	if cfg.Database.Password == "" {
		return errors.New("database password is required")
	}
	if cfg.Database.SSLMode == "" {
		return errors.New("database sslmode is required")
	}
	if cfg.Redis.Host == "" {
		return errors.New("redis host is required")
	}
	if cfg.Redis.Port <= 0 {
		return errors.New("redis port must be positive")
	}
	if cfg.MinIO.Endpoint == "" {
		return errors.New("minio endpoint is required")
	}
	if cfg.MinIO.AccessKeyID == "" {
		return errors.New("minio access key id is required")
	}
	if cfg.MinIO.SecretAccessKey == "" {
		return errors.New("minio secret access key is required")
	}
	if cfg.MinIO.Bucket == "" {
		return errors.New("minio bucket is required")
	}
	if cfg.Worker.Concurrency <= 0 {
		return errors.New("worker concurrency must be positive")
	}
	return validateCompletion(cfg.Completion)
}

func validateCompletion(cfg CompletionConfig) error {
	if cfg.Provider != ProviderOpenRouter && cfg.Provider != ProviderGemini {
		return fmt.Errorf("completion provider must be %q or %q", ProviderOpenRouter, ProviderGemini)
	}
	if cfg.MaxTokens <= 0 {
		return errors.New("completion max tokens must be positive")
	}
	if cfg.Temperature < 0 || cfg.Temperature > 2 {
		return errors.New("completion temperature must be within [0, 2]")
	}
	if cfg.Timeout <= 0 {
		return errors.New("completion timeout must be positive")
	}
	return nil
}
