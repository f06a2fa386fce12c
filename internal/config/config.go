package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"

	"github.com/medagenda/clinic-api/pkg/messaging/redis"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Redis     RedisConfig
	SMTP      SMTPConfig
	Outbox    OutboxConfig
	Dashboard DashboardConfig
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Port           int `mapstructure:"port"`
	TimeoutSeconds int `mapstructure:"timeoutSeconds"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpiryHours int    `mapstructure:"expiry_hours"`
}

type RedisConfig struct {
	URL          string `mapstructure:"url"`
	MaxRetries   int    `mapstructure:"max_retries"`
	RetryBackoff int    `mapstructure:"retry_backoff_ms"`
	PoolSize     int    `mapstructure:"pool_size"`
	MinIdleConns int    `mapstructure:"min_idle_conns"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	BaseURL  string `mapstructure:"base_url"`
}

type OutboxConfig struct {
	BatchSize       int `mapstructure:"batch_size"`
	PollIntervalSec int `mapstructure:"poll_interval_seconds"`
	RetryAttempts   int `mapstructure:"retry_attempts"`
	RetryDelaySec   int `mapstructure:"retry_delay_seconds"`
	RetentionDays   int `mapstructure:"retention_days"`
}

type DashboardConfig struct {
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds"`
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// WorkerEnv lets the worker deployment override the outbox knobs without a
// config file edit. Zero values mean "use the yaml value".
type WorkerEnv struct {
	BatchSize       int `envconfig:"OUTBOX_BATCH_SIZE"`
	PollIntervalSec int `envconfig:"OUTBOX_POLL_INTERVAL_SECONDS"`
	RetryAttempts   int `envconfig:"OUTBOX_RETRY_ATTEMPTS"`
	RetryDelaySec   int `envconfig:"OUTBOX_RETRY_DELAY_SECONDS"`
	HealthPort      int `envconfig:"WORKER_HEALTH_PORT" default:"8081"`
}

func LoadWorkerEnv() (*WorkerEnv, error) {
	var env WorkerEnv
	if err := envconfig.Process("", &env); err != nil {
		return nil, fmt.Errorf("failed to process worker environment: %w", err)
	}
	return &env, nil
}

// Apply overlays the environment overrides onto the file-based outbox config.
func (e *WorkerEnv) Apply(cfg *OutboxConfig) {
	if e.BatchSize > 0 {
		cfg.BatchSize = e.BatchSize
	}
	if e.PollIntervalSec > 0 {
		cfg.PollIntervalSec = e.PollIntervalSec
	}
	if e.RetryAttempts > 0 {
		cfg.RetryAttempts = e.RetryAttempts
	}
	if e.RetryDelaySec > 0 {
		cfg.RetryDelaySec = e.RetryDelaySec
	}
}

func (c *RedisConfig) ToBrokerConfig() redis.Config {
	return redis.Config{
		URL:          c.URL,
		MaxRetries:   c.MaxRetries,
		RetryBackoff: time.Duration(c.RetryBackoff) * time.Millisecond,
		PoolSize:     c.PoolSize,
		MinIdleConns: c.MinIdleConns,
	}
}
