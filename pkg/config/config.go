// Package config reads process settings from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Discord  DiscordConfig
	Riot     RiotConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Locale   LocaleConfig
	API      APIConfig
	Log      LogConfig

	// DocumentsPath holds profile documents when Redis is not configured.
	DocumentsPath string `envconfig:"DOCUMENTS_PATH" default:"./data"`
	MetricsPort   string `envconfig:"METRICS_PORT" default:"2112"`
}

type DiscordConfig struct {
	Token string `envconfig:"DISCORD_BOT_TOKEN" required:"true"`
}

type RiotConfig struct {
	APIKey        string        `envconfig:"RIOT_API_KEY" required:"true"`
	TFTAPIKey     string        `envconfig:"TFT_API_KEY"`
	RatePerSecond float64       `envconfig:"RIOT_RATE_PER_SECOND" default:"15"`
	Timeout       time.Duration `envconfig:"RIOT_TIMEOUT" default:"10s"`
}

type PostgresConfig struct {
	Addr     string `envconfig:"POSTGRES_ADDR"`
	User     string `envconfig:"POSTGRES_USER"`
	Password string `envconfig:"POSTGRES_PASS"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR"`
	Password string `envconfig:"REDIS_PASS"`
}

type LocaleConfig struct {
	Path string `envconfig:"LOCALE_PATH"`
	Lang string `envconfig:"BOT_LANG" default:"es"`
}

type APIConfig struct {
	Port          string `envconfig:"API_PORT" default:"5000"`
	AdminUser     string `envconfig:"API_ADMIN_USER" default:"admin"`
	AdminPassword string `envconfig:"API_ADMIN_PASS"`
}

type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Dev         bool   `envconfig:"LOG_DEV"`
	Path        string `envconfig:"LOG_PATH" default:"./"`
	DisableFile bool   `envconfig:"DISABLE_LOG_FILE"`
}

var ErrNoPostgres = errors.New("config: POSTGRES_ADDR, POSTGRES_USER and POSTGRES_PASS are required")

// FilePath is the log directory, or empty when file logging is off.
func (l LogConfig) FilePath() string {
	if l.DisableFile {
		return ""
	}
	return l.Path
}

// UseRedis reports whether state and documents live in Redis rather than in
// memory and on disk.
func (r RedisConfig) UseRedis() bool {
	return r.Addr != ""
}

func (p PostgresConfig) Validate() error {
	if p.Addr == "" || p.User == "" || p.Password == "" {
		return ErrNoPostgres
	}
	return nil
}

func (r RiotConfig) TFTKey() string {
	if r.TFTAPIKey != "" {
		return r.TFTAPIKey
	}
	return r.APIKey
}

// Load reads .env when present and then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads the environment only.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
