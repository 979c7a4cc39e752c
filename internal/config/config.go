package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/vladimiradmaev/drink-helper/internal/logger"
)

type Config struct {
	TelegramToken string
	AI            AIConfig
	DB            DBConfig
	Redis         RedisConfig
	HTTP          HTTPConfig
	CacheTTL      time.Duration
	Logger        LoggerConfig
}

type AIConfig struct {
	GeminiAPIKey string
	GeminiModel  string
	OpenAIAPIKey string
	OpenAIModel  string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// DSN returns the postgres connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, c.DBName)
}

// RedisConfig is optional; an empty host disables Redis and the in-memory
// cache and bot state are used instead.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// HTTPConfig configures the JSON API. An empty Addr disables it.
type HTTPConfig struct {
	Addr      string
	JWTSecret string
	TokenTTL  time.Duration
	// SignInSecret is shared with the upstream login service, which is the
	// only caller allowed to exchange a user id for a token.
	SignInSecret string
}

type LoggerConfig struct {
	Level      logger.LogLevel
	OutputPath string
	Format     string
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	cacheTTL, err := getDurationOrDefault("CACHE_TTL", 5*time.Minute)
	if err != nil {
		return nil, err
	}
	tokenTTL, err := getDurationOrDefault("JWT_TTL", 72*time.Hour)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		AI: AIConfig{
			GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
			GeminiModel:  getEnvOrDefault("GEMINI_MODEL", "gemini-1.5-flash"),
			OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
			OpenAIModel:  getEnvOrDefault("OPENAI_MODEL", "gpt-3.5-turbo"),
		},
		DB: DBConfig{
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			Port:     getEnvOrDefault("DB_PORT", "5432"),
			User:     getEnvOrDefault("DB_USER", "postgres"),
			Password: getEnvOrDefault("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrDefault("DB_NAME", "drink_helper"),
		},
		Redis: RedisConfig{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     getEnvOrDefault("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		HTTP: HTTPConfig{
			Addr:      os.Getenv("HTTP_ADDR"),
			JWTSecret: os.Getenv("JWT_SECRET"),
			TokenTTL:  tokenTTL,

			SignInSecret: os.Getenv("SIGNIN_SECRET"),
		},
		CacheTTL: cacheTTL,
		Logger: LoggerConfig{
			Level:      logger.ParseLevel(getEnvOrDefault("LOG_LEVEL", "info")),
			OutputPath: getEnvOrDefault("LOG_OUTPUT", "logs/app.log"),
			Format:     getEnvOrDefault("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that at least one surface is configured completely.
func (c *Config) Validate() error {
	var errs []error

	if c.TelegramToken == "" && c.HTTP.Addr == "" {
		errs = append(errs, errors.New("nothing to run: set TELEGRAM_BOT_TOKEN and/or HTTP_ADDR"))
	}
	if c.HTTP.Addr != "" && c.HTTP.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required when HTTP_ADDR is set"))
	}
	if c.HTTP.Addr != "" && c.HTTP.SignInSecret == "" {
		errs = append(errs, errors.New("SIGNIN_SECRET is required when HTTP_ADDR is set"))
	}
	if c.DB.Host == "" || c.DB.DBName == "" {
		errs = append(errs, errors.New("DB_HOST and DB_NAME are required"))
	}
	if c.CacheTTL <= 0 {
		errs = append(errs, errors.New("CACHE_TTL must be positive"))
	}
	if c.Logger.Format != "json" && c.Logger.Format != "text" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.Logger.Format))
	}

	return errors.Join(errs...)
}
