// Package config loads assistant settings from the environment or an .env
// file and validates them before any component is wired up.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	App   AppConfig
	Model ModelConfig
	Agent AgentConfig
	DB    DBConfig
	Redis RedisConfig
}

type AppConfig struct {
	Env      string `validate:"oneof=development staging production"`
	LogLevel string `validate:"oneof=debug info warn error"`
}

type ModelConfig struct {
	Provider    string  `validate:"oneof=openai anthropic"`
	Name        string  `validate:"required"`
	Temperature float64 `validate:"gte=0,lte=2"`
	MaxTokens   int     `validate:"gte=1"`
}

type AgentConfig struct {
	MaxRounds    int `validate:"gte=1"`
	ModelTimeout time.Duration
}

type DBConfig struct {
	Host     string `validate:"required"`
	Port     string `validate:"required"`
	User     string `validate:"required"`
	Password string
	Name     string `validate:"required"`
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// DSN renders the PostgreSQL connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, c.Name)
}

// Addr renders the Redis host:port address. Empty when Redis is not
// configured.
func (c RedisConfig) Addr() string {
	if c.Host == "" {
		return ""
	}
	return c.Host + ":" + c.Port
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// A missing .env file is fine; plain environment variables still apply.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MODEL_PROVIDER", "openai")
	viper.SetDefault("MODEL_NAME", "gpt-4o-mini")
	viper.SetDefault("MODEL_TEMPERATURE", 0.5)
	viper.SetDefault("MODEL_MAX_TOKENS", 4096)
	viper.SetDefault("AGENT_MAX_ROUNDS", 10)
	viper.SetDefault("AGENT_MODEL_TIMEOUT", "60s")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("REDIS_PORT", "6379")

	modelTimeout, err := time.ParseDuration(viper.GetString("AGENT_MODEL_TIMEOUT"))
	if err != nil {
		modelTimeout = 60 * time.Second
	}

	config := &Config{
		App: AppConfig{
			Env:      viper.GetString("APP_ENV"),
			LogLevel: viper.GetString("LOG_LEVEL"),
		},
		Model: ModelConfig{
			Provider:    viper.GetString("MODEL_PROVIDER"),
			Name:        viper.GetString("MODEL_NAME"),
			Temperature: viper.GetFloat64("MODEL_TEMPERATURE"),
			MaxTokens:   viper.GetInt("MODEL_MAX_TOKENS"),
		},
		Agent: AgentConfig{
			MaxRounds:    viper.GetInt("AGENT_MAX_ROUNDS"),
			ModelTimeout: modelTimeout,
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}
