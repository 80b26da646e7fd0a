// Package config loads the application configuration from the environment
// and an optional .env file. The loaded Config is constructed once at process
// start and passed explicitly into every component constructor.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/viper"
)

// DBConfig holds the relational store connection settings.
type DBConfig struct {
	Host            string
	Port            int
	Username        string
	Password        string
	Database        string
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// Config holds the application's configuration values.
type Config struct {
	ServerPort string
	LogLevel   string
	LogFormat  string

	Database DBConfig

	MaxWorkers         int
	PipelineMode       string
	AnalyzerPolicyPath string

	LLMProvider  string
	LLMModel     string
	OpenAIAPIKey string
	LLMTimeout   time.Duration

	GitHubToken          string
	GitHubAppID          int64
	GitHubInstallationID int64
	GitHubPrivateKeyPath string
	GitHubWebhookSecret  string

	CommentSyncEnabled bool
	CommentMaxInline   int
}

// LoadConfig reads configuration from environment variables and a .env file,
// sets sensible defaults, and validates required fields.
func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")
	viper.SetDefault("DATABASE_HOST", "localhost")
	viper.SetDefault("DATABASE_PORT", 5432)
	viper.SetDefault("DATABASE_USER", "ryzl")
	viper.SetDefault("DATABASE_NAME", "ryzl")
	viper.SetDefault("DATABASE_CONN_MAX_LIFETIME", "30m")
	viper.SetDefault("DATABASE_CONN_MAX_IDLE_TIME", "5m")
	viper.SetDefault("MAX_WORKERS", 4)
	viper.SetDefault("PIPELINE_MODE", "multi-agent")
	viper.SetDefault("LLM_PROVIDER", "mock")
	viper.SetDefault("LLM_MODEL", "gpt-4o-mini")
	viper.SetDefault("LLM_TIMEOUT_SECONDS", 60)
	viper.SetDefault("GITHUB_COMMENT_SYNC_ENABLED", false)
	viper.SetDefault("GITHUB_COMMENT_MAX_INLINE", 10)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Debug("no .env file loaded", "error", err)
		}
	}

	cfg := &Config{
		ServerPort: viper.GetString("SERVER_PORT"),
		LogLevel:   viper.GetString("LOG_LEVEL"),
		LogFormat:  viper.GetString("LOG_FORMAT"),
		Database: DBConfig{
			Host:            viper.GetString("DATABASE_HOST"),
			Port:            viper.GetInt("DATABASE_PORT"),
			Username:        viper.GetString("DATABASE_USER"),
			Password:        viper.GetString("DATABASE_PASSWORD"),
			Database:        viper.GetString("DATABASE_NAME"),
			ConnMaxLifetime: viper.GetDuration("DATABASE_CONN_MAX_LIFETIME"),
			ConnMaxIdleTime: viper.GetDuration("DATABASE_CONN_MAX_IDLE_TIME"),
		},
		MaxWorkers:           viper.GetInt("MAX_WORKERS"),
		PipelineMode:         viper.GetString("PIPELINE_MODE"),
		AnalyzerPolicyPath:   viper.GetString("ANALYZER_POLICY_PATH"),
		LLMProvider:          viper.GetString("LLM_PROVIDER"),
		LLMModel:             viper.GetString("LLM_MODEL"),
		OpenAIAPIKey:         viper.GetString("OPENAI_API_KEY"),
		LLMTimeout:           time.Duration(viper.GetInt("LLM_TIMEOUT_SECONDS")) * time.Second,
		GitHubToken:          viper.GetString("GITHUB_TOKEN"),
		GitHubAppID:          viper.GetInt64("GITHUB_APP_ID"),
		GitHubInstallationID: viper.GetInt64("GITHUB_INSTALLATION_ID"),
		GitHubPrivateKeyPath: viper.GetString("GITHUB_PRIVATE_KEY_PATH"),
		GitHubWebhookSecret:  viper.GetString("GITHUB_WEBHOOK_SECRET"),
		CommentSyncEnabled:   viper.GetBool("GITHUB_COMMENT_SYNC_ENABLED"),
		CommentMaxInline:     viper.GetInt("GITHUB_COMMENT_MAX_INLINE"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints that viper defaults cannot express.
func (c *Config) Validate() error {
	if c.MaxWorkers <= 0 {
		return fmt.Errorf("MAX_WORKERS must be positive, got %d", c.MaxWorkers)
	}
	if c.CommentMaxInline < 0 {
		return fmt.Errorf("GITHUB_COMMENT_MAX_INLINE must not be negative, got %d", c.CommentMaxInline)
	}
	if c.LLMProvider == "openai" && c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY must be set when LLM_PROVIDER=openai")
	}
	if c.GitHubAppID != 0 && c.GitHubPrivateKeyPath == "" {
		return fmt.Errorf("GITHUB_PRIVATE_KEY_PATH must be set when GITHUB_APP_ID is configured")
	}
	if c.CommentSyncEnabled && c.GitHubToken == "" && c.GitHubAppID == 0 {
		return fmt.Errorf("comment sync requires GITHUB_TOKEN or GitHub App credentials")
	}
	return nil
}

// GitHubConfigured reports whether any hosting-API credentials are present.
func (c *Config) GitHubConfigured() bool {
	return c.GitHubToken != "" || c.GitHubAppID != 0
}
