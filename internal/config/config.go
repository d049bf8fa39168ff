package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	DefaultModel    = "claude-haiku-4-5-20251001"
	DefaultLogLevel = "warn"
)

// Config holds runtime configuration for the draftstats CLI.
type Config struct {
	DBPath          string
	LogLevel        string
	AnthropicAPIKey string
	Model           string
}

// Load reads an optional .env file from the working directory and then builds
// a Config from environment variables.
func Load() (*Config, error) {
	return LoadFrom(".env")
}

// LoadFrom is Load with an explicit dotenv path. A missing file is not an error.
func LoadFrom(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := &Config{
		DBPath:          os.Getenv("DRAFTSTATS_DB"),
		LogLevel:        os.Getenv("DRAFTSTATS_LOG_LEVEL"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		Model:           os.Getenv("DRAFTSTATS_MODEL"),
	}

	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(userHome(), ".draftstats", "stats.db")
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	return cfg, nil
}

func userHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
