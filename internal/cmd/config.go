package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Backend struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"backend"`
	Client struct {
		PollIntervalMs int    `yaml:"poll_interval_ms"`
		StalenessMs    int    `yaml:"staleness_ms"`
		IdentityFile   string `yaml:"identity_file"`
	} `yaml:"client"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func defaultIdentityFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "identity.json"
	}
	return filepath.Join(home, ".echoshift", "identity.json")
}

// loadConfig reads the yaml config when present and applies env
// overrides on top. A missing file is not an error; defaults apply.
func loadConfig(path string) (*Config, error) {
	var config Config

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config.Backend.BaseURL = getEnv("ECHOSHIFT_BACKEND_URL", nonEmpty(config.Backend.BaseURL, "http://localhost:8080"))
	config.Client.PollIntervalMs = getEnvAsInt("ECHOSHIFT_POLL_INTERVAL_MS", nonZero(config.Client.PollIntervalMs, 2000))
	config.Client.StalenessMs = getEnvAsInt("ECHOSHIFT_STALENESS_MS", nonZero(config.Client.StalenessMs, 1000))
	config.Client.IdentityFile = getEnv("ECHOSHIFT_IDENTITY_FILE", nonEmpty(config.Client.IdentityFile, defaultIdentityFile()))
	config.Log.Level = getEnv("ECHOSHIFT_LOG_LEVEL", nonEmpty(config.Log.Level, "info"))

	return &config, nil
}

func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Client.PollIntervalMs) * time.Millisecond
}

func (c *Config) Staleness() time.Duration {
	return time.Duration(c.Client.StalenessMs) * time.Millisecond
}

func nonEmpty(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func nonZero(value, fallback int) int {
	if value != 0 {
		return value
	}
	return fallback
}
