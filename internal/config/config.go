// Package config provides client configuration from command-line flags,
// environment variables, and .env files.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultAPIURL is the production book-review service endpoint.
const DefaultAPIURL = "https://logiksutrabackend.onrender.com"

// DefaultPageSize is the number of books per catalogue page. It is a
// configuration option, not a runtime parameter; every fetch in one run
// uses the same size.
const DefaultPageSize = 5

// Config holds the client configuration.
type Config struct {
	App    AppConfig
	Logger LoggerConfig
	API    APIConfig
	State  StateConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// APIConfig holds remote service configuration.
type APIConfig struct {
	BaseURL  string
	PageSize int
	Timeout  time.Duration
}

// StateConfig holds local state storage configuration.
type StateConfig struct {
	// Path is the directory holding the state database. Defaults to
	// ~/.bookshelf.
	Path string
}

// Overrides carries flag values supplied on the command line. Empty
// fields fall through to environment variables and defaults.
type Overrides struct {
	Environment string
	LogLevel    string
	APIURL      string
	PageSize    string
	Timeout     string
	StatePath   string
	EnvFile     string
}

// Load builds configuration with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func Load(o Overrides) (*Config, error) {
	envFile := o.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	// Load .env if it exists (silently ignore if not found).
	_ = loadEnvFile(envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(o.Environment, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(o.LogLevel, "LOG_LEVEL", "warn"),
		},
		API: APIConfig{
			BaseURL:  getConfigValue(o.APIURL, "BOOKSHELF_API_URL", DefaultAPIURL),
			PageSize: getIntConfigValue(o.PageSize, "BOOKSHELF_PAGE_SIZE", DefaultPageSize),
		},
		State: StateConfig{
			Path: getConfigValue(o.StatePath, "BOOKSHELF_STATE_PATH", ""),
		},
	}

	timeoutStr := getConfigValue(o.Timeout, "BOOKSHELF_HTTP_TIMEOUT", "30s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid http timeout %q: %w", timeoutStr, err)
	}
	cfg.API.Timeout = timeout

	if err := cfg.expandStatePath(); err != nil {
		return nil, fmt.Errorf("invalid state path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid API base URL: %s", c.API.BaseURL)
	}

	if c.API.PageSize < 1 {
		return fmt.Errorf("invalid page size: %d (must be at least 1)", c.API.PageSize)
	}

	if c.State.Path == "" {
		return errors.New("state path cannot be empty after expansion")
	}

	return nil
}

// expandStatePath expands ~ and makes the path absolute.
// Defaults to ~/.bookshelf when unset.
func (c *Config) expandStatePath() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	defaultPath := filepath.Join(homeDir, ".bookshelf")

	expanded, err := expandPath(c.State.Path, defaultPath)
	if err != nil {
		return err
	}
	c.State.Path = expanded
	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var result int
	if _, err := fmt.Sscanf(strValue, "%d", &result); err != nil {
		return defaultValue
	}
	return result
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		value = strings.Trim(value, `"'`)

		// Env vars take precedence over .env file.
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
