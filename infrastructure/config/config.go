package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"login_regression/domain/entities"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding values from the configuration file
const (
	EnvBrowserName      = "LOGIN_BROWSER_NAME"
	EnvDriverInstallDir = "LOGIN_DRIVER_INSTALL_DIR"
	EnvHeadless         = "LOGIN_HEADLESS"
	EnvValidUsername    = "LOGIN_VALID_USERNAME"
	EnvValidPassword    = "LOGIN_VALID_PASSWORD"
	EnvBackend          = "LOGIN_BACKEND"
	EnvBaseURL          = "LOGIN_BASE_URL"
	EnvReportDir        = "LOGIN_REPORT_DIR"
	EnvLogLevel         = "LOGIN_LOG_LEVEL"
)

// LoadDotEnv loads variables from the given .env files into the process environment.
// Without files it loads ./.env if present; named files must exist.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
		files = []string{".env"}
	}
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// Load reads the configuration file at path, applies environment overrides through
// getenv and fills defaults. An empty path builds the configuration from the environment only.
func Load(path string, getenv func(string) string) (entities.Config, error) {
	var cfg entities.Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if cfg, err = Parse(data, filepath.Ext(path)); err != nil {
			return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg, getenv); err != nil {
		return cfg, err
	}
	applyDefaults(&cfg)

	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Parse decodes a configuration document. YAML is used for .yaml and .yml extensions,
// JSON otherwise. Unknown fields are ignored.
func Parse(data []byte, ext string) (entities.Config, error) {
	var cfg entities.Config
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// Validate checks required fields
func Validate(cfg entities.Config) error {
	if strings.TrimSpace(cfg.BrowserName) == "" {
		return fmt.Errorf("browser_name is required")
	}
	if !cfg.Backend.IsValid() {
		return fmt.Errorf("unknown backend %q (expected %q or %q)", cfg.Backend, entities.BackendSelenium, entities.BackendPlaywright)
	}
	if cfg.ValidUsername == "" {
		return fmt.Errorf("valid_username is required")
	}
	if cfg.ValidPassword == "" {
		return fmt.Errorf("valid_password is required")
	}
	return nil
}

func applyEnv(cfg *entities.Config, getenv func(string) string) error {
	if getenv == nil {
		return nil
	}

	setString := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	setString(&cfg.BrowserName, EnvBrowserName)
	setString(&cfg.DriverInstallDir, EnvDriverInstallDir)
	setString(&cfg.ValidUsername, EnvValidUsername)
	setString(&cfg.ValidPassword, EnvValidPassword)
	setString(&cfg.BaseURL, EnvBaseURL)
	setString(&cfg.ReportDir, EnvReportDir)
	setString(&cfg.LogLevel, EnvLogLevel)

	if v := getenv(EnvBackend); v != "" {
		cfg.Backend = entities.Backend(strings.ToLower(v))
	}

	if v := getenv(EnvHeadless); v != "" {
		headless, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvHeadless, v, err)
		}
		cfg.Headless = headless
	}
	return nil
}

func applyDefaults(cfg *entities.Config) {
	if cfg.Backend == "" {
		cfg.Backend = entities.BackendSelenium
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = entities.DefaultBaseURL
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}
