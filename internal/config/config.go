// Package config provides configuration loading and defaults for the myfunds-ui server.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Dismiss policies recognised by AlertsConfig.Policy.
const (
	PolicyStartup = "startup"
	PolicyRearm   = "rearm"
	PolicyPerItem = "per_item"
)

// ServerConfig holds network and authentication settings.
type ServerConfig struct {
	Port      int    `yaml:"port"`
	AuthToken string `yaml:"auth_token"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	// Level is a zerolog level name (trace, debug, info, warn, error).
	Level string `yaml:"level"`
	// Format is one of auto, console or json. auto picks console on a terminal.
	Format string `yaml:"format"`
}

// AlertsConfig configures the notification center.
type AlertsConfig struct {
	// AutoDismissDelayMs is the bulk sweep delay in milliseconds.
	AutoDismissDelayMs int    `yaml:"auto_dismiss_delay_ms"`
	Container          string `yaml:"container"`
	// Policy is one of startup, rearm or per_item.
	Policy string `yaml:"policy"`
}

// APIConfig holds connection details for the application's JSON endpoint.
type APIConfig struct {
	// Origin is the scheme and host the page was served from.
	Origin string `yaml:"origin"`
	// BaseURL is accepted for compatibility with the page script but has no
	// effect: requests always go to Origin + "/ajax/".
	BaseURL string `yaml:"base_url"`
	// TimeoutMs is the request timeout in milliseconds.
	TimeoutMs  int `yaml:"timeout_ms"`
	RatePerSec int `yaml:"rate_per_sec"`
	// Allowlist and Denylist are glob patterns over operation names.
	Allowlist []string `yaml:"allowlist"`
	Denylist  []string `yaml:"denylist"`
}

// UIConfig holds static widget settings handed to the page.
type UIConfig struct {
	Language         string `yaml:"language"`
	TimePicker       bool   `yaml:"time_picker"`
	TimePicker24Hour bool   `yaml:"time_picker_24_hour"`
	FileInput        bool   `yaml:"file_input"`
	IconSize         int    `yaml:"icon_size"`
	// Panels lists the ids of display-toggled panels on the page.
	Panels []string `yaml:"panels"`
}

// AuditConfig controls audit logging behaviour.
type AuditConfig struct {
	Enabled bool   `yaml:"enabled"`
	LogPath string `yaml:"log_path"`
}

// Config is the top-level configuration structure for the myfunds-ui server.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
	Alerts AlertsConfig `yaml:"alerts"`
	API    APIConfig    `yaml:"api"`
	UI     UIConfig     `yaml:"ui"`
	Audit  AuditConfig  `yaml:"audit"`
}

// LoadConfig reads and parses a YAML configuration file from the given path.
// Fields absent from the file keep the values of DefaultConfig. On error, nil
// is returned for the config pointer.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports configuration values that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.Alerts.Policy {
	case "", PolicyStartup, PolicyRearm, PolicyPerItem:
	default:
		return fmt.Errorf("invalid alerts policy %q: must be %s, %s or %s",
			c.Alerts.Policy, PolicyStartup, PolicyRearm, PolicyPerItem)
	}
	switch c.Log.Format {
	case "", "auto", "console", "json":
	default:
		return fmt.Errorf("invalid log format %q: must be auto, console or json", c.Log.Format)
	}
	return nil
}

// DefaultConfig returns a new Config populated with sensible default values.
// Each call returns a distinct instance.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
		Alerts: AlertsConfig{
			AutoDismissDelayMs: 3000,
			Container:          "#alerts",
			Policy:             PolicyRearm,
		},
		API: APIConfig{
			Origin:    "http://localhost:5000",
			TimeoutMs: 10000,
		},
		UI: UIConfig{
			Language:  "ru",
			FileInput: true,
			IconSize:  16,
		},
		Audit: AuditConfig{
			Enabled: false,
			LogPath: "/config/audit.log",
		},
	}
}

// ApplyEnvOverrides updates cfg in place with values from environment variables.
// Recognized variables:
//   - MYFUNDS_UI_AUTH_TOKEN overrides cfg.Server.AuthToken
//   - MYFUNDS_UI_ORIGIN overrides cfg.API.Origin
//   - MYFUNDS_UI_LOG_LEVEL overrides cfg.Log.Level
func ApplyEnvOverrides(cfg *Config) {
	if token := os.Getenv("MYFUNDS_UI_AUTH_TOKEN"); token != "" {
		cfg.Server.AuthToken = token
	}
	if origin := os.Getenv("MYFUNDS_UI_ORIGIN"); origin != "" {
		cfg.API.Origin = origin
	}
	if level := os.Getenv("MYFUNDS_UI_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
}

// EnsureAuthToken generates a random auth token and sets it on cfg if
// cfg.Server.AuthToken is empty. It returns the token (existing or generated)
// and any error encountered during generation.
func EnsureAuthToken(cfg *Config) (string, error) {
	if cfg.Server.AuthToken != "" {
		return cfg.Server.AuthToken, nil
	}
	token, err := GenerateRandomToken()
	if err != nil {
		return "", fmt.Errorf("generate auth token: %w", err)
	}
	cfg.Server.AuthToken = token
	return token, nil
}

// GenerateRandomToken returns a 32-character hex-encoded cryptographically
// random token string.
func GenerateRandomToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand.Read: %w", err)
	}
	return hex.EncodeToString(b), nil
}
