package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testdataDir returns the absolute path to the testdata/config directory.
func testdataDir(t *testing.T) string {
	t.Helper()
	// Navigate from internal/config/ up to project root, then into testdata/config.
	dir, err := filepath.Abs(filepath.Join("..", "..", "testdata", "config"))
	if err != nil {
		t.Fatalf("failed to resolve testdata dir: %v", err)
	}
	return dir
}

// writeTempFile creates a temporary file with the given content and returns its path.
func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp file %s: %v", path, err)
	}
	return path
}

func Test_LoadConfig_Cases(t *testing.T) {
	tests := []struct {
		name        string
		setupPath   func(t *testing.T) string
		wantErr     bool
		errContains string
		validate    func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid config loads all fields",
			setupPath: func(t *testing.T) string {
				t.Helper()
				return filepath.Join(testdataDir(t), "valid.yaml")
			},
			validate: func(t *testing.T, cfg *Config) {
				t.Helper()
				if cfg == nil {
					t.Fatal("expected non-nil config")
				}
				if cfg.Server.Port != 9090 {
					t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
				}
				if cfg.Server.AuthToken != "test-secret-token" {
					t.Errorf("Server.AuthToken = %q, want %q", cfg.Server.AuthToken, "test-secret-token")
				}
				if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
					t.Errorf("Log = %+v, want debug/json", cfg.Log)
				}
				// Alerts
				if cfg.Alerts.AutoDismissDelayMs != 5000 {
					t.Errorf("Alerts.AutoDismissDelayMs = %d, want 5000", cfg.Alerts.AutoDismissDelayMs)
				}
				if cfg.Alerts.Container != "#flash" {
					t.Errorf("Alerts.Container = %q, want %q", cfg.Alerts.Container, "#flash")
				}
				if cfg.Alerts.Policy != PolicyRearm {
					t.Errorf("Alerts.Policy = %q, want %q", cfg.Alerts.Policy, PolicyRearm)
				}
				// API
				if cfg.API.Origin != "http://myfunds.local" {
					t.Errorf("API.Origin = %q, want %q", cfg.API.Origin, "http://myfunds.local")
				}
				if cfg.API.BaseURL != "/custom/" {
					t.Errorf("API.BaseURL = %q, want %q", cfg.API.BaseURL, "/custom/")
				}
				if cfg.API.TimeoutMs != 8000 {
					t.Errorf("API.TimeoutMs = %d, want 8000", cfg.API.TimeoutMs)
				}
				if cfg.API.RatePerSec != 4 {
					t.Errorf("API.RatePerSec = %d, want 4", cfg.API.RatePerSec)
				}
				if len(cfg.API.Allowlist) != 1 || cfg.API.Allowlist[0] != "get*" {
					t.Errorf("API.Allowlist = %v, want [get*]", cfg.API.Allowlist)
				}
				if len(cfg.API.Denylist) != 1 || cfg.API.Denylist[0] != "getSecret*" {
					t.Errorf("API.Denylist = %v, want [getSecret*]", cfg.API.Denylist)
				}
				// UI
				if cfg.UI.Language != "en" || !cfg.UI.TimePicker || !cfg.UI.TimePicker24Hour || cfg.UI.FileInput {
					t.Errorf("UI = %+v, want en/time picker 24h/no file input", cfg.UI)
				}
				wantPanels := []string{"filters", "totals"}
				if len(cfg.UI.Panels) != len(wantPanels) {
					t.Errorf("UI.Panels = %v, want %v", cfg.UI.Panels, wantPanels)
				} else {
					for i, v := range wantPanels {
						if cfg.UI.Panels[i] != v {
							t.Errorf("UI.Panels[%d] = %q, want %q", i, cfg.UI.Panels[i], v)
						}
					}
				}
				// Audit
				if cfg.Audit.Enabled != true {
					t.Errorf("Audit.Enabled = %v, want true", cfg.Audit.Enabled)
				}
				if cfg.Audit.LogPath != "/custom/audit.log" {
					t.Errorf("Audit.LogPath = %q, want %q", cfg.Audit.LogPath, "/custom/audit.log")
				}
			},
		},
		{
			name: "missing file returns error",
			setupPath: func(t *testing.T) string {
				t.Helper()
				return "/nonexistent/path/config.yaml"
			},
			wantErr:     true,
			errContains: "no such file",
			validate: func(t *testing.T, cfg *Config) {
				t.Helper()
				if cfg != nil {
					t.Error("expected nil config for missing file")
				}
			},
		},
		{
			name: "invalid YAML returns unmarshal error",
			setupPath: func(t *testing.T) string {
				t.Helper()
				return filepath.Join(testdataDir(t), "invalid.yaml")
			},
			wantErr:     true,
			errContains: "unmarshal",
			validate: func(t *testing.T, cfg *Config) {
				t.Helper()
				if cfg != nil {
					t.Error("expected nil config for invalid YAML")
				}
			},
		},
		{
			name: "unknown policy returns validation error",
			setupPath: func(t *testing.T) string {
				t.Helper()
				return filepath.Join(testdataDir(t), "bad_policy.yaml")
			},
			wantErr:     true,
			errContains: "invalid alerts policy",
		},
		{
			name: "unknown log format returns validation error",
			setupPath: func(t *testing.T) string {
				t.Helper()
				return writeTempFile(t, "format.yaml", "log:\n  format: xml\n")
			},
			wantErr:     true,
			errContains: "invalid log format",
		},
		{
			name: "empty file returns defaults",
			setupPath: func(t *testing.T) string {
				t.Helper()
				return writeTempFile(t, "empty.yaml", "")
			},
			validate: func(t *testing.T, cfg *Config) {
				t.Helper()
				if cfg == nil {
					t.Fatal("expected non-nil config for empty file")
				}
				if cfg.Server.Port != 8080 {
					t.Errorf("Server.Port = %d, want 8080 for empty file", cfg.Server.Port)
				}
				if cfg.Alerts.Policy != PolicyRearm {
					t.Errorf("Alerts.Policy = %q, want %q for empty file", cfg.Alerts.Policy, PolicyRearm)
				}
				if cfg.API.TimeoutMs != 10000 {
					t.Errorf("API.TimeoutMs = %d, want 10000 for empty file", cfg.API.TimeoutMs)
				}
			},
		},
		{
			name: "partial file keeps remaining defaults",
			setupPath: func(t *testing.T) string {
				t.Helper()
				return writeTempFile(t, "partial.yaml", "alerts:\n  auto_dismiss_delay_ms: 8000\n")
			},
			validate: func(t *testing.T, cfg *Config) {
				t.Helper()
				if cfg.Alerts.AutoDismissDelayMs != 8000 {
					t.Errorf("Alerts.AutoDismissDelayMs = %d, want 8000", cfg.Alerts.AutoDismissDelayMs)
				}
				if cfg.Alerts.Container != "#alerts" {
					t.Errorf("Alerts.Container = %q, want %q", cfg.Alerts.Container, "#alerts")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.setupPath(t)
			cfg, err := LoadConfig(path)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errContains != "" && !strings.Contains(strings.ToLower(err.Error()), strings.ToLower(tt.errContains)) {
					t.Errorf("error = %q, want it to contain %q", err.Error(), tt.errContains)
				}
			} else {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}

			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func Test_DefaultConfig_Values(t *testing.T) {
	cfg := DefaultConfig()
	if cfg == nil {
		t.Fatal("DefaultConfig() returned nil")
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{name: "port", got: cfg.Server.Port, want: 8080},
		{name: "log level", got: cfg.Log.Level, want: "info"},
		{name: "log format", got: cfg.Log.Format, want: "auto"},
		{name: "auto dismiss delay", got: cfg.Alerts.AutoDismissDelayMs, want: 3000},
		{name: "container selector", got: cfg.Alerts.Container, want: "#alerts"},
		{name: "policy", got: cfg.Alerts.Policy, want: PolicyRearm},
		{name: "api timeout", got: cfg.API.TimeoutMs, want: 10000},
		{name: "ui language", got: cfg.UI.Language, want: "ru"},
		{name: "icon size", got: cfg.UI.IconSize, want: 16},
		{name: "file input", got: cfg.UI.FileInput, want: true},
		{name: "audit disabled", got: cfg.Audit.Enabled, want: false},
		{name: "audit log path", got: cfg.Audit.LogPath, want: "/config/audit.log"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func Test_DefaultConfig_ReturnsNewInstance(t *testing.T) {
	cfg1 := DefaultConfig()
	cfg2 := DefaultConfig()

	if cfg1 == cfg2 {
		t.Error("DefaultConfig() should return a new instance each time, got same pointer")
	}
}

func Test_DefaultConfig_Validates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}
}
