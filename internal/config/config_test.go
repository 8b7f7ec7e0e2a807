// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	if cfg.MaxDepth != 5 {
		t.Errorf("MaxDepth = %d, want 5", cfg.MaxDepth)
	}
	if cfg.RefreshInterval != 100*time.Millisecond {
		t.Errorf("RefreshInterval = %v, want 100ms", cfg.RefreshInterval)
	}
	if cfg.Theme != "default" {
		t.Errorf("Theme = %q, want %q", cfg.Theme, "default")
	}
	if !cfg.ShowClean {
		t.Error("ShowClean should default to true")
	}
	if len(cfg.Exclude) == 0 {
		t.Error("Exclude should not be empty by default")
	}
	if len(cfg.ScanPaths) != 1 || cfg.ScanPaths[0] != "~" {
		t.Errorf("ScanPaths = %v, want [~]", cfg.ScanPaths)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults pass", func(c *Config) {}, false},
		{"negative depth", func(c *Config) { c.MaxDepth = -1 }, true},
		{"interval too small", func(c *Config) { c.RefreshInterval = time.Millisecond }, true},
		{"unknown theme", func(c *Config) { c.Theme = "solarized" }, true},
		{"dark theme", func(c *Config) { c.Theme = "dark" }, false},
		{"unlimited depth", func(c *Config) { c.MaxDepth = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_ReturnsDefaultsIfMissing(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.MaxDepth != 5 {
		t.Errorf("MaxDepth = %d, want 5", cfg.MaxDepth)
	}

	// The default ~ scan path must come back expanded, ready to walk.
	home, _ := os.UserHomeDir()
	if len(cfg.ScanPaths) != 1 || cfg.ScanPaths[0] != home {
		t.Errorf("ScanPaths = %v, want [%s]", cfg.ScanPaths, home)
	}
}

func TestLoad_ParsesYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := []byte(`
scan_paths:
  - ~/code
  - ~/projects
max_depth: 3
theme: dark
`)
	if err := os.WriteFile(configPath, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.ScanPaths) != 2 {
		t.Errorf("ScanPaths length = %d, want 2", len(cfg.ScanPaths))
	}
	if cfg.MaxDepth != 3 {
		t.Errorf("MaxDepth = %d, want 3", cfg.MaxDepth)
	}
	if cfg.Theme != "dark" {
		t.Errorf("Theme = %q, want %q", cfg.Theme, "dark")
	}
	// Keys absent from the file keep their defaults.
	if cfg.RefreshInterval != 100*time.Millisecond {
		t.Errorf("RefreshInterval = %v, want default 100ms", cfg.RefreshInterval)
	}
}

func TestLoad_RejectsInvalidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("theme: neon\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(configPath); err == nil {
		t.Fatal("Load() with an unknown theme succeeded, want error")
	}
}

func TestSave_and_Load_Roundtrip(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "sub", "dir", "config.yaml")

	cfg := NewConfig()
	cfg.ScanPaths = []string{"/home/user/code", "/tmp/repos"}
	cfg.MaxDepth = 7
	cfg.RefreshInterval = 250 * time.Millisecond
	cfg.ShowClean = false

	if err := Save(cfg, configPath); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(loaded.ScanPaths) != 2 {
		t.Errorf("ScanPaths length = %d, want 2", len(loaded.ScanPaths))
	}
	if loaded.MaxDepth != 7 {
		t.Errorf("MaxDepth = %d, want 7", loaded.MaxDepth)
	}
	if loaded.RefreshInterval != 250*time.Millisecond {
		t.Errorf("RefreshInterval = %v, want 250ms", loaded.RefreshInterval)
	}
	if loaded.ShowClean {
		t.Error("ShowClean should be false after roundtrip")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot determine home dir")
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"tilde only", "~", home},
		{"tilde with path", "~/code", filepath.Join(home, "code")},
		{"absolute path unchanged", "/usr/local/bin", "/usr/local/bin"},
		{"empty string", "", ""},
		{"relative path unchanged", "some/path", "some/path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExpandHome(tt.input)
			if got != tt.expected {
				t.Errorf("ExpandHome(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDefaultConfigPath(t *testing.T) {
	t.Run("env var wins", func(t *testing.T) {
		t.Setenv(EnvConfigPath, "/etc/custom.yaml")
		t.Setenv("XDG_CONFIG_HOME", "/custom/config")
		if got := DefaultConfigPath(); got != "/etc/custom.yaml" {
			t.Errorf("DefaultConfigPath() = %q, want %q", got, "/etc/custom.yaml")
		}
	})

	t.Run("uses XDG_CONFIG_HOME when set", func(t *testing.T) {
		t.Setenv(EnvConfigPath, "")
		t.Setenv("XDG_CONFIG_HOME", "/custom/config")
		got := DefaultConfigPath()
		expected := "/custom/config/reponest/config.yaml"
		if got != expected {
			t.Errorf("DefaultConfigPath() = %q, want %q", got, expected)
		}
	})

	t.Run("falls back to ~/.config when XDG unset", func(t *testing.T) {
		t.Setenv(EnvConfigPath, "")
		t.Setenv("XDG_CONFIG_HOME", "")
		home, _ := os.UserHomeDir()
		got := DefaultConfigPath()
		expected := filepath.Join(home, ".config", "reponest", "config.yaml")
		if got != expected {
			t.Errorf("DefaultConfigPath() = %q, want %q", got, expected)
		}
	})
}
