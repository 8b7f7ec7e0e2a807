// internal/config/config.go
package config

import (
	"fmt"
	"time"
)

type Config struct {
	// Scanning
	ScanPaths []string `yaml:"scan_paths"`
	MaxDepth  int      `yaml:"max_depth"`
	Exclude   []string `yaml:"exclude"`

	// Presentation
	Theme           string        `yaml:"theme"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	ShowClean       bool          `yaml:"show_clean"`
}

func NewConfig() *Config {
	return &Config{
		ScanPaths: []string{"~"},
		MaxDepth:  5,
		Exclude: []string{
			"node_modules", "target", "venv", "build", "site", "out",
			"dist", "bin", "obj", "Debug", "Release", "cache", "tmp",
			"temp", "log", "logs", "*log", "*logs", "Library",
			"Applications", "AppData",
		},
		Theme:           "default",
		RefreshInterval: 100 * time.Millisecond,
		ShowClean:       true,
	}
}

func (c *Config) Validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must be >= 0, got %d", c.MaxDepth)
	}
	if c.RefreshInterval < 10*time.Millisecond {
		return fmt.Errorf("refresh_interval must be at least 10ms, got %v", c.RefreshInterval)
	}
	switch c.Theme {
	case "default", "dark", "light":
	default:
		return fmt.Errorf("unknown theme %q (valid: default, dark, light)", c.Theme)
	}
	return nil
}
