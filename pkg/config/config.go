// pkg/config/config.go
package config

import (
	"fmt"
	"strings"
)

// Config is the root configuration structure for the engine.
type Config struct {
	Orchestrator OrchestratorConfig `koanf:"orchestrator"`
	Log          LogConfig          `koanf:"log"`
}

// OrchestratorConfig controls the column-generation loop's stopping rules.
type OrchestratorConfig struct {
	MaxIterations int     `koanf:"max_iterations"` // cap on CG iterations
	Tolerance     float64 `koanf:"tolerance"`      // epsilon for "reduced cost sufficiently negative"
}

// LogConfig controls logger sink settings.
type LogConfig struct {
	Level      string `koanf:"level"`       // debug, info, warn, error
	Format     string `koanf:"format"`      // json, text
	Output     string `koanf:"output"`      // stdout, stderr, file
	FilePath   string `koanf:"file_path"`   // path to log file
	MaxSize    int    `koanf:"max_size"`    // MB
	MaxBackups int    `koanf:"max_backups"` // number of backups
	MaxAge     int    `koanf:"max_age"`     // days
	Compress   bool   `koanf:"compress"`
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	var errs []string

	if c.Orchestrator.MaxIterations <= 0 {
		errs = append(errs, fmt.Sprintf("orchestrator.max_iterations must be positive, got %d", c.Orchestrator.MaxIterations))
	}

	if c.Orchestrator.Tolerance <= 0 {
		errs = append(errs, fmt.Sprintf("orchestrator.tolerance must be positive, got %v", c.Orchestrator.Tolerance))
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, fmt.Sprintf("log.level must be one of: debug, info, warn, error, got %s", c.Log.Level))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}

	return nil
}
