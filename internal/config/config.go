// Package config handles configuration loading and defaults.
package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Default values.
const (
	DefaultTaskFile  = "bibi-tasks.jsonl"
	DefaultLogDir    = "~/.bibi"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultLineWidth = 60
)

// Config holds the full configuration for bibi.
type Config struct {
	// Paths
	TaskFile string `toml:"task_file"`
	LogDir   string `toml:"log_dir"`

	// Console rendering
	LineWidth int `toml:"line_width"`

	// Diagnostics logging
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
}

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.bibi/bibi.toml or OS-specific config dir)
// 3. Project config file (bibi.toml or .bibi.toml in current directory)
// 4. Environment variables (BIBI_*)
// 5. CLI flags
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	if userConfigFile := findUserConfigFile(); userConfigFile != "" {
		if err := loadConfigFile(cfg, userConfigFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", userConfigFile, err)
		}
	}

	if projectConfigFile := findProjectConfigFile(); projectConfigFile != "" {
		if err := loadConfigFile(cfg, projectConfigFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projectConfigFile, err)
		}
	}

	loadFromEnv(cfg)

	if err := parseFlags(cfg, fs, args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.TaskFile = DefaultTaskFile
	cfg.LogDir = DefaultLogDir
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LineWidth = DefaultLineWidth
}

// loadConfigFile loads TOML config from the given file.
func loadConfigFile(cfg *Config, path string) error {
	_, err := toml.DecodeFile(path, cfg)
	return err
}

// parseFlags defines and parses CLI flags onto the config.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	if fs == nil {
		fs = flag.NewFlagSet("bibi", flag.ContinueOnError)
	}
	fs.StringVar(&cfg.TaskFile, "tasks", cfg.TaskFile, "Path to task file")
	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "Session log directory")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Diagnostics log level (debug|info|warn|error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Diagnostics log format (text|logfmt|json)")
	fs.IntVar(&cfg.LineWidth, "line-width", cfg.LineWidth, "Horizontal rule width")
	return fs.Parse(args)
}

// finalizeConfig computes derived values and validates paths.
func finalizeConfig(cfg *Config) error {
	cfg.LogDir = expandPath(cfg.LogDir)

	if cfg.ProjectRoot == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		cfg.ProjectRoot = wd
	}

	if cfg.LineWidth <= 0 {
		cfg.LineWidth = DefaultLineWidth
	}

	cfg.TaskFile = expandPath(cfg.TaskFile)
	if !filepath.IsAbs(cfg.TaskFile) {
		cfg.TaskFile = filepath.Join(cfg.ProjectRoot, cfg.TaskFile)
	}

	return nil
}
