package config

import (
	"os"
	"strconv"
)

// loadFromEnv overrides config from BIBI_* environment variables.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("BIBI_TASKS"); v != "" {
		cfg.TaskFile = v
	}
	if v := os.Getenv("BIBI_LOG_DIR"); v != "" {
		cfg.LogDir = v
	}
	if v := os.Getenv("BIBI_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("BIBI_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("BIBI_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
	}
	if v := os.Getenv("BIBI_LINE_WIDTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.LineWidth = n
		}
	}
}

func boolFromString(v string) bool {
	switch v {
	case "1", "true", "TRUE", "True", "yes", "on":
		return true
	}
	return false
}
