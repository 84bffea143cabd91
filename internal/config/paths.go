package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// findUserConfigFile looks for a config file in the user's home or
// OS-specific config directory. Returns "" when none exists.
func findUserConfigFile() string {
	candidates := []string{}

	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".bibi", "bibi.toml"))
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(configDir, "bibi", "bibi.toml"))
	}

	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// findProjectConfigFile looks for bibi.toml or .bibi.toml in the current
// directory. Returns "" when none exists.
func findProjectConfigFile() string {
	for _, name := range []string{"bibi.toml", ".bibi.toml"} {
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			return name
		}
	}
	return ""
}

// expandPath expands a leading ~ and environment variables in paths.
func expandPath(p string) string {
	if p == "" {
		return p
	}

	expanded := os.ExpandEnv(p)
	if expanded == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return expanded
		}
		return home
	}
	if strings.HasPrefix(expanded, "~/") || (runtime.GOOS == "windows" && strings.HasPrefix(expanded, "~\\")) {
		home, err := os.UserHomeDir()
		if err != nil {
			return expanded
		}
		return filepath.Join(home, expanded[2:])
	}
	return expanded
}
