package main

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/alnah/go-captainhook/internal/config"
)

// envPrefix is the prefix of every recognized environment variable.
const envPrefix = "CAPTAINHOOK_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring config files.
type envConfig struct {
	ConfigPath string // CAPTAINHOOK_CONFIG: config file name or path
	Type       string // CAPTAINHOOK_TYPE: default template type
	Preset     string // CAPTAINHOOK_PRESET: preset name
	PresetPath string // CAPTAINHOOK_PRESET_PATH: custom preset directory
	Workers    int    // CAPTAINHOOK_WORKERS: parallel workers
}

// knownEnvVars lists valid CAPTAINHOOK_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"CAPTAINHOOK_CONFIG":      true,
	"CAPTAINHOOK_TYPE":        true,
	"CAPTAINHOOK_PRESET":      true,
	"CAPTAINHOOK_PRESET_PATH": true,
	"CAPTAINHOOK_WORKERS":     true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig(env *Environment) *envConfig {
	cfg := &envConfig{
		ConfigPath: env.getenv("CAPTAINHOOK_CONFIG"),
		Type:       env.getenv("CAPTAINHOOK_TYPE"),
		Preset:     env.getenv("CAPTAINHOOK_PRESET"),
		PresetPath: env.getenv("CAPTAINHOOK_PRESET_PATH"),
	}

	if workers := env.getenv("CAPTAINHOOK_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs a warning for each unrecognized CAPTAINHOOK_* variable.
func warnUnknownEnvVars(logger *slog.Logger, environ []string) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			logger.Warn("unknown environment variable (typo?)", "name", name)
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeInjectorFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Type != "" && cfg.Type == "" {
		cfg.Type = env.Type
	}
	if env.Preset != "" && cfg.Preset == "" {
		cfg.Preset = env.Preset
	}
	if env.PresetPath != "" && cfg.PresetPath == "" {
		cfg.PresetPath = env.PresetPath
	}
}
