package main

// Notes:
// - loadEnvConfig: we inject Getenv instead of mutating the process env.
// - warnUnknownEnvVars: we pass the environ slice directly.

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-captainhook/internal/config"
)

// envFrom returns an Environment whose Getenv reads from vars.
func envFrom(vars map[string]string) *Environment {
	env, _, _ := newTestEnv()
	env.Getenv = func(k string) string { return vars[k] }
	return env
}

func TestLoadEnvConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		vars map[string]string
		want envConfig
	}{
		{
			name: "empty",
			vars: nil,
			want: envConfig{},
		},
		{
			name: "all set",
			vars: map[string]string{
				"CAPTAINHOOK_CONFIG":      "site",
				"CAPTAINHOOK_TYPE":        "scss",
				"CAPTAINHOOK_PRESET":      "html-module",
				"CAPTAINHOOK_PRESET_PATH": "/presets",
				"CAPTAINHOOK_WORKERS":     "4",
			},
			want: envConfig{ConfigPath: "site", Type: "scss", Preset: "html-module", PresetPath: "/presets", Workers: 4},
		},
		{
			name: "invalid workers ignored",
			vars: map[string]string{"CAPTAINHOOK_WORKERS": "many"},
			want: envConfig{},
		},
		{
			name: "non-positive workers ignored",
			vars: map[string]string{"CAPTAINHOOK_WORKERS": "0"},
			want: envConfig{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := loadEnvConfig(envFrom(tt.vars))
			if diff := cmp.Diff(tt.want, *got); diff != "" {
				t.Errorf("loadEnvConfig() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	env := &envConfig{Type: "scss", Preset: "less", PresetPath: "/env"}

	t.Run("fills empty fields", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{}
		applyEnvConfig(env, cfg)
		if cfg.Type != "scss" || cfg.Preset != "less" || cfg.PresetPath != "/env" {
			t.Errorf("applyEnvConfig() = %+v", cfg)
		}
	})

	t.Run("file values win", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{Type: "html", Preset: "html-defer", PresetPath: "/file"}
		applyEnvConfig(env, cfg)
		if cfg.Type != "html" || cfg.Preset != "html-defer" || cfg.PresetPath != "/file" {
			t.Errorf("applyEnvConfig() overwrote config: %+v", cfg)
		}
	})
}

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	warnUnknownEnvVars(logger, []string{
		"CAPTAINHOOK_TYPE=html",
		"CAPTAINHOOK_PRESETS=html",
		"HOME=/root",
	})

	out := buf.String()
	if !strings.Contains(out, "name=CAPTAINHOOK_PRESETS") {
		t.Errorf("expected warning for CAPTAINHOOK_PRESETS, got %q", out)
	}
	if strings.Contains(out, "name=CAPTAINHOOK_TYPE ") || strings.Contains(out, "HOME") {
		t.Errorf("unexpected warning in %q", out)
	}
}

func TestLoadSettings_Precedence(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "hook.yaml", "type: html\npreset: html-defer\n")

	env := envFrom(map[string]string{
		"CAPTAINHOOK_CONFIG": cfgPath,
		"CAPTAINHOOK_TYPE":   "scss",
		"CAPTAINHOOK_PRESET": "html-module",
	})

	s, err := loadSettings(commonFlags{}, injectorFlags{preset: "less"}, "", env)
	if err != nil {
		t.Fatalf("loadSettings() error = %v", err)
	}

	if s.cfg.Type != "html" {
		t.Errorf("Type = %q, want file value html over env", s.cfg.Type)
	}
	if s.preset == nil || s.preset.Name != "less" {
		t.Errorf("preset = %+v, want flag value less", s.preset)
	}
	if s.root != dir {
		t.Errorf("root = %q, want config dir %q", s.root, dir)
	}
}
