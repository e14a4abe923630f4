package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	captainhook "github.com/alnah/go-captainhook"
	"github.com/alnah/go-captainhook/internal/config"
	"github.com/alnah/go-captainhook/internal/fileutil"
	"github.com/alnah/go-captainhook/internal/hints"
	"github.com/alnah/go-captainhook/internal/presets"
)

// defaultConfigName is looked up in the working directory when no config is given.
const defaultConfigName = "captainhook"

// settings is the resolved configuration for one command run.
type settings struct {
	cfg     *config.Config
	preset  *presets.Preset
	root    string // glob base directory
	workers int    // from CAPTAINHOOK_WORKERS, 0 if unset
}

// loadSettings resolves config file, environment, and flags.
// Precedence: CLI flags > env vars > config file > defaults.
func loadSettings(common commonFlags, inj injectorFlags, rootFlag string, env *Environment) (*settings, error) {
	envCfg := loadEnvConfig(env)

	cfg, err := resolveConfig(common.config, envCfg)
	if err != nil {
		return nil, err
	}
	cfg.PresetPath = cfg.Resolve(cfg.PresetPath)

	applyEnvConfig(envCfg, cfg)
	if err := mergeInjectorFlags(inj, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	preset, err := resolvePreset(cfg)
	if err != nil {
		return nil, err
	}

	root := cfg.RootDir()
	if rootFlag != "" {
		root = rootFlag
	}

	return &settings{cfg: cfg, preset: preset, root: root, workers: envCfg.Workers}, nil
}

// resolveConfig loads the config named by --config or CAPTAINHOOK_CONFIG.
// Without either, a captainhook.{yaml,yml,json,jsonc} in the working directory
// is used if present; otherwise the defaults apply.
func resolveConfig(flagConfig string, envCfg *envConfig) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = envCfg.ConfigPath
	}

	if name == "" {
		path := discoverConfig()
		if path == "" {
			return config.DefaultConfig(), nil
		}
		name = path
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("%w%s", err, hints.ForConfigNotFound(userConfigPaths(name)))
		}
		return nil, err
	}
	return cfg, nil
}

// discoverConfig returns the path of the default config file in the working
// directory, or "" if there is none.
func discoverConfig() string {
	for _, ext := range []string{".yaml", ".yml", ".json", ".jsonc"} {
		path := "." + string(filepath.Separator) + defaultConfigName + ext
		if fileutil.FileExists(path) {
			return path
		}
	}
	return ""
}

// userConfigPaths returns where a config called name may be created.
func userConfigPaths(name string) []string {
	if fileutil.IsFilePath(name) {
		return nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(dir, "go-captainhook", name+".yaml")}
}

// mergeInjectorFlags applies explicitly set flags over the config.
func mergeInjectorFlags(f injectorFlags, cfg *config.Config) error {
	if f.templateType != "" {
		cfg.Type = f.templateType
	}
	if f.commentStyle != "" {
		cfg.CommentStyle = f.commentStyle
	}
	if f.preset != "" {
		cfg.Preset = f.preset
	}
	if f.presetPath != "" {
		cfg.PresetPath = f.presetPath
	}

	tags, err := parseTagFlags(f.tags)
	if err != nil {
		return err
	}
	if len(tags) > 0 && cfg.InjectionTemplates == nil {
		cfg.InjectionTemplates = make(map[string]string, len(tags))
	}
	for ext, tmpl := range tags {
		cfg.InjectionTemplates[ext] = tmpl
	}
	return nil
}

// resolvePreset loads the configured preset, or returns nil if none is set.
func resolvePreset(cfg *config.Config) (*presets.Preset, error) {
	if cfg.Preset == "" {
		return nil, nil
	}

	resolver, err := presets.NewResolver(cfg.PresetPath)
	if err != nil {
		return nil, err
	}

	p, err := resolver.Load(cfg.Preset)
	if err != nil {
		if errors.Is(err, presets.ErrPresetNotFound) {
			names, _ := resolver.List()
			return nil, fmt.Errorf("%w%s", err, hints.ForPresetNotFound(names))
		}
		return nil, err
	}
	return p, nil
}

// resolveTemplateType picks the type of the template at path.
// Priority: template/config/env/flag type > preset type > file extension > html.
func resolveTemplateType(cfg *config.Config, t config.TemplateConfig, preset *presets.Preset, path string) captainhook.TemplateType {
	if typ := cfg.TemplateType(t); typ != "" {
		return captainhook.TemplateType(strings.ToLower(typ))
	}
	if preset != nil && preset.Type != "" {
		return captainhook.TemplateType(strings.ToLower(preset.Type))
	}
	return inferTemplateType(path)
}

// inferTemplateType maps a template's extension to a built-in type.
func inferTemplateType(path string) captainhook.TemplateType {
	ext := strings.ToLower(fileutil.Ext(path))
	if ext == "htm" {
		return captainhook.TemplateHTML
	}
	for _, k := range captainhook.KnownTemplateTypes() {
		if ext == string(k) {
			return k
		}
	}
	return captainhook.DefaultTemplateType
}

// injectorOptions builds the options for the injector of one template.
// Preset templates sit under config templates, which sit under --tag.
func injectorOptions(s *settings, t config.TemplateConfig, path string) []captainhook.Option {
	typ := resolveTemplateType(s.cfg, t, s.preset, path)
	opts := []captainhook.Option{captainhook.WithTemplateType(typ)}

	style := s.cfg.TemplateCommentStyle(t)
	if style == "" && s.preset != nil && s.preset.CommentStyle != "" &&
		(s.preset.Type == "" || strings.EqualFold(s.preset.Type, string(typ))) {
		style = s.preset.CommentStyle
	}
	if style != "" {
		opts = append(opts, captainhook.WithCommentStyle(style))
	}

	if s.preset != nil {
		opts = append(opts, captainhook.WithInjectionTemplates(s.preset.InjectionTemplates))
	}
	if len(s.cfg.InjectionTemplates) > 0 {
		opts = append(opts, captainhook.WithInjectionTemplates(s.cfg.InjectionTemplates))
	}
	return opts
}

// newInjector builds the injector for one template and decorates
// construction errors with hints.
func newInjector(s *settings, t config.TemplateConfig, path, content string) (*captainhook.Injector, error) {
	inj, err := captainhook.New(content, injectorOptions(s, t, path)...)
	if err != nil {
		switch {
		case errors.Is(err, captainhook.ErrUnknownTemplateType):
			return nil, fmt.Errorf("%w%s", err, hints.ForUnknownTemplateType(knownTypeNames()))
		case errors.Is(err, captainhook.ErrInvalidCommentStyle):
			return nil, fmt.Errorf("%w%s", err, hints.ForInvalidCommentStyle())
		}
		return nil, err
	}
	return inj, nil
}

// knownTypeNames returns the built-in template types as strings.
func knownTypeNames() []string {
	known := captainhook.KnownTemplateTypes()
	names := make([]string, len(known))
	for i, k := range known {
		names[i] = string(k)
	}
	return names
}
