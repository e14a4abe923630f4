package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	captainhook "github.com/alnah/go-captainhook"
	"github.com/alnah/go-captainhook/internal/fileutil"
	"github.com/alnah/go-captainhook/internal/pattern"
	"github.com/alnah/go-captainhook/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidConfig   = errors.New("invalid config")
)

// Field length and count limits.
const (
	MaxPathLength        = 4096
	MaxBlockIDLength     = 100
	MaxPatternLength     = 1000 // comment styles and tag templates
	MaxTypeLength        = 50
	MaxPresetLength      = 100
	MaxTemplateCount     = 1000
	MaxBlocksPerTemplate = 100
	MaxFilesPerBlock     = 10000
)

// configDirName is the directory searched under the user config dir.
const configDirName = "go-captainhook"

// configExtensions are tried in order when resolving a config by name.
var configExtensions = []string{".yaml", ".yml", ".json", ".jsonc"}

// Config holds the injection settings and the templates to process.
type Config struct {
	Type               string            `yaml:"type"`
	CommentStyle       string            `yaml:"commentStyle"`
	Preset             string            `yaml:"preset"`
	PresetPath         string            `yaml:"presetPath"`
	InjectionTemplates map[string]string `yaml:"injectionTemplates"`
	Root               string            `yaml:"root"` // base for file globs (default: config dir)
	Templates          []TemplateConfig  `yaml:"templates"`

	// Dir is the directory of the loaded config file. Relative paths resolve
	// against it. Empty for configs not read from disk.
	Dir string `yaml:"-"`
}

// TemplateConfig is one template file and the blocks to rewrite in it.
type TemplateConfig struct {
	Path         string        `yaml:"path"`
	Type         string        `yaml:"type"`         // overrides Config.Type
	CommentStyle string        `yaml:"commentStyle"` // overrides Config.CommentStyle
	Blocks       []BlockConfig `yaml:"blocks"`
}

// BlockConfig lists the files injected into one block.
type BlockConfig struct {
	ID       string   `yaml:"id"`
	Files    []string `yaml:"files"`    // paths, URLs, or glob patterns
	Template string   `yaml:"template"` // optional tag template for every file
}

// Validate checks the config for values that would fail at injection time.
// Called automatically by LoadConfig.
func (c *Config) Validate() error {
	if err := validateFieldLength("type", c.Type, MaxTypeLength); err != nil {
		return err
	}
	if err := validateFieldLength("preset", c.Preset, MaxPresetLength); err != nil {
		return err
	}
	if err := validateFieldLength("presetPath", c.PresetPath, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("root", c.Root, MaxPathLength); err != nil {
		return err
	}
	if err := validateCommentStyle("commentStyle", c.CommentStyle); err != nil {
		return err
	}
	if err := validateType("type", c.Type, c.CommentStyle, c.Preset); err != nil {
		return err
	}

	exts := make([]string, 0, len(c.InjectionTemplates))
	for ext := range c.InjectionTemplates {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	for _, ext := range exts {
		field := fmt.Sprintf("injectionTemplates.%s", ext)
		if err := fileutil.ValidateExtension(ext); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, field, err)
		}
		if err := validateTagTemplate(field, c.InjectionTemplates[ext]); err != nil {
			return err
		}
	}

	if len(c.Templates) > MaxTemplateCount {
		return fmt.Errorf("%w: templates: %d entries (max %d)", ErrInvalidConfig, len(c.Templates), MaxTemplateCount)
	}
	for i, t := range c.Templates {
		if err := c.validateTemplate(fmt.Sprintf("templates[%d]", i), t); err != nil {
			return err
		}
	}

	return nil
}

func (c *Config) validateTemplate(field string, t TemplateConfig) error {
	if t.Path == "" {
		return fmt.Errorf("%w: %s.path: required", ErrInvalidConfig, field)
	}
	if err := validateFieldLength(field+".path", t.Path, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength(field+".type", t.Type, MaxTypeLength); err != nil {
		return err
	}
	if err := validateCommentStyle(field+".commentStyle", t.CommentStyle); err != nil {
		return err
	}
	if t.Type != "" {
		style := t.CommentStyle
		if style == "" {
			style = c.CommentStyle
		}
		if err := validateType(field+".type", t.Type, style, c.Preset); err != nil {
			return err
		}
	}

	if len(t.Blocks) > MaxBlocksPerTemplate {
		return fmt.Errorf("%w: %s.blocks: %d entries (max %d)", ErrInvalidConfig, field, len(t.Blocks), MaxBlocksPerTemplate)
	}
	seen := make(map[string]bool, len(t.Blocks))
	for j, b := range t.Blocks {
		bf := fmt.Sprintf("%s.blocks[%d]", field, j)
		if strings.TrimSpace(b.ID) == "" {
			return fmt.Errorf("%w: %s.id: required", ErrInvalidConfig, bf)
		}
		if err := validateFieldLength(bf+".id", b.ID, MaxBlockIDLength); err != nil {
			return err
		}
		if seen[b.ID] {
			return fmt.Errorf("%w: %s.id: duplicate block %q", ErrInvalidConfig, bf, b.ID)
		}
		seen[b.ID] = true
		if len(b.Files) > MaxFilesPerBlock {
			return fmt.Errorf("%w: %s.files: %d entries (max %d)", ErrInvalidConfig, bf, len(b.Files), MaxFilesPerBlock)
		}
		for k, f := range b.Files {
			if err := validateFieldLength(fmt.Sprintf("%s.files[%d]", bf, k), f, MaxPathLength); err != nil {
				return err
			}
		}
		if b.Template != "" {
			if err := validateTagTemplate(bf+".template", b.Template); err != nil {
				return err
			}
		}
	}
	return nil
}

// validateType accepts built-in template types, or any type when a comment
// style or preset can supply the markers.
func validateType(field, typ, commentStyle, preset string) error {
	if typ == "" || commentStyle != "" || preset != "" {
		return nil
	}
	if _, ok := captainhook.DefaultCommentStyle(captainhook.TemplateType(typ)); !ok {
		return fmt.Errorf("%w: %s: %q needs a commentStyle", captainhook.ErrUnknownTemplateType, field, typ)
	}
	return nil
}

func validateCommentStyle(field, style string) error {
	if style == "" {
		return nil
	}
	if err := validateFieldLength(field, style, MaxPatternLength); err != nil {
		return err
	}
	if !pattern.Default.Has(style, captainhook.VarMarker, captainhook.VarType) {
		return fmt.Errorf("%w: %s: %q must reference {%s} and {%s}",
			captainhook.ErrInvalidCommentStyle, field, style, captainhook.VarMarker, captainhook.VarType)
	}
	return nil
}

func validateTagTemplate(field, tmpl string) error {
	if strings.TrimSpace(tmpl) == "" {
		return fmt.Errorf("%w: %s: empty template", ErrInvalidConfig, field)
	}
	if err := validateFieldLength(field, tmpl, MaxPatternLength); err != nil {
		return err
	}
	if !pattern.Default.Has(tmpl, captainhook.VarFile) {
		return fmt.Errorf("%w: %s: %q must reference {%s}", ErrInvalidConfig, field, tmpl, captainhook.VarFile)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns an empty configuration. An empty Type is resolved at
// injection time from the preset, the template extension, or "html".
func DefaultConfig() *Config {
	return &Config{}
}

// TemplateType returns the effective type of t.
func (c *Config) TemplateType(t TemplateConfig) string {
	if t.Type != "" {
		return t.Type
	}
	return c.Type
}

// TemplateCommentStyle returns the effective comment style of t.
func (c *Config) TemplateCommentStyle(t TemplateConfig) string {
	if t.CommentStyle != "" {
		return t.CommentStyle
	}
	return c.CommentStyle
}

// Resolve returns p relative to the config directory, or p itself if absolute.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.Dir == "" {
		return p
	}
	return filepath.Join(c.Dir, p)
}

// RootDir returns the directory file patterns expand against.
func (c *Config) RootDir() string {
	if c.Root == "" {
		if c.Dir == "" {
			return "."
		}
		return c.Dir
	}
	return c.Resolve(c.Root)
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Files without a known extension are read as YAML.
	format, err := yamlutil.FormatFromPath(configPath)
	if err != nil {
		format = yamlutil.FormatYAML
	}

	var cfg Config
	if err := yamlutil.UnmarshalFormat(data, &cfg, format); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if abs, err := filepath.Abs(filepath.Dir(configPath)); err == nil {
		cfg.Dir = abs
	} else {
		cfg.Dir = filepath.Dir(configPath)
	}

	return &cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml, .json, .jsonc
// Tries locations in order: current directory, user config dir/go-captainhook/
func resolveConfigPath(name string) (string, error) {
	triedPaths := make([]string, 0, len(configExtensions)*2)

	for _, ext := range configExtensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range configExtensions {
			userPath := filepath.Join(userConfigDir, configDirName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
