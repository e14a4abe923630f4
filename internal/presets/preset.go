package presets

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alnah/go-captainhook/internal/fileutil"
	"github.com/alnah/go-captainhook/internal/yamlutil"
)

// Preset is a named set of injection settings.
type Preset struct {
	Name               string            `yaml:"-"`
	Description        string            `yaml:"description"`
	Type               string            `yaml:"type"`
	CommentStyle       string            `yaml:"commentStyle"`
	InjectionTemplates map[string]string `yaml:"injectionTemplates"`
}

// Loader defines the contract for loading presets.
type Loader interface {
	// Load returns the preset called name.
	// Returns ErrPresetNotFound if it does not exist and ErrInvalidPresetName
	// if the name contains invalid characters.
	Load(name string) (*Preset, error)

	// List returns the available preset names, sorted.
	List() ([]string, error)
}

// ValidateName checks that a preset name is safe for use as a filename.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidPresetName)
	}
	if strings.ContainsAny(name, "/\\.\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidPresetName, name)
	}
	return nil
}

// Extensions returns the preset's template extensions, sorted.
func (p *Preset) Extensions() []string {
	exts := make([]string, 0, len(p.InjectionTemplates))
	for ext := range p.InjectionTemplates {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// parsePreset decodes and validates a preset document.
func parsePreset(name string, data []byte) (*Preset, error) {
	var p Preset
	if err := yamlutil.UnmarshalStrict(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrPresetRead, name, err)
	}
	p.Name = name
	if err := p.validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *Preset) validate() error {
	if len(p.InjectionTemplates) == 0 {
		return fmt.Errorf("%w: %q has no injectionTemplates", ErrInvalidPreset, p.Name)
	}
	for _, ext := range p.Extensions() {
		if err := fileutil.ValidateExtension(ext); err != nil {
			return fmt.Errorf("%w: %q: %v", ErrInvalidPreset, p.Name, err)
		}
		if strings.TrimSpace(p.InjectionTemplates[ext]) == "" {
			return fmt.Errorf("%w: %q: empty template for %q", ErrInvalidPreset, p.Name, ext)
		}
	}
	return nil
}
