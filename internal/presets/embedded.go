package presets

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed builtin/*.yaml
var builtin embed.FS

// EmbeddedLoader loads presets compiled into the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// Load loads an embedded preset by name.
func (e *EmbeddedLoader) Load(name string) (*Preset, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	data, err := builtin.ReadFile("builtin/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrPresetNotFound, name)
	}

	return parsePreset(name, data)
}

// List returns the embedded preset names.
func (e *EmbeddedLoader) List() ([]string, error) {
	entries, err := fs.ReadDir(builtin, "builtin")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPresetRead, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names, nil
}

// Compile-time interface check.
var _ Loader = (*EmbeddedLoader)(nil)
