package presets

import (
	"errors"
	"sort"
)

// Resolver combines custom and embedded loaders.
// Custom presets shadow embedded presets of the same name.
type Resolver struct {
	custom   Loader // nil if no custom path configured
	embedded Loader
}

// NewResolver creates a Resolver.
// If customBasePath is empty, only embedded presets are used.
// Returns error if customBasePath is set but invalid.
func NewResolver(customBasePath string) (*Resolver, error) {
	r := &Resolver{embedded: NewEmbeddedLoader()}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.custom = fsLoader
	}

	return r, nil
}

// Load loads a preset, trying the custom loader first if available.
func (r *Resolver) Load(name string) (*Preset, error) {
	if r.custom == nil {
		return r.embedded.Load(name)
	}

	p, err := r.custom.Load(name)
	if err == nil {
		return p, nil
	}

	// Only fall back for "not found", not validation or I/O errors.
	if !errors.Is(err, ErrPresetNotFound) {
		return nil, err
	}

	return r.embedded.Load(name)
}

// List returns the union of custom and embedded preset names, sorted.
func (r *Resolver) List() ([]string, error) {
	names, err := r.embedded.List()
	if err != nil {
		return nil, err
	}
	if r.custom == nil {
		return names, nil
	}

	custom, err := r.custom.List()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(names)+len(custom))
	merged := make([]string, 0, len(names)+len(custom))
	for _, n := range append(names, custom...) {
		if !seen[n] {
			seen[n] = true
			merged = append(merged, n)
		}
	}
	sort.Strings(merged)
	return merged, nil
}

// HasCustomLoader returns true if a custom preset directory is configured.
func (r *Resolver) HasCustomLoader() bool {
	return r.custom != nil
}

// Compile-time interface check.
var _ Loader = (*Resolver)(nil)
