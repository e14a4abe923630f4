package presets

import "errors"

// Sentinel errors for preset operations.
var (
	// ErrPresetNotFound indicates the requested preset does not exist.
	ErrPresetNotFound = errors.New("preset not found")

	// ErrInvalidPresetName indicates the name contains path separators, dots,
	// or is empty.
	ErrInvalidPresetName = errors.New("invalid preset name")

	// ErrInvalidPreset indicates the preset file parsed but its content is unusable.
	ErrInvalidPreset = errors.New("invalid preset")

	// ErrInvalidBasePath indicates the configured base path is not a valid directory.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrPresetRead indicates an I/O or parse error while reading a preset file.
	ErrPresetRead = errors.New("failed to read preset")

	// ErrPathTraversal indicates an attempt to access files outside the base path.
	ErrPathTraversal = errors.New("path traversal detected")
)
