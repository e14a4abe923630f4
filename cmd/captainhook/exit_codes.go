package main

import (
	"errors"
	"os"

	captainhook "github.com/alnah/go-captainhook"
	"github.com/alnah/go-captainhook/internal/config"
	"github.com/alnah/go-captainhook/internal/presets"
)

// Exit codes for the captainhook CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess  = 0 // All templates processed
	ExitGeneral  = 1 // General/unexpected error
	ExitUsage    = 2 // Invalid flags, config, preset, or template type
	ExitIO       = 3 // Template not found, not readable, or not writable
	ExitTemplate = 4 // Malformed block, missing block, or unknown file extension
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Template/block errors (exit 4)
	if errors.Is(err, captainhook.ErrMalformedBlock) ||
		errors.Is(err, captainhook.ErrBlockNotFound) ||
		errors.Is(err, captainhook.ErrUnknownExtension) {
		return ExitTemplate
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadTemplate) ||
		errors.Is(err, ErrWriteTemplate) ||
		errors.Is(err, ErrNoTemplates) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidWorkers) ||
		errors.Is(err, ErrNoBlocks) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, captainhook.ErrUnknownTemplateType) ||
		errors.Is(err, captainhook.ErrInvalidCommentStyle) ||
		errors.Is(err, captainhook.ErrEmptyBlockID) ||
		errors.Is(err, presets.ErrPresetNotFound) ||
		errors.Is(err, presets.ErrInvalidPresetName) ||
		errors.Is(err, presets.ErrInvalidPreset) ||
		errors.Is(err, presets.ErrInvalidBasePath) ||
		errors.Is(err, presets.ErrPresetRead) {
		return ExitUsage
	}

	return ExitGeneral
}
