// Package yamlutil decodes configuration documents written in YAML or in
// JSON with comments. Both formats are decoded by the same YAML library so
// struct tags are shared.
package yamlutil

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/tidwall/jsonc"
)

// MaxInputSize limits document size to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData           = errors.New("yamlutil: nil or empty data")
	ErrNilDestination    = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge     = errors.New("yamlutil: input exceeds maximum size")
	ErrUnsupportedFormat = errors.New("yamlutil: unsupported document format")
)

// Format identifies a document syntax.
type Format string

const (
	FormatYAML  Format = "yaml"
	FormatJSONC Format = "jsonc"
)

// FormatFromPath picks the format from a file extension.
// .yaml and .yml are YAML; .json and .jsonc are JSON with comments.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json", ".jsonc":
		return FormatJSONC, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

func Unmarshal(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// UnmarshalStrict rejects unknown fields in the input.
func UnmarshalStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// NormalizeJSONC strips comments and trailing commas, leaving plain JSON.
func NormalizeJSONC(data []byte) []byte {
	return jsonc.ToJSON(data)
}

// UnmarshalFormat decodes data written in format, rejecting unknown fields.
func UnmarshalFormat(data []byte, v any, format Format) error {
	switch format {
	case FormatYAML:
		return UnmarshalStrict(data, v)
	case FormatJSONC:
		if err := validateInput(data, v); err != nil {
			return err
		}
		return UnmarshalStrict(NormalizeJSONC(data), v)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func Marshal(v any) ([]byte, error) {
	result, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return result, nil
}
