// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/captainhook.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "/go-captainhook/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForUnknownExtension returns hints for files without an injection template.
func ForUnknownExtension(ext string, known []string) string {
	if ext == "" {
		return format("file has no extension; use --tag-template or a per-block template")
	}
	hint := fmt.Sprintf("add --tag %s='<pattern with {file}>' or injectionTemplates.%s in the config", ext, ext)
	if len(known) > 0 {
		hint += "; known: " + strings.Join(known, ", ")
	}
	return format(hint)
}

// ForUnknownTemplateType returns hints for template types without a built-in
// comment style.
func ForUnknownTemplateType(known []string) string {
	hint := "use --comment-style '<marker pattern with {marker} and {type}>' for custom types"
	if len(known) > 0 {
		hint += "; built-in: " + strings.Join(known, ", ")
	}
	return format(hint)
}

// ForInvalidCommentStyle returns a hint showing a valid comment style.
func ForInvalidCommentStyle() string {
	return format("a comment style needs both placeholders, e.g. '<!-- {marker}:{type} -->'")
}

// ForMalformedBlock returns a hint about the expected marker pair.
func ForMalformedBlock(begin, end string) string {
	return format(fmt.Sprintf("every %s needs a matching %s after it", begin, end))
}

// ForBlockNotFound returns hints listing the blocks present in a template.
func ForBlockNotFound(available []string) string {
	if len(available) == 0 {
		return format("template has no blocks; run 'captainhook markers <id>' to get markers to paste")
	}
	return format("blocks in template: " + strings.Join(available, ", "))
}

// ForPresetNotFound returns hints for preset not found errors.
func ForPresetNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForWriteFailure returns hints for template write-back errors.
func ForWriteFailure() string {
	return format("the directory must be writable; use --print to write to stdout")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
