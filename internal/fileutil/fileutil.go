// Package fileutil provides file and path utility functions.
package fileutil

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
)

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty   = errors.New("extension cannot be empty")
	ErrExtensionInvalid = errors.New("extension contains separator, dot, whitespace, or null byte")
)

// Ext returns the extension of file without the leading dot.
// URLs are reduced to their path so query strings and fragments are ignored.
// A dotfile such as ".env" has no extension.
//
// Examples:
//   - "site.js" -> "js"
//   - "vendor/lib.min.css" -> "css"
//   - "https://cdn.example.com/a.js?v=2" -> "js"
//   - ".env" -> ""
//   - "Makefile" -> ""
func Ext(file string) string {
	p := file
	if IsURL(file) || strings.HasPrefix(file, "//") {
		if u, err := url.Parse(file); err == nil {
			p = u.Path
		}
	} else {
		p = filepath.ToSlash(file)
	}

	base := path.Base(p)
	idx := strings.LastIndexByte(base, '.')
	if idx <= 0 {
		return ""
	}
	return base[idx+1:]
}

// ValidateExtension checks that an extension is usable as an injection template key.
func ValidateExtension(extension string) error {
	if extension == "" {
		return ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\.\x00 \t\r\n") {
		return fmt.Errorf("%w: %q", ErrExtensionInvalid, extension)
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "html-module" -> false (name)
//   - "./captainhook.yaml" -> true (relative path)
//   - "/absolute/path.yaml" -> true (absolute)
//   - "C:\configs\hook.yaml" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// IsURL returns true if the string looks like a URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// WriteFileAtomic replaces the file at path with content.
// Readers never observe a partially written template: the content goes to a
// temp file in the same directory which is then renamed over the target.
func WriteFileAtomic(path, content string) error {
	if err := atomic.WriteFile(path, bytes.NewReader([]byte(content))); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
