package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// newTestEnv returns an environment writing to buffers with no CAPTAINHOOK_*
// variables and no terminal.
func newTestEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Now:        time.Now,
		Stdout:     &stdout,
		Stderr:     &stderr,
		IsTerminal: func(io.Writer) bool { return false },
		Getenv:     func(string) string { return "" },
	}
	return env, &stdout, &stderr
}

// writeFile creates dir/name with content, creating parent directories.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

// readFile returns the content of path.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	return string(data)
}

const pageTemplate = `<html>
<head>
    <!-- begin:css -->
    <!-- end:css -->
</head>
<body>
    <!-- begin:js -->
    <script src="old.js"></script>
    <!-- end:js -->
</body>
</html>
`

const pageInjected = `<html>
<head>
    <!-- begin:css -->
    <link rel="stylesheet" type="text/css" href="app.css">
    <!-- end:css -->
</head>
<body>
    <!-- begin:js -->
    <script src="js/a.js"></script>
    <script src="js/b.js"></script>
    <!-- end:js -->
</body>
</html>
`

// newSite creates a temp dir with index.html and two scripts under js/.
func newSite(t *testing.T) (dir, page string) {
	t.Helper()
	dir = t.TempDir()
	page = writeFile(t, dir, "index.html", pageTemplate)
	writeFile(t, dir, "js/a.js", "")
	writeFile(t, dir, "js/b.js", "")
	return dir, page
}
