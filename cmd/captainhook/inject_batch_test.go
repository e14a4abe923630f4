package main

// Notes:
// - injectBatch: we test ordering, cancellation, and concurrency bounds
//   with real temp files. Worker scheduling is not asserted.
// - printResultsWithWriter: quiet, verbose, and summary output.

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-captainhook/internal/config"
)

// newTestParams returns batch params rooted at dir with a discarding logger.
func newTestParams(dir string, print bool) *injectParams {
	return &injectParams{
		settings: &settings{cfg: config.DefaultConfig(), root: dir},
		print:    print,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestInjectBatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	blocks := []config.BlockConfig{{ID: "js", Files: []string{"app.js"}}}

	var jobs []injectJob
	for _, name := range []string{"a.html", "b.html", "c.html", "d.html", "e.html"} {
		path := writeFile(t, dir, name, "<!-- begin:js -->\n<!-- end:js -->\n")
		jobs = append(jobs, injectJob{Path: path, Template: config.TemplateConfig{Path: path, Blocks: blocks}})
	}

	results := injectBatch(context.Background(), 2, jobs, newTestParams(dir, false))

	if len(results) != len(jobs) {
		t.Fatalf("got %d results, want %d", len(results), len(jobs))
	}
	for i, r := range results {
		if r.Path != jobs[i].Path {
			t.Errorf("results[%d].Path = %q, want %q", i, r.Path, jobs[i].Path)
		}
		if r.Err != nil || !r.Changed || r.Blocks != 1 {
			t.Errorf("results[%d] = %+v", i, r)
		}
		if !strings.Contains(readFile(t, r.Path), `<script src="app.js"></script>`) {
			t.Errorf("%s was not written", filepath.Base(r.Path))
		}
	}
}

func TestInjectBatch_Empty(t *testing.T) {
	t.Parallel()

	if got := injectBatch(context.Background(), 4, nil, newTestParams(t.TempDir(), false)); got != nil {
		t.Errorf("injectBatch(nil) = %v, want nil", got)
	}
}

func TestInjectBatch_Canceled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "a.html", "<!-- begin:js -->\n<!-- end:js -->\n")
	jobs := []injectJob{{Path: path, Template: config.TemplateConfig{Blocks: []config.BlockConfig{{ID: "js", Files: []string{"a.js"}}}}}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := injectBatch(ctx, 1, jobs, newTestParams(dir, false))
	if !errors.Is(results[0].Err, context.Canceled) {
		t.Errorf("Err = %v, want context.Canceled", results[0].Err)
	}
	if readFile(t, path) != "<!-- begin:js -->\n<!-- end:js -->\n" {
		t.Error("canceled job must not write")
	}
}

func TestInjectTemplate_PrintDoesNotWrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	original := "<!-- begin:css -->\n<!-- end:css -->\n"
	path := writeFile(t, dir, "a.html", original)
	job := injectJob{Path: path, Template: config.TemplateConfig{Blocks: []config.BlockConfig{{ID: "css", Files: []string{"a.css"}}}}}

	r := injectTemplate(context.Background(), job, newTestParams(dir, true))
	if r.Err != nil {
		t.Fatalf("Err = %v", r.Err)
	}
	if !r.Changed || !strings.Contains(r.Output, `href="a.css"`) {
		t.Errorf("result = %+v", r)
	}
	if readFile(t, path) != original {
		t.Error("print mode wrote the template")
	}
}

func TestInjectTemplate_Missing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "a.html", "<!-- begin:js -->\n<!-- end:js -->\n")
	job := injectJob{Path: path, Template: config.TemplateConfig{Blocks: []config.BlockConfig{
		{ID: "css", Files: []string{"a.css"}},
		{ID: "js", Files: []string{"a.js"}},
	}}}

	r := injectTemplate(context.Background(), job, newTestParams(dir, true))
	if r.Err != nil {
		t.Fatalf("Err = %v", r.Err)
	}
	if len(r.Missing) != 1 || r.Missing[0] != "css" {
		t.Errorf("Missing = %v, want [css]", r.Missing)
	}
	if r.Blocks != 1 {
		t.Errorf("Blocks = %d, want 1", r.Blocks)
	}
}

// ---------------------------------------------------------------------------
// TestPrintResultsWithWriter - Result reporting
// ---------------------------------------------------------------------------

func TestPrintResultsWithWriter(t *testing.T) {
	t.Parallel()

	results := []injectResult{
		{Path: "a.html", Type: "html", Changed: true, Blocks: 2, Duration: 3 * time.Millisecond},
		{Path: "b.html", Type: "html"},
		{Path: "c.html", Err: errors.New("boom")},
	}

	tests := []struct {
		name       string
		quiet      bool
		verbose    bool
		wantStdout []string
		notStdout  []string
	}{
		{
			name:       "default",
			wantStdout: []string{"Updated a.html\n", "Unchanged b.html\n", "1 updated, 1 unchanged, 1 failed"},
		},
		{
			name:       "verbose",
			verbose:    true,
			wantStdout: []string{"Updated a.html (html, 2 block(s), 3ms)"},
		},
		{
			name:      "quiet",
			quiet:     true,
			notStdout: []string{"Updated", "failed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := newTestEnv()
			failed := printResultsWithWriter(results, tt.quiet, tt.verbose, env)

			if failed != 1 {
				t.Errorf("failed = %d, want 1", failed)
			}
			if !strings.Contains(stderr.String(), "FAILED c.html: boom") {
				t.Errorf("stderr = %q", stderr.String())
			}
			for _, want := range tt.wantStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout should contain %q, got %q", want, stdout.String())
				}
			}
			for _, bad := range tt.notStdout {
				if strings.Contains(stdout.String(), bad) {
					t.Errorf("stdout should not contain %q, got %q", bad, stdout.String())
				}
			}
		})
	}
}

func TestCountResults(t *testing.T) {
	t.Parallel()

	got := countResults([]injectResult{
		{Changed: true}, {Changed: true}, {}, {Err: errors.New("x"), Changed: true},
	})
	want := ResultSummary{Updated: 2, Unchanged: 1, Failed: 1}
	if got != want {
		t.Errorf("countResults() = %+v, want %+v", got, want)
	}
}
