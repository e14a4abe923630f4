package yamlutil_test

// Notes:
// - Marshal error branch: not tested because yaml.Marshal only fails with
//   unmarshalable types (channels, functions).
// - TestInputSizeLimit mutates MaxInputSize and therefore does not run in
//   parallel.

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-captainhook/internal/yamlutil"
)

type testBlock struct {
	ID    string   `yaml:"id"`
	Files []string `yaml:"files"`
}

type testTemplate struct {
	Path   string      `yaml:"path"`
	Type   string      `yaml:"type"`
	Blocks []testBlock `yaml:"blocks"`
}

// ---------------------------------------------------------------------------
// TestUnmarshal - Lenient YAML decoding
// ---------------------------------------------------------------------------

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		want    *testTemplate
		wantErr error
	}{
		{
			name: "template with blocks",
			data: []byte("path: index.html\ntype: html\nblocks:\n  - id: js\n    files: [a.js, b.js]\n"),
			dest: &testTemplate{},
			want: &testTemplate{
				Path:   "index.html",
				Type:   "html",
				Blocks: []testBlock{{ID: "js", Files: []string{"a.js", "b.js"}}},
			},
		},
		{
			name: "unknown fields are ignored",
			data: []byte("path: a.scss\nextra: true"),
			dest: &testTemplate{},
			want: &testTemplate{Path: "a.scss"},
		},
		{
			name:    "nil data",
			data:    nil,
			dest:    &testTemplate{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "empty data",
			data:    []byte{},
			dest:    &testTemplate{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "nil destination",
			data:    []byte("path: x"),
			dest:    nil,
			wantErr: yamlutil.ErrNilDestination,
		},
		{
			name:    "invalid YAML syntax",
			data:    []byte("blocks: [unclosed"),
			dest:    &testTemplate{},
			wantErr: errors.New("yamlutil:"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.Unmarshal(tt.data, tt.dest)
			checkErr(t, err, tt.wantErr)
			if tt.want != nil {
				if diff := cmp.Diff(tt.want, tt.dest); diff != "" {
					t.Errorf("Unmarshal() mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestUnmarshalFormat - Strict decoding of YAML and JSONC
// ---------------------------------------------------------------------------

func TestUnmarshalFormat(t *testing.T) {
	t.Parallel()

	want := &testTemplate{
		Path:   "app.scss",
		Type:   "scss",
		Blocks: []testBlock{{ID: "scss", Files: []string{"_a.scss"}}},
	}

	tests := []struct {
		name    string
		data    string
		format  yamlutil.Format
		want    *testTemplate
		wantErr error
	}{
		{
			name:   "yaml",
			data:   "path: app.scss\ntype: scss\nblocks:\n  - id: scss\n    files: [_a.scss]\n",
			format: yamlutil.FormatYAML,
			want:   want,
		},
		{
			name: "jsonc with comments and trailing commas",
			data: `{
  // stylesheet entry point
  "path": "app.scss",
  "type": "scss", /* partials below */
  "blocks": [{"id": "scss", "files": ["_a.scss",],},],
}`,
			format: yamlutil.FormatJSONC,
			want:   want,
		},
		{
			name:    "yaml unknown field",
			data:    "path: a\ntypo: b",
			format:  yamlutil.FormatYAML,
			wantErr: errors.New("yamlutil:"),
		},
		{
			name:    "jsonc unknown field",
			data:    `{"path": "a", "typo": "b"}`,
			format:  yamlutil.FormatJSONC,
			wantErr: errors.New("yamlutil:"),
		},
		{
			name:    "jsonc empty",
			data:    "",
			format:  yamlutil.FormatJSONC,
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "unsupported format",
			data:    "path = 'a'",
			format:  yamlutil.Format("toml"),
			wantErr: yamlutil.ErrUnsupportedFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got testTemplate
			err := yamlutil.UnmarshalFormat([]byte(tt.data), &got, tt.format)
			checkErr(t, err, tt.wantErr)
			if tt.want != nil {
				if diff := cmp.Diff(tt.want, &got); diff != "" {
					t.Errorf("UnmarshalFormat() mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestNormalizeJSONC(t *testing.T) {
	t.Parallel()

	got := string(yamlutil.NormalizeJSONC([]byte(`{"a": 1, // one
"b": [2,],}`)))
	if strings.Contains(got, "//") || strings.Contains(got, ",]") || strings.Contains(got, ",}") {
		t.Errorf("NormalizeJSONC() = %q, want comments and trailing commas removed", got)
	}
}

// ---------------------------------------------------------------------------
// TestFormatFromPath - Format detection by extension
// ---------------------------------------------------------------------------

func TestFormatFromPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		want    yamlutil.Format
		wantErr error
	}{
		{"captainhook.yaml", yamlutil.FormatYAML, nil},
		{"dir/captainhook.YML", yamlutil.FormatYAML, nil},
		{"captainhook.json", yamlutil.FormatJSONC, nil},
		{"captainhook.jsonc", yamlutil.FormatJSONC, nil},
		{"captainhook.toml", "", yamlutil.ErrUnsupportedFormat},
		{"captainhook", "", yamlutil.ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			got, err := yamlutil.FormatFromPath(tt.path)
			checkErr(t, err, tt.wantErr)
			if got != tt.want {
				t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestMarshal - Serializes Go structs to YAML
// ---------------------------------------------------------------------------

func TestMarshal(t *testing.T) {
	t.Parallel()

	data, err := yamlutil.Marshal(&testTemplate{Path: "index.html", Type: "html"})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	s := string(data)
	for _, want := range []string{"path: index.html", "type: html"} {
		if !strings.Contains(s, want) {
			t.Errorf("output missing %q, got: %s", want, s)
		}
	}

	var decoded testTemplate
	if err := yamlutil.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if decoded.Path != "index.html" {
		t.Errorf("decoded Path = %q, want %q", decoded.Path, "index.html")
	}
}

// ---------------------------------------------------------------------------
// TestInputSizeLimit - Verifies MaxInputSize enforcement
// ---------------------------------------------------------------------------

func TestInputSizeLimit(t *testing.T) {
	originalMax := yamlutil.MaxInputSize
	t.Cleanup(func() { yamlutil.MaxInputSize = originalMax })

	pad := func(s string, n int) []byte {
		return append([]byte(s), bytes.Repeat([]byte(" "), n-len(s))...)
	}

	t.Run("input at limit succeeds", func(t *testing.T) {
		yamlutil.MaxInputSize = 100
		var cfg testTemplate
		if err := yamlutil.Unmarshal(pad("path: x", 100), &cfg); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("input exceeding limit fails", func(t *testing.T) {
		yamlutil.MaxInputSize = 100
		var cfg testTemplate
		err := yamlutil.UnmarshalStrict(pad("path: x", 101), &cfg)
		if !errors.Is(err, yamlutil.ErrInputTooLarge) {
			t.Errorf("errors.Is(err, ErrInputTooLarge) = false, got: %v", err)
		}
	})

	t.Run("JSONC is checked before normalization", func(t *testing.T) {
		yamlutil.MaxInputSize = 20
		var cfg testTemplate
		err := yamlutil.UnmarshalFormat(pad(`{"path": "x"}`, 40), &cfg, yamlutil.FormatJSONC)
		if !errors.Is(err, yamlutil.ErrInputTooLarge) {
			t.Errorf("errors.Is(err, ErrInputTooLarge) = false, got: %v", err)
		}
		if err != nil && !strings.Contains(err.Error(), "40 bytes") {
			t.Errorf("error should contain actual size, got: %s", err)
		}
	})
}

func checkErr(t *testing.T, err, wantErr error) {
	t.Helper()
	if wantErr == nil {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return
	}
	if err == nil {
		t.Fatalf("expected error containing %q, got nil", wantErr)
	}
	if errors.Is(err, wantErr) {
		return
	}
	if !strings.Contains(err.Error(), wantErr.Error()) {
		t.Fatalf("error = %q, want containing %q", err, wantErr)
	}
}
