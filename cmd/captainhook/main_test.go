package main

// Notes:
// - runMain: we test dispatch and exit codes. Template rewriting is covered
//   in inject_test.go.
// - hasVerboseFlag: we test detection before and after "--".

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRunMain - Command dispatch
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		args         []string
		wantCode     int
		wantInStdout []string
		wantInStderr []string
	}{
		{
			name:         "no args prints usage",
			args:         []string{"captainhook"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"Usage: captainhook"},
		},
		{
			name:         "version",
			args:         []string{"captainhook", "version"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"captainhook dev"},
		},
		{
			name:         "help",
			args:         []string{"captainhook", "help"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: captainhook", "Commands:", "inject"},
		},
		{
			name:         "help inject",
			args:         []string{"captainhook", "help", "inject"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: captainhook inject", "--block"},
		},
		{
			name:         "inject --help",
			args:         []string{"captainhook", "inject", "--help"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: captainhook inject"},
		},
		{
			name:         "unknown command",
			args:         []string{"captainhook", "bogus"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unknown command: bogus"},
		},
		{
			name:         "unknown flag",
			args:         []string{"captainhook", "inject", "--bogus"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unknown flag: --bogus"},
		},
		{
			name:         "markers html",
			args:         []string{"captainhook", "markers", "js"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"<!-- begin:js -->\n<!-- end:js -->\n"},
		},
		{
			name:         "markers scss",
			args:         []string{"captainhook", "markers", "--type", "scss", "partials"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"// begin:partials\n// end:partials\n"},
		},
		{
			name:         "markers custom comment style",
			args:         []string{"captainhook", "markers", "-t", "twig", "--comment-style", "{# {marker}:{type} #}", "js"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"{# begin:js #}"},
		},
		{
			name:         "markers from preset",
			args:         []string{"captainhook", "markers", "--preset", "less", "styles"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"// begin:styles"},
		},
		{
			name:         "markers without id",
			args:         []string{"captainhook", "markers"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"at least one block id"},
		},
		{
			name:         "markers unknown type",
			args:         []string{"captainhook", "markers", "--type", "twig", "js"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unknown template type"},
		},
		{
			name:         "unknown preset lists available",
			args:         []string{"captainhook", "markers", "--preset", "nope", "js"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"preset not found", "hint: available:", "html-module"},
		},
		{
			name:         "presets",
			args:         []string{"captainhook", "presets"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"html-module", "less", "scss"},
		},
		{
			name:         "completion without shell prints usage",
			args:         []string{"captainhook", "completion"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: captainhook completion"},
		},
		{
			name:         "completion unsupported shell",
			args:         []string{"captainhook", "completion", "tcsh"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unsupported shell"},
		},
		{
			name:         "inject without templates or config",
			args:         []string{"captainhook", "inject"},
			wantCode:     ExitIO,
			wantInStderr: []string{"no templates specified"},
		},
		{
			name:         "inject block without template",
			args:         []string{"captainhook", "inject", "-b", "js=a.js"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"--block needs at least one template"},
		},
		{
			name:         "inject missing template",
			args:         []string{"captainhook", "inject", "does-not-exist.html", "-b", "js=a.js"},
			wantCode:     ExitIO,
			wantInStderr: []string{"FAILED does-not-exist.html", "failed to read template"},
		},
		{
			name:         "inject template not in config",
			args:         []string{"captainhook", "inject", "index.html"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"no blocks configured for template"},
		},
		{
			name:         "inject invalid color",
			args:         []string{"captainhook", "inject", "--color", "rainbow"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"--color"},
		},
		{
			name:         "inject negative workers",
			args:         []string{"captainhook", "inject", "-w", "-1"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"invalid worker count"},
		},
		{
			name:         "inject bad tag",
			args:         []string{"captainhook", "inject", "x.html", "-b", "js=a.js", "--tag", "png"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"want ext=pattern"},
		},
		{
			name:         "missing config file",
			args:         []string{"captainhook", "inject", "-c", "./nope/captainhook.yaml"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"config file not found"},
		},
		{
			name:         "check without templates",
			args:         []string{"captainhook", "check"},
			wantCode:     ExitIO,
			wantInStderr: []string{"no templates specified"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := newTestEnv()
			code := runMain(tt.args, env)

			if code != tt.wantCode {
				t.Errorf("runMain(%v) = %d, want %d\nstderr: %s", tt.args, code, tt.wantCode, stderr.String())
			}
			for _, want := range tt.wantInStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout should contain %q, got %q", want, stdout.String())
				}
			}
			for _, want := range tt.wantInStderr {
				if !strings.Contains(stderr.String(), want) {
					t.Errorf("stderr should contain %q, got %q", want, stderr.String())
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestHasVerboseFlag - Pre-parse verbose detection
// ---------------------------------------------------------------------------

func TestHasVerboseFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"inject", "-v"}, true},
		{[]string{"inject", "--verbose", "x.html"}, true},
		{[]string{"inject", "x.html"}, false},
		{[]string{"inject", "--", "-v"}, false},
		{nil, false},
	}

	for _, tt := range tests {
		if got := hasVerboseFlag(tt.args); got != tt.want {
			t.Errorf("hasVerboseFlag(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}
