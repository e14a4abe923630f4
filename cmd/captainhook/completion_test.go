package main

// Notes:
// - GenerateCompletion: we check each script for its shell's entry points
//   and for every command. Scripts are not executed by a shell.
// - getCommands: flags come from the same FlagSets the commands parse with.

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestGenerateCompletion_SupportedShells(t *testing.T) {
	t.Parallel()

	tests := []struct {
		shell        Shell
		wantContains []string
	}{
		{
			shell: ShellBash,
			wantContains: []string{
				"_captainhook_completions",
				"complete -F _captainhook_completions captainhook",
				"compgen",
				"--block",
				"auto always never",
				"'!*.@(yaml|yml|json|jsonc)'",
			},
		},
		{
			shell: ShellZsh,
			wantContains: []string{
				"#compdef captainhook",
				"_arguments",
				"_describe",
				"'*'{-b,--block}",
				"_directories",
				"compdef _captainhook captainhook",
			},
		},
		{
			shell: ShellFish,
			wantContains: []string{
				"complete -c captainhook",
				"__fish_captainhook_needs_command",
				"__fish_captainhook_using_command",
				"-s b -l block",
				"-l color",
			},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.shell), func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tt.shell); err != nil {
				t.Fatalf("GenerateCompletion() error = %v", err)
			}
			out := buf.String()

			for _, want := range tt.wantContains {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q", want)
				}
			}
			for _, cmd := range getCommands() {
				if !strings.Contains(out, cmd.Name) {
					t.Errorf("output missing command %q", cmd.Name)
				}
			}
		})
	}
}

func TestGenerateCompletion_UnsupportedShell(t *testing.T) {
	t.Parallel()

	err := GenerateCompletion(&bytes.Buffer{}, "powershell")
	if !errors.Is(err, ErrUnsupportedShell) {
		t.Fatalf("error = %v, want ErrUnsupportedShell", err)
	}
	if !strings.Contains(err.Error(), "powershell") {
		t.Errorf("error should name the shell, got %q", err.Error())
	}
}

func TestGetCommands_InjectFlags(t *testing.T) {
	t.Parallel()

	var inject *commandDef
	for _, c := range getCommands() {
		if c.Name == "inject" {
			inject = &c
		}
	}
	if inject == nil {
		t.Fatal("inject command missing")
	}

	byName := make(map[string]flagDef, len(inject.Flags))
	for _, f := range inject.Flags {
		byName[f.Long] = f
	}

	tests := []struct {
		name      string
		wantShort string
		wantType  flagType
	}{
		{"block", "b", flagString},
		{"print", "n", flagBool},
		{"workers", "w", flagInt},
		{"color", "", flagEnum},
		{"type", "t", flagEnum},
		{"preset", "p", flagEnum},
		{"config", "c", flagFile},
		{"root", "", flagDir},
		{"preset-path", "", flagDir},
	}

	for _, tt := range tests {
		f, ok := byName[tt.name]
		if !ok {
			t.Errorf("flag --%s missing", tt.name)
			continue
		}
		if f.Short != tt.wantShort {
			t.Errorf("--%s short = %q, want %q", tt.name, f.Short, tt.wantShort)
		}
		if f.Type != tt.wantType {
			t.Errorf("--%s type = %v, want %v", tt.name, f.Type, tt.wantType)
		}
	}

	if got := byName["preset"].Values; len(got) == 0 || got[0] != "html" {
		t.Errorf("--preset values = %v, want embedded preset names", got)
	}
}

func TestRunCompletion(t *testing.T) {
	t.Parallel()

	env, stdout, _ := newTestEnv()
	if err := runCompletion(nil, env); err != nil {
		t.Fatalf("runCompletion() error = %v", err)
	}
	if !strings.Contains(stdout.String(), "Usage: captainhook completion") {
		t.Errorf("stdout = %q", stdout.String())
	}

	env, stdout, _ = newTestEnv()
	if err := runCompletion([]string{"fish"}, env); err != nil {
		t.Fatalf("runCompletion(fish) error = %v", err)
	}
	if !strings.Contains(stdout.String(), "complete -c captainhook") {
		t.Error("fish script not written")
	}
}
