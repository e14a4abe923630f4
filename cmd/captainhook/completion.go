package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-captainhook/internal/presets"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --block
	Short    string   // -b (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags
}

// commandDef describes a command for completion.
type commandDef struct {
	Name       string
	Desc       string
	Flags      []flagDef
	TakesFiles bool     // accepts template file arguments
	Args       []string // fixed words accepted as arguments
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	// Enum flags
	"color":  {Values: []string{colorAuto, colorAlways, colorNever}},
	"type":   {Values: knownTypeNames()},
	"preset": {Values: embeddedPresetNames()},

	// File flags with glob patterns
	"config": {FileGlob: "*.yaml,*.yml,*.json,*.jsonc"},

	// Directory flags
	"root":        {IsDir: true},
	"preset-path": {IsDir: true},
}

// embeddedPresetNames lists the built-in presets, or nil if they cannot be read.
func embeddedPresetNames() []string {
	names, err := presets.List()
	if err != nil {
		return nil
	}
	return names
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type = flagEnum
				fd.Values = meta.Values
			case meta.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the actual FlagSets.
func getCommands() []commandDef {
	var presetPath string
	return []commandDef{
		{
			Name:       "inject",
			Desc:       "Rewrite marked blocks in templates",
			Flags:      extractFlagsFromFlagSet(newInjectFlagSet(&injectFlags{})),
			TakesFiles: true,
		},
		{
			Name:       "blocks",
			Desc:       "List blocks and their entries",
			Flags:      extractFlagsFromFlagSet(newBlocksFlagSet(&blocksFlags{})),
			TakesFiles: true,
		},
		{
			Name:  "markers",
			Desc:  "Print the markers for block IDs",
			Flags: extractFlagsFromFlagSet(newMarkersFlagSet(&injectorFlags{})),
		},
		{
			Name:       "check",
			Desc:       "Verify configured blocks without writing",
			Flags:      extractFlagsFromFlagSet(newCheckFlagSet(&checkFlags{})),
			TakesFiles: true,
		},
		{
			Name:  "presets",
			Desc:  "List presets or show one",
			Flags: extractFlagsFromFlagSet(newPresetsFlagSet(&presetPath)),
			Args:  embeddedPresetNames(),
		},
		{
			Name: "completion",
			Desc: "Generate shell completion script",
			Args: []string{string(ShellBash), string(ShellZsh), string(ShellFish)},
		},
		{
			Name: "version",
			Desc: "Show version information",
		},
		{
			Name: "help",
			Desc: "Show help for a command",
			Args: []string{"inject", "blocks", "markers", "check", "presets", "completion", "version"},
		},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w)
	case ShellZsh:
		return generateZsh(w)
	case ShellFish:
		return generateFish(w)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// flagWords returns "-b --block ..." for a command's flags.
func flagWords(flags []flagDef) string {
	words := make([]string, 0, len(flags)*2)
	for _, f := range flags {
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
		words = append(words, "--"+f.Long)
	}
	return strings.Join(words, " ")
}

// globExtensions turns "*.yaml,*.yml" into ["yaml", "yml"].
func globExtensions(glob string) []string {
	var exts []string
	for _, g := range strings.Split(glob, ",") {
		if ext := strings.TrimPrefix(strings.TrimSpace(g), "*."); ext != "" {
			exts = append(exts, ext)
		}
	}
	return exts
}

// flagPattern returns "-b|--block" for a bash case arm.
func flagPattern(f flagDef) string {
	if f.Short != "" {
		return "-" + f.Short + "|--" + f.Long
	}
	return "--" + f.Long
}

// generateBash writes a bash completion script.
func generateBash(w io.Writer) error {
	var b strings.Builder
	cmds := getCommands()

	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}

	b.WriteString("# bash completion for captainhook\n")
	b.WriteString("# eval \"$(captainhook completion bash)\"\n\n")
	b.WriteString("_captainhook_completions() {\n")
	b.WriteString("    local cur prev\n")
	b.WriteString("    COMPREPLY=()\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n\n")
	fmt.Fprintf(&b, "    local commands=%q\n\n", strings.Join(names, " "))
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	b.WriteString("        COMPREPLY=( $(compgen -W \"${commands}\" -- \"${cur}\") )\n")
	b.WriteString("        return 0\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"${COMP_WORDS[1]}\" in\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "        %s)\n", c.Name)

		var arms []string
		for _, f := range c.Flags {
			switch f.Type {
			case flagEnum:
				arms = append(arms, fmt.Sprintf("                %s)\n                    COMPREPLY=( $(compgen -W %q -- \"${cur}\") )\n                    return 0\n                    ;;\n",
					flagPattern(f), strings.Join(f.Values, " ")))
			case flagFile:
				arms = append(arms, fmt.Sprintf("                %s)\n                    COMPREPLY=( $(compgen -f -X '!*.@(%s)' -- \"${cur}\") )\n                    return 0\n                    ;;\n",
					flagPattern(f), strings.Join(globExtensions(f.FileGlob), "|")))
			case flagDir:
				arms = append(arms, fmt.Sprintf("                %s)\n                    COMPREPLY=( $(compgen -d -- \"${cur}\") )\n                    return 0\n                    ;;\n",
					flagPattern(f)))
			case flagString, flagInt:
				arms = append(arms, fmt.Sprintf("                %s)\n                    return 0\n                    ;;\n", flagPattern(f)))
			}
		}
		if len(arms) > 0 {
			b.WriteString("            case \"${prev}\" in\n")
			for _, arm := range arms {
				b.WriteString(arm)
			}
			b.WriteString("            esac\n")
		}

		if len(c.Flags) > 0 {
			b.WriteString("            if [[ \"${cur}\" == -* ]]; then\n")
			fmt.Fprintf(&b, "                COMPREPLY=( $(compgen -W %q -- \"${cur}\") )\n", flagWords(c.Flags))
			b.WriteString("                return 0\n")
			b.WriteString("            fi\n")
		}
		switch {
		case c.TakesFiles:
			b.WriteString("            COMPREPLY=( $(compgen -f -- \"${cur}\") )\n")
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "            COMPREPLY=( $(compgen -W %q -- \"${cur}\") )\n", strings.Join(c.Args, " "))
		}
		b.WriteString("            ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("complete -F _captainhook_completions captainhook\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// zshEscape escapes text for use inside a single-quoted _arguments spec.
func zshEscape(s string) string {
	r := strings.NewReplacer("'", `'\''`, "[", `\[`, "]", `\]`, ":", `\:`)
	return r.Replace(s)
}

// zshFlagSpec returns the _arguments spec for one flag.
func zshFlagSpec(f flagDef) string {
	var action string
	switch f.Type {
	case flagBool:
		action = ""
	case flagEnum:
		action = fmt.Sprintf(":%s:(%s)", f.Long, strings.Join(f.Values, " "))
	case flagFile:
		globs := strings.ReplaceAll(f.FileGlob, ",", " ")
		action = fmt.Sprintf(":%s:_files -g \"%s\"", f.Long, globs)
	case flagDir:
		action = fmt.Sprintf(":%s:_directories", f.Long)
	default:
		action = fmt.Sprintf(":%s:", f.Long)
	}

	desc := zshEscape(f.Desc)
	repeat := ""
	if f.Long == "block" || f.Long == "tag" {
		repeat = "*"
	}
	if f.Short != "" {
		if repeat != "" {
			return fmt.Sprintf("'%s'{-%s,--%s}'[%s]%s'", repeat, f.Short, f.Long, desc, action)
		}
		return fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'[%s]%s'", f.Short, f.Long, f.Short, f.Long, desc, action)
	}
	return fmt.Sprintf("'%s--%s[%s]%s'", repeat, f.Long, desc, action)
}

// generateZsh writes a zsh completion script.
func generateZsh(w io.Writer) error {
	var b strings.Builder
	cmds := getCommands()

	b.WriteString("#compdef captainhook\n")
	b.WriteString("# eval \"$(captainhook completion zsh)\"\n\n")
	b.WriteString("_captainhook() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    _arguments -C \\\n")
	b.WriteString("        '1:command:->command' \\\n")
	b.WriteString("        '*::arg:->args'\n\n")
	b.WriteString("    case $state in\n")
	b.WriteString("        command)\n")
	b.WriteString("            _describe 'command' commands\n")
	b.WriteString("            ;;\n")
	b.WriteString("        args)\n")
	b.WriteString("            case $words[1] in\n")

	for _, c := range cmds {
		specs := make([]string, 0, len(c.Flags)+1)
		for _, f := range c.Flags {
			specs = append(specs, zshFlagSpec(f))
		}
		switch {
		case c.TakesFiles:
			specs = append(specs, "'*:template:_files'")
		case len(c.Args) > 0:
			specs = append(specs, fmt.Sprintf("'1:%s:(%s)'", c.Name, strings.Join(c.Args, " ")))
		}
		if len(specs) == 0 {
			continue
		}

		fmt.Fprintf(&b, "                %s)\n", c.Name)
		b.WriteString("                    _arguments \\\n")
		for i, s := range specs {
			if i < len(specs)-1 {
				fmt.Fprintf(&b, "                        %s \\\n", s)
			} else {
				fmt.Fprintf(&b, "                        %s\n", s)
			}
		}
		b.WriteString("                    ;;\n")
	}

	b.WriteString("            esac\n")
	b.WriteString("            ;;\n")
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _captainhook captainhook\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// fishEscape escapes text for use inside single quotes in fish.
func fishEscape(s string) string {
	return strings.NewReplacer(`\`, `\\`, "'", `\'`).Replace(s)
}

// generateFish writes a fish completion script.
func generateFish(w io.Writer) error {
	var b strings.Builder
	cmds := getCommands()

	b.WriteString("# fish completion for captainhook\n")
	b.WriteString("# captainhook completion fish > ~/.config/fish/completions/captainhook.fish\n\n")
	b.WriteString("function __fish_captainhook_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_captainhook_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test $cmd[2] = $argv[1]\n")
	b.WriteString("end\n\n")
	b.WriteString("complete -c captainhook -f\n\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c captainhook -n __fish_captainhook_needs_command -a %s -d '%s'\n", c.Name, fishEscape(c.Desc))
	}

	for _, c := range cmds {
		cond := fmt.Sprintf("'__fish_captainhook_using_command %s'", c.Name)
		b.WriteString("\n")
		for _, f := range c.Flags {
			fmt.Fprintf(&b, "complete -c captainhook -n %s", cond)
			if f.Short != "" {
				fmt.Fprintf(&b, " -s %s", f.Short)
			}
			fmt.Fprintf(&b, " -l %s -d '%s'", f.Long, fishEscape(f.Desc))
			switch f.Type {
			case flagEnum:
				fmt.Fprintf(&b, " -x -a '%s'", strings.Join(f.Values, " "))
			case flagFile:
				b.WriteString(" -r -F")
			case flagDir:
				b.WriteString(" -x -a '(__fish_complete_directories)'")
			case flagString, flagInt:
				b.WriteString(" -x")
			}
			b.WriteString("\n")
		}
		switch {
		case c.TakesFiles:
			fmt.Fprintf(&b, "complete -c captainhook -n %s -F\n", cond)
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "complete -c captainhook -n %s -a '%s'\n", cond, strings.Join(c.Args, " "))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: captainhook completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(captainhook completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (after compinit):")
	fmt.Fprintln(w, "    eval \"$(captainhook completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    captainhook completion fish > ~/.config/fish/completions/captainhook.fish")
}
