package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: captainhook <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  inject      Rewrite marked blocks in templates")
	fmt.Fprintln(w, "  blocks      List blocks and their entries")
	fmt.Fprintln(w, "  markers     Print the markers for block IDs")
	fmt.Fprintln(w, "  check       Verify configured blocks without writing")
	fmt.Fprintln(w, "  presets     List presets or show one")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'captainhook help <command>' for details on a specific command.")
}

// printInjectorFlagsUsage prints the flags shared by commands that render markers.
func printInjectorFlagsUsage(w io.Writer) {
	fmt.Fprintln(w, "Markers and tags:")
	fmt.Fprintln(w, "  -t, --type <s>            Template type: html, scss (default: from extension)")
	fmt.Fprintln(w, "      --comment-style <s>   Marker pattern, e.g. '{# {marker}:{type} #}'")
	fmt.Fprintln(w, "  -p, --preset <name>       Preset name (see 'captainhook presets')")
	fmt.Fprintln(w, "      --preset-path <dir>   Directory with custom presets")
	fmt.Fprintln(w, "      --tag <ext=pattern>   Tag for an extension, e.g. png='<img src=\"{file}\">'")
}

// printInjectUsage prints usage for the inject command.
func printInjectUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: captainhook inject [template...] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rewrite the marked blocks of each template so they list exactly the given")
	fmt.Fprintln(w, "files. Entries already present keep their order, new ones are appended,")
	fmt.Fprintln(w, "and stale ones are removed.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  template    Template file (optional if the config lists templates)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Blocks:")
	fmt.Fprintln(w, "  -b, --block <id=files>    Block and comma-separated files or globs (repeatable)")
	fmt.Fprintln(w, "      --tag-template <s>    Tag for every file, ignoring extensions")
	fmt.Fprintln(w, "      --root <dir>          Directory globs expand against")
	fmt.Fprintln(w)
	printInjectorFlagsUsage(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -n, --print               Print results to stdout, leave files untouched")
	fmt.Fprintln(w, "      --color <mode>        Highlight printed output: auto, always, never")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs and timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  captainhook inject index.html -b js=vendor/*.js,app.js -b css=app.css")
	fmt.Fprintln(w, "  captainhook inject -c captainhook.yaml")
	fmt.Fprintln(w, "  captainhook inject main.scss -b partials='partials/_*.scss' --print")
}

// printBlocksUsage prints usage for the blocks command.
func printBlocksUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: captainhook blocks <template...> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List the blocks found in each template with their current entries.")
	fmt.Fprintln(w)
	printInjectorFlagsUsage(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "      --json                Output as JSON")
}

// printMarkersUsage prints usage for the markers command.
func printMarkersUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: captainhook markers <id...> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the begin and end markers of each block ID, ready to paste.")
	fmt.Fprintln(w)
	printInjectorFlagsUsage(w)
}

// printCheckUsage prints usage for the check command.
func printCheckUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: captainhook check [template...] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that every block exists, is well-formed, and is up to date.")
	fmt.Fprintln(w, "Nothing is written. Takes the same blocks and config as inject.")
	fmt.Fprintln(w, "A block is out of date when inject would change it. If its entries already")
	fmt.Fprintln(w, "match, only blank lines or indentation differ and the warning says so.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Blocks:")
	fmt.Fprintln(w, "  -b, --block <id=files>    Block and comma-separated files or globs (repeatable)")
	fmt.Fprintln(w, "      --tag-template <s>    Tag for every file, ignoring extensions")
	fmt.Fprintln(w, "      --root <dir>          Directory globs expand against")
	fmt.Fprintln(w)
	printInjectorFlagsUsage(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "      --json                Output as JSON")
	fmt.Fprintln(w, "      --strict              Fail on out-of-date blocks")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show the status line")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes: 0 ready, 4 missing, malformed, or (with --strict) stale blocks.")
}

// printPresetsUsage prints usage for the presets command.
func printPresetsUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: captainhook presets [name] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List available presets, or print one as YAML.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --preset-path <dir>   Directory with custom presets")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "inject":
		printInjectUsage(env.Stdout)
	case "blocks":
		printBlocksUsage(env.Stdout)
	case "markers":
		printMarkersUsage(env.Stdout)
	case "check":
		printCheckUsage(env.Stdout)
	case "presets":
		printPresetsUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: captainhook version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: captainhook help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
