package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2/quick"

	captainhook "github.com/alnah/go-captainhook"
)

// Highlighting settings for --print output.
const (
	highlightFormatter = "terminal256"
	highlightStyle     = "monokai"
)

// shouldColor resolves --color against the terminal state of stdout.
func shouldColor(mode string, env *Environment) bool {
	switch mode {
	case colorAlways:
		return true
	case colorNever:
		return false
	default:
		return env.isTTY(env.Stdout)
	}
}

// printOutputs writes each successfully rewritten template to stdout in job
// order. Several templates are separated by "==> path <==" headers.
func printOutputs(results []injectResult, color bool, env *Environment) {
	ok := 0
	for _, r := range results {
		if r.Err == nil {
			ok++
		}
	}

	first := true
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		if ok > 1 {
			if !first {
				fmt.Fprintln(env.Stdout)
			}
			fmt.Fprintf(env.Stdout, "==> %s <==\n", r.Path)
		}
		first = false

		if color {
			writeHighlighted(env.Stdout, r.Output, r.Type)
		} else {
			_, _ = io.WriteString(env.Stdout, r.Output)
		}
	}
}

// writeHighlighted writes code with terminal colors for the template type.
// Falls back to plain text if highlighting fails.
func writeHighlighted(w io.Writer, code string, typ captainhook.TemplateType) {
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, code, lexerFor(typ), highlightFormatter, highlightStyle); err != nil {
		_, _ = io.WriteString(w, code)
		return
	}
	_, _ = buf.WriteTo(w)
}

// lexerFor returns the chroma lexer name for a template type. Unknown types
// are passed through; chroma falls back to content analysis.
func lexerFor(typ captainhook.TemplateType) string {
	switch typ {
	case captainhook.TemplateHTML:
		return "html"
	case captainhook.TemplateSCSS:
		return "scss"
	default:
		return string(typ)
	}
}
