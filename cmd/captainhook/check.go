package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	flag "github.com/spf13/pflag"

	captainhook "github.com/alnah/go-captainhook"
	"github.com/alnah/go-captainhook/internal/config"
	"github.com/alnah/go-captainhook/internal/hints"
)

// Check statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// Block check outcomes.
const (
	blockOK        = "ok"
	blockStale     = "stale"
	blockMissing   = "missing"
	blockMalformed = "malformed"
	blockInvalid   = "invalid"
)

// msgFormattingOnly marks a stale block whose entries already match its files.
const msgFormattingOnly = "entries match, only formatting differs"

// checkResult holds the outcome of checking every template.
type checkResult struct {
	Status    string          `json:"status"` // "ready", "warnings", "errors"
	Templates []templateCheck `json:"templates"`
	Warnings  []string        `json:"warnings,omitempty"`
	Errors    []string        `json:"errors,omitempty"`
}

// templateCheck holds the outcome for one template.
type templateCheck struct {
	Path   string       `json:"path"`
	Type   string       `json:"type,omitempty"`
	Blocks []blockCheck `json:"blocks,omitempty"`
	Error  string       `json:"error,omitempty"`
}

// blockCheck holds the outcome for one configured block.
type blockCheck struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Entries int    `json:"entries"`
	Files   int    `json:"files"`
	Message string `json:"message,omitempty"`
}

// runCheckCmd executes the check command and returns an exit code.
// Exit codes: 0 = OK (including warnings unless --strict), 4 = problems found,
// other codes for usage and config errors.
func runCheckCmd(args []string, env *Environment) int {
	f := &checkFlags{}
	positional, err := parseFlagSet(newCheckFlagSet(f), args, env.Stdout, printCheckUsage)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}

	result, err := runCheck(positional, f, env)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}

	if f.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printCheckResult(env.Stdout, result, f.common.quiet)
	}

	if result.Status == statusErrors || (f.strict && result.Status == statusWarnings) {
		return ExitTemplate
	}
	return ExitSuccess
}

// runCheck resolves the jobs like inject does and checks each one without
// writing anything.
func runCheck(positional []string, f *checkFlags, env *Environment) (*checkResult, error) {
	logger := commandLogger(env, f.common)
	warnUnknownEnvVars(logger, os.Environ())

	s, err := loadSettings(f.common, f.injector, f.root, env)
	if err != nil {
		return nil, err
	}
	blocks, err := parseBlockFlags(f.blocks)
	if err != nil {
		return nil, err
	}
	jobs, err := planJobs(positional, blocks, s.cfg)
	if err != nil {
		return nil, err
	}

	params := &injectParams{settings: s, tagTemplate: f.tagTemplate, print: true, logger: logger}
	result := &checkResult{Status: statusReady, Templates: make([]templateCheck, 0, len(jobs))}
	for _, job := range jobs {
		result.Templates = append(result.Templates, checkTemplate(job, params, result))
	}

	if len(result.Errors) > 0 {
		result.Status = statusErrors
	} else if len(result.Warnings) > 0 {
		result.Status = statusWarnings
	}
	return result, nil
}

// checkTemplate checks every block of one template and records problems in
// result. A block whose files would change its entries is stale.
func checkTemplate(job injectJob, params *injectParams, result *checkResult) templateCheck {
	tc := templateCheck{Path: job.Path}

	data, err := os.ReadFile(job.Path) // #nosec G304 -- template path is user-provided
	if err != nil {
		tc.Error = err.Error()
		result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", job.Path, err))
		return tc
	}

	inj, err := newInjector(params.settings, job.Template, job.Path, string(data))
	if err != nil {
		tc.Error = err.Error()
		result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", job.Path, err))
		return tc
	}
	tc.Type = string(inj.TemplateType())

	for _, b := range job.Template.Blocks {
		bc := checkBlock(inj, b, params)
		switch bc.Status {
		case blockStale:
			if bc.Message != "" {
				result.Warnings = append(result.Warnings, fmt.Sprintf("%s: block %q: %s", job.Path, b.ID, bc.Message))
			} else {
				result.Warnings = append(result.Warnings, fmt.Sprintf("%s: block %q is out of date", job.Path, b.ID))
			}
		case blockMissing, blockMalformed, blockInvalid:
			result.Errors = append(result.Errors, fmt.Sprintf("%s: block %q: %s", job.Path, b.ID, bc.Message))
		}
		tc.Blocks = append(tc.Blocks, bc)
	}
	return tc
}

// checkBlock checks one block against a fresh copy of the template.
func checkBlock(inj *captainhook.Injector, b config.BlockConfig, params *injectParams) blockCheck {
	bc := blockCheck{ID: b.ID, Status: blockOK}

	entries, err := inj.BlockContents(inj.GenerateCommentTags(b.ID))
	switch {
	case errors.Is(err, captainhook.ErrBlockNotFound):
		bc.Status = blockMissing
		bc.Message = "not found in template" + hints.ForBlockNotFound(inj.BlockIDs())
		return bc
	case err != nil:
		bc.Status = blockMalformed
		bc.Message = err.Error()
		return bc
	}
	bc.Entries = len(entries)

	files, err := config.ExpandFiles(params.settings.root, b.Files)
	if err != nil {
		bc.Status = blockInvalid
		bc.Message = err.Error()
		return bc
	}
	bc.Files = len(files)

	// Inject into a throwaway injector so the checked template stays intact.
	probe, err := captainhook.New(inj.Template(),
		captainhook.WithTemplateType(inj.TemplateType()),
		captainhook.WithCommentStyle(inj.CommentStyle()),
		captainhook.WithInjectionTemplates(inj.InjectionTemplates()))
	if err != nil {
		bc.Status = blockInvalid
		bc.Message = err.Error()
		return bc
	}
	before := probe.Template()
	if err := injectBlock(probe, b, params); err != nil {
		bc.Status = blockInvalid
		bc.Message = err.Error()
		return bc
	}
	if probe.Template() != before {
		bc.Status = blockStale
		after, err := probe.BlockContents(probe.GenerateCommentTags(b.ID))
		if err == nil && slices.Equal(after, entries) {
			bc.Message = msgFormattingOnly
		}
	}
	return bc
}

// printCheckResult outputs human-readable check results.
func printCheckResult(w io.Writer, r *checkResult, quiet bool) {
	if !quiet {
		for _, tc := range r.Templates {
			fmt.Fprintln(w, tc.Path)
			if tc.Error != "" {
				fmt.Fprintf(w, "  [ERROR] %s\n", tc.Error)
				continue
			}
			for _, b := range tc.Blocks {
				switch b.Status {
				case blockOK:
					fmt.Fprintf(w, "  [OK] %s: %d entries\n", b.ID, b.Entries)
				case blockStale:
					reason := "out of date"
					if b.Message != "" {
						reason = b.Message
					}
					fmt.Fprintf(w, "  [WARN] %s: %d entries, %d files (%s)\n", b.ID, b.Entries, b.Files, reason)
				default:
					fmt.Fprintf(w, "  [ERROR] %s: %s\n", b.ID, b.Message)
				}
			}
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: READY")
	case statusWarnings:
		fmt.Fprintf(w, "Status: READY with %d warning(s)\n", len(r.Warnings))
	default:
		fmt.Fprintf(w, "Status: %d error(s)\n", len(r.Errors))
	}
}
