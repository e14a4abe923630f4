package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alnah/go-captainhook/internal/config"
)

// Sentinel errors for the inject and check commands.
var (
	ErrUsage          = errors.New("invalid usage")
	ErrNoTemplates    = errors.New("no templates specified")
	ErrNoBlocks       = errors.New("no blocks configured for template")
	ErrInvalidWorkers = errors.New("invalid worker count")
	ErrReadTemplate   = errors.New("failed to read template")
	ErrWriteTemplate  = errors.New("failed to write template")
)

// maxWorkers caps --workers.
const maxWorkers = 64

// injectJob is one template and the blocks to rewrite in it.
type injectJob struct {
	Path     string
	Template config.TemplateConfig
}

// runInject executes the inject command.
func runInject(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseInjectFlags(args, env)
	if err != nil {
		return err
	}

	logger := commandLogger(env, flags.common)
	warnUnknownEnvVars(logger, os.Environ())

	s, err := loadSettings(flags.common, flags.injector, flags.root, env)
	if err != nil {
		return err
	}

	blocks, err := parseBlockFlags(flags.blocks)
	if err != nil {
		return err
	}

	jobs, err := planJobs(positional, blocks, s.cfg)
	if err != nil {
		return err
	}

	workers := flags.workers
	if workers == 0 {
		if err := validateWorkers(s.workers); err != nil {
			return fmt.Errorf("CAPTAINHOOK_WORKERS: %w", err)
		}
		workers = s.workers
	}
	workers = resolveWorkers(workers)
	logger.Debug("injecting", "templates", len(jobs), "workers", workers, "root", s.root)

	params := &injectParams{
		settings:    s,
		tagTemplate: flags.tagTemplate,
		print:       flags.print,
		logger:      logger,
	}
	results := injectBatch(ctx, workers, jobs, params)

	if flags.print {
		printOutputs(results, shouldColor(flags.color, env), env)
	}

	// Printed templates already went to stdout; only failures follow.
	failed := printResultsWithWriter(results, flags.common.quiet || flags.print, flags.common.verbose, env)
	if failed > 0 {
		return fmt.Errorf("%d template(s) failed: %w", failed, firstError(results))
	}
	return nil
}

// planJobs decides which templates to rewrite and with which blocks.
//
// With positional templates and --block flags, every template gets the flag
// blocks. With positional templates only, each must appear in the config.
// Without positional templates, every configured template is processed.
func planJobs(positional []string, blocks []config.BlockConfig, cfg *config.Config) ([]injectJob, error) {
	if len(positional) == 0 {
		if len(blocks) > 0 {
			return nil, fmt.Errorf("%w: --block needs at least one template argument", ErrUsage)
		}
		if len(cfg.Templates) == 0 {
			return nil, fmt.Errorf("%w: pass template files or add templates to the config", ErrNoTemplates)
		}
		jobs := make([]injectJob, len(cfg.Templates))
		for i, t := range cfg.Templates {
			jobs[i] = injectJob{Path: cfg.Resolve(t.Path), Template: t}
		}
		return jobs, nil
	}

	jobs := make([]injectJob, 0, len(positional))
	for _, p := range positional {
		if len(blocks) > 0 {
			jobs = append(jobs, injectJob{Path: p, Template: config.TemplateConfig{Path: p, Blocks: blocks}})
			continue
		}
		t, ok := findTemplate(cfg, p)
		if !ok {
			return nil, fmt.Errorf("%w: %s (use --block id=files or add it to the config)", ErrNoBlocks, p)
		}
		jobs = append(jobs, injectJob{Path: p, Template: t})
	}
	return jobs, nil
}

// findTemplate returns the configured template that resolves to the same
// file as path.
func findTemplate(cfg *config.Config, path string) (config.TemplateConfig, bool) {
	want, err := filepath.Abs(path)
	if err != nil {
		return config.TemplateConfig{}, false
	}
	for _, t := range cfg.Templates {
		got, err := filepath.Abs(cfg.Resolve(t.Path))
		if err == nil && got == want {
			return t, true
		}
	}
	return config.TemplateConfig{}, false
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkers, n)
	}
	if n > maxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkers, n, maxWorkers)
	}
	return nil
}

// firstError returns the first failure in results, in job order.
func firstError(results []injectResult) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}
