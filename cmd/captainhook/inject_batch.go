package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	captainhook "github.com/alnah/go-captainhook"
	"github.com/alnah/go-captainhook/internal/config"
	"github.com/alnah/go-captainhook/internal/fileutil"
	"github.com/alnah/go-captainhook/internal/hints"
)

// injectParams holds the settings shared by every job of a batch.
type injectParams struct {
	settings    *settings
	tagTemplate string // --tag-template, used by blocks without their own
	print       bool
	logger      *slog.Logger
}

// injectResult holds the outcome of a single template.
type injectResult struct {
	Path     string
	Type     captainhook.TemplateType
	Output   string   // rewritten template
	Changed  bool     // Output differs from the file on disk
	Blocks   int      // blocks rewritten
	Missing  []string // configured blocks absent from the template
	Err      error
	Duration time.Duration
}

// injectBatch processes templates concurrently with at most workers goroutines.
// Results are returned in job order.
func injectBatch(ctx context.Context, workers int, jobs []injectJob, params *injectParams) []injectResult {
	if len(jobs) == 0 {
		return nil
	}

	concurrency := workers
	if concurrency > len(jobs) {
		concurrency = len(jobs)
	}
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]injectResult, len(jobs))
	var wg sync.WaitGroup
	queue := make(chan int, len(jobs))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for idx := range queue {
				if ctx.Err() != nil {
					results[idx] = injectResult{Path: jobs[idx].Path, Err: ctx.Err()}
					continue
				}
				results[idx] = injectTemplate(ctx, jobs[idx], params)
			}
		}()
	}

	for i := range jobs {
		queue <- i
	}
	close(queue)

	wg.Wait()
	return results
}

// injectTemplate rewrites every block of one template and writes it back
// unless params.print is set. The file is left untouched on any error.
func injectTemplate(ctx context.Context, job injectJob, params *injectParams) injectResult {
	start := time.Now()
	result := injectResult{Path: job.Path}

	data, err := os.ReadFile(job.Path) // #nosec G304 -- template path is user-provided
	if err != nil {
		result.Err = fmt.Errorf("%w: %w", ErrReadTemplate, err)
		return result
	}
	original := string(data)

	inj, err := newInjector(params.settings, job.Template, job.Path, original)
	if err != nil {
		result.Err = err
		return result
	}
	result.Type = inj.TemplateType()

	for _, b := range job.Template.Blocks {
		if ctx.Err() != nil {
			result.Err = ctx.Err()
			return result
		}

		if !hasBlock(inj, b.ID) {
			result.Missing = append(result.Missing, b.ID)
			params.logger.Warn("block not found", "template", job.Path, "block", b.ID)
			continue
		}

		if err := injectBlock(inj, b, params); err != nil {
			result.Err = err
			return result
		}
		result.Blocks++
		params.logger.Debug("block rewritten", "template", job.Path, "block", b.ID)
	}

	result.Output = inj.Template()
	result.Changed = result.Output != original

	if !params.print && result.Changed {
		if err := fileutil.WriteFileAtomic(job.Path, result.Output); err != nil {
			result.Err = fmt.Errorf("%w: %w%s", ErrWriteTemplate, err, hints.ForWriteFailure())
			return result
		}
	}

	result.Duration = time.Since(start)
	return result
}

// injectBlock expands the block's files and injects them.
func injectBlock(inj *captainhook.Injector, b config.BlockConfig, params *injectParams) error {
	files, err := config.ExpandFiles(params.settings.root, b.Files)
	if err != nil {
		return fmt.Errorf("block %q: %w", b.ID, err)
	}

	tmpl := b.Template
	if tmpl == "" {
		tmpl = params.tagTemplate
	}

	if _, err := inj.InjectWithTemplate(b.ID, files, tmpl); err != nil {
		return withBlockHint(err, inj, b.ID, files)
	}
	return nil
}

// hasBlock reports whether the begin marker of id is present.
func hasBlock(inj *captainhook.Injector, id string) bool {
	_, err := inj.BlockIndexes(inj.GenerateCommentTags(id))
	return !errors.Is(err, captainhook.ErrBlockNotFound)
}

// withBlockHint appends an actionable hint to a block error.
func withBlockHint(err error, inj *captainhook.Injector, id string, files []string) error {
	switch {
	case errors.Is(err, captainhook.ErrMalformedBlock):
		tags := inj.GenerateCommentTags(id)
		return fmt.Errorf("%w%s", err, hints.ForMalformedBlock(tags.Begin, tags.End))
	case errors.Is(err, captainhook.ErrUnknownExtension):
		return fmt.Errorf("%w%s", err, hints.ForUnknownExtension(unknownExtension(inj, files), inj.Extensions()))
	}
	return err
}

// unknownExtension returns the extension of the first file without a tag template.
func unknownExtension(inj *captainhook.Injector, files []string) string {
	for _, f := range files {
		if _, err := inj.CreateTag(f); err != nil {
			return fileutil.Ext(f)
		}
	}
	return ""
}

// ResultSummary holds the count of outcomes in a batch.
type ResultSummary struct {
	Updated   int
	Unchanged int
	Failed    int
}

// countResults tallies updated, unchanged, and failed templates.
func countResults(results []injectResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		switch {
		case r.Err != nil:
			summary.Failed++
		case r.Changed:
			summary.Updated++
		default:
			summary.Unchanged++
		}
	}
	return summary
}

// printResultsWithWriter outputs batch results using the provided writers.
// Returns the number of failed templates.
func printResultsWithWriter(results []injectResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.Path, r.Err)
			continue
		}

		if quiet {
			continue
		}

		status := "Unchanged"
		if r.Changed {
			status = "Updated"
		}
		if verbose {
			fmt.Fprintf(env.Stdout, "%s %s (%s, %d block(s), %v)\n", status, r.Path, r.Type, r.Blocks, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "%s %s\n", status, r.Path)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d updated, %d unchanged, %d failed\n", summary.Updated, summary.Unchanged, summary.Failed)
	}

	return summary.Failed
}
