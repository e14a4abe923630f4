package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	captainhook "github.com/alnah/go-captainhook"
	"github.com/alnah/go-captainhook/internal/config"
	"github.com/alnah/go-captainhook/internal/fileutil"
	"github.com/alnah/go-captainhook/internal/pattern"
)

// Color modes for --color.
const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// injectorFlags holds flags that shape how markers and tags are rendered.
type injectorFlags struct {
	templateType string
	commentStyle string
	preset       string
	presetPath   string
	tags         []string // ext=pattern
}

// injectFlags holds all flags for the inject command.
type injectFlags struct {
	common      commonFlags
	injector    injectorFlags
	blocks      []string // id=file,file
	tagTemplate string
	root        string
	print       bool
	color       string
	workers     int
}

// blocksFlags holds flags for the blocks command.
type blocksFlags struct {
	injector injectorFlags
	json     bool
}

// checkFlags holds flags for the check command.
type checkFlags struct {
	common      commonFlags
	injector    injectorFlags
	blocks      []string
	tagTemplate string
	root        string
	json        bool
	strict      bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timing")
}

// addInjectorFlags adds marker and tag flags to a FlagSet.
func addInjectorFlags(fs *flag.FlagSet, f *injectorFlags) {
	fs.StringVarP(&f.templateType, "type", "t", "", "template type: html, scss")
	fs.StringVar(&f.commentStyle, "comment-style", "", "marker pattern with {marker} and {type}")
	fs.StringVarP(&f.preset, "preset", "p", "", "preset name")
	fs.StringVar(&f.presetPath, "preset-path", "", "directory with custom presets")
	fs.StringArrayVar(&f.tags, "tag", nil, "tag template for an extension, as ext=pattern (repeatable)")
}

// addBlockFlags adds the repeatable --block flag to a FlagSet.
func addBlockFlags(fs *flag.FlagSet, blocks *[]string, tagTemplate, root *string) {
	fs.StringArrayVarP(blocks, "block", "b", nil, "block to rewrite, as id=file,file (repeatable)")
	fs.StringVar(tagTemplate, "tag-template", "", "tag template for every file, overrides extensions")
	fs.StringVar(root, "root", "", "directory file globs expand against")
}

// newInjectFlagSet registers the inject flags on a new FlagSet.
// Shared by parseInjectFlags and completion generation.
func newInjectFlagSet(f *injectFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("inject", flag.ContinueOnError)

	addBlockFlags(fs, &f.blocks, &f.tagTemplate, &f.root)
	fs.BoolVarP(&f.print, "print", "n", false, "print results to stdout instead of writing files")
	fs.StringVar(&f.color, "color", colorAuto, "highlight printed output: auto, always, never")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")

	addInjectorFlags(fs, &f.injector)
	addCommonFlags(fs, &f.common)

	return fs
}

// newBlocksFlagSet registers the blocks flags on a new FlagSet.
func newBlocksFlagSet(f *blocksFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("blocks", flag.ContinueOnError)
	addInjectorFlags(fs, &f.injector)
	fs.BoolVar(&f.json, "json", false, "output as JSON")
	return fs
}

// newCheckFlagSet registers the check flags on a new FlagSet.
func newCheckFlagSet(f *checkFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	addBlockFlags(fs, &f.blocks, &f.tagTemplate, &f.root)
	fs.BoolVar(&f.json, "json", false, "output as JSON")
	fs.BoolVar(&f.strict, "strict", false, "treat warnings as errors")
	addInjectorFlags(fs, &f.injector)
	addCommonFlags(fs, &f.common)
	return fs
}

// newMarkersFlagSet registers the markers flags on a new FlagSet.
func newMarkersFlagSet(f *injectorFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("markers", flag.ContinueOnError)
	addInjectorFlags(fs, f)
	return fs
}

// newPresetsFlagSet registers the presets flags on a new FlagSet.
func newPresetsFlagSet(presetPath *string) *flag.FlagSet {
	fs := flag.NewFlagSet("presets", flag.ContinueOnError)
	fs.StringVar(presetPath, "preset-path", "", "directory with custom presets")
	return fs
}

// parseFlagSet parses args, printing usage to w on --help.
// Parse errors other than ErrHelp are wrapped in ErrUsage.
func parseFlagSet(fs *flag.FlagSet, args []string, w io.Writer, usage func(io.Writer)) ([]string, error) {
	fs.SetOutput(io.Discard)
	fs.Usage = func() { usage(w) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return fs.Args(), nil
}

// parseInjectFlags parses inject command flags and returns positional args.
func parseInjectFlags(args []string, env *Environment) (*injectFlags, []string, error) {
	f := &injectFlags{}
	rest, err := parseFlagSet(newInjectFlagSet(f), args, env.Stdout, printInjectUsage)
	if err != nil {
		return nil, nil, err
	}
	if err := validateColor(f.color); err != nil {
		return nil, nil, err
	}
	if err := validateWorkers(f.workers); err != nil {
		return nil, nil, err
	}
	return f, rest, nil
}

// validateColor checks the --color mode.
func validateColor(mode string) error {
	switch mode {
	case colorAuto, colorAlways, colorNever:
		return nil
	default:
		return fmt.Errorf("%w: --color %q (use auto, always, or never)", ErrUsage, mode)
	}
}

// parseTagFlags turns ext=pattern pairs into an injection template map.
// Later pairs override earlier ones for the same extension.
func parseTagFlags(tags []string) (map[string]string, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(tags))
	for _, t := range tags {
		ext, tmpl, ok := strings.Cut(t, "=")
		ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
		if !ok || tmpl == "" {
			return nil, fmt.Errorf("%w: --tag %q (want ext=pattern)", ErrUsage, t)
		}
		if err := fileutil.ValidateExtension(ext); err != nil {
			return nil, fmt.Errorf("%w: --tag %q: %v", ErrUsage, t, err)
		}
		if !pattern.Default.Has(tmpl, captainhook.VarFile) {
			return nil, fmt.Errorf("%w: --tag %q must reference {%s}", ErrUsage, t, captainhook.VarFile)
		}
		out[ext] = tmpl
	}
	return out, nil
}

// parseBlockFlags turns id=file,file specs into block configs in flag order.
// "id=" yields a block with no files, which clears it.
func parseBlockFlags(specs []string) ([]config.BlockConfig, error) {
	blocks := make([]config.BlockConfig, 0, len(specs))
	seen := make(map[string]bool, len(specs))

	for _, spec := range specs {
		id, list, ok := strings.Cut(spec, "=")
		id = strings.TrimSpace(id)
		if !ok || id == "" {
			return nil, fmt.Errorf("%w: --block %q (want id=file,file)", ErrUsage, spec)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: --block %q given more than once", ErrUsage, id)
		}
		seen[id] = true

		files := []string{}
		for _, f := range strings.Split(list, ",") {
			if f = strings.TrimSpace(f); f != "" {
				files = append(files, f)
			}
		}
		blocks = append(blocks, config.BlockConfig{ID: id, Files: files})
	}
	return blocks, nil
}
