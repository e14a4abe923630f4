package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/alnah/go-captainhook/internal/hints"
	"github.com/alnah/go-captainhook/internal/presets"
	"github.com/alnah/go-captainhook/internal/yamlutil"
)

// runPresets lists the available presets, or prints one preset as YAML.
func runPresets(args []string, env *Environment) error {
	var presetPath string
	positional, err := parseFlagSet(newPresetsFlagSet(&presetPath), args, env.Stdout, printPresetsUsage)
	if err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: presets takes at most one name", ErrUsage)
	}
	if presetPath == "" {
		presetPath = loadEnvConfig(env).PresetPath
	}

	resolver, err := presets.NewResolver(presetPath)
	if err != nil {
		return err
	}

	if len(positional) == 1 {
		return showPreset(env.Stdout, resolver, positional[0])
	}
	return listPresets(env.Stdout, resolver)
}

// listPresets writes one line per preset: name, type, description.
func listPresets(w io.Writer, loader presets.Loader) error {
	names, err := loader.List()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, name := range names {
		p, err := loader.Load(name)
		if err != nil {
			fmt.Fprintf(tw, "%s\t\t[ERROR] %v\n", name, err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s (%s)\n", name, p.Type, p.Description, strings.Join(p.Extensions(), ", "))
	}
	return tw.Flush()
}

// showPreset writes the named preset as YAML.
func showPreset(w io.Writer, loader presets.Loader, name string) error {
	p, err := loader.Load(name)
	if err != nil {
		if errors.Is(err, presets.ErrPresetNotFound) {
			names, _ := loader.List()
			sort.Strings(names)
			return fmt.Errorf("%w%s", err, hints.ForPresetNotFound(names))
		}
		return err
	}

	out, err := yamlutil.Marshal(p)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "# %s\n", p.Name)
	_, err = w.Write(out)
	return err
}
