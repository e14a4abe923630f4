package main

import (
	"fmt"

	"github.com/alnah/go-captainhook/internal/config"
)

// runMarkers prints the begin and end markers for each block ID, ready to
// paste into a template.
func runMarkers(args []string, env *Environment) error {
	f := &injectorFlags{}
	ids, err := parseFlagSet(newMarkersFlagSet(f), args, env.Stdout, printMarkersUsage)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return fmt.Errorf("%w: markers needs at least one block id", ErrUsage)
	}

	s, err := loadSettings(commonFlags{}, *f, "", env)
	if err != nil {
		return err
	}

	inj, err := newInjector(s, config.TemplateConfig{}, "", "")
	if err != nil {
		return err
	}

	for i, id := range ids {
		if id == "" {
			return fmt.Errorf("%w: empty block id", ErrUsage)
		}
		if i > 0 {
			fmt.Fprintln(env.Stdout)
		}
		tags := inj.GenerateCommentTags(id)
		fmt.Fprintln(env.Stdout, tags.Begin)
		fmt.Fprintln(env.Stdout, tags.End)
	}
	return nil
}
