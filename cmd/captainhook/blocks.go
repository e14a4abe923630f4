package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/alnah/go-captainhook/internal/config"
)

// templateBlocks lists the blocks found in one template.
type templateBlocks struct {
	Path   string      `json:"path"`
	Type   string      `json:"type"`
	Blocks []blockInfo `json:"blocks"`
}

// blockInfo describes one block and its current entries.
type blockInfo struct {
	ID      string   `json:"id"`
	Entries []string `json:"entries"`
	Error   string   `json:"error,omitempty"`
}

// runBlocks executes the blocks command.
func runBlocks(args []string, env *Environment) error {
	f := &blocksFlags{}
	positional, err := parseFlagSet(newBlocksFlagSet(f), args, env.Stdout, printBlocksUsage)
	if err != nil {
		return err
	}
	if len(positional) == 0 {
		return fmt.Errorf("%w: blocks needs at least one template", ErrUsage)
	}

	s, err := loadSettings(commonFlags{}, f.injector, "", env)
	if err != nil {
		return err
	}

	listed := make([]templateBlocks, 0, len(positional))
	for _, path := range positional {
		tb, err := listBlocks(s, path)
		if err != nil {
			return err
		}
		listed = append(listed, tb)
	}

	if f.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(listed)
	}
	printBlocks(env.Stdout, listed)
	return nil
}

// listBlocks reads path and collects its blocks in order of appearance.
func listBlocks(s *settings, path string) (templateBlocks, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- template path is user-provided
	if err != nil {
		return templateBlocks{}, fmt.Errorf("%w: %w", ErrReadTemplate, err)
	}

	t, ok := findTemplate(s.cfg, path)
	if !ok {
		t = config.TemplateConfig{Path: path}
	}

	inj, err := newInjector(s, t, path, string(data))
	if err != nil {
		return templateBlocks{}, fmt.Errorf("%s: %w", path, err)
	}

	tb := templateBlocks{Path: path, Type: string(inj.TemplateType()), Blocks: []blockInfo{}}
	for _, id := range inj.BlockIDs() {
		info := blockInfo{ID: id, Entries: []string{}}
		entries, err := inj.BlockContents(inj.GenerateCommentTags(id))
		if err != nil {
			info.Error = err.Error()
		} else {
			info.Entries = entries
		}
		tb.Blocks = append(tb.Blocks, info)
	}
	return tb, nil
}

// printBlocks writes a human-readable block listing.
func printBlocks(w io.Writer, listed []templateBlocks) {
	for i, tb := range listed {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s (%s)\n", tb.Path, tb.Type)
		if len(tb.Blocks) == 0 {
			fmt.Fprintln(w, "  no blocks")
			continue
		}
		for _, b := range tb.Blocks {
			if b.Error != "" {
				fmt.Fprintf(w, "  %s: [ERROR] %s\n", b.ID, b.Error)
				continue
			}
			fmt.Fprintf(w, "  %s: %d entries\n", b.ID, len(b.Entries))
			for _, e := range b.Entries {
				fmt.Fprintf(w, "    %s\n", e)
			}
		}
	}
}
