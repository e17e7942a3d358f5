// Package rewrite performs the origin migration: a bulk textual replace
// of an old origin with a new one across the files of the site and its
// scripts. It is the out-of-band maintainer of every baked-in origin
// string, canonical.FallbackOrigin included.
package rewrite

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/LLM-Toolkit/llm-toolkit.github.io-sub001/internal/canonical"
)

// DefaultExtensions are the file types an origin can be baked into.
var DefaultExtensions = []string{".html", ".css", ".js", ".json", ".xml", ".txt", ".md", ".go"}

// Options controls one migration run.
type Options struct {
	Root      string
	OldOrigin string
	NewOrigin string
	// Extensions filters the files touched; empty means
	// DefaultExtensions.
	Extensions []string
	// DryRun counts replacements without writing anything.
	DryRun bool
}

// Result summarizes a migration run.
type Result struct {
	FilesScanned int
	FilesChanged []string
	Replacements int
}

// Run walks opts.Root and replaces every occurrence of the old origin.
// Both origins must be bare origins so a sloppy argument cannot corrupt
// page URLs.
func Run(opts Options, log zerolog.Logger) (*Result, error) {
	if !canonical.IsValidOrigin(opts.OldOrigin) {
		return nil, fmt.Errorf("old origin %q is not a bare origin", opts.OldOrigin)
	}
	if !canonical.IsValidOrigin(opts.NewOrigin) {
		return nil, fmt.Errorf("new origin %q is not a bare origin", opts.NewOrigin)
	}
	if opts.OldOrigin == opts.NewOrigin {
		return nil, fmt.Errorf("old and new origin are both %q", opts.OldOrigin)
	}

	exts := opts.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	wanted := make(map[string]bool, len(exts))
	for _, ext := range exts {
		wanted[strings.ToLower(ext)] = true
	}

	old := []byte(opts.OldOrigin)
	replacement := []byte(opts.NewOrigin)
	result := &Result{}

	err := filepath.WalkDir(opts.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != opts.Root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !wanted[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		result.FilesScanned++

		count := bytes.Count(raw, old)
		if count == 0 {
			return nil
		}

		rel, err := filepath.Rel(opts.Root, path)
		if err != nil {
			rel = path
		}
		result.Replacements += count
		result.FilesChanged = append(result.FilesChanged, filepath.ToSlash(rel))

		if opts.DryRun {
			log.Info().Str("file", rel).Int("occurrences", count).Msg("would rewrite")
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", path, err)
		}
		updated := bytes.ReplaceAll(raw, old, replacement)
		if err := os.WriteFile(path, updated, info.Mode().Perm()); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		log.Debug().Str("file", rel).Int("occurrences", count).Msg("rewritten")
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("origin migration failed: %w", err)
	}

	sort.Strings(result.FilesChanged)
	return result, nil
}
