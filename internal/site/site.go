// Package site walks a built site tree and drives the canonical URL
// manager over every page: emission installs canonical links and
// collects pending redirects, validation reports drift between installed
// and expected canonicals.
package site

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/LLM-Toolkit/llm-toolkit.github.io-sub001/internal/canonical"
	"github.com/LLM-Toolkit/llm-toolkit.github.io-sub001/internal/pageenv"
)

const filePerm = 0o644

// Files returns the site-relative paths of all HTML files under root,
// sorted. Hidden directories are skipped.
func Files(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".html") {
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk site dir %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

// Redirect is one address rewrite the redirect pipeline wants for a
// page, recorded during emission.
type Redirect struct {
	File string
	From string
	To   string
}

// EmitResult summarizes one emission pass.
type EmitResult struct {
	Pages     int
	Updated   []string
	Redirects []Redirect
}

// Emit runs Init (redirect pipeline, then canonical emission) on every
// page under root and rewrites the files whose head changed. baseURL
// may be empty, in which case the manager's fallback origin applies.
func Emit(ctx context.Context, root, baseURL string, log zerolog.Logger) (*EmitResult, error) {
	files, err := Files(root)
	if err != nil {
		return nil, err
	}

	var (
		mu     sync.Mutex
		result = EmitResult{Pages: len(files)}
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, rel := range files {
		rel := rel
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			page, origin, err := loadPage(root, rel, baseURL, log)
			if err != nil {
				return err
			}

			m := canonical.New(page, canonical.WithBaseURL(baseURL), canonical.WithLogger(log))
			before, _ := page.Path()
			m.Init()

			mu.Lock()
			defer mu.Unlock()
			for _, to := range page.Redirects() {
				result.Redirects = append(result.Redirects, Redirect{
					File: rel,
					From: origin + before,
					To:   to,
				})
			}
			if !page.Modified() {
				return nil
			}
			out, err := page.Render()
			if err != nil {
				return fmt.Errorf("%s: %w", rel, err)
			}
			if err := os.WriteFile(filepath.Join(root, rel), []byte(out), filePerm); err != nil {
				return fmt.Errorf("failed to write %s: %w", rel, err)
			}
			result.Updated = append(result.Updated, rel)
			log.Debug().Str("file", rel).Msg("canonical link written")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(result.Updated)
	sort.Slice(result.Redirects, func(i, j int) bool { return result.Redirects[i].File < result.Redirects[j].File })
	return &result, nil
}

// Drift is one page whose installed canonical does not match the
// expected one.
type Drift struct {
	File     string
	Path     string
	Current  string
	Expected string
	Missing  bool
}

// Validate compares the installed canonical of every page against what
// the manager would produce now. It never modifies files.
func Validate(ctx context.Context, root, baseURL string, log zerolog.Logger) ([]Drift, error) {
	files, err := Files(root)
	if err != nil {
		return nil, err
	}

	var (
		mu     sync.Mutex
		drifts []Drift
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, rel := range files {
		rel := rel
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			page, _, err := loadPage(root, rel, baseURL, log)
			if err != nil {
				return err
			}

			m := canonical.New(page, canonical.WithBaseURL(baseURL), canonical.WithLogger(log))
			v := m.ValidateCurrentCanonical()
			if v.Matches {
				return nil
			}
			path, _ := page.Path()
			mu.Lock()
			drifts = append(drifts, Drift{
				File:     rel,
				Path:     path,
				Current:  v.Current,
				Expected: v.Expected,
				Missing:  v.Current == "",
			})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(drifts, func(i, j int) bool { return drifts[i].File < drifts[j].File })
	return drifts, nil
}

func loadPage(root, rel, baseURL string, log zerolog.Logger) (*pageenv.Page, string, error) {
	raw, err := os.ReadFile(filepath.Join(root, rel))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %s: %w", rel, err)
	}
	origin := baseURL
	if origin == "" {
		origin = canonical.FallbackOrigin
	}
	page, err := pageenv.Parse(bytes.NewReader(raw), origin, pageenv.PathForFile(rel))
	if err != nil {
		log.Warn().Str("file", rel).Err(err).Msg("unparseable page")
		return nil, "", fmt.Errorf("%s: %w", rel, err)
	}
	return page, origin, nil
}
