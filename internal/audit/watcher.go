package audit

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const watchDebounce = 500 * time.Millisecond

// Watch re-runs run whenever HTML under root changes, debounced so a
// site rebuild triggers one pass instead of hundreds. It blocks until
// ctx is done.
func Watch(ctx context.Context, root string, log zerolog.Logger, run func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", root, err)
	}

	log.Info().Str("dir", root).Msg("watching for changes")

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-pending:
			pending = nil
			run()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// New directories need their own watch before their files
			// produce events.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watcher.Add(event.Name); err != nil {
						log.Warn().Str("dir", event.Name).Err(err).Msg("failed to watch new directory")
					}
					continue
				}
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".html") {
				continue
			}
			log.Debug().Str("op", event.Op.String()).Str("file", event.Name).Msg("change detected")
			pending = time.After(watchDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("watch error")
		}
	}
}
