package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/go-homedir"
)

// DefaultDebounce coalesces the bursts of events editors produce on save.
const DefaultDebounce = 100 * time.Millisecond

// ReloadFunc receives each reloaded configuration, or the error that
// prevented loading it.
type ReloadFunc func(Config, error)

// Watch calls fn with the reloaded file each time path changes. It blocks
// until ctx is done. The parent directory is watched so that files
// replaced by rename are still seen.
func Watch(ctx context.Context, path string, fn ReloadFunc) error {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("expanding %s: %w", path, err)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(DefaultDebounce)
			} else {
				timer.Reset(DefaultDebounce)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			fn(LoadFile(abs))

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			fn(Config{}, fmt.Errorf("watching %s: %w", abs, err))
		}
	}
}
