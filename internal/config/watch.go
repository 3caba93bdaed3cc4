package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/footprint-tools/brig/internal/log"
)

const defaultDebounce = 100 * time.Millisecond

// Watch reloads p whenever its file changes and then calls onChange.
// The parent directory is watched because writes replace the file by
// rename. Watch blocks until ctx is done.
func (p *Provider) Watch(ctx context.Context, onChange func()) error {
	return p.watch(ctx, defaultDebounce, onChange)
}

func (p *Provider) watch(ctx context.Context, debounce time.Duration, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	if err := w.Add(filepath.Dir(p.path)); err != nil {
		return err
	}

	target := filepath.Clean(p.path)
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			// Editors emit bursts of events per save.
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if err := p.Reload(); err != nil {
				log.Warn("config: reload %s: %v", p.path, err)
				continue
			}
			log.Info("config: reloaded %s", p.path)
			if onChange != nil {
				onChange()
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("config: watch %s: %v", p.path, err)
		}
	}
}
