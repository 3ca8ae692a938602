// SPDX-License-Identifier: MIT

package channellist

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	xglog "github.com/ManuGH/dvbchannels/internal/log"
	"github.com/ManuGH/dvbchannels/internal/metrics"
	"github.com/fsnotify/fsnotify"
)

// WatcherConfig configures a Watcher.
type WatcherConfig struct {
	Path     string
	Store    *Store
	Options  Options
	Debounce time.Duration
	// OnReload, when set, is called after every reload attempt.
	OnReload func(*List, error)
}

// Watcher reloads a channel list into a Store whenever the file changes.
// A reload that fails keeps the previous list active.
type Watcher struct {
	cfg WatcherConfig
}

// NewWatcher creates a Watcher; call Run to start it.
func NewWatcher(cfg WatcherConfig) *Watcher {
	return &Watcher{cfg: cfg}
}

// Run watches until ctx is cancelled. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	logger := xglog.WithComponentFromContext(ctx, "channellist-watch")

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify.NewWatcher: %w", err)
	}
	defer func() {
		_ = fw.Close()
	}()

	// Watch the parent directory so atomic replacements are seen.
	dir := filepath.Dir(w.cfg.Path)
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watch directory %s: %w", dir, err)
	}
	target := filepath.Base(w.cfg.Path)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return errors.New("watcher channel closed")
			}
			if filepath.Base(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.cfg.Debounce)
			} else {
				timer.Reset(w.cfg.Debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			w.reload(ctx)
		case err, ok := <-fw.Errors:
			if !ok {
				return errors.New("watcher error channel closed")
			}
			logger.Warn().Err(err).Msg("fsnotify watcher error")
		}
	}
}

func (w *Watcher) reload(ctx context.Context) {
	logger := xglog.WithComponentFromContext(ctx, "channellist-watch")

	l, err := Load(ctx, w.cfg.Path, w.cfg.Options)
	metrics.IncListReload(err)
	if err != nil {
		logger.Error().Err(err).Str(xglog.FieldPath, w.cfg.Path).Msg("channel list reload failed, keeping previous list")
	} else {
		w.cfg.Store.Replace(l)
		logger.Info().
			Str(xglog.FieldPath, w.cfg.Path).
			Int(xglog.FieldChannels, l.Len()).
			Int(xglog.FieldRejected, l.Rejected()).
			Msg("channel list reloaded")
	}
	if w.cfg.OnReload != nil {
		w.cfg.OnReload(l, err)
	}
}
