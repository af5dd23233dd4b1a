package docload

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/grovetools/lens/logging"
)

// Watcher re-decodes a document whenever the file changes on disk, so the
// viewer can rebuild its tree in place. Rapid change bursts (editors often
// write a file several times on save) are debounced.
type Watcher struct {
	watcher    *fsnotify.Watcher
	path       string
	format     Format
	debounce   time.Duration
	onReload   func(doc interface{}, err error)
	logger     *logrus.Entry
	mu         sync.Mutex
	lastChange time.Time
}

// NewWatcher watches the document at path. The onReload callback receives
// the freshly decoded document, or the decode error, after each change.
// Watching the containing directory rather than the file itself keeps the
// watch alive across editors that replace the file on save.
func NewWatcher(path string, format Format, debounceMs int, onReload func(interface{}, error)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		fsw.Close()
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	if debounceMs <= 0 {
		debounceMs = 100
	}

	return &Watcher{
		watcher:  fsw,
		path:     abs,
		format:   format,
		debounce: time.Duration(debounceMs) * time.Millisecond,
		onReload: onReload,
		logger:   logging.NewLogger("docload"),
	}, nil
}

// Start blocks processing change events until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			changed, err := filepath.Abs(event.Name)
			if err != nil || changed != w.path {
				continue
			}
			w.logger.Debugf("fsnotify event: %s op=%v", event.Name, event.Op)
			w.handleChange()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.WithError(err).Warn("watch error")
		case <-ctx.Done():
			return
		}
	}
}

// handleChange debounces and reloads. Only the last event of a burst
// within the debounce window triggers a reload.
func (w *Watcher) handleChange() {
	w.mu.Lock()
	w.lastChange = time.Now()
	stamp := w.lastChange
	w.mu.Unlock()

	time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		stale := w.lastChange != stamp
		w.mu.Unlock()
		if stale {
			return
		}

		doc, err := Load(w.path, w.format)
		if err != nil {
			w.logger.WithError(err).Warnf("reload failed: %s", w.path)
		} else {
			w.logger.Infof("reloaded document: %s", w.path)
		}
		w.onReload(doc, err)
	})
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
