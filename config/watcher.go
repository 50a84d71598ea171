package config

import (
	"context"
	"sync"

	"github.com/edaniels/golog"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/utils"
)

// A Watcher reloads a profile whenever its file changes on disk and delivers
// each successfully parsed revision over a channel. Revisions that fail to
// parse or validate are logged and skipped, so consumers only ever see
// complete profiles.
type Watcher struct {
	path      string
	logger    golog.Logger
	fsWatcher *fsnotify.Watcher
	configs   chan *Config

	cancelCtx               context.Context
	cancelFunc              func()
	activeBackgroundWorkers sync.WaitGroup
}

// revisionBuffer absorbs the bursts of events a single rewrite produces.
const revisionBuffer = 8

// NewWatcher begins watching the profile at path. The file must already
// exist, but it does not have to parse until its first revision.
func NewWatcher(path string, logger golog.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "watching profile")
	}
	if err := fsWatcher.Add(path); err != nil {
		return nil, multierr.Combine(errors.Wrapf(err, "watching profile %q", path), fsWatcher.Close())
	}

	cancelCtx, cancelFunc := context.WithCancel(context.Background())
	w := &Watcher{
		path:       path,
		logger:     logger,
		fsWatcher:  fsWatcher,
		configs:    make(chan *Config, revisionBuffer),
		cancelCtx:  cancelCtx,
		cancelFunc: cancelFunc,
	}
	w.activeBackgroundWorkers.Add(1)
	utils.ManagedGo(w.watch, w.activeBackgroundWorkers.Done)
	return w, nil
}

// Config returns the channel of profile revisions.
func (w *Watcher) Config() <-chan *Config {
	return w.configs
}

func (w *Watcher) watch() {
	for {
		if w.cancelCtx.Err() != nil {
			return
		}
		select {
		case <-w.cancelCtx.Done():
			return
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warnw("profile watch error", "error", err)
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			cfg, err := FromFile(w.path)
			if err != nil {
				w.logger.Warnw("ignoring unreadable profile revision", "error", err)
				continue
			}
			select {
			case w.configs <- cfg:
			case <-w.cancelCtx.Done():
				return
			}
		}
	}
}

// Close stops watching. No more revisions are delivered after it returns.
func (w *Watcher) Close() error {
	w.cancelFunc()
	// closing the fs watcher unblocks the worker's receive
	err := w.fsWatcher.Close()
	w.activeBackgroundWorkers.Wait()
	return err
}
