// Package watch reports template files that change under a directory, batching the
// bursts of events editors produce into one call.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

const DefaultDebounce = 300 * time.Millisecond

// Handler receives the changed paths of one batch, sorted
type Handler func(ctx context.Context, paths []string)

type Options struct {
	// Patterns are doublestar globs matched against paths relative to the watched
	// directory; no patterns matches every file
	Patterns []string
	// Debounce is how long the directory must stay quiet before a batch is delivered
	Debounce time.Duration
}

type Watcher struct {
	dir     string
	opts    Options
	handler Handler
	ready   chan struct{}
}

func New(dir string, opts Options, handler Handler) *Watcher {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	return &Watcher{
		dir:     dir,
		opts:    opts,
		handler: handler,
		ready:   make(chan struct{}),
	}
}

// Ready is closed once every directory is being watched
func (me *Watcher) Ready() <-chan struct{} {
	return me.ready
}

// Match reports whether path, absolute or relative to the watched directory, matches
// one of the patterns
func (me *Watcher) Match(path string) bool {
	if len(me.opts.Patterns) == 0 {
		return true
	}

	rel := path
	if filepath.IsAbs(path) {
		r, err := filepath.Rel(me.dir, path)
		if err != nil {
			return false
		}
		rel = r
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range me.opts.Patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// Run watches until ctx is done. The handler is called from the Run goroutine, so a
// slow handler delays the next batch rather than overlapping it.
func (me *Watcher) Run(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()

	if err := me.addTree(fsw, me.dir); err != nil {
		return errors.Errorf("watching %s: %w", me.dir, err)
	}
	close(me.ready)

	logger.Info().Str("dir", me.dir).Strs("patterns", me.opts.Patterns).Msg("watching")

	pending := map[string]bool{}
	timer := time.NewTimer(me.opts.Debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}

			if event.Has(fsnotify.Create) && isDir(event.Name) {
				if err := me.addTree(fsw, event.Name); err != nil {
					logger.Warn().Err(err).Str("dir", event.Name).Msg("could not watch new directory")
				}
				continue
			}

			// a removed file has nothing to parse, and a rename over the target arrives as Create
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !me.Match(event.Name) {
				continue
			}

			logger.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("change")
			pending[event.Name] = true
			timer.Reset(me.opts.Debounce)

		case <-timer.C:
			paths := make([]string, 0, len(pending))
			for path := range pending {
				paths = append(paths, path)
			}
			sort.Strings(paths)
			pending = map[string]bool{}

			if len(paths) > 0 {
				me.handler(ctx, paths)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("watch error")
		}
	}
}

func (me *Watcher) addTree(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := fsw.Add(path); err != nil {
			return errors.Errorf("adding %s: %w", path, err)
		}
		return nil
	})
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
