// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period used when Options.Debounce is unset.
// Editors commonly write a temp file and rename it; both events land in one batch.
const DefaultDebounce = 300 * time.Millisecond

var (
	// ErrAlreadyStarted is returned by a second call to Run.
	ErrAlreadyStarted = errors.New("watcher already started")

	// ErrInvalidPattern is the sentinel error wrapped by InvalidPatternError.
	ErrInvalidPattern = errors.New("invalid watch pattern")
)

type (
	// ChangeFunc receives the changed file names, relative to the watched
	// directory and sorted.
	ChangeFunc func(ctx context.Context, changed []string) error

	// Options configures a Watcher.
	Options struct {
		// Dir is the directory to observe. Empty means the working directory.
		Dir string
		// Patterns select which file names trigger OnChange. Empty matches every file.
		Patterns []string
		// Debounce is the quiet period before OnChange fires.
		Debounce time.Duration
		// OnChange is called once per batch of changes.
		OnChange ChangeFunc
		// Stderr receives callback and watcher diagnostics. Nil means os.Stderr.
		Stderr io.Writer
	}

	// InvalidPatternError is returned by New for a malformed glob.
	InvalidPatternError struct {
		Pattern string
		Err     error
	}

	// Watcher observes a directory and invokes OnChange for matching changes.
	Watcher struct {
		opts     Options
		dir      string
		fsw      *fsnotify.Watcher
		stderr   io.Writer
		debounce time.Duration
		started  atomic.Bool
	}
)

// Error implements the error interface for InvalidPatternError.
func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid watch pattern %q: %v", e.Pattern, e.Err)
}

// Unwrap returns ErrInvalidPattern for errors.Is() compatibility.
func (e *InvalidPatternError) Unwrap() error { return ErrInvalidPattern }

// ForFile returns Options observing the directory of path, triggered only by
// changes to path itself.
func ForFile(path string, onChange ChangeFunc) Options {
	return Options{
		Dir:      filepath.Dir(path),
		Patterns: []string{filepath.Base(path)},
		OnChange: onChange,
	}
}

// New validates opts and registers the directory with fsnotify.
func New(opts Options) (*Watcher, error) {
	for _, pat := range opts.Patterns {
		if !doublestar.ValidatePattern(pat) {
			return nil, &InvalidPatternError{Pattern: pat, Err: doublestar.ErrBadPattern}
		}
	}

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve %q: %w", dir, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create watcher: %w", err)
	}
	if err := fsw.Add(abs); err != nil {
		fsw.Close() //nolint:errcheck // best-effort cleanup
		return nil, fmt.Errorf("watch: add %q: %w", abs, err)
	}

	w := &Watcher{
		opts:     opts,
		dir:      abs,
		fsw:      fsw,
		stderr:   opts.Stderr,
		debounce: opts.Debounce,
	}
	if w.stderr == nil {
		w.stderr = os.Stderr
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}
	return w, nil
}

// Dir returns the absolute directory being observed.
func (w *Watcher) Dir() string { return w.dir }

// Run processes events until ctx is cancelled. It returns nil on
// cancellation and an error when the underlying watcher breaks. Run may be
// called only once.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	defer w.fsw.Close() //nolint:errcheck // nothing to report after shutdown

	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		timer   *time.Timer
		busy    atomic.Bool
	)

	fire := func() {
		if ctx.Err() != nil {
			return
		}
		// A slow callback keeps its batch; the next one is rescheduled.
		if !busy.CompareAndSwap(false, true) {
			mu.Lock()
			timer.Reset(w.debounce)
			mu.Unlock()
			return
		}
		defer busy.Store(false)

		mu.Lock()
		changed := slices.Sorted(maps.Keys(pending))
		clear(pending)
		mu.Unlock()
		if len(changed) == 0 || w.opts.OnChange == nil {
			return
		}
		if err := w.opts.OnChange(ctx, changed); err != nil {
			fmt.Fprintf(w.stderr, "watch: %v\n", err)
		}
	}

	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: event channel closed")
			}
			// Chmod alone does not change content.
			if evt.Op == fsnotify.Chmod {
				continue
			}
			name, err := filepath.Rel(w.dir, evt.Name)
			if err != nil || !w.matches(name) {
				continue
			}
			mu.Lock()
			pending[name] = struct{}{}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: error channel closed")
			}
			if isFatalFsnotifyError(err) {
				return fmt.Errorf("watch: %w", err)
			}
			fmt.Fprintf(w.stderr, "watch: %v\n", err)
		}
	}
}

func (w *Watcher) matches(name string) bool {
	if len(w.opts.Patterns) == 0 {
		return true
	}
	name = filepath.ToSlash(name)
	return slices.ContainsFunc(w.opts.Patterns, func(pat string) bool {
		ok, err := doublestar.Match(pat, name)
		return err == nil && ok
	})
}
