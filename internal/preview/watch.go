package preview

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/aepsite/internal/config"
	"git.home.luguber.info/inful/aepsite/internal/logfields"
	"git.home.luguber.info/inful/aepsite/internal/observability"
)

// watchRoots lists the local source directories to watch. Git sources are
// refreshed on a schedule instead.
func watchRoots(cfg *config.Config) []string {
	var roots []string
	for _, src := range []config.Source{cfg.Sources.AEP, cfg.Sources.Linter, cfg.Sources.Components} {
		if src.Path == "" || src.Remote() {
			continue
		}
		abs, err := filepath.Abs(src.Path)
		if err != nil {
			continue
		}
		if st, err := os.Stat(abs); err == nil && st.IsDir() {
			roots = append(roots, abs)
		}
	}
	return roots
}

// watcher turns filesystem events below its roots into debounced triggers.
type watcher struct {
	fs      *fsnotify.Watcher
	trigger func()
}

func newWatcher(roots []string, trigger func()) (*watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	for _, root := range roots {
		if err := addDirsRecursive(fw, root); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}
	return &watcher{fs: fw, trigger: trigger}, nil
}

func (w *watcher) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handle(ctx, ev)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			observability.WarnContext(ctx, "Watcher error", logfields.Error(err))
		}
	}
}

func (w *watcher) handle(ctx context.Context, ev fsnotify.Event) {
	if shouldIgnoreEvent(ev.Name) {
		return
	}
	if ev.Op.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = addDirsRecursive(w.fs, ev.Name)
		}
	}
	observability.DebugContext(ctx, "Source change detected", logfields.Path(ev.Name), logfields.Op(ev.Op.String()))
	w.trigger()
}

func (w *watcher) Close() error { return w.fs.Close() }

func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			observability.WarnContext(context.Background(), "Watch add failed", logfields.Path(path), logfields.Error(err))
		}
		return nil
	})
}

// shouldIgnoreEvent returns true for filesystem events that should not trigger rebuilds.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}
	return base == "Thumbs.db" || base == "4913"
}

// debounce returns a function that calls fn once calls have stopped for
// delay.
func debounce(delay time.Duration, fn func()) func() {
	var mu sync.Mutex
	var timer *time.Timer
	return func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(delay, fn)
	}
}
