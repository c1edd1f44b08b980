// Package watchmode implements --watch: after an initial pass, keep
// re-translating any watched file when it changes, debounced and
// strictly serialized with the rest of the translator (spec §2.1).
package watchmode

import (
	"context"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Run watches every directory containing a file in files and invokes
// onChange with the sorted, de-duplicated set of changed paths each time
// the debounce window elapses with pending events. It blocks until ctx
// is canceled or the watcher reports a fatal error.
func Run(ctx context.Context, files []string, debounce time.Duration, onChange func(changed []string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	watched := make(map[string]bool)
	tracked := make(map[string]bool, len(files))
	for _, f := range files {
		abs, _ := filepath.Abs(f)
		tracked[abs] = true
		dir := filepath.Dir(abs)
		if !watched[dir] {
			if err := watcher.Add(dir); err != nil {
				return err
			}
			watched[dir] = true
		}
	}

	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}

	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false
	pendingPaths := map[string]bool{}

	resetDebounce := func(path string) {
		pendingPaths[path] = true
		if pending && !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(debounce)
		pending = true
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			path := filepath.Clean(event.Name)
			if !tracked[path] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			resetDebounce(path)
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return watchErr
		case <-timer.C:
			if !pending {
				continue
			}
			pending = false
			changed := make([]string, 0, len(pendingPaths))
			for p := range pendingPaths {
				changed = append(changed, p)
			}
			sort.Strings(changed)
			pendingPaths = map[string]bool{}
			onChange(changed)
		}
	}
}
