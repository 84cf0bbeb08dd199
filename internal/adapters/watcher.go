package adapters

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"

	"reqtool/internal/ports"
)

// FSWatcherAdapter watches a manifest through fsnotify. The watch is
// placed on the parent directory because editors typically replace the
// file on save, which would drop a watch on the file itself.
type FSWatcherAdapter struct {
	Debounce time.Duration
}

const defaultWatchDebounce = 250 * time.Millisecond

func NewFSWatcherAdapter() FSWatcherAdapter {
	return FSWatcherAdapter{Debounce: defaultWatchDebounce}
}

func (a FSWatcherAdapter) Watch(ctx context.Context, path string, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create file watcher").
			WithCause(err)
	}
	defer watcher.Close()

	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("cannot watch %s", filepath.Dir(target))).
			WithCause(err)
	}

	debounce := a.Debounce
	if debounce <= 0 {
		debounce = defaultWatchDebounce
	}
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				pending = time.After(debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Str("path", target).Msg("watch error")
		case <-pending:
			pending = nil
			onChange()
		}
	}
}

var _ ports.WatchPort = FSWatcherAdapter{}
