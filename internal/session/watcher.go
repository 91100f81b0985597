package session

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/fernnotes/fern/internal/pathutil"
)

// watchFile is the default WatchFunc. It watches the file's parent directory
// rather than the file itself so the watch survives editors that replace the
// file on save, and filters events down to the one path of interest.
func watchFile(path string, onEvent func(EventKind)) (func(), error) {
	normalized := pathutil.NormalizePath(path)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(normalized)); err != nil {
		w.Close()
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if pathutil.NormalizePath(event.Name) != normalized {
					continue
				}
				switch {
				case event.Op&fsnotify.Create != 0:
					onEvent(Created)
				case event.Op&fsnotify.Write != 0:
					onEvent(Modified)
				}
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	var detached bool
	return func() {
		if detached {
			return
		}
		detached = true
		close(done)
		w.Close()
	}, nil
}
