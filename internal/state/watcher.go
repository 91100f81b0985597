package state

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/fernnotes/fern/internal/constants"
	"github.com/fernnotes/fern/internal/pathutil"
	"github.com/fernnotes/fern/internal/session"
)

// NoteChangedMsg is delivered to the TUI when any note in the vault changes
// on disk. Path is relative to the vault root.
type NoteChangedMsg struct {
	Path string
}

type VaultWatcherErrMsg struct {
	Err error
}

// VaultWatcher watches the whole vault tree with fsnotify and fans events out
// two ways: a vault-wide change callback feeding the index service, and
// per-file subscriptions feeding the document session.
type VaultWatcher struct {
	watcher *fsnotify.Watcher
	vault   string
	done    chan struct{}
	once    sync.Once

	mu       sync.Mutex
	onChange func(string)
	onClose  func()
	subs     map[string]map[int]func(session.EventKind)
	nextSub  int
}

func NewVaultWatcher(vault string) (*VaultWatcher, error) {
	normalizedVault := pathutil.NormalizePath(vault)
	if normalizedVault == "" {
		return nil, errors.New("vault directory cannot be empty")
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	watcher := &VaultWatcher{
		watcher: w,
		vault:   normalizedVault,
		done:    make(chan struct{}),
		subs:    make(map[string]map[int]func(session.EventKind)),
	}

	if err := watcher.addRecursive(normalizedVault); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	return watcher, nil
}

// Start returns a command that blocks until the next relevant vault event and
// reports it as a message. The TUI re-issues the command after each message.
func (w *VaultWatcher) Start() tea.Cmd {
	if w == nil {
		return nil
	}

	return func() tea.Msg {
		for {
			select {
			case <-w.done:
				return nil
			case event, ok := <-w.watcher.Events:
				if !ok {
					return nil
				}

				if event.Op&fsnotify.Create != 0 {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						_ = w.addRecursive(event.Name)
						continue
					}
				}

				if !w.isRelevant(event) {
					continue
				}

				rel, err := w.relativePath(event.Name)
				if err != nil || rel == "" {
					continue
				}

				w.dispatch(event)

				w.mu.Lock()
				onChange := w.onChange
				w.mu.Unlock()
				if onChange != nil {
					onChange(rel)
				}

				return NoteChangedMsg{Path: rel}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return nil
				}
				if err != nil {
					return VaultWatcherErrMsg{Err: err}
				}
			}
		}
	}
}

// WatchFile subscribes to change events for one absolute path. The returned
// function detaches the subscription. Satisfies session.WatchFunc.
func (w *VaultWatcher) WatchFile(path string, onEvent func(session.EventKind)) (func(), error) {
	if w == nil {
		return nil, errors.New("vault watcher is not running")
	}

	normalized := pathutil.NormalizePath(path)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.subs[normalized] == nil {
		w.subs[normalized] = make(map[int]func(session.EventKind))
	}
	id := w.nextSub
	w.nextSub++
	w.subs[normalized][id] = onEvent

	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		if fns, ok := w.subs[normalized]; ok {
			delete(fns, id)
			if len(fns) == 0 {
				delete(w.subs, normalized)
			}
		}
	}, nil
}

func (w *VaultWatcher) dispatch(event fsnotify.Event) {
	normalized := pathutil.NormalizePath(event.Name)

	var kind session.EventKind
	switch {
	case event.Op&fsnotify.Create != 0:
		kind = session.Created
	default:
		// Write, remove, and rename all surface as a modification; the
		// session's re-read reports a vanished file as a banner.
		kind = session.Modified
	}

	w.mu.Lock()
	fns := make([]func(session.EventKind), 0, len(w.subs[normalized]))
	for _, fn := range w.subs[normalized] {
		fns = append(fns, fn)
	}
	w.mu.Unlock()

	for _, fn := range fns {
		fn(kind)
	}
}

func (w *VaultWatcher) Close() error {
	if w == nil {
		return nil
	}

	var closeErr error
	w.once.Do(func() {
		close(w.done)
		closeErr = w.watcher.Close()

		w.mu.Lock()
		onClose := w.onClose
		w.mu.Unlock()
		if onClose != nil {
			onClose()
		}
	})

	return closeErr
}

// OnChange registers a callback that receives relative note paths whenever
// the watcher detects a relevant change.
func (w *VaultWatcher) OnChange(fn func(string)) {
	if w == nil {
		return
	}
	w.mu.Lock()
	w.onChange = fn
	w.mu.Unlock()
}

// OnClose registers a callback that is invoked exactly once when the watcher
// shuts down.
func (w *VaultWatcher) OnClose(fn func()) {
	if w == nil {
		return
	}
	w.mu.Lock()
	w.onClose = fn
	w.mu.Unlock()
}

func (w *VaultWatcher) addRecursive(root string) error {
	normalized := pathutil.NormalizePath(root)
	return filepath.WalkDir(normalized, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrPermission) {
				return filepath.SkipDir
			}
			return err
		}

		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && path != normalized {
			return filepath.SkipDir
		}

		return w.watcher.Add(path)
	})
}

func (w *VaultWatcher) isRelevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	rel, err := w.relativePath(event.Name)
	if err != nil || rel == "" {
		return false
	}

	for _, segment := range strings.Split(rel, "/") {
		if strings.HasPrefix(segment, ".") {
			return false
		}
	}

	return strings.EqualFold(filepath.Ext(rel), constants.NoteExtension)
}

func (w *VaultWatcher) relativePath(path string) (string, error) {
	normalized := pathutil.NormalizePath(path)
	rel, err := pathutil.VaultRelative(w.vault, normalized)
	if err != nil {
		return "", err
	}

	if rel == "." || rel == "" || strings.HasPrefix(rel, "..") {
		return "", nil
	}

	return rel, nil
}
