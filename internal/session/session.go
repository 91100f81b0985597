// Package session owns the currently open note: its editable buffer, save
// lifecycle, and tolerance of external edits to the same file.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/fernnotes/fern/internal/constants"
	"github.com/fernnotes/fern/internal/vault"
)

// LoadState tracks the open-document lifecycle.
type LoadState int

const (
	LoadIdle LoadState = iota
	Loading
	Loaded
	LoadFailed
)

// SaveStatus is the transient persistence indicator shown to the user. Saved
// and ReloadedExternally revert to SaveIdle after the status window elapses.
type SaveStatus int

const (
	SaveIdle SaveStatus = iota
	Saving
	Saved
	ReloadedExternally
)

// EventKind is the discriminated change kind delivered by a file watch.
type EventKind int

const (
	Modified EventKind = iota
	Created
)

// FileSystem abstracts the read/write primitives the session needs.
type FileSystem interface {
	ReadFile(path string) (string, error)
	WriteFile(path, content string) error
	Exists(path string) bool
}

// WatchFunc attaches a change watch to one file path and returns a detach
// function.
type WatchFunc func(path string, onEvent func(EventKind)) (func(), error)

// Timer is the cancellable handle returned by the injected timer factory.
// *time.Timer satisfies it.
type Timer interface {
	Stop() bool
}

// Snapshot is the presentation-facing view of the session state.
type Snapshot struct {
	ActiveFile *vault.FileRecord
	Buffer     string
	LoadState  LoadState
	Dirty      bool
	SaveStatus SaveStatus
	Err        string
}

// Session is single-writer: one note is active at a time, and switching away
// flushes any pending save before the watch is detached.
type Session struct {
	mu sync.Mutex

	fs       FileSystem
	watch    WatchFunc
	newTimer func(time.Duration, func()) Timer

	active     *vault.FileRecord
	buffer     string
	loadState  LoadState
	dirty      bool
	saveStatus SaveStatus
	errMsg     string

	// suppressWatch is true for the whole duration of a write this session
	// initiated, so the watch event that write triggers is recognized as an
	// echo and ignored.
	suppressWatch bool

	// generation invalidates completions of operations that started before
	// the session moved to another file.
	generation int

	detachWatch func()
	debounce    Timer
	statusTimer Timer

	onUpdate func()
	onReload func(content string)
}

// New constructs a session over the given file system and watch capability.
// Nil arguments select the real OS-backed implementations.
func New(fs FileSystem, watch WatchFunc) *Session {
	if fs == nil {
		fs = osFileSystem{}
	}
	s := &Session{
		fs:    fs,
		watch: watch,
		newTimer: func(d time.Duration, fn func()) Timer {
			return time.AfterFunc(d, fn)
		},
	}
	if s.watch == nil {
		s.watch = watchFile
	}
	return s
}

// OnUpdate registers a callback fired after any state change, for the
// presentation layer to re-render.
func (s *Session) OnUpdate(fn func()) {
	s.mu.Lock()
	s.onUpdate = fn
	s.mu.Unlock()
}

// OnExternalReload registers a callback fired when the buffer was replaced by
// on-disk content. The editable surface must be rebuilt from the fresh
// content; it cannot be patched in place.
func (s *Session) OnExternalReload(fn func(content string)) {
	s.mu.Lock()
	s.onReload = fn
	s.mu.Unlock()
}

// Snapshot returns a copy of the observable session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Buffer:     s.buffer,
		LoadState:  s.loadState,
		Dirty:      s.dirty,
		SaveStatus: s.saveStatus,
		Err:        s.errMsg,
	}
	if s.active != nil {
		rec := *s.active
		snap.ActiveFile = &rec
	}
	return snap
}

// Open makes file the active note. A dirty previous note is persisted
// synchronously before anything else happens; if that flush fails the switch
// is aborted so the unsaved buffer and the error banner stay in place. The
// previous watch is only detached once the new file has been read
// successfully, so a failed read leaves the previous document displayed with a
// non-fatal error banner.
func (s *Session) Open(file vault.FileRecord) {
	s.mu.Lock()
	if s.debounce != nil {
		s.debounce.Stop()
		s.debounce = nil
	}
	if s.active != nil && s.dirty {
		if err := s.flushLocked(); err != nil {
			s.mu.Unlock()
			s.notify()
			return
		}
	}

	gen := s.generation
	s.loadState = Loading
	s.mu.Unlock()
	s.notify()

	content, err := s.fs.ReadFile(file.AbsolutePath)

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return
	}

	if err != nil {
		s.loadState = LoadFailed
		s.errMsg = fmt.Sprintf("failed to open %s: %v", file.RelativePath, err)
		s.mu.Unlock()
		s.notify()
		return
	}

	if s.detachWatch != nil {
		s.detachWatch()
		s.detachWatch = nil
	}
	if s.statusTimer != nil {
		s.statusTimer.Stop()
		s.statusTimer = nil
	}

	s.generation++
	gen = s.generation

	rec := file
	s.active = &rec
	s.buffer = content
	s.dirty = false
	s.loadState = Loaded
	s.errMsg = ""
	s.saveStatus = SaveIdle

	detach, watchErr := s.watch(file.AbsolutePath, func(kind EventKind) {
		s.handleWatchEvent(gen, kind)
	})
	if watchErr != nil {
		s.errMsg = fmt.Sprintf("failed to watch %s: %v", file.RelativePath, watchErr)
	} else {
		s.detachWatch = detach
	}
	s.mu.Unlock()
	s.notify()
}

// Edit replaces the buffer and restarts the trailing-edge save debounce: at
// most one write fires per quiet period, never mid keystroke burst.
func (s *Session) Edit(content string) {
	s.mu.Lock()
	if s.active == nil {
		s.mu.Unlock()
		return
	}

	s.buffer = content
	s.dirty = true
	s.errMsg = ""

	if s.debounce != nil {
		s.debounce.Stop()
	}
	gen := s.generation
	s.debounce = s.newTimer(constants.SaveDebounce, func() {
		s.persist(gen)
	})
	s.mu.Unlock()
	s.notify()
}

// Persist writes the buffer to the active file immediately.
func (s *Session) Persist() {
	s.mu.Lock()
	gen := s.generation
	s.mu.Unlock()
	s.persist(gen)
}

func (s *Session) persist(gen int) {
	s.mu.Lock()
	if gen != s.generation || s.active == nil {
		s.mu.Unlock()
		return
	}

	path := s.active.AbsolutePath
	rel := s.active.RelativePath
	content := s.buffer
	s.saveStatus = Saving
	s.suppressWatch = true
	s.mu.Unlock()
	s.notify()

	err := s.fs.WriteFile(path, content)

	s.mu.Lock()
	s.suppressWatch = false

	if gen != s.generation {
		s.mu.Unlock()
		return
	}

	if err != nil {
		// The buffer is kept and dirty stays true so nothing is lost; the
		// next edit re-arms the debounce and retries.
		s.errMsg = fmt.Sprintf("failed to save %s: %v", rel, err)
		s.saveStatus = SaveIdle
		s.mu.Unlock()
		s.notify()
		return
	}

	// Only mark clean if no newer edit landed while the write was in
	// flight.
	if s.buffer == content {
		s.dirty = false
	}
	s.saveStatus = Saved
	s.scheduleStatusRevertLocked(Saved)
	s.mu.Unlock()
	s.notify()
}

// SwitchAway flushes and detaches the current note without opening a new one.
// It reports whether teardown completed; a failed flush keeps the note active
// with its unsaved buffer and error banner intact.
func (s *Session) SwitchAway() bool {
	s.mu.Lock()
	ok := s.switchAwayLocked()
	s.mu.Unlock()
	s.notify()
	return ok
}

// Close tears the session down.
func (s *Session) Close() {
	s.SwitchAway()
}

// ClearError dismisses the current error banner.
func (s *Session) ClearError() {
	s.mu.Lock()
	s.errMsg = ""
	s.mu.Unlock()
	s.notify()
}

func (s *Session) switchAwayLocked() bool {
	if s.debounce != nil {
		s.debounce.Stop()
		s.debounce = nil
	}
	if s.statusTimer != nil {
		s.statusTimer.Stop()
		s.statusTimer = nil
	}

	if s.active != nil && s.dirty {
		if err := s.flushLocked(); err != nil {
			return false
		}
	}

	if s.detachWatch != nil {
		s.detachWatch()
		s.detachWatch = nil
	}

	s.active = nil
	s.buffer = ""
	s.loadState = LoadIdle
	s.saveStatus = SaveIdle
	s.generation++
	return true
}

// flushLocked persists the buffer synchronously and reports failure. On error
// the buffer stays dirty and the banner is set, so callers must not discard
// the document. Callers hold s.mu and have verified the session is dirty with
// an active file.
func (s *Session) flushLocked() error {
	path := s.active.AbsolutePath
	rel := s.active.RelativePath
	content := s.buffer

	s.suppressWatch = true
	err := s.fs.WriteFile(path, content)
	s.suppressWatch = false

	if err != nil {
		s.errMsg = fmt.Sprintf("failed to save %s: %v", rel, err)
		return err
	}
	s.dirty = false
	return nil
}

func (s *Session) handleWatchEvent(gen int, kind EventKind) {
	if kind != Modified && kind != Created {
		return
	}

	s.mu.Lock()
	if gen != s.generation || s.active == nil {
		s.mu.Unlock()
		return
	}
	if s.suppressWatch {
		// Echo of our own write.
		s.mu.Unlock()
		return
	}
	path := s.active.AbsolutePath
	rel := s.active.RelativePath
	s.mu.Unlock()

	content, err := s.fs.ReadFile(path)

	s.mu.Lock()
	if gen != s.generation || s.active == nil {
		s.mu.Unlock()
		return
	}

	if err != nil {
		s.errMsg = fmt.Sprintf("failed to reload %s: %v", rel, err)
		s.mu.Unlock()
		s.notify()
		return
	}

	if content == s.buffer {
		s.mu.Unlock()
		return
	}

	s.buffer = content
	s.dirty = false
	s.saveStatus = ReloadedExternally
	s.scheduleStatusRevertLocked(ReloadedExternally)
	reload := s.onReload
	s.mu.Unlock()

	if reload != nil {
		reload(content)
	}
	s.notify()
}

// scheduleStatusRevertLocked arms the display-window timer that flips the
// transient status back to idle. Callers hold s.mu.
func (s *Session) scheduleStatusRevertLocked(status SaveStatus) {
	if s.statusTimer != nil {
		s.statusTimer.Stop()
	}
	gen := s.generation
	s.statusTimer = s.newTimer(constants.StatusWindow, func() {
		s.mu.Lock()
		if gen == s.generation && s.saveStatus == status {
			s.saveStatus = SaveIdle
			s.mu.Unlock()
			s.notify()
			return
		}
		s.mu.Unlock()
	})
}

func (s *Session) notify() {
	s.mu.Lock()
	fn := s.onUpdate
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}
