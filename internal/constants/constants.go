package constants

import "time"

const (
	Version        = `0.1.0`
	ConfigFile     = `cfg`
	ConfigFileType = `yaml`
	ConfigDir      = `/.fern/`

	// NoteExtension is the only file type indexed from a vault.
	NoteExtension = `.md`

	// SaveDebounce is the quiet period after the last edit before an
	// automatic save fires.
	SaveDebounce = 500 * time.Millisecond

	// StatusWindow is how long transient save/reload statuses stay visible
	// before reverting to idle.
	StatusWindow = 1500 * time.Millisecond
)
