package state

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/fernnotes/fern/internal/config"
	"github.com/fernnotes/fern/internal/constants"
	"github.com/fernnotes/fern/internal/handler"
	"github.com/fernnotes/fern/internal/history"
	indexsvc "github.com/fernnotes/fern/internal/services/index"
	"github.com/fernnotes/fern/internal/session"
	"github.com/fernnotes/fern/internal/vault"
)

// State wires the pieces of a running editor together: configuration, the
// vault watcher, the shared index service, the document session, and the
// navigation history. Everything downstream receives what it needs from here
// instead of reaching for globals.
type State struct {
	Config        *config.Config
	Workspace     *config.Workspace
	WorkspaceName string
	Handler       *handler.FileHandler
	Session       *session.Session
	History       *history.History
	Index         IndexService
	Watcher       *VaultWatcher
	Home          string
	Vault         string
}

// IndexService exposes the shared vault index snapshots produced by the
// workspace index manager.
type IndexService interface {
	AcquireSnapshot() (*vault.Index, error)
	QueueUpdate(string)
	Stats() indexsvc.Stats
	Close() error
}

func NewState(workspaceOverride string) (*State, error) {
	home, err := GetHomeDir()
	if err != nil {
		return nil, err
	}

	cfg, err := LoadConfig(home)
	if err != nil {
		return nil, err
	}

	if workspaceOverride != "" {
		if err := cfg.SwitchWorkspace(workspaceOverride); err != nil {
			return nil, err
		}
	}

	ws, err := cfg.ActiveWorkspace()
	if err != nil {
		return nil, err
	}

	h := handler.NewFileHandler(ws.VaultDir)

	watcher, err := NewVaultWatcher(ws.VaultDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create vault watcher: %w", err)
	}

	indexService := indexsvc.NewServiceIgnoring(ws.VaultDir, ws.Search.IgnoredFolders)
	watcher.OnChange(func(rel string) {
		indexService.QueueUpdate(rel)
	})
	watcher.OnClose(func() {
		_ = indexService.Close()
	})

	sess := session.New(h, watcher.WatchFile)

	return &State{
		Config:        cfg,
		Workspace:     ws,
		WorkspaceName: cfg.CurrentWorkspace,
		Handler:       h,
		Session:       sess,
		History:       history.New(),
		Index:         indexService,
		Watcher:       watcher,
		Home:          home,
		Vault:         ws.VaultDir,
	}, nil
}

func GetHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory. err: %s", err)
	}
	return home, nil
}

func LoadConfig(home string) (*config.Config, error) {
	viper.AddConfigPath(home + constants.ConfigDir)
	viper.SetConfigName(constants.ConfigFile)
	viper.SetConfigType(constants.ConfigFileType)
	viper.ReadInConfig()

	if err := config.EnsureConfigExists(home); err != nil {
		return nil, err
	}

	return config.Load(home)
}

// Close releases resources associated with the state: the session flush, the
// vault watcher, and the shared index service.
func (s *State) Close() error {
	if s == nil {
		return nil
	}

	var errs []error
	if s.Session != nil {
		s.Session.Close()
		s.Session = nil
	}
	if s.Watcher != nil {
		if err := s.Watcher.Close(); err != nil {
			errs = append(errs, err)
		}
		s.Watcher = nil
	}
	if s.Index != nil {
		if err := s.Index.Close(); err != nil && !errors.Is(err, indexsvc.ErrClosed) {
			errs = append(errs, err)
		}
		s.Index = nil
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
