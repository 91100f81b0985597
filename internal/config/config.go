package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// SearchConfig tunes how the vault is indexed for the quick switcher.
type SearchConfig struct {
	IgnoredFolders []string `yaml:"ignored_folders" json:"ignored_folders"`
}

// Workspace is one named vault the editor can operate on.
type Workspace struct {
	VaultDir string       `yaml:"vaultdir" json:"vault_dir"`
	Search   SearchConfig `yaml:"search"   json:"search"`
}

// Config is the persisted application state: the known workspaces, which one
// is active, and the single UI preference we keep (light/dark theme).
type Config struct {
	Workspaces       map[string]*Workspace `yaml:"workspaces"        json:"workspaces"`
	CurrentWorkspace string                `yaml:"current_workspace" json:"current_workspace"`
	Theme            string                `yaml:"theme"             json:"theme"`

	home string `yaml:"-"`
}

const defaultWorkspaceName = "main"

// ValidThemes enumerates the accepted theme values.
var ValidThemes = map[string]struct{}{
	"light": {},
	"dark":  {},
}

func newWorkspace() *Workspace {
	return &Workspace{}
}

// Load reads the config file under the provided home directory. A missing or
// empty file yields a default single-workspace config.
func Load(home string) (*Config, error) {
	path := GetConfigPath(home)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{home: home}
	if len(strings.TrimSpace(string(data))) == 0 {
		cfg.Workspaces = map[string]*Workspace{
			defaultWorkspaceName: newWorkspace(),
		}
		cfg.CurrentWorkspace = defaultWorkspaceName
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.ensureInitialized(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) ensureInitialized() error {
	if cfg.Workspaces == nil {
		cfg.Workspaces = make(map[string]*Workspace)
	}
	if len(cfg.Workspaces) == 0 {
		cfg.Workspaces[defaultWorkspaceName] = newWorkspace()
		cfg.CurrentWorkspace = defaultWorkspaceName
	}
	if cfg.CurrentWorkspace == "" {
		cfg.CurrentWorkspace = cfg.WorkspaceNames()[0]
	}
	if cfg.Theme == "" {
		cfg.Theme = "dark"
	}
	if _, ok := ValidThemes[cfg.Theme]; !ok {
		return fmt.Errorf("invalid theme %q: choose 'light' or 'dark'", cfg.Theme)
	}
	if _, ok := cfg.Workspaces[cfg.CurrentWorkspace]; !ok {
		return fmt.Errorf("current workspace %q does not exist", cfg.CurrentWorkspace)
	}
	cfg.syncViperWithActiveWorkspace()
	return nil
}

// syncViperWithActiveWorkspace mirrors the active workspace into viper so
// command call sites can read the effective settings without threading the
// config struct through.
func (cfg *Config) syncViperWithActiveWorkspace() {
	ws, ok := cfg.Workspaces[cfg.CurrentWorkspace]
	if !ok || ws == nil {
		return
	}
	viper.Set("current_workspace", cfg.CurrentWorkspace)
	viper.Set("theme", cfg.Theme)
	syncWorkspaceWithViper(ws)
}

func syncWorkspaceWithViper(ws *Workspace) {
	viper.Set("vaultdir", ws.VaultDir)
	if ws.Search.IgnoredFolders == nil {
		viper.Set("ignored_folders", []string{})
	} else {
		viper.Set("ignored_folders", append([]string(nil), ws.Search.IgnoredFolders...))
	}
}

// ActiveWorkspace returns the workspace the editor currently targets.
func (cfg *Config) ActiveWorkspace() (*Workspace, error) {
	ws, ok := cfg.Workspaces[cfg.CurrentWorkspace]
	if !ok {
		return nil, fmt.Errorf("current workspace %q does not exist", cfg.CurrentWorkspace)
	}
	return ws, nil
}

// WorkspaceNames lists the configured workspaces in stable order.
func (cfg *Config) WorkspaceNames() []string {
	names := make([]string, 0, len(cfg.Workspaces))
	for name := range cfg.Workspaces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SwitchWorkspace makes the named workspace current and saves.
func (cfg *Config) SwitchWorkspace(name string) error {
	if _, ok := cfg.Workspaces[name]; !ok {
		return fmt.Errorf("workspace %q does not exist", name)
	}
	cfg.CurrentWorkspace = name
	cfg.syncViperWithActiveWorkspace()
	return cfg.Save()
}

// AddWorkspace registers a vault directory under a workspace name.
func (cfg *Config) AddWorkspace(name, vaultDir string, makeCurrent bool) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("workspace name cannot be empty")
	}
	if _, ok := cfg.Workspaces[name]; ok {
		return fmt.Errorf("workspace %q already exists", name)
	}

	ws := newWorkspace()
	ws.VaultDir = vaultDir
	cfg.Workspaces[name] = ws
	if makeCurrent {
		cfg.CurrentWorkspace = name
		cfg.syncViperWithActiveWorkspace()
	}
	return cfg.Save()
}

// RemoveWorkspace deletes a workspace. The current workspace cannot be
// removed.
func (cfg *Config) RemoveWorkspace(name string) error {
	if _, ok := cfg.Workspaces[name]; !ok {
		return fmt.Errorf("workspace %q does not exist", name)
	}
	if name == cfg.CurrentWorkspace {
		return fmt.Errorf("cannot remove the current workspace %q", name)
	}
	delete(cfg.Workspaces, name)
	return cfg.Save()
}

// SetVaultDir points the active workspace at a vault directory and saves.
func (cfg *Config) SetVaultDir(dir string) error {
	ws, err := cfg.ActiveWorkspace()
	if err != nil {
		return err
	}
	ws.VaultDir = dir
	cfg.syncViperWithActiveWorkspace()
	return cfg.Save()
}

// SetTheme persists the light/dark preference.
func (cfg *Config) SetTheme(theme string) error {
	if _, ok := ValidThemes[theme]; !ok {
		return fmt.Errorf("invalid theme %q: choose 'light' or 'dark'", theme)
	}
	cfg.Theme = theme
	cfg.syncViperWithActiveWorkspace()
	return cfg.Save()
}

// GetConfigPath returns the path the config is stored at for this instance.
func (cfg *Config) GetConfigPath() string {
	return GetConfigPath(cfg.home)
}

// Save writes the config back to disk.
func (cfg *Config) Save() error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	configPath := cfg.GetConfigPath()
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(configPath, data, 0o644)
}
