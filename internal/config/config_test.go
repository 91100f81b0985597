package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func writeConfig(t testing.TB, home, content string) {
	t.Helper()
	path := GetConfigPath(home)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestLoadEmptyFileYieldsDefaults(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, "")

	cfg, err := Load(home)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.CurrentWorkspace != "main" {
		t.Fatalf("expected default workspace 'main', got %q", cfg.CurrentWorkspace)
	}
	if cfg.Theme != "dark" {
		t.Fatalf("expected default theme 'dark', got %q", cfg.Theme)
	}
}

func TestLoadParsesWorkspacesAndTheme(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, `
workspaces:
  personal:
    vaultdir: /tmp/personal
  work:
    vaultdir: /tmp/work
current_workspace: work
theme: light
`)

	cfg, err := Load(home)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	ws, err := cfg.ActiveWorkspace()
	if err != nil {
		t.Fatalf("ActiveWorkspace returned error: %v", err)
	}
	if ws.VaultDir != "/tmp/work" {
		t.Fatalf("expected /tmp/work, got %q", ws.VaultDir)
	}
	if got := cfg.WorkspaceNames(); len(got) != 2 || got[0] != "personal" {
		t.Fatalf("unexpected workspace names %v", got)
	}
}

func TestLoadRejectsUnknownTheme(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, "theme: sepia\n")

	if _, err := Load(home); err == nil {
		t.Fatal("expected error for unknown theme")
	}
}

func TestSetThemeRoundTrips(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, "")

	cfg, err := Load(home)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if err := cfg.SetTheme("light"); err != nil {
		t.Fatalf("SetTheme returned error: %v", err)
	}
	if err := cfg.SetTheme("sepia"); err == nil {
		t.Fatal("expected error for invalid theme")
	}

	reloaded, err := Load(home)
	if err != nil {
		t.Fatalf("reload returned error: %v", err)
	}
	if reloaded.Theme != "light" {
		t.Fatalf("expected persisted theme 'light', got %q", reloaded.Theme)
	}
}

func TestAddAndSwitchWorkspace(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, "")

	cfg, err := Load(home)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if err := cfg.AddWorkspace("notes", "/tmp/notes", true); err != nil {
		t.Fatalf("AddWorkspace returned error: %v", err)
	}
	if cfg.CurrentWorkspace != "notes" {
		t.Fatalf("expected current workspace 'notes', got %q", cfg.CurrentWorkspace)
	}

	if err := cfg.AddWorkspace("notes", "/elsewhere", false); err == nil {
		t.Fatal("expected error for duplicate workspace")
	}
	if err := cfg.SwitchWorkspace("missing"); err == nil {
		t.Fatal("expected error for unknown workspace")
	}
}

func TestLoadSyncsViperWithActiveWorkspace(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, `
workspaces:
  personal:
    vaultdir: /tmp/personal
  work:
    vaultdir: /tmp/work
    search:
      ignored_folders: [archive]
current_workspace: work
theme: light
`)

	cfg, err := Load(home)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if got := viper.GetString("vaultdir"); got != "/tmp/work" {
		t.Fatalf("expected viper vaultdir /tmp/work, got %q", got)
	}
	if got := viper.GetString("theme"); got != "light" {
		t.Fatalf("expected viper theme light, got %q", got)
	}
	if got := viper.GetStringSlice("ignored_folders"); len(got) != 1 || got[0] != "archive" {
		t.Fatalf("expected viper ignored_folders [archive], got %v", got)
	}

	if err := cfg.SwitchWorkspace("personal"); err != nil {
		t.Fatalf("SwitchWorkspace returned error: %v", err)
	}
	if got := viper.GetString("vaultdir"); got != "/tmp/personal" {
		t.Fatalf("expected viper to follow the switch, got %q", got)
	}
	if got := viper.GetString("current_workspace"); got != "personal" {
		t.Fatalf("expected viper current_workspace personal, got %q", got)
	}
}

func TestEnsureConfigExistsRequiresVaultDir(t *testing.T) {
	home := t.TempDir()

	err := EnsureConfigExists(home)
	if err == nil {
		t.Fatal("expected init error when no vault is configured")
	}
	var initErr *ConfigInitError
	if !errors.As(err, &initErr) {
		t.Fatalf("expected ConfigInitError, got %T: %v", err, err)
	}
	if !strings.Contains(err.Error(), "vault") {
		t.Fatalf("unexpected message %q", err.Error())
	}

	writeConfig(t, home, `
workspaces:
  main:
    vaultdir: /tmp/vault
current_workspace: main
`)
	if err := EnsureConfigExists(home); err != nil {
		t.Fatalf("expected configured vault to pass, got %v", err)
	}
}

func TestBootstrapCreatesMissingConfig(t *testing.T) {
	home := t.TempDir()

	cfg, err := Bootstrap(home)
	if err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if cfg.CurrentWorkspace != "main" {
		t.Fatalf("expected default workspace 'main', got %q", cfg.CurrentWorkspace)
	}

	if _, err := os.Stat(GetConfigPath(home)); err != nil {
		t.Fatalf("expected config file on disk: %v", err)
	}
}

func TestRemoveWorkspace(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, "")

	cfg, err := Load(home)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if err := cfg.AddWorkspace("scratch", "/tmp/scratch", false); err != nil {
		t.Fatalf("AddWorkspace returned error: %v", err)
	}

	if err := cfg.RemoveWorkspace("main"); err == nil {
		t.Fatal("expected error removing the current workspace")
	}
	if err := cfg.RemoveWorkspace("missing"); err == nil {
		t.Fatal("expected error removing an unknown workspace")
	}
	if err := cfg.RemoveWorkspace("scratch"); err != nil {
		t.Fatalf("RemoveWorkspace returned error: %v", err)
	}
	if got := cfg.WorkspaceNames(); len(got) != 1 || got[0] != "main" {
		t.Fatalf("unexpected workspaces after removal: %v", got)
	}
}
