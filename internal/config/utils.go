package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fernnotes/fern/internal/constants"
)

// ConfigInitError marks setup problems the user fixes by running the init
// flow, as opposed to config files that are present but malformed.
type ConfigInitError struct {
	msg string
}

func (e *ConfigInitError) Error() string {
	return e.msg
}

func GetConfigPath(homeDir string) string {
	return filepath.Join(
		homeDir,
		constants.ConfigDir,
		constants.ConfigFile+"."+constants.ConfigFileType,
	)
}

// Bootstrap creates the config file when none is present and loads it. It
// does not require a vault directory yet, so setup commands can run against
// the result.
func Bootstrap(homeDir string) (*Config, error) {
	configPath := GetConfigPath(homeDir)
	configDir := filepath.Dir(configPath)

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		file, err := os.Create(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create config file: %w", err)
		}
		file.Close()
	} else if err != nil {
		return nil, fmt.Errorf("failed to check config file existence: %w", err)
	}

	cfg, err := Load(homeDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// EnsureConfigExists creates an empty config file when none is present and
// verifies the loaded config names a usable vault.
func EnsureConfigExists(homeDir string) error {
	cfg, err := Bootstrap(homeDir)
	if err != nil {
		return err
	}

	if cfg.CurrentWorkspace == "" {
		return &ConfigInitError{msg: "no current workspace is configured"}
	}

	ws, err := cfg.ActiveWorkspace()
	if err != nil {
		return err
	}

	if strings.TrimSpace(ws.VaultDir) == "" {
		return &ConfigInitError{
			msg: "no vault directory is configured; run 'fern init <dir>' first",
		}
	}

	return nil
}
