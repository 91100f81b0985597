package initialize

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fernnotes/fern/internal/config"
)

func NewCmdInit(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "initialize [vault-dir]",
		Aliases: []string{"i", "init"},
		Short:   "Point fern at a markdown vault.",
		Long:    "Sets the vault directory for the active workspace and saves the configuration.",
		Example: "fern init ~/notes",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}

			info, err := os.Stat(dir)
			if err != nil {
				return fmt.Errorf("cannot use vault directory %s: %w", dir, err)
			}
			if !info.IsDir() {
				return fmt.Errorf("%s is not a directory", dir)
			}

			if err := cfg.SetVaultDir(dir); err != nil {
				return err
			}

			fmt.Fprintf(
				cmd.OutOrStdout(),
				"Workspace %q now uses vault %s\n",
				cfg.CurrentWorkspace,
				dir,
			)
			return nil
		},
	}

	return cmd
}
