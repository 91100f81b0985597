package workspace

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fernnotes/fern/internal/config"
)

func NewCmdWorkspace(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workspace",
		Aliases: []string{"ws"},
		Short:   "Manage workspaces",
	}

	cmd.AddCommand(
		newCmdWorkspaceList(cfg),
		newCmdWorkspaceSwitch(cfg),
		newCmdWorkspaceAdd(cfg),
		newCmdWorkspaceRemove(cfg),
	)

	return cmd
}

func newCmdWorkspaceList(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured workspaces",
		RunE: func(cmd *cobra.Command, _ []string) error {
			names := cfg.WorkspaceNames()
			if len(names) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No workspaces configured")
				return nil
			}

			for _, name := range names {
				marker := " "
				if name == cfg.CurrentWorkspace {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, name)
			}

			return nil
		},
	}
}

func newCmdWorkspaceSwitch(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "switch [name]",
		Short: "Switch the active workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(args[0])
			if target == "" {
				return fmt.Errorf("workspace name cannot be empty")
			}

			if err := cfg.SwitchWorkspace(target); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Switched to workspace %q\n", target)
			return nil
		},
	}
}

func newCmdWorkspaceAdd(cfg *config.Config) *cobra.Command {
	var name string
	var vault string
	var makeCurrent bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new workspace",
		RunE: func(cmd *cobra.Command, _ []string) error {
			name = strings.TrimSpace(name)
			if name == "" {
				return fmt.Errorf("workspace name is required")
			}
			vault = strings.TrimSpace(vault)
			if vault == "" {
				return fmt.Errorf("vault path is required")
			}

			if err := cfg.AddWorkspace(name, vault, makeCurrent); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added workspace %q\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Name of the new workspace")
	cmd.Flags().StringVar(&vault, "vault", "", "Path to the workspace vault")
	cmd.Flags().
		BoolVar(&makeCurrent, "current", false, "Switch to the new workspace after creation")

	return cmd
}

func newCmdWorkspaceRemove(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "remove [name]",
		Short: "Remove an existing workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if name == "" {
				return fmt.Errorf("workspace name cannot be empty")
			}

			if err := cfg.RemoveWorkspace(name); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed workspace %q\n", name)
			return nil
		},
	}
}
