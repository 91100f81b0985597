package new

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fernnotes/fern/internal/pathutil"
	"github.com/fernnotes/fern/internal/state"
	"github.com/fernnotes/fern/internal/tui/editor"
)

func NewCmdNew() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "new [name]",
		Aliases: []string{"n"},
		Short:   "Create a note and start editing it.",
		Long: `Creates an empty note in the vault, nested folders included, and opens
it in the editor. The name may contain a subdirectory, like "projects/roadmap".`,
		Example: "fern new ideas/garden",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			workspace := viper.GetString("workspace")

			s, err := state.NewState(workspace)
			if err != nil {
				return err
			}
			defer s.Close()

			path, err := s.Handler.Create(args[0])
			if err != nil {
				return err
			}

			rel, err := pathutil.VaultRelative(s.Vault, path)
			if err != nil {
				return err
			}
			s.Index.QueueUpdate(rel)

			idx, err := s.Index.AcquireSnapshot()
			if err != nil {
				return fmt.Errorf("failed to index vault: %w", err)
			}

			rec, ok := idx.ByRelativePath(rel)
			if !ok {
				return fmt.Errorf("created note %s is missing from the index", rel)
			}

			m, err := editor.NewModel(s)
			if err != nil {
				return err
			}
			m.OpenInitial(rec)

			p := tea.NewProgram(m, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return err
			}
			return nil
		},
	}

	return cmd
}
