package open

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fernnotes/fern/internal/state"
	"github.com/fernnotes/fern/internal/tui/editor"
	"github.com/fernnotes/fern/pkg/fzf"
)

func NewCmdOpen() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "open [query]",
		Aliases: []string{"o"},
		Short:   "Pick a note with the fuzzy finder and edit it.",
		Long: `Shows the vault's notes in a fuzzy finder with a markdown preview.
The selected note opens directly in the editor.`,
		Example: "fern open meeting",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			workspace := viper.GetString("workspace")

			s, err := state.NewState(workspace)
			if err != nil {
				return err
			}
			defer s.Close()

			idx, err := s.Index.AcquireSnapshot()
			if err != nil {
				return fmt.Errorf("failed to index vault: %w", err)
			}

			query := ""
			if len(args) > 0 {
				query = args[0]
			}

			finder := fzf.NewFuzzyFinder(idx, "Select note to open.")
			rec, err := finder.Run(query)
			if err != nil {
				if errors.Is(err, fzf.ErrNoSelection) {
					fmt.Fprintln(cmd.OutOrStdout(), "No note selected")
					return nil
				}
				return err
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
