package search

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fernnotes/fern/internal/finder"
	"github.com/fernnotes/fern/internal/state"
)

func NewCmdSearch() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "search [query]",
		Aliases: []string{"s"},
		Short:   "Rank vault notes by fuzzy match.",
		Long: heredoc.Doc(`
			Scores every note path against the query the same way the in-editor
			quick switcher does and prints the matches, best first.
		`),
		Example: heredoc.Doc(`
			fern search daily
			fern s "project plan"
		`),
		Args: cobra.ExactArgs(1),
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

			matches := finder.Rank(args[0], idx)
			if len(matches) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No matching notes")
				return nil
			}

			for _, rec := range matches {
				fmt.Fprintln(cmd.OutOrStdout(), rec.RelativePath)
			}
			return nil
		},
	}

	return cmd
}
