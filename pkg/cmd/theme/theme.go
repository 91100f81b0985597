package theme

import (
	"fmt"

	"github.com/erikgeiser/promptkit/selection"
	"github.com/spf13/cobra"

	"github.com/fernnotes/fern/internal/config"
)

func NewCmdTheme(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "theme [name]",
		Short:   "Set the editor color theme.",
		Long:    "Persists the light/dark preference. Without an argument, prompts for a selection.",
		Example: "fern theme dark",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			choice := ""
			if len(args) > 0 {
				choice = args[0]
			} else {
				sel := selection.New("Select a theme.", []string{"dark", "light"})
				sel.Filter = nil

				picked, err := sel.RunPrompt()
				if err != nil {
					return err
				}
				choice = picked
			}

			if err := cfg.SetTheme(choice); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %q\n", choice)
			return nil
		},
	}

	return cmd
}
