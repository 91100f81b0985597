package root

import (
	"github.com/MakeNowJust/heredoc/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fernnotes/fern/internal/config"
	"github.com/fernnotes/fern/internal/constants"
	"github.com/fernnotes/fern/internal/state"
	"github.com/fernnotes/fern/internal/tui/editor"
	"github.com/fernnotes/fern/pkg/cmd/initialize"
	"github.com/fernnotes/fern/pkg/cmd/new"
	"github.com/fernnotes/fern/pkg/cmd/open"
	"github.com/fernnotes/fern/pkg/cmd/search"
	"github.com/fernnotes/fern/pkg/cmd/theme"
	"github.com/fernnotes/fern/pkg/cmd/workspace"
)

func NewCmdRoot(cfg *config.Config) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:   "fern",
		Short: "Edit and navigate a local markdown vault.",
		Long: heredoc.Doc(`
			fern is a terminal editor for a folder of markdown notes. It keeps
			the vault indexed while you work, follows [[wikilinks]], tracks
			navigation history, and saves edits automatically.
		`),
		Example: heredoc.Doc(`
			fern
			fern open daily
			fern search project
		`),
		Version:      constants.Version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := state.NewState(viper.GetString("workspace"))
			if err != nil {
				return err
			}
			defer s.Close()

			m, err := editor.NewModel(s)
			if err != nil {
				return err
			}

			p := tea.NewProgram(m, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return err
			}
			return nil
		},
	}

	cmd.PersistentFlags().
		StringP("workspace", "w", "", "Workspace to operate in for this invocation")
	viper.BindPFlag(
		"workspace",
		cmd.PersistentFlags().Lookup("workspace"),
	)

	cmd.AddCommand(
		initialize.NewCmdInit(cfg),
		new.NewCmdNew(),
		open.NewCmdOpen(),
		search.NewCmdSearch(),
		theme.NewCmdTheme(cfg),
		workspace.NewCmdWorkspace(cfg),
	)

	return cmd, nil
}
