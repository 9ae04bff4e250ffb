package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/benoctopus/quartertime/internal/config"
	"github.com/benoctopus/quartertime/internal/dashboard"
)

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"ui"},
	Short:   "Open the interactive activity panel",
	Long: `Open a full-screen panel with one button per configured activity,
the current status, and today's timeline. Number keys record activities.

Examples:
  quartertime dashboard`,
	Args: cobra.NoArgs,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return eris.Wrap(err, "failed to load configuration")
	}

	database, trk, err := openTracker()
	if err != nil {
		return err
	}
	defer database.Close()

	model := dashboard.New(trk, cfg)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return eris.Wrap(err, "failed to run dashboard")
	}

	return nil
}
