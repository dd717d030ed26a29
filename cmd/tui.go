package cmd

import (
	"fmt"

	"dayspend/internal/tui"
	"dayspend/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive dashboard",
	Long:  "Opens the full-screen dashboard. First run starts with a setup wizard.",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	eng, cfg, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	theme.SetActive(cfg.Appearance.Theme)

	// Credit any salary that came due since the last run before the
	// dashboard renders its first frame.
	eng.CheckAndProcessSalary()

	app := tui.NewApp(eng, cfg)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}

	reportSaveError(eng)
	return nil
}
