package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"diskscope/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui <path>",
	Short: "Browse a directory interactively",
	Long:  `Scan a directory and open an interactive browser over its tree and insights.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	snapshot, bundle, err := runPipeline(args[0], false)
	if err != nil {
		return err
	}

	model := tui.NewModel(snapshot, bundle)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
