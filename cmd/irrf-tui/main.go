package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/irrf/internal/tui"
)

func main() {
	var rulesPath string

	cmd := &cobra.Command{
		Use:   "irrf-tui",
		Short: "Interactive IRRF 2026 simulator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rulesPath != "" {
				if _, err := os.Stat(rulesPath); os.IsNotExist(err) {
					return fmt.Errorf("rules file not found: %s", rulesPath)
				}
			}

			p := tea.NewProgram(
				tui.NewModel(rulesPath),
				tea.WithAltScreen(),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&rulesPath, "rules", "", "Path to a rules file replacing the 2026 table")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
