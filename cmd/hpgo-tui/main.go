package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/hpgo/internal/calculation"
	"github.com/rgehrsitz/hpgo/internal/config"
	"github.com/rgehrsitz/hpgo/internal/tui"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: hpgo-tui <plan-file>")
		os.Exit(1)
	}
	planPath := os.Args[1]

	if _, err := os.Stat(planPath); os.IsNotExist(err) {
		fmt.Printf("Error: Plan file not found: %s\n", planPath)
		os.Exit(1)
	}

	// Service settings come from HPGO_CONFIG and HPGO_* variables only
	cfg, err := config.LoadServiceConfig(os.Getenv("HPGO_CONFIG"))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	model := tui.NewModel(planPath, calculation.NewCalculationEngine(), cfg.Comparison.MaxViableYears)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
