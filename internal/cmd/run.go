package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"toga/internal/logging"
)

// RunCmd starts the kiosk in the current terminal
type RunCmd struct {
	Dev bool `help:"Enable development mode (shows version info in the header)"`
}

// Run executes the TUI
func (r *RunCmd) Run(cli *CLI) error {
	keys, err := cli.keyBindings()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logging.Logger.Info("Starting toga kiosk", "api_url", cli.Container.API.BaseURL())
	kiosk := cli.Container.NewKiosk(ctx, r.Dev, keys)
	defer kiosk.Close()

	p := tea.NewProgram(kiosk, tea.WithAltScreen())

	logging.Logger.Info("Starting TUI program")
	if _, err := p.Run(); err != nil {
		logging.Logger.Error("TUI program error", "error", err)
		return fmt.Errorf("error running program: %w", err)
	}

	logging.Logger.Info("TUI program exited normally")
	return nil
}
