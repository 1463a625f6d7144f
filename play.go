package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"czardeck/client"
)

// RunClient starts the terminal player against the configured server and
// blocks until the player quits or ctx is cancelled.
func RunClient(ctx context.Context, cfg *Config) error {
	logf(cfg, "START: czardeck v%s connecting to %s", releaseVersion, cfg.server)

	app := client.NewApp(client.NewTransport(cfg.server), cfg.pollInterval)
	program := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))

	_, err := program.Run()
	return err
}
