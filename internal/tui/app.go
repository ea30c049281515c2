package tui

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/focusgrid/internal/fixture"
)

// App wraps the Bubbletea program
type App struct {
	program *tea.Program
	model   Model
}

// New creates a new demo application for f
func New(f *fixture.Fixture, opts Options) (*App, error) {
	model, err := NewModel(f, opts)
	if err != nil {
		return nil, err
	}
	return &App{model: model}, nil
}

// Run starts the demo and blocks until the user quits or ctx is done.
// It returns the final model so callers can report the selection.
func (a *App) Run(ctx context.Context) (Model, error) {
	a.program = tea.NewProgram(
		a.model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigChan)

	go func() {
		if _, ok := <-sigChan; ok && a.program != nil {
			a.program.Send(tea.Quit())
		}
	}()

	final, err := a.program.Run()
	if m, ok := final.(Model); ok {
		a.model = m
	}
	return a.model, err
}
