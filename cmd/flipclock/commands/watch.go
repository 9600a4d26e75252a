package commands

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-drift/flipclock/internal/tui"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	From int `help:"Value the countdown starts at" default:"9"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	resolved, err := root.Resolve()
	if err != nil {
		return err
	}
	model, err := tui.New(tui.Options{
		From:   w.From,
		Theme:  resolved.Theme,
		Width:  resolved.Width,
		Height: resolved.Height,
	})
	if err != nil {
		return err
	}
	g.Logger.Debug("Starting countdown", "from", w.From, "width", resolved.Width, "height", resolved.Height)
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
