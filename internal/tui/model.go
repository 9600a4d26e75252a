// Package tui hosts a flip digit in the terminal with bubbletea. The digit is
// painted into a raster canvas and shown as half-block cells.
package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/go-drift/flipclock/pkg/animation"
	"github.com/go-drift/flipclock/pkg/engine"
	"github.com/go-drift/flipclock/pkg/flip"
	"github.com/go-drift/flipclock/pkg/rendering"
	"github.com/go-drift/flipclock/pkg/theme"
)

const (
	defaultTickInterval  = time.Second
	defaultFrameInterval = 16 * time.Millisecond
)

var (
	statusStyle = lipgloss.NewStyle().Faint(true)
	pausedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E5C07B"))
	doneStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#98C379"))
)

// Options configures a countdown Model.
type Options struct {
	From   int
	Theme  theme.FlipThemeData
	Width  int
	Height int
	// TickInterval is the countdown step. Defaults to one second.
	TickInterval time.Duration
	// FrameInterval is the delay of a frame tick. Defaults to 16ms.
	FrameInterval time.Duration
	Clock         animation.Clock
}

type countdownMsg struct{}

type frameMsg time.Time

// Model is the bubbletea model of the countdown. It owns the engine, the
// digit and the raster canvas; all of them are only touched from Update.
type Model struct {
	opts   Options
	engine *engine.Engine
	digit  *flip.Digit
	canvas *rendering.RasterCanvas

	value         int
	paused        bool
	counting      bool
	frameInFlight bool
	frame         string
	err           error
}

// New builds the model and paints the first frame.
func New(opts Options) (Model, error) {
	if opts.From < 0 {
		return Model{}, fmt.Errorf("countdown start must not be negative, got %d", opts.From)
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return Model{}, fmt.Errorf("invalid canvas size %dx%d", opts.Width, opts.Height)
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = defaultTickInterval
	}
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = defaultFrameInterval
	}
	if opts.Clock == nil {
		opts.Clock = animation.SystemClock{}
	}

	eng := engine.New(
		engine.WithBackground(opts.Theme.Background),
		engine.WithClock(opts.Clock),
	)
	digit, err := flip.New(flip.Config{
		Theme:     opts.Theme,
		Clock:     opts.Clock,
		Scheduler: eng,
	})
	if err != nil {
		return Model{}, err
	}
	eng.SetRoot(digit)
	digit.SetValue(opts.From)

	m := Model{
		opts:     opts,
		engine:   eng,
		digit:    digit,
		canvas:   rendering.NewRasterCanvas(opts.Width, opts.Height),
		value:    opts.From,
		counting: opts.From > 0,
	}
	m.paint()
	return m, nil
}

// Init starts the countdown.
func (m Model) Init() tea.Cmd {
	if !m.counting {
		return nil
	}
	return m.countdownCmd()
}

// Update handles keys, countdown ticks and frame ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case countdownMsg:
		return m.handleCountdown()
	case frameMsg:
		m.frameInFlight = false
		m.paint()
		cmd := m.requestFrame()
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ", "space":
		m.paused = !m.paused
		return m, nil
	case "r":
		m.value = m.opts.From
		m.digit.SetValue(m.value)
		var cmds []tea.Cmd
		if !m.counting && m.value > 0 {
			m.counting = true
			cmds = append(cmds, m.countdownCmd())
		}
		cmds = append(cmds, m.requestFrame())
		batch := tea.Batch(cmds...)
		return m, batch
	}
	return m, nil
}

func (m Model) handleCountdown() (tea.Model, tea.Cmd) {
	if !m.counting {
		return m, nil
	}
	if !m.paused && m.value > 0 {
		m.value--
		m.digit.SetValue(m.value)
	}
	if m.value == 0 {
		m.counting = false
		cmd := m.requestFrame()
		return m, cmd
	}
	frame := m.requestFrame()
	return m, tea.Batch(m.countdownCmd(), frame)
}

func (m Model) countdownCmd() tea.Cmd {
	return tea.Tick(m.opts.TickInterval, func(time.Time) tea.Msg { return countdownMsg{} })
}

// requestFrame arms a frame tick if the engine needs a frame and none is in
// flight. It must be called on the model that Update returns.
func (m *Model) requestFrame() tea.Cmd {
	if m.frameInFlight || !m.engine.NeedsFrame() {
		return nil
	}
	m.frameInFlight = true
	return tea.Tick(m.opts.FrameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m *Model) paint() {
	if !m.engine.NeedsFrame() {
		return
	}
	if _, err := m.engine.StepFrame(m.canvas); err != nil {
		m.err = err
		return
	}
	m.frame = renderHalfBlocks(m.canvas.Image())
}

// Value returns the countdown value.
func (m Model) Value() int {
	return m.value
}

// View renders the last painted frame and a status line.
func (m Model) View() string {
	status := statusStyle.Render("space pause · r reset · q quit")
	switch {
	case m.err != nil:
		status = fmt.Sprintf("error: %v", m.err)
	case m.paused:
		status = pausedStyle.Render("paused") + "  " + status
	case !m.counting && m.value == 0:
		status = doneStyle.Render("done") + "  " + status
	}
	return m.frame + "\n" + status + "\n"
}
