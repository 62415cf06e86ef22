package app

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/tuidock/internal/config"
)

// TickerMsg represents a periodic tick event for updating the UI.
// This is exported so it can be used by the input package.
type TickerMsg time.Time

// InputHandler is a function type that handles input messages.
// This allows the Update method to delegate to the input package without creating a circular dependency.
type InputHandler func(msg tea.Msg, d *Desktop) (tea.Model, tea.Cmd)

// inputHandler is the registered input handler function.
// This will be set by the main package to break the circular dependency.
var inputHandler InputHandler

// SetInputHandler registers the input handler function.
// This must be called during initialization before the Update loop runs.
func SetInputHandler(handler InputHandler) {
	inputHandler = handler
}

// Init starts the tick timer. Mouse tracking and focus reporting are
// configured in View.
func (d *Desktop) Init() tea.Cmd {
	return TickCmd()
}

// TickCmd creates a command that generates tick messages at NormalFPS.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second/config.NormalFPS, func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

// InteractionTickCmd ticks at InteractionFPS so coalesced preview moves
// follow the pointer closely while a drag is in progress.
func InteractionTickCmd() tea.Cmd {
	return tea.Tick(time.Second/config.InteractionFPS, func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

// Tick flushes deferred preview moves, resyncs after out-of-band layout
// changes and expires the notification.
func (d *Desktop) Tick() {
	d.Ctx.Tick()
	if d.Factory.Version() != d.version {
		d.sync()
	}
	if d.Notification != "" && time.Since(d.NotificationTime) > config.NotificationDuration {
		d.Notification = ""
	}
}

// Update handles all incoming messages and updates the application state.
func (d *Desktop) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickerMsg:
		d.Tick()
		if d.Dragging() || d.moving != nil {
			return d, InteractionTickCmd()
		}
		return d, TickCmd()

	case tea.WindowSizeMsg:
		d.Resize(msg.Width, msg.Height)
		return d, nil

	case tea.QuitMsg:
		d.Cleanup()
		return d, tea.Quit
	}

	if inputHandler != nil {
		return inputHandler(msg, d)
	}
	return d, nil
}
