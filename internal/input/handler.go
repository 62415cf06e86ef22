// Package input implements tuidock input handling.
//
// Mouse events drive docking gestures; key presses resolve through the
// keybinding registry.
package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/tuidock/internal/app"
)

// HandleInput is the main input coordinator that routes messages to appropriate handlers
func HandleInput(msg tea.Msg, d *app.Desktop) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return HandleKeyPress(msg, d)
	case tea.MouseClickMsg:
		return handleMouseClick(msg, d)
	case tea.MouseMotionMsg:
		return handleMouseMotion(msg, d)
	case tea.MouseReleaseMsg:
		return handleMouseRelease(msg, d)
	case tea.MouseWheelMsg:
		return handleMouseWheel(msg, d)
	case tea.BlurMsg:
		// Losing focus loses the pointer capture.
		if d.CancelDrag() {
			d.LogInfo("drag cancelled: terminal lost focus")
		}
		return d, nil
	default:
		return d, nil
	}
}
