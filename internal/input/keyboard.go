package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/tuidock/internal/app"
	"github.com/Gaurav-Gosain/tuidock/internal/config"
)

// HandleKeyPress resolves a key through the keybinding registry and runs
// its action.
func HandleKeyPress(msg tea.KeyPressMsg, d *app.Desktop) (tea.Model, tea.Cmd) {
	key := msg.String()

	if d.ShowLogs && handleLogViewerKey(key, d) {
		return d, nil
	}

	action := d.Keys.Action(key)
	if action == "" {
		if key == "esc" && d.ShowHelp {
			d.ShowHelp = false
		}
		return d, nil
	}
	return executeAction(action, d)
}

// executeAction runs one keybinding action.
func executeAction(action string, d *app.Desktop) (tea.Model, tea.Cmd) {
	switch action {
	case config.ActionCancelDrag:
		if !d.CancelDrag() {
			d.ShowHelp = false
			d.ShowLogs = false
		}
	case config.ActionToggleFloatingMode:
		d.ToggleFloatingMode()
	case config.ActionRevealWindows:
		d.RevealWindows()
	case config.ActionNewDocument:
		d.AddDocument()
	case config.ActionToggleLogs:
		d.ShowLogs = !d.ShowLogs
		d.LogScrollOffset = 0
	case config.ActionToggleHelp:
		d.ShowHelp = !d.ShowHelp
	case config.ActionQuit:
		d.Cleanup()
		return d, tea.Quit
	}
	return d, nil
}

// handleLogViewerKey scrolls the log viewer. It reports whether the key was
// used.
func handleLogViewerKey(key string, d *app.Desktop) bool {
	switch key {
	case "up", "k":
		d.LogScrollOffset = max(d.LogScrollOffset-1, 0)
	case "down", "j":
		d.LogScrollOffset++
	case "pgup":
		d.LogScrollOffset = max(d.LogScrollOffset-d.LogsPerPage(), 0)
	case "pgdown":
		d.LogScrollOffset += d.LogsPerPage()
	case "home", "g":
		d.LogScrollOffset = 0
	default:
		return false
	}
	return true
}
