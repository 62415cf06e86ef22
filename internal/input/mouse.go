package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/tuidock/internal/app"
	"github.com/Gaurav-Gosain/tuidock/internal/docking"
)

// dragAction maps modifiers onto the drop action: ctrl swaps instead of
// moving.
func dragAction(mod tea.KeyMod) docking.DragAction {
	if mod.Contains(tea.ModCtrl) {
		return docking.Copy
	}
	return docking.Move
}

func handleMouseClick(msg tea.MouseClickMsg, d *app.Desktop) (tea.Model, tea.Cmd) {
	mouse := msg.Mouse()
	if mouse.Button != tea.MouseLeft {
		// Any other button aborts the gesture in progress.
		d.CancelDrag()
		return d, nil
	}
	if d.ShowHelp {
		d.ShowHelp = false
		return d, nil
	}
	d.Press(mouse.X, mouse.Y, dragAction(mouse.Mod))
	return d, nil
}

func handleMouseMotion(msg tea.MouseMotionMsg, d *app.Desktop) (tea.Model, tea.Cmd) {
	mouse := msg.Mouse()
	// AllMotion reports hover too; only gestures care.
	if d.Capture() == nil && d.MovingWindow() == nil {
		return d, nil
	}
	d.Drag(mouse.X, mouse.Y, dragAction(mouse.Mod))
	return d, nil
}

func handleMouseRelease(msg tea.MouseReleaseMsg, d *app.Desktop) (tea.Model, tea.Cmd) {
	mouse := msg.Mouse()
	d.Release(mouse.X, mouse.Y, dragAction(mouse.Mod))
	return d, nil
}

func handleMouseWheel(msg tea.MouseWheelMsg, d *app.Desktop) (tea.Model, tea.Cmd) {
	if !d.ShowLogs {
		return d, nil
	}
	switch msg.Mouse().Button {
	case tea.MouseWheelUp:
		d.LogScrollOffset = max(d.LogScrollOffset-1, 0)
	case tea.MouseWheelDown:
		d.LogScrollOffset++
	}
	return d, nil
}
