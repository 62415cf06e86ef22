package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/tuidock/internal/config"
	"github.com/Gaurav-Gosain/tuidock/internal/layout"
	"github.com/Gaurav-Gosain/tuidock/internal/surface"
	"github.com/Gaurav-Gosain/tuidock/internal/theme"
)

// Z bands above the hosting surfaces. Surface layers use surfaceZ.
const (
	zAdorner = 5000
	zPreview = 6000
	zStatus  = 7000
	zOverlay = 8000
)

// surfaceZ maps a surface stacking order onto canvas layers: the frame of
// a floating window, then the panes inside it.
func surfaceZ(stack int) (frame, panes int) {
	return stack*10 + 1, stack*10 + 2
}

// GetCanvas composes every surface, the drag visuals and the overlays.
func (d *Desktop) GetCanvas() *lipgloss.Canvas {
	canvas := lipgloss.NewCanvas(d.Width, d.Height)
	var layers []*lipgloss.Layer

	focus := d.focusedDock()
	for _, s := range d.hosts() {
		if !s.Alive() {
			continue
		}
		stack, _ := s.Z()
		frameZ, paneZ := surfaceZ(stack)
		if s.Window != nil {
			layers = append(layers, d.renderFrame(s, frameZ))
		}
		for _, p := range d.Panes(s) {
			layers = append(layers, d.renderPane(p, p.Dock == focus, paneZ)...)
		}
	}

	layers = append(layers, d.renderAdorners()...)
	if l := d.renderPreview(); l != nil {
		layers = append(layers, l)
	}
	if config.ShowStatusBar {
		layers = append(layers, d.renderStatusBar())
	}
	layers = append(layers, d.renderOverlays()...)

	for _, layer := range layers {
		canvas.Compose(layer)
	}
	return canvas
}

// focusedDock is the dock holding the current drop candidate.
func (d *Desktop) focusedDock() *layout.Dockable {
	if !d.Dragging() {
		return nil
	}
	c, ok := d.capture.Candidate()
	if !ok {
		return nil
	}
	t := c.Target()
	if t != nil && t.Kind.IsLeaf() {
		return t.Owner
	}
	return t
}

// renderFrame draws the border and title of a floating window.
func (d *Desktop) renderFrame(s *surface.Surface, z int) *lipgloss.Layer {
	b := s.Bounds()
	w, h := int(b.W), int(b.H)
	c := theme.FloatingBorder()
	if s.Window.Managed {
		c = theme.ManagedBorder()
	}
	if d.MovingWindow() == s.Window {
		c = theme.TabDragging()
	}

	body := lipgloss.NewStyle().
		Border(getBorder()).
		BorderTop(false).
		BorderForeground(c).
		Width(w).
		Height(h - 1).
		Render("")
	content := renderTitleBar(s.Window.Title, w, c) + "\n" + body

	clipped, x, y := clipWindowContent(content, int(b.X), int(b.Y), d.Width, d.Height)
	return lipgloss.NewLayer(clipped).X(x).Y(y).Z(z).ID(s.ID())
}

func (d *Desktop) View() tea.View {
	var view tea.View
	view.SetContent(lipgloss.Sprint(d.GetCanvas().Render()))
	view.AltScreen = true
	// AllMotion so drags report every cell the pointer crosses.
	view.MouseMode = tea.MouseModeAllMotion
	view.ReportFocus = true
	return view
}
