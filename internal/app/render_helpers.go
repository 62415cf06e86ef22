package app

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/tuidock/internal/config"
	"github.com/Gaurav-Gosain/tuidock/internal/layout"
	"github.com/Gaurav-Gosain/tuidock/internal/theme"
	"github.com/charmbracelet/x/ansi"
)

func getBorder() lipgloss.Border {
	return config.GetBorderForStyle()
}

// renderTitleBar draws the top border of a floating window with its title
// inset on the left.
func renderTitleBar(title string, width int, c color.Color) string {
	b := getBorder()
	style := lipgloss.NewStyle().Foreground(c)
	inner := max(width-2, 0)

	label := ""
	if inner >= 4 {
		label = " " + ansi.Truncate(title, inner-2, "…") + " "
	}
	fill := max(inner-ansi.StringWidth(label), 0)
	return style.Render(b.TopLeft) +
		style.Bold(true).Render(label) +
		style.Render(strings.Repeat(b.Top, fill)+b.TopRight)
}

// renderTab draws one tab header cell exactly as wide as its region: a
// marker cell, the title and a separator.
func renderTab(t Tab, active, dragging bool) string {
	w := int(t.Rect.W)
	if w <= 0 {
		return ""
	}
	marker := " "
	if active {
		marker = config.GetActiveTabMarker()
	}
	text := marker + ansi.Truncate(t.Leaf.Title, max(w-2, 0), "…")
	if pad := w - 1 - ansi.StringWidth(text); pad > 0 {
		text += strings.Repeat(" ", pad)
	}
	text = ansi.Truncate(text+config.GetTabSeparator(), w, "")

	style := lipgloss.NewStyle().Foreground(theme.TabInactive())
	switch {
	case dragging:
		style = style.Foreground(theme.TabDragging()).Bold(true)
	case active:
		style = style.Foreground(theme.TabActive()).Bold(true)
	}
	return style.Render(text)
}

// renderPane draws the tab row and the bordered content box of a dock.
func (d *Desktop) renderPane(p Pane, focused bool, z int) []*lipgloss.Layer {
	x, y := int(p.Rect.X), int(p.Rect.Y)
	w, h := int(p.Rect.W), int(p.Rect.H)
	if w <= 0 || h <= 0 {
		return nil
	}

	dragged := d.draggedLeaf()
	active := p.Dock.Active()
	var row strings.Builder
	used := 0
	for _, t := range p.Tabs {
		row.WriteString(renderTab(t, t.Leaf == active, t.Leaf == dragged))
		used += int(t.Rect.W)
	}
	if used < w {
		row.WriteString(strings.Repeat(" ", w-used))
	}
	layers := []*lipgloss.Layer{
		lipgloss.NewLayer(row.String()).X(x).Y(y).Z(z).ID(p.Dock.ID + "/tabs"),
	}

	ch := h - config.TabRowHeight
	if ch < 2 || w < 2 {
		return layers
	}
	c := theme.DockBorder()
	if focused {
		c = theme.DockBorderFocused()
	}
	body := ""
	if active != nil {
		body = paneBody(active, w-2, ch-2)
	}
	box := lipgloss.NewStyle().
		Border(getBorder()).
		BorderForeground(c).
		Foreground(theme.Foreground()).
		Width(w).
		Height(ch).
		MaxWidth(w).
		MaxHeight(ch).
		Render(body)
	layers = append(layers, lipgloss.NewLayer(box).X(x).Y(y+config.TabRowHeight).Z(z).ID(p.Dock.ID))
	return layers
}

// paneBody describes the active dockable of a pane.
func paneBody(leaf *layout.Dockable, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	lines := []string{leaf.Title, "(" + leaf.Kind.String() + ")"}
	if leaf.Pinned {
		lines = append(lines, "pinned")
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, width, "…")
	}
	return strings.Join(lines, "\n")
}

// draggedLeaf returns the dockable of the drag in progress.
func (d *Desktop) draggedLeaf() *layout.Dockable {
	if !d.Dragging() {
		return nil
	}
	return d.capture.Source()
}

// fillBlock renders a w×h block of background c with label centered on its
// middle row.
func fillBlock(w, h int, c color.Color, label string) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	style := lipgloss.NewStyle().Background(c).Foreground(theme.Background())
	rows := make([]string, h)
	for i := range rows {
		text := strings.Repeat(" ", w)
		if i == h/2 && label != "" && ansi.StringWidth(label) <= w {
			left := (w - ansi.StringWidth(label)) / 2
			text = strings.Repeat(" ", left) + label + strings.Repeat(" ", w-left-ansi.StringWidth(label))
		}
		rows[i] = style.Render(text)
	}
	return strings.Join(rows, "\n")
}

// clipWindowContent cuts content placed at (x, y) to the viewport and
// returns the visible part with its new origin.
func clipWindowContent(content string, x, y, viewportWidth, viewportHeight int) (string, int, int) {
	lines := strings.Split(content, "\n")
	windowHeight := len(lines)

	windowWidth := 0
	if len(lines) > 0 {
		windowWidth = ansi.StringWidth(lines[0])
	}

	if x+windowWidth <= 0 || x >= viewportWidth || y+windowHeight <= 0 || y >= viewportHeight {
		return "", max(x, 0), max(y, 0)
	}

	clipTop, clipLeft := 0, 0
	finalX, finalY := x, y
	if y < 0 {
		clipTop = -y
		finalY = 0
	}
	if x < 0 {
		clipLeft = -x
		finalX = 0
	}

	visibleLines := lines[clipTop:]
	if maxVisible := viewportHeight - finalY; maxVisible < len(visibleLines) {
		visibleLines = visibleLines[:maxVisible]
	}

	if clipLeft > 0 || finalX+windowWidth > viewportWidth {
		maxWidth := viewportWidth - finalX
		for i, line := range visibleLines {
			if clipLeft > 0 {
				line = ansi.TruncateLeft(line, clipLeft, "")
			}
			if ansi.StringWidth(line) > maxWidth {
				line = ansi.Truncate(line, maxWidth, "")
			}
			visibleLines[i] = line
		}
	}
	return strings.Join(visibleLines, "\n"), finalX, finalY
}
