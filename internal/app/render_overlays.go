package app

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/tuidock/internal/config"
	"github.com/Gaurav-Gosain/tuidock/internal/docking"
	"github.com/Gaurav-Gosain/tuidock/internal/geom"
	"github.com/Gaurav-Gosain/tuidock/internal/theme"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog"
)

// cellRect rounds a screen rectangle onto whole cells.
func cellRect(r geom.Rect) (x, y, w, h int) {
	x, y = int(math.Round(r.X)), int(math.Round(r.Y))
	w = int(math.Round(r.X+r.W)) - x
	h = int(math.Round(r.Y+r.H)) - y
	return x, y, w, h
}

// renderAdorners draws the zones of the live adorners. The zone a release
// would use is highlighted; suppressed zones are dimmed.
func (d *Desktop) renderAdorners() []*lipgloss.Layer {
	if !d.Dragging() {
		return nil
	}
	localOp, globalOp := d.capture.Operations()

	var layers []*lipgloss.Layer
	draw := func(a *docking.Adorner, selected docking.DockOperation, highlight color.Color, z int) {
		if a == nil || !a.Visible() {
			return
		}
		for _, zone := range a.Zones() {
			if zone.Op == docking.Window || zone.Bounds.Empty() {
				continue
			}
			x, y, w, h := cellRect(zone.Bounds)
			if w <= 0 || h <= 0 {
				continue
			}
			c := theme.ZoneSuppressed()
			label := ""
			switch {
			case zone.Op == selected:
				c, label = highlight, zone.Op.String()
			case zone.Valid:
				c = theme.ZoneAvailable()
			}
			block, bx, by := clipWindowContent(fillBlock(w, h, c, label), x, y, d.Width, d.Height)
			layers = append(layers, lipgloss.NewLayer(block).X(bx).Y(by).Z(z).
				ID(fmt.Sprintf("adorner-%s-%s", a.Kind(), zone.Op)))
		}
	}
	draw(d.Ctx.Adorners.Local(), localOp, theme.ZoneHighlight(), zAdorner)
	draw(d.Ctx.Adorners.Global(), globalOp, theme.GlobalZoneHighlight(), zAdorner+1)
	return layers
}

// previewToken returns the status word and color shown by the preview.
func previewToken(s docking.PreviewStatus) (string, color.Color) {
	switch s {
	case docking.StatusDock:
		return config.PreviewTokenDock, theme.PreviewDock()
	case docking.StatusFloat:
		return config.PreviewTokenFloat, theme.PreviewFloat()
	default:
		return config.PreviewTokenNone, theme.PreviewNone()
	}
}

// renderPreview draws the floating drag preview at its surface position.
func (d *Desktop) renderPreview() *lipgloss.Layer {
	if !d.Preview.Visible() {
		return nil
	}
	x, y, w, h := cellRect(d.Preview.Surface.Bounds())
	w = max(w, config.MinFloatingWidth)
	h = max(h, config.MinFloatingHeight)

	token, c := previewToken(d.Preview.Status)
	body := ansi.Truncate(d.Preview.Title, max(w-2, 0), "…") + "\n" +
		lipgloss.NewStyle().Foreground(c).Bold(true).Render(token)
	box := lipgloss.NewStyle().
		Border(getBorder()).
		BorderForeground(c).
		Width(w).
		Height(h).
		MaxHeight(h).
		Render(body)

	clipped, px, py := clipWindowContent(box, x, y, d.Width, d.Height)
	return lipgloss.NewLayer(clipped).X(px).Y(py).Z(zPreview).ID("preview")
}

// statusText describes the gesture in progress, or the last notification.
func (d *Desktop) statusText() string {
	switch {
	case d.Dragging():
		src := titleOf(d.capture.Source())
		text := fmt.Sprintf("dragging %s [%s]", src, d.DragAction)
		if c, ok := d.capture.Candidate(); ok {
			local, global := d.capture.Operations()
			op := global
			if op == docking.None {
				op = local
			}
			text += fmt.Sprintf(" → %s %s", titleOf(c.Target()), op)
		} else {
			token, _ := previewToken(d.Preview.Status)
			text += " → " + token
		}
		return text
	case d.moving != nil:
		return "moving " + d.moving.Window.Title
	case d.Notification != "":
		return d.Notification
	default:
		return "tuidock"
	}
}

// statusHints lists the primary keys of the common actions.
func (d *Desktop) statusHints() string {
	hint := func(action, label string) string {
		if k := d.Keys.PrimaryKey(action); k != "" {
			return k + ":" + label
		}
		return ""
	}
	parts := []string{
		hint(config.ActionToggleFloatingMode, d.Config.Docking.FloatingMode),
		hint(config.ActionRevealWindows, "windows"),
		hint(config.ActionNewDocument, "new"),
		hint(config.ActionToggleLogs, "logs"),
		hint(config.ActionToggleHelp, "help"),
		hint(config.ActionQuit, "quit"),
	}
	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

func (d *Desktop) renderStatusBar() *lipgloss.Layer {
	style := lipgloss.NewStyle().
		Background(theme.StatusBarBg()).
		Foreground(theme.StatusBarFg())

	left := " " + d.statusText()
	right := d.statusHints() + " "
	gap := d.Width - ansi.StringWidth(left) - ansi.StringWidth(right)
	if gap < 1 {
		right, gap = "", max(d.Width-ansi.StringWidth(left), 0)
	}
	line := ansi.Truncate(left+strings.Repeat(" ", gap)+right, max(d.Width, 0), "…")
	return lipgloss.NewLayer(style.Render(line)).
		X(0).Y(max(d.Height-config.StatusBarHeight, 0)).Z(zStatus).ID("status")
}

// renderOverlays draws the log viewer and the help menu.
func (d *Desktop) renderOverlays() []*lipgloss.Layer {
	var layers []*lipgloss.Layer
	if d.ShowLogs {
		layers = append(layers, d.centered(d.renderLogViewer(), "logs", zOverlay))
	}
	if d.ShowHelp {
		layers = append(layers, d.centered(d.renderHelp(), "help", zOverlay+1))
	}
	return layers
}

func (d *Desktop) centered(content, id string, z int) *lipgloss.Layer {
	x := max((d.Width-lipgloss.Width(content))/2, 0)
	y := max((d.Height-lipgloss.Height(content))/2, 0)
	return lipgloss.NewLayer(content).X(x).Y(y).Z(z).ID(id)
}

func logLevelColor(level zerolog.Level) color.Color {
	switch level {
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		return theme.LogViewerError()
	case zerolog.WarnLevel:
		return theme.LogViewerWarn()
	case zerolog.DebugLevel, zerolog.TraceLevel:
		return theme.LogViewerDebug()
	default:
		return theme.LogViewerInfo()
	}
}

// LogsPerPage is how many log lines fit in the viewer.
func (d *Desktop) LogsPerPage() int {
	return max(d.Height-12, 1)
}

func (d *Desktop) renderLogViewer() string {
	entries := d.Logs.Entries()
	perPage := d.LogsPerPage()
	maxScroll := max(len(entries)-perPage, 0)
	d.LogScrollOffset = max(0, min(d.LogScrollOffset, maxScroll))

	width := min(config.LogViewerWidth, max(d.Width-4, 20))
	textWidth := max(width-6, 10)

	lines := []string{
		lipgloss.NewStyle().Foreground(theme.LogViewerInfo()).Bold(true).Render("Docking Logs"),
		"",
	}
	start := d.LogScrollOffset
	end := min(start+perPage, len(entries))
	for _, e := range entries[start:end] {
		level := lipgloss.NewStyle().Foreground(logLevelColor(e.Level)).Render(fmt.Sprintf("[%-5s]", e.LevelLabel()))
		msg := e.Message
		if e.Component != "" {
			msg = e.Component + ": " + msg
		}
		line := fmt.Sprintf("%s %s %s", e.Time.Format("15:04:05"), level, msg)
		lines = append(lines, ansi.Truncate(line, textWidth, "…"))
	}
	if len(entries) == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.LogViewerDebug()).Render("no log entries"))
	}
	if maxScroll > 0 {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(theme.LogViewerDebug()).
			Render(fmt.Sprintf("Showing %d-%d of %d (↑/↓ to scroll)", start+1, end, len(entries))))
	}

	return lipgloss.NewStyle().
		Border(getBorder()).
		BorderForeground(theme.DockBorderFocused()).
		Padding(1, 2).
		Width(width).
		Render(strings.Join(lines, "\n"))
}

func (d *Desktop) renderHelp() string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.TabActive()).Bold(true)
	titleStyle := lipgloss.NewStyle().Foreground(theme.ZoneHighlight()).Bold(true)

	var lines []string
	for i, section := range config.GetKeybindings(d.Keys) {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, titleStyle.Render(section.Title))
		for _, b := range section.Bindings {
			lines = append(lines, fmt.Sprintf("  %s  %s", keyStyle.Render(fmt.Sprintf("%-14s", b.Key)), b.Description))
		}
	}
	return lipgloss.NewStyle().
		Border(getBorder()).
		BorderForeground(theme.ZoneHighlight()).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))
}
