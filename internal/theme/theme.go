// Package theme provides color themes and per-role colors for tuidock.
package theme

import (
	"fmt"
	"image/color"
	"log"
	"slices"

	"charm.land/lipgloss/v2"
	tint "github.com/lrstanley/bubbletint/v2"
)

var enabled bool

// Initialize sets up the theme registry with the specified theme name.
// Call this once at application startup.
// If themeName is empty, theming will be disabled and standard terminal colors will be used.
func Initialize(themeName string) error {
	if themeName == "" {
		enabled = false
		return nil
	}

	enabled = true
	tint.NewDefaultRegistry()

	if themesDir, err := GetThemesDir(); err == nil {
		if _, err := LoadCustomThemes(themesDir); err != nil {
			log.Printf("Warning: error loading custom themes: %v", err)
		}
	}

	if !tint.SetTintID(themeName) {
		tint.SetTintID("default")
		return fmt.Errorf("unknown theme %q, using default", themeName)
	}
	return nil
}

// IsEnabled returns true if theming is enabled
func IsEnabled() bool {
	return enabled
}

// Current returns the currently active theme.
// Returns nil if theming is disabled.
func Current() *tint.Tint {
	if !enabled {
		return nil
	}
	return tint.Current()
}

// ListThemes returns the IDs of every built-in and custom theme, sorted.
func ListThemes() []string {
	tint.NewDefaultRegistry()
	if themesDir, err := GetThemesDir(); err == nil {
		_, _ = LoadCustomThemes(themesDir)
	}
	ids := tint.TintIDs()
	slices.Sort(ids)
	return ids
}

// pick returns the themed color, or fallback when theming is off.
func pick(fallback string, themed func(t *tint.Tint) *tint.Color) color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color(fallback)
	}
	if c := themed(t); c != nil {
		return c
	}
	return lipgloss.Color(fallback)
}

// Foreground is the default text color.
func Foreground() color.Color {
	return pick("#e5e5e5", func(t *tint.Tint) *tint.Color { return t.Fg })
}

// Background is the desktop color behind docks.
func Background() color.Color {
	return pick("#000000", func(t *tint.Tint) *tint.Color { return t.Bg })
}

// =============================================================================
// Tabs and docks
// =============================================================================

// TabActive returns the color of the selected tab in a dock.
func TabActive() color.Color {
	return pick("#AFFFFF", func(t *tint.Tint) *tint.Color { return t.BrightCyan })
}

// TabInactive returns the color of the other tabs.
func TabInactive() color.Color {
	return pick("#808080", func(t *tint.Tint) *tint.Color { return t.BrightBlack })
}

// TabDragging returns the color of the tab being dragged.
func TabDragging() color.Color {
	return pick("#fb923c", func(t *tint.Tint) *tint.Color { return t.Yellow })
}

// DockBorder returns the border color of docks.
func DockBorder() color.Color {
	return pick("#5c5c5c", func(t *tint.Tint) *tint.Color { return t.BrightBlack })
}

// DockBorderFocused returns the border color of the dock under the pointer.
func DockBorderFocused() color.Color {
	return pick("#4865f2", func(t *tint.Tint) *tint.Color { return t.Blue })
}

// FloatingBorder returns the border color of floating windows.
func FloatingBorder() color.Color {
	return pick("#cd00cd", func(t *tint.Tint) *tint.Color { return t.Purple })
}

// ManagedBorder returns the border color of windows in the managed overlay.
func ManagedBorder() color.Color {
	return pick("#00cdcd", func(t *tint.Tint) *tint.Color { return t.Cyan })
}

// =============================================================================
// Adorners and preview
// =============================================================================

// ZoneHighlight returns the color of the zone a drop would use.
func ZoneHighlight() color.Color {
	return pick("#4865f2", func(t *tint.Tint) *tint.Color { return t.BrightBlue })
}

// ZoneAvailable returns the color of the other valid zones.
func ZoneAvailable() color.Color {
	return pick("#2a3a80", func(t *tint.Tint) *tint.Color { return t.Blue })
}

// ZoneSuppressed returns the color of zones the source may not use.
func ZoneSuppressed() color.Color {
	return pick("#3a3a3a", func(t *tint.Tint) *tint.Color { return t.Black })
}

// GlobalZoneHighlight returns the color of a selected whole-layout edge.
func GlobalZoneHighlight() color.Color {
	return pick("#4ade80", func(t *tint.Tint) *tint.Color { return t.BrightGreen })
}

// PreviewDock returns the preview color when the drop would dock.
func PreviewDock() color.Color {
	return pick("#4ade80", func(t *tint.Tint) *tint.Color { return t.Green })
}

// PreviewFloat returns the preview color when the drop would float.
func PreviewFloat() color.Color {
	return pick("#fb923c", func(t *tint.Tint) *tint.Color { return t.Yellow })
}

// PreviewNone returns the preview color when the drop would be rejected.
func PreviewNone() color.Color {
	return pick("#cd0000", func(t *tint.Tint) *tint.Color { return t.Red })
}

// =============================================================================
// Status bar and log viewer
// =============================================================================

// StatusBarBg returns the status line background.
func StatusBarBg() color.Color {
	return pick("#1a1a1a", func(t *tint.Tint) *tint.Color { return t.Black })
}

// StatusBarFg returns the status line text color.
func StatusBarFg() color.Color {
	return pick("#e5e5e5", func(t *tint.Tint) *tint.Color { return t.White })
}

// LogViewerError returns the color for error log lines.
func LogViewerError() color.Color {
	return pick("#ff0000", func(t *tint.Tint) *tint.Color { return t.BrightRed })
}

// LogViewerWarn returns the color for warning log lines.
func LogViewerWarn() color.Color {
	return pick("#ffff00", func(t *tint.Tint) *tint.Color { return t.BrightYellow })
}

// LogViewerInfo returns the color for info log lines.
func LogViewerInfo() color.Color {
	return pick("#00ffff", func(t *tint.Tint) *tint.Color { return t.BrightCyan })
}

// LogViewerDebug returns the color for debug log lines.
func LogViewerDebug() color.Color {
	return pick("#7f7f7f", func(t *tint.Tint) *tint.Color { return t.BrightBlack })
}

// =============================================================================
// CLI
// =============================================================================

// CLITableHeader returns the color for CLI table headers.
func CLITableHeader() color.Color {
	return lipgloss.Color("12")
}

// CLITableBorder returns the color for CLI table borders.
func CLITableBorder() color.Color {
	return lipgloss.Color("14")
}

// CLITableKey returns the color for CLI table keys.
func CLITableKey() color.Color {
	return lipgloss.Color("11")
}

// ColorToString converts a color.Color to a hex string
func ColorToString(c color.Color) string {
	if c == nil {
		return "#000000"
	}
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
