// Package config provides configuration constants, keybinding management, and user settings.
package config

import (
	"time"

	"charm.land/lipgloss/v2"
)

// =============================================================================
// Layout Defaults
// =============================================================================

const (
	// TabRowHeight is the height of the tab header drawn above every tabbed dock
	TabRowHeight = 1

	// StatusBarHeight is the height of the status line at the bottom of the screen
	StatusBarHeight = 1

	// MinDockWidth is the narrowest a dock is ever arranged
	MinDockWidth = 6

	// MinDockHeight is the shortest a dock is ever arranged (tab row included)
	MinDockHeight = 3

	// MaxTabTitleWidth truncates long tab titles
	MaxTabTitleWidth = 18

	// DefaultFloatingWidth is the width of a floating window created without bounds
	DefaultFloatingWidth = 30

	// DefaultFloatingHeight is the height of a floating window created without bounds
	DefaultFloatingHeight = 8

	// MinFloatingWidth is the minimum width of a floating window
	MinFloatingWidth = 10

	// MinFloatingHeight is the minimum height of a floating window
	MinFloatingHeight = 3
)

// =============================================================================
// Docking Defaults
// =============================================================================

const (
	// DefaultMinDragX is the horizontal displacement a press must exceed to start a drag
	DefaultMinDragX = 4

	// DefaultMinDragY is the vertical displacement a press must exceed to start a drag
	DefaultMinDragY = 4

	// DefaultLocalEdgeRatio is the depth of local edge zones relative to the target
	DefaultLocalEdgeRatio = 0.25

	// DefaultGlobalEdgeCells is the depth of global edge zones in cells
	DefaultGlobalEdgeCells = 2

	// FloatingModeNative hosts each floating window on its own top-level surface
	FloatingModeNative = "native"

	// FloatingModeManaged hosts floating windows inside the managed overlay
	FloatingModeManaged = "managed"
)

// =============================================================================
// Timeouts and Intervals
// =============================================================================

const (
	// NormalFPS is the frame rate used while idle
	NormalFPS = 30

	// InteractionFPS is the frame rate used while a drag is in progress
	InteractionFPS = 60

	// NotificationDuration is how long status messages stay visible
	NotificationDuration = 1500 * time.Millisecond
)

// =============================================================================
// Log Viewer
// =============================================================================

const (
	// LogBufferSize is the number of log lines kept for the in-app viewer
	LogBufferSize = 500

	// LogViewerWidth is the width of the log viewer overlay
	LogViewerWidth = 80
)

// =============================================================================
// Preview Status Tokens
// =============================================================================

const (
	// PreviewTokenDock is shown while the drop would dock
	PreviewTokenDock = "Dock"

	// PreviewTokenFloat is shown while the drop would float
	PreviewTokenFloat = "Float"

	// PreviewTokenNone is shown while the drop would be rejected
	PreviewTokenNone = "None"
)

// =============================================================================
// Global Runtime Settings
// =============================================================================

// UseASCIIOnly replaces box drawing characters with ASCII
var UseASCIIOnly = false

// BorderStyle is the border style of floating windows and docks
var BorderStyle = "rounded"

// FloatingMode selects native or managed floating windows
var FloatingMode = FloatingModeNative

// ShowStatusBar toggles the bottom status line
var ShowStatusBar = true

// GetBorderForStyle returns the lipgloss border for the configured style.
func GetBorderForStyle() lipgloss.Border {
	if UseASCIIOnly || BorderStyle == "ascii" {
		return lipgloss.ASCIIBorder()
	}
	switch BorderStyle {
	case "normal":
		return lipgloss.NormalBorder()
	case "thick":
		return lipgloss.ThickBorder()
	case "double":
		return lipgloss.DoubleBorder()
	case "hidden":
		return lipgloss.HiddenBorder()
	case "block":
		return lipgloss.BlockBorder()
	case "rounded":
		fallthrough
	default:
		return lipgloss.RoundedBorder()
	}
}

// GetTabSeparator returns the separator drawn between tabs
func GetTabSeparator() string {
	if UseASCIIOnly {
		return "|"
	}
	return "│"
}

// GetActiveTabMarker returns the marker drawn before the active tab
func GetActiveTabMarker() string {
	if UseASCIIOnly {
		return "*"
	}
	return "●"
}
