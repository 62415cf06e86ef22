// Package docking is the pointer-driven docking engine. A DragSession turns
// raw pointer events into validated rearrangements of a layout tree,
// resolving drop targets across every hosting surface, tracking adorner
// zones, and driving the floating preview. All state changes happen on the
// caller's goroutine.
package docking

import (
	"github.com/Gaurav-Gosain/tuidock/internal/geom"
	"github.com/Gaurav-Gosain/tuidock/internal/layout"
	"github.com/Gaurav-Gosain/tuidock/internal/surface"
)

// DockOperation is the spatial effect of a drop.
type DockOperation int

const (
	None DockOperation = iota
	Fill
	Top
	Bottom
	Left
	Right
	Window
)

func (o DockOperation) String() string {
	switch o {
	case None:
		return "None"
	case Fill:
		return "Fill"
	case Top:
		return "Top"
	case Bottom:
		return "Bottom"
	case Left:
		return "Left"
	case Right:
		return "Right"
	case Window:
		return "Window"
	default:
		return "Unknown"
	}
}

// IsEdge reports whether the operation splits beside its target.
func (o DockOperation) IsEdge() bool {
	return o == Top || o == Bottom || o == Left || o == Right
}

// Side maps an edge operation onto the layout side it splits.
func (o DockOperation) Side() (layout.Side, bool) {
	switch o {
	case Left:
		return layout.SideLeft, true
	case Right:
		return layout.SideRight, true
	case Top:
		return layout.SideTop, true
	case Bottom:
		return layout.SideBottom, true
	default:
		return 0, false
	}
}

// DragAction is the intended effect of a completed drop.
type DragAction int

const (
	Move DragAction = iota
	Copy
)

func (a DragAction) String() string {
	if a == Copy {
		return "Copy"
	}
	return "Move"
}

// EventType classifies a raw pointer event.
type EventType int

const (
	Pressed EventType = iota
	Moved
	Released
	CaptureLost
)

func (e EventType) String() string {
	switch e {
	case Pressed:
		return "pressed"
	case Moved:
		return "moved"
	case Released:
		return "released"
	case CaptureLost:
		return "capture-lost"
	default:
		return "unknown"
	}
}

// Phase is the state of a drag session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePressed
	PhaseDragging
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePressed:
		return "pressed"
	case PhaseDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// PreviewStatus is the live validity token shown by the drag preview.
type PreviewStatus int

const (
	StatusNone PreviewStatus = iota
	StatusDock
	StatusFloat
)

func (s PreviewStatus) String() string {
	switch s {
	case StatusDock:
		return "Dock"
	case StatusFloat:
		return "Float"
	default:
		return "None"
	}
}

// Surface is a hosting surface as seen by the engine.
type Surface interface {
	ID() string
	Alive() bool
	Bounds() geom.Rect
	// Z reports the stacking order and whether the surface knows it.
	Z() (int, bool)
	ScreenToLocal(geom.Point) (geom.Point, bool)
	LocalToScreen(geom.Point) (geom.Point, bool)
	HitTest(geom.Point, func(*surface.Region) bool) (*surface.Region, error)
	LayoutRoot() *layout.Dockable
}

// Factory performs the structural changes the engine commits.
type Factory interface {
	ID() string
	MoveDockable(source, target *layout.Dockable) error
	SwapDockable(source, target *layout.Dockable) error
	SplitToDock(target, source *layout.Dockable, side layout.Side) error
	FloatDockable(source *layout.Dockable, bounds geom.Rect) (*layout.Window, error)
	FindRoot(d *layout.Dockable) *layout.Dockable
	ShowWindows(root *layout.Dockable) int
}

var (
	_ Surface = (*surface.Surface)(nil)
	_ Factory = (*layout.Factory)(nil)
)
