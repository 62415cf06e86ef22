package docking

import (
	"math"

	"github.com/Gaurav-Gosain/tuidock/internal/geom"
	"github.com/Gaurav-Gosain/tuidock/internal/layout"
)

// AdornerKind selects between the per-target and whole-surface overlays.
type AdornerKind int

const (
	LocalAdorner AdornerKind = iota
	GlobalAdorner
)

func (k AdornerKind) String() string {
	if k == GlobalAdorner {
		return "global"
	}
	return "local"
}

// Zone is one region of an adorner and the operation it selects.
type Zone struct {
	Op     DockOperation
	Bounds geom.Rect
	Valid  bool
}

// Adorner is the transient overlay on a drop candidate. Bounds are in screen
// space.
type Adorner struct {
	kind    AdornerKind
	target  *layout.Dockable
	surface Surface
	bounds  geom.Rect

	edgeRatio float64
	edgeCells float64
	allowH    bool
	allowV    bool

	zones    []Zone
	visible  bool
	attached bool
}

// NewLocalAdorner creates an overlay sized to one candidate. Pointers within
// edgeRatio of an edge select that edge, the center selects Fill and points
// outside select Window. Edge bands thinner than one cell are dropped, so a
// one-row tab only offers Left, Right and Fill.
func NewLocalAdorner(target *layout.Dockable, s Surface, bounds geom.Rect, edgeRatio float64) *Adorner {
	a := &Adorner{
		kind:      LocalAdorner,
		target:    target,
		surface:   s,
		bounds:    bounds,
		edgeRatio: edgeRatio,
		allowH:    bounds.W*edgeRatio >= 1,
		allowV:    bounds.H*edgeRatio >= 1,
	}
	a.layoutZones()
	return a
}

// NewGlobalAdorner creates an overlay sized to a whole surface. Only the
// edge bands edgeCells deep select anything; allowH and allowV gate the
// Left/Right and Top/Bottom bands.
func NewGlobalAdorner(root *layout.Dockable, s Surface, bounds geom.Rect, edgeCells float64, allowH, allowV bool) *Adorner {
	a := &Adorner{
		kind:      GlobalAdorner,
		target:    root,
		surface:   s,
		bounds:    bounds,
		edgeCells: edgeCells,
		allowH:    allowH,
		allowV:    allowV,
	}
	a.layoutZones()
	return a
}

// Kind reports whether a is the local or the global adorner.
func (a *Adorner) Kind() AdornerKind { return a.kind }

// Target is the dockable the zones act on: the candidate for a local
// adorner, the surface root for a global one.
func (a *Adorner) Target() *layout.Dockable { return a.target }

// Surface is the hosting surface the adorner is drawn over.
func (a *Adorner) Surface() Surface { return a.surface }

// Bounds is the screen rectangle the zones are laid out in.
func (a *Adorner) Bounds() geom.Rect { return a.bounds }

// Visible reports whether the adorner is attached and should be drawn.
func (a *Adorner) Visible() bool { return a.visible && a.attached }

// Attached reports whether a still occupies its slot.
func (a *Adorner) Attached() bool { return a.attached }

// SetVisible shows or hides the adorner without detaching it.
func (a *Adorner) SetVisible(visible bool) { a.visible = visible }

// Zones returns the zones in screen space with their last validity.
func (a *Adorner) Zones() []Zone { return a.zones }

func (a *Adorner) layoutZones() {
	b := a.bounds
	var dw, dh float64
	if a.kind == LocalAdorner {
		dw, dh = b.W*a.edgeRatio, b.H*a.edgeRatio
	} else {
		dw, dh = a.edgeCells, a.edgeCells
	}
	a.zones = a.zones[:0]
	if a.kind == LocalAdorner {
		a.zones = append(a.zones, Zone{Op: Fill, Bounds: geom.Rect{X: b.X + dw, Y: b.Y + dh, W: b.W - 2*dw, H: b.H - 2*dh}})
	}
	if a.allowH {
		a.zones = append(a.zones,
			Zone{Op: Left, Bounds: geom.Rect{X: b.X, Y: b.Y, W: dw, H: b.H}},
			Zone{Op: Right, Bounds: geom.Rect{X: b.X + b.W - dw, Y: b.Y, W: dw, H: b.H}},
		)
	}
	if a.allowV {
		a.zones = append(a.zones,
			Zone{Op: Top, Bounds: geom.Rect{X: b.X, Y: b.Y, W: b.W, H: dh}},
			Zone{Op: Bottom, Bounds: geom.Rect{X: b.X, Y: b.Y + b.H - dh, W: b.W, H: dh}},
		)
	}
	if a.kind == LocalAdorner {
		a.zones = append(a.zones, Zone{Op: Window})
	}
}

// Refresh re-runs validate for every zone. Zones that fail are suppressed.
func (a *Adorner) Refresh(validate func(DockOperation) bool) {
	for i := range a.zones {
		a.zones[i].Valid = validate(a.zones[i].Op)
	}
}

// Valid reports whether op's zone passed the last Refresh.
func (a *Adorner) Valid(op DockOperation) bool {
	for _, z := range a.zones {
		if z.Op == op {
			return z.Valid
		}
	}
	return false
}

// Operation maps a screen point onto the operation its zone selects,
// ignoring validity.
func (a *Adorner) Operation(p geom.Point) DockOperation {
	b := a.bounds
	if !b.Contains(p) {
		if a.kind == LocalAdorner {
			return Window
		}
		return None
	}

	// distance to each edge, in the unit the bands are measured in
	var left, right, top, bottom, band float64
	if a.kind == LocalAdorner {
		fx, fy := b.Relative(p)
		left, right, top, bottom = fx, 1-fx, fy, 1-fy
		band = a.edgeRatio
	} else {
		left, right = p.X-b.X, b.X+b.W-p.X
		top, bottom = p.Y-b.Y, b.Y+b.H-p.Y
		band = a.edgeCells
	}
	if !a.allowH {
		left, right = math.Inf(1), math.Inf(1)
	}
	if !a.allowV {
		top, bottom = math.Inf(1), math.Inf(1)
	}

	op, best := None, math.Inf(1)
	for _, e := range []struct {
		op DockOperation
		d  float64
	}{{Left, left}, {Right, right}, {Top, top}, {Bottom, bottom}} {
		if e.d < band && e.d < best {
			op, best = e.op, e.d
		}
	}
	if op == None && a.kind == LocalAdorner {
		return Fill
	}
	return op
}

// Selected maps p onto its operation, or None when that zone is suppressed.
func (a *Adorner) Selected(p geom.Point) DockOperation {
	op := a.Operation(p)
	if op == None || !a.Valid(op) {
		return None
	}
	return op
}

// AdornerSlots holds the live adorners of a drag context, at most one of
// each kind. Attaching detaches the previous instance of the same kind.
type AdornerSlots struct {
	local  *Adorner
	global *Adorner
}

func (s *AdornerSlots) slot(k AdornerKind) **Adorner {
	if k == GlobalAdorner {
		return &s.global
	}
	return &s.local
}

// Attach installs a as the live adorner of its kind.
func (s *AdornerSlots) Attach(a *Adorner) {
	slot := s.slot(a.kind)
	if *slot != nil && *slot != a {
		(*slot).attached = false
	}
	a.attached = true
	*slot = a
}

// Detach removes the live adorner of kind k.
func (s *AdornerSlots) Detach(k AdornerKind) {
	slot := s.slot(k)
	if *slot != nil {
		(*slot).attached = false
		*slot = nil
	}
}

// DetachAll removes every live adorner.
func (s *AdornerSlots) DetachAll() {
	s.Detach(LocalAdorner)
	s.Detach(GlobalAdorner)
}

// Local returns the live local adorner, or nil.
func (s *AdornerSlots) Local() *Adorner { return s.local }

// Global returns the live global adorner, or nil.
func (s *AdornerSlots) Global() *Adorner { return s.global }

// Live returns how many adorners are attached.
func (s *AdornerSlots) Live() int {
	n := 0
	if s.local != nil {
		n++
	}
	if s.global != nil {
		n++
	}
	return n
}
