// Package surface models hosting surfaces: independently positioned
// top-level presentation units (the main screen, native floating windows,
// managed overlay windows, the drag preview) and the hit-testable regions
// drawn on them.
package surface

import (
	"errors"
	"fmt"

	"github.com/Gaurav-Gosain/tuidock/internal/geom"
	"github.com/Gaurav-Gosain/tuidock/internal/layout"
	"github.com/google/uuid"
)

// ErrMalformedRegion is returned by HitTest when a region cannot be tested.
var ErrMalformedRegion = errors.New("surface: malformed region")

// Kind identifies what backs a surface.
type Kind int

const (
	// KindMain is the primary screen surface.
	KindMain Kind = iota
	// KindNative is a real top-level floating window.
	KindNative
	// KindManaged is a pseudo-window inside a managed overlay layer.
	KindManaged
	// KindOverlay is an overlay layer itself.
	KindOverlay
	// KindPreview is the drag preview.
	KindPreview
)

func (k Kind) String() string {
	switch k {
	case KindMain:
		return "main"
	case KindNative:
		return "native"
	case KindManaged:
		return "managed"
	case KindOverlay:
		return "overlay"
	case KindPreview:
		return "preview"
	default:
		return "unknown"
	}
}

// Flags mark what a region takes part in.
type Flags uint8

const (
	// DragArea regions start drags of their dockable.
	DragArea Flags = 1 << iota
	// DropArea regions accept drops onto their dockable.
	DropArea
)

// Region is one hit-testable rectangle bound to a dockable. Bounds are in
// the owning surface's local space.
type Region struct {
	ID       string
	Bounds   geom.Rect
	Flags    Flags
	Dockable *layout.Dockable
}

// Is reports whether every flag in f is set.
func (r *Region) Is(f Flags) bool {
	return r != nil && r.Flags&f == f
}

// Surface is a hosting surface. Regions are kept back to front; the last
// region containing a point is the topmost one.
type Surface struct {
	id      string
	name    string
	kind    Kind
	origin  geom.Point
	size    geom.Size
	alive   bool
	z       int
	stacked bool
	root    *layout.Dockable

	// Window is the floating window shown by this surface, if any.
	Window *layout.Window

	regions []*Region
}

// New creates a live surface at origin.
func New(name string, kind Kind, origin geom.Point, size geom.Size) *Surface {
	return &Surface{
		id:     uuid.New().String(),
		name:   name,
		kind:   kind,
		origin: origin,
		size:   size,
		alive:  true,
	}
}

// ID returns the surface identifier.
func (s *Surface) ID() string { return s.id }

// Name returns the display name.
func (s *Surface) Name() string { return s.name }

// Kind returns what backs the surface.
func (s *Surface) Kind() Kind { return s.kind }

// Alive reports whether the surface still has a live presentation.
func (s *Surface) Alive() bool { return s.alive && !s.size.IsZero() }

// Close marks the surface as no longer presented.
func (s *Surface) Close() { s.alive = false }

// Z returns the stacking order, larger values closer to the viewer, and
// whether an order was ever reported for this surface.
func (s *Surface) Z() (int, bool) { return s.z, s.stacked }

// SetZ records the stacking order.
func (s *Surface) SetZ(z int) {
	s.z = z
	s.stacked = true
}

// LayoutRoot returns the layout root presented on this surface.
func (s *Surface) LayoutRoot() *layout.Dockable { return s.root }

// SetLayoutRoot binds the layout root presented on this surface.
func (s *Surface) SetLayoutRoot(root *layout.Dockable) { s.root = root }

// Reopen marks a closed surface as presented again.
func (s *Surface) Reopen() { s.alive = true }

// Origin returns the screen position of the surface's top-left corner.
func (s *Surface) Origin() geom.Point { return s.origin }

// MoveTo repositions the surface on screen.
func (s *Surface) MoveTo(p geom.Point) { s.origin = p }

// Size returns the surface dimensions.
func (s *Surface) Size() geom.Size { return s.size }

// Resize changes the surface dimensions.
func (s *Surface) Resize(sz geom.Size) { s.size = sz }

// Bounds returns the surface rectangle in screen space.
func (s *Surface) Bounds() geom.Rect {
	return geom.Rect{X: s.origin.X, Y: s.origin.Y, W: s.size.W, H: s.size.H}
}

// ScreenToLocal converts a screen point into surface space. It fails for a
// dead surface.
func (s *Surface) ScreenToLocal(p geom.Point) (geom.Point, bool) {
	if !s.Alive() {
		return geom.Point{}, false
	}
	return p.Sub(s.origin), true
}

// LocalToScreen converts a surface point into screen space.
func (s *Surface) LocalToScreen(p geom.Point) (geom.Point, bool) {
	if !s.Alive() {
		return geom.Point{}, false
	}
	return p.Add(s.origin), true
}

// Regions returns the regions back to front.
func (s *Surface) Regions() []*Region {
	return s.regions
}

// ClearRegions drops every region, ready for a fresh arrange pass.
func (s *Surface) ClearRegions() {
	s.regions = s.regions[:0]
}

// AddRegion appends a region on top of the existing ones.
func (s *Surface) AddRegion(bounds geom.Rect, flags Flags, d *layout.Dockable) *Region {
	r := &Region{
		ID:       fmt.Sprintf("%s/%d", s.name, len(s.regions)),
		Bounds:   bounds,
		Flags:    flags,
		Dockable: d,
	}
	s.regions = append(s.regions, r)
	return r
}

// HitTest returns the topmost region containing the local point p for which
// match returns true. A nil match accepts every region. Both results are nil
// when nothing matches.
func (s *Surface) HitTest(p geom.Point, match func(*Region) bool) (*Region, error) {
	for i := len(s.regions) - 1; i >= 0; i-- {
		r := s.regions[i]
		if r == nil || r.Bounds.W < 0 || r.Bounds.H < 0 {
			return nil, fmt.Errorf("%s region %d: %w", s.name, i, ErrMalformedRegion)
		}
		if !r.Bounds.Contains(p) {
			continue
		}
		if match == nil || match(r) {
			return r, nil
		}
	}
	return nil, nil
}

func (s *Surface) String() string {
	return fmt.Sprintf("%s(%s %s)", s.name, s.kind, s.Bounds())
}
