package app

import (
	"math"

	"github.com/Gaurav-Gosain/tuidock/internal/config"
	"github.com/Gaurav-Gosain/tuidock/internal/geom"
	"github.com/Gaurav-Gosain/tuidock/internal/layout"
	"github.com/Gaurav-Gosain/tuidock/internal/surface"
	"github.com/charmbracelet/x/ansi"
)

// Pane is one tabbed dock as drawn on a surface. Rectangles are in screen
// space.
type Pane struct {
	Dock *layout.Dockable
	Rect geom.Rect
	Tabs []Tab
	// Z is the surface stacking order the pane was drawn at.
	Z int
	// Window is set for panes inside a floating window.
	Window *layout.Window
}

// Tab is one header cell of a pane.
type Tab struct {
	Leaf *layout.Dockable
	Rect geom.Rect
}

// Content returns the area below the tab row.
func (p Pane) Content() geom.Rect {
	return geom.Rect{X: p.Rect.X, Y: p.Rect.Y + config.TabRowHeight, W: p.Rect.W, H: p.Rect.H - config.TabRowHeight}
}

// sync rebuilds every surface from the layout: surface geometry, regions,
// panes and stacking. It runs whenever the factory version moves.
func (d *Desktop) sync() {
	d.version = d.Factory.Version()
	d.panes = make(map[string][]Pane)
	area := d.area()

	d.Main.MoveTo(area.Origin())
	d.Main.Resize(area.Size())
	d.arrangeSurface(d.Main, geom.R(0, 0, area.W, area.H), nil)

	d.syncNatives(area)

	d.Managed.Resize(area)
	d.Managed.Sync(d.Factory.Windows())
	for _, mw := range d.Managed.Windows() {
		d.arrangeSurface(mw.Surface, windowInner(mw.Surface.Size()), mw.Window)
	}

	d.restack()
	d.pruneSessions()
	d.version = d.Factory.Version()
}

// pruneSessions drops the drag sessions of surfaces that no longer host a
// layout, native and managed alike.
func (d *Desktop) pruneSessions() {
	live := make(map[string]bool)
	for _, s := range d.hosts() {
		live[s.ID()] = true
	}
	for id := range d.sessions {
		if !live[id] {
			delete(d.sessions, id)
		}
	}
}

// syncNatives keeps one surface per native floating window. Windows keep
// their stacking order across syncs; new ones go on top.
func (d *Desktop) syncNatives(area geom.Rect) {
	live := make(map[*layout.Window]bool)
	for _, w := range d.Factory.Windows() {
		fitWindow(w, area)
		if w.Managed {
			continue
		}
		live[w] = true
		s := d.natives[w]
		if s == nil {
			s = surface.New(w.Title, surface.KindNative, w.Bounds.Origin(), w.Bounds.Size())
			s.Window = w
			d.natives[w] = s
			d.order = append(d.order, w)
		}
		s.MoveTo(w.Bounds.Origin())
		s.Resize(w.Bounds.Size())
		s.SetLayoutRoot(w.Layout)
		if w.Hidden {
			s.Close()
		} else {
			s.Reopen()
		}
		d.arrangeSurface(s, windowInner(s.Size()), w)
	}

	kept := d.order[:0]
	for _, w := range d.order {
		if live[w] {
			kept = append(kept, w)
			continue
		}
		if s := d.natives[w]; s != nil {
			s.Close()
		}
		delete(d.natives, w)
	}
	d.order = kept
}

// restack stamps stacking orders: the main surface at the back, native
// windows above it, managed windows on top.
func (d *Desktop) restack() {
	d.Main.SetZ(0)
	z := 1
	for _, w := range d.order {
		d.natives[w].SetZ(z)
		z++
	}
	for _, mw := range d.Managed.Windows() {
		mw.Surface.SetZ(z)
		z++
	}
	for id, ps := range d.panes {
		s := d.surfaceByID(id)
		if s == nil {
			continue
		}
		zs, _ := s.Z()
		for i := range ps {
			ps[i].Z = zs
		}
	}
}

func (d *Desktop) surfaceByID(id string) *surface.Surface {
	for _, s := range d.hosts() {
		if s.ID() == id {
			return s
		}
	}
	return nil
}

// raise brings a floating window to the front of its kind.
func (d *Desktop) raise(w *layout.Window) {
	if w.Managed {
		d.Managed.Raise(w)
	} else {
		for i, o := range d.order {
			if o == w {
				d.order = append(append(d.order[:i:i], d.order[i+1:]...), w)
				break
			}
		}
	}
	d.restack()
}

// windowInner is the local area inside a floating window's border.
func windowInner(sz geom.Size) geom.Rect {
	return geom.R(1, 1, math.Max(sz.W-2, 0), math.Max(sz.H-2, 0))
}

// fitWindow enforces the minimum floating size and keeps the title row of
// w on screen.
func fitWindow(w *layout.Window, area geom.Rect) {
	b := w.Bounds
	b.X, b.Y = math.Floor(b.X), math.Floor(b.Y)
	b.W = math.Max(math.Floor(b.W), config.MinFloatingWidth)
	b.H = math.Max(math.Floor(b.H), config.MinFloatingHeight)
	if !area.Empty() {
		b.X = math.Max(area.X, math.Min(b.X, area.X+area.W-b.W))
		b.Y = math.Max(area.Y, math.Min(b.Y, area.Y+area.H-1))
	}
	w.Bounds = b
}

// arrangeSurface lays the surface's root out over the local rectangle r,
// replacing its regions and panes.
func (d *Desktop) arrangeSurface(s *surface.Surface, r geom.Rect, w *layout.Window) {
	s.ClearRegions()
	if root := s.LayoutRoot(); root != nil && !r.Empty() {
		d.arrange(s, root, r, w)
	}
}

func (d *Desktop) arrange(s *surface.Surface, n *layout.Dockable, r geom.Rect, w *layout.Window) {
	n.Bounds = r.Translate(s.Origin())

	switch {
	case n.Kind == layout.KindRoot:
		if len(n.Children) == 0 {
			s.AddRegion(r, surface.DropArea, n)
			return
		}
		d.arrange(s, n.Children[0], r, w)

	case n.Kind == layout.KindSplit:
		for i, child := range n.Children {
			d.arrange(s, child, splitCell(r, n.Orientation, i, len(n.Children)), w)
		}

	case n.Kind.IsTabbed():
		d.arrangeDock(s, n, r, w)
	}
}

// splitCell returns the i-th of n even cells of r along o.
func splitCell(r geom.Rect, o layout.Orientation, i, n int) geom.Rect {
	if o == layout.Horizontal {
		x0 := math.Floor(r.W * float64(i) / float64(n))
		x1 := math.Floor(r.W * float64(i+1) / float64(n))
		return geom.R(r.X+x0, r.Y, x1-x0, r.H)
	}
	y0 := math.Floor(r.H * float64(i) / float64(n))
	y1 := math.Floor(r.H * float64(i+1) / float64(n))
	return geom.R(r.X, r.Y+y0, r.W, y1-y0)
}

// arrangeDock adds the content drop region of a tabbed dock and one
// drag-and-drop region per tab on its header row. Tabs are added last so
// they sit on top.
func (d *Desktop) arrangeDock(s *surface.Surface, dock *layout.Dockable, r geom.Rect, w *layout.Window) {
	origin := s.Origin()
	p := Pane{Dock: dock, Rect: r.Translate(origin), Window: w}

	content := geom.R(r.X, r.Y+config.TabRowHeight, r.W, math.Max(r.H-config.TabRowHeight, 0))
	if !content.Empty() {
		s.AddRegion(content, surface.DropArea, dock)
	}

	x := r.X
	for _, leaf := range dock.Children {
		leaf.Bounds = content.Translate(origin)
		width := math.Min(float64(TabWidth(leaf.Title)), r.X+r.W-x)
		if width <= 0 {
			continue
		}
		tr := geom.R(x, r.Y, width, config.TabRowHeight)
		s.AddRegion(tr, surface.DragArea|surface.DropArea, leaf)
		p.Tabs = append(p.Tabs, Tab{Leaf: leaf, Rect: tr.Translate(origin)})
		x += width
	}

	d.panes[s.ID()] = append(d.panes[s.ID()], p)
}

// TabWidth is the header width of a tab titled title: a marker cell, the
// title and a separator, capped at MaxTabTitleWidth.
func TabWidth(title string) int {
	return min(ansi.StringWidth(title)+2, config.MaxTabTitleWidth)
}

// Panes returns the panes drawn on s.
func (d *Desktop) Panes(s *surface.Surface) []Pane {
	return d.panes[s.ID()]
}

// TabAt returns the screen rectangle of leaf's tab.
func (d *Desktop) TabAt(leaf *layout.Dockable) (geom.Rect, bool) {
	for _, ps := range d.panes {
		for _, p := range ps {
			for _, t := range p.Tabs {
				if t.Leaf == leaf {
					return t.Rect, true
				}
			}
		}
	}
	return geom.Rect{}, false
}
