package docking

import (
	"github.com/Gaurav-Gosain/tuidock/internal/geom"
	"github.com/Gaurav-Gosain/tuidock/internal/layout"
	"github.com/Gaurav-Gosain/tuidock/internal/surface"
)

// ManagedWindow is one pseudo-window of a managed layer.
type ManagedWindow struct {
	Window *layout.Window
	// Surface hosts the window's layout inside the overlay.
	Surface *surface.Surface
	// Document is the entry for the window in the layer's synthetic dock.
	Document *layout.Dockable
}

// ManagedLayer emulates floating windows inside one overlay surface. It owns
// a synthetic dock listing its windows.
type ManagedLayer struct {
	factoryID string
	overlay   *surface.Surface
	dock      *layout.Dockable
	windows   []*ManagedWindow
	visible   bool
	attached  bool
	nextZ     int
}

// NewManagedLayer creates a layer for the factory with the given ID,
// covering bounds.
func NewManagedLayer(factoryID string, bounds geom.Rect) *ManagedLayer {
	dock := layout.NewDocumentDock("managed windows")
	dock.Synthetic = true
	dock.Caps = layout.CanDrop
	return &ManagedLayer{
		factoryID: factoryID,
		overlay:   surface.New("managed", surface.KindOverlay, bounds.Origin(), bounds.Size()),
		dock:      dock,
		visible:   true,
		attached:  true,
	}
}

// FactoryID returns the ID of the factory the layer belongs to.
func (l *ManagedLayer) FactoryID() string { return l.factoryID }

// Overlay returns the overlay surface.
func (l *ManagedLayer) Overlay() *surface.Surface { return l.overlay }

// Dock returns the synthetic dock, or nil once detached.
func (l *ManagedLayer) Dock() *layout.Dockable {
	if !l.attached {
		return nil
	}
	return l.dock
}

// Attached reports whether the layer still owns its dock.
func (l *ManagedLayer) Attached() bool { return l.attached }

// Visible reports whether the layer is shown.
func (l *ManagedLayer) Visible() bool { return l.visible && l.attached }

// Windows returns the pseudo-windows back to front.
func (l *ManagedLayer) Windows() []*ManagedWindow { return l.windows }

// Resize fits the overlay to new bounds.
func (l *ManagedLayer) Resize(bounds geom.Rect) {
	l.overlay.MoveTo(bounds.Origin())
	l.overlay.Resize(bounds.Size())
}

// Sync reconciles the pseudo-windows with the managed, visible windows in
// ws. Existing windows keep their surfaces and stacking order.
func (l *ManagedLayer) Sync(ws []*layout.Window) {
	if !l.attached {
		return
	}
	want := make(map[*layout.Window]bool, len(ws))
	for _, w := range ws {
		if w.Managed && !w.Hidden {
			want[w] = true
		}
	}

	kept := l.windows[:0]
	for _, mw := range l.windows {
		if want[mw.Window] {
			kept = append(kept, mw)
			delete(want, mw.Window)
			continue
		}
		mw.Surface.Close()
	}
	l.windows = kept

	for _, w := range ws {
		if want[w] {
			l.add(w)
		}
	}

	for _, mw := range l.windows {
		mw.Surface.MoveTo(l.overlay.Origin().Add(mw.Window.Bounds.Origin()))
		mw.Surface.Resize(mw.Window.Bounds.Size())
		mw.Surface.SetLayoutRoot(mw.Window.Layout)
		mw.Document.Title = mw.Window.Title
		if l.visible {
			mw.Surface.Reopen()
		} else {
			mw.Surface.Close()
		}
	}
	l.syncDock()
}

func (l *ManagedLayer) add(w *layout.Window) *ManagedWindow {
	s := surface.New(w.Title, surface.KindManaged, w.Bounds.Origin(), w.Bounds.Size())
	s.Window = w
	s.SetLayoutRoot(w.Layout)
	l.nextZ++
	s.SetZ(l.nextZ)

	doc := layout.NewDocument(w.Title)
	doc.Synthetic = true
	doc.Caps = 0

	mw := &ManagedWindow{Window: w, Surface: s, Document: doc}
	l.windows = append(l.windows, mw)
	return mw
}

func (l *ManagedLayer) syncDock() {
	for _, c := range l.dock.Children {
		c.Owner = nil
	}
	l.dock.Children = l.dock.Children[:0]
	for _, mw := range l.windows {
		mw.Document.Owner = l.dock
		l.dock.Children = append(l.dock.Children, mw.Document)
	}
}

// Raise brings the pseudo-window hosting w to the front.
func (l *ManagedLayer) Raise(w *layout.Window) {
	for i, mw := range l.windows {
		if mw.Window != w {
			continue
		}
		l.nextZ++
		mw.Surface.SetZ(l.nextZ)
		l.windows = append(l.windows[:i], l.windows[i+1:]...)
		l.windows = append(l.windows, mw)
		l.syncDock()
		return
	}
}

// Surfaces returns the live pseudo-window surfaces back to front.
func (l *ManagedLayer) Surfaces() []Surface {
	if !l.Visible() {
		return nil
	}
	out := make([]Surface, 0, len(l.windows))
	for _, mw := range l.windows {
		if mw.Surface.Alive() {
			out = append(out, mw.Surface)
		}
	}
	return out
}

// Show makes the layer visible again.
func (l *ManagedLayer) Show() {
	if !l.attached {
		return
	}
	l.visible = true
	for _, mw := range l.windows {
		mw.Surface.Reopen()
	}
}

// Hide hides every pseudo-window.
func (l *ManagedLayer) Hide() {
	l.visible = false
	for _, mw := range l.windows {
		mw.Surface.Close()
	}
}

// Detach hides the layer and releases its dock and windows.
func (l *ManagedLayer) Detach() {
	l.Hide()
	for _, c := range l.dock.Children {
		c.Owner = nil
	}
	l.dock.Children = nil
	l.windows = nil
	l.overlay.Close()
	l.attached = false
}

// Registry maps each factory ID to its one managed layer. Layers live until
// they are replaced, unregistered or the registry is disposed.
type Registry struct {
	layers map[string]*ManagedLayer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{layers: make(map[string]*ManagedLayer)}
}

// Register installs l for its factory. A previous layer for the same
// factory is hidden and detached first.
func (r *Registry) Register(l *ManagedLayer) {
	if old, ok := r.layers[l.factoryID]; ok && old != l {
		old.Detach()
	}
	r.layers[l.factoryID] = l
}

// Unregister detaches and forgets the layer of factoryID.
func (r *Registry) Unregister(factoryID string) {
	if l, ok := r.layers[factoryID]; ok {
		l.Detach()
		delete(r.layers, factoryID)
	}
}

// Layer returns the layer registered for factoryID.
func (r *Registry) Layer(factoryID string) (*ManagedLayer, bool) {
	l, ok := r.layers[factoryID]
	return l, ok
}

// Len returns the number of registered layers.
func (r *Registry) Len() int {
	return len(r.layers)
}

// Dispose detaches every layer.
func (r *Registry) Dispose() {
	for id, l := range r.layers {
		l.Detach()
		delete(r.layers, id)
	}
}
