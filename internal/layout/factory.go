package layout

import (
	"errors"
	"fmt"

	"github.com/Gaurav-Gosain/tuidock/internal/geom"
	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a dockable is not attached to a tree.
	ErrNotFound = errors.New("layout: dockable not attached")
	// ErrInvalidMove is returned when a restructure would corrupt the tree.
	ErrInvalidMove = errors.New("layout: invalid move")
	// ErrIncompatible is returned when a dock cannot hold the dockable.
	ErrIncompatible = errors.New("layout: incompatible dock")
)

// Side is the edge of a target a split places the new dock on.
type Side int

const (
	SideLeft Side = iota
	SideRight
	SideTop
	SideBottom
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// Orientation returns the split axis a side produces.
func (s Side) Orientation() Orientation {
	if s == SideTop || s == SideBottom {
		return Vertical
	}
	return Horizontal
}

// leading reports whether the new dock goes before the target.
func (s Side) leading() bool {
	return s == SideLeft || s == SideTop
}

// Factory owns one layout tree and performs every structural change to it.
// Version increases by one per successful mutation so callers can detect
// whether anything changed.
type Factory struct {
	id      string
	root    *Dockable
	version uint64
	managed bool
}

// NewFactory creates a factory for root.
func NewFactory(root *Dockable) *Factory {
	return &Factory{
		id:   uuid.New().String(),
		root: root,
	}
}

// ID returns the factory's stable identifier.
func (f *Factory) ID() string {
	return f.id
}

// Root returns the main layout root.
func (f *Factory) Root() *Dockable {
	return f.root
}

// Version returns the mutation counter.
func (f *Factory) Version() uint64 {
	return f.version
}

// SetManagedWindows selects whether new floating windows are managed
// pseudo-windows (true) or top-level surfaces (false).
func (f *Factory) SetManagedWindows(managed bool) {
	f.managed = managed
}

// ManagedWindows reports the current floating window mode.
func (f *Factory) ManagedWindows() bool {
	return f.managed
}

// FindRoot returns the nearest root above d.
func (f *Factory) FindRoot(d *Dockable) *Dockable {
	for n := d; n != nil; n = n.Owner {
		if n.Kind == KindRoot {
			return n
		}
	}
	return nil
}

// mainRoot maps a floating window's root back to the root that owns it.
func mainRoot(root *Dockable) *Dockable {
	if root != nil && root.Window != nil && root.Window.Owner != nil {
		return root.Window.Owner
	}
	return root
}

// Windows returns the floating windows of the main root.
func (f *Factory) Windows() []*Window {
	return f.root.Windows
}

// ShowWindows un-hides every floating window of root's tree and returns how
// many changed.
func (f *Factory) ShowWindows(root *Dockable) int {
	root = mainRoot(root)
	if root == nil {
		return 0
	}
	n := 0
	for _, w := range root.Windows {
		if w.Hidden {
			w.Hidden = false
			n++
		}
	}
	if n > 0 {
		f.version++
	}
	return n
}

// HideWindows hides every floating window of root's tree.
func (f *Factory) HideWindows(root *Dockable) int {
	root = mainRoot(root)
	if root == nil {
		return 0
	}
	n := 0
	for _, w := range root.Windows {
		if !w.Hidden {
			w.Hidden = true
			n++
		}
	}
	if n > 0 {
		f.version++
	}
	return n
}

// MoveDockable moves a leaf into target. A leaf target receives source as
// the next tab of its dock; a tabbed dock appends it; a split gains a new
// tabbed dock holding it; a root forwards to its child.
func (f *Factory) MoveDockable(source, target *Dockable) error {
	if err := f.checkSource(source); err != nil {
		return err
	}
	if target == nil || target == source {
		return fmt.Errorf("move %q onto itself: %w", source.Title, ErrInvalidMove)
	}

	dest, index := f.moveDestination(source, target)
	if dest == nil {
		return fmt.Errorf("move %q into %s: %w", source.Title, target.Kind, ErrIncompatible)
	}

	oldOwner := source.Owner
	if dest == oldOwner {
		from := oldOwner.IndexOf(source)
		if index > from {
			index--
		}
		detach(source)
		insert(dest, source, index)
		dest.ActiveIndex = dest.IndexOf(source)
		f.version++
		return nil
	}

	detach(source)
	insert(dest, source, index)
	dest.ActiveIndex = dest.IndexOf(source)
	f.collapse(oldOwner)
	f.version++
	return nil
}

// moveDestination resolves where a Fill onto target puts source. For splits
// and empty roots it creates the tabbed dock that will receive it.
func (f *Factory) moveDestination(source, target *Dockable) (*Dockable, int) {
	switch {
	case target.Kind.IsLeaf():
		owner := target.Owner
		if owner == nil || !owner.Accepts(source) {
			return nil, 0
		}
		return owner, owner.IndexOf(target) + 1
	case target.Kind.IsTabbed():
		if !target.Accepts(source) {
			return nil, 0
		}
		return target, len(target.Children)
	case target.Kind == KindSplit:
		dock := newTabbedFor(source)
		insert(target, dock, len(target.Children))
		return dock, 0
	case target.Kind == KindRoot:
		if len(target.Children) == 0 {
			dock := newTabbedFor(source)
			insert(target, dock, 0)
			return dock, 0
		}
		return f.moveDestination(source, target.Children[0])
	}
	return nil, 0
}

// SwapDockable exchanges the positions of two leaves.
func (f *Factory) SwapDockable(source, target *Dockable) error {
	if err := f.checkSource(source); err != nil {
		return err
	}
	if target == nil || !target.Kind.IsLeaf() || target.Owner == nil {
		return fmt.Errorf("swap %q: %w", source.Title, ErrInvalidMove)
	}
	if source == target {
		return fmt.Errorf("swap %q with itself: %w", source.Title, ErrInvalidMove)
	}
	so, to := source.Owner, target.Owner
	if !so.Accepts(target) || !to.Accepts(source) {
		return fmt.Errorf("swap %q and %q: %w", source.Title, target.Title, ErrIncompatible)
	}
	si, ti := so.IndexOf(source), to.IndexOf(target)
	so.Children[si], to.Children[ti] = target, source
	source.Owner, target.Owner = to, so
	f.version++
	return nil
}

// SplitToDock places source in a new tabbed dock on side of target. A leaf
// target splits its owning dock. When the target already sits in a split of
// the same orientation the new dock becomes its sibling instead of nesting.
func (f *Factory) SplitToDock(target, source *Dockable, side Side) error {
	if err := f.checkSource(source); err != nil {
		return err
	}
	target = SplitAnchor(target)
	if target == nil || target.Owner == nil {
		return fmt.Errorf("split %q: %w", source.Title, ErrNotFound)
	}
	if SplitEmptiesTarget(target, source) {
		return fmt.Errorf("split %q beside its only dock: %w", source.Title, ErrInvalidMove)
	}

	oldOwner := source.Owner
	detach(source)
	dock := newTabbedFor(source)
	insert(dock, source, 0)

	parent := target.Owner
	at := parent.IndexOf(target)
	o := side.Orientation()
	if parent.Kind == KindSplit && parent.Orientation == o {
		if !side.leading() {
			at++
		}
		insert(parent, dock, at)
	} else {
		split := NewSplit(o)
		parent.Children[at] = split
		split.Owner = parent
		if side.leading() {
			split.adopt(dock, target)
		} else {
			split.adopt(target, dock)
		}
	}
	f.collapse(oldOwner)
	f.version++
	return nil
}

// SplitAnchor returns the node a split around target actually wraps: a leaf
// splits its owning dock.
func SplitAnchor(target *Dockable) *Dockable {
	if target != nil && target.Kind.IsLeaf() {
		return target.Owner
	}
	return target
}

// SplitEmptiesTarget reports whether splitting anchor with source would
// leave anchor empty, which would remove the very dock being split.
func SplitEmptiesTarget(anchor, source *Dockable) bool {
	if anchor == nil || source == nil {
		return false
	}
	leaves := 0
	anchor.Walk(func(n *Dockable) bool {
		if n.Kind.IsLeaf() && n != source {
			leaves++
		}
		return true
	})
	return leaves == 0
}

// FloatDockable moves source into a new floating window at bounds.
func (f *Factory) FloatDockable(source *Dockable, bounds geom.Rect) (*Window, error) {
	if err := f.checkSource(source); err != nil {
		return nil, err
	}
	owner := mainRoot(f.FindRoot(source))
	if owner == nil {
		owner = f.root
	}
	oldOwner := source.Owner
	detach(source)
	dock := newTabbedFor(source)
	insert(dock, source, 0)

	w := &Window{
		ID:      uuid.New().String(),
		Title:   source.Title,
		Bounds:  bounds,
		Managed: f.managed,
		Owner:   owner,
	}
	w.Layout = NewRoot(dock)
	w.Layout.Window = w
	owner.Windows = append(owner.Windows, w)

	f.collapse(oldOwner)
	f.version++
	return w, nil
}

// PinDockable toggles the pinned state of a leaf.
func (f *Factory) PinDockable(d *Dockable) error {
	if d == nil || !d.Has(CanPin) {
		return fmt.Errorf("pin: %w", ErrInvalidMove)
	}
	d.Pinned = !d.Pinned
	f.version++
	return nil
}

// RemoveWindow drops a floating window from its owner.
func (f *Factory) RemoveWindow(w *Window) {
	if w == nil || w.Owner == nil {
		return
	}
	ws := w.Owner.Windows
	for i, c := range ws {
		if c == w {
			w.Owner.Windows = append(ws[:i], ws[i+1:]...)
			f.version++
			return
		}
	}
}

func (f *Factory) checkSource(source *Dockable) error {
	if source == nil || source.Owner == nil {
		return ErrNotFound
	}
	if !source.Kind.IsLeaf() {
		return fmt.Errorf("%s is not a leaf: %w", source.Kind, ErrInvalidMove)
	}
	return nil
}

// collapse removes empty tabbed docks and single-child splits upward from
// d. An emptied floating window root removes its window.
func (f *Factory) collapse(d *Dockable) {
	for d != nil {
		owner := d.Owner
		switch {
		case d.Kind.IsTabbed() && len(d.Children) == 0 && owner != nil:
			detach(d)
		case d.Kind == KindSplit && len(d.Children) == 0 && owner != nil:
			detach(d)
		case d.Kind == KindSplit && len(d.Children) == 1 && owner != nil:
			only := d.Children[0]
			owner.Children[owner.IndexOf(d)] = only
			only.Owner = owner
			d.Children = nil
			d.Owner = nil
		case d.Kind == KindRoot && len(d.Children) == 0 && d.Window != nil:
			f.RemoveWindow(d.Window)
			return
		default:
			return
		}
		d = owner
	}
}

func newTabbedFor(leaf *Dockable) *Dockable {
	if leaf.Kind == KindTool {
		return NewToolDock("tools")
	}
	return NewDocumentDock("documents")
}

func detach(d *Dockable) {
	owner := d.Owner
	if owner == nil {
		return
	}
	i := owner.IndexOf(d)
	if i >= 0 {
		owner.Children = append(owner.Children[:i], owner.Children[i+1:]...)
	}
	if owner.ActiveIndex >= len(owner.Children) {
		owner.ActiveIndex = max(len(owner.Children)-1, 0)
	}
	d.Owner = nil
}

func insert(dock, d *Dockable, at int) {
	at = max(0, min(at, len(dock.Children)))
	dock.Children = append(dock.Children, nil)
	copy(dock.Children[at+1:], dock.Children[at:])
	dock.Children[at] = d
	d.Owner = dock
}
