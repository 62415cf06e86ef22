// Package layout implements the dock layout tree: dockables, the docks that
// own them, the floating windows a root carries, and the Factory that is the
// only code allowed to restructure the tree.
package layout

import (
	"github.com/Gaurav-Gosain/tuidock/internal/geom"
	"github.com/google/uuid"
)

// Kind identifies what a Dockable is.
type Kind int

const (
	// KindDocument is a document leaf.
	KindDocument Kind = iota
	// KindTool is a tool leaf.
	KindTool
	// KindDocumentDock is a tabbed container of documents.
	KindDocumentDock
	// KindToolDock is a tabbed container of tools.
	KindToolDock
	// KindSplit lays its children out side by side along its Orientation.
	KindSplit
	// KindRoot is the top of a layout tree. It has at most one child and
	// carries the floating windows of that tree.
	KindRoot
)

func (k Kind) String() string {
	switch k {
	case KindDocument:
		return "document"
	case KindTool:
		return "tool"
	case KindDocumentDock:
		return "document-dock"
	case KindToolDock:
		return "tool-dock"
	case KindSplit:
		return "split"
	case KindRoot:
		return "root"
	default:
		return "unknown"
	}
}

// IsLeaf reports whether the kind is a document or tool.
func (k Kind) IsLeaf() bool {
	return k == KindDocument || k == KindTool
}

// IsTabbed reports whether the kind is a tabbed container.
func (k Kind) IsTabbed() bool {
	return k == KindDocumentDock || k == KindToolDock
}

// IsDock reports whether the kind owns children.
func (k Kind) IsDock() bool {
	return !k.IsLeaf()
}

// Capability is a set of permissions on a Dockable.
type Capability uint8

const (
	// CanDrag allows the dockable to start a drag.
	CanDrag Capability = 1 << iota
	// CanDrop allows other dockables to be dropped onto it.
	CanDrop
	// CanFloat allows the dockable to be moved into a floating window.
	CanFloat
	// CanClose allows the dockable to be closed.
	CanClose
	// CanPin allows the dockable to be pinned to an edge.
	CanPin
)

// DefaultCaps grants every capability.
const DefaultCaps = CanDrag | CanDrop | CanFloat | CanClose | CanPin

// Orientation is the axis a split lays its children along.
type Orientation int

const (
	// Horizontal places children left to right.
	Horizontal Orientation = iota
	// Vertical places children top to bottom.
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Dockable is one node of the layout tree. Docks are Dockables whose Kind
// owns Children; leaves never have children.
type Dockable struct {
	ID          string
	Title       string
	Kind        Kind
	Caps        Capability
	Owner       *Dockable
	Children    []*Dockable
	Orientation Orientation
	ActiveIndex int
	Pinned      bool

	// Synthetic marks framework-owned nodes, such as the managed window
	// list, that never hold user content.
	Synthetic bool

	// Bounds is the last arranged screen rectangle, stamped by the host.
	Bounds geom.Rect

	// Windows lists the floating windows of a root. Only set on KindRoot.
	Windows []*Window
	// Window is the floating window hosting this root, nil for the main root.
	Window *Window
}

// Window is a floating window record. Its Layout is a root of its own.
type Window struct {
	ID      string
	Title   string
	Bounds  geom.Rect
	Hidden  bool
	Managed bool
	Layout  *Dockable
	Owner   *Dockable
}

func newID() string {
	return uuid.New().String()
}

func newNode(kind Kind, title string) *Dockable {
	return &Dockable{
		ID:    newID(),
		Title: title,
		Kind:  kind,
		Caps:  DefaultCaps,
	}
}

// NewDocument creates a document leaf.
func NewDocument(title string) *Dockable {
	return newNode(KindDocument, title)
}

// NewTool creates a tool leaf.
func NewTool(title string) *Dockable {
	return newNode(KindTool, title)
}

// NewDocumentDock creates a tabbed document container.
func NewDocumentDock(title string, children ...*Dockable) *Dockable {
	d := newNode(KindDocumentDock, title)
	d.adopt(children...)
	return d
}

// NewToolDock creates a tabbed tool container.
func NewToolDock(title string, children ...*Dockable) *Dockable {
	d := newNode(KindToolDock, title)
	d.adopt(children...)
	return d
}

// NewSplit creates a split container.
func NewSplit(o Orientation, children ...*Dockable) *Dockable {
	d := newNode(KindSplit, "")
	d.Orientation = o
	d.adopt(children...)
	return d
}

// NewRoot creates a layout root around child, which may be nil.
func NewRoot(child *Dockable) *Dockable {
	d := newNode(KindRoot, "root")
	if child != nil {
		d.adopt(child)
	}
	return d
}

func (d *Dockable) adopt(children ...*Dockable) {
	for _, c := range children {
		c.Owner = d
		d.Children = append(d.Children, c)
	}
}

// Has reports whether every capability in c is granted.
func (d *Dockable) Has(c Capability) bool {
	return d != nil && d.Caps&c == c
}

// IsDock reports whether d owns children.
func (d *Dockable) IsDock() bool {
	return d != nil && d.Kind.IsDock()
}

// IndexOf returns the position of child in d.Children, or -1.
func (d *Dockable) IndexOf(child *Dockable) int {
	for i, c := range d.Children {
		if c == child {
			return i
		}
	}
	return -1
}

// Active returns the selected child of a tabbed dock.
func (d *Dockable) Active() *Dockable {
	if len(d.Children) == 0 {
		return nil
	}
	if d.ActiveIndex < 0 || d.ActiveIndex >= len(d.Children) {
		return d.Children[0]
	}
	return d.Children[d.ActiveIndex]
}

// Contains reports whether other is d or a descendant of d.
func (d *Dockable) Contains(other *Dockable) bool {
	for n := other; n != nil; n = n.Owner {
		if n == d {
			return true
		}
	}
	return false
}

// Walk visits d and its descendants depth first until fn returns false.
func (d *Dockable) Walk(fn func(*Dockable) bool) bool {
	if !fn(d) {
		return false
	}
	for _, c := range d.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// Find returns the dockable with the given ID in d's subtree.
func (d *Dockable) Find(id string) *Dockable {
	var found *Dockable
	d.Walk(func(n *Dockable) bool {
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// Accepts reports whether a tabbed dock can hold leaf as a tab. Documents go
// into document docks and tools into tool docks.
func (d *Dockable) Accepts(leaf *Dockable) bool {
	if d == nil || leaf == nil || !leaf.Kind.IsLeaf() {
		return false
	}
	switch d.Kind {
	case KindDocumentDock:
		return leaf.Kind == KindDocument
	case KindToolDock:
		return leaf.Kind == KindTool
	default:
		return false
	}
}
