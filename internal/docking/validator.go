package docking

import (
	"github.com/Gaurav-Gosain/tuidock/internal/geom"
	"github.com/Gaurav-Gosain/tuidock/internal/layout"
	"github.com/Gaurav-Gosain/tuidock/internal/logging"
	"github.com/rs/zerolog"
)

// TargetClass is the structural role a drop target can play.
type TargetClass int

const (
	// Rejecting targets accept nothing.
	Rejecting TargetClass = iota
	// FillTarget targets accept Fill but cannot be split.
	FillTarget
	// SplitTarget targets accept Fill and edge splits.
	SplitTarget
	// FloatOnly targets only allow the source to leave as a window.
	FloatOnly
)

func (c TargetClass) String() string {
	switch c {
	case Rejecting:
		return "rejecting"
	case FillTarget:
		return "fill"
	case SplitTarget:
		return "split"
	case FloatOnly:
		return "float-only"
	default:
		return "unknown"
	}
}

// Classify returns the structural class of target.
func Classify(target *layout.Dockable) TargetClass {
	switch {
	case target == nil || !target.Has(layout.CanDrop):
		return Rejecting
	case target.Synthetic:
		return FloatOnly
	case target.Kind == layout.KindRoot && len(target.Children) == 0:
		return FillTarget
	case target.Kind != layout.KindRoot && target.Owner == nil:
		return Rejecting
	default:
		return SplitTarget
	}
}

// Validator decides whether a drop is permitted and commits permitted drops
// through the factory. Validate has no side effects; Execute calls it first
// with the exact same arguments.
type Validator struct {
	factory Factory
	cursor  *Cursor
	sizeFor func(*layout.Dockable) geom.Size
	log     zerolog.Logger
}

// NewValidator creates a validator committing through f. sizeFor supplies
// the size of windows created by Window drops.
func NewValidator(f Factory, cursor *Cursor, sizeFor func(*layout.Dockable) geom.Size, log zerolog.Logger) *Validator {
	if cursor == nil {
		cursor = &Cursor{}
	}
	return &Validator{factory: f, cursor: cursor, sizeFor: sizeFor, log: log}
}

// Cursor returns the shared cursor.
func (v *Validator) Cursor() *Cursor {
	return v.cursor
}

// Validate reports whether dropping source on target with action and op is
// permitted.
func (v *Validator) Validate(source, target *layout.Dockable, action DragAction, op DockOperation) bool {
	if source == nil || !source.Kind.IsLeaf() || source.Owner == nil || !source.Has(layout.CanDrag) {
		return false
	}
	if op == None {
		return false
	}
	if op == Window {
		return action == Move && source.Has(layout.CanFloat) &&
			(target == nil || Classify(target) != Rejecting)
	}
	if target == nil || target == source || source.Contains(target) {
		return false
	}
	if action == Copy {
		return op == Fill && canSwap(source, target)
	}

	switch Classify(target) {
	case Rejecting:
		return false
	case FloatOnly:
		return false
	case FillTarget:
		return op == Fill
	case SplitTarget:
		if op == Fill {
			return canFill(source, target)
		}
		return op.IsEdge() && canSplit(source, target)
	}
	return false
}

// Execute validates the drop and, when commit is set, performs it. With
// commit unset it is a dry run equivalent to Validate. The cursor is stamped
// with at before validating on both paths.
func (v *Validator) Execute(source, target *layout.Dockable, action DragAction, op DockOperation, at Pointer, commit bool) bool {
	v.cursor.Stamp(at)
	if !v.Validate(source, target, action, op) {
		return false
	}
	if !commit {
		return true
	}

	finish := logging.Timed(v.log.With().
		Str("source", source.Title).
		Str("op", op.String()).
		Str("action", action.String()).
		Logger(), "drop", "drop committed", "drop rejected by factory")

	var err error
	switch {
	case op == Window:
		size := geom.Size{}
		if v.sizeFor != nil {
			size = v.sizeFor(source)
		}
		bounds := geom.Rect{X: v.cursor.Screen.X, Y: v.cursor.Screen.Y, W: size.W, H: size.H}
		_, err = v.factory.FloatDockable(source, bounds)
	case action == Copy:
		err = v.factory.SwapDockable(source, target)
	case op == Fill:
		err = v.factory.MoveDockable(source, target)
	default:
		side, _ := op.Side()
		err = v.factory.SplitToDock(splitTarget(target), source, side)
	}
	finish(err)
	return err == nil
}

// ExecuteGlobal performs a whole-surface edge dock onto root, the layout
// root presented by the surface.
func (v *Validator) ExecuteGlobal(source, root *layout.Dockable, action DragAction, op DockOperation, at Pointer, commit bool) bool {
	if !op.IsEdge() || root == nil || root.Kind != layout.KindRoot {
		v.cursor.Stamp(at)
		return false
	}
	return v.Execute(source, root, action, op, at, commit)
}

// splitTarget maps a root onto the node an edge split around it wraps.
func splitTarget(target *layout.Dockable) *layout.Dockable {
	if target.Kind == layout.KindRoot {
		if len(target.Children) == 0 {
			return nil
		}
		return target.Children[0]
	}
	return target
}

// canFill mirrors where the factory puts a Fill.
func canFill(source, target *layout.Dockable) bool {
	switch {
	case target.Kind.IsLeaf():
		return target.Owner != nil && target.Owner.Accepts(source)
	case target.Kind.IsTabbed():
		return target.Accepts(source)
	case target.Kind == layout.KindSplit:
		return true
	case target.Kind == layout.KindRoot:
		if len(target.Children) == 0 {
			return true
		}
		return canFill(source, target.Children[0])
	}
	return false
}

func canSplit(source, target *layout.Dockable) bool {
	anchor := layout.SplitAnchor(splitTarget(target))
	if anchor == nil || anchor.Owner == nil {
		return false
	}
	return !layout.SplitEmptiesTarget(anchor, source)
}

func canSwap(source, target *layout.Dockable) bool {
	if !target.Kind.IsLeaf() || target.Owner == nil {
		return false
	}
	return source.Owner.Accepts(target) && target.Owner.Accepts(source)
}
