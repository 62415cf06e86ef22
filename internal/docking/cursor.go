package docking

import "github.com/Gaurav-Gosain/tuidock/internal/geom"

// Pointer is a pointer position in screen space and in the local space of
// the surface it is over.
type Pointer struct {
	Screen geom.Point
	Local  geom.Point
}

// Cursor is the pointer state shared by every validation in a drag context.
// It is stamped right before each validation, dry run or commit, so the two
// paths always observe the same position.
type Cursor struct {
	Screen geom.Point
	Local  geom.Point
	stamps uint64
}

// Stamp records p as the current position.
func (c *Cursor) Stamp(p Pointer) {
	c.Screen = p.Screen
	c.Local = p.Local
	c.stamps++
}

// Stamps returns how many times the cursor was stamped.
func (c *Cursor) Stamps() uint64 {
	return c.stamps
}
