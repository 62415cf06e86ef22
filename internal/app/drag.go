package app

import (
	"fmt"

	"github.com/Gaurav-Gosain/tuidock/internal/docking"
	"github.com/Gaurav-Gosain/tuidock/internal/geom"
	"github.com/Gaurav-Gosain/tuidock/internal/layout"
	"github.com/Gaurav-Gosain/tuidock/internal/surface"
	"github.com/rs/zerolog"
)

// windowMove tracks a floating window dragged by its title row.
type windowMove struct {
	Window *layout.Window
	// Grab is the pressed cell relative to the window origin.
	Grab geom.Point
}

// MovingWindow returns the floating window being dragged by its title row.
func (d *Desktop) MovingWindow() *layout.Window {
	if d.moving == nil {
		return nil
	}
	return d.moving.Window
}

func cell(x, y int) geom.Point {
	return geom.Pt(float64(x), float64(y))
}

// Press starts a gesture at the screen cell (x, y). The topmost surface
// under the pointer owns the gesture until release. It reports whether the
// press was taken.
func (d *Desktop) Press(x, y int, action docking.DragAction) bool {
	if d.capture != nil || d.moving != nil {
		return false
	}
	p := cell(x, y)
	host := d.SurfaceAt(p)
	if host == nil {
		return false
	}

	local := p.Sub(host.Origin())
	if w := host.Window; w != nil {
		d.raise(w)
		if local.Y == 0 {
			d.moving = &windowMove{Window: w, Grab: local}
			return true
		}
	}

	sess := d.SessionFor(host)
	t := sess.Process(local, docking.Pressed, action, host, d.Surfaces())
	if !sess.Active() {
		return false
	}
	d.capture = sess
	d.DragAction = action
	d.afterProcess(t)
	return true
}

// Drag feeds a pointer move at the screen cell (x, y) to the gesture in
// progress.
func (d *Desktop) Drag(x, y int, action docking.DragAction) bool {
	p := cell(x, y)
	if m := d.moving; m != nil {
		b := m.Window.Bounds
		b.X, b.Y = p.X-m.Grab.X, p.Y-m.Grab.Y
		m.Window.Bounds = b
		d.sync()
		return true
	}
	sess := d.capture
	if sess == nil {
		return false
	}
	d.DragAction = action
	t := d.process(sess, p, docking.Moved, action)
	d.afterProcess(t)
	return true
}

// Release ends the gesture in progress at the screen cell (x, y). A release
// that never turned into a drag selects the pressed tab.
func (d *Desktop) Release(x, y int, action docking.DragAction) bool {
	p := cell(x, y)
	if d.moving != nil {
		d.Drag(x, y, action)
		d.moving = nil
		return true
	}
	sess := d.capture
	if sess == nil {
		return false
	}
	source := sess.Source()
	t := d.process(sess, p, docking.Released, action)
	if t.From == docking.PhasePressed && t.To == docking.PhaseIdle {
		d.selectTab(source)
	}
	d.capture = nil
	d.afterProcess(t)
	return true
}

// CancelDrag abandons the gesture in progress, leaving the layout as it
// was.
func (d *Desktop) CancelDrag() bool {
	if d.moving != nil {
		d.moving = nil
		return true
	}
	sess := d.capture
	if sess == nil {
		return false
	}
	t := sess.Process(geom.Point{}, docking.CaptureLost, d.DragAction, nil, nil)
	d.capture = nil
	d.afterProcess(t)
	return true
}

// process hands a screen point to sess in its host's local space. A host
// that died mid-drag still gets the event so the session can leave its
// candidate.
func (d *Desktop) process(sess *docking.DragSession, p geom.Point, ev docking.EventType, action docking.DragAction) docking.Transition {
	host := sess.Host()
	var local geom.Point
	if s, ok := host.(*surface.Surface); ok {
		local = p.Sub(s.Origin())
	} else if l, ok := host.ScreenToLocal(p); ok {
		local = l
	}
	return sess.Process(local, ev, action, host, d.Surfaces())
}

// afterProcess resyncs surfaces after the layout changed and reports
// committed drops.
func (d *Desktop) afterProcess(t docking.Transition) {
	for _, n := range t.Notices {
		switch n.Kind {
		case docking.NoticeDrop:
			if n.Valid {
				d.LastDrop = describeDrop(n)
				d.Notify("%s", d.LastDrop)
			} else {
				d.Notify("Drop rejected")
			}
		case docking.NoticeFloat:
			if n.Valid {
				d.LastDrop = fmt.Sprintf("%s floated", titleOf(n.Source))
				d.Notify("%s", d.LastDrop)
			}
		case docking.NoticeCancel:
			d.Notify("Drag cancelled")
		}
	}
	if d.Factory.Version() != d.version {
		d.sync()
	}
}

// observe logs every notice the sessions emit.
func (d *Desktop) observe(n docking.Notice) {
	var ev *zerolog.Event
	switch n.Kind {
	case docking.NoticeOver:
		ev = d.Log.Trace()
	case docking.NoticeEnter, docking.NoticeLeave:
		ev = d.Log.Debug()
	default:
		ev = d.Log.Info()
	}
	ev.Str("notice", n.Kind.String()).
		Str("source", titleOf(n.Source)).
		Str("target", titleOf(n.Target)).
		Str("op", n.Op.String()).
		Bool("valid", n.Valid).
		Msg("drag")
}

// selectTab makes leaf the active tab of its dock.
func (d *Desktop) selectTab(leaf *layout.Dockable) {
	if leaf == nil || leaf.Owner == nil {
		return
	}
	if i := leaf.Owner.IndexOf(leaf); i >= 0 {
		leaf.Owner.ActiveIndex = i
	}
}

func describeDrop(n docking.Notice) string {
	if n.Op == docking.Fill {
		return fmt.Sprintf("%s → %s", titleOf(n.Source), titleOf(n.Target))
	}
	return fmt.Sprintf("%s → %s of %s", titleOf(n.Source), n.Op, titleOf(n.Target))
}

func titleOf(d *layout.Dockable) string {
	if d == nil {
		return ""
	}
	if d.Title == "" {
		return d.Kind.String()
	}
	return d.Title
}
