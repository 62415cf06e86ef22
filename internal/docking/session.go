package docking

import (
	"math"

	"github.com/Gaurav-Gosain/tuidock/internal/geom"
	"github.com/Gaurav-Gosain/tuidock/internal/layout"
	"github.com/Gaurav-Gosain/tuidock/internal/surface"
)

// NoticeKind classifies what happened during one Process call.
type NoticeKind int

const (
	NoticeEnter NoticeKind = iota
	NoticeLeave
	NoticeOver
	NoticeDrop
	NoticeFloat
	NoticeCancel
)

func (k NoticeKind) String() string {
	switch k {
	case NoticeEnter:
		return "enter"
	case NoticeLeave:
		return "leave"
	case NoticeOver:
		return "over"
	case NoticeDrop:
		return "drop"
	case NoticeFloat:
		return "float"
	case NoticeCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Notice is one event of a drag. For Enter, Valid is the adorner's
// visibility; for Over, whether Op is permitted; for Drop and Float,
// whether the factory committed the change.
type Notice struct {
	Kind    NoticeKind
	Source  *layout.Dockable
	Target  *layout.Dockable
	Surface Surface
	Op      DockOperation
	Valid   bool
}

// Transition is the result of one Process call.
type Transition struct {
	From    Phase
	To      Phase
	Notices []Notice
}

// Has reports whether a notice of kind k was emitted.
func (t Transition) Has(k NoticeKind) bool {
	for _, n := range t.Notices {
		if n.Kind == k {
			return true
		}
	}
	return false
}

// Committed reports whether the transition changed the layout.
func (t Transition) Committed() bool {
	for _, n := range t.Notices {
		if (n.Kind == NoticeDrop || n.Kind == NoticeFloat) && n.Valid {
			return true
		}
	}
	return false
}

// Observer receives every notice as it is emitted.
type Observer interface {
	Notify(Notice)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Notice)

// Notify calls f(n).
func (f ObserverFunc) Notify(n Notice) { f(n) }

type dragState struct {
	phase  Phase
	source *layout.Dockable
	origin Surface
	press  geom.Point
	action DragAction
	offset geom.Point
	screen geom.Point

	candidate    Candidate
	hasCandidate bool
	localOp      DockOperation
	globalOp     DockOperation
}

// DragSession runs the press/drag/drop state machine of one hosting
// surface. Positions passed to Process are local to the active surface.
type DragSession struct {
	ctx      *DragContext
	host     Surface
	observer Observer
	st       *dragState
}

// NewSession creates an idle session for host sharing ctx.
func NewSession(ctx *DragContext, host Surface) *DragSession {
	return &DragSession{ctx: ctx, host: host}
}

// SetObserver installs o; nil removes it.
func (s *DragSession) SetObserver(o Observer) {
	s.observer = o
}

// Host returns the surface the session belongs to.
func (s *DragSession) Host() Surface { return s.host }

// Phase returns the current phase.
func (s *DragSession) Phase() Phase {
	if s.st == nil {
		return PhaseIdle
	}
	return s.st.phase
}

// Active reports whether a gesture is in progress.
func (s *DragSession) Active() bool { return s.st != nil }

// Source returns the dockable being dragged, or nil.
func (s *DragSession) Source() *layout.Dockable {
	if s.st == nil {
		return nil
	}
	return s.st.source
}

// Candidate returns the current drop candidate.
func (s *DragSession) Candidate() (Candidate, bool) {
	if s.st == nil || !s.st.hasCandidate {
		return Candidate{}, false
	}
	return s.st.candidate, true
}

// Operations returns the local and global operations under the pointer.
func (s *DragSession) Operations() (local, global DockOperation) {
	if s.st == nil {
		return None, None
	}
	return s.st.localOp, s.st.globalOp
}

// Offset returns the displacement from the press point.
func (s *DragSession) Offset() geom.Point {
	if s.st == nil {
		return geom.Point{}
	}
	return s.st.offset
}

// Process feeds one raw pointer event into the session. pos is local to
// active, which defaults to the session's host; all lists every hosting
// surface that may receive the drop.
func (s *DragSession) Process(pos geom.Point, ev EventType, action DragAction, active Surface, all []Surface) Transition {
	t := Transition{From: s.Phase()}
	if active == nil {
		active = s.host
	}
	switch ev {
	case Pressed:
		s.press(pos, action, active)
	case Moved:
		s.move(&t, pos, action, active, all)
	case Released:
		s.release(&t, pos, action, active, all)
	case CaptureLost:
		s.cancel(&t)
	}
	t.To = s.Phase()
	return t
}

func (s *DragSession) emit(t *Transition, n Notice) {
	if s.st != nil {
		n.Source = s.st.source
	}
	t.Notices = append(t.Notices, n)
	if s.observer != nil {
		s.observer.Notify(n)
	}
}

func draggable(r *surface.Region) bool {
	d := r.Dockable
	return r.Is(surface.DragArea) && d != nil && d.Kind.IsLeaf() && d.Has(layout.CanDrag)
}

func (s *DragSession) press(pos geom.Point, action DragAction, active Surface) {
	if s.st != nil {
		return
	}
	screen, ok := active.LocalToScreen(pos)
	if !ok {
		return
	}
	region := s.ctx.Resolver.Hit(active, pos, draggable)
	if region == nil {
		return
	}
	s.st = &dragState{
		phase:  PhasePressed,
		source: region.Dockable,
		origin: active,
		press:  screen,
		screen: screen,
		action: action,
	}
}

func (s *DragSession) move(t *Transition, pos geom.Point, action DragAction, active Surface, all []Surface) {
	st := s.st
	if st == nil {
		return
	}
	screen, ok := active.LocalToScreen(pos)
	if !ok {
		if st.phase == PhaseDragging && st.hasCandidate {
			s.leave(t)
		}
		return
	}
	st.action = action
	st.screen = screen
	st.offset = screen.Sub(st.press)

	if st.phase == PhasePressed {
		if math.Abs(st.offset.X) <= s.ctx.Settings.MinDragX && math.Abs(st.offset.Y) <= s.ctx.Settings.MinDragY {
			return
		}
		s.beginDrag(screen)
	}
	s.update(t, screen, all)
}

func (s *DragSession) beginDrag(screen geom.Point) {
	st := s.st
	st.phase = PhaseDragging
	if s.ctx.Settings.RevealFloatingOnDrag {
		if root := s.ctx.Factory.FindRoot(st.source); root != nil {
			if n := s.ctx.Factory.ShowWindows(root); n > 0 {
				s.ctx.Log.Debug().Int("windows", n).Msg("revealed floating windows")
			}
		}
	}
	s.ctx.Preview.Start(st.source, screen)
	s.ctx.Log.Debug().
		Str("source", st.source.Title).
		Str("offset", st.offset.String()).
		Msg("drag started")
}

// update re-resolves the candidate and recomputes the operations at screen.
func (s *DragSession) update(t *Transition, screen geom.Point, all []Surface) {
	st := s.st
	s.ctx.Preview.Move(screen)

	c, ok := s.ctx.Resolver.Resolve(screen, st.origin, all)
	switch {
	case !ok:
		if st.hasCandidate {
			s.leave(t)
		}
		ptr := Pointer{Screen: screen, Local: screen}
		if s.ctx.Validator.Execute(st.source, nil, st.action, Window, ptr, false) {
			s.ctx.Preview.SetStatus(StatusFloat)
		} else {
			s.ctx.Preview.SetStatus(StatusNone)
		}
	case !st.hasCandidate || !c.Same(st.candidate):
		if st.hasCandidate {
			s.leave(t)
		}
		s.enter(t, c, screen)
	default:
		st.candidate = c
		op := s.evaluate(screen)
		s.emit(t, Notice{
			Kind:    NoticeOver,
			Target:  c.Target(),
			Surface: c.Surface,
			Op:      op,
			Valid:   op != None,
		})
	}
}

func (s *DragSession) enter(t *Transition, c Candidate, screen geom.Point) {
	st := s.st
	st.candidate = c
	st.hasCandidate = true
	target := c.Target()
	cfg := s.ctx.Settings

	// A target that rejects Fill offers no local zones at all.
	ptr := Pointer{Screen: screen, Local: c.Local}
	visible := s.ctx.Validator.Execute(st.source, target, st.action, Fill, ptr, false)
	if visible {
		local := NewLocalAdorner(target, c.Surface, c.ScreenBounds(), cfg.LocalEdgeRatio)
		s.ctx.Adorners.Attach(local)
		local.SetVisible(true)
	} else {
		s.ctx.Adorners.Detach(LocalAdorner)
	}

	s.ctx.Adorners.Detach(GlobalAdorner)
	if root := c.Surface.LayoutRoot(); cfg.GlobalDocking && root != nil {
		if h, v := GlobalTargets(target); h || v {
			g := NewGlobalAdorner(root, c.Surface, c.Surface.Bounds(), cfg.GlobalEdgeCells, h, v)
			s.ctx.Adorners.Attach(g)
		}
	}

	s.emit(t, Notice{
		Kind:    NoticeEnter,
		Target:  target,
		Surface: c.Surface,
		Valid:   visible,
	})
	s.evaluate(screen)
}

// evaluate refreshes both adorners at screen and returns the operation a
// release there would perform.
func (s *DragSession) evaluate(screen geom.Point) DockOperation {
	st := s.st
	v := s.ctx.Validator
	ptr := Pointer{Screen: screen, Local: st.candidate.Local}
	target := st.candidate.Target()

	st.localOp, st.globalOp = None, None
	if local := s.ctx.Adorners.Local(); local != nil {
		local.Refresh(func(op DockOperation) bool {
			return v.Execute(st.source, target, st.action, op, ptr, false)
		})
		st.localOp = local.Selected(screen)
	}
	if g := s.ctx.Adorners.Global(); g != nil {
		root := g.Target()
		g.Refresh(func(op DockOperation) bool {
			return v.ExecuteGlobal(st.source, root, st.action, op, ptr, false)
		})
		st.globalOp = g.Selected(screen)
		offered := false
		for _, z := range g.Zones() {
			offered = offered || z.Valid
		}
		g.SetVisible(offered)
	}

	op := st.globalOp
	if op == None && st.localOp != Window {
		op = st.localOp
	}
	if op != None {
		s.ctx.Preview.SetStatus(StatusDock)
	} else {
		s.ctx.Preview.SetStatus(StatusNone)
	}
	return op
}

func (s *DragSession) leave(t *Transition) {
	st := s.st
	s.emit(t, Notice{
		Kind:    NoticeLeave,
		Target:  st.candidate.Target(),
		Surface: st.candidate.Surface,
	})
	s.ctx.Adorners.DetachAll()
	st.candidate = Candidate{}
	st.hasCandidate = false
	st.localOp, st.globalOp = None, None
}

func (s *DragSession) release(t *Transition, pos geom.Point, action DragAction, active Surface, all []Surface) {
	st := s.st
	if st == nil {
		return
	}
	if st.phase == PhasePressed {
		s.reset()
		return
	}

	st.action = action
	if screen, ok := active.LocalToScreen(pos); ok {
		st.screen = screen
		st.offset = screen.Sub(st.press)
		s.update(t, screen, all)
	}

	v := s.ctx.Validator
	if st.hasCandidate {
		ptr := Pointer{Screen: st.screen, Local: st.candidate.Local}
		target := st.candidate.Target()
		op, done := None, false
		if st.globalOp != None {
			op = st.globalOp
			done = v.ExecuteGlobal(st.source, st.candidate.Surface.LayoutRoot(), st.action, op, ptr, true)
		}
		if !done && st.localOp != None && st.localOp != Window {
			op = st.localOp
			done = v.Execute(st.source, target, st.action, op, ptr, true)
		}
		s.emit(t, Notice{
			Kind:    NoticeDrop,
			Target:  target,
			Surface: st.candidate.Surface,
			Op:      op,
			Valid:   done,
		})
		s.leave(t)
	} else {
		ptr := Pointer{Screen: st.screen, Local: st.screen}
		done := v.Execute(st.source, nil, st.action, Window, ptr, true)
		s.emit(t, Notice{Kind: NoticeFloat, Op: Window, Valid: done})
	}
	s.reset()
}

func (s *DragSession) cancel(t *Transition) {
	if s.st == nil {
		return
	}
	if s.st.hasCandidate {
		s.leave(t)
	}
	s.emit(t, Notice{Kind: NoticeCancel})
	s.reset()
}

func (s *DragSession) reset() {
	s.ctx.Adorners.DetachAll()
	if s.st != nil && s.st.phase == PhaseDragging {
		s.ctx.Preview.Stop()
	}
	s.st = nil
}
