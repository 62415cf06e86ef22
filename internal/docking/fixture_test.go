package docking

import (
	"bytes"

	"github.com/Gaurav-Gosain/tuidock/internal/geom"
	"github.com/Gaurav-Gosain/tuidock/internal/layout"
	"github.com/Gaurav-Gosain/tuidock/internal/surface"
	"github.com/rs/zerolog"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// bufferLogger returns a logger writing JSON lines into the returned buffer.
func bufferLogger() (zerolog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return zerolog.New(buf), buf
}

// call records one structural change requested from the factory.
type call struct {
	Method string
	Source *layout.Dockable
	Target *layout.Dockable
	Side   layout.Side
}

// recordingFactory forwards to a real factory and records every mutation.
type recordingFactory struct {
	*layout.Factory
	calls []call
}

func (f *recordingFactory) MoveDockable(source, target *layout.Dockable) error {
	f.calls = append(f.calls, call{Method: "move", Source: source, Target: target})
	return f.Factory.MoveDockable(source, target)
}

func (f *recordingFactory) SwapDockable(source, target *layout.Dockable) error {
	f.calls = append(f.calls, call{Method: "swap", Source: source, Target: target})
	return f.Factory.SwapDockable(source, target)
}

func (f *recordingFactory) SplitToDock(target, source *layout.Dockable, side layout.Side) error {
	f.calls = append(f.calls, call{Method: "split", Source: source, Target: target, Side: side})
	return f.Factory.SplitToDock(target, source, side)
}

func (f *recordingFactory) FloatDockable(source *layout.Dockable, bounds geom.Rect) (*layout.Window, error) {
	f.calls = append(f.calls, call{Method: "float", Source: source})
	return f.Factory.FloatDockable(source, bounds)
}

// previewSpy records what the preview host was asked to do.
type previewSpy struct {
	native bool
	shown  bool
	moves  []geom.Point
	status []PreviewStatus
	size   geom.Size
}

func (p *previewSpy) Show(at geom.Point, size geom.Size, title string) {
	p.shown = true
	p.size = size
}

func (p *previewSpy) Move(at geom.Point) {
	p.moves = append(p.moves, at)
}

func (p *previewSpy) SetStatus(s PreviewStatus) {
	p.status = append(p.status, s)
}

func (p *previewSpy) Hide() {
	p.shown = false
}

func (p *previewSpy) Native() bool {
	return p.native
}

// desk is a main surface showing root -> split(horizontal) -> [X{a, b}, Y{c}].
//
//	X occupies columns 0-39, Y columns 40-79. Row 0 holds the tabs, the
//	remaining rows are the dock contents.
type desk struct {
	factory *recordingFactory
	main    *surface.Surface
	ctx     *DragContext
	session *DragSession
	preview *previewSpy

	x, y    *layout.Dockable
	a, b, c *layout.Dockable
}

func newDesk() *desk {
	d := &desk{}
	d.a, d.b, d.c = layout.NewDocument("a"), layout.NewDocument("b"), layout.NewDocument("c")
	d.x = layout.NewDocumentDock("X", d.a, d.b)
	d.y = layout.NewDocumentDock("Y", d.c)
	root := layout.NewRoot(layout.NewSplit(layout.Horizontal, d.x, d.y))
	d.factory = &recordingFactory{Factory: layout.NewFactory(root)}

	d.main = surface.New("main", surface.KindMain, geom.Pt(0, 0), geom.Size{W: 80, H: 24})
	d.main.SetLayoutRoot(root)
	d.arrange()

	d.preview = &previewSpy{}
	d.ctx = NewDragContext(d.factory, d.preview)
	d.session = NewSession(d.ctx, d.main)
	return d
}

func (d *desk) arrange() {
	d.x.Bounds = geom.R(0, 0, 40, 24)
	d.y.Bounds = geom.R(40, 0, 40, 24)
	d.a.Bounds = geom.R(0, 1, 40, 23)
	d.b.Bounds = geom.R(0, 1, 40, 23)

	d.main.ClearRegions()
	d.main.AddRegion(geom.R(0, 1, 40, 23), surface.DropArea, d.x)
	d.main.AddRegion(geom.R(40, 1, 40, 23), surface.DropArea, d.y)
	d.main.AddRegion(geom.R(0, 0, 10, 1), surface.DragArea|surface.DropArea, d.a)
	d.main.AddRegion(geom.R(10, 0, 10, 1), surface.DragArea|surface.DropArea, d.b)
	d.main.AddRegion(geom.R(40, 0, 10, 1), surface.DragArea|surface.DropArea, d.c)
}

func (d *desk) surfaces() []Surface {
	return []Surface{d.main}
}

func (d *desk) process(x, y float64, ev EventType) Transition {
	return d.session.Process(geom.Pt(x, y), ev, Move, d.main, d.surfaces())
}

func kinds(t Transition) []NoticeKind {
	out := make([]NoticeKind, 0, len(t.Notices))
	for _, n := range t.Notices {
		out = append(out, n.Kind)
	}
	return out
}
