package docking

import (
	"testing"

	"github.com/Gaurav-Gosain/tuidock/internal/geom"
	"github.com/Gaurav-Gosain/tuidock/internal/layout"
	"github.com/Gaurav-Gosain/tuidock/internal/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// panicSurface is a surface whose hit test blows up.
type panicSurface struct {
	*surface.Surface
}

func (p panicSurface) HitTest(geom.Point, func(*surface.Region) bool) (*surface.Region, error) {
	panic("broken region")
}

func dropSurface(name string, origin geom.Point, d *layout.Dockable) *surface.Surface {
	s := surface.New(name, surface.KindNative, origin, geom.Size{W: 20, H: 10})
	s.AddRegion(geom.R(0, 0, 20, 10), surface.DropArea, d)
	return s
}

func TestResolveOrder(t *testing.T) {
	src := surface.New("src", surface.KindMain, geom.Pt(0, 0), geom.Size{W: 80, H: 24})
	srcDock := layout.NewDocumentDock("S")
	src.AddRegion(geom.R(0, 0, 80, 24), surface.DropArea, srcDock)
	first := dropSurface("first", geom.Pt(10, 5), layout.NewDocumentDock("F"))
	second := dropSurface("second", geom.Pt(10, 5), layout.NewDocumentDock("G"))
	p := geom.Pt(15, 8)

	tests := []struct {
		name  string
		setup func()
		want  *surface.Surface
	}{
		{
			name:  "unstacked uses reverse registration order",
			setup: func() {},
			want:  second,
		},
		{
			name: "stacking order wins when every surface reports it",
			setup: func() {
				src.SetZ(0)
				first.SetZ(9)
				second.SetZ(5)
			},
			want: first,
		},
		{
			name: "source skipped even when on top",
			setup: func() {
				src.SetZ(100)
			},
			want: first,
		},
		{
			name: "dead surfaces are skipped",
			setup: func() {
				first.Close()
			},
			want: second,
		},
		{
			name: "falls back to the source surface",
			setup: func() {
				second.Close()
			},
			want: src,
		},
	}

	r := NewResolver(testLogger())
	all := []Surface{src, first, second}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			c, ok := r.Resolve(p, src, all)
			require.True(t, ok)
			assert.Same(t, tt.want, c.Surface)
		})
	}
}

func TestResolveIgnoresRegionsWithoutCanDrop(t *testing.T) {
	dock := layout.NewDocumentDock("F")
	s := dropSurface("f", geom.Pt(0, 0), dock)
	r := NewResolver(testLogger())

	_, ok := r.Resolve(geom.Pt(1, 1), nil, []Surface{s})
	require.True(t, ok)

	dock.Caps &^= layout.CanDrop
	_, ok = r.Resolve(geom.Pt(1, 1), nil, []Surface{s})
	assert.False(t, ok)
}

func TestResolveRecoversHitTestFailures(t *testing.T) {
	log, buf := bufferLogger()
	r := NewResolver(log)

	broken := surface.New("broken", surface.KindNative, geom.Pt(0, 0), geom.Size{W: 20, H: 10})
	broken.AddRegion(geom.R(0, 0, -3, 2), surface.DropArea, nil)
	panicky := panicSurface{surface.New("panicky", surface.KindNative, geom.Pt(0, 0), geom.Size{W: 20, H: 10})}
	good := dropSurface("good", geom.Pt(0, 0), layout.NewDocumentDock("G"))

	// front to back: panicky, broken, good
	c, ok := r.Resolve(geom.Pt(1, 1), nil, []Surface{good, broken, panicky})
	require.True(t, ok)
	assert.Same(t, good, c.Surface)
	assert.Contains(t, buf.String(), "hit test panicked")
	assert.Contains(t, buf.String(), "hit test failed")
}

func TestCandidateScreenBounds(t *testing.T) {
	s := dropSurface("f", geom.Pt(30, 5), layout.NewDocumentDock("F"))
	r := NewResolver(testLogger())
	c, ok := r.Resolve(geom.Pt(31, 6), nil, []Surface{s})
	require.True(t, ok)
	assert.Equal(t, geom.R(30, 5, 20, 10), c.ScreenBounds())
	assert.Equal(t, geom.Pt(1, 1), c.Local)
}
