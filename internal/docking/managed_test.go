package docking

import (
	"testing"

	"github.com/Gaurav-Gosain/tuidock/internal/geom"
	"github.com/Gaurav-Gosain/tuidock/internal/layout"
	"github.com/Gaurav-Gosain/tuidock/internal/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryUniqueness(t *testing.T) {
	r := NewRegistry()
	first := NewManagedLayer("factory-1", geom.R(0, 0, 80, 24))
	second := NewManagedLayer("factory-1", geom.R(0, 0, 80, 24))

	r.Register(first)
	r.Register(second)

	assert.Equal(t, 1, r.Len())
	got, ok := r.Layer("factory-1")
	require.True(t, ok)
	assert.Same(t, second, got)

	assert.False(t, first.Attached())
	assert.False(t, first.Visible())
	assert.Nil(t, first.Dock())
	assert.Empty(t, first.Surfaces())
	assert.True(t, second.Attached())
}

func TestRegistryUnregisterAndDispose(t *testing.T) {
	r := NewRegistry()
	a := NewManagedLayer("a", geom.R(0, 0, 10, 10))
	b := NewManagedLayer("b", geom.R(0, 0, 10, 10))
	r.Register(a)
	r.Register(b)

	r.Unregister("a")
	_, ok := r.Layer("a")
	assert.False(t, ok)
	assert.False(t, a.Attached())
	assert.Equal(t, 1, r.Len())

	r.Dispose()
	assert.Equal(t, 0, r.Len())
	assert.False(t, b.Attached())
}

func managedFactory(t *testing.T) (*layout.Factory, *layout.Dockable, *layout.Dockable) {
	t.Helper()
	a, b := layout.NewDocument("a"), layout.NewDocument("b")
	f := layout.NewFactory(layout.NewRoot(layout.NewDocumentDock("X", a, b, layout.NewDocument("c"))))
	f.SetManagedWindows(true)
	return f, a, b
}

func TestManagedLayerSync(t *testing.T) {
	f, a, b := managedFactory(t)
	wa, err := f.FloatDockable(a, geom.R(2, 2, 20, 6))
	require.NoError(t, err)
	wb, err := f.FloatDockable(b, geom.R(30, 4, 20, 6))
	require.NoError(t, err)

	l := NewManagedLayer(f.ID(), geom.R(0, 1, 80, 23))
	l.Sync(f.Windows())
	require.Len(t, l.Windows(), 2)
	require.Len(t, l.Surfaces(), 2)

	first := l.Windows()[0]
	assert.Same(t, wa, first.Window)
	assert.Equal(t, geom.R(2, 3, 20, 6), first.Surface.Bounds(), "offset by the overlay origin")
	assert.Same(t, wa.Layout, first.Surface.LayoutRoot())

	dock := l.Dock()
	require.NotNil(t, dock)
	assert.True(t, dock.Synthetic)
	assert.Equal(t, FloatOnly, Classify(dock))
	require.Len(t, dock.Children, 2)
	assert.Equal(t, "b", dock.Children[1].Title)

	// hidden windows leave the layer, surviving windows keep their surface
	wb.Hidden = true
	l.Sync(f.Windows())
	require.Len(t, l.Windows(), 1)
	assert.Same(t, first, l.Windows()[0])
	assert.Len(t, dock.Children, 1)
}

func TestManagedLayerRaise(t *testing.T) {
	f, a, b := managedFactory(t)
	wa, _ := f.FloatDockable(a, geom.R(0, 0, 10, 5))
	f.FloatDockable(b, geom.R(0, 0, 10, 5))

	l := NewManagedLayer(f.ID(), geom.R(0, 0, 80, 24))
	l.Sync(f.Windows())
	l.Raise(wa)

	ws := l.Windows()
	require.Len(t, ws, 2)
	assert.Same(t, wa, ws[1].Window)
	za, _ := ws[1].Surface.Z()
	zb, _ := ws[0].Surface.Z()
	assert.Greater(t, za, zb)
}

func TestManagedLayerHideShow(t *testing.T) {
	f, a, _ := managedFactory(t)
	f.FloatDockable(a, geom.R(0, 0, 10, 5))
	l := NewManagedLayer(f.ID(), geom.R(0, 0, 80, 24))
	l.Sync(f.Windows())

	l.Hide()
	assert.Empty(t, l.Surfaces())
	l.Show()
	assert.Len(t, l.Surfaces(), 1)
}

func TestManagedWindowIsDropTarget(t *testing.T) {
	f, a, b := managedFactory(t)
	w, err := f.FloatDockable(a, geom.R(40, 5, 20, 6))
	require.NoError(t, err)

	l := NewManagedLayer(f.ID(), geom.R(0, 0, 80, 24))
	l.Sync(f.Windows())
	mw := l.Windows()[0]
	floatDock := w.Layout.Children[0]
	mw.Surface.AddRegion(geom.R(0, 0, 20, 6), surface.DropArea, floatDock)

	r := NewResolver(testLogger())
	c, ok := r.Resolve(geom.Pt(45, 7), nil, l.Surfaces())
	require.True(t, ok)
	assert.Same(t, floatDock, c.Target())

	v := NewValidator(f, nil, nil, testLogger())
	assert.True(t, v.Validate(b, floatDock, Move, Fill))
}
