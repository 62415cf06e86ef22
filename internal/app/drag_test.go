package app

import (
	"testing"

	"github.com/Gaurav-Gosain/tuidock/internal/docking"
	"github.com/Gaurav-Gosain/tuidock/internal/geom"
	"github.com/Gaurav-Gosain/tuidock/internal/layout"
	"github.com/Gaurav-Gosain/tuidock/internal/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gesture presses at from, moves to and releases at to.
func (w *workspace) gesture(from, to geom.Point, action docking.DragAction) {
	w.Press(int(from.X), int(from.Y), action)
	w.Drag(int(to.X), int(to.Y), action)
	w.Release(int(to.X), int(to.Y), action)
}

func TestClickSelectsTab(t *testing.T) {
	w := newWorkspace(t)
	require.True(t, w.Press(70, 0, docking.Move))
	require.NotNil(t, w.Capture())
	require.True(t, w.Release(70, 0, docking.Move))

	assert.Nil(t, w.Capture())
	assert.Equal(t, "README.md", w.editor.Active().Title)
	assert.Equal(t, []string{"main.go", "README.md", "go.mod"}, childTitles(w.editor))
}

func TestPressOnContentIsIgnored(t *testing.T) {
	w := newWorkspace(t)
	assert.False(t, w.Press(30, 10, docking.Move))
	assert.Nil(t, w.Capture())
}

func TestDragBelowThresholdStaysPressed(t *testing.T) {
	w := newWorkspace(t)
	require.True(t, w.Press(2, 0, docking.Move))
	w.Drag(5, 1, docking.Move)
	assert.False(t, w.Dragging())
	assert.False(t, w.Preview.Visible())
}

func TestDragDocksIntoOtherDock(t *testing.T) {
	w := newWorkspace(t)
	before := w.Factory.Version()

	require.True(t, w.Press(2, 0, docking.Move)) // Files
	w.Drag(90, 22, docking.Move)                 // centre of the output content
	require.True(t, w.Dragging())
	assert.True(t, w.Preview.Visible())
	assert.Equal(t, docking.StatusDock, w.Preview.Status)

	c, ok := w.Capture().Candidate()
	require.True(t, ok)
	assert.Same(t, w.output, c.Target())
	local, _ := w.Capture().Operations()
	assert.Equal(t, docking.Fill, local)

	w.Release(90, 22, docking.Move)
	assert.False(t, w.Dragging())
	assert.False(t, w.Preview.Visible())
	assert.Greater(t, w.Factory.Version(), before)
	assert.Equal(t, []string{"Terminal", "Problems", "Files"}, childTitles(w.output))
	assert.Equal(t, []string{"Outline"}, childTitles(w.explorer))
	assert.Equal(t, "Files → output", w.LastDrop)

	files := leaf(t, w.output, "Files")
	_, ok = w.TabAt(files)
	assert.True(t, ok, "surfaces are rearranged after the drop")
}

func TestDragToEdgeSplits(t *testing.T) {
	w := newWorkspace(t)
	// Left band of the output content: columns 60-74.
	w.gesture(geom.Pt(2, 0), geom.Pt(62, 22), docking.Move)

	require.Equal(t, []string{"Outline"}, childTitles(w.explorer))

	var host *layout.Dockable
	w.Factory.Root().Walk(func(n *layout.Dockable) bool {
		if n.Title == "Files" {
			host = n.Owner
			return false
		}
		return true
	})
	require.NotNil(t, host)
	assert.NotSame(t, w.output, host, "an edge drop creates a new dock")
	split := host.Owner
	require.Equal(t, layout.KindSplit, split.Kind)
	assert.Equal(t, layout.Horizontal, split.Orientation)
	assert.Equal(t, split.IndexOf(host)+1, split.IndexOf(w.output))
}

func TestCopySwapsTabs(t *testing.T) {
	w := newWorkspace(t)
	// ctrl-drag Files onto the centre of the Terminal tab.
	w.gesture(geom.Pt(2, 0), geom.Pt(65, 15), docking.Copy)

	assert.Equal(t, []string{"Terminal", "Outline"}, childTitles(w.explorer))
	assert.Equal(t, []string{"Files", "Problems"}, childTitles(w.output))
}

func TestDropOutsideFloatsNativeWindow(t *testing.T) {
	w := newWorkspace(t)
	// Row 30 is the status bar, outside every hosting surface.
	w.gesture(geom.Pt(8, 0), geom.Pt(10, 30), docking.Move) // Outline

	wins := w.Factory.Windows()
	require.Len(t, wins, 1)
	win := wins[0]
	assert.False(t, win.Managed)
	assert.Equal(t, "Outline", win.Title)
	assert.Equal(t, []string{"Files"}, childTitles(w.explorer))

	s := w.NativeSurface(win)
	require.NotNil(t, s)
	assert.True(t, s.Alive())
	assert.Equal(t, surface.KindNative, s.Kind())
	assert.Contains(t, w.Surfaces(), docking.Surface(s))
	z, ok := s.Z()
	assert.True(t, ok)
	assert.Greater(t, z, 0, "floating windows stack above the main surface")
	assert.Equal(t, geom.Pt(10, 29), win.Bounds.Origin(), "title row is kept on screen")
	assert.Equal(t, "Outline floated", w.LastDrop)
}

func TestDropOutsideFloatsManagedWindow(t *testing.T) {
	w := newWorkspace(t)
	w.ToggleFloatingMode()
	t.Cleanup(w.ToggleFloatingMode)

	w.gesture(geom.Pt(8, 0), geom.Pt(10, 30), docking.Move)

	wins := w.Factory.Windows()
	require.Len(t, wins, 1)
	assert.True(t, wins[0].Managed)
	assert.Nil(t, w.NativeSurface(wins[0]))
	require.Len(t, w.Managed.Windows(), 1)
	assert.Equal(t, "Outline", w.Managed.Dock().Children[0].Title)
}

func TestDragBetweenSurfaces(t *testing.T) {
	w := newWorkspace(t)
	w.gesture(geom.Pt(8, 0), geom.Pt(10, 30), docking.Move)
	win := w.Factory.Windows()[0]

	// Move the window over the editor by its title row, then drag its tab
	// back into the explorer.
	require.True(t, w.Press(20, 29, docking.Move))
	require.Same(t, win, w.MovingWindow())
	w.Release(80, 5, docking.Move)
	assert.Nil(t, w.MovingWindow())
	assert.Equal(t, geom.Pt(60, 5), win.Bounds.Origin(), "clamped to the right edge")

	tabRect, ok := w.TabAt(leaf(t, win.Layout.Children[0], "Outline"))
	require.True(t, ok)
	assert.Equal(t, geom.R(61, 6, 9, 1), tabRect)

	require.True(t, w.Press(62, 6, docking.Move))
	assert.Same(t, w.NativeSurface(win), w.Capture().Host())
	w.Drag(30, 15, docking.Move) // centre of the explorer content
	c, ok := w.Capture().Candidate()
	require.True(t, ok)
	assert.Same(t, w.explorer, c.Target())
	w.Release(30, 15, docking.Move)

	assert.Empty(t, w.Factory.Windows(), "the emptied window is removed")
	assert.Nil(t, w.NativeSurface(win))
	assert.Equal(t, []string{"Files", "Outline"}, childTitles(w.explorer))
}

func TestCancelDragRestoresState(t *testing.T) {
	w := newWorkspace(t)
	before := w.Factory.Version()

	require.True(t, w.Press(2, 0, docking.Move))
	w.Drag(90, 22, docking.Move)
	require.True(t, w.Dragging())

	assert.True(t, w.CancelDrag())
	assert.False(t, w.Dragging())
	assert.Nil(t, w.Capture())
	assert.False(t, w.Preview.Visible())
	assert.Nil(t, w.Ctx.Adorners.Local())
	assert.Equal(t, before, w.Factory.Version())
	assert.Equal(t, "Drag cancelled", w.Notification)

	assert.False(t, w.CancelDrag(), "nothing left to cancel")
}

func TestSecondPressIsIgnored(t *testing.T) {
	w := newWorkspace(t)
	require.True(t, w.Press(2, 0, docking.Move))
	assert.False(t, w.Press(70, 0, docking.Move))
	assert.Equal(t, "Files", w.Capture().Source().Title)
}

func TestTickFlushesPreviewMoves(t *testing.T) {
	w := newWorkspace(t)
	require.True(t, w.Press(2, 0, docking.Move))
	w.Drag(90, 22, docking.Move)
	w.Drag(95, 23, docking.Move)

	// Native previews coalesce moves until the next frame.
	assert.Equal(t, 1, w.Ctx.Queue.Pending())
	w.Tick()
	assert.Equal(t, 0, w.Ctx.Queue.Pending())
	assert.Equal(t, geom.Pt(95, 23), w.Preview.Surface.Origin())
}

func TestSessionsPrunedWithTheirSurfaces(t *testing.T) {
	tests := []struct {
		name    string
		managed bool
	}{
		{name: "native window"},
		{name: "managed window", managed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newWorkspace(t)
			if tt.managed {
				w.ToggleFloatingMode()
				t.Cleanup(w.ToggleFloatingMode)
			}
			w.gesture(geom.Pt(8, 0), geom.Pt(10, 30), docking.Move) // Outline
			wins := w.Factory.Windows()
			require.Len(t, wins, 1)
			win := wins[0]

			var host *surface.Surface
			if tt.managed {
				require.Len(t, w.Managed.Windows(), 1)
				host = w.Managed.Windows()[0].Surface
			} else {
				host = w.NativeSurface(win)
			}
			require.NotNil(t, host)
			w.SessionFor(host)
			require.Contains(t, w.sessions, host.ID())

			outline := leaf(t, win.Layout.Children[0], "Outline")
			require.NoError(t, w.Factory.MoveDockable(outline, w.explorer))
			w.sync()

			assert.Empty(t, w.Factory.Windows())
			assert.NotContains(t, w.sessions, host.ID())
			assert.Contains(t, w.sessions, w.Main.ID(), "the main surface keeps its session")
		})
	}
}
