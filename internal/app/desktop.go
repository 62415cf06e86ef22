// Package app implements the tuidock host: a bubbletea model that arranges
// a layout tree into terminal surfaces and feeds pointer input to the
// docking engine.
package app

import (
	"fmt"
	"time"

	"github.com/Gaurav-Gosain/tuidock/internal/config"
	"github.com/Gaurav-Gosain/tuidock/internal/docking"
	"github.com/Gaurav-Gosain/tuidock/internal/geom"
	"github.com/Gaurav-Gosain/tuidock/internal/layout"
	"github.com/Gaurav-Gosain/tuidock/internal/logging"
	"github.com/Gaurav-Gosain/tuidock/internal/surface"
	"github.com/rs/zerolog"
)

// Desktop is the main application model. It owns the layout factory, the
// drag context shared by every hosting surface, and the presentation state.
type Desktop struct {
	Width  int
	Height int

	Config  *config.UserConfig
	Keys    *config.KeybindRegistry
	Factory *layout.Factory
	Ctx     *docking.DragContext

	// Main hosts the main layout. Native floating windows get surfaces of
	// their own; managed ones live in Managed.
	Main    *surface.Surface
	Managed *docking.ManagedLayer
	Preview *docking.SurfacePreview

	natives  map[*layout.Window]*surface.Surface
	order    []*layout.Window // native windows back to front
	panes    map[string][]Pane
	sessions map[string]*docking.DragSession
	capture  *docking.DragSession
	moving   *windowMove
	version  uint64

	// DragAction is the action of the drag in progress, for the status bar.
	DragAction docking.DragAction
	// LastDrop describes the most recent drop.
	LastDrop string

	ShowLogs        bool
	ShowHelp        bool
	LogScrollOffset int

	Notification     string
	NotificationTime time.Time

	Log  zerolog.Logger
	Logs *logging.Buffer

	docCounter int
}

// Options configures a new Desktop.
type Options struct {
	Config *config.UserConfig
	Keys   *config.KeybindRegistry
	// Layout is the main root; nil builds the sample workspace.
	Layout *layout.Dockable
	Width  int
	Height int
}

// NewDesktop creates the host for opts.
func NewDesktop(opts Options) *Desktop {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	keys := opts.Keys
	if keys == nil {
		keys = config.NewKeybindRegistry(cfg)
	}
	root := opts.Layout
	if root == nil {
		root = DefaultLayout()
	}

	d := &Desktop{
		Width:    opts.Width,
		Height:   opts.Height,
		Config:   cfg,
		Keys:     keys,
		Factory:  layout.NewFactory(root),
		natives:  make(map[*layout.Window]*surface.Surface),
		panes:    make(map[string][]Pane),
		sessions: make(map[string]*docking.DragSession),
		Log:      logging.For("app"),
		Logs:     logging.Lines(),
	}
	d.Factory.SetManagedWindows(cfg.ManagedFloating())

	area := d.area()
	d.Main = surface.New("main", surface.KindMain, area.Origin(), area.Size())
	d.Main.SetLayoutRoot(root)
	d.Preview = docking.NewSurfacePreview(!cfg.ManagedFloating())

	d.Ctx = docking.NewDragContext(d.Factory, d.Preview,
		docking.WithSettings(cfg.DragSettings()),
		docking.WithLogger(logging.For("docking")),
	)
	d.Managed = docking.NewManagedLayer(d.Factory.ID(), area)
	d.Ctx.Registry.Register(d.Managed)

	d.sync()
	return d
}

// DefaultLayout builds the sample workspace shown when no layout is given.
func DefaultLayout() *layout.Dockable {
	editor := layout.NewDocumentDock("editor",
		layout.NewDocument("main.go"),
		layout.NewDocument("README.md"),
		layout.NewDocument("go.mod"),
	)
	explorer := layout.NewToolDock("explorer",
		layout.NewTool("Files"),
		layout.NewTool("Outline"),
	)
	output := layout.NewToolDock("output",
		layout.NewTool("Terminal"),
		layout.NewTool("Problems"),
	)
	return layout.NewRoot(layout.NewSplit(layout.Horizontal,
		explorer,
		layout.NewSplit(layout.Vertical, editor, output),
	))
}

// area is the screen rectangle the main layout and the managed overlay
// cover.
func (d *Desktop) area() geom.Rect {
	h := d.Height
	if config.ShowStatusBar {
		h -= config.StatusBarHeight
	}
	return geom.R(0, 0, float64(max(d.Width, 0)), float64(max(h, 0)))
}

// Resize adapts every surface to a new terminal size.
func (d *Desktop) Resize(width, height int) {
	d.Width, d.Height = width, height
	d.sync()
}

// Surfaces returns every hosting surface that can receive a drop, back to
// front. The preview is never one of them.
func (d *Desktop) Surfaces() []docking.Surface {
	out := []docking.Surface{d.Main}
	for _, w := range d.order {
		if s := d.natives[w]; s != nil && s.Alive() {
			out = append(out, s)
		}
	}
	return append(out, d.Managed.Surfaces()...)
}

// SurfaceAt returns the topmost live surface containing the screen point p.
func (d *Desktop) SurfaceAt(p geom.Point) *surface.Surface {
	var best *surface.Surface
	bestZ := -1
	for _, s := range d.hosts() {
		if !s.Alive() || !s.Bounds().Contains(p) {
			continue
		}
		if z, _ := s.Z(); z > bestZ {
			best, bestZ = s, z
		}
	}
	return best
}

// hosts returns the concrete hosting surfaces.
func (d *Desktop) hosts() []*surface.Surface {
	out := []*surface.Surface{d.Main}
	for _, w := range d.order {
		if s := d.natives[w]; s != nil {
			out = append(out, s)
		}
	}
	for _, mw := range d.Managed.Windows() {
		out = append(out, mw.Surface)
	}
	return out
}

// SessionFor returns the drag session of host, creating it on first use.
func (d *Desktop) SessionFor(host *surface.Surface) *docking.DragSession {
	if s, ok := d.sessions[host.ID()]; ok {
		return s
	}
	s := docking.NewSession(d.Ctx, host)
	s.SetObserver(docking.ObserverFunc(d.observe))
	d.sessions[host.ID()] = s
	return s
}

// Dragging reports whether a docking drag is in progress.
func (d *Desktop) Dragging() bool {
	return d.capture != nil && d.capture.Phase() == docking.PhaseDragging
}

// Capture returns the session holding the pointer, or nil.
func (d *Desktop) Capture() *docking.DragSession {
	return d.capture
}

// NativeSurface returns the surface of a native floating window.
func (d *Desktop) NativeSurface(w *layout.Window) *surface.Surface {
	return d.natives[w]
}

// Notify shows msg in the status bar for a while.
func (d *Desktop) Notify(format string, args ...any) {
	d.Notification = fmt.Sprintf(format, args...)
	d.NotificationTime = time.Now()
}

// LogInfo logs an informational message.
func (d *Desktop) LogInfo(format string, args ...any) {
	d.Log.Info().Msgf(format, args...)
}

// LogWarn logs a warning message.
func (d *Desktop) LogWarn(format string, args ...any) {
	d.Log.Warn().Msgf(format, args...)
}

// LogError logs an error message.
func (d *Desktop) LogError(format string, args ...any) {
	d.Log.Error().Msgf(format, args...)
}

// =============================================================================
// Actions
// =============================================================================

// ToggleFloatingMode switches new floating windows between native surfaces
// and the managed overlay.
func (d *Desktop) ToggleFloatingMode() {
	if d.Config.ManagedFloating() {
		d.Config.Docking.FloatingMode = config.FloatingModeNative
	} else {
		d.Config.Docking.FloatingMode = config.FloatingModeManaged
	}
	config.FloatingMode = d.Config.Docking.FloatingMode
	managed := d.Config.ManagedFloating()
	d.Factory.SetManagedWindows(managed)
	d.Preview.SetNative(!managed)
	d.Notify("Floating windows: %s", d.Config.Docking.FloatingMode)
	d.LogInfo("floating mode set to %s", d.Config.Docking.FloatingMode)
}

// RevealWindows shows every hidden floating window.
func (d *Desktop) RevealWindows() {
	n := d.Factory.ShowWindows(d.Factory.Root())
	d.Notify("Revealed %d window(s)", n)
	d.sync()
}

// HideWindows hides every floating window.
func (d *Desktop) HideWindows() {
	n := d.Factory.HideWindows(d.Factory.Root())
	d.Notify("Hid %d window(s)", n)
	d.sync()
}

// AddDocument appends a new document to the first document dock, or to the
// main root when there is none.
func (d *Desktop) AddDocument() *layout.Dockable {
	d.docCounter++
	doc := layout.NewDocument(fmt.Sprintf("untitled-%d", d.docCounter))

	var target *layout.Dockable
	d.Factory.Root().Walk(func(n *layout.Dockable) bool {
		if n.Kind == layout.KindDocumentDock {
			target = n
			return false
		}
		return true
	})

	if target == nil {
		target = d.Factory.Root()
	}
	// The factory only moves attached leaves.
	layout.NewDocumentDock("new", doc)
	if err := d.Factory.MoveDockable(doc, target); err != nil {
		d.LogError("add document: %v", err)
		return nil
	}
	d.LogInfo("added %s", doc.Title)
	d.sync()
	return doc
}

// Cleanup releases the managed layers.
func (d *Desktop) Cleanup() {
	d.CancelDrag()
	d.Ctx.Registry.Dispose()
}
