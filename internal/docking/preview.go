package docking

import (
	"slices"

	"github.com/Gaurav-Gosain/tuidock/internal/geom"
	"github.com/Gaurav-Gosain/tuidock/internal/layout"
	"github.com/Gaurav-Gosain/tuidock/internal/surface"
)

// TickQueue defers work to the next frame. Posting under a key that is
// already pending replaces its work but keeps its place, so the latest
// write wins without reordering against earlier posts.
type TickQueue struct {
	keys  []string
	tasks map[string]func()
}

// NewTickQueue creates an empty queue.
func NewTickQueue() *TickQueue {
	return &TickQueue{tasks: make(map[string]func())}
}

// Post schedules fn under key.
func (q *TickQueue) Post(key string, fn func()) {
	if _, ok := q.tasks[key]; !ok {
		q.keys = append(q.keys, key)
	}
	q.tasks[key] = fn
}

// Pending returns the number of scheduled tasks.
func (q *TickQueue) Pending() int {
	return len(q.keys)
}

// Flush runs every pending task in posting order and returns how many ran.
func (q *TickQueue) Flush() int {
	keys := q.keys
	q.keys = nil
	n := 0
	for _, k := range keys {
		fn := q.tasks[k]
		delete(q.tasks, k)
		if fn != nil {
			fn()
			n++
		}
	}
	return n
}

// Drop discards the pending task under key.
func (q *TickQueue) Drop(key string) {
	if _, ok := q.tasks[key]; !ok {
		return
	}
	delete(q.tasks, key)
	if i := slices.Index(q.keys, key); i >= 0 {
		q.keys = slices.Delete(q.keys, i, i+1)
	}
}

// PreviewHost presents the floating drag preview.
type PreviewHost interface {
	Show(at geom.Point, size geom.Size, title string)
	Move(at geom.Point)
	SetStatus(PreviewStatus)
	Hide()
	// Native reports whether the preview is a real top-level surface whose
	// moves are costly.
	Native() bool
}

const previewMoveKey = "preview/move"

// PreviewController drives the one preview of a drag context.
type PreviewController struct {
	host        PreviewHost
	queue       *TickQueue
	coalesce    bool
	defaultSize geom.Size

	size   geom.Size
	frozen bool
	shown  bool
	status PreviewStatus
	pos    geom.Point
}

// NewPreviewController creates a controller for host. Native hosts have
// their moves coalesced through queue when coalesce is set.
func NewPreviewController(host PreviewHost, queue *TickQueue, coalesce bool, defaultSize geom.Size) *PreviewController {
	return &PreviewController{
		host:        host,
		queue:       queue,
		coalesce:    coalesce,
		defaultSize: defaultSize,
	}
}

// SetHost swaps the preview host. A showing preview is hidden first.
func (c *PreviewController) SetHost(host PreviewHost) {
	if c.shown {
		c.Stop()
	}
	c.host = host
}

// Shown reports whether the preview is displayed.
func (c *PreviewController) Shown() bool { return c.shown }

// Status returns the last status token.
func (c *PreviewController) Status() PreviewStatus { return c.status }

// Position returns the last requested position.
func (c *PreviewController) Position() geom.Point { return c.pos }

// Size returns the preview size for source. Once shown the size is frozen.
func (c *PreviewController) Size(source *layout.Dockable) geom.Size {
	if c.frozen {
		return c.size
	}
	return c.sizeFor(source)
}

func (c *PreviewController) sizeFor(source *layout.Dockable) geom.Size {
	if source != nil {
		if b := source.Bounds; !b.Empty() {
			return b.Size()
		}
		if o := source.Owner; o != nil && !o.Bounds.Empty() {
			return o.Bounds.Size()
		}
	}
	return c.defaultSize
}

// Start shows the preview for source at the screen point at.
func (c *PreviewController) Start(source *layout.Dockable, at geom.Point) {
	if c.host == nil {
		return
	}
	if !c.frozen {
		c.size = c.sizeFor(source)
		c.frozen = true
	}
	title := ""
	if source != nil {
		title = source.Title
	}
	c.pos = at
	c.shown = true
	c.status = StatusNone
	c.host.Show(at, c.size, title)
	c.host.SetStatus(c.status)
}

// Move follows the pointer.
func (c *PreviewController) Move(at geom.Point) {
	if !c.shown {
		return
	}
	c.pos = at
	if c.coalesce && c.host.Native() && c.queue != nil {
		c.queue.Post(previewMoveKey, func() {
			if c.shown {
				c.host.Move(c.pos)
			}
		})
		return
	}
	c.host.Move(at)
}

// SetStatus updates the status token when it changed.
func (c *PreviewController) SetStatus(s PreviewStatus) {
	if !c.shown || s == c.status {
		return
	}
	c.status = s
	c.host.SetStatus(s)
}

// Stop hides the preview and unfreezes its size.
func (c *PreviewController) Stop() {
	if c.queue != nil {
		c.queue.Drop(previewMoveKey)
	}
	if c.shown && c.host != nil {
		c.host.Hide()
	}
	c.shown = false
	c.frozen = false
	c.status = StatusNone
}

// SurfacePreview is a PreviewHost backed by a hosting surface of kind
// surface.KindPreview.
type SurfacePreview struct {
	Surface *surface.Surface
	Title   string
	Status  PreviewStatus
	native  bool
}

// NewSurfacePreview creates a hidden preview surface. native selects
// whether it stands for a top-level window or a managed overlay window.
func NewSurfacePreview(native bool) *SurfacePreview {
	s := surface.New("preview", surface.KindPreview, geom.Point{}, geom.Size{})
	s.Close()
	return &SurfacePreview{Surface: s, native: native}
}

// Show places the preview at at and opens it.
func (p *SurfacePreview) Show(at geom.Point, size geom.Size, title string) {
	p.Surface.MoveTo(at)
	p.Surface.Resize(size)
	p.Surface.Reopen()
	p.Title = title
}

// Move repositions the preview.
func (p *SurfacePreview) Move(at geom.Point) { p.Surface.MoveTo(at) }

// SetStatus records the status token to draw.
func (p *SurfacePreview) SetStatus(s PreviewStatus) { p.Status = s }

// Hide closes the preview surface.
func (p *SurfacePreview) Hide() { p.Surface.Close() }

// Native reports whether the preview stands for a top-level window.
func (p *SurfacePreview) Native() bool { return p.native }

// SetNative switches between top-level and managed presentation.
func (p *SurfacePreview) SetNative(native bool) { p.native = native }

// Visible reports whether the preview is on screen.
func (p *SurfacePreview) Visible() bool { return p.Surface.Alive() }
