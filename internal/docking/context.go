package docking

import (
	"github.com/Gaurav-Gosain/tuidock/internal/geom"
	"github.com/rs/zerolog"
)

// Settings tune the drag gesture and the adorners.
type Settings struct {
	// MinDragX and MinDragY are the displacements a press must exceed on
	// either axis before it becomes a drag.
	MinDragX float64
	MinDragY float64
	// RevealFloatingOnDrag shows hidden floating windows when a drag starts.
	RevealFloatingOnDrag bool
	// GlobalDocking enables whole-surface edge targets.
	GlobalDocking bool
	// CoalesceNativeMoves defers native preview moves to the next tick.
	CoalesceNativeMoves bool
	// LocalEdgeRatio is the depth of local edge zones as a fraction of the
	// candidate's size.
	LocalEdgeRatio float64
	// GlobalEdgeCells is the depth of global edge zones in cells.
	GlobalEdgeCells float64
	// PreviewSize is the preview size used when the source has no bounds.
	PreviewSize geom.Size
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		MinDragX:             4,
		MinDragY:             4,
		RevealFloatingOnDrag: true,
		GlobalDocking:        true,
		CoalesceNativeMoves:  true,
		LocalEdgeRatio:       0.25,
		GlobalEdgeCells:      2,
		PreviewSize:          geom.Size{W: 30, H: 8},
	}
}

// DragContext owns the state shared by every session that can drag within
// one layout: the factory, the validator and its cursor, the adorner slots,
// the preview, and the managed window registry. Passing one context to
// several sessions keeps at most one adorner of each kind and one preview
// alive between them.
type DragContext struct {
	Settings  Settings
	Factory   Factory
	Cursor    *Cursor
	Validator *Validator
	Resolver  *Resolver
	Adorners  *AdornerSlots
	Preview   *PreviewController
	Queue     *TickQueue
	Registry  *Registry
	Log       zerolog.Logger
}

// ContextOption configures a DragContext.
type ContextOption func(*DragContext)

// WithSettings replaces the default settings.
func WithSettings(s Settings) ContextOption {
	return func(c *DragContext) {
		c.Settings = s
	}
}

// WithLogger sets the logger for resolution and commit diagnostics.
func WithLogger(log zerolog.Logger) ContextOption {
	return func(c *DragContext) {
		c.Log = log
	}
}

// WithRegistry shares an existing managed window registry.
func WithRegistry(r *Registry) ContextOption {
	return func(c *DragContext) {
		c.Registry = r
	}
}

// WithQueue shares an existing tick queue.
func WithQueue(q *TickQueue) ContextOption {
	return func(c *DragContext) {
		c.Queue = q
	}
}

// NewDragContext creates a context committing through f and showing its
// preview on host. host may be nil to run without a preview.
func NewDragContext(f Factory, host PreviewHost, opts ...ContextOption) *DragContext {
	c := &DragContext{
		Settings: DefaultSettings(),
		Factory:  f,
		Cursor:   &Cursor{},
		Adorners: &AdornerSlots{},
		Log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.Queue == nil {
		c.Queue = NewTickQueue()
	}
	if c.Registry == nil {
		c.Registry = NewRegistry()
	}
	c.Resolver = NewResolver(c.Log)
	c.Preview = NewPreviewController(host, c.Queue, c.Settings.CoalesceNativeMoves, c.Settings.PreviewSize)
	c.Validator = NewValidator(f, c.Cursor, c.Preview.Size, c.Log)
	return c
}

// Tick flushes the deferred visual updates. Hosts call it once per frame.
func (c *DragContext) Tick() int {
	return c.Queue.Flush()
}
