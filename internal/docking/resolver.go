package docking

import (
	"fmt"
	"slices"

	"github.com/Gaurav-Gosain/tuidock/internal/geom"
	"github.com/Gaurav-Gosain/tuidock/internal/layout"
	"github.com/Gaurav-Gosain/tuidock/internal/surface"
	"github.com/rs/zerolog"
)

// Candidate is a resolved drop target.
type Candidate struct {
	Surface Surface
	Region  *surface.Region
	// Local is the pointer in the candidate surface's space.
	Local geom.Point
}

// Target returns the dockable bound to the candidate region.
func (c Candidate) Target() *layout.Dockable {
	if c.Region == nil {
		return nil
	}
	return c.Region.Dockable
}

// Same reports whether c and o point at the same region of the same
// surface.
func (c Candidate) Same(o Candidate) bool {
	return c.Surface == o.Surface && c.Region == o.Region
}

// ScreenBounds returns the candidate region in screen space.
func (c Candidate) ScreenBounds() geom.Rect {
	origin, _ := c.Surface.LocalToScreen(c.Region.Bounds.Origin())
	return geom.Rect{X: origin.X, Y: origin.Y, W: c.Region.Bounds.W, H: c.Region.Bounds.H}
}

// Resolver finds the topmost drop-enabled region under the pointer across
// every hosting surface.
type Resolver struct {
	log zerolog.Logger
}

// NewResolver creates a resolver that logs hit-test failures to log.
func NewResolver(log zerolog.Logger) *Resolver {
	return &Resolver{log: log}
}

// Droppable is the hit-test predicate for drop regions.
func Droppable(r *surface.Region) bool {
	return r.Is(surface.DropArea) && r.Dockable.Has(layout.CanDrop)
}

// Resolve returns the candidate under the screen point p. The source
// surface is only considered after every other surface missed.
func (r *Resolver) Resolve(p geom.Point, source Surface, all []Surface) (Candidate, bool) {
	for _, s := range r.order(all) {
		if s == source {
			continue
		}
		if c, ok := r.probe(s, p); ok {
			return c, true
		}
	}
	if source != nil {
		return r.probe(source, p)
	}
	return Candidate{}, false
}

// order returns the surfaces front to back. When every surface reports a
// stacking order it is trusted; otherwise later registrations are assumed
// to be on top.
func (r *Resolver) order(all []Surface) []Surface {
	out := make([]Surface, 0, len(all))
	stacked := true
	for _, s := range all {
		if s == nil {
			continue
		}
		if _, ok := s.Z(); !ok {
			stacked = false
		}
		out = append(out, s)
	}
	if stacked {
		slices.SortStableFunc(out, func(a, b Surface) int {
			za, _ := a.Z()
			zb, _ := b.Z()
			return zb - za
		})
		return out
	}
	slices.Reverse(out)
	return out
}

// probe hit-tests one surface for drop regions. Failures count as a miss.
func (r *Resolver) probe(s Surface, p geom.Point) (Candidate, bool) {
	if !s.Alive() {
		return Candidate{}, false
	}
	local, ok := s.ScreenToLocal(p)
	if !ok {
		return Candidate{}, false
	}
	region := r.Hit(s, local, Droppable)
	if region == nil {
		return Candidate{}, false
	}
	return Candidate{Surface: s, Region: region, Local: local}, true
}

// Hit runs one hit test at the local point p. Errors and panics raised by
// the surface are logged and reported as a miss.
func (r *Resolver) Hit(s Surface, p geom.Point, match func(*surface.Region) bool) (region *surface.Region) {
	defer func() {
		if v := recover(); v != nil {
			r.log.Error().
				Str("surface", s.ID()).
				Str("panic", fmt.Sprint(v)).
				Msg("hit test panicked")
			region = nil
		}
	}()

	region, err := s.HitTest(p, match)
	if err != nil {
		r.log.Warn().Err(err).Str("surface", s.ID()).Msg("hit test failed")
		return nil
	}
	return region
}
