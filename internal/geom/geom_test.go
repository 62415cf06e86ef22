package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectContainsIsHalfOpen(t *testing.T) {
	r := R(10, 5, 4, 2)
	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"top-left corner", Pt(10, 5), true},
		{"inside", Pt(12.5, 6), true},
		{"right edge", Pt(14, 5), false},
		{"bottom edge", Pt(10, 7), false},
		{"left of", Pt(9.99, 5), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Contains(tt.p))
		})
	}
}

func TestRectInsetClampsToZero(t *testing.T) {
	assert.Equal(t, R(1, 1, 8, 3), R(0, 0, 10, 5).Inset(1))
	got := R(0, 0, 3, 1).Inset(2)
	assert.Zero(t, got.W)
	assert.Zero(t, got.H)
	assert.True(t, got.Empty())
}

func TestRectRelative(t *testing.T) {
	fx, fy := R(10, 10, 20, 10).Relative(Pt(15, 20))
	assert.InDelta(t, 0.25, fx, 1e-9)
	assert.InDelta(t, 1.0, fy, 1e-9)

	fx, fy = R(0, 0, 0, 0).Relative(Pt(3, 3))
	assert.Zero(t, fx, "degenerate rects report zero")
	assert.Zero(t, fy)
}

func TestIntersects(t *testing.T) {
	a := R(0, 0, 10, 10)
	assert.True(t, a.Intersects(R(9, 9, 5, 5)))
	assert.False(t, a.Intersects(R(10, 0, 5, 5)), "touching edges do not overlap")
	assert.Equal(t, R(3, 4, 10, 10), a.Translate(Pt(3, 4)))
	assert.Equal(t, Pt(1, 2), Pt(4, 6).Sub(Pt(3, 4)))
}
