package docking

import (
	"errors"
	"testing"

	"github.com/Gaurav-Gosain/tuidock/internal/geom"
	"github.com/Gaurav-Gosain/tuidock/internal/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allOps = []DockOperation{None, Fill, Top, Bottom, Left, Right, Window}

func TestValidate(t *testing.T) {
	d := newDesk()
	v := d.ctx.Validator
	split := d.factory.Root().Children[0]
	tool := layout.NewTool("t")
	layout.NewToolDock("T", tool)
	synthetic := layout.NewDocumentDock("managed")
	synthetic.Synthetic = true

	tests := []struct {
		name   string
		source *layout.Dockable
		target *layout.Dockable
		action DragAction
		op     DockOperation
		want   bool
	}{
		{"fill into other dock", d.a, d.y, Move, Fill, true},
		{"fill onto leaf uses its dock", d.a, d.c, Move, Fill, true},
		{"fill into own dock reorders", d.a, d.x, Move, Fill, true},
		{"fill into split", d.a, split, Move, Fill, true},
		{"fill onto root", d.a, d.factory.Root(), Move, Fill, true},
		{"fill onto itself", d.a, d.a, Move, Fill, false},
		{"none never valid", d.a, d.y, Move, None, false},
		{"edge beside other dock", d.a, d.y, Move, Left, true},
		{"edge beside own dock keeps sibling", d.a, d.x, Move, Top, true},
		{"edge onto leaf splits its dock", d.a, d.c, Move, Bottom, true},
		{"edge onto root", d.a, d.factory.Root(), Move, Right, true},
		{"window needs no target", d.a, nil, Move, Window, true},
		{"copy fill swaps leaves", d.a, d.c, Copy, Fill, true},
		{"copy onto dock", d.a, d.y, Copy, Fill, false},
		{"copy edge", d.a, d.c, Copy, Left, false},
		{"copy window", d.a, nil, Copy, Window, false},
		{"tool into document dock", tool, d.y, Move, Fill, false},
		{"detached source", layout.NewDocument("loose"), d.y, Move, Fill, false},
		{"dock as source", d.x, d.y, Move, Fill, false},
		{"float-only target rejects fill", d.a, synthetic, Move, Fill, false},
		{"float-only target allows window", d.a, synthetic, Move, Window, true},
		{"nil target", d.a, nil, Move, Fill, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v.Validate(tt.source, tt.target, tt.action, tt.op))
		})
	}
}

func TestValidateCapabilities(t *testing.T) {
	d := newDesk()
	v := d.ctx.Validator

	d.y.Caps &^= layout.CanDrop
	assert.False(t, v.Validate(d.a, d.y, Move, Fill), "target without CanDrop")
	assert.Equal(t, Rejecting, Classify(d.y))

	d.a.Caps &^= layout.CanFloat
	assert.False(t, v.Validate(d.a, nil, Move, Window), "source without CanFloat")
	assert.True(t, v.Validate(d.a, d.c, Move, Fill), "CanFloat only gates Window")

	d.a.Caps &^= layout.CanDrag
	assert.False(t, v.Validate(d.a, d.c, Move, Fill), "source without CanDrag")
}

func TestSplitEmptyingOwnDockInvalid(t *testing.T) {
	a := layout.NewDocument("a")
	x := layout.NewDocumentDock("X", a)
	y := layout.NewDocumentDock("Y", layout.NewDocument("c"))
	root := layout.NewRoot(layout.NewSplit(layout.Horizontal, x, y))
	v := NewValidator(layout.NewFactory(root), nil, nil, testLogger())

	for _, op := range []DockOperation{Left, Right, Top, Bottom} {
		assert.False(t, v.Validate(a, x, Move, op), op.String())
		assert.True(t, v.Validate(a, y, Move, op), op.String())
	}
}

func TestValidateIdempotent(t *testing.T) {
	d := newDesk()
	v := d.ctx.Validator
	targets := []*layout.Dockable{nil, d.a, d.b, d.c, d.x, d.y, d.factory.Root().Children[0], d.factory.Root()}
	before := d.factory.Version()

	for _, target := range targets {
		for _, action := range []DragAction{Move, Copy} {
			for _, op := range allOps {
				first := v.Validate(d.a, target, action, op)
				for i := 0; i < 3; i++ {
					require.Equal(t, first, v.Validate(d.a, target, action, op))
				}
			}
		}
	}
	assert.Equal(t, before, d.factory.Version())
	assert.Empty(t, d.factory.calls)
}

func TestExecuteNeverMutatesWhenInvalid(t *testing.T) {
	for _, action := range []DragAction{Move, Copy} {
		for _, op := range allOps {
			for ti := 0; ti < 8; ti++ {
				d := newDesk()
				targets := []*layout.Dockable{nil, d.a, d.b, d.c, d.x, d.y, d.factory.Root().Children[0], d.factory.Root()}
				target := targets[ti]
				if d.ctx.Validator.Validate(d.a, target, action, op) {
					continue
				}
				before := d.factory.Version()
				ok := d.ctx.Validator.Execute(d.a, target, action, op, Pointer{}, true)
				assert.False(t, ok)
				assert.Equal(t, before, d.factory.Version(), "%s %s target %d", action, op, ti)
				assert.Empty(t, d.factory.calls, "%s %s target %d", action, op, ti)
			}
		}
	}
}

func TestExecuteAgreesWithValidate(t *testing.T) {
	for _, op := range allOps {
		d := newDesk()
		want := d.ctx.Validator.Validate(d.a, d.y, Move, op)
		got := d.ctx.Validator.Execute(d.a, d.y, Move, op, Pointer{}, true)
		assert.Equal(t, want, got, op.String())
		assert.Equal(t, want, len(d.factory.calls) == 1, op.String())
	}
}

func TestExecuteStampsCursorOnBothPaths(t *testing.T) {
	d := newDesk()
	v := d.ctx.Validator
	dry := Pointer{Screen: geom.Pt(50, 10), Local: geom.Pt(10, 9)}
	v.Execute(d.a, d.y, Move, Fill, dry, false)
	assert.Equal(t, dry.Screen, v.Cursor().Screen)
	assert.Equal(t, dry.Local, v.Cursor().Local)
	assert.Equal(t, uint64(1), v.Cursor().Stamps())

	// rejected commits are stamped too
	bad := Pointer{Screen: geom.Pt(1, 1), Local: geom.Pt(1, 1)}
	v.Execute(d.a, d.a, Move, Fill, bad, true)
	assert.Equal(t, bad.Screen, v.Cursor().Screen)
	assert.Equal(t, uint64(2), v.Cursor().Stamps())

	commit := Pointer{Screen: geom.Pt(60, 12), Local: geom.Pt(20, 11)}
	require.True(t, v.Execute(d.a, d.y, Move, Fill, commit, true))
	assert.Equal(t, commit.Local, v.Cursor().Local)
	assert.Equal(t, uint64(3), v.Cursor().Stamps())
}

func TestExecuteGlobalOnlyEdges(t *testing.T) {
	d := newDesk()
	v := d.ctx.Validator
	root := d.factory.Root()

	assert.False(t, v.ExecuteGlobal(d.a, root, Move, Fill, Pointer{}, false))
	assert.False(t, v.ExecuteGlobal(d.a, d.y, Move, Left, Pointer{}, false), "non-root target")
	assert.True(t, v.ExecuteGlobal(d.a, root, Move, Left, Pointer{}, false))
	assert.Empty(t, d.factory.calls)
}

func TestClassify(t *testing.T) {
	d := newDesk()
	empty := layout.NewRoot(nil)
	synthetic := layout.NewDocument("w")
	synthetic.Synthetic = true

	tests := []struct {
		name   string
		target *layout.Dockable
		want   TargetClass
	}{
		{"nil", nil, Rejecting},
		{"leaf", d.a, SplitTarget},
		{"tabbed dock", d.x, SplitTarget},
		{"root", d.factory.Root(), SplitTarget},
		{"empty root", empty, FillTarget},
		{"synthetic", synthetic, FloatOnly},
		{"detached dock", layout.NewDocumentDock("loose"), Rejecting},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.target))
		})
	}
}

// failingFactory refuses every move.
type failingFactory struct {
	*recordingFactory
}

func (f failingFactory) MoveDockable(source, target *layout.Dockable) error {
	return errors.New("dock is locked")
}

func TestExecuteLogsCommitOutcome(t *testing.T) {
	tests := []struct {
		name     string
		failing  bool
		want     bool
		wantMsg  string
		wantLvl  string
		wantNote string
	}{
		{name: "committed", want: true, wantMsg: "drop committed", wantLvl: `"level":"debug"`},
		{name: "factory error", failing: true, want: false, wantMsg: "drop rejected by factory", wantLvl: `"level":"error"`, wantNote: "dock is locked"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDesk()
			log, buf := bufferLogger()
			var f Factory = d.factory
			if tt.failing {
				f = failingFactory{d.factory}
			}
			v := NewValidator(f, nil, nil, log)

			assert.Equal(t, tt.want, v.Execute(d.a, d.y, Move, Fill, Pointer{}, true))
			out := buf.String()
			assert.Contains(t, out, tt.wantMsg)
			assert.Contains(t, out, tt.wantLvl)
			assert.Contains(t, out, `"operation":"drop"`)
			assert.Contains(t, out, `"source":"a"`)
			assert.Contains(t, out, `"elapsed"`)
			if tt.wantNote != "" {
				assert.Contains(t, out, tt.wantNote)
			}
		})
	}
}

func TestDryRunLogsNothing(t *testing.T) {
	d := newDesk()
	log, buf := bufferLogger()
	v := NewValidator(d.factory, nil, nil, log)

	require.True(t, v.Execute(d.a, d.y, Move, Fill, Pointer{}, false))
	assert.Empty(t, buf.String())
}
