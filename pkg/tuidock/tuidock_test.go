package tuidock

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/tuidock/internal/config"
	"github.com/Gaurav-Gosain/tuidock/internal/docking"
	"github.com/Gaurav-Gosain/tuidock/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePTY struct{ w, h int }

func (p fakePTY) Width() int  { return p.w }
func (p fakePTY) Height() int { return p.h }

func resetGlobals(t *testing.T) {
	t.Cleanup(func() {
		config.FloatingMode = config.FloatingModeNative
		config.BorderStyle = "rounded"
		config.UseASCIIOnly = false
		config.ShowStatusBar = true
	})
}

func TestNewAppliesOptions(t *testing.T) {
	resetGlobals(t)
	m := New(
		WithUserConfig(config.DefaultConfig()),
		WithFloatingMode(config.FloatingModeManaged),
		WithGlobalDocking(false),
		WithSize(100, 30),
	)
	require.NotNil(t, m)
	assert.Equal(t, 100, m.Width)
	assert.True(t, m.Factory.ManagedWindows())
	assert.False(t, m.Ctx.Settings.GlobalDocking)
}

func TestNewForPTY(t *testing.T) {
	resetGlobals(t)
	m := NewForPTY(fakePTY{80, 24}, WithUserConfig(config.DefaultConfig()))
	assert.Equal(t, 80, m.Width)
	assert.Equal(t, 24, m.Height)
}

func TestFilterMouseMotion(t *testing.T) {
	resetGlobals(t)
	m := New(WithUserConfig(config.DefaultConfig()), WithSize(120, 31))
	motion := tea.MouseMotionMsg{X: 90, Y: 22}

	assert.Nil(t, FilterMouseMotion(m, motion), "hover is dropped")
	assert.NotNil(t, FilterMouseMotion(m, tea.KeyPressMsg{Code: 'x'}), "other messages pass")

	require.True(t, m.Press(2, 0, docking.Move))
	assert.Equal(t, motion, FilterMouseMotion(m, motion), "motion passes while captured")
}

func TestNewFeedsLogViewer(t *testing.T) {
	resetGlobals(t)
	New(WithUserConfig(config.DefaultConfig()))
	logging.Lines().Clear()

	logger := logging.For("embedder")
	logger.Info().Msg("workspace ready")

	entries := logging.Lines().Entries()
	require.NotEmpty(t, entries)
	last := entries[len(entries)-1]
	assert.Equal(t, "embedder", last.Component)
	assert.Equal(t, "workspace ready", last.Message)
}
