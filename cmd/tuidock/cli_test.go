package main

import (
	"testing"

	"github.com/Gaurav-Gosain/tuidock/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloneConfigIsIndependent(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Docking.FloatingMode = config.FloatingModeManaged

	clone := cloneConfig(cfg)
	require.NotSame(t, cfg, clone)
	assert.Equal(t, config.FloatingModeManaged, clone.Docking.FloatingMode)

	clone.Docking.FloatingMode = config.FloatingModeNative
	clone.Keybindings.System["quit"] = []string{"x"}
	assert.Equal(t, config.FloatingModeManaged, cfg.Docking.FloatingMode)
	assert.Equal(t, []string{"q", "ctrl+c"}, cfg.Keybindings.System["quit"])
}

func TestOverridesFromFlags(t *testing.T) {
	tests := []struct {
		name      string
		debug     bool
		level     string
		wantLevel string
	}{
		{"no flags", false, "", ""},
		{"debug implies debug level", true, "", "debug"},
		{"explicit level wins over debug", true, "trace", "trace"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			debugMode, logLevel = tt.debug, tt.level
			t.Cleanup(func() { debugMode, logLevel = false, "" })
			assert.Equal(t, tt.wantLevel, overrides().LogLevel)
		})
	}
}

func TestFindEditorPrefersEnvironment(t *testing.T) {
	t.Setenv("EDITOR", "myeditor --wait")
	t.Setenv("VISUAL", "other")
	got, err := findEditor()
	require.NoError(t, err)
	assert.Equal(t, "myeditor --wait", got)
}
