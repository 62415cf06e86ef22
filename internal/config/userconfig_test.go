package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Gaurav-Gosain/tuidock/internal/geom"
)

// TestParseConfig_FillsDefaults tests that a partial file is completed.
func TestParseConfig_FillsDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
[docking]
min_drag_x = 6
floating_mode = "managed"

[keybindings.system]
quit = ["ctrl+q"]
`))
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}

	if cfg.Docking.MinDragX != 6 {
		t.Errorf("expected min_drag_x 6, got %v", cfg.Docking.MinDragX)
	}
	if cfg.Docking.MinDragY != DefaultMinDragY {
		t.Errorf("expected default min_drag_y, got %v", cfg.Docking.MinDragY)
	}
	if !cfg.ManagedFloating() {
		t.Error("expected managed floating mode")
	}
	if cfg.Appearance.BorderStyle != "rounded" {
		t.Errorf("expected default border style, got %q", cfg.Appearance.BorderStyle)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default log level, got %q", cfg.Logging.Level)
	}
	if got := cfg.Keybindings.System[ActionQuit]; len(got) != 1 || got[0] != "ctrl+q" {
		t.Errorf("user quit binding was replaced: %v", got)
	}
	if _, ok := cfg.Keybindings.System[ActionToggleLogs]; !ok {
		t.Error("missing default toggle_logs binding")
	}
	if _, ok := cfg.Keybindings.Drag[ActionCancelDrag]; !ok {
		t.Error("missing default cancel_drag binding")
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	if _, err := ParseConfig([]byte("[docking\nmin_drag_x = ")); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestDragSettings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, cfg *UserConfig)
	}{
		{
			name:  "defaults",
			input: "",
			check: func(t *testing.T, cfg *UserConfig) {
				s := cfg.DragSettings()
				if s.MinDragX != 4 || s.MinDragY != 4 {
					t.Errorf("thresholds = (%v, %v), want (4, 4)", s.MinDragX, s.MinDragY)
				}
				if !s.GlobalDocking || !s.CoalesceNativeMoves || !s.RevealFloatingOnDrag {
					t.Errorf("unset booleans should default to true: %+v", s)
				}
				if s.PreviewSize != (geom.Size{W: DefaultFloatingWidth, H: DefaultFloatingHeight}) {
					t.Errorf("unexpected preview size %v", s.PreviewSize)
				}
			},
		},
		{
			name: "explicit false",
			input: `[docking]
global_docking = false
coalesce_native_moves = false
reveal_floating_on_drag = false`,
			check: func(t *testing.T, cfg *UserConfig) {
				s := cfg.DragSettings()
				if s.GlobalDocking || s.CoalesceNativeMoves || s.RevealFloatingOnDrag {
					t.Errorf("explicit false was ignored: %+v", s)
				}
			},
		},
		{
			name: "zones and preview",
			input: `[docking]
local_edge_ratio = 0.3
global_edge_cells = 3
preview_width = 20
preview_height = 5`,
			check: func(t *testing.T, cfg *UserConfig) {
				s := cfg.DragSettings()
				if s.LocalEdgeRatio != 0.3 || s.GlobalEdgeCells != 3 {
					t.Errorf("zones = (%v, %v)", s.LocalEdgeRatio, s.GlobalEdgeCells)
				}
				if s.PreviewSize != (geom.Size{W: 20, H: 5}) {
					t.Errorf("preview = %v", s.PreviewSize)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseConfig([]byte(tt.input))
			if err != nil {
				t.Fatalf("ParseConfig failed: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

// TestWriteConfig_RoundTrip tests that the written default file loads back.
func TestWriteConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuidock", "config.toml")
	if err := WriteConfig(path, DefaultConfig()); err != nil {
		t.Fatalf("WriteConfig failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# tuidock configuration file") {
		t.Error("missing header comment")
	}

	cfg, err := LoadUserConfigFrom(path)
	if err != nil {
		t.Fatalf("LoadUserConfigFrom failed: %v", err)
	}
	if cfg.Docking.FloatingMode != FloatingModeNative {
		t.Errorf("expected native mode, got %q", cfg.Docking.FloatingMode)
	}
	if cfg.Docking.GlobalDocking == nil || !*cfg.Docking.GlobalDocking {
		t.Error("expected global_docking to survive the round trip")
	}
}

func TestLoadUserConfigFrom_RejectsErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[docking]\nfloating_mode = \"sideways\"\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadUserConfigFrom(path); err == nil {
		t.Fatal("expected a validation error")
	}
}

func TestLoadUserConfigFrom_Missing(t *testing.T) {
	if _, err := LoadUserConfigFrom(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected a read error")
	}
}
