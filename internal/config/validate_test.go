package config

import "testing"

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name         string
		mutate       func(cfg *UserConfig)
		wantErrors   int
		wantWarnings int
	}{
		{"defaults", func(*UserConfig) {}, 0, 0},
		{"negative threshold", func(c *UserConfig) { c.Docking.MinDragX = -1 }, 1, 0},
		{"huge threshold", func(c *UserConfig) { c.Docking.MinDragY = 80 }, 0, 1},
		{"unknown floating mode", func(c *UserConfig) { c.Docking.FloatingMode = "tiled" }, 1, 0},
		{"edge ratio too deep", func(c *UserConfig) { c.Docking.LocalEdgeRatio = 0.75 }, 1, 0},
		{"wide global band", func(c *UserConfig) { c.Docking.GlobalEdgeCells = 12 }, 0, 1},
		{"tiny preview", func(c *UserConfig) { c.Docking.PreviewHeight = 1 }, 0, 1},
		{"unknown border", func(c *UserConfig) { c.Appearance.BorderStyle = "wavy" }, 0, 1},
		{"unknown log level", func(c *UserConfig) { c.Logging.Level = "chatty" }, 1, 0},
		{"uppercase log level", func(c *UserConfig) { c.Logging.Level = "DEBUG" }, 0, 0},
		{"unknown action", func(c *UserConfig) { c.Keybindings.System["dance"] = []string{"d"} }, 0, 1},
		{"empty key", func(c *UserConfig) { c.Keybindings.Windows[ActionNewDocument] = []string{" "} }, 1, 0},
		{"conflicting keys", func(c *UserConfig) { c.Keybindings.Windows[ActionNewDocument] = []string{"q"} }, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			r := ValidateConfig(cfg)
			if len(r.Errors) != tt.wantErrors {
				t.Errorf("errors = %v, want %d", r.Errors, tt.wantErrors)
			}
			if len(r.Warnings) != tt.wantWarnings {
				t.Errorf("warnings = %v, want %d", r.Warnings, tt.wantWarnings)
			}
			if r.HasErrors() != (tt.wantErrors > 0) {
				t.Error("HasErrors disagrees with Errors")
			}
		})
	}
}
