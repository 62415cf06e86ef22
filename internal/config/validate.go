package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"
)

// ConfigIssue is one problem found in a config file.
type ConfigIssue struct {
	Field   string // section name, e.g. "docking"
	Key     string
	Message string
}

// ValidationResult collects the errors and warnings of one config.
type ValidationResult struct {
	Errors   []ConfigIssue
	Warnings []ConfigIssue
}

// HasErrors reports whether the config must be rejected.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings reports whether anything looked suspicious.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

func (r *ValidationResult) errorf(field, key, format string, args ...any) {
	r.Errors = append(r.Errors, ConfigIssue{Field: field, Key: key, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warnf(field, key, format string, args ...any) {
	r.Warnings = append(r.Warnings, ConfigIssue{Field: field, Key: key, Message: fmt.Sprintf(format, args...)})
}

// ValidBorderStyles lists the accepted border_style values.
var ValidBorderStyles = []string{"rounded", "normal", "thick", "double", "hidden", "block", "ascii"}

// ValidateConfig checks a completed config. Out of range values the app can
// still run with are warnings; values it cannot interpret are errors.
func ValidateConfig(cfg *UserConfig) *ValidationResult {
	r := &ValidationResult{}

	d := cfg.Docking
	if d.MinDragX < 0 {
		r.errorf("docking", "min_drag_x", "must not be negative, got %v", d.MinDragX)
	}
	if d.MinDragY < 0 {
		r.errorf("docking", "min_drag_y", "must not be negative, got %v", d.MinDragY)
	}
	if d.MinDragX > 40 || d.MinDragY > 40 {
		r.warnf("docking", "min_drag", "thresholds above 40 cells make drags hard to start")
	}
	switch d.FloatingMode {
	case FloatingModeNative, FloatingModeManaged:
	default:
		r.errorf("docking", "floating_mode", "unknown mode %q (use native or managed)", d.FloatingMode)
	}
	if d.LocalEdgeRatio <= 0 || d.LocalEdgeRatio > 0.5 {
		r.errorf("docking", "local_edge_ratio", "must be in (0, 0.5], got %v", d.LocalEdgeRatio)
	}
	if d.GlobalEdgeCells < 0 {
		r.errorf("docking", "global_edge_cells", "must not be negative, got %v", d.GlobalEdgeCells)
	} else if d.GlobalEdgeCells > 10 {
		r.warnf("docking", "global_edge_cells", "bands of %v cells cover most small layouts", d.GlobalEdgeCells)
	}
	if d.PreviewWidth < MinFloatingWidth || d.PreviewHeight < MinFloatingHeight {
		r.warnf("docking", "preview_size", "preview smaller than %dx%d is hard to see", MinFloatingWidth, MinFloatingHeight)
	}

	if !slices.Contains(ValidBorderStyles, cfg.Appearance.BorderStyle) {
		r.warnf("appearance", "border_style", "unknown style %q, falling back to rounded", cfg.Appearance.BorderStyle)
	}

	if _, err := zerolog.ParseLevel(strings.ToLower(cfg.Logging.Level)); err != nil {
		r.errorf("logging", "level", "unknown level %q", cfg.Logging.Level)
	}

	validateKeybinds(r, "drag", cfg.Keybindings.Drag)
	validateKeybinds(r, "windows", cfg.Keybindings.Windows)
	validateKeybinds(r, "system", cfg.Keybindings.System)
	validateConflicts(r, cfg.Keybindings)

	return r
}

func validateKeybinds(r *ValidationResult, section string, binds map[string][]string) {
	for action, keys := range binds {
		if _, ok := knownActions[action]; !ok {
			r.warnf("keybindings."+section, action, "unknown action")
		}
		for _, k := range keys {
			if strings.TrimSpace(k) == "" {
				r.errorf("keybindings."+section, action, "empty key")
			}
		}
	}
}

func validateConflicts(r *ValidationResult, kb KeybindingsConfig) {
	seen := make(map[string]string)
	for _, section := range []map[string][]string{kb.Drag, kb.Windows, kb.System} {
		actions := make([]string, 0, len(section))
		for a := range section {
			actions = append(actions, a)
		}
		slices.Sort(actions)
		for _, action := range actions {
			for _, k := range section[action] {
				if prev, ok := seen[k]; ok && prev != action {
					r.warnf("keybindings", k, "bound to both %s and %s", prev, action)
					continue
				}
				seen[k] = action
			}
		}
	}
}
