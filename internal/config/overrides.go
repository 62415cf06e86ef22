package config

import (
	"log"

	"github.com/Gaurav-Gosain/tuidock/internal/theme"
)

// Overrides contains CLI flag values that can override user config.
// Zero values indicate the flag was not set and should use the user config default.
type Overrides struct {
	// ASCIIOnly uses ASCII characters instead of box drawing characters
	ASCIIOnly bool

	// BorderStyle overrides the border style
	BorderStyle string

	// FloatingMode overrides docking.floating_mode
	FloatingMode string

	// NoGlobalDocking disables whole-layout edge targets
	NoGlobalDocking bool

	// HideStatusBar hides the bottom status line
	HideStatusBar bool

	// LogLevel overrides logging.level
	LogLevel string

	// ThemeName is the theme to load
	ThemeName string
}

// ApplyOverrides applies CLI flag overrides to the global settings and to
// userConfig, so later readers of userConfig see the effective values.
// If userConfig is nil, only CLI flag values (when set) are applied.
func ApplyOverrides(overrides Overrides, userConfig *UserConfig) {
	if overrides.ASCIIOnly {
		UseASCIIOnly = true
	}

	// CLI flag takes precedence, otherwise use user config
	if overrides.BorderStyle != "" {
		BorderStyle = overrides.BorderStyle
	} else if userConfig != nil && userConfig.Appearance.BorderStyle != "" {
		BorderStyle = userConfig.Appearance.BorderStyle
	}

	if overrides.FloatingMode != "" {
		FloatingMode = overrides.FloatingMode
	} else if userConfig != nil && userConfig.Docking.FloatingMode != "" {
		FloatingMode = userConfig.Docking.FloatingMode
	}

	ShowStatusBar = !overrides.HideStatusBar

	if userConfig != nil {
		userConfig.Docking.FloatingMode = FloatingMode
		userConfig.Appearance.BorderStyle = BorderStyle
		if overrides.NoGlobalDocking {
			userConfig.Docking.GlobalDocking = boolPtr(false)
		}
		if overrides.LogLevel != "" {
			userConfig.Logging.Level = overrides.LogLevel
		}
	}

	themeName := overrides.ThemeName
	if themeName == "" && userConfig != nil && userConfig.Appearance.Theme != "" {
		themeName = userConfig.Appearance.Theme
	}
	if themeName != "" {
		if err := theme.Initialize(themeName); err != nil {
			log.Printf("Warning: Failed to load theme '%s': %v", themeName, err)
		}
	}
}
