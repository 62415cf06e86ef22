package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gaurav-Gosain/tuidock/internal/docking"
	"github.com/Gaurav-Gosain/tuidock/internal/geom"
	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"
)

// configFile is the config location relative to the XDG config home.
const configFile = "tuidock/config.toml"

// UserConfig represents the user's configuration file
type UserConfig struct {
	Docking     DockingConfig     `toml:"docking"`
	Appearance  AppearanceConfig  `toml:"appearance"`
	Logging     LoggingConfig     `toml:"logging"`
	Keybindings KeybindingsConfig `toml:"keybindings"`
}

// DockingConfig holds drag and drop tuning
type DockingConfig struct {
	MinDragX             float64 `toml:"min_drag_x"`
	MinDragY             float64 `toml:"min_drag_y"`
	FloatingMode         string  `toml:"floating_mode"`           // native or managed
	CoalesceNativeMoves  *bool   `toml:"coalesce_native_moves"`   // nil means default (true)
	RevealFloatingOnDrag *bool   `toml:"reveal_floating_on_drag"` // nil means default (true)
	GlobalDocking        *bool   `toml:"global_docking"`          // nil means default (true)
	LocalEdgeRatio       float64 `toml:"local_edge_ratio"`
	GlobalEdgeCells      float64 `toml:"global_edge_cells"`
	PreviewWidth         int     `toml:"preview_width"`
	PreviewHeight        int     `toml:"preview_height"`
}

// AppearanceConfig holds visual settings
type AppearanceConfig struct {
	Theme       string `toml:"theme"`
	BorderStyle string `toml:"border_style"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level string `toml:"level"` // trace, debug, info, warn, error
	File  string `toml:"file"`  // empty keeps logs in memory only
}

// KeybindingsConfig holds all keybinding configurations
type KeybindingsConfig struct {
	Drag    map[string][]string `toml:"drag"`
	Windows map[string][]string `toml:"windows"`
	System  map[string][]string `toml:"system"`
}

func boolPtr(b bool) *bool {
	return &b
}

// DefaultConfig returns the default configuration
func DefaultConfig() *UserConfig {
	return &UserConfig{
		Docking: DockingConfig{
			MinDragX:             DefaultMinDragX,
			MinDragY:             DefaultMinDragY,
			FloatingMode:         FloatingModeNative,
			CoalesceNativeMoves:  boolPtr(true),
			RevealFloatingOnDrag: boolPtr(true),
			GlobalDocking:        boolPtr(true),
			LocalEdgeRatio:       DefaultLocalEdgeRatio,
			GlobalEdgeCells:      DefaultGlobalEdgeCells,
			PreviewWidth:         DefaultFloatingWidth,
			PreviewHeight:        DefaultFloatingHeight,
		},
		Appearance: AppearanceConfig{
			Theme:       "",
			BorderStyle: "rounded",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Keybindings: KeybindingsConfig{
			Drag: map[string][]string{
				"cancel_drag": {"esc"},
			},
			Windows: map[string][]string{
				"toggle_floating_mode": {"f"},
				"reveal_windows":       {"w"},
				"new_document":         {"n"},
			},
			System: map[string][]string{
				"toggle_logs": {"l"},
				"toggle_help": {"?"},
				"quit":        {"q", "ctrl+c"},
			},
		},
	}
}

// DragSettings converts the docking section into engine settings.
func (c *UserConfig) DragSettings() docking.Settings {
	s := docking.DefaultSettings()
	d := c.Docking
	if d.MinDragX > 0 {
		s.MinDragX = d.MinDragX
	}
	if d.MinDragY > 0 {
		s.MinDragY = d.MinDragY
	}
	if d.CoalesceNativeMoves != nil {
		s.CoalesceNativeMoves = *d.CoalesceNativeMoves
	}
	if d.RevealFloatingOnDrag != nil {
		s.RevealFloatingOnDrag = *d.RevealFloatingOnDrag
	}
	if d.GlobalDocking != nil {
		s.GlobalDocking = *d.GlobalDocking
	}
	if d.LocalEdgeRatio > 0 {
		s.LocalEdgeRatio = d.LocalEdgeRatio
	}
	if d.GlobalEdgeCells > 0 {
		s.GlobalEdgeCells = d.GlobalEdgeCells
	}
	if d.PreviewWidth > 0 && d.PreviewHeight > 0 {
		s.PreviewSize = geom.Size{W: float64(d.PreviewWidth), H: float64(d.PreviewHeight)}
	}
	return s
}

// ManagedFloating reports whether floating windows live in the managed overlay.
func (c *UserConfig) ManagedFloating() bool {
	return c.Docking.FloatingMode == FloatingModeManaged
}

// LoadUserConfig loads the user configuration from XDG config directory
func LoadUserConfig() (*UserConfig, error) {
	configPath, err := xdg.SearchConfigFile(configFile)
	if err != nil {
		// Config doesn't exist, create default
		path, err := xdg.ConfigFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to get config path: %w", err)
		}
		return createDefaultConfig(path)
	}
	return LoadUserConfigFrom(configPath)
}

// LoadUserConfigFrom reads, completes and validates the config at path.
func LoadUserConfigFrom(path string) (*UserConfig, error) {
	// #nosec G304 - path is the user's config file, reading it is intentional
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, err
	}

	validation := ValidateConfig(cfg)
	if validation.HasErrors() {
		for _, e := range validation.Errors {
			fmt.Fprintf(os.Stderr, "Config error in [%s]: %s - %s\n", e.Field, e.Key, e.Message)
		}
		return nil, fmt.Errorf("configuration has %d error(s), please fix and restart", len(validation.Errors))
	}
	for _, w := range validation.Warnings {
		fmt.Fprintf(os.Stderr, "Config warning in [%s]: %s - %s\n", w.Field, w.Key, w.Message)
	}

	return cfg, nil
}

// ParseConfig decodes TOML and fills everything left out with defaults.
func ParseConfig(data []byte) (*UserConfig, error) {
	var cfg UserConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	defaultCfg := DefaultConfig()
	fillMissingDocking(&cfg, defaultCfg)
	fillMissingAppearance(&cfg, defaultCfg)
	fillMissingLogging(&cfg, defaultCfg)
	fillMissingKeybinds(&cfg, defaultCfg)
	return &cfg, nil
}

// createDefaultConfig writes the default config file to path
func createDefaultConfig(path string) (*UserConfig, error) {
	cfg := DefaultConfig()
	if err := WriteConfig(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WriteConfig marshals cfg to path with a commented header.
func WriteConfig(path string, cfg *UserConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# tuidock configuration file\n")
	sb.WriteString("#\n")
	sb.WriteString("# Configuration location: " + path + "\n")
	sb.WriteString("# For keybindings, run: tuidock keybinds list\n\n")

	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# DOCKING\n")
	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# min_drag_x / min_drag_y: cells the pointer must move past before a drag starts\n")
	sb.WriteString("#   Default: 4\n")
	sb.WriteString("#\n")
	sb.WriteString("# floating_mode: where floating windows live\n")
	sb.WriteString("#   Options: native, managed\n")
	sb.WriteString("#   Default: native\n")
	sb.WriteString("#\n")
	sb.WriteString("# local_edge_ratio: depth of the split zones relative to the target (0 to 0.5)\n")
	sb.WriteString("#   Default: 0.25\n")
	sb.WriteString("#\n")
	sb.WriteString("# global_edge_cells: depth of the whole-layout split zones in cells\n")
	sb.WriteString("#   Default: 2\n")
	sb.WriteString("#\n")
	sb.WriteString("# border_style: rounded, normal, thick, double, hidden, block, ascii\n")
	sb.WriteString("# theme: color theme name (e.g., dracula, nord), empty for terminal colors\n")
	sb.WriteString("# ============================================================================\n\n")

	sb.Write(data)

	if err := os.WriteFile(path, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// fillMissingDocking fills in any missing docking settings with defaults.
// The pointer fields stay nil so DragSettings can tell "unset" from "false".
func fillMissingDocking(cfg, defaultCfg *UserConfig) {
	d, def := &cfg.Docking, defaultCfg.Docking
	if d.MinDragX == 0 {
		d.MinDragX = def.MinDragX
	}
	if d.MinDragY == 0 {
		d.MinDragY = def.MinDragY
	}
	if d.FloatingMode == "" {
		d.FloatingMode = def.FloatingMode
	}
	if d.LocalEdgeRatio == 0 {
		d.LocalEdgeRatio = def.LocalEdgeRatio
	}
	if d.GlobalEdgeCells == 0 {
		d.GlobalEdgeCells = def.GlobalEdgeCells
	}
	if d.PreviewWidth == 0 {
		d.PreviewWidth = def.PreviewWidth
	}
	if d.PreviewHeight == 0 {
		d.PreviewHeight = def.PreviewHeight
	}
}

// fillMissingAppearance fills in any missing appearance settings with defaults
func fillMissingAppearance(cfg, defaultCfg *UserConfig) {
	if cfg.Appearance.BorderStyle == "" {
		cfg.Appearance.BorderStyle = defaultCfg.Appearance.BorderStyle
	}
}

func fillMissingLogging(cfg, defaultCfg *UserConfig) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaultCfg.Logging.Level
	}
}

// fillMissingKeybinds fills in any missing keybindings with defaults
func fillMissingKeybinds(cfg, defaultCfg *UserConfig) {
	if cfg.Keybindings.Drag == nil {
		cfg.Keybindings.Drag = make(map[string][]string)
	}
	if cfg.Keybindings.Windows == nil {
		cfg.Keybindings.Windows = make(map[string][]string)
	}
	if cfg.Keybindings.System == nil {
		cfg.Keybindings.System = make(map[string][]string)
	}

	fillMapDefaults(cfg.Keybindings.Drag, defaultCfg.Keybindings.Drag)
	fillMapDefaults(cfg.Keybindings.Windows, defaultCfg.Keybindings.Windows)
	fillMapDefaults(cfg.Keybindings.System, defaultCfg.Keybindings.System)
}

func fillMapDefaults(target, defaults map[string][]string) {
	for k, v := range defaults {
		if _, exists := target[k]; !exists {
			target[k] = v
		}
	}
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	path, err := xdg.SearchConfigFile(configFile)
	if err != nil {
		// Return where it would be created
		return xdg.ConfigFile(configFile)
	}
	return path, nil
}
