// Package tuidock provides a reusable docking workspace that can be
// embedded in other Bubble Tea applications or used as a standalone TUI.
//
// A workspace is a tree of split panes holding tabbed documents and tools.
// Tabs are dragged with the mouse: dropping on a pane zone docks them,
// dropping outside every pane floats them in their own window.
//
// # Basic Usage
//
// Create a new workspace with default options:
//
//	model := tuidock.New()
//	p := tea.NewProgram(model, tuidock.ProgramOptions()...)
//	if _, err := p.Run(); err != nil {
//		log.Fatal(err)
//	}
//
// # Custom Configuration
//
// Use options to customize the workspace:
//
//	model := tuidock.New(
//		tuidock.WithTheme("dracula"),
//		tuidock.WithFloatingMode("managed"),
//		tuidock.WithLayout(myLayout),
//	)
//
// # Using with sip (Web Terminal)
//
// The workspace can be served through the browser using the sip library:
//
//	server := sip.NewServer(sip.DefaultConfig())
//	server.Serve(ctx, func(sess sip.Session) (tea.Model, []tea.ProgramOption) {
//		return tuidock.NewForPTY(sess.Pty()), nil
//	})
package tuidock

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/tuidock/internal/app"
	"github.com/Gaurav-Gosain/tuidock/internal/config"
	"github.com/Gaurav-Gosain/tuidock/internal/input"
	"github.com/Gaurav-Gosain/tuidock/internal/layout"
	"github.com/Gaurav-Gosain/tuidock/internal/logging"
)

// Model is the workspace model that implements tea.Model.
type Model = app.Desktop

// Layout is the root of a dock tree, as built with the layout constructors.
type Layout = layout.Dockable

// Options configures a workspace.
type Options struct {
	// Theme is the color theme name (e.g., "dracula", "nord", "tokyonight").
	// Leave empty to use standard terminal colors.
	Theme string

	// ASCIIOnly uses ASCII characters for borders and tab markers.
	ASCIIOnly bool

	// BorderStyle sets the pane border style.
	// Valid values: "rounded", "normal", "thick", "double", "hidden", "block", "ascii"
	BorderStyle string

	// FloatingMode is "native" for top-level floating windows or "managed"
	// for windows hosted on the shared overlay.
	FloatingMode string

	// NoGlobalDocking disables the whole-layout edge targets.
	NoGlobalDocking bool

	// Layout is the initial dock tree. Nil uses the demo layout.
	Layout *Layout

	// Width is the initial width (set automatically if 0).
	Width int

	// Height is the initial height (set automatically if 0).
	Height int

	// UserConfig is a custom user configuration. If nil, the config file
	// is loaded, falling back to defaults.
	UserConfig *config.UserConfig
}

// Option is a functional option for configuring a workspace.
type Option func(*Options)

// WithTheme sets the color theme.
func WithTheme(name string) Option {
	return func(o *Options) {
		o.Theme = name
	}
}

// WithASCIIOnly enables ASCII-only mode.
func WithASCIIOnly(enabled bool) Option {
	return func(o *Options) {
		o.ASCIIOnly = enabled
	}
}

// WithBorderStyle sets the pane border style.
func WithBorderStyle(style string) Option {
	return func(o *Options) {
		o.BorderStyle = style
	}
}

// WithFloatingMode selects native or managed floating windows.
func WithFloatingMode(mode string) Option {
	return func(o *Options) {
		o.FloatingMode = mode
	}
}

// WithGlobalDocking enables or disables whole-layout edge targets.
func WithGlobalDocking(enabled bool) Option {
	return func(o *Options) {
		o.NoGlobalDocking = !enabled
	}
}

// WithLayout sets the initial dock tree.
func WithLayout(root *Layout) Option {
	return func(o *Options) {
		o.Layout = root
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(o *Options) {
		o.Width = width
		o.Height = height
	}
}

// WithUserConfig sets a custom user configuration.
func WithUserConfig(cfg *config.UserConfig) Option {
	return func(o *Options) {
		o.UserConfig = cfg
	}
}

// New creates a new workspace model with the given options.
// This is the main entry point for using tuidock as a library.
//
// The first model created in a process configures logging from the user
// config's [logging] section, so the log viewer has entries to show. Later
// models share that configuration.
func New(opts ...Option) *Model {
	var options Options
	for _, opt := range opts {
		opt(&options)
	}
	return newModel(options)
}

// PTY is the size source of a remote session.
type PTY interface {
	Width() int
	Height() int
}

// NewForPTY creates a workspace sized to a PTY session, for web terminals
// or SSH servers.
func NewForPTY(pty PTY, opts ...Option) *Model {
	var options Options
	for _, opt := range opts {
		opt(&options)
	}
	options.Width = pty.Width()
	options.Height = pty.Height()
	return newModel(options)
}

func newModel(options Options) *Model {
	app.SetInputHandler(input.HandleInput)

	userConfig := options.UserConfig
	if userConfig == nil {
		var err error
		userConfig, err = config.LoadUserConfig()
		if err != nil {
			userConfig = config.DefaultConfig()
		}
	}

	config.ApplyOverrides(config.Overrides{
		ASCIIOnly:       options.ASCIIOnly,
		BorderStyle:     options.BorderStyle,
		FloatingMode:    options.FloatingMode,
		NoGlobalDocking: options.NoGlobalDocking,
		ThemeName:       options.Theme,
	}, userConfig)

	if err := logging.Ensure(userConfig.Logging.Level, userConfig.Logging.File); err != nil {
		_ = logging.Ensure("", "")
		logger := logging.For("tuidock")
		logger.Warn().Err(err).Msg("logging config rejected, keeping logs in memory")
	}

	return app.NewDesktop(app.Options{
		Config: userConfig,
		Keys:   config.NewKeybindRegistry(userConfig),
		Layout: options.Layout,
		Width:  options.Width,
		Height: options.Height,
	})
}

// ProgramOptions returns recommended tea.ProgramOption values for running
// a workspace.
func ProgramOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithFPS(config.InteractionFPS),
		tea.WithFilter(FilterMouseMotion),
	}
}

// FilterMouseMotion is a tea.WithFilter function that drops mouse motion
// while no gesture is in progress.
func FilterMouseMotion(model tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.MouseMotionMsg); !ok {
		return msg
	}
	d, ok := model.(*Model)
	if !ok {
		return msg
	}
	if d.Capture() != nil || d.MovingWindow() != nil {
		return msg
	}
	return nil
}

// Config re-exports the config loaders without importing internal packages.
var Config = struct {
	// LoadUserConfig loads the user's configuration file.
	LoadUserConfig func() (*config.UserConfig, error)
	// DefaultConfig returns the default configuration.
	DefaultConfig func() *config.UserConfig
	// GetConfigPath returns the path to the configuration file.
	GetConfigPath func() (string, error)
}{
	LoadUserConfig: config.LoadUserConfig,
	DefaultConfig:  config.DefaultConfig,
	GetConfigPath:  config.GetConfigPath,
}
