package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/sip"
	"github.com/Gaurav-Gosain/tuidock/internal/app"
	"github.com/Gaurav-Gosain/tuidock/internal/config"
	"github.com/Gaurav-Gosain/tuidock/internal/input"
	"github.com/Gaurav-Gosain/tuidock/internal/logging"
	"github.com/Gaurav-Gosain/tuidock/pkg/tuidock"
	"github.com/charmbracelet/colorprofile"
	"golang.org/x/term"
)

var errNoTTY = errors.New("tuidock needs an interactive terminal (try 'tuidock web')")

// overrides collects the CLI flags.
func overrides() config.Overrides {
	level := logLevel
	if debugMode && level == "" {
		level = "debug"
	}
	return config.Overrides{
		ASCIIOnly:       asciiOnly,
		BorderStyle:     borderStyle,
		FloatingMode:    floatingMode,
		NoGlobalDocking: noGlobalDocking,
		HideStatusBar:   hideStatusBar,
		LogLevel:        level,
		ThemeName:       themeName,
	}
}

// loadConfig loads the user config and applies the CLI flags to it.
func loadConfig() *config.UserConfig {
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		log.Printf("Warning: Failed to load config, using defaults: %v", err)
		userConfig = config.DefaultConfig()
	}
	config.ApplyOverrides(overrides(), userConfig)
	return userConfig
}

func runLocal() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNoTTY
	}

	userConfig := loadConfig()
	if err := logging.Setup(userConfig.Logging.Level, userConfig.Logging.File); err != nil {
		return fmt.Errorf("could not set up logging: %w", err)
	}
	defer func() {
		if err := logging.Close(); err != nil {
			log.Printf("Warning: failed to close log file: %v", err)
		}
	}()

	app.SetInputHandler(input.HandleInput)

	logger := logging.For("main")
	logger.Debug().
		Str("profile", fmt.Sprint(colorprofile.Detect(os.Stdout, os.Environ()))).
		Msg("terminal color profile")

	if debugMode {
		configPath, _ := config.GetConfigPath()
		log.Printf("Configuration: %s", configPath)
	}

	desktop := app.NewDesktop(app.Options{
		Config: userConfig,
		Keys:   config.NewKeybindRegistry(userConfig),
	})

	p := tea.NewProgram(
		desktop,
		tea.WithFPS(config.InteractionFPS),
		tea.WithoutSignalHandler(),
		tea.WithFilter(tuidock.FilterMouseMotion),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		p.Send(tea.QuitMsg{})
	}()

	finalModel, err := p.Run()

	if final, ok := finalModel.(*app.Desktop); ok {
		final.Cleanup()
	}

	if err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

// sipPty adapts a sip session pty to the size source a workspace needs.
type sipPty struct {
	pty sip.Pty
}

func (p sipPty) Width() int  { return p.pty.Width }
func (p sipPty) Height() int { return p.pty.Height }

func runWebServer() error {
	userConfig := loadConfig()
	if err := logging.Setup(userConfig.Logging.Level, userConfig.Logging.File); err != nil {
		return fmt.Errorf("could not set up logging: %w", err)
	}
	defer func() { _ = logging.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Println("Shutting down web server...")
		cancel()
	}()

	logger := logging.For("web")
	logger.Info().Msg("starting web server")

	server := sip.NewServer(sip.DefaultConfig())
	err := server.Serve(ctx, func(sess sip.Session) (tea.Model, []tea.ProgramOption) {
		pty := sess.Pty()
		logger.Info().Int("width", pty.Width).Int("height", pty.Height).Msg("session started")
		// Each session gets a private copy so sessions don't share layout state.
		model := tuidock.NewForPTY(sipPty{pty: pty}, tuidock.WithUserConfig(cloneConfig(userConfig)))
		return model, tuidock.ProgramOptions()
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("web server error: %w", err)
	}
	return nil
}
