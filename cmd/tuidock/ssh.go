package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/wish/v2"
	"charm.land/wish/v2/activeterm"
	"charm.land/wish/v2/bubbletea"
	"github.com/Gaurav-Gosain/tuidock/internal/config"
	"github.com/Gaurav-Gosain/tuidock/internal/logging"
	"github.com/Gaurav-Gosain/tuidock/pkg/tuidock"
	"github.com/charmbracelet/ssh"
)

const sshShutdownTimeout = 10 * time.Second

// sshPty adapts an SSH pty request to the size source a workspace needs.
type sshPty struct {
	pty ssh.Pty
}

func (p sshPty) Width() int  { return p.pty.Window.Width }
func (p sshPty) Height() int { return p.pty.Window.Height }

// defaultHostKeyPath keeps the generated host key next to the config file.
func defaultHostKeyPath() (string, error) {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(configPath), "ssh_host_ed25519"), nil
}

// sshHandler gives every SSH session its own workspace built from a copy of
// userConfig.
func sshHandler(userConfig *config.UserConfig) bubbletea.Handler {
	logger := logging.For("ssh")
	return func(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
		pty, _, _ := sess.Pty()
		logger.Info().
			Str("user", sess.User()).
			Str("remote", sess.RemoteAddr().String()).
			Int("width", pty.Window.Width).
			Int("height", pty.Window.Height).
			Msg("session started")
		model := tuidock.NewForPTY(sshPty{pty: pty}, tuidock.WithUserConfig(cloneConfig(userConfig)))
		return model, tuidock.ProgramOptions()
	}
}

func runSSHServer(host, port, keyPath string) error {
	userConfig := loadConfig()
	if err := logging.Setup(userConfig.Logging.Level, userConfig.Logging.File); err != nil {
		return fmt.Errorf("could not set up logging: %w", err)
	}
	defer func() { _ = logging.Close() }()

	if keyPath == "" {
		var err error
		if keyPath, err = defaultHostKeyPath(); err != nil {
			return fmt.Errorf("could not resolve host key path: %w", err)
		}
	}

	addr := net.JoinHostPort(host, port)
	s, err := wish.NewServer(
		wish.WithAddress(addr),
		wish.WithHostKeyPath(keyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(sshHandler(userConfig)),
			activeterm.Middleware(),
		),
	)
	if err != nil {
		return fmt.Errorf("could not create SSH server: %w", err)
	}

	logger := logging.For("ssh")
	logger.Info().Str("addr", addr).Str("host_key", keyPath).Msg("starting SSH server")
	log.Printf("Starting tuidock SSH server on %s", addr)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("SSH server error: %w", err)
		}
		return nil
	case <-done:
	}

	log.Println("Shutting down SSH server...")
	ctx, cancel := context.WithTimeout(context.Background(), sshShutdownTimeout)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return fmt.Errorf("SSH shutdown error: %w", err)
	}
	return nil
}
