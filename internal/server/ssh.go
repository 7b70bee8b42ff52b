package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	wishlogging "github.com/charmbracelet/wish/logging"

	"toga/internal/logging"
	"toga/internal/metrics"
	"toga/internal/ui"
)

// KioskFactory builds the kiosk of one SSH connection. Every connection
// gets its own controller and camera manager.
type KioskFactory func(sessionID string) (*ui.Model, error)

// SSHOptions configures the SSH kiosk server
type SSHOptions struct {
	AllowAnyKey        bool
	AuthorizedKeysPath string
	Factory            KioskFactory
	Host               string
	HostKeyPath        string
	Metrics            *metrics.Metrics
	Port               string
}

// SSHServer serves the kiosk over SSH
type SSHServer struct {
	address    string
	factory    KioskFactory
	metrics    *metrics.Metrics
	wishServer *ssh.Server
}

// NewSSHServer creates a new SSH server instance
func NewSSHServer(opts SSHOptions) (*SSHServer, error) {
	if opts.Factory == nil {
		return nil, errors.New("kiosk factory is required")
	}
	s := &SSHServer{
		address: net.JoinHostPort(opts.Host, opts.Port),
		factory: opts.Factory,
		metrics: opts.Metrics,
	}

	if err := os.MkdirAll(filepath.Dir(opts.HostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create SSH directory: %w", err)
	}

	// Middleware executes in reverse order (last to first); cleanupMiddleware
	// runs after the bubbletea program has returned
	wishServer, err := wish.NewServer(
		wish.WithAddress(s.address),
		wish.WithHostKeyPath(opts.HostKeyPath),
		wish.WithPublicKeyAuth(publicKeyHandler(opts.AuthorizedKeysPath, opts.AllowAnyKey)),
		wish.WithMiddleware(
			s.cleanupMiddleware(),
			bubbletea.Middleware(s.teaHandler),
			activeterm.Middleware(),
			wishlogging.Middleware(),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create SSH server: %w", err)
	}

	s.wishServer = wishServer
	return s, nil
}

// Address returns the listen address
func (s *SSHServer) Address() string {
	return s.address
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *SSHServer) Run(ctx context.Context) error {
	logging.Logger.Info("Starting SSH server", "address", s.address)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.wishServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("SSH server failed: %w", err)
	case <-ctx.Done():
	}

	logging.Logger.Info("Shutting down SSH server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.wishServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return fmt.Errorf("failed to shutdown SSH server: %w", err)
	}

	logging.Logger.Info("SSH server stopped")
	return nil
}
