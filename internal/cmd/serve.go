package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"golang.org/x/sync/errgroup"

	"toga/internal/config"
	"toga/internal/logging"
	"toga/internal/server"
	"toga/internal/ui"
)

const (
	defaultSSHHost = "0.0.0.0"
	defaultSSHPort = 23234
)

// ServeCmd serves one kiosk per SSH connection plus the status endpoints
type ServeCmd struct {
	AllowAnyKey    bool   `help:"Accept every SSH key (open kiosk); authorized_keys is ignored" env:"TOGA_ALLOW_ANY_KEY"`
	AuthorizedKeys string `help:"authorized_keys file (default ~/.ssh/authorized_keys)" env:"TOGA_AUTHORIZED_KEYS" type:"path"`
	Dev            bool   `help:"Enable development mode (shows version info in the header)"`
	Host           string `help:"Address the SSH server binds to" env:"TOGA_SSH_HOST" default:"0.0.0.0"`
	HostKey        string `help:"SSH host key path (generated when missing)" env:"TOGA_HOST_KEY" type:"path"`
	MetricsAddress string `help:"Address for /healthz, /metrics and /attempts; empty disables it" env:"TOGA_METRICS_ADDRESS" default:":9090"`
	Port           int    `help:"SSH port" env:"TOGA_SSH_PORT" default:"23234"`
}

// Run executes the serve command
func (s *ServeCmd) Run(cli *CLI) error {
	s.applySettings(cli.settings)

	keys, err := cli.keyBindings()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container := cli.Container
	sshServer, err := server.NewSSHServer(server.SSHOptions{
		AllowAnyKey:        s.AllowAnyKey,
		AuthorizedKeysPath: s.AuthorizedKeys,
		Factory: func(sessionID string) (*ui.Model, error) {
			logging.Logger.Debug("Creating kiosk for SSH session", "session_id", sessionID)
			return container.NewKiosk(ctx, s.Dev, keys), nil
		},
		Host:        s.Host,
		HostKeyPath: s.HostKey,
		Metrics:     container.Metrics,
		Port:        strconv.Itoa(s.Port),
	})
	if err != nil {
		return fmt.Errorf("failed to create SSH server: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return sshServer.Run(ctx)
	})
	if s.MetricsAddress != "" {
		statusServer := server.NewStatusServer(server.StatusOptions{
			Address:  s.MetricsAddress,
			Attempts: container.AttemptService,
			Metrics:  container.Metrics,
		})
		g.Go(func() error {
			return statusServer.Run(ctx)
		})
	}

	fmt.Printf("Serving toga on ssh://%s\n", sshServer.Address())
	if s.AllowAnyKey {
		fmt.Println("Warning: every SSH key is accepted (--allow-any-key)")
		logging.Logger.Warn("SSH server accepts every key")
	}
	if s.MetricsAddress != "" {
		fmt.Printf("Status endpoints on http://%s\n", s.MetricsAddress)
	}

	if err := g.Wait(); err != nil {
		logging.Logger.Error("Server stopped with error", "error", err)
		return err
	}
	logging.Logger.Info("Servers stopped")
	return nil
}

// applySettings fills serve flags left at their defaults from settings.json,
// then falls back to the default host key and authorized_keys paths
func (s *ServeCmd) applySettings(settings *config.Settings) {
	if settings != nil {
		if !s.AllowAnyKey && !hasEnv("TOGA_ALLOW_ANY_KEY") && settings.AllowAnyKey != nil && *settings.AllowAnyKey {
			s.AllowAnyKey = true
		}
		if s.AuthorizedKeys == "" && !hasEnv("TOGA_AUTHORIZED_KEYS") && settings.AuthorizedKeys != "" {
			s.AuthorizedKeys = settings.AuthorizedKeys
		}
		if s.Host == defaultSSHHost && !hasEnv("TOGA_SSH_HOST") && settings.SSHHost != "" {
			s.Host = settings.SSHHost
		}
		if s.MetricsAddress == ":9090" && !hasEnv("TOGA_METRICS_ADDRESS") && settings.MetricsAddress != "" {
			s.MetricsAddress = settings.MetricsAddress
		}
		if s.Port == defaultSSHPort && !hasEnv("TOGA_SSH_PORT") && settings.SSHPort != nil {
			s.Port = *settings.SSHPort
		}
	}

	if s.HostKey == "" {
		s.HostKey = config.GetHostKeyPath()
	}
	if s.AuthorizedKeys == "" {
		s.AuthorizedKeys = config.GetAuthorizedKeysPath()
	}
}
