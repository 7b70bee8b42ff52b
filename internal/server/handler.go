package server

import (
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"

	"toga/internal/logging"
	"toga/internal/metrics"
	"toga/internal/ui"
)

type kioskContextKey struct{}

// sessionModel wraps the kiosk of one connection to release its camera
// and record the session once the connection ends
type sessionModel struct {
	*ui.Model
	closeOnce sync.Once
	metrics   *metrics.Metrics
	sessionID string
	startTime time.Time
}

func (s *sessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	_, cmd := s.Model.Update(msg)
	return s, cmd
}

// close must only be called once the program stopped calling Update
func (s *sessionModel) close() {
	s.closeOnce.Do(func() {
		s.Model.Close()
		if s.metrics != nil {
			s.metrics.SessionEnded()
		}
		logging.Logger.Info("SSH session ended",
			"session_id", s.sessionID,
			"duration", time.Since(s.startTime).String())
	})
}

// teaHandler creates the kiosk model for each SSH session
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	sessionID := fmt.Sprintf("%s@%s", sess.User(), sess.RemoteAddr().String())

	logging.Logger.Info("New SSH session",
		"session_id", sessionID,
		"user", sess.User(),
		"remote_addr", sess.RemoteAddr().String(),
		"term", pty.Term,
		"window", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

	model, err := s.factory(sessionID)
	if err != nil {
		logging.Logger.Error("Failed to create kiosk for SSH session",
			"error", err,
			"session_id", sessionID)
		return errorModel{err}, nil
	}

	if s.metrics != nil {
		s.metrics.SessionStarted()
	}
	wrapped := &sessionModel{
		Model:     model,
		metrics:   s.metrics,
		sessionID: sessionID,
		startTime: time.Now(),
	}
	sess.Context().SetValue(kioskContextKey{}, wrapped)

	return wrapped, []tea.ProgramOption{tea.WithAltScreen()}
}

// cleanupMiddleware closes the kiosk after the bubbletea middleware returned
func (s *SSHServer) cleanupMiddleware() wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			if kiosk, ok := sess.Context().Value(kioskContextKey{}).(*sessionModel); ok {
				kiosk.close()
			}
			next(sess)
		}
	}
}

// errorModel is a simple model that displays an error
type errorModel struct {
	err error
}

func (e errorModel) Init() tea.Cmd {
	return nil
}

func (e errorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return e, tea.Quit
}

func (e errorModel) View() string {
	return fmt.Sprintf("Error: %v\n", e.err)
}
