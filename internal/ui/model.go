package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	progressbar "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"toga/internal/domain"
	"toga/internal/logging"
	"toga/internal/progress"
	"toga/internal/services"
	"toga/internal/theme"
	"toga/internal/workflow"
)

const (
	maxBarWidth = 64
	minBarWidth = 10
)

// Config wires a kiosk Model
type Config struct {
	Artifacts  *services.ArtifactService // nil disables saving
	Controller *workflow.Controller
	DevMode    bool
	Keys       KeyBindingsConfig
	Scheduler  progress.Scheduler // nil uses tea.Tick
}

// savedMsg reports the result of writing the photo to disk
type savedMsg struct {
	err  error
	path string
}

// Model renders the workflow session and turns key presses into
// workflow operations. The controller stays the owner of all session state.
type Model struct {
	artifacts *services.ArtifactService
	bar       progressbar.Model
	ctrl      *workflow.Controller
	devMode   bool
	height    int
	help      help.Model
	input     textinput.Model
	keys      KeyMap
	saveErr   error
	saveForm  *SaveForm
	savedPath string
	schedule  progress.Scheduler
	spinner   spinner.Model
	spinning  bool
	state     domain.State // step rendered last, used to detect transitions
	width     int
}

// NewModel creates the kiosk model around a controller
func NewModel(cfg Config) *Model {
	schedule := cfg.Scheduler
	if schedule == nil {
		schedule = tea.Tick
	}

	input := textinput.New()
	input.Placeholder = "Número de cédula"
	input.Prompt = "› "
	input.CharLimit = 20
	input.Cursor.SetMode(cursor.CursorStatic)
	input.Focus()

	return &Model{
		artifacts: cfg.Artifacts,
		bar: progressbar.New(
			progressbar.WithGradient(theme.ProgressGradientStart, theme.ProgressGradientEnd),
			progressbar.WithoutPercentage(),
			progressbar.WithWidth(maxBarWidth),
		),
		ctrl:     cfg.Controller,
		devMode:  cfg.DevMode,
		help:     help.New(),
		input:    input,
		keys:     NewKeyMap(cfg.Keys),
		schedule: schedule,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(theme.SpinnerStyle),
		),
		state: cfg.Controller.State(),
	}
}

func (m *Model) Init() tea.Cmd {
	return m.refresh()
}

// Close tears the workflow down and releases the camera
func (m *Model) Close() {
	m.ctrl.Close()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.bar.Width = max(minBarWidth, min(maxBarWidth, msg.Width-12))
		return m, nil

	case spinner.TickMsg:
		if msg.ID == m.spinner.ID() {
			return m, m.onSpin(msg)
		}

	case savedMsg:
		m.savedPath, m.saveErr = msg.path, msg.err
		return m, nil

	case tea.KeyMsg:
		if m.saveForm != nil {
			return m.updateSaveForm(msg)
		}
		return m.updateKeys(msg)
	}

	// Everything else belongs to the workflow (results, timers) or to an open form
	cmd := m.ctrl.Update(msg)
	var formCmd tea.Cmd
	if m.saveForm != nil {
		_, formCmd = m.saveForm.Update(msg)
	}
	return m, tea.Batch(cmd, formCmd, m.refresh())
}

func (m *Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Restart):
		m.ctrl.Restart()
		return m, m.refresh()
	}

	switch m.ctrl.State() {
	case domain.StateSearch:
		return m.updateSearch(msg)
	case domain.StateCapture:
		return m.updateCapture(msg)
	case domain.StateResult:
		return m.updateResult(msg)
	}
	return m, nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		cmd, err := m.ctrl.SubmitIdentifier(m.input.Value())
		if err != nil {
			logging.Logger.Debug("Identifier rejected", "error", err)
		}
		return m, tea.Batch(cmd, m.refresh())
	case key.Matches(msg, m.keys.Back):
		m.input.Reset()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateCapture(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Capture):
		cmd, err := m.ctrl.CaptureAndGenerate()
		if err != nil {
			logging.Logger.Debug("Capture rejected", "error", err)
		}
		return m, tea.Batch(cmd, m.refresh())
	case key.Matches(msg, m.keys.Back):
		_ = m.ctrl.GoBack()
		return m, m.refresh()
	}
	return m, nil
}

func (m *Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Save):
		return m, m.openSaveForm()
	case key.Matches(msg, m.keys.New):
		m.ctrl.Restart()
		return m, m.refresh()
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) canSave() bool {
	session := m.ctrl.Session()
	return m.artifacts != nil && session.GeneratedArtifact != "" && session.Profile != nil
}

func (m *Model) openSaveForm() tea.Cmd {
	if !m.canSave() {
		return nil
	}
	profile := m.ctrl.Session().Profile
	m.saveForm = NewSaveForm(m.artifacts.Dir(), services.ArtifactFileName(*profile))
	return m.saveForm.Init()
}

func (m *Model) updateSaveForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	_, cmd := m.saveForm.Update(msg)
	if !m.saveForm.Completed {
		return m, cmd
	}
	confirmed := m.saveForm.Confirmed()
	m.saveForm = nil
	if !confirmed {
		return m, nil
	}
	return m, m.saveCmd()
}

// saveCmd writes the current artifact to the downloads directory
func (m *Model) saveCmd() tea.Cmd {
	session := m.ctrl.Session()
	if m.artifacts == nil || session.Profile == nil {
		return nil
	}
	artifacts, artifact, profile := m.artifacts, session.GeneratedArtifact, *session.Profile
	return func() tea.Msg {
		path, err := artifacts.Save(context.Background(), artifact, profile)
		if err != nil {
			logging.Logger.Error("Failed to save photo", "error", err)
		}
		return savedMsg{err: err, path: path}
	}
}

// refresh reacts to step transitions and keeps the spinner running while
// something is in flight
func (m *Model) refresh() tea.Cmd {
	if state := m.ctrl.State(); state != m.state {
		m.state = state
		switch state {
		case domain.StateSearch:
			m.input.SetValue(m.ctrl.Session().Identifier)
			m.input.CursorEnd()
			m.input.Focus()
		case domain.StateCapture, domain.StateLoading:
			m.input.Blur()
		case domain.StateResult:
			m.saveErr, m.savedPath = nil, ""
		}
	}

	if m.needsSpinner() && !m.spinning {
		m.spinning = true
		return m.spin()
	}
	return nil
}

func (m *Model) needsSpinner() bool {
	return m.ctrl.Busy() || m.ctrl.Acquiring()
}

func (m *Model) onSpin(msg spinner.TickMsg) tea.Cmd {
	if !m.needsSpinner() {
		m.spinning = false
		return nil
	}
	m.spinner, _ = m.spinner.Update(msg)
	return m.spin()
}

func (m *Model) spin() tea.Cmd {
	id := m.spinner.ID()
	return m.schedule(m.spinner.Spinner.FPS, func(t time.Time) tea.Msg {
		return spinner.TickMsg{ID: id, Time: t}
	})
}

func (m *Model) View() string {
	session := m.ctrl.Session()

	var b strings.Builder
	switch session.State {
	case domain.StateSearch:
		b.WriteString(renderHeader(m.devMode, "Busca tu registro") + "\n")
		b.WriteString(m.viewSearch())
	case domain.StateCapture:
		b.WriteString(renderHeader(m.devMode, "Toma tu foto") + "\n")
		b.WriteString(m.viewCapture(session))
	case domain.StateLoading:
		b.WriteString(renderHeader(m.devMode, "Generando tu foto") + "\n")
		b.WriteString(m.viewLoading(session))
	case domain.StateResult:
		b.WriteString(m.viewResult(session))
	}

	if session.StatusMessage != "" && session.State != domain.StateResult {
		b.WriteString("\n\n" + m.renderStatus(session.StatusMessage))
	}

	b.WriteString("\n" + theme.HelpStyle.Render(m.help.View(stepKeys{
		keys:  m.keys,
		save:  m.canSave(),
		state: session.State,
	})))

	view := lipgloss.NewStyle().Padding(1, 2).Render(b.String())
	if m.saveForm != nil && m.overlayFits() {
		return compositeOverlay(view, theme.CardStyle.Render(m.saveForm.View()), m.width, m.height)
	}
	return view
}

// overlayFits reports whether the terminal size is known and large enough
// to show the save dialog on top of the result screen
func (m *Model) overlayFits() bool {
	return m.width >= 40 && m.height >= 12
}

// contentWidth is the usable width inside the screen padding
func (m *Model) contentWidth() int {
	if m.width == 0 {
		return maxBarWidth
	}
	return max(m.width-6, minErrorWidth)
}

func (m *Model) viewSearch() string {
	var b strings.Builder
	b.WriteString(theme.LabelStyle.Render("Ingresa tu número de cédula") + "\n")
	b.WriteString(m.input.View())
	if m.ctrl.Busy() {
		b.WriteString("\n\n" + m.spinner.View() + " Verificando cédula...")
	}
	return b.String()
}

func (m *Model) viewCapture(session domain.Session) string {
	var b strings.Builder
	if session.Profile != nil {
		b.WriteString(renderProfile(*session.Profile) + "\n\n")
	}
	switch {
	case m.ctrl.StreamReady():
		b.WriteString(theme.ValueStyle.Render("📷 Cámara lista.") + " " +
			theme.LabelStyle.Render("Mira a la cámara y presiona Enter para tomar la foto."))
	case m.ctrl.Acquiring():
		b.WriteString(m.spinner.View() + " " + domain.MsgStartingCamera)
	default:
		b.WriteString(theme.LabelStyle.Render("📷 Cámara no disponible. Presiona Enter para reintentar."))
	}
	return b.String()
}

func (m *Model) viewLoading(session domain.Session) string {
	var b strings.Builder
	b.WriteString(m.spinner.View() + " " + theme.ProgressMessageStyle.Render(session.ProgressMessage) + "\n\n")
	b.WriteString(m.bar.ViewAs(session.ProgressPercent/100) + fmt.Sprintf(" %3.0f%%", session.ProgressPercent))
	return b.String()
}

func (m *Model) viewResult(session domain.Session) string {
	var b strings.Builder
	b.WriteString(m.renderStatus(session.StatusMessage) + "\n\n")

	var card strings.Builder
	if session.Profile != nil {
		card.WriteString(renderProfile(*session.Profile) + "\n")
	}
	card.WriteString(theme.LabelStyle.Render("Foto: ") + theme.NormalStyle.Render(describeArtifact(session.GeneratedArtifact)))
	b.WriteString(theme.CardStyle.Render(card.String()))

	switch {
	case m.saveForm != nil && !m.overlayFits():
		b.WriteString("\n\n" + m.saveForm.View())
	case m.saveErr != nil:
		b.WriteString("\n\n" + theme.StatusErrorStyle.Render(
			formatErrorForDisplay("Error al guardar la foto: ", m.saveErr, m.contentWidth())))
	case m.savedPath != "":
		b.WriteString("\n\n" + theme.StatusSuccessStyle.Render("💾 Foto guardada en "+m.savedPath))
	}
	return b.String()
}

func (m *Model) renderStatus(text string) string {
	style := theme.StatusStyle(domain.ClassifyMessage(text))
	if m.width > 8 {
		style = style.Width(m.width - 6)
	}
	return style.Render(text)
}

func renderProfile(p domain.Profile) string {
	lines := []string{
		theme.LabelStyle.Render("Nombre:  ") + theme.ValueStyle.Render(p.Name),
		theme.LabelStyle.Render("Carrera: ") + theme.ValueStyle.Render(p.Career),
		theme.LabelStyle.Render("Cédula:  ") + theme.ValueStyle.Render(p.Cedula),
	}
	return strings.Join(lines, "\n")
}

// describeArtifact shortens inline images to a size hint
func describeArtifact(artifact string) string {
	if strings.HasPrefix(artifact, "data:") {
		_, payload, _ := strings.Cut(artifact, ",")
		return fmt.Sprintf("imagen generada (%d KB)", len(payload)*3/4/1024)
	}
	return artifact
}
