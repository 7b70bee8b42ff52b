package progress

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"toga/internal/domain"
	"toga/internal/logging"
)

// Scheduler arranges for fn's message to be delivered after d.
// tea.Tick satisfies it; tests substitute a virtual clock.
type Scheduler func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

// Handle identifies one animation run. The zero value is never issued.
type Handle uint64

// TickMsg advances the percent of a run
type TickMsg struct {
	Run Handle
}

// RotateMsg advances the message feed of a run
type RotateMsg struct {
	Run Handle
}

// DoneMsg is emitted once when a run reaches 100 percent on its own
type DoneMsg struct {
	Profile domain.ProfileName
	Run     Handle
}

// Run is a snapshot of an animation run
type Run struct {
	Active       bool
	Completed    bool
	ID           Handle
	Message      string
	MessageIndex int
	Percent      float64
	Profile      domain.ProgressProfile
	StartPercent float64
	Ticks        int
}

// Animator drives one progress animation at a time. It is not safe for
// concurrent use; callers serialize access through their Update loop.
type Animator struct {
	current  Run
	nextID   Handle
	schedule Scheduler
}

// NewAnimator creates an animator. A nil scheduler means tea.Tick.
func NewAnimator(schedule Scheduler) *Animator {
	if schedule == nil {
		schedule = tea.Tick
	}
	return &Animator{schedule: schedule}
}

// Start cancels any active run and starts a new one at 0 percent
func (a *Animator) Start(profile domain.ProgressProfile) (Handle, tea.Cmd) {
	return a.StartFrom(profile, 0)
}

// StartFrom cancels any active run and starts a new one at percent.
// The new run still reaches 100 after the profile's full duration.
func (a *Animator) StartFrom(profile domain.ProgressProfile, percent float64) (Handle, tea.Cmd) {
	if a.current.Active {
		a.Cancel(a.current.ID)
	}

	percent = clamp(percent)
	a.nextID++
	a.current = Run{
		Active:       true,
		ID:           a.nextID,
		Message:      profile.Message(0),
		Percent:      percent,
		Profile:      profile,
		StartPercent: percent,
	}

	logging.Logger.Debug("Progress run started",
		"run", uint64(a.current.ID),
		"profile", profile.Name,
		"start_percent", percent,
		"ticks", profile.Ticks())

	if percent >= 100 {
		return a.current.ID, a.finish()
	}

	return a.current.ID, tea.Batch(a.scheduleTick(a.current.ID), a.scheduleRotate(a.current.ID))
}

// Update applies timer messages of the active run. It reports whether msg
// belonged to the animator; messages of cancelled or superseded runs are
// swallowed without rescheduling.
func (a *Animator) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case TickMsg:
		if !a.owns(msg.Run) {
			return nil, true
		}
		r := &a.current
		r.Ticks++
		n := r.Profile.Ticks()
		if r.Ticks >= n {
			return a.finish(), true
		}
		r.Percent = clamp(r.StartPercent + (100-r.StartPercent)*float64(r.Ticks)/float64(n))
		return a.scheduleTick(r.ID), true

	case RotateMsg:
		if !a.owns(msg.Run) {
			return nil, true
		}
		r := &a.current
		if r.Profile.MessageCount() == 0 {
			return nil, true
		}
		r.MessageIndex = (r.MessageIndex + 1) % r.Profile.MessageCount()
		r.Message = r.Profile.Message(r.MessageIndex)
		return a.scheduleRotate(r.ID), true
	}
	return nil, false
}

// Cancel stops the run. Zero, unknown and finished handles are a no-op.
func (a *Animator) Cancel(h Handle) {
	if !a.owns(h) {
		return
	}
	a.current.Active = false
	logging.Logger.Debug("Progress run cancelled", "run", uint64(h), "percent", a.current.Percent)
}

// JumpToComplete sets the run to 100 percent with msg and stops it without
// emitting DoneMsg. It reports whether h was the active run.
func (a *Animator) JumpToComplete(h Handle, msg string) bool {
	if !a.owns(h) {
		return false
	}
	a.current.Active = false
	a.current.Completed = true
	a.current.Percent = 100
	a.current.Message = msg
	logging.Logger.Debug("Progress run jumped to completion", "run", uint64(h))
	return true
}

// Current returns a snapshot of the latest run
func (a *Animator) Current() Run {
	return a.current
}

// Active reports whether h is the running animation
func (a *Animator) Active(h Handle) bool {
	return a.owns(h)
}

func (a *Animator) owns(h Handle) bool {
	return h != 0 && a.current.ID == h && a.current.Active
}

func (a *Animator) finish() tea.Cmd {
	r := &a.current
	r.Percent = 100
	r.Active = false
	r.Completed = true
	done := DoneMsg{Profile: r.Profile.Name, Run: r.ID}
	logging.Logger.Debug("Progress run completed", "run", uint64(r.ID), "profile", r.Profile.Name)
	return func() tea.Msg { return done }
}

func (a *Animator) scheduleTick(h Handle) tea.Cmd {
	return a.schedule(a.current.Profile.TickInterval, func(time.Time) tea.Msg {
		return TickMsg{Run: h}
	})
}

// scheduleRotate returns nil for profiles without a message feed
func (a *Animator) scheduleRotate(h Handle) tea.Cmd {
	if a.current.Profile.MessageCount() == 0 {
		return nil
	}
	return a.schedule(a.current.Profile.MessageInterval, func(time.Time) tea.Msg {
		return RotateMsg{Run: h}
	})
}

func clamp(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}
