package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"toga/internal/camera"
	"toga/internal/domain"
	"toga/internal/logging"
	"toga/internal/ports"
	"toga/internal/progress"
)

// DefaultSettleDelay is how long the completed progress stays on screen
// before a freshly generated photo is shown
const DefaultSettleDelay = 2 * time.Second

// ErrClosed is returned by operations on a controller that was closed
var ErrClosed = fmt.Errorf("workflow closed: %w", domain.ErrValidation)

// Options tunes a Controller. Zero values select the defaults.
type Options struct {
	Context     context.Context
	Now         func() time.Time
	Profiles    domain.ProfileSet
	Recorder    ports.AttemptRecorder
	Scheduler   progress.Scheduler
	SettleDelay time.Duration
}

// Controller is the capture-and-generate state machine. All mutation goes
// through Update (or the operation methods it dispatches to); it is not safe
// for concurrent use and is meant to be owned by one bubbletea program.
type Controller struct {
	animator  *progress.Animator
	camera    *camera.Manager
	generator ports.GenerationClient
	verifier  ports.VerificationClient

	now         func() time.Time
	parent      context.Context
	profiles    domain.ProfileSet
	recorder    ports.AttemptRecorder
	schedule    progress.Scheduler
	settleDelay time.Duration

	cancel  context.CancelFunc
	ctx     context.Context
	epoch   uint64
	session domain.Session
	lastErr error

	acquiring  bool
	closed     bool
	generating bool
	handle     camera.Handle
	outcome    *domain.GenerateResult
	run        progress.Handle
	verifying  bool
}

// NewController creates a controller in the search state
func NewController(verifier ports.VerificationClient, generator ports.GenerationClient, cameras *camera.Manager, opts Options) *Controller {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Profiles.Fresh.TickInterval == 0 || opts.Profiles.Cached.TickInterval == 0 {
		opts.Profiles = domain.DefaultProfileSet()
	}
	if opts.Profiles.Provisional == "" {
		opts.Profiles.Provisional = domain.ProfileFresh
	}
	if opts.Scheduler == nil {
		opts.Scheduler = tea.Tick
	}
	if opts.SettleDelay <= 0 {
		opts.SettleDelay = DefaultSettleDelay
	}

	c := &Controller{
		animator:    progress.NewAnimator(opts.Scheduler),
		camera:      cameras,
		generator:   generator,
		verifier:    verifier,
		now:         opts.Now,
		parent:      opts.Context,
		profiles:    opts.Profiles,
		recorder:    opts.Recorder,
		schedule:    opts.Scheduler,
		settleDelay: opts.SettleDelay,
		session:     domain.NewSession(),
	}
	c.ctx, c.cancel = context.WithCancel(c.parent)
	return c
}

// Update is the single entry point for operations, async results and timers
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case SubmitIdentifierMsg:
		cmd, _ := c.SubmitIdentifier(msg.ID)
		return cmd
	case CaptureAndGenerateMsg:
		cmd, _ := c.CaptureAndGenerate()
		return cmd
	case GoBackMsg:
		_ = c.GoBack()
		return nil
	case RestartMsg:
		c.Restart()
		return nil

	case verifiedMsg:
		return c.onVerified(msg)
	case acquiredMsg:
		return c.onAcquired(msg)
	case generatedMsg:
		return c.onGenerated(msg)
	case settledMsg:
		return c.onSettled(msg)

	case progress.DoneMsg:
		return c.onProgressDone(msg)
	case progress.TickMsg, progress.RotateMsg:
		cmd, _ := c.animator.Update(msg)
		c.syncProgress()
		return cmd
	}
	return nil
}

// SubmitIdentifier verifies id. Only valid in the search step and while no
// other verification is in flight.
func (c *Controller) SubmitIdentifier(raw string) (tea.Cmd, error) {
	if c.closed {
		return nil, c.reject(ErrClosed, domain.MsgInvalidAction)
	}
	if c.verifying {
		return nil, c.reject(domain.ErrBusy, domain.MsgBusy)
	}
	if c.session.State != domain.StateSearch {
		return nil, c.reject(fmt.Errorf("cannot submit identifier in %s step: %w", c.session.State, domain.ErrValidation), domain.MsgInvalidAction)
	}

	id, err := domain.NormalizeIdentifier(raw)
	if err != nil {
		c.session.Identifier = ""
		if strings.TrimSpace(raw) == "" {
			return nil, c.reject(err, domain.MsgEmptyIdentifier)
		}
		return nil, c.reject(err, domain.MsgInvalidIdentifier)
	}

	c.session.Identifier = id
	c.session.StatusMessage = ""
	c.lastErr = nil
	c.verifying = true

	logging.Logger.Info("Verifying identifier", "identifier", id, "epoch", c.epoch)

	epoch, ctx, verifier := c.epoch, c.ctx, c.verifier
	return func() tea.Msg {
		start := c.now()
		res, err := verifier.Verify(ctx, id)
		c.record(ctx, domain.AttemptVerify, id, domain.VerifyOutcome(res, err), err, start)
		return verifiedMsg{epoch: epoch, err: err, result: res}
	}, nil
}

// CaptureAndGenerate takes the photo and requests the graduation picture.
// It requires the capture step, a verified profile and a ready stream.
func (c *Controller) CaptureAndGenerate() (tea.Cmd, error) {
	if c.closed {
		return nil, c.reject(ErrClosed, domain.MsgInvalidAction)
	}
	if c.generating || c.session.State == domain.StateLoading {
		return nil, c.reject(domain.ErrBusy, domain.MsgBusy)
	}
	if c.session.State != domain.StateCapture {
		return nil, c.reject(fmt.Errorf("cannot capture in %s step: %w", c.session.State, domain.ErrValidation), domain.MsgInvalidAction)
	}
	if c.session.Profile == nil || c.session.Identifier == "" {
		return nil, c.reject(fmt.Errorf("no verified profile: %w", domain.ErrValidation), domain.MsgMissingProfile)
	}
	if !c.StreamReady() {
		return nil, c.reject(camera.ErrStreamNotReady, domain.MsgCaptureNotReady)
	}

	c.generating = true
	c.lastErr = nil
	c.session.State = domain.StateLoading
	c.session.StatusMessage = ""

	provisional := c.profiles.Get(c.profiles.Provisional)
	var animate tea.Cmd
	c.run, animate = c.animator.Start(provisional)
	c.syncProgress()

	logging.Logger.Info("Capture and generate started",
		"identifier", c.session.Identifier,
		"provisional_profile", provisional.Name,
		"epoch", c.epoch)

	epoch, ctx, id, handle := c.epoch, c.ctx, c.session.Identifier, c.handle
	cameras, generator := c.camera, c.generator
	generate := func() tea.Msg {
		frame, err := cameras.CaptureFrame(handle)
		if err != nil {
			return generatedMsg{epoch: epoch, err: fmt.Errorf("failed to capture frame: %w", err)}
		}
		start := c.now()
		res, err := generator.Generate(ctx, id, frame)
		c.record(ctx, domain.AttemptGenerate, id, domain.GenerateOutcome(res, err), err, start)
		return generatedMsg{epoch: epoch, err: err, result: res}
	}

	return tea.Batch(animate, generate), nil
}

// GoBack returns from capture to search and releases the camera
func (c *Controller) GoBack() error {
	if c.closed {
		return c.reject(ErrClosed, domain.MsgInvalidAction)
	}
	if c.session.State != domain.StateCapture {
		return c.reject(fmt.Errorf("cannot go back from %s step: %w", c.session.State, domain.ErrValidation), domain.MsgInvalidAction)
	}

	logging.Logger.Info("Going back to search", "epoch", c.epoch)
	c.supersede()
	c.releaseCamera()
	c.session.Profile = nil
	c.session.State = domain.StateSearch
	c.session.StatusMessage = ""
	c.lastErr = nil
	return nil
}

// Restart abandons whatever is in progress and resets the session
func (c *Controller) Restart() {
	if c.closed {
		return
	}
	logging.Logger.Info("Restarting workflow", "state", c.session.State, "epoch", c.epoch)
	c.animator.Cancel(c.run)
	c.run = 0
	c.supersede()
	c.releaseCamera()
	c.session = domain.NewSession()
	c.lastErr = nil
}

// Close cancels everything in flight, releases the camera and closes the
// camera manager. It is safe to call more than once.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	logging.Logger.Info("Closing workflow", "state", c.session.State)
	c.animator.Cancel(c.run)
	c.supersede()
	c.cancel()
	c.releaseCamera()
	c.camera.Close()
	c.closed = true
}

func (c *Controller) onVerified(msg verifiedMsg) tea.Cmd {
	if msg.epoch != c.epoch {
		logging.Logger.Debug("Dropping stale verification result", "epoch", msg.epoch)
		return nil
	}
	c.verifying = false

	switch {
	case msg.err != nil:
		c.lastErr = msg.err
		if errors.Is(msg.err, domain.ErrNotFound) {
			c.session.StatusMessage = domain.MsgNotFound
		} else {
			c.session.StatusMessage = domain.MsgVerifyFailed
		}
		logging.Logger.Warn("Verification failed", "identifier", c.session.Identifier, "error", msg.err)
		return nil

	case !msg.result.Exists || msg.result.User == nil:
		c.lastErr = fmt.Errorf("identifier %s: %w", c.session.Identifier, domain.ErrNotFound)
		c.session.StatusMessage = domain.MsgNotFound
		logging.Logger.Info("Identifier not found", "identifier", c.session.Identifier)
		return nil
	}

	profile := *msg.result.User
	if profile.Cedula == "" {
		profile.Cedula = c.session.Identifier
	}
	c.session.Profile = &profile
	c.session.State = domain.StateCapture
	c.session.StatusMessage = ""
	logging.Logger.Info("Identifier verified", "identifier", c.session.Identifier, "name", profile.Name)

	return c.startAcquisition()
}

func (c *Controller) startAcquisition() tea.Cmd {
	c.acquiring = true
	c.session.StatusMessage = domain.MsgStartingCamera

	epoch, ctx, cameras := c.epoch, c.ctx, c.camera
	return func() tea.Msg {
		h, err := cameras.Acquire(ctx)
		return acquiredMsg{epoch: epoch, err: err, handle: h}
	}
}

func (c *Controller) onAcquired(msg acquiredMsg) tea.Cmd {
	if msg.epoch != c.epoch || c.session.State != domain.StateCapture {
		if msg.err == nil && msg.handle != c.handle {
			logging.Logger.Debug("Releasing stream of superseded acquisition", "epoch", msg.epoch)
			if err := c.camera.Release(msg.handle); err != nil {
				logging.Logger.Warn("Failed to release superseded stream", "error", err)
			}
		}
		return nil
	}
	c.acquiring = false

	if msg.err != nil {
		c.lastErr = msg.err
		switch {
		case errors.Is(msg.err, domain.ErrPermissionDenied):
			c.session.StatusMessage = domain.MsgCameraPermission
		case errors.Is(msg.err, domain.ErrDeviceUnavailable):
			c.session.StatusMessage = domain.MsgCameraUnavailable
		default:
			c.session.StatusMessage = domain.MsgCameraFailed
		}
		logging.Logger.Warn("Camera acquisition failed", "error", msg.err)
		return nil
	}

	c.handle = msg.handle
	if c.session.StatusMessage == domain.MsgStartingCamera {
		c.session.StatusMessage = ""
	}
	return nil
}

func (c *Controller) onGenerated(msg generatedMsg) tea.Cmd {
	if msg.epoch != c.epoch {
		logging.Logger.Debug("Dropping stale generation result", "epoch", msg.epoch)
		return nil
	}
	c.generating = false

	if msg.err != nil {
		return c.failGeneration(msg.err)
	}

	res := msg.result
	c.outcome = &res
	target := c.profiles.ForOutcome(res.HasExistingPhoto)
	run := c.animator.Current()

	logging.Logger.Info("Generation resolved",
		"has_existing_photo", res.HasExistingPhoto,
		"generated", res.Generated,
		"active_profile", run.Profile.Name,
		"percent", run.Percent)

	switch {
	case target.Name == domain.ProfileFresh:
		// the real answer is known, no reason to keep pacing a long profile
		if c.animator.JumpToComplete(c.run, domain.MsgProgressDone) {
			c.syncProgress()
		} else {
			c.session.ProgressPercent = 100
			c.session.ProgressMessage = domain.MsgProgressDone
		}
		return c.settle()

	case run.Profile.Name != target.Name && run.Active:
		var cmd tea.Cmd
		c.run, cmd = c.animator.StartFrom(target, run.Percent)
		c.syncProgress()
		return cmd

	case run.Active:
		// the matching profile is already running, DoneMsg completes
		return nil

	default:
		return c.settle()
	}
}

func (c *Controller) failGeneration(err error) tea.Cmd {
	c.animator.Cancel(c.run)
	c.run = 0
	c.outcome = nil
	c.lastErr = err
	c.session.State = domain.StateCapture
	c.session.ProgressPercent = 0
	c.session.ProgressMessage = ""

	switch domain.KindOf(err) {
	case domain.KindNotFound:
		c.session.StatusMessage = domain.MsgNotFound
	case domain.KindBadRequest:
		c.session.StatusMessage = domain.BadRequestMessage(domain.BackendMessage(err))
	default:
		if errors.Is(err, camera.ErrStreamNotReady) {
			c.session.StatusMessage = domain.MsgCaptureNotReady
		} else {
			c.session.StatusMessage = domain.MsgGenerateFailed
		}
	}

	logging.Logger.Warn("Generation failed", "identifier", c.session.Identifier, "error", err)
	return nil
}

func (c *Controller) onProgressDone(msg progress.DoneMsg) tea.Cmd {
	if msg.Run != c.run {
		return nil
	}
	c.syncProgress()
	if c.outcome == nil {
		// animation outran the backend; hold at 100 until it answers
		logging.Logger.Debug("Progress finished before generation resolved", "profile", msg.Profile)
		return nil
	}
	return c.complete()
}

func (c *Controller) settle() tea.Cmd {
	epoch := c.epoch
	return c.schedule(c.settleDelay, func(time.Time) tea.Msg {
		return settledMsg{epoch: epoch}
	})
}

func (c *Controller) onSettled(msg settledMsg) tea.Cmd {
	if msg.epoch != c.epoch || c.outcome == nil {
		return nil
	}
	return c.complete()
}

func (c *Controller) complete() tea.Cmd {
	res := *c.outcome
	c.outcome = nil
	c.animator.Cancel(c.run)

	profile := mergeProfile(c.session.Profile, res.User)
	c.session.Profile = &profile
	c.session.GeneratedArtifact = res.Image
	c.session.State = domain.StateResult
	c.session.StatusMessage = domain.SuccessMessage(profile.Name, res.Generated)
	c.releaseCamera()

	logging.Logger.Info("Workflow completed",
		"identifier", c.session.Identifier,
		"generated", res.Generated,
		"has_existing_photo", res.HasExistingPhoto)
	return nil
}

// supersede invalidates every in-flight result and timer of the current attempt
func (c *Controller) supersede() {
	c.cancel()
	c.epoch++
	c.ctx, c.cancel = context.WithCancel(c.parent)
	c.generating = false
	c.outcome = nil
	c.verifying = false
}

func (c *Controller) releaseCamera() {
	if c.acquiring {
		// cancels the pending acquisition and releases anything it got
		c.camera.Stop()
		c.acquiring = false
	}
	if c.handle != 0 {
		if err := c.camera.Release(c.handle); err != nil {
			logging.Logger.Warn("Failed to release camera", "error", err)
		}
		c.handle = 0
	}
}

func (c *Controller) reject(err error, status string) error {
	c.lastErr = err
	c.session.StatusMessage = status
	logging.Logger.Debug("Operation rejected", "state", c.session.State, "error", err)
	return err
}

func (c *Controller) syncProgress() {
	run := c.animator.Current()
	if c.run == 0 || run.ID != c.run {
		return
	}
	c.session.ProgressPercent = run.Percent
	c.session.ProgressMessage = run.Message
}

func (c *Controller) record(ctx context.Context, kind domain.AttemptKind, id string, outcome domain.AttemptOutcome, err error, start time.Time) {
	if c.recorder == nil {
		return
	}
	c.recorder.Record(context.WithoutCancel(ctx), domain.Attempt{
		Duration:   c.now().Sub(start),
		ErrorKind:  domain.KindOf(err),
		Identifier: id,
		Kind:       kind,
		Outcome:    outcome,
	})
}

func mergeProfile(stored *domain.Profile, returned domain.Profile) domain.Profile {
	var merged domain.Profile
	if stored != nil {
		merged = *stored
	}
	if returned.Name != "" {
		merged.Name = returned.Name
	}
	if returned.Career != "" {
		merged.Career = returned.Career
	}
	if returned.Cedula != "" {
		merged.Cedula = returned.Cedula
	}
	if returned.Email != "" {
		merged.Email = returned.Email
	}
	return merged
}
