package workflow

import (
	"context"
	"errors"
	"image"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"toga/internal/camera"
	"toga/internal/domain"
	"toga/internal/ports"
	portsmocks "toga/internal/ports/mocks"
	"toga/internal/progress/progresstest"
)

const testID = "1019762841"

type fakeStream struct {
	closes int
}

func (s *fakeStream) Frame() (image.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, 32, 24)), nil
}

func (s *fakeStream) Close() error {
	s.closes++
	return nil
}

type fakeCamera struct {
	err    error
	opened []*fakeStream
}

func (c *fakeCamera) Open(ctx context.Context) (ports.Stream, error) {
	if c.err != nil {
		return nil, c.err
	}
	s := &fakeStream{}
	c.opened = append(c.opened, s)
	return s, nil
}

// live counts streams that were opened and never closed
func (c *fakeCamera) live() int {
	n := 0
	for _, s := range c.opened {
		if s.closes == 0 {
			n++
		}
	}
	return n
}

type fixture struct {
	camera    *fakeCamera
	clock     *progresstest.Clock
	ctrl      *Controller
	driver    *progresstest.Driver
	generator *portsmocks.MockGenerationClient
	percents  []float64
	verifier  *portsmocks.MockVerificationClient
}

func newFixture(t *testing.T, tune ...func(*Options)) *fixture {
	t.Helper()
	f := &fixture{
		camera:    &fakeCamera{},
		clock:     progresstest.NewClock(),
		generator: portsmocks.NewMockGenerationClient(t),
		verifier:  portsmocks.NewMockVerificationClient(t),
	}
	opts := Options{Scheduler: f.clock.Schedule}
	for _, fn := range tune {
		fn(&opts)
	}
	f.ctrl = NewController(f.verifier, f.generator, camera.NewManager(f.camera), opts)
	f.driver = progresstest.NewDriver(f.clock, f.ctrl.Update)
	f.driver.Observe = func(tea.Msg) {
		if s := f.ctrl.State(); s == domain.StateLoading || s == domain.StateResult {
			f.percents = append(f.percents, f.ctrl.Session().ProgressPercent)
		}
	}
	t.Cleanup(f.ctrl.Close)
	return f
}

func anaProfile() *domain.Profile {
	return &domain.Profile{Name: "Ana", Career: "Ingeniería de Sistemas"}
}

// toCapture verifies testID and waits for the camera
func (f *fixture) toCapture(t *testing.T) {
	t.Helper()
	f.verifier.EXPECT().Verify(mock.Anything, testID).
		Return(domain.VerifyResult{Success: true, Exists: true, User: anaProfile()}, nil).Once()

	f.driver.Send(SubmitIdentifierMsg{ID: testID})

	require.Equal(t, domain.StateCapture, f.ctrl.State())
	require.True(t, f.ctrl.StreamReady())
}

func (f *fixture) assertMonotonic(t *testing.T) {
	t.Helper()
	require.NotEmpty(t, f.percents)
	for i := 1; i < len(f.percents); i++ {
		assert.GreaterOrEqual(t, f.percents[i], f.percents[i-1], "percent went backwards at %d", i)
	}
}

func TestScenarioA_FreshGeneration(t *testing.T) {
	f := newFixture(t)
	f.toCapture(t)

	f.generator.EXPECT().Generate(mock.Anything, testID, mock.Anything).
		Return(domain.GenerateResult{
			Image:     "https://cdn.example.com/ana.png",
			User:      domain.Profile{Name: "Ana", Career: "Ingeniería de Sistemas", Cedula: testID},
			Generated: true,
		}, nil).Once()

	f.driver.Dispatch(CaptureAndGenerateMsg{})
	assert.Equal(t, domain.StateLoading, f.ctrl.State())
	assert.True(t, f.ctrl.Busy())
	assert.Equal(t, domain.InspiringMessages[0], f.ctrl.Session().ProgressMessage)

	f.driver.Advance(3 * time.Second)
	assert.Greater(t, f.ctrl.Session().ProgressPercent, 0.0)

	f.driver.Deliver()
	session := f.ctrl.Session()
	assert.Equal(t, domain.StateLoading, session.State)
	assert.Equal(t, 100.0, session.ProgressPercent)
	assert.Equal(t, domain.MsgProgressDone, session.ProgressMessage)

	f.driver.Advance(DefaultSettleDelay)

	session = f.ctrl.Session()
	assert.Equal(t, domain.StateResult, session.State)
	assert.Contains(t, session.StatusMessage, "Ana")
	assert.Contains(t, session.StatusMessage, "generada")
	assert.Equal(t, domain.MessageSuccess, f.ctrl.StatusClass())
	assert.Equal(t, "https://cdn.example.com/ana.png", session.GeneratedArtifact)
	assert.Equal(t, testID, session.Profile.Cedula)

	assert.Zero(t, f.camera.live())
	assert.Equal(t, 1, f.camera.opened[0].closes)
	assert.False(t, f.ctrl.StreamReady())
	assert.False(t, f.ctrl.Busy())
	f.assertMonotonic(t)
}

func TestScenarioB_CachedResultSwitchesToShortProfile(t *testing.T) {
	f := newFixture(t)
	f.toCapture(t)

	f.generator.EXPECT().Generate(mock.Anything, testID, mock.Anything).
		Return(domain.GenerateResult{
			Image:            "https://cdn.example.com/ana.png",
			User:             domain.Profile{Name: "Ana"},
			HasExistingPhoto: true,
		}, nil).Once()

	f.driver.Dispatch(CaptureAndGenerateMsg{})
	f.driver.Advance(17 * time.Second)
	require.InDelta(t, 20.0, f.ctrl.Session().ProgressPercent, 0.001)
	require.Equal(t, domain.ProfileFresh, f.ctrl.animator.Current().Profile.Name)

	f.driver.Deliver()
	assert.Equal(t, domain.ProfileCached, f.ctrl.animator.Current().Profile.Name)
	assert.InDelta(t, 20.0, f.ctrl.Session().ProgressPercent, 0.001)

	f.driver.Advance(14900 * time.Millisecond)
	assert.Equal(t, domain.StateLoading, f.ctrl.State())
	assert.Less(t, f.ctrl.Session().ProgressPercent, 100.0)

	f.driver.Advance(100 * time.Millisecond)

	session := f.ctrl.Session()
	assert.Equal(t, domain.StateResult, session.State)
	assert.Contains(t, session.StatusMessage, "Ana")
	assert.NotContains(t, session.StatusMessage, "generada")
	assert.Equal(t, 100.0, session.ProgressPercent)
	assert.Zero(t, f.camera.live())
	f.assertMonotonic(t)
}

func TestScenarioC_NotFoundStaysInSearch(t *testing.T) {
	tests := []struct {
		name   string
		result domain.VerifyResult
		err    error
	}{
		{"exists false", domain.VerifyResult{Success: true, Exists: false}, nil},
		{"not found error", domain.VerifyResult{}, &domain.BackendError{Err: domain.ErrNotFound, Status: 404}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.verifier.EXPECT().Verify(mock.Anything, testID).Return(tt.result, tt.err).Once()

			f.driver.Send(SubmitIdentifierMsg{ID: testID})

			assert.Equal(t, domain.StateSearch, f.ctrl.State())
			assert.Equal(t, domain.MsgNotFound, f.ctrl.Session().StatusMessage)
			assert.Equal(t, domain.MessageError, f.ctrl.StatusClass())
			assert.ErrorIs(t, f.ctrl.LastError(), domain.ErrNotFound)
			assert.Empty(t, f.camera.opened)
		})
	}
}

func TestScenarioD_CaptureRejectedWhileCameraNotReady(t *testing.T) {
	f := newFixture(t)
	f.camera.err = domain.ErrPermissionDenied
	f.verifier.EXPECT().Verify(mock.Anything, testID).
		Return(domain.VerifyResult{Success: true, Exists: true, User: anaProfile()}, nil).Once()

	f.driver.Send(SubmitIdentifierMsg{ID: testID})
	require.Equal(t, domain.StateCapture, f.ctrl.State())
	require.False(t, f.ctrl.StreamReady())
	assert.Equal(t, domain.MsgCameraPermission, f.ctrl.Session().StatusMessage)
	assert.ErrorIs(t, f.ctrl.LastError(), domain.ErrPermissionDenied)

	// a working device now would be opened by any retry
	f.camera.err = nil

	cmd, err := f.ctrl.CaptureAndGenerate()
	assert.Nil(t, cmd)
	assert.ErrorIs(t, err, camera.ErrStreamNotReady)
	assert.ErrorIs(t, err, domain.ErrValidation)

	f.driver.Deliver()
	assert.Equal(t, domain.StateCapture, f.ctrl.State())
	assert.False(t, f.ctrl.StreamReady())
	assert.False(t, f.ctrl.Acquiring())
	assert.Empty(t, f.camera.opened)
	assert.Equal(t, domain.MsgCaptureNotReady, f.ctrl.Session().StatusMessage)
	assert.Equal(t, domain.MessageError, f.ctrl.StatusClass())
	f.generator.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func TestCameraRetryThroughGoBack(t *testing.T) {
	f := newFixture(t)
	f.camera.err = domain.ErrPermissionDenied
	f.verifier.EXPECT().Verify(mock.Anything, testID).
		Return(domain.VerifyResult{Success: true, Exists: true, User: anaProfile()}, nil).Twice()

	f.driver.Send(SubmitIdentifierMsg{ID: testID})
	require.False(t, f.ctrl.StreamReady())

	f.camera.err = nil
	require.NoError(t, f.ctrl.GoBack())
	f.driver.Send(SubmitIdentifierMsg{ID: testID})

	assert.Equal(t, domain.StateCapture, f.ctrl.State())
	assert.True(t, f.ctrl.StreamReady())
	assert.Len(t, f.camera.opened, 1)
}

func TestCaptureRejectedWhileCameraStarting(t *testing.T) {
	f := newFixture(t)
	f.verifier.EXPECT().Verify(mock.Anything, testID).
		Return(domain.VerifyResult{Success: true, Exists: true, User: anaProfile()}, nil).Once()

	f.driver.Dispatch(SubmitIdentifierMsg{ID: testID})
	// deliver only the verification, keep the acquisition pending
	verified := f.driver.Inbox[0]
	f.driver.Inbox = nil
	acquire := f.ctrl.Update(verified)
	require.NotNil(t, acquire)

	assert.True(t, f.ctrl.Acquiring())
	assert.Equal(t, domain.MsgStartingCamera, f.ctrl.Session().StatusMessage)

	cmd, err := f.ctrl.CaptureAndGenerate()
	assert.Nil(t, cmd)
	assert.ErrorIs(t, err, camera.ErrStreamNotReady)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDeviceUnavailableMessage(t *testing.T) {
	f := newFixture(t)
	f.camera.err = domain.ErrDeviceUnavailable
	f.verifier.EXPECT().Verify(mock.Anything, testID).
		Return(domain.VerifyResult{Success: true, Exists: true, User: anaProfile()}, nil).Once()

	f.driver.Send(SubmitIdentifierMsg{ID: testID})

	assert.Equal(t, domain.StateCapture, f.ctrl.State())
	assert.Equal(t, domain.MsgCameraUnavailable, f.ctrl.Session().StatusMessage)
	assert.Equal(t, domain.MessageError, f.ctrl.StatusClass())
}

func TestUnclassifiedCameraFailureMessage(t *testing.T) {
	f := newFixture(t)
	f.camera.err = errors.New("pipeline exploded")
	f.verifier.EXPECT().Verify(mock.Anything, testID).
		Return(domain.VerifyResult{Success: true, Exists: true, User: anaProfile()}, nil).Once()

	f.driver.Send(SubmitIdentifierMsg{ID: testID})

	assert.Equal(t, domain.StateCapture, f.ctrl.State())
	assert.Equal(t, domain.MsgCameraFailed, f.ctrl.Session().StatusMessage)
	assert.NotEqual(t, domain.MsgCameraPermission, f.ctrl.Session().StatusMessage)
	assert.Equal(t, domain.MessageError, f.ctrl.StatusClass())
}

func TestSubmitIdentifier_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{"empty", "", domain.MsgEmptyIdentifier},
		{"blank", "   ", domain.MsgEmptyIdentifier},
		{"letters", "10x97", domain.MsgInvalidIdentifier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			cmd, err := f.ctrl.SubmitIdentifier(tt.input)

			assert.Nil(t, cmd)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Equal(t, tt.message, f.ctrl.Session().StatusMessage)
			assert.Equal(t, domain.MessageWarning, f.ctrl.StatusClass())
			assert.Equal(t, domain.StateSearch, f.ctrl.State())
		})
	}
}

func TestSubmitIdentifier_TrimsInput(t *testing.T) {
	f := newFixture(t)
	f.verifier.EXPECT().Verify(mock.Anything, testID).
		Return(domain.VerifyResult{Success: true, Exists: true, User: anaProfile()}, nil).Once()

	f.driver.Send(SubmitIdentifierMsg{ID: "  " + testID + " "})

	assert.Equal(t, domain.StateCapture, f.ctrl.State())
	assert.Equal(t, testID, f.ctrl.Session().Identifier)
	assert.Equal(t, testID, f.ctrl.Session().Profile.Cedula)
}

func TestSubmitIdentifier_RejectsOverlap(t *testing.T) {
	f := newFixture(t)
	f.verifier.EXPECT().Verify(mock.Anything, testID).
		Return(domain.VerifyResult{Success: true, Exists: true, User: anaProfile()}, nil).Once()

	f.driver.Dispatch(SubmitIdentifierMsg{ID: testID})
	assert.True(t, f.ctrl.Busy())

	cmd, err := f.ctrl.SubmitIdentifier(testID)
	assert.Nil(t, cmd)
	assert.ErrorIs(t, err, domain.ErrBusy)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, domain.MsgBusy, f.ctrl.Session().StatusMessage)

	f.driver.Deliver()
	assert.Equal(t, domain.StateCapture, f.ctrl.State())
	assert.Len(t, f.camera.opened, 1)
}

func TestSubmitIdentifier_TransportFailure(t *testing.T) {
	f := newFixture(t)
	f.verifier.EXPECT().Verify(mock.Anything, testID).
		Return(domain.VerifyResult{}, &domain.BackendError{Err: domain.ErrTransport, Status: 502}).Once()

	f.driver.Send(SubmitIdentifierMsg{ID: testID})

	assert.Equal(t, domain.StateSearch, f.ctrl.State())
	assert.Equal(t, domain.MsgVerifyFailed, f.ctrl.Session().StatusMessage)
	assert.ErrorIs(t, f.ctrl.LastError(), domain.ErrTransport)
	assert.False(t, f.ctrl.Busy())
	assert.Empty(t, f.camera.opened)
}

func TestSubmitIdentifier_OnlyInSearch(t *testing.T) {
	f := newFixture(t)
	f.toCapture(t)

	_, err := f.ctrl.SubmitIdentifier(testID)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, domain.StateCapture, f.ctrl.State())
}

func TestCaptureAndGenerate_Failures(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
	}{
		{"not found", &domain.BackendError{Err: domain.ErrNotFound, Status: 404}, domain.MsgNotFound},
		{"bad request with server text", &domain.BackendError{Err: domain.ErrBadRequest, Status: 400, Message: "Imagen inválida"}, "Error: Imagen inválida"},
		{"bad request without text", &domain.BackendError{Err: domain.ErrBadRequest, Status: 400}, "Error: Datos inválidos"},
		{"transport", &domain.BackendError{Err: domain.ErrTransport, Status: 500}, domain.MsgGenerateFailed},
		{"unknown", errors.New("connection reset"), domain.MsgGenerateFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.toCapture(t)
			f.generator.EXPECT().Generate(mock.Anything, testID, mock.Anything).
				Return(domain.GenerateResult{}, tt.err).Once()

			f.driver.Dispatch(CaptureAndGenerateMsg{})
			f.driver.Advance(2 * time.Second)
			f.driver.Deliver()

			session := f.ctrl.Session()
			assert.Equal(t, domain.StateCapture, session.State)
			assert.Equal(t, tt.message, session.StatusMessage)
			assert.Equal(t, domain.MessageError, f.ctrl.StatusClass())
			assert.Zero(t, session.ProgressPercent)
			assert.False(t, f.ctrl.Busy())

			// stream kept so the user can retry right away
			assert.True(t, f.ctrl.StreamReady())
			assert.Equal(t, 1, f.camera.live())

			f.driver.Advance(time.Minute)
			assert.Zero(t, f.ctrl.Session().ProgressPercent)
			assert.Zero(t, f.clock.Pending())
		})
	}
}

func TestCaptureAndGenerate_RetryAfterFailure(t *testing.T) {
	f := newFixture(t)
	f.toCapture(t)
	f.generator.EXPECT().Generate(mock.Anything, testID, mock.Anything).
		Return(domain.GenerateResult{}, errors.New("boom")).Once()
	f.generator.EXPECT().Generate(mock.Anything, testID, mock.Anything).
		Return(domain.GenerateResult{User: domain.Profile{Name: "Ana"}, Generated: true}, nil).Once()

	f.driver.Send(CaptureAndGenerateMsg{})
	require.Equal(t, domain.StateCapture, f.ctrl.State())

	f.driver.Send(CaptureAndGenerateMsg{})
	f.driver.Advance(DefaultSettleDelay)

	assert.Equal(t, domain.StateResult, f.ctrl.State())
	assert.Len(t, f.camera.opened, 1)
}

func TestCaptureAndGenerate_RejectsOverlap(t *testing.T) {
	f := newFixture(t)
	f.toCapture(t)
	f.generator.EXPECT().Generate(mock.Anything, testID, mock.Anything).
		Return(domain.GenerateResult{User: domain.Profile{Name: "Ana"}, Generated: true}, nil).Once()

	f.driver.Dispatch(CaptureAndGenerateMsg{})

	cmd, err := f.ctrl.CaptureAndGenerate()
	assert.Nil(t, cmd)
	assert.ErrorIs(t, err, domain.ErrBusy)
	assert.Equal(t, domain.StateLoading, f.ctrl.State())
}

func TestCaptureAndGenerate_RequiresCaptureStep(t *testing.T) {
	f := newFixture(t)

	cmd, err := f.ctrl.CaptureAndGenerate()

	assert.Nil(t, cmd)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, domain.StateSearch, f.ctrl.State())
	assert.NotEmpty(t, f.ctrl.Session().StatusMessage)
}

func TestCachedProvisionalGuessWithFreshOutcome(t *testing.T) {
	f := newFixture(t, func(o *Options) {
		o.Profiles = domain.DefaultProfileSet()
		o.Profiles.Provisional = domain.ProfileCached
	})
	f.toCapture(t)
	f.generator.EXPECT().Generate(mock.Anything, testID, mock.Anything).
		Return(domain.GenerateResult{User: domain.Profile{Name: "Ana"}, Generated: true}, nil).Once()

	f.driver.Dispatch(CaptureAndGenerateMsg{})
	require.Equal(t, domain.ProfileCached, f.ctrl.animator.Current().Profile.Name)
	f.driver.Advance(5 * time.Second)

	f.driver.Deliver()
	assert.Equal(t, 100.0, f.ctrl.Session().ProgressPercent)
	assert.Equal(t, domain.MsgProgressDone, f.ctrl.Session().ProgressMessage)

	f.driver.Advance(DefaultSettleDelay)
	assert.Equal(t, domain.StateResult, f.ctrl.State())
	assert.Contains(t, f.ctrl.Session().StatusMessage, "generada")
	f.assertMonotonic(t)
}

func TestBackendSlowerThanAnimation(t *testing.T) {
	tests := []struct {
		name   string
		cached bool
	}{
		{"fresh outcome", false},
		{"cached outcome", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.toCapture(t)
			f.generator.EXPECT().Generate(mock.Anything, testID, mock.Anything).
				Return(domain.GenerateResult{User: domain.Profile{Name: "Ana"}, HasExistingPhoto: tt.cached, Generated: !tt.cached}, nil).Once()

			f.driver.Dispatch(CaptureAndGenerateMsg{})
			f.driver.Advance(90 * time.Second)
			assert.Equal(t, 100.0, f.ctrl.Session().ProgressPercent)
			assert.Equal(t, domain.StateLoading, f.ctrl.State())

			f.driver.Deliver()
			assert.Equal(t, domain.StateLoading, f.ctrl.State())

			f.driver.Advance(DefaultSettleDelay)
			assert.Equal(t, domain.StateResult, f.ctrl.State())
			f.assertMonotonic(t)
		})
	}
}

func TestGoBack(t *testing.T) {
	f := newFixture(t)
	f.toCapture(t)

	require.NoError(t, f.ctrl.GoBack())

	assert.Equal(t, domain.StateSearch, f.ctrl.State())
	assert.Empty(t, f.ctrl.Session().StatusMessage)
	assert.Nil(t, f.ctrl.Session().Profile)
	assert.Equal(t, testID, f.ctrl.Session().Identifier)
	assert.False(t, f.ctrl.StreamReady())
	assert.Zero(t, f.camera.live())
	assert.Equal(t, 1, f.camera.opened[0].closes)
}

func TestGoBack_OutsideCapture(t *testing.T) {
	f := newFixture(t)

	err := f.ctrl.GoBack()

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, domain.StateSearch, f.ctrl.State())
	assert.Equal(t, domain.MsgInvalidAction, f.ctrl.Session().StatusMessage)
}

func TestGoBack_ReleasesLateAcquisition(t *testing.T) {
	f := newFixture(t)
	f.verifier.EXPECT().Verify(mock.Anything, testID).
		Return(domain.VerifyResult{Success: true, Exists: true, User: anaProfile()}, nil).Once()

	f.driver.Dispatch(SubmitIdentifierMsg{ID: testID})
	verified := f.driver.Inbox[0]
	f.driver.Inbox = nil
	acquire := f.ctrl.Update(verified)
	acquired := acquire()

	require.NoError(t, f.ctrl.GoBack())
	f.ctrl.Update(acquired)

	assert.Equal(t, domain.StateSearch, f.ctrl.State())
	require.Len(t, f.camera.opened, 1)
	assert.Equal(t, 1, f.camera.opened[0].closes)
	assert.False(t, f.ctrl.StreamReady())
}

func TestRestart_DuringLoading(t *testing.T) {
	f := newFixture(t)
	f.toCapture(t)
	f.generator.EXPECT().Generate(mock.Anything, testID, mock.Anything).
		Return(domain.GenerateResult{User: domain.Profile{Name: "Ana"}, Generated: true}, nil).Once()

	f.driver.Dispatch(CaptureAndGenerateMsg{})
	f.driver.Advance(5 * time.Second)

	f.driver.Send(RestartMsg{})

	assert.Equal(t, domain.StateSearch, f.ctrl.State())
	assert.Equal(t, domain.NewSession(), f.ctrl.Session())
	assert.Zero(t, f.camera.live())
	assert.False(t, f.ctrl.Busy())

	// the generation result and pending timers belong to the abandoned attempt
	f.driver.Advance(2 * time.Minute)
	assert.Equal(t, domain.NewSession(), f.ctrl.Session())
	assert.Zero(t, f.clock.Pending())
}

func TestRestart_FromResult(t *testing.T) {
	f := newFixture(t)
	f.toCapture(t)
	f.generator.EXPECT().Generate(mock.Anything, testID, mock.Anything).
		Return(domain.GenerateResult{Image: "data:image/png;base64,AAAA", User: domain.Profile{Name: "Ana"}, Generated: true}, nil).Once()

	f.driver.Send(CaptureAndGenerateMsg{})
	f.driver.Advance(DefaultSettleDelay)
	require.Equal(t, domain.StateResult, f.ctrl.State())

	f.driver.Send(RestartMsg{})

	assert.Equal(t, domain.NewSession(), f.ctrl.Session())
	assert.Equal(t, 1, f.camera.opened[0].closes)
}

func TestClose_ReleasesCameraAndIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.toCapture(t)

	f.ctrl.Close()
	f.ctrl.Close()

	assert.True(t, f.ctrl.Closed())
	assert.Zero(t, f.camera.live())
	assert.Equal(t, 1, f.camera.opened[0].closes)

	_, err := f.ctrl.SubmitIdentifier(testID)
	assert.ErrorIs(t, err, ErrClosed)
	_, err = f.ctrl.CaptureAndGenerate()
	assert.ErrorIs(t, err, ErrClosed)
}

func TestClose_DuringLoadingCancelsBackendCall(t *testing.T) {
	f := newFixture(t)
	f.toCapture(t)

	var seen context.Context
	f.generator.EXPECT().Generate(mock.Anything, testID, mock.Anything).
		Run(func(ctx context.Context, id string, png []byte) { seen = ctx }).
		Return(domain.GenerateResult{}, context.Canceled).Once()

	f.driver.Dispatch(CaptureAndGenerateMsg{})
	f.ctrl.Close()
	f.driver.Deliver()

	require.NotNil(t, seen)
	assert.ErrorIs(t, seen.Err(), context.Canceled)
	assert.Zero(t, f.camera.live())
	f.driver.Advance(time.Minute)
	assert.Zero(t, f.clock.Pending())
}

func TestRecorderReceivesAttempts(t *testing.T) {
	recorder := portsmocks.NewMockAttemptRecorder(t)
	recorder.EXPECT().Record(mock.Anything, mock.MatchedBy(func(a domain.Attempt) bool {
		return a.Kind == domain.AttemptVerify && a.Outcome == domain.OutcomeVerified && a.Identifier == testID
	})).Once()
	recorder.EXPECT().Record(mock.Anything, mock.MatchedBy(func(a domain.Attempt) bool {
		return a.Kind == domain.AttemptGenerate && a.Outcome == domain.OutcomeCached && a.ErrorKind == domain.KindNone
	})).Once()

	f := newFixture(t, func(o *Options) { o.Recorder = recorder })
	f.toCapture(t)
	f.generator.EXPECT().Generate(mock.Anything, testID, mock.Anything).
		Return(domain.GenerateResult{User: domain.Profile{Name: "Ana"}, HasExistingPhoto: true}, nil).Once()

	f.driver.Send(CaptureAndGenerateMsg{})
	f.driver.Advance(20 * time.Second)

	assert.Equal(t, domain.StateResult, f.ctrl.State())
}
