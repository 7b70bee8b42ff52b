package camera

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"toga/internal/domain"
	"toga/internal/ports"
	portsmocks "toga/internal/ports/mocks"
)

func testFrame(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})
	return img
}

func TestAcquire_OpensOnceAndReusesHandle(t *testing.T) {
	cam := portsmocks.NewMockCamera(t)
	stream := portsmocks.NewMockStream(t)
	cam.EXPECT().Open(mock.Anything).Return(stream, nil).Once()

	m := NewManager(cam)

	h1, err := m.Acquire(context.Background())
	require.NoError(t, err)
	assert.NotZero(t, h1)
	assert.True(t, m.Live())

	h2, err := m.Acquire(context.Background())
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
	assert.Equal(t, h1, m.Current())
}

func TestAcquire_ClassifiedFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"permission denied", domain.ErrPermissionDenied},
		{"device unavailable", domain.ErrDeviceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := portsmocks.NewMockCamera(t)
			cam.EXPECT().Open(mock.Anything).Return(nil, tt.err)

			m := NewManager(cam)
			h, err := m.Acquire(context.Background())

			assert.ErrorIs(t, err, tt.err)
			assert.Zero(t, h)
			assert.False(t, m.Live())
		})
	}
}

func TestRelease_IsIdempotent(t *testing.T) {
	cam := portsmocks.NewMockCamera(t)
	stream := portsmocks.NewMockStream(t)
	cam.EXPECT().Open(mock.Anything).Return(stream, nil)
	stream.EXPECT().Close().Return(nil).Once()

	m := NewManager(cam)
	h, err := m.Acquire(context.Background())
	require.NoError(t, err)

	assert.NoError(t, m.Release(h))
	assert.NoError(t, m.Release(h))
	assert.False(t, m.Live())
}

func TestRelease_NeverAcquired(t *testing.T) {
	m := NewManager(portsmocks.NewMockCamera(t))

	assert.NoError(t, m.Release(0))
	assert.NoError(t, m.Release(42))
	assert.False(t, m.Live())
}

func TestRelease_StaleHandleKeepsNewStream(t *testing.T) {
	cam := portsmocks.NewMockCamera(t)
	first := portsmocks.NewMockStream(t)
	second := portsmocks.NewMockStream(t)
	cam.EXPECT().Open(mock.Anything).Return(first, nil).Once()
	cam.EXPECT().Open(mock.Anything).Return(second, nil).Once()
	first.EXPECT().Close().Return(nil).Once()

	m := NewManager(cam)
	h1, err := m.Acquire(context.Background())
	require.NoError(t, err)
	require.NoError(t, m.Release(h1))

	h2, err := m.Acquire(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)

	assert.NoError(t, m.Release(h1))
	assert.True(t, m.Live())
}

func TestRelease_ReportsCloseError(t *testing.T) {
	cam := portsmocks.NewMockCamera(t)
	stream := portsmocks.NewMockStream(t)
	cam.EXPECT().Open(mock.Anything).Return(stream, nil)
	stream.EXPECT().Close().Return(errors.New("device busy")).Once()

	m := NewManager(cam)
	h, err := m.Acquire(context.Background())
	require.NoError(t, err)

	assert.Error(t, m.Release(h))
	assert.False(t, m.Live())
	assert.NoError(t, m.Release(h))
}

func TestCaptureFrame_EncodesPNGAtNativeSize(t *testing.T) {
	cam := portsmocks.NewMockCamera(t)
	stream := portsmocks.NewMockStream(t)
	cam.EXPECT().Open(mock.Anything).Return(stream, nil)
	stream.EXPECT().Frame().Return(testFrame(64, 48), nil)

	m := NewManager(cam)
	h, err := m.Acquire(context.Background())
	require.NoError(t, err)

	data, err := m.CaptureFrame(h)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 48, img.Bounds().Dy())
}

func TestCaptureFrame_NotReady(t *testing.T) {
	m := NewManager(portsmocks.NewMockCamera(t))

	_, err := m.CaptureFrame(0)
	assert.ErrorIs(t, err, ErrStreamNotReady)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = m.CaptureFrame(7)
	assert.ErrorIs(t, err, ErrStreamNotReady)
}

func TestCaptureFrame_NoFrameYet(t *testing.T) {
	cam := portsmocks.NewMockCamera(t)
	stream := portsmocks.NewMockStream(t)
	cam.EXPECT().Open(mock.Anything).Return(stream, nil)
	stream.EXPECT().Frame().Return(nil, errors.New("no frame yet"))

	m := NewManager(cam)
	h, err := m.Acquire(context.Background())
	require.NoError(t, err)

	_, err = m.CaptureFrame(h)
	assert.ErrorIs(t, err, ErrStreamNotReady)
}

func TestStop_CancelsPendingAcquisition(t *testing.T) {
	cam := portsmocks.NewMockCamera(t)
	stream := portsmocks.NewMockStream(t)
	m := NewManager(cam)

	cam.EXPECT().Open(mock.Anything).RunAndReturn(func(ctx context.Context) (ports.Stream, error) {
		// user navigated away while the device was opening
		m.Stop()
		return stream, nil
	})
	stream.EXPECT().Close().Return(nil).Once()

	h, err := m.Acquire(context.Background())
	assert.ErrorIs(t, err, ErrAcquireCancelled)
	assert.Zero(t, h)
	assert.False(t, m.Live())
}

func TestClose_ReleasesAndIsTerminal(t *testing.T) {
	cam := portsmocks.NewMockCamera(t)
	stream := portsmocks.NewMockStream(t)
	cam.EXPECT().Open(mock.Anything).Return(stream, nil).Once()
	stream.EXPECT().Close().Return(nil).Once()

	m := NewManager(cam)
	_, err := m.Acquire(context.Background())
	require.NoError(t, err)

	m.Close()
	m.Close()
	assert.False(t, m.Live())

	_, err = m.Acquire(context.Background())
	assert.ErrorIs(t, err, ErrManagerClosed)
}
