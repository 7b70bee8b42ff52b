package camera

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"sync"

	"toga/internal/domain"
	"toga/internal/logging"
	"toga/internal/ports"
)

var (
	ErrAcquireCancelled = errors.New("camera acquisition cancelled")
	ErrManagerClosed    = errors.New("camera manager closed")
	ErrStreamNotReady   = fmt.Errorf("camera stream not ready: %w", domain.ErrValidation)
)

// Handle identifies one acquired stream. The zero value is never issued.
type Handle uint64

// Manager owns the camera stream on behalf of a single workflow.
// At most one stream is held at a time and every acquired stream is closed exactly once.
type Manager struct {
	camera ports.Camera
	closed bool
	epoch  uint64 // bumped by Stop and Close to invalidate pending acquisitions
	handle Handle
	mu     sync.Mutex
	next   Handle
	stream ports.Stream
}

// NewManager creates a manager for the given camera
func NewManager(camera ports.Camera) *Manager {
	return &Manager{camera: camera}
}

// Acquire opens a stream, or returns the current handle if one is already held.
// An acquisition overtaken by Stop or Close closes its stream and returns ErrAcquireCancelled.
func (m *Manager) Acquire(ctx context.Context) (Handle, error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return 0, ErrManagerClosed
	}
	if m.stream != nil {
		h := m.handle
		m.mu.Unlock()
		return h, nil
	}
	epoch := m.epoch
	m.mu.Unlock()

	logging.Logger.Debug("Opening camera stream")
	stream, err := m.camera.Open(ctx)
	if err != nil {
		logging.Logger.Warn("Failed to open camera stream", "error", err)
		return 0, fmt.Errorf("failed to open camera: %w", err)
	}

	m.mu.Lock()
	switch {
	case m.closed || m.epoch != epoch:
		m.mu.Unlock()
		closeStream(stream)
		logging.Logger.Debug("Camera acquisition superseded, stream closed")
		return 0, ErrAcquireCancelled
	case m.stream != nil:
		// a concurrent acquisition won
		h := m.handle
		m.mu.Unlock()
		closeStream(stream)
		return h, nil
	}
	m.next++
	m.handle = m.next
	m.stream = stream
	h := m.handle
	m.mu.Unlock()

	logging.Logger.Info("Camera stream acquired", "handle", uint64(h))
	return h, nil
}

// CaptureFrame snapshots the latest frame of h at native resolution, PNG encoded
func (m *Manager) CaptureFrame(h Handle) ([]byte, error) {
	m.mu.Lock()
	if h == 0 || h != m.handle || m.stream == nil {
		m.mu.Unlock()
		return nil, ErrStreamNotReady
	}
	stream := m.stream
	m.mu.Unlock()

	img, err := stream.Frame()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStreamNotReady, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode frame: %w", err)
	}

	bounds := img.Bounds()
	logging.Logger.Debug("Frame captured",
		"width", bounds.Dx(),
		"height", bounds.Dy(),
		"bytes", buf.Len())

	return buf.Bytes(), nil
}

// Release stops the stream identified by h. Unknown, zero and already
// released handles are a no-op.
func (m *Manager) Release(h Handle) error {
	m.mu.Lock()
	if h == 0 || h != m.handle || m.stream == nil {
		m.mu.Unlock()
		return nil
	}
	stream := m.detachLocked()
	m.mu.Unlock()

	logging.Logger.Info("Releasing camera stream", "handle", uint64(h))
	if err := stream.Close(); err != nil {
		return fmt.Errorf("failed to stop camera stream: %w", err)
	}
	return nil
}

// Stop releases whatever is held and cancels pending acquisitions
func (m *Manager) Stop() {
	m.mu.Lock()
	m.epoch++
	stream := m.detachLocked()
	m.mu.Unlock()

	if stream != nil {
		logging.Logger.Info("Stopping camera stream")
		closeStream(stream)
	}
}

// Close stops the manager for good. It is safe to call more than once.
func (m *Manager) Close() {
	m.Stop()

	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
}

// Live reports whether a stream is currently held
func (m *Manager) Live() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stream != nil
}

// Current returns the handle of the held stream, or zero
func (m *Manager) Current() Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.handle
}

func (m *Manager) detachLocked() ports.Stream {
	stream := m.stream
	m.stream = nil
	m.handle = 0
	return stream
}

func closeStream(stream ports.Stream) {
	if err := stream.Close(); err != nil {
		logging.Logger.Warn("Failed to stop camera stream", "error", err)
	}
}
