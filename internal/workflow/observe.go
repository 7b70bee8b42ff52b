package workflow

import (
	"toga/internal/domain"
)

// State returns the current step
func (c *Controller) State() domain.State {
	return c.session.State
}

// Session returns a copy of the session for rendering
func (c *Controller) Session() domain.Session {
	return c.session.Clone()
}

// StreamReady reports whether a photo can be taken right now
func (c *Controller) StreamReady() bool {
	return c.handle != 0 && c.camera.Current() == c.handle
}

// Acquiring reports whether the camera is still starting
func (c *Controller) Acquiring() bool {
	return c.acquiring
}

// Busy reports whether a backend call is in flight
func (c *Controller) Busy() bool {
	return c.verifying || c.generating || c.session.State == domain.StateLoading
}

// LastError returns the error of the last failed or rejected operation
func (c *Controller) LastError() error {
	return c.lastErr
}

// StatusClass classifies the current status message for presentation
func (c *Controller) StatusClass() domain.MessageClass {
	return domain.ClassifyMessage(c.session.StatusMessage)
}

// Closed reports whether Close was called
func (c *Controller) Closed() bool {
	return c.closed
}
