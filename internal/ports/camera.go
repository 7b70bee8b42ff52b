package ports

import (
	"context"
	"image"
)

// Camera opens live video streams from a capture device
type Camera interface {
	// Open starts a video-only stream. Errors wrap domain.ErrPermissionDenied
	// or domain.ErrDeviceUnavailable when the device cannot be used.
	Open(ctx context.Context) (Stream, error)
}

// Stream is a live capture stream
type Stream interface {
	// Frame returns a copy of the latest frame at the stream's native size.
	// It fails while no frame has arrived yet.
	Frame() (image.Image, error)
	// Close stops every underlying track
	Close() error
}
