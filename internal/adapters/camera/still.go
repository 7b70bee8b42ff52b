package camera

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"sync"

	"toga/internal/domain"
	"toga/internal/logging"
	"toga/internal/ports"
)

// StillCamera serves a fixed PNG or JPEG picture as a live stream. It backs
// hardware-less setups and remote kiosk sessions.
type StillCamera struct {
	path string
}

// Verify interface compliance at compile time
var _ ports.Camera = (*StillCamera)(nil)

// NewStillCamera creates a camera that streams the picture at path
func NewStillCamera(path string) *StillCamera {
	return &StillCamera{path: path}
}

// Open decodes the picture. The file is read on every Open so it can be
// replaced while the kiosk runs.
func (c *StillCamera) Open(ctx context.Context) (ports.Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(c.path)
	switch {
	case errors.Is(err, fs.ErrPermission):
		return nil, fmt.Errorf("still image %s: %w", c.path, domain.ErrPermissionDenied)
	case err != nil:
		return nil, fmt.Errorf("still image %s: %w: %w", c.path, domain.ErrDeviceUnavailable, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w: %w", c.path, domain.ErrDeviceUnavailable, err)
	}

	logging.Logger.Info("Still camera opened", "path", c.path, "format", format,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())

	return &stillStream{img: toRGBA(img)}, nil
}

type stillStream struct {
	closed bool
	img    *image.RGBA
	mu     sync.Mutex
}

func (s *stillStream) Frame() (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrNoFrame
	}
	out := image.NewRGBA(s.img.Rect)
	copy(out.Pix, s.img.Pix)
	return out, nil
}

func (s *stillStream) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
