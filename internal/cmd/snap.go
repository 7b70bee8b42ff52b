package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"toga/internal/camera"
	"toga/internal/logging"
)

// SnapCmd captures one frame, useful to check the camera before an event
type SnapCmd struct {
	Out     string        `help:"Output PNG file" default:"snap.png" type:"path"`
	Timeout time.Duration `help:"How long to wait for the first frame" default:"5s"`
}

// Run executes the snap command
func (s *SnapCmd) Run(cli *CLI) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.Timeout)
	defer cancel()

	m := camera.NewManager(cli.Container.NewCamera())
	defer m.Close()

	h, err := m.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to open camera: %w", err)
	}

	data, err := captureWhenReady(ctx, m, h)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.Out); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(s.Out, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	logging.Logger.Info("Snapshot written", "path", s.Out, "bytes", len(data))
	fmt.Printf("Snapshot written to %s (%d KB)\n", s.Out, len(data)/1024)
	return nil
}

// captureWhenReady polls until the stream delivered its first frame
func captureWhenReady(ctx context.Context, m *camera.Manager, h camera.Handle) ([]byte, error) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		data, err := m.CaptureFrame(h)
		if err == nil {
			return data, nil
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("no frame before timeout: %w", err)
		case <-ticker.C:
		}
	}
}
