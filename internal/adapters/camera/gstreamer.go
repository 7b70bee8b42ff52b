package camera

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/tinyzimmer/go-gst/gst"
	"github.com/tinyzimmer/go-gst/gst/app"

	"toga/internal/domain"
	"toga/internal/logging"
	"toga/internal/ports"
)

const (
	// DefaultDevice is the v4l2 device opened when none is configured
	DefaultDevice = "/dev/video0"

	// DefaultStartTimeout bounds how long Open waits for the first frame
	DefaultStartTimeout = 5 * time.Second

	busPollInterval = 50 * time.Millisecond
)

// ErrNoFrame is returned by Frame before the device delivered anything
var ErrNoFrame = errors.New("no frame received yet")

// GStreamerOptions configures a GStreamerCamera
type GStreamerOptions struct {
	Device       string
	Height       int // optional capture size; zero lets the device pick
	StartTimeout time.Duration
	Width        int
}

// GStreamerCamera captures RGBA frames from a v4l2 device
type GStreamerCamera struct {
	opts GStreamerOptions
}

// Verify interface compliance at compile time
var _ ports.Camera = (*GStreamerCamera)(nil)

// NewGStreamerCamera creates a camera for the given device
func NewGStreamerCamera(opts GStreamerOptions) *GStreamerCamera {
	if opts.Device == "" {
		opts.Device = DefaultDevice
	}
	if opts.StartTimeout <= 0 {
		opts.StartTimeout = DefaultStartTimeout
	}
	return &GStreamerCamera{opts: opts}
}

// PipelineDescription returns the gst-launch description used for the device
func (c *GStreamerCamera) PipelineDescription() string {
	caps := "video/x-raw,format=RGBA"
	if c.opts.Width > 0 && c.opts.Height > 0 {
		caps = fmt.Sprintf("%s,width=%d,height=%d", caps, c.opts.Width, c.opts.Height)
	}
	return fmt.Sprintf("v4l2src device=%s ! videoconvert ! videoscale ! %s ! appsink name=sink max-buffers=1 drop=true sync=false",
		c.opts.Device, caps)
}

// Open starts the pipeline and waits until the first frame arrives
func (c *GStreamerCamera) Open(ctx context.Context) (ports.Stream, error) {
	if err := checkDevice(c.opts.Device); err != nil {
		return nil, err
	}

	gst.Init(nil)

	pipeline, err := gst.NewPipelineFromString(c.PipelineDescription())
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline: %w: %w", domain.ErrDeviceUnavailable, err)
	}

	elem, err := pipeline.GetElementByName("sink")
	if err != nil {
		return nil, fmt.Errorf("failed to find appsink: %w", err)
	}

	s := &gstStream{
		device:   c.opts.Device,
		first:    make(chan struct{}),
		pipeline: pipeline,
		stop:     make(chan struct{}),
	}

	sink := app.SinkFromElement(elem)
	sink.SetCallbacks(&app.SinkCallbacks{
		NewSampleFunc: func(sink *app.Sink) gst.FlowReturn {
			return s.onSample(sink)
		},
	})

	if err := pipeline.SetState(gst.StatePlaying); err != nil {
		_ = pipeline.SetState(gst.StateNull)
		return nil, fmt.Errorf("failed to start pipeline: %w: %w", domain.ErrDeviceUnavailable, err)
	}

	logging.Logger.Info("Camera pipeline started", "device", c.opts.Device)

	if err := s.awaitFirstFrame(ctx, c.opts.StartTimeout); err != nil {
		_ = s.Close()
		return nil, err
	}

	go s.watchBus()
	return s, nil
}

type gstStream struct {
	device   string
	first    chan struct{}
	pipeline *gst.Pipeline
	stop     chan struct{}

	closeOnce sync.Once
	firstOnce sync.Once

	mu     sync.Mutex
	data   []byte
	err    error
	height int
	width  int
}

// onSample keeps a copy of the newest frame; GStreamer reuses its buffers
func (s *gstStream) onSample(sink *app.Sink) gst.FlowReturn {
	sample := sink.PullSample()
	if sample == nil {
		return gst.FlowOK
	}

	buffer := sample.GetBuffer()
	if buffer == nil {
		return gst.FlowOK
	}

	width, height := sampleSize(sample)

	mapInfo := buffer.Map(gst.MapRead)
	data := mapInfo.Bytes()
	if len(data) == 0 {
		buffer.Unmap()
		return gst.FlowOK
	}
	frame := make([]byte, len(data))
	copy(frame, data)
	buffer.Unmap()

	s.mu.Lock()
	s.data = frame
	s.width = width
	s.height = height
	s.mu.Unlock()

	s.firstOnce.Do(func() { close(s.first) })
	return gst.FlowOK
}

func sampleSize(sample *gst.Sample) (int, int) {
	caps := sample.GetCaps()
	if caps == nil {
		return 0, 0
	}
	structure := caps.GetStructureAt(0)
	if structure == nil {
		return 0, 0
	}
	w, err := structure.GetValue("width")
	if err != nil {
		return 0, 0
	}
	h, err := structure.GetValue("height")
	if err != nil {
		return 0, 0
	}
	width, _ := w.(int)
	height, _ := h.(int)
	return width, height
}

// awaitFirstFrame waits for a frame while watching the bus for device errors
func (s *gstStream) awaitFirstFrame(ctx context.Context, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	bus := s.pipeline.GetPipelineBus()

	for {
		select {
		case <-s.first:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if time.Now().After(deadline) {
			return fmt.Errorf("no frame from %s after %s: %w", s.device, timeout, domain.ErrDeviceUnavailable)
		}

		msg := bus.TimedPop(busPollInterval)
		if msg == nil || msg.Type() != gst.MessageError {
			continue
		}
		gerr := msg.ParseError()
		return classifyPipelineError(s.device, gerr.Error(), gerr.DebugString())
	}
}

// watchBus records asynchronous pipeline errors so Frame can report them
func (s *gstStream) watchBus() {
	bus := s.pipeline.GetPipelineBus()
	for {
		select {
		case <-s.stop:
			return
		default:
		}

		msg := bus.TimedPop(busPollInterval)
		if msg == nil {
			continue
		}
		switch msg.Type() {
		case gst.MessageError:
			gerr := msg.ParseError()
			err := classifyPipelineError(s.device, gerr.Error(), gerr.DebugString())
			logging.Logger.Error("Camera pipeline error", "device", s.device, "error", err)
			s.mu.Lock()
			s.err = err
			s.mu.Unlock()
			return
		case gst.MessageEOS:
			s.mu.Lock()
			s.err = fmt.Errorf("camera %s stopped streaming: %w", s.device, domain.ErrDeviceUnavailable)
			s.mu.Unlock()
			return
		}
	}
}

func (s *gstStream) Frame() (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}
	if len(s.data) == 0 {
		return nil, ErrNoFrame
	}
	return rgbaImage(s.data, s.width, s.height)
}

func (s *gstStream) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.stop)
		if stateErr := s.pipeline.SetState(gst.StateNull); stateErr != nil {
			err = fmt.Errorf("failed to stop pipeline: %w", stateErr)
		}
		logging.Logger.Info("Camera pipeline stopped", "device", s.device)
	})
	return err
}

// rgbaImage copies packed RGBA pixels into an image
func rgbaImage(data []byte, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("unknown frame size: %w", ErrNoFrame)
	}
	stride := width * 4
	if len(data) < stride*height {
		return nil, fmt.Errorf("frame has %d bytes, want %d", len(data), stride*height)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, data[:stride*height])
	return img, nil
}
