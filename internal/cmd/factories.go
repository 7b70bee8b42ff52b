package cmd

import (
	"context"
	"time"

	"toga/internal/adapters/api"
	adaptercamera "toga/internal/adapters/camera"
	adapterstorage "toga/internal/adapters/storage"
	"toga/internal/camera"
	"toga/internal/domain"
	"toga/internal/logging"
	"toga/internal/metrics"
	"toga/internal/ports"
	"toga/internal/services"
	"toga/internal/ui"
	"toga/internal/workflow"
)

// CameraOptions selects the capture source. A still image wins over the device.
type CameraOptions struct {
	Device string
	Height int
	Still  string
	Width  int
}

// ContainerOptions configures NewContainer
type ContainerOptions struct {
	APIURL       string
	Camera       CameraOptions
	DBPath       string
	DownloadsDir string
	Profiles     domain.ProfileSet
	SettleDelay  time.Duration
	UserAgent    string
}

// Container holds all dependencies for the application
type Container struct {
	// Adapters
	API *api.Client

	// Services
	ArtifactService *services.ArtifactService
	AttemptService  *services.AttemptService
	Metrics         *metrics.Metrics

	// Internal - kiosk construction and cleanup
	attemptRepo ports.AttemptRepository
	camera      CameraOptions
	profiles    domain.ProfileSet
	settleDelay time.Duration
}

// NewContainer creates a new Container with all dependencies wired
func NewContainer(opts ContainerOptions) (*Container, error) {
	attemptRepo, err := adapterstorage.NewSQLiteRepository(opts.DBPath)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	client := api.NewClient(api.Options{
		BaseURL:   opts.APIURL,
		UserAgent: opts.UserAgent,
	})

	return &Container{
		API:             client,
		ArtifactService: services.NewArtifactService(opts.DownloadsDir, nil),
		AttemptService:  services.NewAttemptService(attemptRepo, m),
		Metrics:         m,
		attemptRepo:     attemptRepo,
		camera:          opts.Camera,
		profiles:        opts.Profiles,
		settleDelay:     opts.SettleDelay,
	}, nil
}

// NewCamera returns the configured capture source
func (c *Container) NewCamera() ports.Camera {
	if c.camera.Still != "" {
		logging.Logger.Debug("Using still image camera", "path", c.camera.Still)
		return adaptercamera.NewStillCamera(c.camera.Still)
	}
	return adaptercamera.NewGStreamerCamera(adaptercamera.GStreamerOptions{
		Device: c.camera.Device,
		Height: c.camera.Height,
		Width:  c.camera.Width,
	})
}

// NewController creates a workflow controller with its own camera manager.
// Cancelling ctx cancels every in-flight backend call of the controller.
func (c *Container) NewController(ctx context.Context) *workflow.Controller {
	return workflow.NewController(c.API, c.API, camera.NewManager(c.NewCamera()), workflow.Options{
		Context:     ctx,
		Profiles:    c.profiles,
		Recorder:    c.AttemptService,
		SettleDelay: c.settleDelay,
	})
}

// NewKiosk creates the kiosk screen model around a fresh controller
func (c *Container) NewKiosk(ctx context.Context, devMode bool, keys ui.KeyBindingsConfig) *ui.Model {
	return ui.NewModel(ui.Config{
		Artifacts:  c.ArtifactService,
		Controller: c.NewController(ctx),
		DevMode:    devMode,
		Keys:       keys,
	})
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.attemptRepo != nil {
		return c.attemptRepo.Close()
	}
	return nil
}
