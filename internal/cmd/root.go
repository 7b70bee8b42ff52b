package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"toga/internal/adapters/api"
	"toga/internal/config"
	"toga/internal/logging"
	"toga/internal/ui"
)

// Flag defaults, also used to detect whether a flag was left untouched
const (
	defaultCachedSeconds = 15
	defaultFreshSeconds  = 85
	defaultSettleDelayMs = 2000
	defaultUserAgent     = "toga-kiosk"
)

// CLI represents the command-line interface structure
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"200"`

	APIURL             string `name:"api-url" help:"Base URL of the graduation photo backend" env:"TOGA_API_URL" default:"http://localhost:5000"`
	CachedDuration     int    `help:"Seconds the progress bar takes for an existing photo" env:"TOGA_CACHED_DURATION" default:"15"`
	CameraDevice       string `help:"Video device used for capture" env:"TOGA_CAMERA_DEVICE" default:"/dev/video0"`
	CameraHeight       int    `help:"Requested capture height (0 lets the device pick)" env:"TOGA_CAMERA_HEIGHT" default:"0"`
	CameraStill        string `help:"Serve frames from an image file instead of a device" env:"TOGA_CAMERA_STILL" type:"path"`
	CameraWidth        int    `help:"Requested capture width (0 lets the device pick)" env:"TOGA_CAMERA_WIDTH" default:"0"`
	DownloadsDir       string `help:"Directory where saved photos are written" env:"TOGA_DOWNLOADS_DIR" type:"path"`
	FreshDuration      int    `help:"Seconds the progress bar takes for a new photo" env:"TOGA_FRESH_DURATION" default:"85"`
	ProvisionalProfile string `help:"Progress profile shown before the backend answers" env:"TOGA_PROVISIONAL_PROFILE" enum:"fresh,cached" default:"fresh"`
	SettleDelay        int    `help:"Milliseconds the finished progress bar stays on screen" env:"TOGA_SETTLE_DELAY_MS" default:"2000"`

	Run      RunCmd      `cmd:"" help:"Start the kiosk in this terminal (default)" default:"1"`
	Serve    ServeCmd    `cmd:"serve" help:"Serve the kiosk over SSH with health and metrics endpoints"`
	Verify   VerifyCmd   `cmd:"verify" help:"Check an identifier against the backend"`
	Snap     SnapCmd     `cmd:"snap" help:"Capture a single frame from the camera"`
	History  HistoryCmd  `cmd:"history" help:"Show the journal of backend attempts"`
	Settings SettingsCmd `cmd:"settings" help:"Manage settings (show, meta, keys)"`

	// Internal fields (not flags)
	Container *Container       `kong:"-"`
	settings  *config.Settings `kong:"-"`
}

// SetSettings sets the settings on the CLI struct
func (c *CLI) SetSettings(settings *config.Settings) {
	c.settings = settings
}

// AfterApply initializes logging after CLI parsing and applies settings
func (c *CLI) AfterApply() error {
	// Apply settings with proper precedence: CLI flags > env vars > settings.json > defaults
	// Only apply if flag is at default value and env var is not set
	if c.settings != nil {
		c.applySettings(c.settings)
	}

	// Initialize logging first and get the log file path
	logFilePath, err := logging.Initialize(logging.Options{
		Debug:       c.Debug,
		DebugFile:   c.DebugFile,
		MaxLogFiles: c.MaxLogFiles,
	})
	if err != nil {
		return err
	}

	// Share the debug setup with the per-connection programs of serve
	if c.Debug || c.DebugFile != "" {
		os.Setenv("TOGA_DEBUG", "1")
		if logFilePath != "" {
			os.Setenv("TOGA_DEBUG_FILE", logFilePath)
		}
	}
	if c.MaxLogFiles != logging.DefaultMaxLogFiles {
		os.Setenv("TOGA_MAX_LOG_FILES", fmt.Sprintf("%d", c.MaxLogFiles))
	}

	profiles, err := config.BuildProfileSet(
		time.Duration(c.FreshDuration)*time.Second,
		time.Duration(c.CachedDuration)*time.Second,
		c.ProvisionalProfile,
	)
	if err != nil {
		return fmt.Errorf("invalid progress settings: %w", err)
	}

	downloads := c.DownloadsDir
	if downloads == "" {
		downloads = config.GetDownloadsDir()
	}

	// Create container AFTER logging is initialized so GORM logs through it
	container, err := NewContainer(ContainerOptions{
		APIURL: c.APIURL,
		Camera: CameraOptions{
			Device: c.CameraDevice,
			Height: c.CameraHeight,
			Still:  c.CameraStill,
			Width:  c.CameraWidth,
		},
		DBPath:       config.GetDBPath(),
		DownloadsDir: downloads,
		Profiles:     profiles,
		SettleDelay:  time.Duration(c.SettleDelay) * time.Millisecond,
		UserAgent:    defaultUserAgent,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	c.Container = container

	logging.Logger.Debug("CLI initialized",
		"api_url", c.APIURL,
		"camera_device", c.CameraDevice,
		"camera_still", c.CameraStill,
		"provisional_profile", profiles.Provisional)

	return nil
}

// applySettings fills every flag left at its default, and not set through
// the environment, from settings.json
func (c *CLI) applySettings(s *config.Settings) {
	if c.MaxLogFiles == logging.DefaultMaxLogFiles && !hasEnv("TOGA_MAX_LOG_FILES") && s.MaxLogFiles != nil {
		c.MaxLogFiles = *s.MaxLogFiles
	}
	if !c.Debug && !hasEnv("TOGA_DEBUG") && s.Debug != nil && *s.Debug {
		c.Debug = true
	}
	if c.APIURL == api.DefaultBaseURL && !hasEnv("TOGA_API_URL") && s.APIURL != "" {
		c.APIURL = s.APIURL
	}
	if c.CachedDuration == defaultCachedSeconds && !hasEnv("TOGA_CACHED_DURATION") && s.CachedDurationSeconds != nil {
		c.CachedDuration = *s.CachedDurationSeconds
	}
	if c.CameraDevice == "/dev/video0" && !hasEnv("TOGA_CAMERA_DEVICE") && s.CameraDevice != "" {
		c.CameraDevice = s.CameraDevice
	}
	if c.CameraHeight == 0 && !hasEnv("TOGA_CAMERA_HEIGHT") && s.CameraHeight != nil {
		c.CameraHeight = *s.CameraHeight
	}
	if c.CameraStill == "" && !hasEnv("TOGA_CAMERA_STILL") && s.CameraStill != "" {
		c.CameraStill = s.CameraStill
	}
	if c.CameraWidth == 0 && !hasEnv("TOGA_CAMERA_WIDTH") && s.CameraWidth != nil {
		c.CameraWidth = *s.CameraWidth
	}
	if c.DownloadsDir == "" && !hasEnv("TOGA_DOWNLOADS_DIR") && s.DownloadsDir != "" {
		c.DownloadsDir = s.DownloadsDir
	}
	if c.FreshDuration == defaultFreshSeconds && !hasEnv("TOGA_FRESH_DURATION") && s.FreshDurationSeconds != nil {
		c.FreshDuration = *s.FreshDurationSeconds
	}
	if c.ProvisionalProfile == "fresh" && !hasEnv("TOGA_PROVISIONAL_PROFILE") && s.ProvisionalProfile != "" {
		c.ProvisionalProfile = s.ProvisionalProfile
	}
	if c.SettleDelay == defaultSettleDelayMs && !hasEnv("TOGA_SETTLE_DELAY_MS") && s.SettleDelayMs != nil {
		c.SettleDelay = *s.SettleDelayMs
	}
}

func hasEnv(name string) bool {
	_, ok := os.LookupEnv(name)
	return ok
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	if c.Container != nil {
		return c.Container.Close()
	}
	return nil
}

// keyBindings validates and returns the custom key bindings from settings.json
func (c *CLI) keyBindings() (map[string][]string, error) {
	if c.settings == nil || c.settings.Keys == nil {
		return nil, nil
	}
	if err := c.settings.Keys.Validate(ui.GetValidKeyNames()); err != nil {
		return nil, fmt.Errorf("invalid key bindings in settings.json: %w", err)
	}
	logging.Logger.Debug("Custom key bindings loaded and validated")
	return c.settings.Keys.Map(), nil
}
