package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"toga/internal/domain"
)

// KeyBindingValue supports "s" or ["enter", " "] in JSON
type KeyBindingValue []string

// UnmarshalJSON implements custom unmarshaling for KeyBindingValue
func (kv *KeyBindingValue) UnmarshalJSON(data []byte) error {
	// Try array format first
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*kv = arr
		return nil
	}

	// Fall back to single string
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	if str != "" {
		*kv = []string{str}
	}
	return nil
}

// MarshalJSON implements custom marshaling for KeyBindingValue
func (kv KeyBindingValue) MarshalJSON() ([]byte, error) {
	if len(kv) == 1 {
		return json.Marshal(kv[0])
	}
	return json.Marshal([]string(kv))
}

// KeyBindingsConfig holds custom key binding overrides as a map.
// Keys are binding names (e.g., "capture", "help"), values are the key sequences.
type KeyBindingsConfig map[string]KeyBindingValue

// Validate checks for configuration errors in key bindings.
// The validNames parameter should come from ui.GetValidKeyNames().
// Bindings never shown on the same screen may share keys, so only
// unknown names and empty values are rejected.
func (k KeyBindingsConfig) Validate(validNames []string) error {
	if k == nil {
		return nil
	}

	validSet := make(map[string]bool, len(validNames))
	for _, name := range validNames {
		validSet[name] = true
	}

	for name, keys := range k {
		if !validSet[name] {
			return fmt.Errorf("unknown key binding '%s'", name)
		}
		seen := make(map[string]bool, len(keys))
		for _, key := range keys {
			if key == "" {
				return fmt.Errorf("key binding for '%s' contains empty value", name)
			}
			if seen[key] {
				return fmt.Errorf("key '%s' is listed twice for '%s'", key, name)
			}
			seen[key] = true
		}
	}

	return nil
}

// Map converts the overrides to the plain form used by the ui package
func (k KeyBindingsConfig) Map() map[string][]string {
	if k == nil {
		return nil
	}
	out := make(map[string][]string, len(k))
	for name, keys := range k {
		out[name] = []string(keys)
	}
	return out
}

// Settings represents the structure of ~/.toga/settings.json
type Settings struct {
	AllowAnyKey           *bool             `json:"allow_any_key,omitempty"`
	APIURL                string            `json:"api_url,omitempty"`
	AuthorizedKeys        string            `json:"authorized_keys,omitempty"`
	CachedDurationSeconds *int              `json:"cached_duration_seconds,omitempty"`
	CameraDevice          string            `json:"camera_device,omitempty"`
	CameraHeight          *int              `json:"camera_height,omitempty"`
	CameraStill           string            `json:"camera_still,omitempty"`
	CameraWidth           *int              `json:"camera_width,omitempty"`
	Debug                 *bool             `json:"debug,omitempty"`
	DownloadsDir          string            `json:"downloads_dir,omitempty"`
	FreshDurationSeconds  *int              `json:"fresh_duration_seconds,omitempty"`
	Keys                  KeyBindingsConfig `json:"keys,omitempty"`
	MaxLogFiles           *int              `json:"max_log_files,omitempty"`
	MetricsAddress        string            `json:"metrics_address,omitempty"`
	ProvisionalProfile    string            `json:"provisional_profile,omitempty"`
	SettleDelayMs         *int              `json:"settle_delay_ms,omitempty"`
	SSHHost               string            `json:"ssh_host,omitempty"`
	SSHPort               *int              `json:"ssh_port,omitempty"`
}

// Validate rejects values no component could work with
func (s *Settings) Validate() error {
	if s.ProvisionalProfile != "" {
		if _, err := domain.ParseProfileName(s.ProvisionalProfile); err != nil {
			return err
		}
	}
	for name, v := range map[string]*int{
		"cached_duration_seconds": s.CachedDurationSeconds,
		"fresh_duration_seconds":  s.FreshDurationSeconds,
	} {
		if v != nil && *v <= 0 {
			return fmt.Errorf("%s must be positive: %w", name, domain.ErrValidation)
		}
	}
	for name, v := range map[string]*int{
		"camera_height":   s.CameraHeight,
		"camera_width":    s.CameraWidth,
		"max_log_files":   s.MaxLogFiles,
		"settle_delay_ms": s.SettleDelayMs,
	} {
		if v != nil && *v < 0 {
			return fmt.Errorf("%s must not be negative: %w", name, domain.ErrValidation)
		}
	}
	if s.SSHPort != nil && (*s.SSHPort <= 0 || *s.SSHPort > 65535) {
		return fmt.Errorf("ssh_port %d out of range: %w", *s.SSHPort, domain.ErrValidation)
	}
	return nil
}

// LoadSettings loads settings from $TOGA_HOME/settings.json (or ~/.toga/settings.json if not set)
// Returns empty Settings if file doesn't exist (not an error)
func LoadSettings() (*Settings, error) {
	return LoadSettingsFrom(GetSettingsPath())
}

// LoadSettingsFrom loads settings from an explicit path
func LoadSettingsFrom(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil // Not an error, use defaults
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}

	// Expand paths that may start with ~
	settings.AuthorizedKeys = expandOptional(settings.AuthorizedKeys)
	settings.CameraStill = expandOptional(settings.CameraStill)
	settings.DownloadsDir = expandOptional(settings.DownloadsDir)

	return &settings, nil
}

func expandOptional(path string) string {
	if path == "" {
		return ""
	}
	return ExpandPath(path)
}

// SaveSettings saves settings to $TOGA_HOME/settings.json
func SaveSettings(settings *Settings) error {
	return SaveSettingsTo(GetSettingsPath(), settings)
}

// SaveSettingsTo saves settings to an explicit path, creating its directory
func SaveSettingsTo(path string, settings *Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}

// EnvFiles are loaded by LoadEnv, most specific first
var EnvFiles = []string{".env.local", ".env"}

// LoadEnv loads the given dotenv files (EnvFiles when none are given).
// Missing files are skipped and variables already set in the process
// environment are never overridden, so earlier files win.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = EnvFiles
	}
	for _, file := range files {
		if _, err := os.Stat(file); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	return nil
}
