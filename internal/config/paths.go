package config

import (
	"os"
	"path/filepath"
)

// GetTogaHome returns TOGA_HOME or the ~/.toga default
func GetTogaHome() string {
	togaHome := os.Getenv("TOGA_HOME")
	if togaHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".toga"
		}
		return filepath.Join(homeDir, ".toga")
	}
	return ExpandPath(togaHome)
}

// GetDBPath returns $TOGA_HOME/toga.db
func GetDBPath() string {
	return filepath.Join(GetTogaHome(), "toga.db")
}

// GetSettingsPath returns $TOGA_HOME/settings.json
func GetSettingsPath() string {
	return filepath.Join(GetTogaHome(), "settings.json")
}

// GetAuthorizedKeysPath returns ~/.ssh/authorized_keys, the keys the kiosk
// server accepts unless configured otherwise
func GetAuthorizedKeysPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".ssh", "authorized_keys")
	}
	return filepath.Join(homeDir, ".ssh", "authorized_keys")
}

// GetHostKeyPath returns the SSH host key used by the kiosk server
func GetHostKeyPath() string {
	return filepath.Join(GetTogaHome(), "ssh", "toga_ed25519")
}

// GetDownloadsDir returns where saved photos go when nothing is configured:
// ~/Downloads if it exists, $TOGA_HOME/photos otherwise
func GetDownloadsDir() string {
	if homeDir, err := os.UserHomeDir(); err == nil {
		downloads := filepath.Join(homeDir, "Downloads")
		if info, err := os.Stat(downloads); err == nil && info.IsDir() {
			return downloads
		}
	}
	return filepath.Join(GetTogaHome(), "photos")
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			if len(path) == 1 {
				return homeDir
			}
			return filepath.Join(homeDir, path[1:])
		}
	}
	return path
}
