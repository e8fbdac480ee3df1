// Package paths resolves the tool's per-user file locations under
// ~/.config/plexjellyfin.
package paths

import (
	"os"
	"path/filepath"
)

// AppDir returns the tool's config directory, ~/.config/plexjellyfin.
func AppDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "plexjellyfin"), nil
}

// ConfigPath returns the path of the TOML config file.
func ConfigPath() (string, error) {
	dir, err := AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// HistoryPath returns the path of the sync history database.
func HistoryPath() (string, error) {
	dir, err := AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}

// LogPath returns the default log file path.
func LogPath() (string, error) {
	dir, err := AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs", "plexjellyfin.log"), nil
}
