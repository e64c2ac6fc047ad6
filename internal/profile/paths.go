package profile

import (
	"os"
	"path/filepath"
)

// BaseDir returns ~/.cmdc, or $CMDC_HOME when set.
func BaseDir() string {
	if dir := os.Getenv("CMDC_HOME"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cmdc")
}

// Dir returns the profile-specific directory.
func Dir(name string) string {
	return filepath.Join(BaseDir(), "profiles", name)
}

// DBPath returns the history database path for a profile.
func DBPath(name string) string {
	return filepath.Join(Dir(name), "cmdc.db")
}

// LogDir returns the log directory for a profile.
func LogDir(name string) string {
	return filepath.Join(Dir(name), "logs")
}

// LogPath returns the palette log file path.
func LogPath(name string) string {
	return filepath.Join(LogDir(name), "cmdc.log")
}

// ConfigPath returns the global config file path.
func ConfigPath() string {
	return filepath.Join(BaseDir(), "config.toml")
}

// CatalogPath returns the default user catalog path.
func CatalogPath() string {
	return filepath.Join(BaseDir(), "items.yaml")
}

// EnsureDir creates the profile directory tree with proper permissions.
func EnsureDir(name string) error {
	for _, d := range []string{Dir(name), LogDir(name)} {
		if err := os.MkdirAll(d, 0700); err != nil {
			return err
		}
	}
	return nil
}
