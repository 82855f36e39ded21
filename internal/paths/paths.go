// Package paths resolves the store descriptor location for the CLI.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// DescriptorName is the default store descriptor file name.
const DescriptorName = "store.yaml"

// EnvConfig overrides the descriptor path.
const EnvConfig = "WAREHOUSE_CONFIG"

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration
// directory.
//
// Linux:   $XDG_CONFIG_HOME/warehouse (fallback ~/.config/warehouse)
// macOS:   ~/Library/Application Support/warehouse
// Windows: %APPDATA%/warehouse
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "warehouse"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "warehouse"), nil
	default:
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "warehouse"), nil
	}
}

// ResolveConfigPath returns the store descriptor path following the
// precedence chain: flag > WAREHOUSE_CONFIG env > default directory's
// store.yaml.
func ResolveConfigPath(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfig); env != "" {
		return filepath.Abs(env)
	}
	dir, err := DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DescriptorName), nil
}
