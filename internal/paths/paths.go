// Package paths resolves where the biobank CLI keeps its configuration and
// its table files.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName is the directory name used under the platform config and data
// roots.
const AppName = "biobank"

// Working-directory data directory used when nothing else is configured.
const DefaultDataDirName = ".biobank-db"

// File names inside the resolved directories.
const (
	ConfigFileName = "config.yaml"
	MirrorFileName = "biobank.db"
)

// Environment overrides.
const (
	EnvConfigDir = "BIOBANK_CONFIG_DIR"
	EnvDataDir   = "BIOBANK_DATA_DIR"
)

// platformDir is swapped out in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// underHome returns $env/biobank when env is set, else ~/fallback.../biobank.
func underHome(env string, fallback ...string) (string, error) {
	if v := os.Getenv(env); v != "" {
		return filepath.Join(v, AppName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	parts := append([]string{home}, fallback...)
	return filepath.Join(append(parts, AppName)...), nil
}

// underUserConfig returns os.UserConfigDir()/biobank. On macOS that is
// ~/Library/Application Support, on Windows %APPDATA%.
func underUserConfig() (string, error) {
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName), nil
}

// DefaultConfigDir returns the platform configuration directory:
// $XDG_CONFIG_HOME/biobank or ~/.config/biobank on Linux, the user config
// directory elsewhere.
func DefaultConfigDir() (string, error) {
	if runtime.GOOS == "linux" {
		return underHome("XDG_CONFIG_HOME", ".config")
	}
	return underUserConfig()
}

// DefaultDataDir returns the platform data directory:
// $XDG_DATA_HOME/biobank or ~/.local/share/biobank on Linux, the user config
// directory elsewhere.
func DefaultDataDir() (string, error) {
	if runtime.GOOS == "linux" {
		return underHome("XDG_DATA_HOME", ".local", "share")
	}
	return underUserConfig()
}

// ResolveConfigDir picks the configuration directory:
// flag, then BIOBANK_CONFIG_DIR, then DefaultConfigDir. Explicit values are
// made absolute.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir picks the directory holding the five table files:
// flag, then data_dir from config.yaml, then BIOBANK_DATA_DIR, then
// .biobank-db under the working directory.
func ResolveDataDir(flag, configValue string) (string, error) {
	for _, v := range []string{flag, configValue, os.Getenv(EnvDataDir)} {
		if v != "" {
			return filepath.Abs(v)
		}
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}

// ConfigFile returns the config.yaml path inside configDir.
func ConfigFile(configDir string) string {
	return filepath.Join(configDir, ConfigFileName)
}
