package paths

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNoHome = errors.New("no home")

// stubPlatform points the home and user config lookups at fixed values for
// the duration of the test.
func stubPlatform(t *testing.T, home, userConfig string, err error) {
	t.Helper()
	saved := platformDir
	t.Cleanup(func() { platformDir = saved })
	platformDir.homeDir = func() (string, error) { return home, err }
	platformDir.userConfigDir = func() (string, error) { return userConfig, err }
}

func TestUnderHome(t *testing.T) {
	stubPlatform(t, "/home/ann", "/home/ann/.config", nil)

	tests := []struct {
		name     string
		envValue string
		fallback []string
		want     string
	}{
		{"env wins", "/srv/xdg", []string{".config"}, "/srv/xdg/biobank"},
		{"single fallback part", "", []string{".config"}, "/home/ann/.config/biobank"},
		{"nested fallback parts", "", []string{".local", "share"}, "/home/ann/.local/share/biobank"},
		{"no fallback parts", "", nil, "/home/ann/biobank"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BIOBANK_TEST_ROOT", tt.envValue)
			got, err := underHome("BIOBANK_TEST_ROOT", tt.fallback...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUnderHomeError(t *testing.T) {
	stubPlatform(t, "", "", errNoHome)
	t.Setenv("BIOBANK_TEST_ROOT", "")

	_, err := underHome("BIOBANK_TEST_ROOT", ".config")
	assert.ErrorIs(t, err, errNoHome)

	t.Setenv("BIOBANK_TEST_ROOT", "/srv/xdg")
	got, err := underHome("BIOBANK_TEST_ROOT", ".config")
	require.NoError(t, err, "env value does not need a home directory")
	assert.Equal(t, "/srv/xdg/biobank", got)
}

func TestUnderUserConfig(t *testing.T) {
	stubPlatform(t, "/Users/ann", "/Users/ann/Library/Application Support", nil)
	got, err := underUserConfig()
	require.NoError(t, err)
	assert.Equal(t, "/Users/ann/Library/Application Support/biobank", got)

	stubPlatform(t, "", "", errNoHome)
	_, err = underUserConfig()
	assert.ErrorIs(t, err, errNoHome)
}

func TestDefaultDirsLinux(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("linux layout")
	}
	stubPlatform(t, "/home/ann", "/unused", nil)

	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_DATA_HOME", "")
	cfg, err := DefaultConfigDir()
	require.NoError(t, err)
	assert.Equal(t, "/home/ann/.config/biobank", cfg)
	data, err := DefaultDataDir()
	require.NoError(t, err)
	assert.Equal(t, "/home/ann/.local/share/biobank", data)

	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	t.Setenv("XDG_DATA_HOME", "/xdg/data")
	cfg, err = DefaultConfigDir()
	require.NoError(t, err)
	assert.Equal(t, "/xdg/config/biobank", cfg)
	data, err = DefaultDataDir()
	require.NoError(t, err)
	assert.Equal(t, "/xdg/data/biobank", data)
}

func TestResolveConfigDir(t *testing.T) {
	stubPlatform(t, "/home/ann", "/home/ann/.config", nil)
	t.Setenv("XDG_CONFIG_HOME", "")
	cwd, err := os.Getwd()
	require.NoError(t, err)

	tests := []struct {
		name     string
		flag     string
		envValue string
		want     string
	}{
		{"flag over env", "/from/flag", "/from/env", "/from/flag"},
		{"env when no flag", "", "/from/env", "/from/env"},
		{"relative flag made absolute", "conf", "", filepath.Join(cwd, "conf")},
		{"relative env made absolute", "", "conf", filepath.Join(cwd, "conf")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvConfigDir, tt.envValue)
			got, err := ResolveConfigDir(tt.flag)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("platform default when nothing is set", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "")
		want, err := DefaultConfigDir()
		require.NoError(t, err)
		got, err := ResolveConfigDir("")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestResolveDataDir(t *testing.T) {
	cwd := t.TempDir()
	t.Chdir(cwd)
	// Getwd may resolve symlinks in the temp path.
	wd, err := os.Getwd()
	require.NoError(t, err)

	tests := []struct {
		name        string
		flag        string
		configValue string
		envValue    string
		want        string
	}{
		{"flag first", "/from/flag", "/from/config", "/from/env", "/from/flag"},
		{"config before env", "", "/from/config", "/from/env", "/from/config"},
		{"env last", "", "", "/from/env", "/from/env"},
		{"working directory fallback", "", "", "", filepath.Join(wd, DefaultDataDirName)},
		{"relative config made absolute", "", "tables", "", filepath.Join(wd, "tables")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvDataDir, tt.envValue)
			got, err := ResolveDataDir(tt.flag, tt.configValue)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileNames(t *testing.T) {
	assert.Equal(t, filepath.Join("/etc/biobank", "config.yaml"), ConfigFile("/etc/biobank"))
	assert.Equal(t, "config.yaml", filepath.Base(ConfigFile("")))
	assert.Equal(t, "biobank.db", MirrorFileName)
	assert.Equal(t, ".biobank-db", DefaultDataDirName)
}
