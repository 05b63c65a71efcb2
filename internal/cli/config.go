package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/biobank/internal/paths"
	"github.com/mesh-intelligence/biobank/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	cfgKeyDataDir  = "data_dir"
	cfgKeyLogLevel = "log_level"
	cfgKeyS3Region = "s3.region"

	defaultRegion = "us-east-1"
)

// envKeys are the config keys that BIOBANK_* variables may override.
// data_dir is resolved separately so config.yaml keeps precedence over
// BIOBANK_DATA_DIR.
var envKeys = map[string]string{
	cfgKeyLogLevel:         "BIOBANK_LOG_LEVEL",
	cfgKeyS3Region:         "BIOBANK_S3_REGION",
	"s3.endpoint":          "BIOBANK_S3_ENDPOINT",
	"s3.path_style":        "BIOBANK_S3_PATH_STYLE",
	"s3.access_key_id":     "BIOBANK_S3_ACCESS_KEY_ID",
	"s3.secret_access_key": "BIOBANK_S3_SECRET_ACCESS_KEY",
}

// defaultConfigYAML is written to config.yaml by init.
const defaultConfigYAML = `# biobank CLI configuration

# Directory holding the five table files (overridable by --data-dir).
# data_dir:

# debug, info, warn or error. --verbose forces debug.
log_level: warn

# Settings for s3://bucket/prefix save and load locations.
# Credentials default to the AWS environment and shared config.
s3:
  region: us-east-1
  # endpoint: http://localhost:9000
  path_style: false
`

// readConfig reads config.yaml from configDir with viper. A missing file is
// not an error.
func readConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyS3Region, defaultRegion)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	for key, env := range envKeys {
		if err := v.BindEnv(key, env); err != nil {
			return nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// loadConfig resolves the directories and settings for this run.
func (a *app) loadConfig() (types.Config, error) {
	configDir, err := paths.ResolveConfigDir(a.configDir)
	if err != nil {
		return types.Config{}, sysErr("resolve config dir: %w", err)
	}
	v, err := readConfig(configDir)
	if err != nil {
		return types.Config{}, err
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.DataDir, err = paths.ResolveDataDir(a.dataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return types.Config{}, sysErr("resolve data dir: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	a.configDir = configDir
	return cfg, nil
}

// ensureDefaultConfigFile creates config.yaml in configDir unless it exists.
// It reports whether the file was created.
func ensureDefaultConfigFile(configDir string) (bool, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return false, err
	}
	path := paths.ConfigFile(configDir)
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}
	return true, os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
