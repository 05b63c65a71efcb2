package types

import (
	"errors"
	"strings"
)

// Config holds the resolved settings of a biobank session.
type Config struct {
	DataDir  string   `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir"`
	LogLevel string   `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
	S3       S3Config `json:"s3" yaml:"s3" mapstructure:"s3"`
}

// S3Config configures s3:// save and load locations. Credentials come from
// the default AWS chain unless both keys are set.
type S3Config struct {
	Region          string `json:"region" yaml:"region" mapstructure:"region"`
	Endpoint        string `json:"endpoint,omitempty" yaml:"endpoint,omitempty" mapstructure:"endpoint"`
	PathStyle       bool   `json:"path_style" yaml:"path_style" mapstructure:"path_style"`
	AccessKeyID     string `json:"-" yaml:"-" mapstructure:"access_key_id"`
	SecretAccessKey string `json:"-" yaml:"-" mapstructure:"secret_access_key"`
}

// Config validation errors.
var (
	ErrDataDirEmpty      = errors.New("data directory must not be empty")
	ErrLogLevelUnknown   = errors.New("unknown log level")
	ErrS3CredentialsPair = errors.New("s3 access key id and secret must be set together")
)

// knownLogLevels lists the levels Validate accepts. Empty selects the
// default level.
var knownLogLevels = map[string]bool{
	"":      true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return ErrDataDirEmpty
	}
	if !knownLogLevels[strings.ToLower(strings.TrimSpace(c.LogLevel))] {
		return ErrLogLevelUnknown
	}
	if (c.S3.AccessKeyID == "") != (c.S3.SecretAccessKey == "") {
		return ErrS3CredentialsPair
	}
	return nil
}
