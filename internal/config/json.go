package config

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"github.com/dmitrijs2005/contactbook/internal/flagx"
	"github.com/dmitrijs2005/contactbook/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations use
// timex.Duration so they can be written as "5s" or integer nanoseconds.
// Empty or zero fields leave the corresponding Config value untouched.
type JsonConfig struct {
	DatabaseDriver   string         `json:"database_driver,omitempty"`
	DatabaseDSN      string         `json:"database_dsn,omitempty"`
	LivenessInterval timex.Duration `json:"liveness_interval"`
	LivenessTimeout  timex.Duration `json:"liveness_timeout"`
	SaltSize         int            `json:"salt_size,omitempty"`
	LogLevel         string         `json:"log_level,omitempty"`
	S3RootUser       string         `json:"s3_root_user,omitempty"`
	S3RootPassword   string         `json:"s3_root_password,omitempty"`
	S3Bucket         string         `json:"s3_bucket,omitempty"`
	S3Region         string         `json:"s3_region,omitempty"`
	S3BaseEndpoint   string         `json:"s3_base_endpoint,omitempty"`
}

func toJsonConfig(c *Config) *JsonConfig {
	return &JsonConfig{
		DatabaseDriver:   c.DatabaseDriver,
		DatabaseDSN:      c.DatabaseDSN,
		LivenessInterval: timex.Duration{Duration: c.LivenessInterval},
		LivenessTimeout:  timex.Duration{Duration: c.LivenessTimeout},
		SaltSize:         c.SaltSize,
		LogLevel:         c.LogLevel,
		S3RootUser:       c.S3RootUser,
		S3RootPassword:   c.S3RootPassword,
		S3Bucket:         c.S3Bucket,
		S3Region:         c.S3Region,
		S3BaseEndpoint:   c.S3BaseEndpoint,
	}
}

// parseJson overlays config with the JSON file named by -c / -config.
//
// Without the flag nothing is loaded. When the file does not exist it is
// first written from the current config values so the user gets an
// editable template. Read, write or decode failures panic.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigFileFlag()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if errors.Is(err, fs.ErrNotExist) {
		if err := writeJson(jsonConfigFile, config); err != nil {
			panic(err)
		}
		return
	}
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	applyJson(config, c)
}

func writeJson(path string, config *Config) error {
	data, err := json.MarshalIndent(toJsonConfig(config), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func applyJson(config *Config, c *JsonConfig) {
	setString(&config.DatabaseDriver, c.DatabaseDriver)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	if c.LivenessInterval.Duration > 0 {
		config.LivenessInterval = c.LivenessInterval.Duration
	}
	if c.LivenessTimeout.Duration > 0 {
		config.LivenessTimeout = c.LivenessTimeout.Duration
	}
	if c.SaltSize > 0 {
		config.SaltSize = c.SaltSize
	}
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
