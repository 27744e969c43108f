// Package config handles configuration for contactbook.
//
// Sources, later ones overriding earlier ones:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables prefixed CONTACTBOOK_, optionally loaded from a
//     dotenv file (-env-file, default ".env").
//  3. Optional JSON file selected with -c or -config. A missing file is
//     created with the values known at that point.
//  4. Command-line flags.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/contactbook/internal/common"
)

// Config holds runtime settings.
//
// Fields:
//   - DatabaseDriver: "sqlite" or "postgres".
//   - DatabaseDSN: driver-specific data source name.
//   - LivenessInterval / LivenessTimeout: connection probe period and deadline.
//   - SaltSize: random bytes per account salt.
//   - LogLevel: debug, info, warn or error.
//   - S3RootUser / S3RootPassword / S3Bucket / S3Region / S3BaseEndpoint:
//     object storage used for contact backups; an empty bucket disables it.
type Config struct {
	DatabaseDriver   string
	DatabaseDSN      string
	LivenessInterval time.Duration
	LivenessTimeout  time.Duration
	SaltSize         int
	LogLevel         string
	S3RootUser       string
	S3RootPassword   string
	S3Bucket         string
	S3Region         string
	S3BaseEndpoint   string
}

// LoadDefaults populates Config with local development defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "file:data/contactbook.db?_pragma=foreign_keys(1)"
	c.LivenessInterval = 5 * time.Second
	c.LivenessTimeout = 3 * time.Second
	c.SaltSize = common.DefaultSaltSize
	c.LogLevel = "info"
	c.S3RootUser = ""
	c.S3RootPassword = ""
	c.S3Bucket = ""
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = ""
}

// Validate reports settings the program cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.LivenessInterval <= 0 {
		errs = append(errs, fmt.Errorf("liveness interval must be positive, got %s", c.LivenessInterval))
	}
	if c.LivenessTimeout <= 0 {
		errs = append(errs, fmt.Errorf("liveness timeout must be positive, got %s", c.LivenessTimeout))
	}
	if c.SaltSize < common.DefaultSaltSize || c.SaltSize > common.MaxSaltSize {
		errs = append(errs, fmt.Errorf("salt size must be between %d and %d bytes, got %d",
			common.DefaultSaltSize, common.MaxSaltSize, c.SaltSize))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then the environment,
// the JSON file and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

// BackupEnabled reports whether an object storage bucket is configured.
func (c *Config) BackupEnabled() bool {
	return c.S3Bucket != ""
}
