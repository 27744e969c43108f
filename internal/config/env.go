package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/contactbook/internal/flagx"
	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvDatabaseDriver   = "CONTACTBOOK_DB_DRIVER"
	EnvDatabaseDSN      = "CONTACTBOOK_DB_DSN"
	EnvLivenessInterval = "CONTACTBOOK_LIVENESS_INTERVAL"
	EnvLivenessTimeout  = "CONTACTBOOK_LIVENESS_TIMEOUT"
	EnvSaltSize         = "CONTACTBOOK_SALT_SIZE"
	EnvLogLevel         = "CONTACTBOOK_LOG_LEVEL"
	EnvS3RootUser       = "CONTACTBOOK_S3_USER"
	EnvS3RootPassword   = "CONTACTBOOK_S3_PASSWORD"
	EnvS3Bucket         = "CONTACTBOOK_S3_BUCKET"
	EnvS3Region         = "CONTACTBOOK_S3_REGION"
	EnvS3BaseEndpoint   = "CONTACTBOOK_S3_ENDPOINT"
)

const defaultEnvFile = ".env"

// parseEnv loads the dotenv file (if any) into the process environment and
// overlays cfg with the CONTACTBOOK_* variables that are set. Variables
// already present in the environment win over the file. Malformed numbers
// or durations panic, like malformed flags do.
func parseEnv(cfg *Config) {
	envFile := flagx.EnvFileFlag()
	explicit := envFile != ""
	if !explicit {
		envFile = defaultEnvFile
	}

	if err := godotenv.Load(envFile); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
	}

	stringVar(&cfg.DatabaseDriver, EnvDatabaseDriver)
	stringVar(&cfg.DatabaseDSN, EnvDatabaseDSN)
	durationVar(&cfg.LivenessInterval, EnvLivenessInterval)
	durationVar(&cfg.LivenessTimeout, EnvLivenessTimeout)
	intVar(&cfg.SaltSize, EnvSaltSize)
	stringVar(&cfg.LogLevel, EnvLogLevel)
	stringVar(&cfg.S3RootUser, EnvS3RootUser)
	stringVar(&cfg.S3RootPassword, EnvS3RootPassword)
	stringVar(&cfg.S3Bucket, EnvS3Bucket)
	stringVar(&cfg.S3Region, EnvS3Region)
	stringVar(&cfg.S3BaseEndpoint, EnvS3BaseEndpoint)
}

func stringVar(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func intVar(dst *int, key string) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		panic(err)
	}
	*dst = n
}

func durationVar(dst *time.Duration, key string) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(err)
	}
	*dst = d
}
