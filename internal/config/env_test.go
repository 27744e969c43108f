package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseEnv_Variables(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	t.Setenv(EnvDatabaseDriver, "postgres")
	t.Setenv(EnvDatabaseDSN, "postgres://u:p@localhost:5432/contacts")
	t.Setenv(EnvLivenessInterval, "10s")
	t.Setenv(EnvLivenessTimeout, "2s")
	t.Setenv(EnvSaltSize, "16")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvS3Bucket, "backups")

	cfg := &Config{}
	cfg.LoadDefaults()
	require.NotPanics(t, func() { parseEnv(cfg) })

	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.Equal(t, "postgres://u:p@localhost:5432/contacts", cfg.DatabaseDSN)
	assert.Equal(t, 10*time.Second, cfg.LivenessInterval)
	assert.Equal(t, 2*time.Second, cfg.LivenessTimeout)
	assert.Equal(t, 16, cfg.SaltSize)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "backups", cfg.S3Bucket)
	assert.Equal(t, "us-east-1", cfg.S3Region)
}

func Test_parseEnv_DotenvFile(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("CONTACTBOOK_S3_REGION=eu-north-1\nCONTACTBOOK_LOG_LEVEL=warn\n"), 0o600))

	// process environment wins over the file
	t.Setenv(EnvLogLevel, "error")
	// registers cleanup for the value the file will set
	t.Setenv(EnvS3Region, "")
	require.NoError(t, os.Unsetenv(EnvS3Region))

	os.Args = []string{"testbin", "-env-file", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	require.NotPanics(t, func() { parseEnv(cfg) })

	assert.Equal(t, "eu-north-1", cfg.S3Region)
	assert.Equal(t, "error", cfg.LogLevel)
}

func Test_parseEnv_MissingExplicitFilePanics(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin", "-env-file", filepath.Join(t.TempDir(), "absent.env")}

	cfg := &Config{}
	require.Panics(t, func() { parseEnv(cfg) })
}

func Test_parseEnv_BadValuesPanic(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "salt size", key: EnvSaltSize, value: "four"},
		{name: "interval", key: EnvLivenessInterval, value: "5 parsecs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			cfg := &Config{}
			require.Panics(t, func() { parseEnv(cfg) })
		})
	}
}
