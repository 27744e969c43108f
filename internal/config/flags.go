package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/contactbook/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-driver string  database driver: sqlite | postgres
//	-d string       database DSN
//	-i int          liveness probe interval, seconds
//	-t int          liveness probe timeout, seconds
//	-s int          salt size, bytes
//	-l string       log level
//	-u string       S3 root user
//	-p string       S3 root password
//	-b string       S3 bucket name
//	-g string       S3 region
//	-e string       S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//
// Args are filtered with flagx.FilterArgs first so -c and -env-file, owned by
// other layers, do not break parsing. -i and -t replace the configured
// durations only when given. Parse errors panic.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-driver", "-d", "-i", "-t", "-s", "-l", "-u", "-p", "-b", "-g", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.DatabaseDriver, "driver", config.DatabaseDriver, "database driver (sqlite|postgres)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")

	livenessInterval := fs.Int("i", int(config.LivenessInterval.Seconds()), "liveness probe interval (in seconds)")
	livenessTimeout := fs.Int("t", int(config.LivenessTimeout.Seconds()), "liveness probe timeout (in seconds)")

	fs.IntVar(&config.SaltSize, "s", config.SaltSize, "salt size (in bytes)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// durations from env or JSON may be sub-second; keep them unless the
	// whole-second flags were given
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "i":
			config.LivenessInterval = time.Duration(*livenessInterval) * time.Second
		case "t":
			config.LivenessTimeout = time.Duration(*livenessTimeout) * time.Second
		}
	})
}
