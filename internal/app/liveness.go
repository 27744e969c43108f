package app

import (
	"context"
	"time"

	"github.com/dmitrijs2005/contactbook/internal/dbx"
	"github.com/dmitrijs2005/contactbook/internal/logging"
)

// StartLivenessMonitor probes db every interval, giving each probe timeout
// to complete. The first failed probe is logged and passed to onLost, after
// which the monitor stops. It also stops when ctx is done.
//
// A non-positive interval disables the monitor.
func StartLivenessMonitor(ctx context.Context, db dbx.DBTX, interval, timeout time.Duration, logger logging.Logger, onLost func(error)) {
	if interval <= 0 {
		logger.Warn(ctx, "liveness monitor disabled", "interval", interval)
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(ctx, timeout)
			err := dbx.Probe(probeCtx, db)
			cancel()

			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logger.Error(ctx, "database liveness check failed", "error", err)
				onLost(err)
				return
			}
			logger.Debug(ctx, "database liveness check passed")

		case <-ctx.Done():
			return
		}
	}
}
