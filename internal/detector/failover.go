// Package detector implements the PII and harmful-content detectors, each a
// remote call with a documented local fallback.
package detector

import (
	"context"
	"log/slog"
)

// Failover runs primary and, when it returns an error, runs fallback instead.
// Both detectors share this shape: the remote path is preferred, the local
// path is the recovery, and a failure never crosses the detector boundary.
func Failover[T any](ctx context.Context, logger *slog.Logger, name string, primary, fallback func(context.Context) (T, error)) (T, error) {
	result, err := primary(ctx)
	if err == nil {
		return result, nil
	}

	logger.Warn("primary path failed, using fallback",
		slog.String("detector", name),
		slog.String("error", err.Error()),
	)

	return fallback(ctx)
}
