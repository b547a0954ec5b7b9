package notifier

import (
	"context"

	"go.uber.org/zap"

	"FishingDay/internal/game"
)

// DigestHook sends a digest of every finished day.
type DigestHook struct {
	n          Notifier
	maxRetries int
	log        *zap.Logger
}

var _ game.DayHook = (*DigestHook)(nil)

func NewDigestHook(n Notifier, maxRetries int, log *zap.Logger) *DigestHook {
	if log == nil {
		log = zap.NewNop()
	}
	return &DigestHook{n: n, maxRetries: maxRetries, log: log}
}

func (h *DigestHook) DayEnded(ctx context.Context, r game.DayReport) error {
	if r.Reason == game.EndQuit {
		return nil
	}
	return SendWithRetry(ctx, h.n, FormatDayDigest(r), h.maxRetries, h.log)
}
