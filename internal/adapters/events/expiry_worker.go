package events

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/viralforge/campaign-marketplace/internal/application"
)

type CampaignExpirer interface {
	ExpireCampaigns(ctx context.Context) (application.ExpireCampaignsResult, error)
}

// ExpiryWorker runs the campaign expiry sweep on a fixed interval.
type ExpiryWorker struct {
	logger   *slog.Logger
	expirer  CampaignExpirer
	interval time.Duration
}

func NewExpiryWorker(logger *slog.Logger, expirer CampaignExpirer, interval time.Duration) *ExpiryWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &ExpiryWorker{logger: logger, expirer: expirer, interval: interval}
}

func (w *ExpiryWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		if err := w.processOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
			w.logger.ErrorContext(ctx, "expiry sweep failed",
				"module", "marketplace.events.expiry_worker",
				"layer", "adapter",
				"operation", "expire_campaigns",
				"outcome", "failure",
				"error", err,
			)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (w *ExpiryWorker) processOnce(ctx context.Context) error {
	res, err := w.expirer.ExpireCampaigns(ctx)
	if err != nil {
		return err
	}
	if res.Count > 0 {
		w.logger.InfoContext(ctx, "campaigns expired",
			"module", "marketplace.events.expiry_worker",
			"layer", "adapter",
			"operation", "expire_campaigns",
			"outcome", "success",
			"count", res.Count,
		)
	}
	return nil
}
