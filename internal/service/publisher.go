package service

import (
	"context"
	"log/slog"
	"time"

	"feedgraph/internal/middleware"
	"feedgraph/internal/models"
)

// EventPublisher hands feed events to live subscribers.
type EventPublisher interface {
	Publish(ctx context.Context, event models.FeedEvent) error
}

// publishEvent is best-effort: a failed publish never fails the write that
// produced it.
func publishEvent(ctx context.Context, pub EventPublisher, event models.FeedEvent) {
	if pub == nil {
		return
	}
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}
	if err := pub.Publish(ctx, event); err != nil {
		middleware.Logger.WarnContext(ctx, "feed event publish failed",
			slog.String("type", event.Type),
			slog.Uint64("post_id", uint64(event.PostID)),
			slog.String("error", err.Error()),
		)
	}
}
