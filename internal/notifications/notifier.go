// Package notifications fans feed events out to live WebSocket subscribers
// through Redis pub/sub.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime/debug"

	"feedgraph/internal/middleware"
	"feedgraph/internal/models"
	"feedgraph/internal/observability"

	"github.com/redis/go-redis/v9"
)

// FeedChannel is the Redis channel carrying every feed event.
const FeedChannel = "feed:events"

// Notifier publishes feed events into Redis and subscribes to them.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// Publish sends event to every feed subscriber. A nil client is a no-op.
func (n *Notifier) Publish(ctx context.Context, event models.FeedEvent) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		observability.FeedEventsPublished.WithLabelValues(event.Type, "error").Inc()
		return fmt.Errorf("marshal feed event: %w", err)
	}
	if err := n.rdb.Publish(ctx, FeedChannel, payload).Err(); err != nil {
		observability.FeedEventsPublished.WithLabelValues(event.Type, "error").Inc()
		return fmt.Errorf("publish feed event: %w", err)
	}
	observability.FeedEventsPublished.WithLabelValues(event.Type, "ok").Inc()
	return nil
}

// StartFeedSubscriber subscribes to the feed channel and calls onMessage for
// each payload until ctx is cancelled.
func (n *Notifier) StartFeedSubscriber(ctx context.Context, onMessage func(payload string)) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	sub := n.rdb.Subscribe(ctx, FeedChannel)
	// Wait for the subscription to be confirmed so no event published after
	// this call returns is missed.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("subscribe %s: %w", FeedChannel, err)
	}
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							middleware.Logger.Error("panic in feed subscriber",
								slog.Any("panic", r),
								slog.String("stack", string(debug.Stack())),
							)
						}
					}()
					onMessage(msg.Payload)
				}()
			}
		}
	}()

	return nil
}
