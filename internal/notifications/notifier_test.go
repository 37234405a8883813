package notifications

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"feedgraph/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testEventuallyTimeout = time.Second
	testPollInterval      = 10 * time.Millisecond
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestNotifier_NilRedisIsNoop(t *testing.T) {
	n := NewNotifier(nil)
	assert.NoError(t, n.Publish(context.Background(), models.FeedEvent{Type: models.FeedEventPostCreated}))
	assert.NoError(t, n.StartFeedSubscriber(context.Background(), func(string) {}))

	var nilNotifier *Notifier
	assert.NoError(t, nilNotifier.Publish(context.Background(), models.FeedEvent{}))
}

func TestNotifier_PublishReachesSubscriber(t *testing.T) {
	n := NewNotifier(newTestRedis(t))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	payloads := make(chan string, 1)
	require.NoError(t, n.StartFeedSubscriber(ctx, func(payload string) {
		payloads <- payload
	}))

	event := models.FeedEvent{Type: models.FeedEventPostLiked, PostID: 3, UserID: 4, LikeID: 9}
	require.NoError(t, n.Publish(context.Background(), event))

	select {
	case payload := <-payloads:
		var got models.FeedEvent
		require.NoError(t, json.Unmarshal([]byte(payload), &got))
		assert.Equal(t, models.FeedEventPostLiked, got.Type)
		assert.Equal(t, uint(3), got.PostID)
		assert.Equal(t, uint(9), got.LikeID)
	case <-time.After(testEventuallyTimeout):
		t.Fatal("feed event not delivered")
	}
}

func TestNotifier_SubscriberPanicDoesNotStopDelivery(t *testing.T) {
	n := NewNotifier(newTestRedis(t))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	delivered := make(chan string, 2)
	first := true
	require.NoError(t, n.StartFeedSubscriber(ctx, func(payload string) {
		if first {
			first = false
			panic("boom")
		}
		delivered <- payload
	}))

	require.NoError(t, n.Publish(context.Background(), models.FeedEvent{Type: models.FeedEventPostCreated, PostID: 1}))
	require.NoError(t, n.Publish(context.Background(), models.FeedEvent{Type: models.FeedEventPostCreated, PostID: 2}))

	select {
	case payload := <-delivered:
		assert.Contains(t, payload, `"postId":2`)
	case <-time.After(testEventuallyTimeout):
		t.Fatal("second event not delivered")
	}
}
