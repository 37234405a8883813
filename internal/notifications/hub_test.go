package notifications

import (
	"context"
	"testing"

	"feedgraph/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedHub_RegisterAndUnregister(t *testing.T) {
	hub := NewFeedHub()

	anon, err := hub.Register(0, nil)
	require.NoError(t, err)
	alice, err := hub.Register(1, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, hub.Count())

	hub.UnregisterClient(anon)
	hub.UnregisterClient(anon)
	assert.Equal(t, 1, hub.Count())

	_, ok := <-anon.Send
	assert.False(t, ok, "send channel is closed on unregister")

	hub.BroadcastAll([]byte("hello"))
	assert.Equal(t, "hello", string(<-alice.Send))
}

func TestFeedHub_TrySendDropsWhenFull(t *testing.T) {
	hub := NewFeedHub()
	client, err := hub.Register(0, nil)
	require.NoError(t, err)

	for i := 0; i < sendBuffer+5; i++ {
		hub.BroadcastAll([]byte("x"))
	}
	assert.Len(t, client.Send, sendBuffer)
}

func TestFeedHub_PublishBroadcastsLocally(t *testing.T) {
	hub := NewFeedHub()
	client, err := hub.Register(0, nil)
	require.NoError(t, err)

	require.NoError(t, hub.Publish(context.Background(), models.FeedEvent{
		Type:   models.FeedEventPostLiked,
		PostID: 3,
		UserID: 1,
	}))
	payload := string(<-client.Send)
	assert.Contains(t, payload, `"type":"post.liked"`)
	assert.Contains(t, payload, `"postId":3`)
}

func TestFeedHub_ShutdownRejectsNewClients(t *testing.T) {
	hub := NewFeedHub()
	client, err := hub.Register(0, nil)
	require.NoError(t, err)

	require.NoError(t, hub.Shutdown(context.Background()))
	assert.Equal(t, 0, hub.Count())

	_, ok := <-client.Send
	assert.False(t, ok)

	_, err = hub.Register(0, nil)
	assert.ErrorIs(t, err, ErrHubClosed)

	// Late unregister from a read pump is harmless.
	hub.UnregisterClient(client)
}

func TestFeedHub_StartWiringForwardsEvents(t *testing.T) {
	n := NewNotifier(newTestRedis(t))
	hub := NewFeedHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, err := hub.Register(0, nil)
	require.NoError(t, err)
	require.NoError(t, hub.StartWiring(ctx, n))

	require.NoError(t, n.Publish(context.Background(), models.FeedEvent{Type: models.FeedEventCommentCreated, PostID: 8, CommentID: 2}))

	assert.Eventually(t, func() bool {
		return len(client.Send) == 1
	}, testEventuallyTimeout, testPollInterval)
	assert.Contains(t, string(<-client.Send), models.FeedEventCommentCreated)
}
