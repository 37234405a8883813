package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"feedgraph/internal/middleware"
	"feedgraph/internal/models"

	"github.com/gofiber/websocket/v2"
)

// maxFeedConns caps concurrent feed subscribers.
const maxFeedConns = 10000

// ErrHubFull is returned by Register when the connection cap is reached.
var ErrHubFull = errors.New("feed connection limit reached")

// ErrHubClosed is returned by Register after Shutdown.
var ErrHubClosed = errors.New("feed hub is shut down")

// FeedHub tracks every feed stream subscriber.
type FeedHub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	closed  bool
}

func NewFeedHub() *FeedHub {
	return &FeedHub{clients: make(map[*Client]struct{})}
}

// Name returns a human-readable identifier for this hub.
func (h *FeedHub) Name() string { return "feed hub" }

// Register adds a subscriber. userID is zero for anonymous connections.
func (h *FeedHub) Register(userID uint, conn *websocket.Conn) (*Client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrHubClosed
	}
	if len(h.clients) >= maxFeedConns {
		return nil, ErrHubFull
	}

	client := NewClient(h, conn, userID)
	h.clients[client] = struct{}{}
	middleware.ActiveWebSockets.Inc()
	return client, nil
}

// UnregisterClient removes client and closes its send channel. It is safe
// to call more than once.
func (h *FeedHub) UnregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.Send)
	middleware.ActiveWebSockets.Dec()
}

// Count returns the number of connected subscribers.
func (h *FeedHub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// BroadcastAll sends message to every subscriber.
func (h *FeedHub) BroadcastAll(message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		c.TrySend(message)
	}
}

// Publish broadcasts event straight to local subscribers. It serves as the
// publisher when no Redis is configured and the process is the only replica.
func (h *FeedHub) Publish(_ context.Context, event models.FeedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	h.BroadcastAll(payload)
	return nil
}

// StartWiring forwards every feed event published through n to this hub.
func (h *FeedHub) StartWiring(ctx context.Context, n *Notifier) error {
	return n.StartFeedSubscriber(ctx, func(payload string) {
		h.BroadcastAll([]byte(payload))
	})
}

// Shutdown closes every connection with a going-away frame.
func (h *FeedHub) Shutdown(_ context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for client := range h.clients {
		if client.Conn != nil {
			if err := client.Conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "Server shutting down")); err != nil {
				middleware.Logger.Debug("feed socket close frame failed", slog.String("error", err.Error()))
			}
			_ = client.Conn.Close()
		}
		delete(h.clients, client)
		close(client.Send)
		middleware.ActiveWebSockets.Dec()
	}
	return nil
}
