package server

import (
	"log/slog"

	"feedgraph/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// FeedUpgrade rejects plain HTTP requests to the feed stream.
func (s *Server) FeedUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
}

// FeedWebsocketHandler streams feed events to the connection. Anonymous
// subscribers are allowed.
func (s *Server) FeedWebsocketHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userID, _ := conn.Locals("userID").(uint)

		client, err := s.feedHub.Register(userID, conn)
		if err != nil {
			middleware.Logger.Warn("feed subscriber rejected",
				slog.Uint64("user_id", uint64(userID)), slog.String("error", err.Error()))
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}

		middleware.Logger.Debug("feed subscriber connected", slog.Uint64("user_id", uint64(userID)))

		// The handler must block until the connection is done.
		go client.WritePump()
		client.ReadPump()
	})
}
