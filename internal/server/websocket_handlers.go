package server

import (
	"log/slog"

	"nexus/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

const anonymousViewer = "anonymous"

// WebsocketHandler upgrades GET /api/ws and streams re-render signals until
// the peer disconnects.
func (s *Server) WebsocketHandler() fiber.Handler {
	upgrade := websocket.New(func(conn *websocket.Conn) {
		uid, _ := conn.Locals("wsUser").(string)
		if uid == "" {
			uid = anonymousViewer
		}

		client, err := s.hub.Register(uid, conn)
		if err != nil {
			middleware.Logger.Warn("websocket register failed",
				slog.String("user_id", uid), slog.String("error", err.Error()))
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}
		defer s.hub.UnregisterClient(client)

		go client.WritePump()
		client.ReadPump()
	})

	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		if user, err := s.sessionUser(c); err == nil {
			c.Locals("wsUser", user.ID)
		}
		return upgrade(c)
	}
}
