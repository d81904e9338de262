package server

import (
	"context"
	"log/slog"

	"nexus/internal/middleware"
	"nexus/internal/models"
	"nexus/internal/notifications"
	"nexus/internal/service"
)

// publishChange is subscribed to the domain state. With Redis the event goes
// through pub/sub so every instance reloads and re-renders, otherwise it goes
// straight to the local hub.
func (s *Server) publishChange(ch service.Change) {
	message, err := s.notifier.Encode(notifications.EventStateChanged, ch)
	if err != nil {
		middleware.Logger.Error("failed to encode change event", slog.String("error", err.Error()))
		return
	}

	if s.notifier.Enabled() {
		if err := s.notifier.Publish(context.Background(), message); err != nil {
			middleware.Logger.Error("failed to publish change event",
				slog.String("collection", string(ch.Collection)),
				slog.String("error", err.Error()))
			s.hub.BroadcastAll(message)
		}
		return
	}
	s.hub.BroadcastAll(message)
}

// startWiring subscribes to changes published by every instance. Changes from
// other instances reload the local state before clients are told to re-render.
func (s *Server) startWiring(ctx context.Context) error {
	return s.hub.StartWiring(ctx, s.notifier, func(ev notifications.Event) {
		if ev.Type != notifications.EventStateChanged {
			return
		}
		s.state.Reload(ctx)
	})
}

// pushChatReply sends an assistant reply to every open socket of userID.
// Chat sessions live in this instance only, so Redis is not involved.
func (s *Server) pushChatReply(userID string, reply models.ChatMessage) {
	message, err := notifications.Encode(notifications.EventChatMessage, reply)
	if err != nil {
		middleware.Logger.Error("failed to encode chat event", slog.String("error", err.Error()))
		return
	}
	s.hub.Broadcast(userID, message)
}
