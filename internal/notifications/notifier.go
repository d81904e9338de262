package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime/debug"

	"nexus/internal/cache"
	"nexus/internal/middleware"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Event is the envelope written to websocket clients. Origin names the
// server instance that published it.
type Event struct {
	Type    string `json:"type"`
	Origin  string `json:"origin,omitempty"`
	Payload any    `json:"payload,omitempty"`
}

const (
	// EventStateChanged tells clients to re-render from fresh state.
	EventStateChanged = "state_changed"
	// EventChatMessage carries an assistant reply to the other tabs of the same user.
	EventChatMessage = "chat_message"
)

// Encode marshals an event envelope.
func Encode(eventType string, payload any) ([]byte, error) {
	return encode(Event{Type: eventType, Payload: payload})
}

func encode(ev Event) ([]byte, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("marshal %s event: %w", ev.Type, err)
	}
	return data, nil
}

// Notifier fans events out through Redis pub/sub to every server instance
// sharing the store. Receivers reload their state before re-rendering.
type Notifier struct {
	rdb    *redis.Client
	origin string
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb, origin: uuid.NewString()}
}

// Origin identifies this instance in published events.
func (n *Notifier) Origin() string {
	if n == nil {
		return ""
	}
	return n.origin
}

// Encode marshals an event stamped with this instance's origin.
func (n *Notifier) Encode(eventType string, payload any) ([]byte, error) {
	return encode(Event{Type: eventType, Origin: n.Origin(), Payload: payload})
}

// Enabled reports whether events travel through Redis.
func (n *Notifier) Enabled() bool {
	return n != nil && n.rdb != nil
}

// Publish sends payload on the changes channel.
func (n *Notifier) Publish(ctx context.Context, payload []byte) error {
	if !n.Enabled() {
		return nil
	}
	return n.rdb.Publish(ctx, cache.ChangesChannel, payload).Err()
}

// StartSubscriber calls onMessage for every payload on the changes channel
// until ctx is cancelled.
func (n *Notifier) StartSubscriber(ctx context.Context, onMessage func(payload []byte)) error {
	if !n.Enabled() {
		return nil
	}
	sub := n.rdb.Subscribe(ctx, cache.ChangesChannel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("subscribe %s: %w", cache.ChangesChannel, err)
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
							middleware.Logger.Error("panic in changes subscriber",
								slog.Any("panic", r), slog.String("stack", string(debug.Stack())))
						}
					}()
					onMessage([]byte(msg.Payload))
				}()
			}
		}
	}()

	return nil
}

// StartWiring forwards every published event to all clients of h. Events
// published by another instance call onRemote first, so local state is
// fresh by the time clients refetch.
func (h *Hub) StartWiring(ctx context.Context, n *Notifier, onRemote func(Event)) error {
	return n.StartSubscriber(ctx, func(payload []byte) {
		var ev Event
		if err := json.Unmarshal(payload, &ev); err == nil && ev.Origin != n.Origin() && onRemote != nil {
			onRemote(ev)
		}
		h.BroadcastAll(payload)
	})
}
