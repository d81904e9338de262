package assistant

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"nexus/internal/models"

	"github.com/google/uuid"
)

// ErrChatBusy rejects a message while the previous one is still being answered.
var ErrChatBusy = errors.New("assistant is still answering the previous message")

// ErrEmptyMessage rejects blank chat input.
var ErrEmptyMessage = errors.New("message cannot be empty")

// ChatSession is one user's in-memory conversation.
type ChatSession struct {
	mu       sync.Mutex
	messages []models.ChatMessage
	busy     bool
}

// History returns a copy of the conversation so far.
func (s *ChatSession) History() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// Busy reports whether a reply is outstanding.
func (s *ChatSession) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Sessions keeps one ChatSession per user id.
type Sessions struct {
	client *Client
	logger *slog.Logger
	now    func() time.Time

	mu       sync.Mutex
	sessions map[string]*ChatSession
}

// NewSessions creates an empty session table over client.
func NewSessions(client *Client, logger *slog.Logger) *Sessions {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sessions{
		client:   client,
		logger:   logger,
		now:      time.Now,
		sessions: make(map[string]*ChatSession),
	}
}

// Get returns the session for userID, creating it on first use.
func (s *Sessions) Get(userID string) *ChatSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		sess = &ChatSession{}
		s.sessions[userID] = sess
	}
	return sess
}

// Reset drops the conversation of userID.
func (s *Sessions) Reset(userID string) {
	s.mu.Lock()
	delete(s.sessions, userID)
	s.mu.Unlock()
}

// ResetAll drops every conversation.
func (s *Sessions) ResetAll() {
	s.mu.Lock()
	s.sessions = make(map[string]*ChatSession)
	s.mu.Unlock()
}

func (s *Sessions) message(role models.ChatRole, text string) models.ChatMessage {
	return models.ChatMessage{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		Timestamp: s.now(),
	}
}

// Send appends text as a user message, asks the model with the history that
// preceded it, and appends the reply. A failed or empty reply becomes
// FallbackReply, so Send only errors for rejected input.
func (s *Sessions) Send(ctx context.Context, userID, text string) (models.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return models.ChatMessage{}, ErrEmptyMessage
	}

	sess := s.Get(userID)
	sess.mu.Lock()
	if sess.busy {
		sess.mu.Unlock()
		return models.ChatMessage{}, ErrChatBusy
	}
	history := slices.Clone(sess.messages)
	sess.messages = append(sess.messages, s.message(models.ChatRoleUser, text))
	sess.busy = true
	sess.mu.Unlock()

	reply, err := s.client.Chat(ctx, history, text)
	if err != nil {
		s.logger.ErrorContext(ctx, "assistant chat failed",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		reply = ""
	}
	if reply == "" {
		reply = FallbackReply
	}

	answer := s.message(models.ChatRoleModel, reply)
	sess.mu.Lock()
	sess.messages = append(sess.messages, answer)
	sess.busy = false
	sess.mu.Unlock()

	return answer, nil
}
