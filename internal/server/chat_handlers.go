package server

import (
	"time"

	"nexus/internal/cache"
	"nexus/internal/featureflags"
	"nexus/internal/middleware"
	"nexus/internal/models"

	"github.com/gofiber/fiber/v2"
)

const (
	chatRateLimit  = 20
	chatRateWindow = time.Minute
)

// GetChat handles GET /api/chat
// @Summary Assistant conversation
// @Tags chat
// @Produce json
// @Success 200 {object} object{messages=[]models.ChatMessage,busy=bool}
// @Router /chat [get]
func (s *Server) GetChat(c *fiber.Ctx) error {
	user, err := s.sessionUser(c)
	if err != nil {
		return respondDomainError(c, err)
	}
	sess := s.chats.Get(user.ID)
	return c.JSON(fiber.Map{
		"messages": sess.History(),
		"busy":     sess.Busy(),
	})
}

// SendChat handles POST /api/chat
// @Summary Ask the assistant
// @Description Appends the message, asks the model with the recent history and returns the reply
// @Tags chat
// @Accept json
// @Produce json
// @Param request body object{message=string} true "Message"
// @Success 200 {object} models.ChatMessage
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 429 {object} object{error=string}
// @Router /chat [post]
func (s *Server) SendChat(c *fiber.Ctx) error {
	user, err := s.sessionUser(c)
	if err != nil {
		return respondDomainError(c, err)
	}
	if !s.featureFlags.Enabled(featureflags.AssistantChat, user.ID) {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Feature", featureflags.AssistantChat))
	}

	allowed, err := middleware.CheckRateLimit(c.UserContext(), s.redis,
		"assistant", cache.ChatRateResource(user.ID), chatRateLimit, chatRateWindow)
	if err == nil && !allowed {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error": "rate limit exceeded",
		})
	}

	var req struct {
		Message string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	reply, err := s.chats.Send(c.UserContext(), user.ID, req.Message)
	if err != nil {
		return respondDomainError(c, err)
	}
	s.pushChatReply(user.ID, reply)
	return c.JSON(reply)
}

// ResetChat handles DELETE /api/chat
func (s *Server) ResetChat(c *fiber.Ctx) error {
	user, err := s.sessionUser(c)
	if err != nil {
		return respondDomainError(c, err)
	}
	s.chats.Reset(user.ID)
	return c.SendStatus(fiber.StatusNoContent)
}
