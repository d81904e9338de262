package server

import (
	"errors"
	"log/slog"
	"strings"

	"nexus/internal/assistant"
	"nexus/internal/middleware"
	"nexus/internal/models"
	"nexus/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Form-mode hints returned with login and registration failures.
const (
	modeLogin    = "login"
	modeRegister = "register"
)

// sessionUser resolves the acting user: the token subject when a session token
// was presented, the persisted current user otherwise.
func (s *Server) sessionUser(c *fiber.Ctx) (*models.User, error) {
	if uid, ok := c.Locals("userID").(string); ok && uid != "" {
		user, found := s.state.UserByID(uid)
		if !found {
			return nil, service.ErrNoCurrentUser
		}
		return &user, nil
	}
	if user := s.state.CurrentUser(); user != nil {
		return user, nil
	}
	return nil, service.ErrNoCurrentUser
}

func pathID(c *fiber.Ctx, param string) (string, error) {
	id := strings.TrimSpace(c.Params(param))
	if id == "" {
		return "", models.NewValidationError("Invalid " + param)
	}
	return id, nil
}

// respondDomainError maps state and assistant errors onto HTTP responses.
func respondDomainError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	switch {
	case errors.As(err, &appErr):
		return models.RespondWithError(c, statusForCode(appErr.Code), appErr)
	case errors.Is(err, service.ErrUsernameTaken):
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewConflictError("Username already registered").WithMode(modeLogin))
	case errors.Is(err, service.ErrUserNotFound):
		return models.RespondWithError(c, fiber.StatusNotFound, &models.AppError{
			Code:    "NOT_FOUND",
			Message: "Username not registered",
			Mode:    modeRegister,
		})
	case errors.Is(err, service.ErrPostNotFound):
		return models.RespondWithError(c, fiber.StatusNotFound, models.NewNotFoundError("Post", c.Params("id")))
	case errors.Is(err, service.ErrMeetingNotFound):
		return models.RespondWithError(c, fiber.StatusNotFound, models.NewNotFoundError("Meeting", c.Params("id")))
	case errors.Is(err, service.ErrChildNotFound):
		return models.RespondWithError(c, fiber.StatusNotFound, models.NewNotFoundError("Child", c.Params("id")))
	case errors.Is(err, service.ErrViewUnavailable):
		return models.RespondWithError(c, fiber.StatusForbidden, models.NewForbiddenError("View not available for this user"))
	case errors.Is(err, service.ErrNoCurrentUser):
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("No active user, log in or register first"))
	case errors.Is(err, assistant.ErrEmptyMessage):
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError(err.Error()))
	case errors.Is(err, assistant.ErrChatBusy):
		return models.RespondWithError(c, fiber.StatusConflict, models.NewConflictError(err.Error()))
	}

	middleware.Logger.ErrorContext(c.UserContext(), "request failed",
		slog.String("path", c.Path()), slog.String("error", err.Error()))
	return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
}

func statusForCode(code string) int {
	switch code {
	case "VALIDATION_ERROR":
		return fiber.StatusBadRequest
	case "NOT_FOUND":
		return fiber.StatusNotFound
	case "CONFLICT":
		return fiber.StatusConflict
	case "UNAUTHORIZED":
		return fiber.StatusUnauthorized
	case "FORBIDDEN":
		return fiber.StatusForbidden
	}
	return fiber.StatusInternalServerError
}

func invalidBody(c *fiber.Ctx) error {
	return models.RespondWithError(c, fiber.StatusBadRequest,
		models.NewValidationError("Invalid request body"))
}
