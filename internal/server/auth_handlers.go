package server

import (
	"nexus/internal/middleware"
	"nexus/internal/models"
	"nexus/internal/service"

	"github.com/gofiber/fiber/v2"
)

type sessionResponse struct {
	Token string        `json:"token"`
	User  models.User   `json:"user"`
	Views []models.View `json:"views"`
}

func newSessionResponse(user models.User) (sessionResponse, error) {
	token, err := middleware.IssueSessionToken(user.ID)
	if err != nil {
		return sessionResponse{}, err
	}
	return sessionResponse{Token: token, User: user, Views: models.AvailableViews(&user)}, nil
}

// Register handles POST /api/auth/register
// @Summary Register a member
// @Description Creates a Servo in the chosen department and makes it the current user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body service.RegisterInput true "Registration form"
// @Success 201 {object} sessionResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /auth/register [post]
func (s *Server) Register(c *fiber.Ctx) error {
	var req service.RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	user, err := s.state.Register(c.UserContext(), req)
	if err != nil {
		return respondDomainError(c, err)
	}

	resp, err := newSessionResponse(user)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Login handles POST /api/auth/login
// @Summary Log in by username
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{username=string} true "Login form"
// @Success 200 {object} sessionResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /auth/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
	}
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	user, err := s.state.Login(c.UserContext(), req.Username)
	if err != nil {
		return respondDomainError(c, err)
	}

	resp, err := newSessionResponse(user)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(resp)
}

// Logout handles POST /api/auth/logout
func (s *Server) Logout(c *fiber.Ctx) error {
	if user, err := s.sessionUser(c); err == nil {
		s.chats.Reset(user.ID)
	}
	if err := s.state.Logout(c.UserContext()); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetMe handles GET /api/auth/me
func (s *Server) GetMe(c *fiber.Ctx) error {
	user, err := s.sessionUser(c)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{
		"user":  user,
		"views": models.AvailableViews(user),
	})
}

// GetDepartments handles GET /api/departments
func (s *Server) GetDepartments(c *fiber.Ctx) error {
	return c.JSON(models.AllDepartments())
}

// GetFeatureFlags returns configured feature flags and evaluated state for the acting user.
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	userID := ""
	if user, err := s.sessionUser(c); err == nil {
		userID = user.ID
	}

	return c.JSON(fiber.Map{
		"names":     s.featureFlags.Names(),
		"evaluated": s.featureFlags.Snapshot(userID),
	})
}
