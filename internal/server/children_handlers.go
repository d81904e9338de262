package server

import (
	"nexus/internal/featureflags"
	"nexus/internal/models"
	"nexus/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ChildrenRegistryRequired admits only users whose department keeps the
// children's registry.
func (s *Server) ChildrenRegistryRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := s.sessionUser(c)
		if err != nil {
			return respondDomainError(c, err)
		}
		if !models.ViewAvailable(user, models.ViewChildren) {
			return respondDomainError(c, service.ErrViewUnavailable)
		}
		c.Locals("user", user)
		return c.Next()
	}
}

// GetChildren handles GET /api/children
// @Summary Children registry
// @Tags children
// @Produce json
// @Success 200 {array} models.Child
// @Failure 403 {object} models.ErrorResponse
// @Router /children [get]
func (s *Server) GetChildren(c *fiber.Ctx) error {
	return c.JSON(s.state.Children())
}

// CreateChild handles POST /api/children
// @Summary Register a child
// @Tags children
// @Accept json
// @Produce json
// @Param request body service.CreateChildInput true "Child"
// @Success 201 {object} models.Child
// @Failure 400 {object} models.ErrorResponse
// @Router /children [post]
func (s *Server) CreateChild(c *fiber.Ctx) error {
	var req service.CreateChildInput
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	child, err := s.state.CreateChild(c.UserContext(), req)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(child)
}

// DeleteChild handles DELETE /api/children/:id
func (s *Server) DeleteChild(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondDomainError(c, err)
	}

	if err := s.state.DeleteChild(c.UserContext(), id); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetAttendanceInsights handles POST /api/children/insights. The body carries
// the attendance records to analyse against the current registry. The
// response report is null when the model call or its parsing fails.
// @Summary Attendance insights
// @Tags children
// @Accept json
// @Produce json
// @Param request body object{records=[]models.AttendanceRecord} true "Attendance records"
// @Success 200 {object} object{report=models.AttendanceReport}
// @Failure 404 {object} models.ErrorResponse
// @Router /children/insights [post]
func (s *Server) GetAttendanceInsights(c *fiber.Ctx) error {
	user, _ := c.Locals("user").(*models.User)
	if user == nil || !s.featureFlags.Enabled(featureflags.AttendanceInsights, user.ID) {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Feature", featureflags.AttendanceInsights))
	}

	var req struct {
		Records []models.AttendanceRecord `json:"records"`
	}
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	report := s.assistant.Insights(c.UserContext(), s.state.Children(), req.Records)
	return c.JSON(fiber.Map{"report": report})
}
