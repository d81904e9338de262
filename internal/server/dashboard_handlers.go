package server

import (
	"nexus/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetDashboard handles GET /api/dashboard
// @Summary Community statistics
// @Tags dashboard
// @Produce json
// @Success 200 {object} service.DashboardStats
// @Router /dashboard [get]
func (s *Server) GetDashboard(c *fiber.Ctx) error {
	return c.JSON(s.state.Dashboard())
}

// GetNavigation handles GET /api/navigation
func (s *Server) GetNavigation(c *fiber.Ctx) error {
	user, _ := s.sessionUser(c)
	return c.JSON(fiber.Map{
		"view":  s.state.CurrentView(),
		"views": models.AvailableViews(user),
	})
}

// Navigate handles PUT /api/navigation
// @Summary Switch the active view
// @Tags navigation
// @Accept json
// @Produce json
// @Param request body object{view=string} true "Target view"
// @Success 200 {object} object{view=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /navigation [put]
func (s *Server) Navigate(c *fiber.Ctx) error {
	var req struct {
		View models.View `json:"view"`
	}
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	user, _ := s.sessionUser(c)
	if err := s.state.Navigate(user, req.View); err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{"view": s.state.CurrentView()})
}
