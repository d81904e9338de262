package server

import (
	"fmt"

	"nexus/internal/models"
	"nexus/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMeetings handles GET /api/meetings
// @Summary Agenda
// @Description Lists all meetings, or those of one department with ?dept=
// @Tags meetings
// @Produce json
// @Param dept query string false "Department"
// @Success 200 {array} models.Meeting
// @Router /meetings [get]
func (s *Server) GetMeetings(c *fiber.Ctx) error {
	dept := models.Department(c.Query("dept"))
	if dept == "" {
		return c.JSON(s.state.Meetings())
	}
	if !dept.Valid() {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(fmt.Sprintf("unknown department %q", dept)))
	}
	return c.JSON(s.state.MeetingsForDepartment(dept))
}

// GetDepartmentMeetings handles GET /api/meetings/department, the agenda of
// the acting user's department.
func (s *Server) GetDepartmentMeetings(c *fiber.Ctx) error {
	user, err := s.sessionUser(c)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{
		"department": user.Department,
		"meetings":   s.state.MeetingsForDepartment(user.Department),
	})
}

// CreateMeeting handles POST /api/meetings
// @Summary Schedule a meeting for the user's department
// @Tags meetings
// @Accept json
// @Produce json
// @Param request body service.CreateMeetingInput true "Meeting"
// @Success 201 {object} models.Meeting
// @Failure 400 {object} models.ErrorResponse
// @Router /meetings [post]
func (s *Server) CreateMeeting(c *fiber.Ctx) error {
	user, err := s.sessionUser(c)
	if err != nil {
		return respondDomainError(c, err)
	}

	var req service.CreateMeetingInput
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	meeting, err := s.state.CreateMeeting(c.UserContext(), *user, req)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(meeting)
}

// DeleteMeeting handles DELETE /api/meetings/:id
func (s *Server) DeleteMeeting(c *fiber.Ctx) error {
	if _, err := s.sessionUser(c); err != nil {
		return respondDomainError(c, err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return respondDomainError(c, err)
	}

	if err := s.state.DeleteMeeting(c.UserContext(), id); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
