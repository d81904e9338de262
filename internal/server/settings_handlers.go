package server

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"nexus/internal/models"

	"github.com/gofiber/fiber/v2"
	"gopkg.in/yaml.v3"
)

const backupDateLayout = "2006-01-02"

// ExportData handles GET /api/settings/export
// @Summary Download a backup
// @Description Serves users, posts, children and meetings as an attachment, JSON by default or YAML with ?format=yaml
// @Tags settings
// @Produce json
// @Param format query string false "json or yaml"
// @Success 200 {object} models.ExportDocument
// @Router /settings/export [get]
func (s *Server) ExportData(c *fiber.Ctx) error {
	doc := s.state.Export()
	stamp := time.Now().Format(backupDateLayout)

	switch strings.ToLower(c.Query("format", "json")) {
	case "json":
		body, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return respondDomainError(c, err)
		}
		c.Attachment(fmt.Sprintf("nexus_backup_%s.json", stamp))
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.Send(body)
	case "yaml", "yml":
		body, err := yaml.Marshal(doc)
		if err != nil {
			return respondDomainError(c, err)
		}
		c.Attachment(fmt.Sprintf("nexus_backup_%s.yaml", stamp))
		c.Set(fiber.HeaderContentType, "application/yaml; charset=utf-8")
		return c.Send(body)
	default:
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("format must be json or yaml"))
	}
}

// ImportData handles POST /api/settings/import
// @Summary Restore a backup
// @Description Replaces the four collections with the uploaded document. YAML is accepted with a yaml content type.
// @Tags settings
// @Accept json
// @Produce json
// @Param request body models.ExportDocument true "Backup document"
// @Success 200 {object} object{users=int,posts=int,children=int,meetings=int}
// @Failure 400 {object} models.ErrorResponse
// @Router /settings/import [post]
func (s *Server) ImportData(c *fiber.Ctx) error {
	var doc models.ExportDocument
	var err error
	if strings.Contains(c.Get(fiber.HeaderContentType), "yaml") {
		err = yaml.Unmarshal(c.Body(), &doc)
	} else {
		err = json.Unmarshal(c.Body(), &doc)
	}
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid backup document"))
	}

	if err := s.state.Import(c.UserContext(), doc); err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{
		"users":    len(doc.Users),
		"posts":    len(doc.Posts),
		"children": len(doc.Children),
		"meetings": len(doc.Meetings),
	})
}

// WipeData handles DELETE /api/settings/data, erasing every record and
// every assistant conversation.
func (s *Server) WipeData(c *fiber.Ctx) error {
	if err := s.state.Wipe(c.UserContext()); err != nil {
		return respondDomainError(c, err)
	}
	s.chats.ResetAll()
	return c.SendStatus(fiber.StatusNoContent)
}
