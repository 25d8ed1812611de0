package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/totok22/quicksales-backend/models"
)

// TemplateList returns all export templates, default ones first.
func (h *Handler) TemplateList(c *fiber.Ctx) error {
	templates, err := h.store.GetAllTemplates()
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(templates)
}

// TemplateView returns one template.
func (h *Handler) TemplateView(c *fiber.Ctx) error {
	template, err := h.store.GetTemplateByID(c.Params("id"))
	if err != nil {
		return notFoundOr(c, err, "template")
	}
	return c.JSON(template)
}

// TemplateSave inserts or updates a template.
func (h *Handler) TemplateSave(c *fiber.Ctx) error {
	var template models.TemplateConfig
	if err := c.BodyParser(&template); err != nil {
		return badRequest(c, "invalid template payload: "+err.Error())
	}
	if template.ID == "" {
		return badRequest(c, "template id is required")
	}

	if err := h.store.SaveTemplate(&template); err != nil {
		return internalError(c, err)
	}
	return c.JSON(template)
}

// TemplateDelete removes a template.
func (h *Handler) TemplateDelete(c *fiber.Ctx) error {
	if err := h.store.DeleteTemplate(c.Params("id")); err != nil {
		return internalError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "template deleted",
	})
}

// TemplateNormalizeFilenames resets every template's filename pattern to
// the default and reports how many rows changed.
func (h *Handler) TemplateNormalizeFilenames(c *fiber.Ctx) error {
	fixed, err := h.store.NormalizeFilenamePatterns()
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(fiber.Map{
		"fixed": fixed,
	})
}
