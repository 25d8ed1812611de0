package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/totok22/quicksales-backend/models"
)

// SettingsGet returns the settings row, falling back to the in-memory
// defaults before the first save.
func (h *Handler) SettingsGet(c *fiber.Ctx) error {
	settings, err := h.store.GetSettings()
	if err != nil {
		return internalError(c, err)
	}
	if settings == nil {
		settings = models.DefaultSettings()
	}
	return c.JSON(settings)
}

// SettingsSave upserts the singleton settings row.
func (h *Handler) SettingsSave(c *fiber.Ctx) error {
	var settings models.AppSettings
	if err := c.BodyParser(&settings); err != nil {
		return badRequest(c, "invalid settings payload: "+err.Error())
	}

	if err := h.store.SaveSettings(&settings); err != nil {
		return internalError(c, err)
	}
	return c.JSON(settings)
}
