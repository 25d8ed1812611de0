package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/totok22/quicksales-backend/models"
)

// RemarkPresetList returns remark presets, optionally filtered by
// ?type=item or ?type=order.
func (h *Handler) RemarkPresetList(c *fiber.Ctx) error {
	presetType := c.Query("type")

	var (
		presets []models.RemarkPreset
		err     error
	)
	if presetType != "" {
		presets, err = h.store.GetRemarkPresetsByType(presetType)
	} else {
		presets, err = h.store.GetRemarkPresets()
	}
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(presets)
}

// RemarkPresetSave inserts or updates a remark preset.
func (h *Handler) RemarkPresetSave(c *fiber.Ctx) error {
	var preset models.RemarkPreset
	if err := c.BodyParser(&preset); err != nil {
		return badRequest(c, "invalid preset payload: "+err.Error())
	}
	if preset.ID == "" {
		return badRequest(c, "preset id is required")
	}
	if preset.Type != models.RemarkPresetItem && preset.Type != models.RemarkPresetOrder {
		return badRequest(c, "preset type must be item or order")
	}

	if err := h.store.SaveRemarkPreset(&preset); err != nil {
		return internalError(c, err)
	}
	return c.JSON(preset)
}

// RemarkPresetUse bumps a remark preset's usage counter.
func (h *Handler) RemarkPresetUse(c *fiber.Ctx) error {
	if err := h.store.IncrementRemarkUseCount(c.Params("id")); err != nil {
		return internalError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "use count updated",
	})
}

// RemarkPresetDelete removes a remark preset.
func (h *Handler) RemarkPresetDelete(c *fiber.Ctx) error {
	if err := h.store.DeleteRemarkPreset(c.Params("id")); err != nil {
		return internalError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "preset deleted",
	})
}

// UnitPresetList returns all unit presets.
func (h *Handler) UnitPresetList(c *fiber.Ctx) error {
	presets, err := h.store.GetUnitPresets()
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(presets)
}

// UnitPresetSave inserts or updates a unit preset.
func (h *Handler) UnitPresetSave(c *fiber.Ctx) error {
	var preset models.UnitPreset
	if err := c.BodyParser(&preset); err != nil {
		return badRequest(c, "invalid preset payload: "+err.Error())
	}
	if preset.ID == "" {
		return badRequest(c, "preset id is required")
	}

	if err := h.store.SaveUnitPreset(&preset); err != nil {
		return internalError(c, err)
	}
	return c.JSON(preset)
}

// UnitPresetUse bumps a unit preset's usage counter.
func (h *Handler) UnitPresetUse(c *fiber.Ctx) error {
	if err := h.store.IncrementUnitUseCount(c.Params("id")); err != nil {
		return internalError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "use count updated",
	})
}

// UnitPresetDelete removes a unit preset.
func (h *Handler) UnitPresetDelete(c *fiber.Ctx) error {
	if err := h.store.DeleteUnitPreset(c.Params("id")); err != nil {
		return internalError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "preset deleted",
	})
}
