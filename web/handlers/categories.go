package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/totok22/quicksales-backend/models"
)

// CategoryList returns every category in tree order.
func (h *Handler) CategoryList(c *fiber.Ctx) error {
	categories, err := h.store.GetAllCategories()
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(categories)
}

// CategoryView returns one category.
func (h *Handler) CategoryView(c *fiber.Ctx) error {
	category, err := h.store.GetCategoryByID(c.Params("id"))
	if err != nil {
		return notFoundOr(c, err, "category")
	}
	return c.JSON(category)
}

// CategoryProducts returns the products of one category.
func (h *Handler) CategoryProducts(c *fiber.Ctx) error {
	products, err := h.store.GetProductsByCategory(c.Params("id"))
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(products)
}

// CategorySave inserts or updates a category.
func (h *Handler) CategorySave(c *fiber.Ctx) error {
	var category models.Category
	if err := c.BodyParser(&category); err != nil {
		return badRequest(c, "invalid category payload: "+err.Error())
	}
	if category.ID == "" {
		return badRequest(c, "category id is required")
	}

	if err := h.store.SaveCategory(&category); err != nil {
		return internalError(c, err)
	}
	return c.JSON(category)
}

// CategorySaveBatch upserts a whole category tree atomically.
func (h *Handler) CategorySaveBatch(c *fiber.Ctx) error {
	var categories []models.Category
	if err := c.BodyParser(&categories); err != nil {
		return badRequest(c, "invalid categories payload: "+err.Error())
	}

	if err := h.store.SaveCategoriesBatch(categories); err != nil {
		return internalError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "categories saved",
	})
}

// CategoryDelete removes a category.
func (h *Handler) CategoryDelete(c *fiber.Ctx) error {
	if err := h.store.DeleteCategory(c.Params("id")); err != nil {
		return internalError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "category deleted",
	})
}
