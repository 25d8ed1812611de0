package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/totok22/quicksales-backend/models"
	"github.com/totok22/quicksales-backend/store"
)

// ProductList returns all products.
func (h *Handler) ProductList(c *fiber.Ctx) error {
	products, err := h.store.GetAllProducts()
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(products)
}

// ProductSearch matches name, pinyin code or category name.
func (h *Handler) ProductSearch(c *fiber.Ctx) error {
	products, err := h.store.SearchProducts(c.Query("q"))
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(products)
}

// ProductView returns one product.
func (h *Handler) ProductView(c *fiber.Ctx) error {
	product, err := h.store.GetProductByID(c.Params("id"))
	if err != nil {
		return notFoundOr(c, err, "product")
	}
	return c.JSON(product)
}

// ProductSave inserts or updates a product, regenerating its pinyin
// search code.
func (h *Handler) ProductSave(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return badRequest(c, "invalid product payload: "+err.Error())
	}
	if product.ID == "" {
		return badRequest(c, "product id is required")
	}

	if err := h.store.SaveProduct(&product); err != nil {
		return internalError(c, err)
	}
	return c.JSON(product)
}

// ProductUpdatePrice adjusts only the price of a product.
func (h *Handler) ProductUpdatePrice(c *fiber.Ctx) error {
	var req struct {
		Price float64 `json:"price"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid price payload: "+err.Error())
	}

	if err := h.store.UpdateProductPrice(c.Params("id"), req.Price); err != nil {
		return internalError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "price updated",
	})
}

// ProductDelete removes a product.
func (h *Handler) ProductDelete(c *fiber.Ctx) error {
	if err := h.store.DeleteProduct(c.Params("id")); err != nil {
		return internalError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "product deleted",
	})
}

// ProductBatchDelete removes several products.
func (h *Handler) ProductBatchDelete(c *fiber.Ctx) error {
	var req struct {
		IDs []string `json:"ids"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid batch payload: "+err.Error())
	}
	if len(req.IDs) == 0 {
		return badRequest(c, "ids are required")
	}

	if err := h.store.BatchDeleteProducts(req.IDs); err != nil {
		return internalError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "products deleted",
	})
}

// ProductPinyinPreview returns the search code a name would get, without
// touching any row.
func (h *Handler) ProductPinyinPreview(c *fiber.Ctx) error {
	name := c.Query("name")
	if name == "" {
		return badRequest(c, "name is required")
	}
	return c.JSON(fiber.Map{
		"pinyin": store.GenerateSearchPinyin(name),
	})
}

// ProductUpdatePinyin recomputes every product's pinyin search code.
func (h *Handler) ProductUpdatePinyin(c *fiber.Ctx) error {
	changed, err := h.store.BatchUpdatePinyin()
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(fiber.Map{
		"updated": changed,
	})
}
