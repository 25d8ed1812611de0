package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/totok22/quicksales-backend/models"
)

// CustomerList returns all regular customers.
func (h *Handler) CustomerList(c *fiber.Ctx) error {
	customers, err := h.store.GetAllCustomers()
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(customers)
}

// CustomerSearch matches name, phone or license plate.
func (h *Handler) CustomerSearch(c *fiber.Ctx) error {
	customers, err := h.store.SearchCustomers(c.Query("q"))
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(customers)
}

// CustomerView returns one customer.
func (h *Handler) CustomerView(c *fiber.Ctx) error {
	customer, err := h.store.GetCustomerByID(c.Params("id"))
	if err != nil {
		return notFoundOr(c, err, "customer")
	}
	return c.JSON(customer)
}

// CustomerSave inserts or updates a customer through the identity
// resolver.
func (h *Handler) CustomerSave(c *fiber.Ctx) error {
	var customer models.Customer
	if err := c.BodyParser(&customer); err != nil {
		return badRequest(c, "invalid customer payload: "+err.Error())
	}
	if customer.ID == "" {
		return badRequest(c, "customer id is required")
	}

	if err := h.store.SaveCustomer(&customer); err != nil {
		return internalError(c, err)
	}
	return c.JSON(customer)
}

// CustomerMerge folds one customer into another.
func (h *Handler) CustomerMerge(c *fiber.Ctx) error {
	var req struct {
		SourceID string `json:"sourceId"`
		TargetID string `json:"targetId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid merge payload: "+err.Error())
	}
	if req.SourceID == "" || req.TargetID == "" {
		return badRequest(c, "sourceId and targetId are required")
	}
	if req.SourceID == req.TargetID {
		return badRequest(c, "source and target customer are the same")
	}

	if err := h.store.MergeCustomers(req.SourceID, req.TargetID); err != nil {
		return notFoundOr(c, err, "customer")
	}
	return c.JSON(fiber.Map{
		"message": "customers merged",
	})
}

// CustomerDelete removes a customer, repointing its orders at a
// placeholder.
func (h *Handler) CustomerDelete(c *fiber.Ctx) error {
	if err := h.store.DeleteCustomer(c.Params("id")); err != nil {
		return internalError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "customer deleted",
	})
}

// CustomerBatchDelete removes several customers.
func (h *Handler) CustomerBatchDelete(c *fiber.Ctx) error {
	var req struct {
		IDs []string `json:"ids"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid batch payload: "+err.Error())
	}
	if len(req.IDs) == 0 {
		return badRequest(c, "ids are required")
	}

	if err := h.store.BatchDeleteCustomers(req.IDs); err != nil {
		return internalError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "customers deleted",
	})
}
