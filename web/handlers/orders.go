package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/totok22/quicksales-backend/models"
)

// OrderList returns all orders with customer and items hydrated.
func (h *Handler) OrderList(c *fiber.Ctx) error {
	orders, err := h.store.GetAllOrders()
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(orders)
}

// OrderView returns one order with its customer and items.
func (h *Handler) OrderView(c *fiber.Ctx) error {
	order, err := h.store.GetOrderByID(c.Params("id"))
	if err != nil {
		return notFoundOr(c, err, "order")
	}

	if customer, err := h.store.GetCustomerByID(order.CustomerID); err == nil {
		order.Customer = *customer
	}
	if items, err := h.store.GetOrderItems(order.ID); err == nil {
		order.Items = items
	}
	return c.JSON(order)
}

// OrderItems returns the items of one order.
func (h *Handler) OrderItems(c *fiber.Ctx) error {
	items, err := h.store.GetOrderItems(c.Params("id"))
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(items)
}

// OrderSave runs the order ingestion pipeline and returns the assigned
// order number.
func (h *Handler) OrderSave(c *fiber.Ctx) error {
	var order models.Order
	if err := c.BodyParser(&order); err != nil {
		return badRequest(c, "invalid order payload: "+err.Error())
	}
	if order.ID == "" {
		return badRequest(c, "order id is required")
	}

	orderNumber, err := h.store.SaveOrder(&order)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(fiber.Map{
		"orderNumber": orderNumber,
	})
}

// OrderDelete removes an order and its items.
func (h *Handler) OrderDelete(c *fiber.Ctx) error {
	if err := h.store.DeleteOrder(c.Params("id")); err != nil {
		return internalError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "order deleted",
	})
}
