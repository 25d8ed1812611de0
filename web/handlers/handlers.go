// Package handlers holds the JSON API handlers. Each handler is a thin
// adapter: decode the request, call one store operation, encode the
// result. All domain rules live in the store.
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/totok22/quicksales-backend/database"
	"github.com/totok22/quicksales-backend/store"
)

// Handler bundles the handlers around an injected store.
type Handler struct {
	store *store.Store
}

// New creates a Handler.
func New(st *store.Store) *Handler {
	return &Handler{store: st}
}

// notFoundOr maps a lookup miss to 404 and everything else to 500.
func notFoundOr(c *fiber.Ctx, err error, what string) error {
	if store.IsNotFound(err) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": what + " not found",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func internalError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": message,
	})
}

// GetSQLLogs returns the recent SQL query log.
func (h *Handler) GetSQLLogs(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"queries": database.SQLLogger.GetQueries(),
	})
}

// ClearSQLLogs empties the SQL query log.
func (h *Handler) ClearSQLLogs(c *fiber.Ctx) error {
	database.SQLLogger.Clear()
	return c.JSON(fiber.Map{
		"message": "SQL logs cleared",
	})
}
