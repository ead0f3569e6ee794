package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/catalog-service/internal/service"
)

// respond renders the standard envelope. The status field in the body
// matches the HTTP status line.
func respond(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
		"error":   nil,
	})
}

// respondPage renders the listing envelope used by the item read endpoints.
func respondPage(c *fiber.Ctx, status int, message string, page *service.ItemPage) error {
	return c.Status(status).JSON(fiber.Map{
		"message":      message,
		"data":         page.Items,
		"totalRecords": page.TotalRecords,
		"currentPage":  page.CurrentPage,
		"totalPages":   page.TotalPages,
		"error":        nil,
	})
}
