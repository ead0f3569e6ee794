package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/catalog-service/internal/api/dto"
	"github.com/spec-kit/catalog-service/internal/service"
	"github.com/spec-kit/catalog-service/internal/validation"
	apperrors "github.com/spec-kit/catalog-service/pkg/util"
)

// ItemsHandler exposes the catalog CRUD endpoints.
type ItemsHandler struct {
	items *service.ItemService
}

// NewItemsHandler constructs handler.
func NewItemsHandler(items *service.ItemService) *ItemsHandler {
	return &ItemsHandler{items: items}
}

// AddItem handles POST /user/item/addItem.
func (h *ItemsHandler) AddItem(c *fiber.Ctx) error {
	var req dto.AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := req.Validate(); err != nil {
		return apperrors.NewValidationError("Validation failed", validation.Details(err))
	}

	item, err := h.items.AddItem(c.Context(), service.ItemInput{
		Name:        req.Name,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, "Item added successfully", item)
}

// UpdateItem handles POST /user/item/updateItem.
func (h *ItemsHandler) UpdateItem(c *fiber.Ctx) error {
	var req dto.UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := req.Validate(); err != nil {
		return apperrors.NewValidationError("Validation failed", validation.Details(err))
	}

	item, err := h.items.UpdateItem(c.Context(), service.ItemInput{
		ID:          req.ID,
		Name:        req.Name,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "Item updated successfully.", item)
}

// DeleteItem handles POST /user/item/deleteItem/:id.
func (h *ItemsHandler) DeleteItem(c *fiber.Ctx) error {
	if err := h.items.DeleteItem(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Item marked as deleted successfully", nil)
}

// GetItemByID handles GET /user/item/getItemById/:id.
func (h *ItemsHandler) GetItemByID(c *fiber.Ctx) error {
	page, err := h.items.GetItemByID(c.Context(), c.Params("id"), c.QueryInt("page", 1), c.QueryInt("limit", 10))
	if err != nil {
		return err
	}
	return respondPage(c, http.StatusOK, "Item retrieved successfully", page)
}

// GetAllItems handles GET /user/item/getAllItems.
func (h *ItemsHandler) GetAllItems(c *fiber.Ctx) error {
	page, err := h.items.GetAllItems(c.Context(), c.QueryInt("page", 1), c.QueryInt("limit", 10))
	if err != nil {
		return err
	}
	return respondPage(c, http.StatusOK, "Items retrieved successfully", page)
}
