package dto

import (
	"github.com/spec-kit/catalog-service/internal/validation"
)

// AddItemRequest payload for item creation.
type AddItemRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Description string `json:"description"`
}

// Validate applies the declarative item rule set.
func (r AddItemRequest) Validate() error {
	return validation.Apply(map[string]any{
		"name":        r.Name,
		"category":    r.Category,
		"subcategory": r.Subcategory,
		"description": r.Description,
	}, validation.ItemRules)
}

// UpdateItemRequest payload for item mutation.
type UpdateItemRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Description string `json:"description"`
}

// Validate applies the declarative item rule set.
func (r UpdateItemRequest) Validate() error {
	return validation.Apply(map[string]any{
		"name":        r.Name,
		"category":    r.Category,
		"subcategory": r.Subcategory,
		"description": r.Description,
	}, validation.ItemRules)
}
