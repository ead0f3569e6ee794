package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Item is a catalog entry. Rows are never hard-deleted; IsDeleted hides them
// from every read path. No two non-deleted items share the same
// (name, category, subcategory) triple.
type Item struct {
	bun.BaseModel `bun:"table:items,alias:i"`

	ID          uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Name        string    `bun:"name,notnull" json:"name"`
	Category    string    `bun:"category,notnull" json:"category"`
	Subcategory string    `bun:"subcategory,nullzero" json:"subcategory,omitempty"`
	Description string    `bun:"description,nullzero" json:"description,omitempty"`
	IsDeleted   bool      `bun:"is_deleted,notnull,default:false" json:"isDeleted"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updatedAt"`
}
