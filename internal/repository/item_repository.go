package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/spec-kit/catalog-service/internal/domain"
)

// ItemRepository encapsulates catalog persistence. Every read filters out
// soft-deleted rows.
type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	Update(ctx context.Context, item *domain.Item) error
	SoftDelete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Item, error)
	FindDuplicate(ctx context.Context, name, category, subcategory string) (*domain.Item, error)
	PageByID(ctx context.Context, id string, limit, offset int) ([]domain.Item, int, error)
	Page(ctx context.Context, limit, offset int) ([]domain.Item, int, error)
}

type itemRepository struct {
	db *bun.DB
}

// NewItemRepository returns a bun-backed implementation.
func NewItemRepository(db *bun.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *domain.Item) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	_, err := r.db.NewInsert().
		Model(item).
		Returning("created_at, updated_at").
		Exec(ctx)
	return err
}

func (r *itemRepository) Update(ctx context.Context, item *domain.Item) error {
	item.UpdatedAt = time.Now()
	res, err := r.db.NewUpdate().
		Model(item).
		WherePK().
		Where("is_deleted = FALSE").
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *itemRepository) SoftDelete(ctx context.Context, id string) error {
	iid, err := uuid.Parse(id)
	if err != nil {
		return sql.ErrNoRows
	}
	res, err := r.db.NewUpdate().
		Model((*domain.Item)(nil)).
		Set("is_deleted = TRUE").
		Set("updated_at = now()").
		Where("id = ? AND is_deleted = FALSE", iid).
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *itemRepository) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	iid, err := uuid.Parse(id)
	if err != nil {
		return nil, sql.ErrNoRows
	}

	item := new(domain.Item)
	if err := r.db.NewSelect().
		Model(item).
		Where("i.id = ? AND i.is_deleted = FALSE", iid).
		Scan(ctx); err != nil {
		return nil, err
	}
	return item, nil
}

// FindDuplicate looks up a live item with the same (name, category,
// subcategory) triple. Returns sql.ErrNoRows when the triple is free.
func (r *itemRepository) FindDuplicate(ctx context.Context, name, category, subcategory string) (*domain.Item, error) {
	item := new(domain.Item)
	q := r.db.NewSelect().
		Model(item).
		Where("i.name = ?", name).
		Where("i.category = ?", category).
		Where("i.is_deleted = FALSE")
	if subcategory == "" {
		q = q.Where("i.subcategory IS NULL")
	} else {
		q = q.Where("i.subcategory = ?", subcategory)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	return item, nil
}

func (r *itemRepository) PageByID(ctx context.Context, id string, limit, offset int) ([]domain.Item, int, error) {
	iid, err := uuid.Parse(id)
	if err != nil {
		return nil, 0, nil
	}

	var items []domain.Item
	count, err := r.db.NewSelect().
		Model(&items).
		Where("i.id = ? AND i.is_deleted = FALSE", iid).
		Limit(limit).
		Offset(offset).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	return items, count, nil
}

func (r *itemRepository) Page(ctx context.Context, limit, offset int) ([]domain.Item, int, error) {
	var items []domain.Item
	count, err := r.db.NewSelect().
		Model(&items).
		Where("i.is_deleted = FALSE").
		Order("i.created_at DESC").
		Limit(limit).
		Offset(offset).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	return items, count, nil
}
