package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/events"
	"github.com/spec-kit/catalog-service/internal/repository"
	apperrors "github.com/spec-kit/catalog-service/pkg/util"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// ItemPageCache caches rendered listing pages. Mutations invalidate the
// whole namespace.
type ItemPageCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, payload []byte)
	Invalidate(ctx context.Context)
}

// ItemPage is a paginated slice of the catalog.
type ItemPage struct {
	Items        []domain.Item `json:"items"`
	TotalRecords int           `json:"totalRecords"`
	CurrentPage  int           `json:"currentPage"`
	TotalPages   int           `json:"totalPages"`
}

// ItemService coordinates catalog CRUD.
type ItemService struct {
	items      repository.ItemRepository
	cache      ItemPageCache
	dispatcher events.Dispatcher
}

// ItemDependencies bundles requirements for the item service.
type ItemDependencies struct {
	ItemRepo   repository.ItemRepository
	Cache      ItemPageCache
	Dispatcher events.Dispatcher
}

// NewItemService constructs the service.
func NewItemService(deps ItemDependencies) *ItemService {
	return &ItemService{
		items:      deps.ItemRepo,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
	}
}

// ItemInput describes an item create/update payload.
type ItemInput struct {
	ID          string
	Name        string
	Category    string
	Subcategory string
	Description string
}

// AddItem creates a catalog entry. No two live items may share the same
// (name, category, subcategory) triple.
func (s *ItemService) AddItem(ctx context.Context, input ItemInput) (*domain.Item, error) {
	if _, err := s.items.FindDuplicate(ctx, input.Name, input.Category, input.Subcategory); err == nil {
		return nil, apperrors.NewConflict("Item already exists.")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	item := &domain.Item{
		Name:        input.Name,
		Category:    input.Category,
		Subcategory: input.Subcategory,
		Description: input.Description,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.publish(ctx, events.Event{
		Type:      events.EventItemCreated,
		SubjectID: item.ID.String(),
		Payload:   events.ItemChangedPayload{Name: item.Name, Category: item.Category},
	})
	return item, nil
}

// UpdateItem overwrites the provided fields of a live item.
func (s *ItemService) UpdateItem(ctx context.Context, input ItemInput) (*domain.Item, error) {
	item, err := s.items.GetByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFound("Item not found.")
		}
		return nil, err
	}

	if input.Name != "" {
		item.Name = input.Name
	}
	if input.Category != "" {
		item.Category = input.Category
	}
	if input.Subcategory != "" {
		item.Subcategory = input.Subcategory
	}
	if input.Description != "" {
		item.Description = input.Description
	}

	if err := s.items.Update(ctx, item); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFound("Item not found.")
		}
		return nil, err
	}

	s.invalidate(ctx)
	s.publish(ctx, events.Event{
		Type:      events.EventItemUpdated,
		SubjectID: item.ID.String(),
		Payload:   events.ItemChangedPayload{Name: item.Name, Category: item.Category},
	})
	return item, nil
}

// DeleteItem soft-deletes a live item.
func (s *ItemService) DeleteItem(ctx context.Context, id string) error {
	if err := s.items.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NewNotFound("Item not found or already deleted")
		}
		return err
	}

	s.invalidate(ctx)
	s.publish(ctx, events.Event{
		Type:      events.EventItemDeleted,
		SubjectID: id,
	})
	return nil
}

// GetItemByID returns the paginated fetch for a single id, soft-delete
// filtered. An unknown id yields an empty page, not an error.
func (s *ItemService) GetItemByID(ctx context.Context, id string, page, limit int) (*ItemPage, error) {
	page, limit = normalizePage(page, limit)
	key := fmt.Sprintf("id:%s:p%d:l%d", id, page, limit)

	if cached, ok := s.cachedPage(ctx, key); ok {
		return cached, nil
	}

	items, count, err := s.items.PageByID(ctx, id, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	return s.storePage(ctx, key, items, count, page, limit), nil
}

// GetAllItems returns one page of the live catalog.
func (s *ItemService) GetAllItems(ctx context.Context, page, limit int) (*ItemPage, error) {
	page, limit = normalizePage(page, limit)
	key := fmt.Sprintf("all:p%d:l%d", page, limit)

	if cached, ok := s.cachedPage(ctx, key); ok {
		return cached, nil
	}

	items, count, err := s.items.Page(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	return s.storePage(ctx, key, items, count, page, limit), nil
}

func (s *ItemService) cachedPage(ctx context.Context, key string) (*ItemPage, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, ok := s.cache.Get(ctx, key)
	if !ok {
		return nil, false
	}
	var page ItemPage
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, false
	}
	return &page, true
}

func (s *ItemService) storePage(ctx context.Context, key string, items []domain.Item, count, page, limit int) *ItemPage {
	if items == nil {
		items = []domain.Item{}
	}
	result := &ItemPage{
		Items:        items,
		TotalRecords: count,
		CurrentPage:  page,
		TotalPages:   (count + limit - 1) / limit,
	}
	if s.cache != nil {
		if raw, err := json.Marshal(result); err == nil {
			s.cache.Set(ctx, key, raw)
		}
	}
	return result
}

func (s *ItemService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}

func (s *ItemService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}

func normalizePage(page, limit int) (int, int) {
	if page <= 0 {
		page = defaultPage
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	return page, limit
}
