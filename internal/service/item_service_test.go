package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/catalog-service/internal/domain"
)

type fakeItemRepo struct {
	items []*domain.Item
	pages int
}

func (f *fakeItemRepo) Create(_ context.Context, item *domain.Item) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	f.items = append(f.items, item)
	return nil
}

func (f *fakeItemRepo) Update(_ context.Context, item *domain.Item) error {
	for i, existing := range f.items {
		if existing.ID == item.ID && !existing.IsDeleted {
			f.items[i] = item
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakeItemRepo) SoftDelete(_ context.Context, id string) error {
	for _, item := range f.items {
		if item.ID.String() == id && !item.IsDeleted {
			item.IsDeleted = true
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakeItemRepo) GetByID(_ context.Context, id string) (*domain.Item, error) {
	for _, item := range f.items {
		if item.ID.String() == id && !item.IsDeleted {
			copied := *item
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeItemRepo) FindDuplicate(_ context.Context, name, category, subcategory string) (*domain.Item, error) {
	for _, item := range f.items {
		if !item.IsDeleted && item.Name == name && item.Category == category && item.Subcategory == subcategory {
			return item, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeItemRepo) PageByID(_ context.Context, id string, limit, offset int) ([]domain.Item, int, error) {
	f.pages++
	var rows []domain.Item
	for _, item := range f.items {
		if item.ID.String() == id && !item.IsDeleted {
			rows = append(rows, *item)
		}
	}
	return paginate(rows, limit, offset), len(rows), nil
}

func (f *fakeItemRepo) Page(_ context.Context, limit, offset int) ([]domain.Item, int, error) {
	f.pages++
	var rows []domain.Item
	for _, item := range f.items {
		if !item.IsDeleted {
			rows = append(rows, *item)
		}
	}
	return paginate(rows, limit, offset), len(rows), nil
}

func paginate(rows []domain.Item, limit, offset int) []domain.Item {
	if offset >= len(rows) {
		return nil
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}

type fakeCache struct {
	store         map[string][]byte
	invalidations int
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: map[string][]byte{}}
}

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, bool) {
	val, ok := c.store[key]
	return val, ok
}

func (c *fakeCache) Set(_ context.Context, key string, payload []byte) {
	c.store[key] = payload
}

func (c *fakeCache) Invalidate(context.Context) {
	c.store = map[string][]byte{}
	c.invalidations++
}

func newItemService(repo *fakeItemRepo, cache ItemPageCache) *ItemService {
	return NewItemService(ItemDependencies{ItemRepo: repo, Cache: cache})
}

func seedItems(t *testing.T, svc *ItemService, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := svc.AddItem(context.Background(), ItemInput{
			Name:     "item-" + string(rune('a'+i)),
			Category: "tools",
		})
		require.NoError(t, err)
	}
}

func TestAddItem_DuplicateTriple(t *testing.T) {
	repo := &fakeItemRepo{}
	svc := newItemService(repo, nil)

	input := ItemInput{Name: "hammer", Category: "tools", Subcategory: "hand"}
	_, err := svc.AddItem(context.Background(), input)
	require.NoError(t, err)

	_, err = svc.AddItem(context.Background(), input)
	assert.Equal(t, "CONFLICT", domainCode(t, err))

	// a different subcategory is a different triple
	input.Subcategory = "power"
	_, err = svc.AddItem(context.Background(), input)
	assert.NoError(t, err)
}

func TestAddItem_SoftDeletedTripleIsReusable(t *testing.T) {
	repo := &fakeItemRepo{}
	svc := newItemService(repo, nil)

	input := ItemInput{Name: "hammer", Category: "tools"}
	item, err := svc.AddItem(context.Background(), input)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteItem(context.Background(), item.ID.String()))

	_, err = svc.AddItem(context.Background(), input)
	assert.NoError(t, err)
}

func TestDeleteItem(t *testing.T) {
	repo := &fakeItemRepo{}
	svc := newItemService(repo, nil)

	item, err := svc.AddItem(context.Background(), ItemInput{Name: "hammer", Category: "tools"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteItem(context.Background(), item.ID.String()))
	assert.True(t, repo.items[0].IsDeleted)

	err = svc.DeleteItem(context.Background(), item.ID.String())
	assert.Equal(t, "NOT_FOUND", domainCode(t, err))
}

func TestUpdateItem(t *testing.T) {
	repo := &fakeItemRepo{}
	svc := newItemService(repo, nil)

	item, err := svc.AddItem(context.Background(), ItemInput{Name: "hammer", Category: "tools", Description: "claw"})
	require.NoError(t, err)

	updated, err := svc.UpdateItem(context.Background(), ItemInput{ID: item.ID.String(), Name: "mallet", Category: "tools"})
	require.NoError(t, err)
	assert.Equal(t, "mallet", updated.Name)
	assert.Equal(t, "claw", updated.Description)

	_, err = svc.UpdateItem(context.Background(), ItemInput{ID: uuid.NewString(), Name: "x", Category: "y"})
	assert.Equal(t, "NOT_FOUND", domainCode(t, err))
}

func TestGetAllItems_Pagination(t *testing.T) {
	repo := &fakeItemRepo{}
	svc := newItemService(repo, nil)
	seedItems(t, svc, 7)

	page, err := svc.GetAllItems(context.Background(), 2, 3)
	require.NoError(t, err)

	assert.Len(t, page.Items, 3)
	assert.Equal(t, 7, page.TotalRecords)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 3, page.TotalPages)
}

func TestGetAllItems_DefaultsAndEmpty(t *testing.T) {
	repo := &fakeItemRepo{}
	svc := newItemService(repo, nil)

	page, err := svc.GetAllItems(context.Background(), 0, 0)
	require.NoError(t, err)

	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.TotalRecords)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 0, page.TotalPages)
}

func TestGetAllItems_ServedFromCache(t *testing.T) {
	repo := &fakeItemRepo{}
	cache := newFakeCache()
	svc := newItemService(repo, cache)
	seedItems(t, svc, 2)

	_, err := svc.GetAllItems(context.Background(), 1, 10)
	require.NoError(t, err)
	queries := repo.pages

	page, err := svc.GetAllItems(context.Background(), 1, 10)
	require.NoError(t, err)

	assert.Equal(t, queries, repo.pages, "second read must not hit the store")
	assert.Equal(t, 2, page.TotalRecords)
}

func TestMutationsInvalidateCache(t *testing.T) {
	repo := &fakeItemRepo{}
	cache := newFakeCache()
	svc := newItemService(repo, cache)

	item, err := svc.AddItem(context.Background(), ItemInput{Name: "hammer", Category: "tools"})
	require.NoError(t, err)

	_, err = svc.GetAllItems(context.Background(), 1, 10)
	require.NoError(t, err)
	require.NotEmpty(t, cache.store)

	require.NoError(t, svc.DeleteItem(context.Background(), item.ID.String()))
	assert.Empty(t, cache.store)

	page, err := svc.GetAllItems(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, page.TotalRecords)
}

func TestGetItemByID_UnknownIDYieldsEmptyPage(t *testing.T) {
	repo := &fakeItemRepo{}
	svc := newItemService(repo, nil)

	page, err := svc.GetItemByID(context.Background(), uuid.NewString(), 1, 10)
	require.NoError(t, err)

	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.TotalRecords)
}
