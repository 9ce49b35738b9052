package repo

import (
	"context"
	"testing"

	"github.com/pavan1045/myStore/internal/db"
	"github.com/pavan1045/myStore/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestAddItem(t *testing.T) {
	database := setupTestDB(t)
	log := logger.NewLogger("test", "info")
	repo := NewItemRepository(database, log)

	ctx := context.Background()

	item := &db.Item{
		Name:          "USB-C Cable",
		ModelNumber:   "UC-100",
		CategoryID:    1,
		Quantity:      12,
		ShelfLocation: "A1",
		Notes:         "fast charge",
		AddedDate:     "2026-09-01",
	}
	require.NoError(t, repo.Add(ctx, item))
	assert.NotZero(t, item.ID)

	retrieved, err := repo.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "USB-C Cable", retrieved.Name)
	assert.Equal(t, "UC-100", retrieved.ModelNumber)
	assert.Equal(t, 12, retrieved.Quantity)
	assert.Equal(t, "2026-09-01", retrieved.AddedDate)
}

func TestAddItemValidation(t *testing.T) {
	database := setupTestDB(t)
	log := logger.NewLogger("test", "info")
	repo := NewItemRepository(database, log)

	ctx := context.Background()

	err := repo.Add(ctx, &db.Item{CategoryID: 1})
	assert.ErrorIs(t, err, ErrNameRequired)

	err = repo.Add(ctx, &db.Item{Name: "Cable"})
	assert.ErrorIs(t, err, ErrCategoryRequired)

	err = repo.Add(ctx, &db.Item{Name: "Cable", CategoryID: 1, Quantity: -1})
	assert.ErrorIs(t, err, ErrNegativeQuantity)
}

func TestListItemsByCategory(t *testing.T) {
	database := setupTestDB(t)
	log := logger.NewLogger("test", "info")
	repo := NewItemRepository(database, log)

	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, &db.Item{Name: "USB-C Cable", CategoryID: 1}))
	require.NoError(t, repo.Add(ctx, &db.Item{Name: "Lightning Cable", CategoryID: 1}))
	require.NoError(t, repo.Add(ctx, &db.Item{Name: "Wall Charger", CategoryID: 2}))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	cables, err := repo.ListByCategory(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, cables, 2)
}

func TestUpdateItemPartial(t *testing.T) {
	database := setupTestDB(t)
	log := logger.NewLogger("test", "info")
	repo := NewItemRepository(database, log)

	ctx := context.Background()

	item := &db.Item{
		Name:          "Wall Charger",
		ModelNumber:   "WC-20",
		CategoryID:    2,
		Quantity:      5,
		ShelfLocation: "B3",
		Notes:         "20W",
	}
	require.NoError(t, repo.Add(ctx, item))

	// Only quantity and location are supplied; the rest must survive
	err := repo.Update(ctx, item.ID, ItemPatch{
		Quantity:      ptr(8),
		ShelfLocation: ptr("B4"),
	})
	require.NoError(t, err)

	updated, err := repo.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, updated.Quantity)
	assert.Equal(t, "B4", updated.ShelfLocation)
	assert.Equal(t, "Wall Charger", updated.Name)
	assert.Equal(t, "WC-20", updated.ModelNumber)
	assert.Equal(t, "20W", updated.Notes)

	// An empty patch is a no-op
	require.NoError(t, repo.Update(ctx, item.ID, ItemPatch{}))
}

func TestUpdateItemFailureLeavesRecordUnchanged(t *testing.T) {
	database := setupTestDB(t)
	log := logger.NewLogger("test", "info")
	repo := NewItemRepository(database, log)

	ctx := context.Background()

	item := &db.Item{Name: "Screen Protector", CategoryID: 4, Quantity: 3}
	require.NoError(t, repo.Add(ctx, item))

	err := repo.Update(ctx, item.ID, ItemPatch{Quantity: ptr(-5)})
	assert.ErrorIs(t, err, ErrNegativeQuantity)

	kept, err := repo.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, kept.Quantity)
}

func TestUpdateItemNotFound(t *testing.T) {
	database := setupTestDB(t)
	log := logger.NewLogger("test", "info")
	repo := NewItemRepository(database, log)

	err := repo.Update(context.Background(), 999, ItemPatch{Quantity: ptr(1)})
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestDeleteItem(t *testing.T) {
	database := setupTestDB(t)
	log := logger.NewLogger("test", "info")
	repo := NewItemRepository(database, log)

	ctx := context.Background()

	item := &db.Item{Name: "Earbuds", CategoryID: 5, Quantity: 2}
	require.NoError(t, repo.Add(ctx, item))

	require.NoError(t, repo.Delete(ctx, item.ID))

	_, err := repo.Get(ctx, item.ID)
	assert.ErrorIs(t, err, ErrItemNotFound)

	err = repo.Delete(ctx, item.ID)
	assert.ErrorIs(t, err, ErrItemNotFound)
}
