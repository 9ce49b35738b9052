package repo

import (
	"context"
	"testing"

	"github.com/pavan1045/myStore/internal/db"
	"github.com/pavan1045/myStore/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *db.DB {
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = gormDB.AutoMigrate(&db.Category{}, &db.Item{}, &db.Order{})
	require.NoError(t, err)

	return &db.DB{DB: gormDB}
}

func TestAddCategory(t *testing.T) {
	database := setupTestDB(t)
	log := logger.NewLogger("test", "info")
	repo := NewCategoryRepository(database, log)

	ctx := context.Background()

	category, err := repo.Add(ctx, "Cables")
	require.NoError(t, err)
	assert.NotZero(t, category.ID)

	retrieved, err := repo.Get(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cables", retrieved.Name)
}

func TestAddCategoryDuplicate(t *testing.T) {
	database := setupTestDB(t)
	log := logger.NewLogger("test", "info")
	repo := NewCategoryRepository(database, log)

	ctx := context.Background()

	_, err := repo.Add(ctx, "Chargers")
	require.NoError(t, err)

	_, err = repo.Add(ctx, "Chargers")
	assert.ErrorIs(t, err, ErrCategoryExists)

	_, err = repo.Add(ctx, "")
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestGetCategoryNotFound(t *testing.T) {
	database := setupTestDB(t)
	log := logger.NewLogger("test", "info")
	repo := NewCategoryRepository(database, log)

	ctx := context.Background()

	_, err := repo.Get(ctx, 999)
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	_, err = repo.GetByName(ctx, "nope")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestRenameCategory(t *testing.T) {
	database := setupTestDB(t)
	log := logger.NewLogger("test", "info")
	repo := NewCategoryRepository(database, log)

	ctx := context.Background()

	category, err := repo.Add(ctx, "Case")
	require.NoError(t, err)
	other, err := repo.Add(ctx, "Headphones")
	require.NoError(t, err)

	err = repo.Rename(ctx, category.ID, "Cases")
	require.NoError(t, err)

	renamed, err := repo.Get(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cases", renamed.Name)

	// Renaming onto an existing name is a uniqueness violation
	err = repo.Rename(ctx, other.ID, "Cases")
	assert.ErrorIs(t, err, ErrCategoryExists)

	err = repo.Rename(ctx, 999, "Anything")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestDeleteCategoryCascades(t *testing.T) {
	database := setupTestDB(t)
	log := logger.NewLogger("test", "info")
	repo := NewCategoryRepository(database, log)
	items := NewItemRepository(database, log)

	ctx := context.Background()

	cables, err := repo.Add(ctx, "Cables")
	require.NoError(t, err)
	cases, err := repo.Add(ctx, "Cases")
	require.NoError(t, err)

	for _, item := range []*db.Item{
		{Name: "USB-C Cable", CategoryID: cables.ID, Quantity: 4},
		{Name: "Lightning Cable", CategoryID: cables.ID, Quantity: 2},
		{Name: "Clear Case", CategoryID: cases.ID, Quantity: 9},
	} {
		require.NoError(t, items.Add(ctx, item))
	}

	err = repo.Delete(ctx, cables.ID)
	require.NoError(t, err)

	// The category is gone and no item references it
	_, err = repo.Get(ctx, cables.ID)
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	orphans, err := items.ListByCategory(ctx, cables.ID)
	require.NoError(t, err)
	assert.Empty(t, orphans)

	remaining, err := items.List(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "Clear Case", remaining[0].Name)
}

func TestDeleteCategoryNotFound(t *testing.T) {
	database := setupTestDB(t)
	log := logger.NewLogger("test", "info")
	repo := NewCategoryRepository(database, log)

	err := repo.Delete(context.Background(), 42)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}
