package repo

import (
	"context"
	"errors"

	"github.com/pavan1045/myStore/internal/db"
	"github.com/pavan1045/myStore/internal/metrics"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrItemNotFound is returned when an item is not found
	ErrItemNotFound = errors.New("item not found")

	// ErrCategoryRequired is returned when an item carries no category reference
	ErrCategoryRequired = errors.New("category is required")

	// ErrNegativeQuantity is returned when an item quantity is below zero
	ErrNegativeQuantity = errors.New("quantity must not be negative")
)

// ItemPatch lists the item fields a partial update may overwrite. Only
// non-nil fields reach the store; everything else is left untouched.
type ItemPatch struct {
	Name          *string
	ModelNumber   *string
	CategoryID    *uint
	Quantity      *int
	ShelfLocation *string
	Notes         *string
	AddedDate     *string
}

// ItemRepository handles inventory item operations
type ItemRepository struct {
	db  *db.DB
	log *zap.Logger
}

// NewItemRepository creates a new item repository
func NewItemRepository(database *db.DB, logger *zap.Logger) *ItemRepository {
	return &ItemRepository{
		db:  database,
		log: logger,
	}
}

// List returns all items
func (r *ItemRepository) List(ctx context.Context) ([]*db.Item, error) {
	var items []*db.Item
	if err := r.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		r.log.Error("Failed to list items", zap.Error(err))
		return nil, err
	}
	return items, nil
}

// ListByCategory returns all items belonging to the given category
func (r *ItemRepository) ListByCategory(ctx context.Context, categoryID uint) ([]*db.Item, error) {
	var items []*db.Item
	if err := r.db.WithContext(ctx).Where("category_id = ?", categoryID).Order("id").Find(&items).Error; err != nil {
		r.log.Error("Failed to list items by category", zap.Uint("category_id", categoryID), zap.Error(err))
		return nil, err
	}
	return items, nil
}

// Get retrieves an item by id
func (r *ItemRepository) Get(ctx context.Context, id uint) (*db.Item, error) {
	var item db.Item
	err := r.db.WithContext(ctx).First(&item, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		r.log.Error("Failed to get item", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &item, nil
}

// Add creates a new item. The caller must have resolved CategoryID to an
// existing category first.
func (r *ItemRepository) Add(ctx context.Context, item *db.Item) error {
	if item.Name == "" {
		return ErrNameRequired
	}
	if item.CategoryID == 0 {
		return ErrCategoryRequired
	}
	if item.Quantity < 0 {
		return ErrNegativeQuantity
	}

	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		r.log.Error("Failed to create item", zap.String("name", item.Name), zap.Error(err))
		return err
	}

	metrics.RecordItemOperation("add")
	r.log.Info("Item created", zap.Uint("id", item.ID), zap.String("name", item.Name))
	return nil
}

// Update merges the patch's supplied fields into the stored item. A failed
// update leaves the record unchanged.
func (r *ItemRepository) Update(ctx context.Context, id uint, patch ItemPatch) error {
	if _, err := r.Get(ctx, id); err != nil {
		return err
	}

	updates := make(map[string]interface{})
	if patch.Name != nil {
		if *patch.Name == "" {
			return ErrNameRequired
		}
		updates["name"] = *patch.Name
	}
	if patch.ModelNumber != nil {
		updates["model_number"] = *patch.ModelNumber
	}
	if patch.CategoryID != nil {
		if *patch.CategoryID == 0 {
			return ErrCategoryRequired
		}
		updates["category_id"] = *patch.CategoryID
	}
	if patch.Quantity != nil {
		if *patch.Quantity < 0 {
			return ErrNegativeQuantity
		}
		updates["quantity"] = *patch.Quantity
	}
	if patch.ShelfLocation != nil {
		updates["shelf_location"] = *patch.ShelfLocation
	}
	if patch.Notes != nil {
		updates["notes"] = *patch.Notes
	}
	if patch.AddedDate != nil {
		updates["added_date"] = *patch.AddedDate
	}

	if len(updates) == 0 {
		return nil
	}

	if err := r.db.WithContext(ctx).Model(&db.Item{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		r.log.Error("Failed to update item", zap.Uint("id", id), zap.Error(err))
		return err
	}

	metrics.RecordItemOperation("update")
	r.log.Info("Item updated", zap.Uint("id", id))
	return nil
}

// Delete removes an item by id
func (r *ItemRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&db.Item{}, id)
	if result.Error != nil {
		r.log.Error("Failed to delete item", zap.Uint("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}

	metrics.RecordItemOperation("delete")
	r.log.Info("Item deleted", zap.Uint("id", id))
	return nil
}
