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
	// ErrCategoryNotFound is returned when a category is not found
	ErrCategoryNotFound = errors.New("category not found")

	// ErrCategoryExists is returned when a category with the same name already exists
	ErrCategoryExists = errors.New("category already exists")

	// ErrNameRequired is returned when a required name field is blank
	ErrNameRequired = errors.New("name is required")
)

// CategoryRepository handles category operations
type CategoryRepository struct {
	db  *db.DB
	log *zap.Logger
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(database *db.DB, logger *zap.Logger) *CategoryRepository {
	return &CategoryRepository{
		db:  database,
		log: logger,
	}
}

// List returns all categories
func (r *CategoryRepository) List(ctx context.Context) ([]*db.Category, error) {
	var categories []*db.Category
	if err := r.db.WithContext(ctx).Order("id").Find(&categories).Error; err != nil {
		r.log.Error("Failed to list categories", zap.Error(err))
		return nil, err
	}
	return categories, nil
}

// Get retrieves a category by id
func (r *CategoryRepository) Get(ctx context.Context, id uint) (*db.Category, error) {
	var category db.Category
	err := r.db.WithContext(ctx).First(&category, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		r.log.Error("Failed to get category", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &category, nil
}

// GetByName retrieves a category by exact name match
func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*db.Category, error) {
	var category db.Category
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		r.log.Error("Failed to get category by name", zap.String("name", name), zap.Error(err))
		return nil, err
	}
	return &category, nil
}

// Add creates a new category with the given name
func (r *CategoryRepository) Add(ctx context.Context, name string) (*db.Category, error) {
	if name == "" {
		return nil, ErrNameRequired
	}

	// Check if category already exists
	var existing db.Category
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&existing).Error
	if err == nil {
		return nil, ErrCategoryExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		r.log.Error("Failed to check category existence", zap.String("name", name), zap.Error(err))
		return nil, err
	}

	category := db.Category{Name: name}
	if err := r.db.WithContext(ctx).Create(&category).Error; err != nil {
		r.log.Error("Failed to create category", zap.String("name", name), zap.Error(err))
		return nil, err
	}

	metrics.RecordCategoryOperation("add")
	r.log.Info("Category created", zap.Uint("id", category.ID), zap.String("name", name))
	return &category, nil
}

// Rename changes a category's name
func (r *CategoryRepository) Rename(ctx context.Context, id uint, name string) error {
	if name == "" {
		return ErrNameRequired
	}

	if _, err := r.Get(ctx, id); err != nil {
		return err
	}

	// Another category holding the name is a uniqueness violation
	var existing db.Category
	err := r.db.WithContext(ctx).Where("name = ? AND id <> ?", name, id).First(&existing).Error
	if err == nil {
		return ErrCategoryExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		r.log.Error("Failed to check category name", zap.String("name", name), zap.Error(err))
		return err
	}

	if err := r.db.WithContext(ctx).Model(&db.Category{}).Where("id = ?", id).Update("name", name).Error; err != nil {
		r.log.Error("Failed to rename category", zap.Uint("id", id), zap.Error(err))
		return err
	}

	metrics.RecordCategoryOperation("rename")
	r.log.Info("Category renamed", zap.Uint("id", id), zap.String("name", name))
	return nil
}

// Delete removes a category and every item referencing it, atomically.
// Either both deletes commit or neither does.
func (r *CategoryRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category db.Category
		if err := tx.First(&category, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}

		if err := tx.Where("category_id = ?", id).Delete(&db.Item{}).Error; err != nil {
			return err
		}

		return tx.Delete(&db.Category{}, id).Error
	})
	if err != nil {
		if !errors.Is(err, ErrCategoryNotFound) {
			r.log.Error("Failed to delete category", zap.Uint("id", id), zap.Error(err))
		}
		return err
	}

	metrics.RecordCategoryOperation("delete")
	r.log.Info("Category deleted with its items", zap.Uint("id", id))
	return nil
}
