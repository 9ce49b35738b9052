// Package transfer implements the backup and spreadsheet exchange surface:
// destructive JSON backup/restore and merge-style CSV import/export.
package transfer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pavan1045/myStore/internal/csvio"
	"github.com/pavan1045/myStore/internal/db"
	"github.com/pavan1045/myStore/internal/metrics"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrInvalidBackup is returned when a JSON backup document cannot be parsed
var ErrInvalidBackup = errors.New("invalid backup format")

// bom is prepended to CSV exports for spreadsheet compatibility.
const bom = "\uFEFF"

// Backup is the JSON backup document: the full contents of the categories
// and items tables, raw.
type Backup struct {
	Categories []db.Category `json:"categories"`
	Items      []db.Item     `json:"items"`
}

// Service orchestrates import and export against the store. Multi-table
// work runs inside a single transaction so a failure leaves no partial
// writes behind.
type Service struct {
	db  *db.DB
	log *zap.Logger
}

// NewService creates a new transfer service
func NewService(database *db.DB, logger *zap.Logger) *Service {
	return &Service{
		db:  database,
		log: logger,
	}
}

// ExportJSON serializes every category and item as a pretty-printed JSON
// backup document.
func (s *Service) ExportJSON(ctx context.Context) (string, error) {
	var backup Backup
	if err := s.db.WithContext(ctx).Order("id").Find(&backup.Categories).Error; err != nil {
		s.log.Error("Failed to read categories for backup", zap.Error(err))
		return "", err
	}
	if err := s.db.WithContext(ctx).Order("id").Find(&backup.Items).Error; err != nil {
		s.log.Error("Failed to read items for backup", zap.Error(err))
		return "", err
	}

	data, err := json.MarshalIndent(&backup, "", "  ")
	if err != nil {
		return "", err
	}

	metrics.RecordTransfer("export_json", "success")
	s.log.Info("Backup exported",
		zap.Int("categories", len(backup.Categories)),
		zap.Int("items", len(backup.Items)))
	return string(data), nil
}

// ImportJSON restores a backup document, replacing the categories and items
// tables entirely. This is destructive: callers must confirm with the user
// before invoking it. Orders are not part of the backup and survive.
func (s *Service) ImportJSON(ctx context.Context, text string) error {
	var backup Backup
	if err := json.Unmarshal([]byte(text), &backup); err != nil {
		metrics.RecordTransfer("import_json", "error")
		return fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&db.Category{}).Error; err != nil {
			return err
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&db.Item{}).Error; err != nil {
			return err
		}

		if len(backup.Categories) > 0 {
			if err := tx.Create(&backup.Categories).Error; err != nil {
				return err
			}
		}
		if len(backup.Items) > 0 {
			if err := tx.Create(&backup.Items).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		metrics.RecordTransfer("import_json", "error")
		s.log.Error("Failed to restore backup", zap.Error(err))
		return err
	}

	metrics.RecordTransfer("import_json", "success")
	s.log.Info("Backup restored",
		zap.Int("categories", len(backup.Categories)),
		zap.Int("items", len(backup.Items)))
	return nil
}

// ExportCSV serializes every item as a CSV document with the fixed header
// Name,Model,Category,Location,Quantity,Notes. The category column carries
// the category's display name, or "" when the category no longer exists.
// A BOM is prepended for spreadsheet compatibility.
func (s *Service) ExportCSV(ctx context.Context) (string, error) {
	var categories []db.Category
	if err := s.db.WithContext(ctx).Find(&categories).Error; err != nil {
		s.log.Error("Failed to read categories for export", zap.Error(err))
		return "", err
	}
	var items []db.Item
	if err := s.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		s.log.Error("Failed to read items for export", zap.Error(err))
		return "", err
	}

	catNames := make(map[uint]string, len(categories))
	for _, c := range categories {
		catNames[c.ID] = c.Name
	}

	lines := make([]string, 0, len(items)+1)
	lines = append(lines, csvio.JoinLine(csvio.ExportHeader))
	for _, item := range items {
		lines = append(lines, csvio.JoinLine([]string{
			item.Name,
			item.ModelNumber,
			catNames[item.CategoryID],
			item.ShelfLocation,
			strconv.Itoa(item.Quantity),
			item.Notes,
		}))
	}

	metrics.RecordTransfer("export_csv", "success")
	s.log.Info("Inventory exported", zap.Int("items", len(items)))
	return bom + strings.Join(lines, "\n"), nil
}

// ImportCSV merges a CSV document into the store without clearing existing
// data. Unknown category names are created; rows matching an existing item
// by (name, modelNumber) — or by name alone when the row has no model
// number — overwrite that item's fields, everything else is inserted.
// The whole import is one transaction: a failure anywhere leaves the store
// untouched.
func (s *Service) ImportCSV(ctx context.Context, text string) error {
	lines := csvio.SplitLines(text)
	if len(lines) < 2 {
		// Header only or empty document, nothing to merge
		metrics.RecordTransfer("import_csv", "success")
		return nil
	}

	header, err := csvio.ResolveHeader(csvio.ParseLine(lines[0]))
	if err != nil {
		metrics.RecordTransfer("import_csv", "error")
		return err
	}

	rows := make([]csvio.Row, 0, len(lines)-1)
	catNames := make(map[string]bool)
	for _, line := range lines[1:] {
		row := csvio.ParseRow(line, header)
		catNames[row.CategoryName] = true
		rows = append(rows, row)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Resolve every distinct category name to an id, creating the
		// categories the store does not have yet.
		catIDs := make(map[string]uint, len(catNames))
		for name := range catNames {
			var category db.Category
			err := tx.Where("name = ?", name).First(&category).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				category = db.Category{Name: name}
				if err := tx.Create(&category).Error; err != nil {
					return err
				}
			} else if err != nil {
				return err
			}
			catIDs[name] = category.ID
		}

		// Upsert rows in file order; a row may match an item inserted by
		// an earlier row of the same file.
		for _, row := range rows {
			item := db.Item{
				Name:          row.Name,
				ModelNumber:   row.ModelNumber,
				CategoryID:    catIDs[row.CategoryName],
				Quantity:      row.Quantity,
				ShelfLocation: row.ShelfLocation,
				Notes:         row.Notes,
			}

			query := tx.Where("name = ?", row.Name)
			if row.ModelNumber != "" {
				query = query.Where("model_number = ?", row.ModelNumber)
			}

			var existing db.Item
			err := query.First(&existing).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if err := tx.Create(&item).Error; err != nil {
					return err
				}
				continue
			}
			if err != nil {
				return err
			}

			updates := map[string]interface{}{
				"name":           item.Name,
				"model_number":   item.ModelNumber,
				"category_id":    item.CategoryID,
				"quantity":       item.Quantity,
				"shelf_location": item.ShelfLocation,
				"notes":          item.Notes,
			}
			if err := tx.Model(&db.Item{}).Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		metrics.RecordTransfer("import_csv", "error")
		s.log.Error("Failed to import CSV", zap.Error(err))
		return err
	}

	metrics.RecordTransfer("import_csv", "success")
	metrics.ImportedRowsCounter.Add(float64(len(rows)))
	s.log.Info("Inventory imported", zap.Int("rows", len(rows)))
	return nil
}

// RefreshTableSizes updates the table-size gauges from current counts.
func (s *Service) RefreshTableSizes(ctx context.Context) error {
	for table, model := range map[string]interface{}{
		"categories": &db.Category{},
		"items":      &db.Item{},
		"orders":     &db.Order{},
	} {
		var count int64
		if err := s.db.WithContext(ctx).Model(model).Count(&count).Error; err != nil {
			return err
		}
		metrics.SetTableSize(table, count)
	}
	return nil
}
