package db

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CurrentSchemaVersion is the version RunMigrations brings the store to.
const CurrentSchemaVersion = 2

// schemaInfo records the applied schema version so upgrades are additive:
// existing data is never dropped when a later version adds tables.
type schemaInfo struct {
	ID      uint `gorm:"primaryKey"`
	Version int  `gorm:"not null"`
}

func (schemaInfo) TableName() string {
	return "schema_info"
}

// defaultCategories seed a brand-new store.
var defaultCategories = []Category{
	{Name: "Cables"},
	{Name: "Chargers"},
	{Name: "Cases"},
	{Name: "Screen Protectors"},
	{Name: "Headphones"},
}

// RunMigrations applies all schema versions above the one recorded in the
// store. A fresh store gets the default categories; an existing store is
// upgraded in place without touching its data.
func RunMigrations(database *DB, log *zap.Logger) error {
	if err := database.AutoMigrate(&schemaInfo{}); err != nil {
		return err
	}

	var info schemaInfo
	fresh := false
	err := database.First(&info).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fresh = true
		info = schemaInfo{Version: 0}
		if err := database.Create(&info).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	if info.Version < 1 {
		if err := migrateV1(database, fresh); err != nil {
			return err
		}
		info.Version = 1
		if err := database.Save(&info).Error; err != nil {
			return err
		}
		log.Info("Schema migrated", zap.Int("version", 1))
	}

	if info.Version < 2 {
		if err := migrateV2(database); err != nil {
			return err
		}
		info.Version = 2
		if err := database.Save(&info).Error; err != nil {
			return err
		}
		log.Info("Schema migrated", zap.Int("version", 2))
	}

	return nil
}

// migrateV1 creates the categories and items tables. Seeding happens only
// when the store itself is new, not when an existing store replays v1.
func migrateV1(database *DB, fresh bool) error {
	if err := database.AutoMigrate(&Category{}, &Item{}); err != nil {
		return err
	}

	if !fresh {
		return nil
	}

	var count int64
	if err := database.Model(&Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	// Create mutates the slice with generated ids; seed from a copy.
	seed := make([]Category, len(defaultCategories))
	copy(seed, defaultCategories)
	return database.Create(&seed).Error
}

// migrateV2 adds the orders table.
func migrateV2(database *DB) error {
	return database.AutoMigrate(&Order{})
}
