package schema

import (
	"gorm.io/gorm"
)

// AllModels returns the catalog models for GORM AutoMigrate.
func AllModels() []any {
	return []any{
		&StoreTable{},
		&StoreGroup{},
		&StoreMeta{},
	}
}

// Migrate runs GORM AutoMigrate to create or update the catalog.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
