package database

import (
	"fmt"

	"github.com/yeremiapane/restaurant-menu/models"
	"github.com/yeremiapane/restaurant-menu/utils"
	"gorm.io/gorm"
)

// Migrate creates the users, restaurants and menu_items tables. It is
// safe to run against an existing schema.
func Migrate(db *gorm.DB) error {
	if err := EnableForeignKeys(db); err != nil {
		return err
	}

	err := db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.MenuItem{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, table := range []string{"users", "restaurants", "menu_items"} {
		if !db.Migrator().HasTable(table) {
			return fmt.Errorf("table %s missing after migration", table)
		}
		utils.InfoLogger.Printf("Table verified: %s", table)
	}
	return nil
}

// EnableForeignKeys turns on FK enforcement for the sqlite connection it
// runs on. Handles opened through config.Dialector already have it on
// every connection. Other dialects enforce them already.
func EnableForeignKeys(db *gorm.DB) error {
	if db.Dialector.Name() != "sqlite" {
		return nil
	}
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return fmt.Errorf("enable sqlite foreign keys: %w", err)
	}
	return nil
}
