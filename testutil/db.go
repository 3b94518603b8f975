// Package testutil holds fixtures shared by the package tests.
package testutil

import (
	"testing"

	"github.com/yeremiapane/restaurant-menu/config"
	"github.com/yeremiapane/restaurant-menu/database"
	"github.com/yeremiapane/restaurant-menu/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB returns a migrated in-memory sqlite database private to t.
// A single connection keeps the in-memory database alive.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dialector, err := config.Dialector("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("sqlite dialector: %v", err)
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func SeedUser(t *testing.T, db *gorm.DB, name, email string) models.User {
	t.Helper()
	user := models.User{Name: name, Email: email, Picture: "https://example.com/" + name + ".png"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func SeedRestaurant(t *testing.T, db *gorm.DB, owner models.User, name string) models.Restaurant {
	t.Helper()
	restaurant := models.Restaurant{Name: name, UserID: owner.ID}
	if err := db.Create(&restaurant).Error; err != nil {
		t.Fatalf("seed restaurant: %v", err)
	}
	return restaurant
}

func SeedMenuItem(t *testing.T, db *gorm.DB, restaurant models.Restaurant, name, price string) models.MenuItem {
	t.Helper()
	item := models.MenuItem{
		Name:         name,
		Description:  name + " of the house",
		Price:        price,
		Course:       "Entree",
		RestaurantID: restaurant.ID,
		UserID:       restaurant.UserID,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed menu item: %v", err)
	}
	return item
}
