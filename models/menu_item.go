package models

import "time"

// Course values offered by the menu item forms. Any string is accepted
// on save.
var Courses = []string{"Appetizer", "Entree", "Dessert", "Beverage"}

type MenuItem struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"type:varchar(80); not null"`
	Description  string `gorm:"type:varchar(250)"`
	Price        string `gorm:"type:varchar(20)"`
	Course       string `gorm:"type:varchar(250)"`
	RestaurantID uint   `gorm:"not null;index"`
	// UserID is a copy of the restaurant owner at creation time.
	UserID    uint `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type MenuItemJSON struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Course      string `json:"course"`
}

func (m MenuItem) Serialize() MenuItemJSON {
	return MenuItemJSON{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Course:      m.Course,
	}
}

func SerializeMenuItems(items []MenuItem) []MenuItemJSON {
	out := make([]MenuItemJSON, 0, len(items))
	for _, item := range items {
		out = append(out, item.Serialize())
	}
	return out
}
