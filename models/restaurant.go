package models

import "time"

type Restaurant struct {
	ID        uint       `gorm:"primaryKey"`
	Name      string     `gorm:"type:varchar(250); not null"`
	UserID    uint       `gorm:"not null;index"`
	MenuItems []MenuItem `gorm:"foreignKey:RestaurantID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RestaurantJSON is the wire form served by the read-only API.
type RestaurantJSON struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func (r Restaurant) Serialize() RestaurantJSON {
	return RestaurantJSON{ID: r.ID, Name: r.Name}
}

// OwnedBy reports whether userID may mutate the restaurant and its items.
func (r Restaurant) OwnedBy(userID uint) bool {
	return userID != 0 && r.UserID == userID
}
