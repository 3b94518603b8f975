package models

import "time"

// User is created on the first Google sign-in for an email and never
// modified afterwards.
type User struct {
	ID          uint         `gorm:"primaryKey"`
	Name        string       `gorm:"type:varchar(250); not null"`
	Email       string       `gorm:"type:varchar(250); uniqueIndex; not null"`
	Picture     string       `gorm:"type:varchar(250)"`
	Restaurants []Restaurant `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	MenuItems   []MenuItem   `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
