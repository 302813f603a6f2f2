package models

import (
	"time"

	"gorm.io/gorm"
)

// Link is a single outbound link on a user's public page. Only active links
// belonging to a non-banned owner are visible through the profile resolver.
type Link struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"index;not null" json:"-"`
	Title     string         `json:"title"`
	URL       string         `gorm:"not null" json:"url"`
	IsActive  bool           `gorm:"default:true" json:"isActive"`
	Position  int            `gorm:"default:0" json:"position"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
