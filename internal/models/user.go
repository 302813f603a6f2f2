// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Plan tiers available to users.
const (
	PlanFree = "free"
	PlanPro  = "pro"
)

// Appearance holds the theme and branding configuration for a public page.
type Appearance struct {
	Theme           string `json:"theme"`
	ButtonStyle     string `json:"buttonStyle"`
	BackgroundColor string `json:"backgroundColor"`
	FontFamily      string `json:"fontFamily"`
	HideBranding    bool   `json:"hideBranding"`
}

// User represents an account in the Bunchly application. Username is claimed
// once and never released to another account (unique at the DB level, reserved
// words rejected at claim time).
type User struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Username   string         `gorm:"uniqueIndex;not null" json:"username"`
	Email      string         `gorm:"uniqueIndex;not null" json:"email"`
	Password   string         `gorm:"not null" json:"-"`
	Name       string         `json:"name"`
	Bio        string         `json:"bio"`
	Image      string         `json:"image"`
	Plan       string         `gorm:"default:free" json:"plan"`
	Appearance Appearance     `gorm:"embedded;embeddedPrefix:appearance_" json:"appearance"`
	IsBanned   bool           `gorm:"default:false" json:"isBanned"`
	IsAdmin    bool           `gorm:"default:false" json:"-"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
	Links      []Link         `gorm:"foreignKey:UserID" json:"links,omitempty"`
}

// PublicUser is the subset of User exposed on a public profile page.
type PublicUser struct {
	Username   string     `json:"username"`
	Name       string     `json:"name"`
	Bio        string     `json:"bio"`
	Image      string     `json:"image"`
	Plan       string     `json:"plan"`
	Appearance Appearance `json:"appearance"`
}

// Public projects the publicly visible fields of a user.
func (u *User) Public() PublicUser {
	return PublicUser{
		Username:   u.Username,
		Name:       u.Name,
		Bio:        u.Bio,
		Image:      u.Image,
		Plan:       u.Plan,
		Appearance: u.Appearance,
	}
}
