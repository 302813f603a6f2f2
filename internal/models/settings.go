package models

import "time"

// SettingsID is the primary key of the single settings row.
const SettingsID = 1

// Settings is the global marketing/sale configuration. It is stored as a
// single row and mutated only through the settings store, which merges
// partial updates key by key.
type Settings struct {
	ID             uint      `gorm:"primaryKey" json:"-"`
	SaleActive     bool      `gorm:"default:false" json:"saleActive"`
	SaleDiscount   int       `gorm:"default:0" json:"saleDiscount"`
	SaleBannerText string    `json:"saleBannerText"`
	SaleBannerLink string    `json:"saleBannerLink"`
	UpdatedAt      time.Time `json:"updated_at"`
}
