package models

import "time"

// Report reasons accepted from visitors. Validated as a closed set server-side.
const (
	ReportReasonSpam          = "spam"
	ReportReasonInappropriate = "inappropriate"
	ReportReasonHarassment    = "harassment"
	ReportReasonImpersonation = "impersonation"
	ReportReasonOther         = "other"
)

// Report lifecycle states.
const (
	ReportStatusOpen      = "open"
	ReportStatusResolved  = "resolved"
	ReportStatusDismissed = "dismissed"
)

// Report is a visitor-submitted complaint about a public profile.
type Report struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Username      string    `gorm:"index;not null" json:"username"`
	Reason        string    `gorm:"not null" json:"reason"`
	Details       string    `json:"details"`
	ReporterEmail string    `json:"reporterEmail"`
	Status        string    `gorm:"default:open;index" json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
