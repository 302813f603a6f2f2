package models

import "time"

// AnalyticsEvent is an append-only page view record. Device/OS/browser arrive
// pre-parsed with the event; geo fields are derived from the client IP at
// ingestion time and degrade to "Unknown" when lookup fails.
type AnalyticsEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Path      string    `gorm:"index;not null" json:"path"`
	VisitorID string    `gorm:"index;not null" json:"visitorId"`
	IP        string    `json:"-"`
	Country   string    `json:"country"`
	City      string    `json:"city"`
	Device    string    `json:"device"`
	OS        string    `json:"os"`
	Browser   string    `json:"browser"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// Overview holds the headline analytics counters for a period. ActiveUsers is
// the count of distinct visitors seen in the last five minutes regardless of
// the requested period.
type Overview struct {
	TotalViews     int64 `json:"totalViews"`
	UniqueVisitors int64 `json:"uniqueVisitors"`
	ActiveUsers    int64 `json:"activeUsers"`
}

// TimeSeriesBucket is one chronological bucket of views/visitors. Date is
// formatted per bucket unit: "2006-01-02 15:00" for hourly buckets,
// "2006-01-02" for daily buckets.
type TimeSeriesBucket struct {
	Date     string `json:"date"`
	Views    int64  `json:"views"`
	Visitors int64  `json:"visitors"`
}

// GeoStat is a per-country view count.
type GeoStat struct {
	Country string `json:"country"`
	City    string `json:"city,omitempty"`
	Count   int64  `json:"count"`
}

// CategoryCount is a generic count-by-category row (device, browser, OS).
type CategoryCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// DeviceBreakdown groups the three category breakdowns returned together.
type DeviceBreakdown struct {
	Devices  []CategoryCount `json:"devices"`
	Browsers []CategoryCount `json:"browsers"`
	OS       []CategoryCount `json:"os"`
}

// PageStat is one row of the top-pages listing.
type PageStat struct {
	Path     string `json:"path"`
	Views    int64  `json:"views"`
	Visitors int64  `json:"visitors"`
}

// Pagination describes the page window of a paginated response.
type Pagination struct {
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
	Total int64 `json:"total"`
}

// TopPages is the paginated top-pages result.
type TopPages struct {
	Data       []PageStat `json:"data"`
	Pagination Pagination `json:"pagination"`
}
