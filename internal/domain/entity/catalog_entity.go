package entity

import "time"

// Category groups services. Services link to categories by id; renaming a
// category keeps the linkage intact.
type Category struct {
	ID          string
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Service is a bookable catalog entry.
type Service struct {
	ID           string
	Name         string
	Description  string
	CategoryID   string
	CategoryName string // joined in reads, not stored on the row
	MinPrice     float64
	ImageURL     string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
