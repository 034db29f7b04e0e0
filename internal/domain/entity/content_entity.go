package entity

import "time"

// ContentBlock is a CMS-style key/value block keyed by type
// (hero, whyUs, ads). One row per type; writes upsert.
type ContentBlock struct {
	ID        string
	Type      string
	Title     string
	Subtitle  string
	Body      string
	ImageURL  string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
