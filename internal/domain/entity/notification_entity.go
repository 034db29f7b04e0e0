package entity

import "time"

// Notification is a fire-and-forget per-recipient message record. Only the
// recipient may read or mutate it.
type Notification struct {
	ID        string
	UserID    string
	Title     string
	Message   string
	Type      string // info, success, warning, error
	IsRead    bool
	Link      string
	CreatedAt time.Time
}
