package repository

import "github.com/sevamart/sevamart-backend/internal/domain/entity"

// NotificationRepository defines database operations for per-user
// notification records.
type NotificationRepository interface {
	Create(n *entity.Notification) error
	// BulkCreate persists a fan-out batch in one round trip.
	BulkCreate(ns []*entity.Notification) error
	GetByID(id string) (*entity.Notification, error)
	ListByUser(userID string) ([]*entity.Notification, error)
	CountUnread(userID string) (int, error)
	MarkRead(id string) error
	MarkAllRead(userID string) error
	Delete(id string) error
}
