package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/sevamart/sevamart-backend/internal/domain/entity"
	"github.com/sevamart/sevamart-backend/internal/domain/repository"
	"github.com/sevamart/sevamart-backend/pkg/apperr"
)

// NotificationService is the consumption side of the notification
// side-channel: a user can only touch their own records.
type NotificationService struct {
	Repo     repository.NotificationRepository
	Notifier *Notifier
	Logger   *logrus.Logger
}

func NewNotificationService(repo repository.NotificationRepository, notifier *Notifier, logger *logrus.Logger) *NotificationService {
	return &NotificationService{Repo: repo, Notifier: notifier, Logger: logger}
}

func (s *NotificationService) List(userID string) ([]*entity.Notification, int, error) {
	ns, err := s.Repo.ListByUser(userID)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.Repo.CountUnread(userID)
	if err != nil {
		return nil, 0, err
	}
	return ns, unread, nil
}

func (s *NotificationService) owned(userID, id string) (*entity.Notification, error) {
	n, err := s.Repo.GetByID(id)
	if err != nil || n == nil {
		return nil, apperr.NotFound("notification not found")
	}
	if n.UserID != userID {
		return nil, apperr.Forbidden("notification does not belong to you")
	}
	return n, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id string) error {
	n, err := s.owned(userID, id)
	if err != nil {
		return err
	}
	return s.Repo.MarkRead(n.ID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	return s.Repo.MarkAllRead(userID)
}

func (s *NotificationService) Delete(ctx context.Context, userID, id string) error {
	n, err := s.owned(userID, id)
	if err != nil {
		return err
	}
	return s.Repo.Delete(n.ID)
}

type BroadcastInput struct {
	Title    string
	Message  string
	Type     string
	Link     string
	Audience string // all, customers, vendors, admins
}

// Broadcast fans an admin-authored message out to every active user of
// the chosen audience.
func (s *NotificationService) Broadcast(ctx context.Context, in BroadcastInput) error {
	if in.Title == "" || in.Message == "" {
		return apperr.Validation("title and message are required")
	}
	var role entity.Role
	switch in.Audience {
	case "", "all":
		role = ""
	case "customers":
		role = entity.RoleCustomer
	case "vendors":
		role = entity.RoleVendor
	case "admins":
		role = entity.RoleAdmin
	default:
		return apperr.Validation("audience must be one of all, customers, vendors, admins")
	}
	typ := in.Type
	if typ == "" {
		typ = "info"
	}
	s.Notifier.Broadcast(ctx, role, in.Title, in.Message, typ, in.Link, nil)
	return nil
}
