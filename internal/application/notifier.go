package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/sevamart/sevamart-backend/internal/domain/entity"
	"github.com/sevamart/sevamart-backend/internal/domain/repository"
	"github.com/sevamart/sevamart-backend/pkg/helpers"
	"github.com/sevamart/sevamart-backend/pkg/mailer"
)

// NotificationJob is the JSON payload put on the RabbitMQ queue for the
// fan-out worker. The worker bulk-inserts one notification row per
// recipient and optionally sends the attached email.
type NotificationJob struct {
	RecipientIDs []string         `json:"recipient_ids"`
	Title        string           `json:"title"`
	Message      string           `json:"message"`
	Type         string           `json:"type"`
	Link         string           `json:"link,omitempty"`
	Email        *mailer.EmailJob `json:"email,omitempty"`
}

// Notifier creates notification records as a side effect of other
// operations. Single-recipient sends are written synchronously;
// multi-recipient broadcasts go through the queue when a publisher is
// configured, falling back to a direct bulk insert otherwise.
// All sends are fire and forget: failures are logged, never surfaced.
type Notifier struct {
	Repo   repository.NotificationRepository
	Users  repository.UserRepository
	Pub    *helpers.RabbitPublisher
	Logger *logrus.Logger
}

func NewNotifier(repo repository.NotificationRepository, users repository.UserRepository, pub *helpers.RabbitPublisher, logger *logrus.Logger) *Notifier {
	return &Notifier{Repo: repo, Users: users, Pub: pub, Logger: logger}
}

func (n *Notifier) Send(ctx context.Context, userID, title, message, typ, link string) {
	if n == nil || n.Repo == nil {
		return
	}
	rec := &entity.Notification{UserID: userID, Title: title, Message: message, Type: typ, Link: link}
	if err := n.Repo.Create(rec); err != nil && n.Logger != nil {
		n.Logger.WithError(err).WithField("user_id", userID).Warn("notification create failed")
	}
}

// Broadcast fans the message out to every active user with the given role
// (empty role means all active users).
func (n *Notifier) Broadcast(ctx context.Context, role entity.Role, title, message, typ, link string, email *mailer.EmailJob) {
	if n == nil || n.Users == nil {
		return
	}
	ids, err := n.Users.ListActiveIDs(role)
	if err != nil {
		if n.Logger != nil {
			n.Logger.WithError(err).Warn("notification fan-out: listing recipients failed")
		}
		return
	}
	if len(ids) == 0 && email == nil {
		return
	}
	job := NotificationJob{RecipientIDs: ids, Title: title, Message: message, Type: typ, Link: link, Email: email}

	if n.Pub != nil {
		if err := n.Pub.PublishJSON(ctx, job); err == nil {
			return
		} else if n.Logger != nil {
			n.Logger.WithError(err).Warn("notification fan-out: publish failed, inserting directly")
		}
	}
	n.insertBatch(job)
}

func (n *Notifier) insertBatch(job NotificationJob) {
	if n.Repo == nil {
		return
	}
	batch := make([]*entity.Notification, 0, len(job.RecipientIDs))
	for _, id := range job.RecipientIDs {
		batch = append(batch, &entity.Notification{
			UserID:  id,
			Title:   job.Title,
			Message: job.Message,
			Type:    job.Type,
			Link:    job.Link,
		})
	}
	if err := n.Repo.BulkCreate(batch); err != nil && n.Logger != nil {
		n.Logger.WithError(err).WithField("recipients", len(batch)).Warn("notification bulk insert failed")
	}
}
