package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sevamart/sevamart-backend/internal/domain/entity"
	"github.com/sevamart/sevamart-backend/internal/domain/repository"
)

type NotificationRepository struct {
	pool *pgxpool.Pool
}

func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

func scanNotification(row pgx.Row) (*entity.Notification, error) {
	n := &entity.Notification{}
	if err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type,
		&n.IsRead, &n.Link, &n.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return n, nil
}

func (r *NotificationRepository) Create(n *entity.Notification) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO notifications (user_id, title, message, type, link)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, n.UserID, n.Title, n.Message, n.Type, n.Link)

	return row.Scan(&n.ID, &n.CreatedAt)
}

// BulkCreate inserts a fan-out batch with pgx's CopyFrom protocol.
func (r *NotificationRepository) BulkCreate(ns []*entity.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	ctx := context.Background()
	rows := make([][]any, 0, len(ns))
	for _, n := range ns {
		rows = append(rows, []any{n.UserID, n.Title, n.Message, n.Type, n.Link})
	}
	_, err := r.pool.CopyFrom(ctx,
		pgx.Identifier{"notifications"},
		[]string{"user_id", "title", "message", "type", "link"},
		pgx.CopyFromRows(rows),
	)
	return err
}

func (r *NotificationRepository) GetByID(id string) (*entity.Notification, error) {
	ctx := context.Background()
	return scanNotification(r.pool.QueryRow(ctx, `
		SELECT id, user_id, title, message, type, is_read, link, created_at
		FROM notifications
		WHERE id = $1
	`, id))
}

func (r *NotificationRepository) ListByUser(userID string) ([]*entity.Notification, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, title, message, type, is_read, link, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*entity.Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *NotificationRepository) CountUnread(userID string) (int, error) {
	ctx := context.Background()
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND NOT is_read
	`, userID).Scan(&n)
	return n, err
}

func (r *NotificationRepository) MarkRead(id string) error {
	ctx := context.Background()
	res, err := r.pool.Exec(ctx, `
		UPDATE notifications SET is_read = true WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(userID string) error {
	ctx := context.Background()
	_, err := r.pool.Exec(ctx, `
		UPDATE notifications SET is_read = true WHERE user_id = $1 AND NOT is_read
	`, userID)
	return err
}

func (r *NotificationRepository) Delete(id string) error {
	ctx := context.Background()
	res, err := r.pool.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.NotificationRepository = (*NotificationRepository)(nil)
