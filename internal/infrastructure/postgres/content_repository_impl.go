package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sevamart/sevamart-backend/internal/domain/entity"
	"github.com/sevamart/sevamart-backend/internal/domain/repository"
)

type ContentRepository struct {
	pool *pgxpool.Pool
}

func NewContentRepository(pool *pgxpool.Pool) *ContentRepository {
	return &ContentRepository{pool: pool}
}

func scanContent(row pgx.Row) (*entity.ContentBlock, error) {
	b := &entity.ContentBlock{}
	if err := row.Scan(&b.ID, &b.Type, &b.Title, &b.Subtitle, &b.Body,
		&b.ImageURL, &b.IsActive, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *ContentRepository) Upsert(b *entity.ContentBlock) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO content_blocks (type, title, subtitle, body, image_url, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (type) DO UPDATE
		SET title = EXCLUDED.title, subtitle = EXCLUDED.subtitle, body = EXCLUDED.body,
			image_url = EXCLUDED.image_url, is_active = EXCLUDED.is_active,
			updated_at = now()
		RETURNING id, created_at, updated_at
	`, b.Type, b.Title, b.Subtitle, b.Body, b.ImageURL, b.IsActive)

	return row.Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *ContentRepository) GetByType(blockType string) (*entity.ContentBlock, error) {
	ctx := context.Background()
	return scanContent(r.pool.QueryRow(ctx, `
		SELECT id, type, title, subtitle, body, image_url, is_active, created_at, updated_at
		FROM content_blocks
		WHERE type = $1
	`, blockType))
}

func (r *ContentRepository) ListActive() ([]*entity.ContentBlock, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT id, type, title, subtitle, body, image_url, is_active, created_at, updated_at
		FROM content_blocks
		WHERE is_active
		ORDER BY type ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*entity.ContentBlock{}
	for rows.Next() {
		b, err := scanContent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

var _ repository.ContentRepository = (*ContentRepository)(nil)
