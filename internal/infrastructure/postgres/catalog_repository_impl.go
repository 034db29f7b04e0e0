package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sevamart/sevamart-backend/internal/domain/entity"
	"github.com/sevamart/sevamart-backend/internal/domain/repository"
)

type CategoryRepository struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

func scanCategory(row pgx.Row) (*entity.Category, error) {
	c := &entity.Category{}
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.IsActive,
		&c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *CategoryRepository) Create(c *entity.Category) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO categories (name, description, is_active)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, c.Name, c.Description, c.IsActive)

	if err := row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return err
	}
	return nil
}

func (r *CategoryRepository) GetByID(id string) (*entity.Category, error) {
	ctx := context.Background()
	return scanCategory(r.pool.QueryRow(ctx, `
		SELECT id, name, description, is_active, created_at, updated_at
		FROM categories
		WHERE id = $1
	`, id))
}

func (r *CategoryRepository) List(includeInactive bool) ([]*entity.Category, error) {
	ctx := context.Background()
	query := `
		SELECT id, name, description, is_active, created_at, updated_at
		FROM categories
	`
	if !includeInactive {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*entity.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CategoryRepository) Update(c *entity.Category) error {
	ctx := context.Background()
	c.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE categories
		SET name = $1, description = $2, is_active = $3, updated_at = $4
		WHERE id = $5
	`, c.Name, c.Description, c.IsActive, c.UpdatedAt, c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CategoryRepository) Delete(id string) error {
	ctx := context.Background()
	res, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.CategoryRepository = (*CategoryRepository)(nil)

type ServiceRepository struct {
	pool *pgxpool.Pool
}

func NewServiceRepository(pool *pgxpool.Pool) *ServiceRepository {
	return &ServiceRepository{pool: pool}
}

const serviceColumns = `s.id, s.name, s.description, s.category_id, COALESCE(c.name, ''),
	s.min_price, s.image_url, s.is_active, s.created_at, s.updated_at`

func scanService(row pgx.Row) (*entity.Service, error) {
	s := &entity.Service{}
	var categoryID *string
	if err := row.Scan(&s.ID, &s.Name, &s.Description, &categoryID, &s.CategoryName,
		&s.MinPrice, &s.ImageURL, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if categoryID != nil {
		s.CategoryID = *categoryID
	}
	return s, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (r *ServiceRepository) Create(s *entity.Service) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO services (name, description, category_id, min_price, image_url, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, s.Name, s.Description, nullable(s.CategoryID), s.MinPrice, s.ImageURL, s.IsActive)

	if err := row.Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return err
	}
	return nil
}

func (r *ServiceRepository) GetByID(id string) (*entity.Service, error) {
	ctx := context.Background()
	return scanService(r.pool.QueryRow(ctx, `
		SELECT `+serviceColumns+`
		FROM services s
		LEFT JOIN categories c ON c.id = s.category_id
		WHERE s.id = $1
	`, id))
}

func (r *ServiceRepository) List(includeInactive bool) ([]*entity.Service, error) {
	ctx := context.Background()
	query := `
		SELECT ` + serviceColumns + `
		FROM services s
		LEFT JOIN categories c ON c.id = s.category_id
	`
	if !includeInactive {
		query += ` WHERE s.is_active`
	}
	query += ` ORDER BY s.created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*entity.Service{}
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *ServiceRepository) Update(s *entity.Service) error {
	ctx := context.Background()
	s.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE services
		SET name = $1, description = $2, category_id = $3, min_price = $4,
			image_url = $5, is_active = $6, updated_at = $7
		WHERE id = $8
	`, s.Name, s.Description, nullable(s.CategoryID), s.MinPrice,
		s.ImageURL, s.IsActive, s.UpdatedAt, s.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ServiceRepository) Delete(id string) error {
	ctx := context.Background()
	res, err := r.pool.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.ServiceRepository = (*ServiceRepository)(nil)
