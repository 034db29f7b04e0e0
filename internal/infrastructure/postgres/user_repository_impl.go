package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sevamart/sevamart-backend/internal/domain/entity"
	"github.com/sevamart/sevamart-backend/internal/domain/repository"
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, email, password_hash, name, role, is_active, phone, address,
	years_experience, expertise, document_url, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Email, &u.Password, &u.Name, &u.Role, &u.IsActive,
		&u.Phone, &u.Address, &u.YearsExperience, &u.Expertise, &u.DocumentURL,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Create(u *entity.User) error {
	ctx := context.Background()
	if u.Expertise == nil {
		u.Expertise = []string{}
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, name, role, is_active, phone, address,
			years_experience, expertise, document_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`, u.Email, u.Password, u.Name, u.Role, u.IsActive, u.Phone, u.Address,
		u.YearsExperience, u.Expertise, u.DocumentURL)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(id string) (*entity.User, error) {
	ctx := context.Background()
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id))
}

func (r *UserRepository) GetByEmail(email string) (*entity.User, error) {
	ctx := context.Background()
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1
	`, email))
}

func (r *UserRepository) Update(u *entity.User) error {
	ctx := context.Background()
	u.UpdatedAt = time.Now()
	if u.Expertise == nil {
		u.Expertise = []string{}
	}

	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET email = $1, password_hash = $2, name = $3, is_active = $4, phone = $5,
			address = $6, years_experience = $7, expertise = $8, document_url = $9,
			updated_at = $10
		WHERE id = $11
	`, u.Email, u.Password, u.Name, u.IsActive, u.Phone, u.Address,
		u.YearsExperience, u.Expertise, u.DocumentURL, u.UpdatedAt, u.ID)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *UserRepository) List(role entity.Role) ([]*entity.User, error) {
	ctx := context.Background()
	query := `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY created_at DESC
	`
	args := []any{}
	if role != "" {
		query = `
			SELECT ` + userColumns + `
			FROM users
			WHERE role = $1
			ORDER BY created_at DESC
		`
		args = append(args, role)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*entity.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UserRepository) ListActiveIDs(role entity.Role) ([]string, error) {
	ctx := context.Background()
	query := `SELECT id FROM users WHERE is_active`
	args := []any{}
	if role != "" {
		query += ` AND role = $1`
		args = append(args, role)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

var _ repository.UserRepository = (*UserRepository)(nil)
