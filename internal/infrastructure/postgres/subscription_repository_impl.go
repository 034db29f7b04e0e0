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

type SubscriptionRepository struct {
	pool *pgxpool.Pool
}

func NewSubscriptionRepository(pool *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{pool: pool}
}

const subscriptionColumns = `id, vendor_id, plan, price, start_date, end_date, status,
	payment_status, upi_id, payment_proof_url, payment_date, features, created_at, updated_at`

func scanSubscription(row pgx.Row) (*entity.Subscription, error) {
	s := &entity.Subscription{}
	if err := row.Scan(&s.ID, &s.VendorID, &s.Plan, &s.Price, &s.StartDate, &s.EndDate,
		&s.Status, &s.PaymentStatus, &s.UPIID, &s.PaymentProofURL, &s.PaymentDate,
		&s.Features, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

// Create relies on the partial unique index uniq_active_subscription as a
// backstop for the one-active-subscription rule; a violating insert comes
// back as ErrConflict.
func (r *SubscriptionRepository) Create(s *entity.Subscription) error {
	ctx := context.Background()
	if s.Features == nil {
		s.Features = []string{}
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO subscriptions (vendor_id, plan, price, start_date, end_date,
			status, payment_status, upi_id, features)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, s.VendorID, s.Plan, s.Price, s.StartDate, s.EndDate,
		s.Status, s.PaymentStatus, s.UPIID, s.Features)

	if err := row.Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return err
	}
	return nil
}

func (r *SubscriptionRepository) GetByID(id string) (*entity.Subscription, error) {
	ctx := context.Background()
	return scanSubscription(r.pool.QueryRow(ctx, `
		SELECT `+subscriptionColumns+`
		FROM subscriptions
		WHERE id = $1
	`, id))
}

func (r *SubscriptionRepository) ListByVendor(vendorID string) ([]*entity.Subscription, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+subscriptionColumns+`
		FROM subscriptions
		WHERE vendor_id = $1
		ORDER BY created_at DESC
	`, vendorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*entity.Subscription{}
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SubscriptionRepository) ListAll() ([]*entity.Subscription, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT s.id, s.vendor_id, s.plan, s.price, s.start_date, s.end_date, s.status,
			s.payment_status, s.upi_id, s.payment_proof_url, s.payment_date, s.features,
			s.created_at, s.updated_at, u.name, u.email
		FROM subscriptions s
		JOIN users u ON u.id = s.vendor_id
		ORDER BY s.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*entity.Subscription{}
	for rows.Next() {
		s := &entity.Subscription{}
		if err := rows.Scan(&s.ID, &s.VendorID, &s.Plan, &s.Price, &s.StartDate,
			&s.EndDate, &s.Status, &s.PaymentStatus, &s.UPIID, &s.PaymentProofURL,
			&s.PaymentDate, &s.Features, &s.CreatedAt, &s.UpdatedAt,
			&s.VendorName, &s.VendorEmail); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SubscriptionRepository) Update(s *entity.Subscription) error {
	ctx := context.Background()
	s.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE subscriptions
		SET status = $1, payment_status = $2, payment_proof_url = $3,
			payment_date = $4, updated_at = $5
		WHERE id = $6
	`, s.Status, s.PaymentStatus, s.PaymentProofURL, s.PaymentDate, s.UpdatedAt, s.ID)
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

func (r *SubscriptionRepository) HasActive(vendorID string) (bool, error) {
	ctx := context.Background()
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM subscriptions WHERE vendor_id = $1 AND status = 'active'
		)
	`, vendorID).Scan(&exists)
	return exists, err
}

var _ repository.SubscriptionRepository = (*SubscriptionRepository)(nil)

type PlanRepository struct {
	pool *pgxpool.Pool
}

func NewPlanRepository(pool *pgxpool.Pool) *PlanRepository {
	return &PlanRepository{pool: pool}
}

const planColumns = `id, name, price, duration_days, features, description, offer,
	is_active, created_at, updated_at`

func scanPlan(row pgx.Row) (*entity.SubscriptionPlan, error) {
	p := &entity.SubscriptionPlan{}
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.DurationDays, &p.Features,
		&p.Description, &p.Offer, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *PlanRepository) List(includeInactive bool) ([]*entity.SubscriptionPlan, error) {
	ctx := context.Background()
	query := `SELECT ` + planColumns + ` FROM subscription_plans`
	if !includeInactive {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY price ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*entity.SubscriptionPlan{}
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PlanRepository) Get(id entity.PlanTier) (*entity.SubscriptionPlan, error) {
	ctx := context.Background()
	return scanPlan(r.pool.QueryRow(ctx, `
		SELECT `+planColumns+`
		FROM subscription_plans
		WHERE id = $1
	`, id))
}

func (r *PlanRepository) Update(p *entity.SubscriptionPlan) error {
	ctx := context.Background()
	p.UpdatedAt = time.Now()
	if p.Features == nil {
		p.Features = []string{}
	}

	res, err := r.pool.Exec(ctx, `
		UPDATE subscription_plans
		SET name = $1, price = $2, duration_days = $3, features = $4,
			description = $5, offer = $6, is_active = $7, updated_at = $8
		WHERE id = $9
	`, p.Name, p.Price, p.DurationDays, p.Features, p.Description, p.Offer,
		p.IsActive, p.UpdatedAt, p.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PlanRepository) Count() (int, error) {
	ctx := context.Background()
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM subscription_plans`).Scan(&n)
	return n, err
}

func (r *PlanRepository) Seed(plans []*entity.SubscriptionPlan) error {
	ctx := context.Background()
	for _, p := range plans {
		if p.Features == nil {
			p.Features = []string{}
		}
		_, err := r.pool.Exec(ctx, `
			INSERT INTO subscription_plans (id, name, price, duration_days, features,
				description, offer, is_active)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO NOTHING
		`, p.ID, p.Name, p.Price, p.DurationDays, p.Features,
			p.Description, p.Offer, p.IsActive)
		if err != nil {
			return err
		}
	}
	return nil
}

var _ repository.PlanRepository = (*PlanRepository)(nil)
