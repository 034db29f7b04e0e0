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

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

const bookingColumns = `id, customer_id, customer_name, customer_phone, pincode, location,
	lat, lng, service_id, service_name, status, vendor_id, cancel_reason, status_note,
	created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	b := &entity.Booking{}
	if err := row.Scan(&b.ID, &b.CustomerID, &b.CustomerName, &b.CustomerPhone,
		&b.Pincode, &b.Location, &b.Lat, &b.Lng, &b.ServiceID, &b.ServiceName,
		&b.Status, &b.VendorID, &b.CancelReason, &b.StatusNote,
		&b.CreatedAt, &b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *BookingRepository) Create(b *entity.Booking) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO bookings (customer_id, customer_name, customer_phone, pincode,
			location, lat, lng, service_id, service_name, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`, b.CustomerID, b.CustomerName, b.CustomerPhone, b.Pincode, b.Location,
		b.Lat, b.Lng, b.ServiceID, b.ServiceName, b.Status)

	return row.Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *BookingRepository) GetByID(id string) (*entity.Booking, error) {
	ctx := context.Background()
	return scanBooking(r.pool.QueryRow(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE id = $1
	`, id))
}

func (r *BookingRepository) listWhere(where string, args ...any) ([]*entity.Booking, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		`+where+`
		ORDER BY created_at DESC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*entity.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *BookingRepository) ListByCustomer(customerID string) ([]*entity.Booking, error) {
	return r.listWhere(`WHERE customer_id = $1`, customerID)
}

func (r *BookingRepository) ListByVendor(vendorID string) ([]*entity.Booking, error) {
	return r.listWhere(`WHERE vendor_id = $1`, vendorID)
}

// ListAll is deliberately lenient: rows predating the current snapshot
// shape have NULL contact fields coerced to 'N/A' and a NULL status
// coerced to pending, so one legacy row cannot fail the whole listing.
func (r *BookingRepository) ListAll() ([]*entity.Booking, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT id, customer_id,
			COALESCE(NULLIF(customer_name, ''), 'N/A'),
			COALESCE(NULLIF(customer_phone, ''), 'N/A'),
			COALESCE(NULLIF(pincode, ''), 'N/A'),
			COALESCE(NULLIF(location, ''), 'N/A'),
			lat, lng, service_id,
			COALESCE(NULLIF(service_name, ''), 'N/A'),
			COALESCE(status, 'pending'),
			vendor_id, cancel_reason, status_note, created_at, updated_at
		FROM bookings
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*entity.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *BookingRepository) Update(b *entity.Booking) error {
	ctx := context.Background()
	b.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE bookings
		SET status = $1, vendor_id = $2, cancel_reason = $3, status_note = $4,
			updated_at = $5
		WHERE id = $6
	`, b.Status, b.VendorID, b.CancelReason, b.StatusNote, b.UpdatedAt, b.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.BookingRepository = (*BookingRepository)(nil)
