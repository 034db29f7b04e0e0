package repository

import "github.com/sevamart/sevamart-backend/internal/domain/entity"

// BookingRepository defines database operations for bookings.
// Bookings are never deleted.
type BookingRepository interface {
	Create(b *entity.Booking) error
	GetByID(id string) (*entity.Booking, error)
	// ListByCustomer returns the customer's bookings newest first.
	ListByCustomer(customerID string) ([]*entity.Booking, error)
	// ListByVendor returns bookings assigned to the vendor, newest first.
	ListByVendor(vendorID string) ([]*entity.Booking, error)
	// ListAll returns every booking newest first. This read is lenient:
	// legacy rows with missing snapshot fields are coerced to defaults
	// instead of failing the whole listing.
	ListAll() ([]*entity.Booking, error)
	Update(b *entity.Booking) error
}
