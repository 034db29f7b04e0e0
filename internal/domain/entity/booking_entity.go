package entity

import "time"

// BookingStatus is a free-form state field. Transitions are intentionally
// not guarded by a transition table; the vendor path alone restricts which
// values it may write.
type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingInProgress BookingStatus = "in-progress"
	BookingCompleted  BookingStatus = "completed"
	BookingCancelled  BookingStatus = "cancelled"
)

func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingPending, BookingInProgress, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// VendorAllowedStatus reports whether the assigned vendor may set s.
// Vendors cannot move a booking back to pending.
func VendorAllowedStatus(s BookingStatus) bool {
	switch s {
	case BookingInProgress, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// Booking is the central aggregate. The customer contact fields are a
// snapshot taken verbatim from the creation input, not a live reference to
// the User record: later profile edits do not rewrite past bookings.
type Booking struct {
	ID         string
	CustomerID string

	CustomerName  string
	CustomerPhone string
	Pincode       string
	Location      string
	Lat           *float64
	Lng           *float64

	ServiceID   string
	ServiceName string // snapshot at creation

	Status       BookingStatus
	VendorID     *string
	CancelReason string
	StatusNote   string

	CreatedAt time.Time
	UpdatedAt time.Time
}
