package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/sevamart/sevamart-backend/internal/domain/entity"
	"github.com/sevamart/sevamart-backend/internal/domain/repository"
	"github.com/sevamart/sevamart-backend/pkg/apperr"
)

// BookingService orchestrates the booking lifecycle: creation, vendor
// assignment, status updates and cancellation.
//
// Status transitions are deliberately permissive. The admin path writes
// any of the four states with no transition table, assignment force-sets
// in-progress, and cancellation is unconditional; only the vendor path is
// restricted to the set it may write. This mirrors the observed behavior
// of the system; tightening it would change what clients see.
type BookingService struct {
	Repo     repository.BookingRepository
	Services repository.ServiceRepository
	Users    repository.UserRepository
	Logger   *logrus.Logger
}

func NewBookingService(repo repository.BookingRepository, services repository.ServiceRepository, users repository.UserRepository, logger *logrus.Logger) *BookingService {
	return &BookingService{Repo: repo, Services: services, Users: users, Logger: logger}
}

type CreateBookingInput struct {
	Name      string
	Phone     string
	Pincode   string
	Location  string
	ServiceID string
	Lat       *float64
	Lng       *float64
}

// Create persists a new booking owned by customerID. The contact fields
// are snapshotted verbatim from the input, not looked up from the stored
// profile.
func (s *BookingService) Create(ctx context.Context, customerID string, in CreateBookingInput) (*entity.Booking, error) {
	if in.Name == "" || in.Phone == "" || in.Pincode == "" || in.Location == "" || in.ServiceID == "" {
		return nil, apperr.Validation("name, phone, pincode, location and serviceId are required")
	}

	svc, err := s.Services.GetByID(in.ServiceID)
	if err != nil || svc == nil {
		return nil, apperr.NotFound("service not found")
	}

	b := &entity.Booking{
		CustomerID:    customerID,
		CustomerName:  in.Name,
		CustomerPhone: in.Phone,
		Pincode:       in.Pincode,
		Location:      in.Location,
		Lat:           in.Lat,
		Lng:           in.Lng,
		ServiceID:     svc.ID,
		ServiceName:   svc.Name,
		Status:        entity.BookingPending,
	}
	if err := s.Repo.Create(b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BookingService) ListForCustomer(customerID string) ([]*entity.Booking, error) {
	return s.Repo.ListByCustomer(customerID)
}

func (s *BookingService) ListForVendor(vendorID string) ([]*entity.Booking, error) {
	return s.Repo.ListByVendor(vendorID)
}

func (s *BookingService) ListAll() ([]*entity.Booking, error) {
	return s.Repo.ListAll()
}

// Get returns the booking if the actor owns it or is an admin.
func (s *BookingService) Get(ctx context.Context, actor Actor, id string) (*entity.Booking, error) {
	b, err := s.Repo.GetByID(id)
	if err != nil || b == nil {
		return nil, apperr.NotFound("booking not found")
	}
	if !actor.CanAccess(b.CustomerID) {
		return nil, apperr.Forbidden("not authorized to view this booking")
	}
	return b, nil
}

// UpdateStatus is the admin status write: any valid state, no transition
// validation.
func (s *BookingService) UpdateStatus(ctx context.Context, id string, status entity.BookingStatus, note string) (*entity.Booking, error) {
	if !entity.ValidBookingStatus(status) {
		return nil, apperr.Validation("invalid status")
	}
	b, err := s.Repo.GetByID(id)
	if err != nil || b == nil {
		return nil, apperr.NotFound("booking not found")
	}
	b.Status = status
	if note != "" {
		b.StatusNote = note
	}
	if err := s.Repo.Update(b); err != nil {
		return nil, err
	}
	return b, nil
}

// AssignVendor sets the vendor and force-sets status to in-progress,
// overwriting whatever status the booking had.
func (s *BookingService) AssignVendor(ctx context.Context, id, vendorID string) (*entity.Booking, error) {
	b, err := s.Repo.GetByID(id)
	if err != nil || b == nil {
		return nil, apperr.NotFound("booking not found")
	}
	v, err := s.Users.GetByID(vendorID)
	if err != nil || v == nil || v.Role != entity.RoleVendor {
		return nil, apperr.NotFound("vendor not found")
	}
	b.VendorID = &v.ID
	b.Status = entity.BookingInProgress
	if err := s.Repo.Update(b); err != nil {
		return nil, err
	}
	return b, nil
}

// VendorUpdateStatus lets the assigned vendor move the booking between
// in-progress, completed and cancelled. Writing pending is rejected.
func (s *BookingService) VendorUpdateStatus(ctx context.Context, vendorID, id string, status entity.BookingStatus, note string) (*entity.Booking, error) {
	if !entity.VendorAllowedStatus(status) {
		return nil, apperr.Validation("status must be one of in-progress, completed, cancelled")
	}
	b, err := s.Repo.GetByID(id)
	if err != nil || b == nil {
		return nil, apperr.NotFound("booking not found")
	}
	if b.VendorID == nil || *b.VendorID != vendorID {
		return nil, apperr.Forbidden("booking is not assigned to you")
	}
	b.Status = status
	if note != "" {
		b.StatusNote = note
	}
	if err := s.Repo.Update(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Cancel sets status to cancelled unconditionally for the owner or an
// admin. There is no check that the current status permits cancellation.
func (s *BookingService) Cancel(ctx context.Context, actor Actor, id, reason string) (*entity.Booking, error) {
	b, err := s.Repo.GetByID(id)
	if err != nil || b == nil {
		return nil, apperr.NotFound("booking not found")
	}
	if !actor.CanAccess(b.CustomerID) {
		return nil, apperr.Forbidden("not authorized to cancel this booking")
	}
	b.Status = entity.BookingCancelled
	b.CancelReason = reason
	if err := s.Repo.Update(b); err != nil {
		return nil, err
	}
	return b, nil
}
