package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sevamart/sevamart-backend/internal/domain/entity"
	"github.com/sevamart/sevamart-backend/internal/domain/repository"
	"github.com/sevamart/sevamart-backend/pkg/apperr"
	"github.com/sevamart/sevamart-backend/pkg/helpers"
)

// SubscriptionService implements the vendor subscription lifecycle:
// plan selection, payment-proof submission, admin verification.
type SubscriptionService struct {
	Repo      repository.SubscriptionRepository
	Plans     repository.PlanRepository
	GCS       *storage.Client
	GCSBucket string
	Logger    *logrus.Logger
}

func NewSubscriptionService(repo repository.SubscriptionRepository, plans repository.PlanRepository, gcs *storage.Client, gcsBucket string, logger *logrus.Logger) *SubscriptionService {
	return &SubscriptionService{Repo: repo, Plans: plans, GCS: gcs, GCSBucket: gcsBucket, Logger: logger}
}

// DefaultPlans returns the three fixed tiers seeded when the plan catalog
// is empty.
func DefaultPlans() []*entity.SubscriptionPlan {
	return []*entity.SubscriptionPlan{
		{
			ID: entity.PlanBasic, Name: "Basic", Price: 999, DurationDays: 30,
			Features:    []string{"Listed in search results", "Up to 10 bookings per month", "Email support"},
			Description: "For vendors getting started",
			IsActive:    true,
		},
		{
			ID: entity.PlanStandard, Name: "Standard", Price: 2499, DurationDays: 90,
			Features:    []string{"Priority listing", "Unlimited bookings", "Phone support"},
			Description: "For growing vendors",
			IsActive:    true,
		},
		{
			ID: entity.PlanPremium, Name: "Premium", Price: 4999, DurationDays: 180,
			Features:    []string{"Featured placement", "Unlimited bookings", "Dedicated support", "Analytics dashboard"},
			Description: "For established vendors",
			IsActive:    true,
		},
	}
}

// GetPlans returns the active plan tiers, seeding the defaults first if
// the catalog has never been populated.
func (s *SubscriptionService) GetPlans(ctx context.Context) ([]*entity.SubscriptionPlan, error) {
	n, err := s.Plans.Count()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		if err := s.Plans.Seed(DefaultPlans()); err != nil {
			return nil, err
		}
	}
	return s.Plans.List(false)
}

// Create opens a pending subscription for the vendor. The one-active-
// subscription rule is checked here and backed by a partial unique index,
// so two concurrent creates cannot both become active.
func (s *SubscriptionService) Create(ctx context.Context, vendorID string, tier entity.PlanTier, upiID string) (*entity.Subscription, error) {
	if tier == "" {
		return nil, apperr.Validation("plan is required")
	}
	plan, err := s.Plans.Get(tier)
	if err != nil || plan == nil || !plan.IsActive {
		return nil, apperr.Validation("invalid or inactive plan")
	}

	active, err := s.Repo.HasActive(vendorID)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, apperr.Validation("you already have an active subscription")
	}

	now := time.Now()
	sub := &entity.Subscription{
		VendorID:      vendorID,
		Plan:          plan.ID,
		Price:         plan.Price,
		StartDate:     now,
		EndDate:       now.AddDate(0, 0, plan.DurationDays),
		Status:        entity.SubscriptionPending,
		PaymentStatus: entity.PaymentPending,
		UPIID:         upiID,
		Features:      plan.Features,
	}
	if err := s.Repo.Create(sub); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, apperr.Validation("you already have an active subscription")
		}
		return nil, err
	}
	return sub, nil
}

func (s *SubscriptionService) ListForVendor(vendorID string) ([]*entity.Subscription, error) {
	return s.Repo.ListByVendor(vendorID)
}

func (s *SubscriptionService) ListAll() ([]*entity.Subscription, error) {
	return s.Repo.ListAll()
}

// SubmitPayment attaches a payment proof to the vendor's own
// subscription and resets payment status to pending for re-review.
func (s *SubscriptionService) SubmitPayment(ctx context.Context, vendorID, id, proofURL string, paymentDate *time.Time) (*entity.Subscription, error) {
	sub, err := s.Repo.GetByID(id)
	if err != nil || sub == nil {
		return nil, apperr.NotFound("subscription not found")
	}
	if sub.VendorID != vendorID {
		return nil, apperr.Forbidden("subscription does not belong to you")
	}
	sub.PaymentProofURL = proofURL
	if paymentDate != nil {
		sub.PaymentDate = paymentDate
	} else {
		now := time.Now()
		sub.PaymentDate = &now
	}
	sub.PaymentStatus = entity.PaymentPending
	if err := s.Repo.Update(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// UploadPaymentProof stores a proof image in GCS and attaches it.
func (s *SubscriptionService) UploadPaymentProof(ctx context.Context, vendorID, id string, r io.Reader, filename, contentType string) (*entity.Subscription, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return nil, errors.New("gcs not configured")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("payment-proofs", vendorID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return nil, err
	}
	return s.SubmitPayment(ctx, vendorID, id, url, nil)
}

// VerifyPayment records the admin's payment decision. Marking paid
// activates the subscription; any other value leaves the lifecycle
// status untouched.
func (s *SubscriptionService) VerifyPayment(ctx context.Context, id string, status entity.PaymentStatus) (*entity.Subscription, error) {
	if !entity.ValidPaymentStatus(status) {
		return nil, apperr.Validation("invalid payment status")
	}
	sub, err := s.Repo.GetByID(id)
	if err != nil || sub == nil {
		return nil, apperr.NotFound("subscription not found")
	}
	sub.PaymentStatus = status
	if status == entity.PaymentPaid {
		sub.Status = entity.SubscriptionActive
	}
	if err := s.Repo.Update(sub); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, apperr.Validation("vendor already has an active subscription")
		}
		return nil, err
	}
	return sub, nil
}

type UpdatePlanInput struct {
	Name         string
	Price        *float64
	DurationDays *int
	Features     []string
	Description  string
	Offer        string
	IsActive     *bool
}

// UpdatePlan mutates one of the three catalog tiers.
func (s *SubscriptionService) UpdatePlan(ctx context.Context, id entity.PlanTier, in UpdatePlanInput) (*entity.SubscriptionPlan, error) {
	if !entity.ValidPlanTier(id) {
		return nil, apperr.Validation("plan must be one of basic, standard, premium")
	}
	p, err := s.Plans.Get(id)
	if err != nil || p == nil {
		return nil, apperr.NotFound("plan not found")
	}
	if in.Name != "" {
		p.Name = in.Name
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.DurationDays != nil {
		p.DurationDays = *in.DurationDays
	}
	if in.Features != nil {
		p.Features = in.Features
	}
	if in.Description != "" {
		p.Description = in.Description
	}
	if in.Offer != "" {
		p.Offer = in.Offer
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if err := s.Plans.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}
