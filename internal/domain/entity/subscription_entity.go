package entity

import "time"

// PlanTier identifies one of the three fixed subscription plans.
type PlanTier string

const (
	PlanBasic    PlanTier = "basic"
	PlanStandard PlanTier = "standard"
	PlanPremium  PlanTier = "premium"
)

func ValidPlanTier(t PlanTier) bool {
	switch t {
	case PlanBasic, PlanStandard, PlanPremium:
		return true
	}
	return false
}

type SubscriptionStatus string

const (
	SubscriptionPending   SubscriptionStatus = "pending"
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionExpired   SubscriptionStatus = "expired"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

// PaymentStatus tracks payment verification independently from the
// subscription lifecycle status.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed:
		return true
	}
	return false
}

// Subscription is a vendor's purchased plan instance. Price and features
// are snapshotted from the plan catalog at creation.
type Subscription struct {
	ID              string
	VendorID        string
	Plan            PlanTier
	Price           float64
	StartDate       time.Time
	EndDate         time.Time
	Status          SubscriptionStatus
	PaymentStatus   PaymentStatus
	UPIID           string
	PaymentProofURL string
	PaymentDate     *time.Time
	Features        []string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	VendorName  string // joined in admin reads
	VendorEmail string
}

// Expired reports whether the subscription window has passed. There is no
// background expiry job; read paths compute this view-state instead of
// rewriting the stored row.
func (s *Subscription) Expired(now time.Time) bool {
	return s.Status == SubscriptionActive && now.After(s.EndDate)
}

// SubscriptionPlan is an admin-editable catalog entry for one tier.
// The tier string is the natural key.
type SubscriptionPlan struct {
	ID           PlanTier
	Name         string
	Price        float64
	DurationDays int
	Features     []string
	Description  string
	Offer        string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
