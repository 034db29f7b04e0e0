package repository

import "github.com/sevamart/sevamart-backend/internal/domain/entity"

// SubscriptionRepository defines database operations for vendor
// subscriptions.
type SubscriptionRepository interface {
	Create(s *entity.Subscription) error
	GetByID(id string) (*entity.Subscription, error)
	ListByVendor(vendorID string) ([]*entity.Subscription, error)
	// ListAll returns every subscription newest first with vendor
	// name/email joined in.
	ListAll() ([]*entity.Subscription, error)
	Update(s *entity.Subscription) error
	// HasActive reports whether the vendor currently holds a
	// status=active subscription.
	HasActive(vendorID string) (bool, error)
}

// PlanRepository defines database operations for the subscription plan
// catalog (three fixed tiers).
type PlanRepository interface {
	List(includeInactive bool) ([]*entity.SubscriptionPlan, error)
	Get(id entity.PlanTier) (*entity.SubscriptionPlan, error)
	Update(p *entity.SubscriptionPlan) error
	Count() (int, error)
	// Seed inserts the default tiers; called once when the catalog is
	// found empty on first read.
	Seed(plans []*entity.SubscriptionPlan) error
}
