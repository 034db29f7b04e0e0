package application

import (
	"context"
	"testing"
	"time"

	"github.com/sevamart/sevamart-backend/internal/domain/entity"
	"github.com/sevamart/sevamart-backend/pkg/apperr"
)

func newSubscriptionService() (*SubscriptionService, *memSubscriptionRepo, *memPlanRepo) {
	subs := newMemSubscriptionRepo()
	plans := newMemPlanRepo()
	return NewSubscriptionService(subs, plans, nil, "", nil), subs, plans
}

func TestGetPlansSeedsDefaults(t *testing.T) {
	svc, _, plans := newSubscriptionService()

	got, err := svc.GetPlans(context.Background())
	if err != nil {
		t.Fatalf("get plans: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d plans, want 3", len(got))
	}
	if n, _ := plans.Count(); n != 3 {
		t.Errorf("catalog count = %d after seeding", n)
	}

	want := map[entity.PlanTier]struct {
		price float64
		days  int
	}{
		entity.PlanBasic:    {999, 30},
		entity.PlanStandard: {2499, 90},
		entity.PlanPremium:  {4999, 180},
	}
	for _, p := range got {
		w, ok := want[p.ID]
		if !ok {
			t.Errorf("unexpected plan %q", p.ID)
			continue
		}
		if p.Price != w.price || p.DurationDays != w.days {
			t.Errorf("plan %s = (%.0f, %d), want (%.0f, %d)", p.ID, p.Price, p.DurationDays, w.price, w.days)
		}
	}
}

func TestGetPlansDoesNotReseed(t *testing.T) {
	svc, _, plans := newSubscriptionService()
	ctx := context.Background()

	if _, err := svc.GetPlans(ctx); err != nil {
		t.Fatalf("first read: %v", err)
	}
	p, err := plans.Get(entity.PlanBasic)
	if err != nil {
		t.Fatalf("get basic: %v", err)
	}
	p.Price = 1299
	if err := plans.Update(p); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := svc.GetPlans(ctx)
	if err != nil {
		t.Fatalf("second read: %v", err)
	}
	for _, p := range got {
		if p.ID == entity.PlanBasic && p.Price != 1299 {
			t.Errorf("edited price overwritten: %.0f", p.Price)
		}
	}
}

func TestCreateSubscriptionWindowFromPlan(t *testing.T) {
	svc, _, _ := newSubscriptionService()
	ctx := context.Background()
	if _, err := svc.GetPlans(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}

	sub, err := svc.Create(ctx, "vendor-1", entity.PlanStandard, "vendor@upi")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sub.Status != entity.SubscriptionPending || sub.PaymentStatus != entity.PaymentPending {
		t.Errorf("new subscription = (%s, %s), want (pending, pending)", sub.Status, sub.PaymentStatus)
	}
	if sub.Price != 2499 {
		t.Errorf("price snapshot = %.0f", sub.Price)
	}
	gotDays := int(sub.EndDate.Sub(sub.StartDate).Hours() / 24)
	if gotDays != 90 {
		t.Errorf("window = %d days, want 90", gotDays)
	}
}

func TestCreateSubscriptionInvalidPlan(t *testing.T) {
	svc, _, _ := newSubscriptionService()
	ctx := context.Background()
	if _, err := svc.GetPlans(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := svc.Create(ctx, "vendor-1", "platinum", ""); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("unknown tier: got %v, want validation error", err)
	}
	if _, err := svc.Create(ctx, "vendor-1", "", ""); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("empty tier: got %v, want validation error", err)
	}
}

func TestOneActiveSubscriptionRule(t *testing.T) {
	svc, subs, _ := newSubscriptionService()
	ctx := context.Background()
	if _, err := svc.GetPlans(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}

	first, err := svc.Create(ctx, "vendor-1", entity.PlanBasic, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	// Pending predecessors do not block a second purchase.
	if _, err := svc.Create(ctx, "vendor-1", entity.PlanBasic, ""); err != nil {
		t.Fatalf("second pending create: %v", err)
	}

	if _, err := svc.VerifyPayment(ctx, first.ID, entity.PaymentPaid); err != nil {
		t.Fatalf("verify: %v", err)
	}
	_, err = svc.Create(ctx, "vendor-1", entity.PlanBasic, "")
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("create with active: got %v, want validation error", err)
	}

	// A cancelled subscription frees the slot.
	stored, err := subs.GetByID(first.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	stored.Status = entity.SubscriptionCancelled
	if err := subs.Update(stored); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := svc.Create(ctx, "vendor-1", entity.PlanPremium, ""); err != nil {
		t.Fatalf("create after cancel: %v", err)
	}
}

func TestSubmitPaymentOwnership(t *testing.T) {
	svc, _, _ := newSubscriptionService()
	ctx := context.Background()
	if _, err := svc.GetPlans(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	sub, err := svc.Create(ctx, "vendor-1", entity.PlanBasic, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.SubmitPayment(ctx, "vendor-2", sub.ID, "https://proof", nil)
	if apperr.KindOf(err) != apperr.KindForbidden {
		t.Fatalf("other vendor: got %v, want forbidden", err)
	}

	updated, err := svc.SubmitPayment(ctx, "vendor-1", sub.ID, "https://proof", nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if updated.PaymentProofURL != "https://proof" {
		t.Errorf("proof url = %q", updated.PaymentProofURL)
	}
	if updated.PaymentDate == nil {
		t.Error("payment date should default to now")
	}
	if updated.PaymentStatus != entity.PaymentPending {
		t.Errorf("payment status = %q, want pending for re-review", updated.PaymentStatus)
	}
}

func TestVerifyPaymentPaidActivates(t *testing.T) {
	svc, _, _ := newSubscriptionService()
	ctx := context.Background()
	if _, err := svc.GetPlans(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	sub, err := svc.Create(ctx, "vendor-1", entity.PlanBasic, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	failed, err := svc.VerifyPayment(ctx, sub.ID, entity.PaymentFailed)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if failed.Status != entity.SubscriptionPending {
		t.Errorf("failed verification must not change lifecycle status, got %q", failed.Status)
	}

	paid, err := svc.VerifyPayment(ctx, sub.ID, entity.PaymentPaid)
	if err != nil {
		t.Fatalf("verify paid: %v", err)
	}
	if paid.Status != entity.SubscriptionActive {
		t.Errorf("status = %q, want active", paid.Status)
	}

	if _, err := svc.VerifyPayment(ctx, sub.ID, "refunded"); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("bad payment status: got %v, want validation error", err)
	}
}

func TestUpdatePlanTierWhitelist(t *testing.T) {
	svc, _, _ := newSubscriptionService()
	ctx := context.Background()
	if _, err := svc.GetPlans(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}

	price := 1499.0
	p, err := svc.UpdatePlan(ctx, entity.PlanBasic, UpdatePlanInput{Price: &price, Offer: "launch"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if p.Price != 1499 || p.Offer != "launch" {
		t.Errorf("plan = (%.0f, %q)", p.Price, p.Offer)
	}

	if _, err := svc.UpdatePlan(ctx, "gold", UpdatePlanInput{}); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("unknown tier: got %v, want validation error", err)
	}
}

func TestExpiredIsComputedViewState(t *testing.T) {
	now := time.Now()
	active := &entity.Subscription{Status: entity.SubscriptionActive, EndDate: now.Add(-time.Hour)}
	if !active.Expired(now) {
		t.Error("active past end date should read as expired")
	}
	current := &entity.Subscription{Status: entity.SubscriptionActive, EndDate: now.Add(time.Hour)}
	if current.Expired(now) {
		t.Error("active within window is not expired")
	}
	pending := &entity.Subscription{Status: entity.SubscriptionPending, EndDate: now.Add(-time.Hour)}
	if pending.Expired(now) {
		t.Error("only active subscriptions expire")
	}
}
