package application

import (
	"context"
	"testing"

	"github.com/sevamart/sevamart-backend/internal/domain/entity"
	"github.com/sevamart/sevamart-backend/pkg/apperr"
)

func newNotificationFixture() (*NotificationService, *memNotificationRepo, *memUserRepo) {
	notes := newMemNotificationRepo()
	users := newMemUserRepo()
	notifier := NewNotifier(notes, users, nil, nil)
	return NewNotificationService(notes, notifier, nil), notes, users
}

func seedNote(t *testing.T, notes *memNotificationRepo, userID string) *entity.Notification {
	t.Helper()
	n := &entity.Notification{UserID: userID, Title: "t", Message: "m", Type: "info"}
	if err := notes.Create(n); err != nil {
		t.Fatalf("seed notification: %v", err)
	}
	return n
}

func TestListReportsUnreadCount(t *testing.T) {
	svc, notes, _ := newNotificationFixture()

	seedNote(t, notes, "u1")
	second := seedNote(t, notes, "u1")
	seedNote(t, notes, "u2")
	if err := notes.MarkRead(second.ID); err != nil {
		t.Fatalf("mark read: %v", err)
	}

	ns, unread, err := svc.List("u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ns) != 2 {
		t.Errorf("got %d notifications, want 2", len(ns))
	}
	if unread != 1 {
		t.Errorf("unread = %d, want 1", unread)
	}
}

func TestMarkReadOwnershipScoped(t *testing.T) {
	svc, notes, _ := newNotificationFixture()
	ctx := context.Background()
	n := seedNote(t, notes, "u1")

	if err := svc.MarkRead(ctx, "u2", n.ID); apperr.KindOf(err) != apperr.KindForbidden {
		t.Fatalf("foreign mark read: got %v, want forbidden", err)
	}
	if err := svc.MarkRead(ctx, "u1", n.ID); err != nil {
		t.Fatalf("own mark read: %v", err)
	}
	if _, unread, _ := svc.List("u1"); unread != 0 {
		t.Errorf("unread = %d after mark read", unread)
	}
}

func TestDeleteOwnershipScoped(t *testing.T) {
	svc, notes, _ := newNotificationFixture()
	ctx := context.Background()
	n := seedNote(t, notes, "u1")

	if err := svc.Delete(ctx, "u2", n.ID); apperr.KindOf(err) != apperr.KindForbidden {
		t.Fatalf("foreign delete: got %v, want forbidden", err)
	}
	if err := svc.Delete(ctx, "u1", n.ID); err != nil {
		t.Fatalf("own delete: %v", err)
	}
	if err := svc.Delete(ctx, "u1", n.ID); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("double delete: got %v, want not found", err)
	}
}

func TestMarkAllRead(t *testing.T) {
	svc, notes, _ := newNotificationFixture()
	ctx := context.Background()
	seedNote(t, notes, "u1")
	seedNote(t, notes, "u1")
	other := seedNote(t, notes, "u2")

	if err := svc.MarkAllRead(ctx, "u1"); err != nil {
		t.Fatalf("mark all: %v", err)
	}
	if _, unread, _ := svc.List("u1"); unread != 0 {
		t.Errorf("u1 unread = %d", unread)
	}
	got, _ := notes.GetByID(other.ID)
	if got.IsRead {
		t.Error("other user's notification must stay unread")
	}
}

func TestBroadcastAudienceFilter(t *testing.T) {
	svc, notes, users := newNotificationFixture()
	ctx := context.Background()

	seed := []*entity.User{
		{Email: "c@b.com", Role: entity.RoleCustomer, IsActive: true},
		{Email: "v@b.com", Role: entity.RoleVendor, IsActive: true},
		{Email: "v2@b.com", Role: entity.RoleVendor, IsActive: false},
		{Email: "a@b.com", Role: entity.RoleAdmin, IsActive: true},
	}
	for _, u := range seed {
		if err := users.Create(u); err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}

	if err := svc.Broadcast(ctx, BroadcastInput{Title: "Maintenance", Message: "Sunday 2am", Audience: "vendors"}); err != nil {
		t.Fatalf("broadcast: %v", err)
	}
	// Only the active vendor receives it.
	total := 0
	for _, u := range seed {
		ns, _ := notes.ListByUser(u.ID)
		total += len(ns)
		if u.Role == entity.RoleVendor && u.IsActive && len(ns) != 1 {
			t.Errorf("active vendor got %d notifications", len(ns))
		}
	}
	if total != 1 {
		t.Errorf("total fan-out = %d, want 1", total)
	}

	if err := svc.Broadcast(ctx, BroadcastInput{Title: "t", Message: "m", Audience: "everyone"}); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("bad audience: got %v, want validation error", err)
	}
	if err := svc.Broadcast(ctx, BroadcastInput{Message: "m"}); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("missing title: got %v, want validation error", err)
	}
}

func TestBroadcastAllReachesEveryActiveUser(t *testing.T) {
	svc, notes, users := newNotificationFixture()
	ctx := context.Background()

	active := &entity.User{Email: "c@b.com", Role: entity.RoleCustomer, IsActive: true}
	blocked := &entity.User{Email: "x@b.com", Role: entity.RoleCustomer, IsActive: false}
	for _, u := range []*entity.User{active, blocked} {
		if err := users.Create(u); err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}

	if err := svc.Broadcast(ctx, BroadcastInput{Title: "t", Message: "m", Audience: "all"}); err != nil {
		t.Fatalf("broadcast: %v", err)
	}
	if ns, _ := notes.ListByUser(active.ID); len(ns) != 1 {
		t.Errorf("active user got %d", len(ns))
	}
	if ns, _ := notes.ListByUser(blocked.ID); len(ns) != 0 {
		t.Errorf("blocked user got %d", len(ns))
	}
}
