package application

import (
	"context"
	"testing"
	"time"

	"github.com/sevamart/sevamart-backend/internal/domain/entity"
	"github.com/sevamart/sevamart-backend/pkg/apperr"
	"github.com/sevamart/sevamart-backend/pkg/helpers"
)

func newUserService(users *memUserRepo) *UserService {
	notes := newMemNotificationRepo()
	notifier := NewNotifier(notes, users, nil, nil)
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	return NewUserService(users, jwt, nil, nil, "", nil, notifier)
}

func TestRegisterDefaultsToCustomer(t *testing.T) {
	users := newMemUserRepo()
	svc := newUserService(users)

	u, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Asha",
		Email:    "Asha@Example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Role != entity.RoleCustomer {
		t.Errorf("role = %q, want customer", u.Role)
	}
	if !u.IsActive {
		t.Error("new account should be active")
	}
	if u.Email != "asha@example.com" {
		t.Errorf("email not normalized: %q", u.Email)
	}
	if u.Password == "secret123" {
		t.Error("password stored in plaintext")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	users := newMemUserRepo()
	svc := newUserService(users)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@b.com", Password: "secret123"}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(ctx, RegisterInput{Name: "B", Email: "A@B.com", Password: "secret456"})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("duplicate email: got %v, want validation error", err)
	}
}

func TestRegisterRejectsInvalidRole(t *testing.T) {
	svc := newUserService(newMemUserRepo())
	_, err := svc.Register(context.Background(), RegisterInput{
		Name: "X", Email: "x@y.com", Password: "secret123", Role: "superuser",
	})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("invalid role: got %v, want validation error", err)
	}
}

func TestLoginIssuesToken(t *testing.T) {
	users := newMemUserRepo()
	svc := newUserService(users)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@b.com", Password: "secret123"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	u, tok, err := svc.Login(ctx, "a@b.com", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if tok.Token == "" {
		t.Error("empty token")
	}
	claims, err := svc.JWT.ParseToken(tok.Token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != u.ID {
		t.Errorf("token uid = %q, want %q", claims.UserID, u.ID)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	users := newMemUserRepo()
	svc := newUserService(users)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@b.com", Password: "secret123"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, _, err := svc.Login(ctx, "a@b.com", "wrong")
	if apperr.KindOf(err) != apperr.KindAuthentication {
		t.Fatalf("wrong password: got %v, want authentication error", err)
	}
}

func TestLoginBlockedAccount(t *testing.T) {
	users := newMemUserRepo()
	svc := newUserService(users)
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@b.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.ToggleStatus(ctx, u.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	_, _, err = svc.Login(ctx, "a@b.com", "secret123")
	if apperr.KindOf(err) != apperr.KindAuthentication {
		t.Fatalf("blocked login: got %v, want authentication error", err)
	}
}

func TestToggleStatusFlips(t *testing.T) {
	users := newMemUserRepo()
	svc := newUserService(users)
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@b.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	blocked, err := svc.ToggleStatus(ctx, u.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if blocked.IsActive {
		t.Error("expected blocked after first toggle")
	}
	unblocked, err := svc.ToggleStatus(ctx, u.ID)
	if err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if !unblocked.IsActive {
		t.Error("expected active after second toggle")
	}
}

func TestUpdateProfileIgnoresVendorFieldsForCustomers(t *testing.T) {
	users := newMemUserRepo()
	svc := newUserService(users)
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@b.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	years := 5
	updated, err := svc.UpdateProfile(ctx, u.ID, UpdateProfileInput{
		Name:            "Renamed",
		YearsExperience: &years,
		Expertise:       []string{"plumbing"},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Renamed" {
		t.Errorf("name = %q", updated.Name)
	}
	if updated.YearsExperience != 0 || len(updated.Expertise) != 0 {
		t.Error("vendor fields must not be writable for customers")
	}
}

func TestUpdateProfileVendorFields(t *testing.T) {
	users := newMemUserRepo()
	svc := newUserService(users)
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{
		Name: "V", Email: "v@b.com", Password: "secret123", Role: entity.RoleVendor,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	years := 7
	updated, err := svc.UpdateProfile(ctx, u.ID, UpdateProfileInput{
		YearsExperience: &years,
		Expertise:       []string{"electrical", "plumbing"},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.YearsExperience != 7 {
		t.Errorf("years = %d, want 7", updated.YearsExperience)
	}
	if len(updated.Expertise) != 2 {
		t.Errorf("expertise = %v", updated.Expertise)
	}
}

func TestListUsersFiltersByRole(t *testing.T) {
	users := newMemUserRepo()
	svc := newUserService(users)
	ctx := context.Background()

	for _, in := range []RegisterInput{
		{Name: "C", Email: "c@b.com", Password: "secret123"},
		{Name: "V", Email: "v@b.com", Password: "secret123", Role: entity.RoleVendor},
		{Name: "A", Email: "a@b.com", Password: "secret123", Role: entity.RoleAdmin},
	} {
		if _, err := svc.Register(ctx, in); err != nil {
			t.Fatalf("register %s: %v", in.Email, err)
		}
	}

	vendors, err := svc.ListUsers(entity.RoleVendor)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(vendors) != 1 || vendors[0].Role != entity.RoleVendor {
		t.Errorf("vendor filter returned %d users", len(vendors))
	}

	if _, err := svc.ListUsers("ghost"); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("bad role filter: got %v, want validation error", err)
	}

	all, err := svc.ListUsers("")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("list all returned %d users, want 3", len(all))
	}
}

func TestRegisterWritesWelcomeNotification(t *testing.T) {
	users := newMemUserRepo()
	notes := newMemNotificationRepo()
	notifier := NewNotifier(notes, users, nil, nil)
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	svc := NewUserService(users, jwt, nil, nil, "", nil, notifier)

	u, err := svc.Register(context.Background(), RegisterInput{Name: "A", Email: "a@b.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	ns, err := notes.ListByUser(u.ID)
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	if len(ns) != 1 {
		t.Fatalf("got %d notifications, want 1 welcome", len(ns))
	}
}
