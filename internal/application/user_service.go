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
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/sevamart/sevamart-backend/internal/domain/entity"
	"github.com/sevamart/sevamart-backend/internal/domain/repository"
	"github.com/sevamart/sevamart-backend/pkg/apperr"
	"github.com/sevamart/sevamart-backend/pkg/helpers"
	"github.com/sevamart/sevamart-backend/pkg/mailer"
)

// UserService implements registration, login and profile management.
type UserService struct {
	Repo      repository.UserRepository
	JWT       *helpers.JWTManager
	Redis     *redis.Client
	GCS       *storage.Client
	GCSBucket string
	Logger    *logrus.Logger
	Notifier  *Notifier
}

func NewUserService(repo repository.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, gcs *storage.Client, gcsBucket string, logger *logrus.Logger, notifier *Notifier) *UserService {
	return &UserService{
		Repo:      repo,
		JWT:       jwt,
		Redis:     rdb,
		GCS:       gcs,
		GCSBucket: gcsBucket,
		Logger:    logger,
		Notifier:  notifier,
	}
}

type TokenResult struct {
	Token  string
	Expiry time.Time
}

func sessionKey(userID string) string {
	return "user:session:" + userID
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     entity.Role
	Phone    string
	Address  string
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	role := in.Role
	if role == "" {
		role = entity.RoleCustomer
	}
	if !entity.ValidRole(role) {
		return nil, apperr.Validation("invalid role")
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if existing, err := s.Repo.GetByEmail(email); err == nil && existing != nil {
		return nil, apperr.Validation("email already registered")
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		Email:    email,
		Password: hash,
		Name:     in.Name,
		Role:     role,
		IsActive: true,
		Phone:    in.Phone,
		Address:  in.Address,
	}
	if err := s.Repo.Create(u); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, apperr.Validation("email already registered")
		}
		return nil, err
	}

	s.Notifier.Send(ctx, u.ID, "Welcome to SevaMart",
		"Your account has been created. Browse services and book in minutes.", "success", "")
	s.Notifier.Broadcast(ctx, entity.RoleAdmin, "New registration",
		"New "+string(u.Role)+" registered: "+u.Name+" ("+u.Email+")", "info", "/admin/users",
		&mailer.EmailJob{
			To:      u.Email,
			Subject: "Welcome to SevaMart",
			Text:    "Hi " + u.Name + ", your SevaMart account is ready.",
		})

	return u, nil
}

// Login authenticates and issues a bearer token. A blocked account is
// rejected here regardless of password correctness, and again on every
// authenticated request by the middleware.
func (s *UserService) Login(ctx context.Context, email, password string) (*entity.User, TokenResult, error) {
	u, err := s.Repo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil || u == nil {
		return nil, TokenResult{}, apperr.Authentication("invalid credentials")
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, TokenResult{}, apperr.Authentication("invalid credentials")
	}
	if !u.IsActive {
		return nil, TokenResult{}, apperr.Authentication("your account has been blocked")
	}

	token, exp, err := s.JWT.GenerateToken(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
		}
		return nil, TokenResult{}, err
	}

	if s.Redis != nil {
		fields := map[string]any{
			"user_id":   u.ID,
			"email":     u.Email,
			"name":      u.Name,
			"role":      string(u.Role),
			"logged_in": true,
			"sid":       uuid.NewString(),
		}
		key := sessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, 24*time.Hour)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return u, TokenResult{Token: token, Expiry: exp}, nil
}

func (s *UserService) GetProfile(userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil || u == nil {
		return nil, apperr.NotFound("user not found")
	}
	return u, nil
}

type UpdateProfileInput struct {
	Name            string
	Phone           string
	Address         string
	YearsExperience *int
	Expertise       []string
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil || u == nil {
		return nil, apperr.NotFound("user not found")
	}
	if in.Name != "" {
		u.Name = in.Name
	}
	if in.Phone != "" {
		u.Phone = in.Phone
	}
	if in.Address != "" {
		u.Address = in.Address
	}
	if u.Role == entity.RoleVendor {
		if in.YearsExperience != nil {
			u.YearsExperience = *in.YearsExperience
		}
		if in.Expertise != nil {
			u.Expertise = in.Expertise
		}
	}
	if err := s.Repo.Update(u); err != nil {
		return nil, err
	}

	s.Notifier.Send(ctx, u.ID, "Profile updated",
		"Your profile details were updated successfully.", "info", "")
	return u, nil
}

// UploadDocument stores a vendor identity document in GCS and records its
// URL on the profile.
func (s *UserService) UploadDocument(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil || u == nil {
		return "", apperr.NotFound("user not found")
	}
	if u.Role != entity.RoleVendor {
		return "", apperr.Forbidden("only vendors can upload identity documents")
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("gcs not configured")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("documents", userID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}
	u.DocumentURL = url
	if err := s.Repo.Update(u); err != nil {
		return "", err
	}
	return url, nil
}

func (s *UserService) ListUsers(role entity.Role) ([]*entity.User, error) {
	if role != "" && !entity.ValidRole(role) {
		return nil, apperr.Validation("invalid role filter")
	}
	return s.Repo.List(role)
}

// ToggleStatus flips a user's active flag. The auth middleware re-checks
// the flag per request, so outstanding tokens stop working immediately.
func (s *UserService) ToggleStatus(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil || u == nil {
		return nil, apperr.NotFound("user not found")
	}
	u.IsActive = !u.IsActive
	if err := s.Repo.Update(u); err != nil {
		return nil, err
	}

	if u.IsActive {
		s.Notifier.Send(ctx, u.ID, "Account unblocked",
			"Your account has been reactivated.", "success", "")
	} else {
		s.Notifier.Send(ctx, u.ID, "Account blocked",
			"Your account has been blocked. Contact support for help.", "warning", "")
	}
	s.Notifier.Broadcast(ctx, entity.RoleAdmin, "User status changed",
		u.Name+" ("+u.Email+") is now "+activeWord(u.IsActive), "info", "/admin/users", nil)

	if s.Redis != nil && !u.IsActive {
		// Drop the cached session so the block is visible everywhere at once.
		s.Redis.Del(ctx, sessionKey(u.ID))
	}
	return u, nil
}

func activeWord(active bool) string {
	if active {
		return "active"
	}
	return "blocked"
}
