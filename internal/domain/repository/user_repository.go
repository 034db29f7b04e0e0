package repository

import "github.com/sevamart/sevamart-backend/internal/domain/entity"

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(u *entity.User) error
	// List returns all users newest first, optionally filtered by role
	// (empty role means no filter).
	List(role entity.Role) ([]*entity.User, error)
	// ListActiveIDs returns ids of active users with the given role, or all
	// active users when role is empty. Used for notification fan-out.
	ListActiveIDs(role entity.Role) ([]string, error)
}
