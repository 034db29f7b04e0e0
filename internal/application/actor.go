package application

import "github.com/sevamart/sevamart-backend/internal/domain/entity"

// Actor is the authenticated caller, resolved per request by the auth
// middleware and passed explicitly into workflow operations.
type Actor struct {
	ID   string
	Role entity.Role
}

func (a Actor) IsAdmin() bool { return a.Role == entity.RoleAdmin }

// CanAccess reports whether the actor may touch a resource owned by
// ownerID: the owner themselves or any admin.
func (a Actor) CanAccess(ownerID string) bool {
	return a.IsAdmin() || a.ID == ownerID
}
