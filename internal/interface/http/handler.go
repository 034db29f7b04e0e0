package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/sevamart/sevamart-backend/internal/application"
	"github.com/sevamart/sevamart-backend/internal/domain/entity"
	"github.com/sevamart/sevamart-backend/internal/interface/middleware"
	"github.com/sevamart/sevamart-backend/pkg/apperr"
	"github.com/sevamart/sevamart-backend/pkg/response"
)

// fail maps a workflow error onto the response envelope using the error
// taxonomy: validation 400, authentication 401, forbidden 403,
// not found 404, conflict 409, everything else 500.
func fail(c *gin.Context, err error) {
	response.Error[any](c, apperr.Status(err), apperr.Message(err), nil)
}

// actor builds the request actor from the context values set by the auth
// middleware.
func actor(c *gin.Context) application.Actor {
	return application.Actor{
		ID:   c.GetString(middleware.CtxUserIDKey),
		Role: entity.Role(c.GetString(middleware.CtxRoleKey)),
	}
}

func userJSON(u *entity.User) gin.H {
	out := gin.H{
		"id":         u.ID,
		"email":      u.Email,
		"name":       u.Name,
		"role":       u.Role,
		"is_active":  u.IsActive,
		"phone":      u.Phone,
		"address":    u.Address,
		"created_at": u.CreatedAt,
		"updated_at": u.UpdatedAt,
	}
	if u.Role == entity.RoleVendor {
		out["years_experience"] = u.YearsExperience
		out["expertise"] = u.Expertise
		out["document_url"] = u.DocumentURL
	}
	return out
}

func bookingJSON(b *entity.Booking) gin.H {
	return gin.H{
		"id":             b.ID,
		"customer_id":    b.CustomerID,
		"customer_name":  b.CustomerName,
		"customer_phone": b.CustomerPhone,
		"pincode":        b.Pincode,
		"location":       b.Location,
		"lat":            b.Lat,
		"lng":            b.Lng,
		"service_id":     b.ServiceID,
		"service_name":   b.ServiceName,
		"status":         b.Status,
		"vendor_id":      b.VendorID,
		"cancel_reason":  b.CancelReason,
		"status_note":    b.StatusNote,
		"created_at":     b.CreatedAt,
		"updated_at":     b.UpdatedAt,
	}
}

func bookingsJSON(bs []*entity.Booking) []gin.H {
	out := make([]gin.H, 0, len(bs))
	for _, b := range bs {
		out = append(out, bookingJSON(b))
	}
	return out
}
