package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sevamart/sevamart-backend/internal/domain/entity"
	"github.com/sevamart/sevamart-backend/internal/domain/repository"
	handlers "github.com/sevamart/sevamart-backend/internal/interface/http"
	"github.com/sevamart/sevamart-backend/internal/interface/middleware"
	"github.com/sevamart/sevamart-backend/pkg/helpers"
)

// BookingModule wires booking routes. Everything requires auth; the
// admin and vendor listings and mutations are further role-gated.

type BookingModule struct {
	Handler *handlers.BookingHandler
	Users   repository.UserRepository
	JWT     *helpers.JWTManager
}

func NewBookingModule(h *handlers.BookingHandler, users repository.UserRepository, jwt *helpers.JWTManager) *BookingModule {
	return &BookingModule{Handler: h, Users: users, JWT: jwt}
}

func (m *BookingModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/bookings")
	auth.Use(middleware.Auth(m.Users, m.JWT))
	auth.Use(limiter(120, time.Minute, middleware.KeyByUserID()))

	adminOnly := middleware.RequireRole(entity.RoleAdmin)
	vendorOnly := middleware.RequireRole(entity.RoleVendor)

	auth.POST("", limiter(30, time.Minute, middleware.KeyByUserID()), m.Handler.Create)
	auth.GET("", m.Handler.ListOwn)
	auth.GET("/admin", adminOnly, m.Handler.ListAll)
	auth.GET("/vendor", vendorOnly, m.Handler.ListAssigned)
	auth.GET("/:id", m.Handler.Get)
	auth.PUT("/:id/status", adminOnly, m.Handler.UpdateStatus)
	auth.PUT("/:id/assign", adminOnly, m.Handler.AssignVendor)
	auth.PUT("/:id/vendor-status", vendorOnly, m.Handler.VendorUpdateStatus)
	auth.PUT("/:id/cancel", m.Handler.Cancel)
}
