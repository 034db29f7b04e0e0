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

// SubscriptionModule wires subscription routes.
// Public: GET /api/subscriptions/plans
// Vendor: POST /api/subscriptions, GET /api/subscriptions/vendor,
//         PUT /api/subscriptions/:id/payment
// Admin:  GET /api/subscriptions, PUT /api/subscriptions/:id/verify,
//         PUT /api/subscriptions/plans/:id

type SubscriptionModule struct {
	Handler *handlers.SubscriptionHandler
	Users   repository.UserRepository
	JWT     *helpers.JWTManager
}

func NewSubscriptionModule(h *handlers.SubscriptionHandler, users repository.UserRepository, jwt *helpers.JWTManager) *SubscriptionModule {
	return &SubscriptionModule{Handler: h, Users: users, JWT: jwt}
}

func (m *SubscriptionModule) Register(rg *gin.RouterGroup) {
	rg.GET("/subscriptions/plans", limiter(60, time.Minute, middleware.KeyByIP()), m.Handler.GetPlans)

	auth := rg.Group("/subscriptions")
	auth.Use(middleware.Auth(m.Users, m.JWT))
	auth.Use(limiter(120, time.Minute, middleware.KeyByUserID()))

	adminOnly := middleware.RequireRole(entity.RoleAdmin)
	vendorOnly := middleware.RequireRole(entity.RoleVendor)

	auth.POST("", vendorOnly, m.Handler.Create)
	auth.GET("/vendor", vendorOnly, m.Handler.ListOwn)
	auth.GET("", adminOnly, m.Handler.ListAll)
	auth.PUT("/:id/payment", vendorOnly, m.Handler.SubmitPayment)
	auth.PUT("/:id/verify", adminOnly, m.Handler.VerifyPayment)
	auth.PUT("/plans/:id", adminOnly, m.Handler.UpdatePlan)
}
