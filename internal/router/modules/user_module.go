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

// UserModule wires account routes.
// Public: POST /api/users, POST /api/users/login
// Protected: GET/PUT /api/users/profile
// Admin: GET /api/users, PUT /api/users/:id/toggle-status

type UserModule struct {
	Handler *handlers.UserHandler
	Users   repository.UserRepository
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, users repository.UserRepository, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, Users: users, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	registerLimiter := limiter(10, time.Minute, middleware.KeyByIP())
	loginLimiter := limiter(10, time.Minute, middleware.KeyByIPAndPath())

	rg.POST("/users", registerLimiter, m.Handler.Register)
	rg.POST("/users/login", loginLimiter, m.Handler.Login)

	auth := rg.Group("/users")
	auth.Use(middleware.Auth(m.Users, m.JWT))
	auth.Use(limiter(120, time.Minute, middleware.KeyByUserID()))
	{
		auth.GET("/profile", m.Handler.GetProfile)
		auth.PUT("/profile", m.Handler.UpdateProfile)

		adminOnly := middleware.RequireRole(entity.RoleAdmin)
		auth.GET("", adminOnly, m.Handler.ListUsers)
		auth.PUT("/:id/toggle-status", adminOnly, m.Handler.ToggleStatus)
	}
}
