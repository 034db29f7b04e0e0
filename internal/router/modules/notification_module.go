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

// NotificationModule wires the per-user notification inbox plus the
// admin broadcast endpoint.

type NotificationModule struct {
	Handler *handlers.NotificationHandler
	Users   repository.UserRepository
	JWT     *helpers.JWTManager
}

func NewNotificationModule(h *handlers.NotificationHandler, users repository.UserRepository, jwt *helpers.JWTManager) *NotificationModule {
	return &NotificationModule{Handler: h, Users: users, JWT: jwt}
}

func (m *NotificationModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/notifications")
	auth.Use(middleware.Auth(m.Users, m.JWT))
	auth.Use(limiter(240, time.Minute, middleware.KeyByUserID()))

	auth.GET("", m.Handler.List)
	auth.PUT("/read-all", m.Handler.MarkAllRead)
	auth.PUT("/:id/read", m.Handler.MarkRead)
	auth.DELETE("/:id", m.Handler.Delete)

	auth.POST("/broadcast", middleware.RequireRole(entity.RoleAdmin), m.Handler.Broadcast)
}
