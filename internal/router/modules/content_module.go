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

// ContentModule wires the landing-page content blocks. Reads are
// public; writes are admin only.

type ContentModule struct {
	Handler *handlers.ContentHandler
	Users   repository.UserRepository
	JWT     *helpers.JWTManager
}

func NewContentModule(h *handlers.ContentHandler, users repository.UserRepository, jwt *helpers.JWTManager) *ContentModule {
	return &ContentModule{Handler: h, Users: users, JWT: jwt}
}

func (m *ContentModule) Register(rg *gin.RouterGroup) {
	publicLimiter := limiter(120, time.Minute, middleware.KeyByIP())

	rg.GET("/content", publicLimiter, m.Handler.List)
	rg.GET("/content/:type", publicLimiter, m.Handler.Get)

	rg.POST("/content",
		middleware.Auth(m.Users, m.JWT),
		middleware.RequireRole(entity.RoleAdmin),
		limiter(60, time.Minute, middleware.KeyByUserID()),
		m.Handler.Upsert,
	)
}
