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

// CatalogModule wires category and service routes. Reads are public so
// the landing page works without a session; writes are admin only.

type CatalogModule struct {
	Handler *handlers.CatalogHandler
	Users   repository.UserRepository
	JWT     *helpers.JWTManager
}

func NewCatalogModule(h *handlers.CatalogHandler, users repository.UserRepository, jwt *helpers.JWTManager) *CatalogModule {
	return &CatalogModule{Handler: h, Users: users, JWT: jwt}
}

func (m *CatalogModule) Register(rg *gin.RouterGroup) {
	publicLimiter := limiter(120, time.Minute, middleware.KeyByIP())

	rg.GET("/categories", publicLimiter, m.Handler.ListCategories)
	rg.GET("/categories/:id", publicLimiter, m.Handler.GetCategory)
	rg.GET("/services", publicLimiter, m.Handler.ListServices)
	rg.GET("/services/search", publicLimiter, m.Handler.SearchServices)
	rg.GET("/services/:id", publicLimiter, m.Handler.GetService)

	adminChain := []gin.HandlerFunc{
		middleware.Auth(m.Users, m.JWT),
		middleware.RequireRole(entity.RoleAdmin),
		limiter(120, time.Minute, middleware.KeyByUserID()),
	}

	categories := rg.Group("/categories", adminChain...)
	{
		categories.POST("", m.Handler.CreateCategory)
		categories.PUT("/:id", m.Handler.UpdateCategory)
		categories.DELETE("/:id", m.Handler.DeleteCategory)
	}

	services := rg.Group("/services", adminChain...)
	{
		services.POST("", m.Handler.CreateService)
		services.PUT("/:id", m.Handler.UpdateService)
		services.DELETE("/:id", m.Handler.DeleteService)
		services.POST("/:id/image", m.Handler.UploadServiceImage)
	}
}
