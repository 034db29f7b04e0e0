package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sevamart/sevamart-backend/internal/domain/entity"
	"github.com/sevamart/sevamart-backend/internal/domain/repository"
	"github.com/sevamart/sevamart-backend/pkg/helpers"
	"github.com/sevamart/sevamart-backend/pkg/response"
)

const (
	CtxUserIDKey = "userID"
	CtxRoleKey   = "userRole"
)

// Auth validates the bearer token and reloads the user on every request,
// so a blocked account stops working immediately even if its token has
// not expired. Sets userID and userRole in the Gin context on success.
func Auth(users repository.UserRepository, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Error[any](c, http.StatusUnauthorized, "missing bearer token", nil)
			c.Abort()
			return
		}
		claims, err := jwt.ParseToken(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid or expired token", nil)
			c.Abort()
			return
		}

		u, err := users.GetByID(claims.UserID)
		if err != nil || u == nil {
			response.Error[any](c, http.StatusUnauthorized, "account not found", nil)
			c.Abort()
			return
		}
		if !u.IsActive {
			response.Error[any](c, http.StatusUnauthorized, "your account has been blocked", nil)
			c.Abort()
			return
		}

		c.Set(CtxUserIDKey, u.ID)
		c.Set(CtxRoleKey, string(u.Role))
		c.Next()
	}
}

// RequireRole gates a route group to the given roles. Runs after Auth.
func RequireRole(roles ...entity.Role) gin.HandlerFunc {
	allowed := map[entity.Role]bool{}
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		role := entity.Role(c.GetString(CtxRoleKey))
		if !allowed[role] {
			response.Error[any](c, http.StatusForbidden, "insufficient permissions", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
