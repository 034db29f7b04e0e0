package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/sevamart/sevamart-backend/internal/application"
	"github.com/sevamart/sevamart-backend/internal/domain/entity"
	"github.com/sevamart/sevamart-backend/internal/interface/middleware"
	"github.com/sevamart/sevamart-backend/pkg/response"
	"github.com/sevamart/sevamart-backend/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Role     string `json:"role" binding:"omitempty,role"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register POST /api/users (public)
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     entity.Role(req.Role),
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, userJSON(u), "registration successful", nil)
}

// Login POST /api/users/login (public)
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, tok, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"token": tok.Token,
		"user":  userJSON(u),
	}, "login successful", map[string]any{"expires_at": tok.Expiry})
}

// GetProfile GET /api/users/profile (auth)
func (h *UserHandler) GetProfile(c *gin.Context) {
	u, err := h.Svc.GetProfile(c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, userJSON(u), "profile", nil)
}

// UpdateProfile PUT /api/users/profile (auth)
// Accepts multipart form (vendor document upload) or plain JSON.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	ctx := c.Request.Context()

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		in := application.UpdateProfileInput{
			Name:    c.PostForm("name"),
			Phone:   c.PostForm("phone"),
			Address: c.PostForm("address"),
		}
		if v := c.PostForm("years_experience"); v != "" {
			if years, err := strconv.Atoi(v); err == nil {
				in.YearsExperience = &years
			}
		}
		if v := c.PostForm("expertise"); v != "" {
			parts := strings.Split(v, ",")
			for i := range parts {
				parts[i] = strings.TrimSpace(parts[i])
			}
			in.Expertise = parts
		}
		if file, err := c.FormFile("document"); err == nil && file != nil {
			f, err := file.Open()
			if err != nil {
				response.Error[any](c, http.StatusBadRequest, "could not read uploaded file", nil)
				return
			}
			defer func() { _ = f.Close() }()
			if _, err := h.Svc.UploadDocument(ctx, uid, f, file.Filename, file.Header.Get("Content-Type")); err != nil {
				fail(c, err)
				return
			}
		}
		u, err := h.Svc.UpdateProfile(ctx, uid, in)
		if err != nil {
			fail(c, err)
			return
		}
		response.Success(c, http.StatusOK, userJSON(u), "profile updated", nil)
		return
	}

	var req struct {
		Name            string   `json:"name"`
		Phone           string   `json:"phone"`
		Address         string   `json:"address"`
		YearsExperience *int     `json:"years_experience" binding:"omitempty,gte=0"`
		Expertise       []string `json:"expertise"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.UpdateProfile(ctx, uid, application.UpdateProfileInput{
		Name:            req.Name,
		Phone:           req.Phone,
		Address:         req.Address,
		YearsExperience: req.YearsExperience,
		Expertise:       req.Expertise,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, userJSON(u), "profile updated", nil)
}

// ListUsers GET /api/users (admin)
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.Svc.ListUsers(entity.Role(c.Query("role")))
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		out = append(out, userJSON(u))
	}
	response.Success(c, http.StatusOK, out, "users", map[string]any{"total": len(out)})
}

// ToggleStatus PUT /api/users/:id/toggle-status (admin)
func (h *UserHandler) ToggleStatus(c *gin.Context) {
	u, err := h.Svc.ToggleStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, userJSON(u), "user status updated", nil)
}
