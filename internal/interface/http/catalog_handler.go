package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/sevamart/sevamart-backend/internal/application"
	"github.com/sevamart/sevamart-backend/internal/domain/entity"
	"github.com/sevamart/sevamart-backend/pkg/response"
	"github.com/sevamart/sevamart-backend/pkg/validation"
)

type CatalogHandler struct {
	Svc    *application.CatalogService
	Logger *logrus.Logger
}

func NewCatalogHandler(svc *application.CatalogService, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{Svc: svc, Logger: logger}
}

func categoryJSON(c *entity.Category) gin.H {
	return gin.H{
		"id":          c.ID,
		"name":        c.Name,
		"description": c.Description,
		"is_active":   c.IsActive,
		"created_at":  c.CreatedAt,
		"updated_at":  c.UpdatedAt,
	}
}

func serviceJSON(s *entity.Service) gin.H {
	return gin.H{
		"id":            s.ID,
		"name":          s.Name,
		"description":   s.Description,
		"category_id":   s.CategoryID,
		"category_name": s.CategoryName,
		"min_price":     s.MinPrice,
		"image_url":     s.ImageURL,
		"is_active":     s.IsActive,
		"created_at":    s.CreatedAt,
		"updated_at":    s.UpdatedAt,
	}
}

type categoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	IsActive    *bool  `json:"isActive"`
}

// CreateCategory POST /api/categories (admin)
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	cat, err := h.Svc.CreateCategory(c.Request.Context(), application.CategoryInput{
		Name: req.Name, Description: req.Description, IsActive: req.IsActive,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, categoryJSON(cat), "category created", nil)
}

// ListCategories GET /api/categories (public; admins see inactive too)
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	includeInactive := c.Query("all") == "true"
	cats, err := h.Svc.ListCategories(includeInactive)
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]gin.H, 0, len(cats))
	for _, cat := range cats {
		out = append(out, categoryJSON(cat))
	}
	response.Success(c, http.StatusOK, out, "categories", map[string]any{"total": len(out)})
}

// GetCategory GET /api/categories/:id (public)
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	cat, err := h.Svc.GetCategory(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, categoryJSON(cat), "category", nil)
}

type updateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    *bool  `json:"isActive"`
}

// UpdateCategory PUT /api/categories/:id (admin)
func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	var req updateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	cat, err := h.Svc.UpdateCategory(c.Request.Context(), c.Param("id"), application.CategoryInput{
		Name: req.Name, Description: req.Description, IsActive: req.IsActive,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, categoryJSON(cat), "category updated", nil)
}

// DeleteCategory DELETE /api/categories/:id (admin)
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	if err := h.Svc.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "category deleted", nil)
}

type serviceRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	CategoryID  string   `json:"categoryId"`
	MinPrice    *float64 `json:"minPrice" binding:"omitempty,gte=0"`
	IsActive    *bool    `json:"isActive"`
}

// CreateService POST /api/services (admin)
func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	svc, err := h.Svc.CreateService(c.Request.Context(), application.ServiceInput{
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		MinPrice:    req.MinPrice,
		IsActive:    req.IsActive,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, serviceJSON(svc), "service created", nil)
}

// ListServices GET /api/services (public; ?all=true includes inactive)
func (h *CatalogHandler) ListServices(c *gin.Context) {
	includeInactive := c.Query("all") == "true"
	svcs, err := h.Svc.ListServices(includeInactive)
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]gin.H, 0, len(svcs))
	for _, svc := range svcs {
		out = append(out, serviceJSON(svc))
	}
	response.Success(c, http.StatusOK, out, "services", map[string]any{"total": len(out)})
}

// GetService GET /api/services/:id (public)
func (h *CatalogHandler) GetService(c *gin.Context) {
	svc, err := h.Svc.GetService(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, serviceJSON(svc), "service", nil)
}

type updateServiceRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	CategoryID  string   `json:"categoryId"`
	MinPrice    *float64 `json:"minPrice" binding:"omitempty,gte=0"`
	IsActive    *bool    `json:"isActive"`
}

// UpdateService PUT /api/services/:id (admin)
func (h *CatalogHandler) UpdateService(c *gin.Context) {
	var req updateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	svc, err := h.Svc.UpdateService(c.Request.Context(), c.Param("id"), application.ServiceInput{
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		MinPrice:    req.MinPrice,
		IsActive:    req.IsActive,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, serviceJSON(svc), "service updated", nil)
}

// DeleteService DELETE /api/services/:id (admin)
func (h *CatalogHandler) DeleteService(c *gin.Context) {
	if err := h.Svc.DeleteService(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "service deleted", nil)
}

// UploadServiceImage POST /api/services/:id/image (admin, multipart)
func (h *CatalogHandler) UploadServiceImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil || file == nil {
		response.Error[any](c, http.StatusBadRequest, "image file is required", nil)
		return
	}
	f, err := file.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "could not read uploaded file", nil)
		return
	}
	defer func() { _ = f.Close() }()
	svc, err := h.Svc.UploadServiceImage(c.Request.Context(), c.Param("id"), f, file.Filename, file.Header.Get("Content-Type"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, serviceJSON(svc), "image uploaded", nil)
}

// SearchServices GET /api/services/search?q=...&size=... (public)
func (h *CatalogHandler) SearchServices(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "q is required", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.SearchServices(c.Request.Context(), q, size)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", map[string]any{"total": len(hits)})
}
