package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/sevamart/sevamart-backend/internal/application"
	"github.com/sevamart/sevamart-backend/internal/domain/entity"
	"github.com/sevamart/sevamart-backend/pkg/response"
	"github.com/sevamart/sevamart-backend/pkg/validation"
)

type ContentHandler struct {
	Svc    *application.ContentService
	Logger *logrus.Logger
}

func NewContentHandler(svc *application.ContentService, logger *logrus.Logger) *ContentHandler {
	return &ContentHandler{Svc: svc, Logger: logger}
}

func contentJSON(b *entity.ContentBlock) gin.H {
	return gin.H{
		"id":         b.ID,
		"type":       b.Type,
		"title":      b.Title,
		"subtitle":   b.Subtitle,
		"body":       b.Body,
		"image_url":  b.ImageURL,
		"is_active":  b.IsActive,
		"updated_at": b.UpdatedAt,
	}
}

// List GET /api/content (public)
func (h *ContentHandler) List(c *gin.Context) {
	blocks, err := h.Svc.List()
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]gin.H, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, contentJSON(b))
	}
	response.Success(c, http.StatusOK, out, "content blocks", map[string]any{"total": len(out)})
}

// Get GET /api/content/:type (public)
func (h *ContentHandler) Get(c *gin.Context) {
	b, err := h.Svc.Get(c.Param("type"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, contentJSON(b), "content block", nil)
}

// Upsert POST /api/content (admin)
// Accepts multipart form with an optional image, or plain JSON. The
// block type comes from the payload and keys the upsert.
func (h *ContentHandler) Upsert(c *gin.Context) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		in := application.ContentInput{
			Type:     c.PostForm("type"),
			Title:    c.PostForm("title"),
			Subtitle: c.PostForm("subtitle"),
			Body:     c.PostForm("body"),
		}
		if v := c.PostForm("is_active"); v != "" {
			active := v == "true"
			in.IsActive = &active
		}
		var (
			image       io.Reader
			filename    string
			contentType string
		)
		if file, err := c.FormFile("image"); err == nil && file != nil {
			f, err := file.Open()
			if err != nil {
				response.Error[any](c, http.StatusBadRequest, "could not read uploaded file", nil)
				return
			}
			defer func() { _ = f.Close() }()
			image = f
			filename = file.Filename
			contentType = file.Header.Get("Content-Type")
		}
		b, err := h.Svc.Upsert(c.Request.Context(), in, image, filename, contentType)
		if err != nil {
			fail(c, err)
			return
		}
		response.Success(c, http.StatusOK, contentJSON(b), "content block saved", nil)
		return
	}

	var req struct {
		Type     string `json:"type" binding:"required"`
		Title    string `json:"title"`
		Subtitle string `json:"subtitle"`
		Body     string `json:"body"`
		IsActive *bool  `json:"isActive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	b, err := h.Svc.Upsert(c.Request.Context(), application.ContentInput{
		Type:     req.Type,
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Body:     req.Body,
		IsActive: req.IsActive,
	}, nil, "", "")
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, contentJSON(b), "content block saved", nil)
}
