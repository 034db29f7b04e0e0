package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/sevamart/sevamart-backend/internal/application"
	"github.com/sevamart/sevamart-backend/internal/domain/entity"
	"github.com/sevamart/sevamart-backend/internal/interface/middleware"
	"github.com/sevamart/sevamart-backend/pkg/response"
	"github.com/sevamart/sevamart-backend/pkg/validation"
)

type NotificationHandler struct {
	Svc    *application.NotificationService
	Logger *logrus.Logger
}

func NewNotificationHandler(svc *application.NotificationService, logger *logrus.Logger) *NotificationHandler {
	return &NotificationHandler{Svc: svc, Logger: logger}
}

func notificationJSON(n *entity.Notification) gin.H {
	return gin.H{
		"id":         n.ID,
		"title":      n.Title,
		"message":    n.Message,
		"type":       n.Type,
		"link":       n.Link,
		"is_read":    n.IsRead,
		"created_at": n.CreatedAt,
	}
}

// List GET /api/notifications (auth)
func (h *NotificationHandler) List(c *gin.Context) {
	ns, unread, err := h.Svc.List(c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]gin.H, 0, len(ns))
	for _, n := range ns {
		out = append(out, notificationJSON(n))
	}
	response.Success(c, http.StatusOK, out, "notifications", map[string]any{
		"total":  len(out),
		"unread": unread,
	})
}

// MarkRead PUT /api/notifications/:id/read (auth)
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.Svc.MarkRead(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "notification marked as read", nil)
}

// MarkAllRead PUT /api/notifications/read-all (auth)
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.Svc.MarkAllRead(c.Request.Context(), c.GetString(middleware.CtxUserIDKey)); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "all notifications marked as read", nil)
}

// Delete DELETE /api/notifications/:id (auth)
func (h *NotificationHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "notification deleted", nil)
}

type broadcastRequest struct {
	Title    string `json:"title" binding:"required"`
	Message  string `json:"message" binding:"required"`
	Type     string `json:"type"`
	Link     string `json:"link"`
	Audience string `json:"audience" binding:"omitempty,oneof=all customers vendors admins"`
}

// Broadcast POST /api/notifications/broadcast (admin)
func (h *NotificationHandler) Broadcast(c *gin.Context) {
	var req broadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.Broadcast(c.Request.Context(), application.BroadcastInput{
		Title:    req.Title,
		Message:  req.Message,
		Type:     req.Type,
		Link:     req.Link,
		Audience: req.Audience,
	}); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusAccepted, nil, "broadcast queued", nil)
}
