package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/sevamart/sevamart-backend/internal/application"
	"github.com/sevamart/sevamart-backend/internal/domain/entity"
	"github.com/sevamart/sevamart-backend/internal/interface/middleware"
	"github.com/sevamart/sevamart-backend/pkg/response"
	"github.com/sevamart/sevamart-backend/pkg/validation"
)

type SubscriptionHandler struct {
	Svc    *application.SubscriptionService
	Logger *logrus.Logger
}

func NewSubscriptionHandler(svc *application.SubscriptionService, logger *logrus.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{Svc: svc, Logger: logger}
}

func subscriptionJSON(s *entity.Subscription) gin.H {
	out := gin.H{
		"id":                s.ID,
		"vendor_id":         s.VendorID,
		"plan":              s.Plan,
		"price":             s.Price,
		"start_date":        s.StartDate,
		"end_date":          s.EndDate,
		"status":            s.Status,
		"payment_status":    s.PaymentStatus,
		"upi_id":            s.UPIID,
		"payment_proof_url": s.PaymentProofURL,
		"payment_date":      s.PaymentDate,
		"features":          s.Features,
		"is_expired":        s.Expired(time.Now()),
		"created_at":        s.CreatedAt,
		"updated_at":        s.UpdatedAt,
	}
	if s.VendorName != "" {
		out["vendor_name"] = s.VendorName
		out["vendor_email"] = s.VendorEmail
	}
	return out
}

func subscriptionsJSON(ss []*entity.Subscription) []gin.H {
	out := make([]gin.H, 0, len(ss))
	for _, s := range ss {
		out = append(out, subscriptionJSON(s))
	}
	return out
}

func planJSON(p *entity.SubscriptionPlan) gin.H {
	return gin.H{
		"id":            p.ID,
		"name":          p.Name,
		"price":         p.Price,
		"duration_days": p.DurationDays,
		"features":      p.Features,
		"description":   p.Description,
		"offer":         p.Offer,
		"is_active":     p.IsActive,
		"updated_at":    p.UpdatedAt,
	}
}

// GetPlans GET /api/subscriptions/plans (public)
func (h *SubscriptionHandler) GetPlans(c *gin.Context) {
	plans, err := h.Svc.GetPlans(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]gin.H, 0, len(plans))
	for _, p := range plans {
		out = append(out, planJSON(p))
	}
	response.Success(c, http.StatusOK, out, "plans", nil)
}

type createSubscriptionRequest struct {
	Plan  string `json:"plan" binding:"required,plantier"`
	UPIID string `json:"upiId"`
}

// Create POST /api/subscriptions (vendor)
func (h *SubscriptionHandler) Create(c *gin.Context) {
	var req createSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	sub, err := h.Svc.Create(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), entity.PlanTier(req.Plan), req.UPIID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, subscriptionJSON(sub), "subscription created", nil)
}

// ListOwn GET /api/subscriptions/vendor (vendor)
func (h *SubscriptionHandler) ListOwn(c *gin.Context) {
	subs, err := h.Svc.ListForVendor(c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, subscriptionsJSON(subs), "subscriptions", map[string]any{"total": len(subs)})
}

// ListAll GET /api/subscriptions (admin)
func (h *SubscriptionHandler) ListAll(c *gin.Context) {
	subs, err := h.Svc.ListAll()
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, subscriptionsJSON(subs), "subscriptions", map[string]any{"total": len(subs)})
}

type submitPaymentRequest struct {
	PaymentProofURL string     `json:"paymentProofUrl" binding:"required"`
	PaymentDate     *time.Time `json:"paymentDate"`
}

// SubmitPayment PUT /api/subscriptions/:id/payment (vendor)
// Accepts multipart form (proof image upload) or plain JSON with a URL.
func (h *SubscriptionHandler) SubmitPayment(c *gin.Context) {
	vendorID := c.GetString(middleware.CtxUserIDKey)
	id := c.Param("id")

	if file, err := c.FormFile("proof"); err == nil && file != nil {
		f, err := file.Open()
		if err != nil {
			response.Error[any](c, http.StatusBadRequest, "could not read uploaded file", nil)
			return
		}
		defer func() { _ = f.Close() }()
		sub, err := h.Svc.UploadPaymentProof(c.Request.Context(), vendorID, id, f, file.Filename, file.Header.Get("Content-Type"))
		if err != nil {
			fail(c, err)
			return
		}
		response.Success(c, http.StatusOK, subscriptionJSON(sub), "payment submitted", nil)
		return
	}

	var req submitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	sub, err := h.Svc.SubmitPayment(c.Request.Context(), vendorID, id, req.PaymentProofURL, req.PaymentDate)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, subscriptionJSON(sub), "payment submitted", nil)
}

type verifyPaymentRequest struct {
	PaymentStatus string `json:"paymentStatus" binding:"required,paymentstatus"`
}

// VerifyPayment PUT /api/subscriptions/:id/verify (admin)
func (h *SubscriptionHandler) VerifyPayment(c *gin.Context) {
	var req verifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	sub, err := h.Svc.VerifyPayment(c.Request.Context(), c.Param("id"), entity.PaymentStatus(req.PaymentStatus))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, subscriptionJSON(sub), "payment verified", nil)
}

type updatePlanRequest struct {
	Name         string   `json:"name"`
	Price        *float64 `json:"price" binding:"omitempty,gt=0"`
	DurationDays *int     `json:"durationDays" binding:"omitempty,gt=0"`
	Features     []string `json:"features"`
	Description  string   `json:"description"`
	Offer        string   `json:"offer"`
	IsActive     *bool    `json:"isActive"`
}

// UpdatePlan PUT /api/subscriptions/plans/:id (admin)
func (h *SubscriptionHandler) UpdatePlan(c *gin.Context) {
	var req updatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.UpdatePlan(c.Request.Context(), entity.PlanTier(c.Param("id")), application.UpdatePlanInput{
		Name:         req.Name,
		Price:        req.Price,
		DurationDays: req.DurationDays,
		Features:     req.Features,
		Description:  req.Description,
		Offer:        req.Offer,
		IsActive:     req.IsActive,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, planJSON(p), "plan updated", nil)
}
