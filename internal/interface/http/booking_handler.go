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

type BookingHandler struct {
	Svc    *application.BookingService
	Logger *logrus.Logger
}

func NewBookingHandler(svc *application.BookingService, logger *logrus.Logger) *BookingHandler {
	return &BookingHandler{Svc: svc, Logger: logger}
}

type createBookingRequest struct {
	Name      string   `json:"name" binding:"required"`
	Phone     string   `json:"phone" binding:"required"`
	Pincode   string   `json:"pincode" binding:"required"`
	Location  string   `json:"location" binding:"required"`
	ServiceID string   `json:"serviceId" binding:"required"`
	Lat       *float64 `json:"lat"`
	Lng       *float64 `json:"lng"`
}

// Create POST /api/bookings (auth)
func (h *BookingHandler) Create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	b, err := h.Svc.Create(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), application.CreateBookingInput{
		Name:      req.Name,
		Phone:     req.Phone,
		Pincode:   req.Pincode,
		Location:  req.Location,
		ServiceID: req.ServiceID,
		Lat:       req.Lat,
		Lng:       req.Lng,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, bookingJSON(b), "booking created", nil)
}

// ListOwn GET /api/bookings (auth)
func (h *BookingHandler) ListOwn(c *gin.Context) {
	bs, err := h.Svc.ListForCustomer(c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, bookingsJSON(bs), "bookings", map[string]any{"total": len(bs)})
}

// ListAll GET /api/bookings/admin (admin)
func (h *BookingHandler) ListAll(c *gin.Context) {
	bs, err := h.Svc.ListAll()
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, bookingsJSON(bs), "bookings", map[string]any{"total": len(bs)})
}

// ListAssigned GET /api/bookings/vendor (vendor)
func (h *BookingHandler) ListAssigned(c *gin.Context) {
	bs, err := h.Svc.ListForVendor(c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, bookingsJSON(bs), "bookings", map[string]any{"total": len(bs)})
}

// Get GET /api/bookings/:id (auth, ownership-checked)
func (h *BookingHandler) Get(c *gin.Context) {
	b, err := h.Svc.Get(c.Request.Context(), actor(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, bookingJSON(b), "booking", nil)
}

type updateStatusRequest struct {
	Status     string `json:"status" binding:"required,bookingstatus"`
	StatusNote string `json:"statusNote"`
}

// UpdateStatus PUT /api/bookings/:id/status (admin)
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	b, err := h.Svc.UpdateStatus(c.Request.Context(), c.Param("id"), entity.BookingStatus(req.Status), req.StatusNote)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, bookingJSON(b), "booking status updated", nil)
}

type assignVendorRequest struct {
	VendorID string `json:"vendorId" binding:"required"`
}

// AssignVendor PUT /api/bookings/:id/assign (admin)
func (h *BookingHandler) AssignVendor(c *gin.Context) {
	var req assignVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	b, err := h.Svc.AssignVendor(c.Request.Context(), c.Param("id"), req.VendorID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, bookingJSON(b), "vendor assigned", nil)
}

type vendorStatusRequest struct {
	Status     string `json:"status" binding:"required,vendorstatus"`
	StatusNote string `json:"statusNote"`
}

// VendorUpdateStatus PUT /api/bookings/:id/vendor-status (vendor)
func (h *BookingHandler) VendorUpdateStatus(c *gin.Context) {
	var req vendorStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	b, err := h.Svc.VendorUpdateStatus(c.Request.Context(), c.GetString(middleware.CtxUserIDKey),
		c.Param("id"), entity.BookingStatus(req.Status), req.StatusNote)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, bookingJSON(b), "booking status updated", nil)
}

type cancelRequest struct {
	CancelReason string `json:"cancelReason"`
}

// Cancel PUT /api/bookings/:id/cancel (auth, ownership-checked)
func (h *BookingHandler) Cancel(c *gin.Context) {
	var req cancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	b, err := h.Svc.Cancel(c.Request.Context(), actor(c), c.Param("id"), req.CancelReason)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, bookingJSON(b), "booking cancelled", nil)
}
