package handlers

import (
	"net/http"

	"roomhive/middleware"
	"roomhive/models"
	"roomhive/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking lifecycle over HTTP.
type BookingHandler struct {
	svc    booking.BookingService
	logger *zap.Logger
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{svc: svc, logger: logger}
}

// CreateBookingHandler handles POST /api/bookings.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var input booking.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	input.RenterID = middleware.ActorID(c)

	b, err := h.svc.CreateBooking(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// GetBookingHandler handles GET /api/bookings/:id.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	b, err := h.svc.GetBooking(c.Request.Context(), c.Param("id"), middleware.ActorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListMyBookingsHandler handles GET /api/bookings (the renter's own).
func (h *BookingHandler) ListMyBookingsHandler(c *gin.Context) {
	bookings, err := h.svc.ListForRenter(c.Request.Context(), middleware.ActorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// ListOwnerBookingsHandler handles GET /api/bookings/requests (against the
// actor's properties).
func (h *BookingHandler) ListOwnerBookingsHandler(c *gin.Context) {
	bookings, err := h.svc.ListForOwner(c.Request.Context(), middleware.ActorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// ApprovalHandler handles PATCH /api/bookings/:id/approval.
func (h *BookingHandler) ApprovalHandler(c *gin.Context) {
	var input struct {
		Decision models.ApprovalStatus `json:"decision"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	b, err := h.svc.SetApprovalStatus(c.Request.Context(), c.Param("id"), middleware.ActorID(c), input.Decision)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CheckoutHandler handles POST /api/bookings/:id/checkout.
func (h *BookingHandler) CheckoutHandler(c *gin.Context) {
	session, err := h.svc.StartCheckout(c.Request.Context(), c.Param("id"), middleware.ActorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// CancelHandler handles POST /api/bookings/:id/cancel.
func (h *BookingHandler) CancelHandler(c *gin.Context) {
	b, err := h.svc.CancelBooking(c.Request.Context(), c.Param("id"), middleware.ActorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CouponHandler handles GET /api/bookings/coupon.
func (h *BookingHandler) CouponHandler(c *gin.Context) {
	coupon, err := h.svc.CouponForUser(c.Request.Context(), middleware.ActorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"coupon": coupon})
}
