package handlers

import (
	"errors"
	"net/http"

	"roomhive/services/booking"
	"roomhive/services/payment"
	"roomhive/services/property"
	"roomhive/services/roommate"
	"roomhive/services/user"
	"roomhive/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto HTTP statuses with a plain-language
// message. Unknown errors become a 500 without leaking internals.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, booking.ErrPropertyUnavailable),
		errors.Is(err, booking.ErrSelfBooking),
		errors.Is(err, booking.ErrInvalidInput),
		errors.Is(err, roommate.ErrInvalidProfile),
		errors.Is(err, property.ErrInvalidProperty):
		utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())

	case errors.Is(err, booking.ErrPartnerNotFound),
		errors.Is(err, booking.ErrBookingNotFound),
		errors.Is(err, booking.ErrCouponNotFound),
		errors.Is(err, property.ErrPropertyNotFound),
		errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, roommate.ErrProfileRequired):
		utils.JSONError(c, http.StatusNotFound, "not found", err.Error())

	case errors.Is(err, booking.ErrNotAuthorized),
		errors.Is(err, property.ErrNotOwner):
		utils.JSONError(c, http.StatusForbidden, "forbidden", err.Error())

	case errors.Is(err, booking.ErrApprovalRequired),
		errors.Is(err, booking.ErrAlreadyPaid),
		errors.Is(err, booking.ErrIllegalTransition),
		errors.Is(err, user.ErrEmailTaken):
		utils.JSONError(c, http.StatusConflict, "conflict", err.Error())

	case errors.Is(err, user.ErrInvalidCredentials):
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", err.Error())

	case errors.Is(err, payment.ErrGatewayUnavailable):
		utils.JSONError(c, http.StatusServiceUnavailable, "payment service unavailable, please try again", err.Error())

	default:
		utils.JSONError(c, http.StatusInternalServerError, "internal error", "")
	}
}
