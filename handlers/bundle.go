package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct so that route
// registration only depends on this package.
type HandlerBundle struct {
	// User endpoints
	RegisterUserHandler   gin.HandlerFunc
	LoginUserHandler      gin.HandlerFunc
	CurrentUserHandler    gin.HandlerFunc
	UpdateFCMTokenHandler gin.HandlerFunc
	UploadKYCHandler      gin.HandlerFunc

	// Property endpoints
	CreatePropertyHandler   gin.HandlerFunc
	GetPropertyHandler      gin.HandlerFunc
	ListAvailableHandler    gin.HandlerFunc
	ListMyPropertiesHandler gin.HandlerFunc
	SetAvailabilityHandler  gin.HandlerFunc
	UploadPhotoHandler      gin.HandlerFunc

	// Booking endpoints
	CreateBookingHandler     gin.HandlerFunc
	GetBookingHandler        gin.HandlerFunc
	ListMyBookingsHandler    gin.HandlerFunc
	ListOwnerBookingsHandler gin.HandlerFunc
	ApprovalHandler          gin.HandlerFunc
	CheckoutHandler          gin.HandlerFunc
	CancelBookingHandler     gin.HandlerFunc
	CouponHandler            gin.HandlerFunc

	// Roommate endpoints
	UpsertRoommateProfileHandler gin.HandlerFunc
	GetRoommateProfileHandler    gin.HandlerFunc
	RoommateMatchesHandler       gin.HandlerFunc

	// Payment endpoints
	StripeWebhookHandler gin.HandlerFunc
}

// NewHandlerBundle wires the individual handlers into a bundle.
func NewHandlerBundle(users *UserHandler, properties *PropertyHandler, bookings *BookingHandler, roommates *RoommateHandler, payments *PaymentHandler) *HandlerBundle {
	return &HandlerBundle{
		RegisterUserHandler:   users.RegisterHandler,
		LoginUserHandler:      users.LoginHandler,
		CurrentUserHandler:    users.MeHandler,
		UpdateFCMTokenHandler: users.UpdateFCMTokenHandler,
		UploadKYCHandler:      users.UploadKYCHandler,

		CreatePropertyHandler:   properties.CreatePropertyHandler,
		GetPropertyHandler:      properties.GetPropertyHandler,
		ListAvailableHandler:    properties.ListAvailableHandler,
		ListMyPropertiesHandler: properties.ListMyPropertiesHandler,
		SetAvailabilityHandler:  properties.SetAvailabilityHandler,
		UploadPhotoHandler:      properties.UploadPhotoHandler,

		CreateBookingHandler:     bookings.CreateBookingHandler,
		GetBookingHandler:        bookings.GetBookingHandler,
		ListMyBookingsHandler:    bookings.ListMyBookingsHandler,
		ListOwnerBookingsHandler: bookings.ListOwnerBookingsHandler,
		ApprovalHandler:          bookings.ApprovalHandler,
		CheckoutHandler:          bookings.CheckoutHandler,
		CancelBookingHandler:     bookings.CancelHandler,
		CouponHandler:            bookings.CouponHandler,

		UpsertRoommateProfileHandler: roommates.UpsertProfileHandler,
		GetRoommateProfileHandler:    roommates.GetProfileHandler,
		RoommateMatchesHandler:       roommates.MatchesHandler,

		StripeWebhookHandler: payments.StripeWebhookHandler,
	}
}
