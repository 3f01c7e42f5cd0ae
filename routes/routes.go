package routes

import (
	"net/http"
	"time"

	"roomhive/handlers"
	"roomhive/middleware"
	"roomhive/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.RegisterUserHandler)
		api.POST("/login", hb.LoginUserHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/me", hb.CurrentUserHandler)
		api.PUT("/fcm-token", hb.UpdateFCMTokenHandler)
		api.POST("/kyc", hb.UploadKYCHandler)
	}
}

// RegisterPropertyRoutes registers listing endpoints.
func RegisterPropertyRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/properties")
	{
		// Browsing listings is public.
		api.GET("", hb.ListAvailableHandler)
		api.GET("/:id", hb.GetPropertyHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware())
		protected.POST("", hb.CreatePropertyHandler)
		protected.GET("/mine", hb.ListMyPropertiesHandler)
		protected.PATCH("/:id/availability", hb.SetAvailabilityHandler)
		protected.POST("/:id/photos", hb.UploadPhotoHandler)
	}
}

// RegisterBookingRoutes sets up the endpoints for the booking engine.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", hb.CreateBookingHandler)
		api.GET("", hb.ListMyBookingsHandler)
		api.GET("/requests", hb.ListOwnerBookingsHandler)
		api.GET("/coupon", hb.CouponHandler)
		api.GET("/:id", hb.GetBookingHandler)
		api.PATCH("/:id/approval", hb.ApprovalHandler)
		api.POST("/:id/checkout", hb.CheckoutHandler)
		api.POST("/:id/cancel", hb.CancelBookingHandler)
	}
}

// RegisterRoommateRoutes registers roommate profile and matching endpoints.
func RegisterRoommateRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/roommates")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.PUT("/profile", hb.UpsertRoommateProfileHandler)
		api.GET("/profile", hb.GetRoommateProfileHandler)
		api.GET("/matches", hb.RoommateMatchesHandler)
	}
}

// RegisterPaymentRoutes registers the Stripe webhook endpoint. It must stay
// outside the auth middleware: Stripe signs the raw request body and carries
// no session token.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/payments/webhook", hb.StripeWebhookHandler)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Stripe-Signature"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterUserRoutes(r, hb)
	RegisterPropertyRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterRoommateRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterHealthRoute(r)
}
