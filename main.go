package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roomhive/config"
	"roomhive/cron"
	"roomhive/database"
	bookingRepoPkg "roomhive/database/repository/booking"
	propertyRepoPkg "roomhive/database/repository/property"
	roommateRepoPkg "roomhive/database/repository/roommate"
	userRepoPkg "roomhive/database/repository/user"
	"roomhive/handlers"
	"roomhive/routes"
	"roomhive/services/booking"
	"roomhive/services/notification"
	"roomhive/services/payment"
	"roomhive/services/property"
	"roomhive/services/roommate"
	"roomhive/services/storage"
	"roomhive/services/user"
	"roomhive/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.FirebaseInit()
	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	stripe.Key = config.AppConfig.StripeKey

	var storageService storage.StorageService
	if svc, err := utils.Cloudinary(); err != nil {
		logger.Warn("cloudinary storage unavailable, uploads disabled", zap.Error(err))
	} else {
		storageService = svc
	}

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	propertyRepo := propertyRepoPkg.NewMongoPropertyRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()
	roommateRepo := roommateRepoPkg.NewMongoRoommateRepo()

	// notification side channels.
	publisher := notification.NewRedisPublisher(utils.GetCacheClient(), logger)
	push := notification.NewFCMPushService(userRepo, logger)

	// services.
	gateway := payment.NewStripeGateway(config.AppConfig.StripeWebhookSecret, logger)
	scheduler := cron.NewExpiryScheduler()

	bookingService := &booking.DefaultBookingService{
		Repo:         bookingRepo,
		PropertyRepo: propertyRepo,
		UserRepo:     userRepo,
		Gateway:      gateway,
		Publisher:    publisher,
		Push:         push,
		Scheduler:    scheduler,
		Currency:     config.AppConfig.Currency,
		SuccessURL:   config.AppConfig.CheckoutSuccessURL,
		CancelURL:    config.AppConfig.CheckoutCancelURL,
		PendingTTL:   time.Duration(config.AppConfig.PendingBookingTTLHours) * time.Hour,
		Logger:       logger,
	}

	reconciler := &payment.Reconciler{
		Verifier:   gateway,
		Bookings:   bookingRepo,
		Properties: propertyRepo,
		Coupons:    bookingService,
		Publisher:  publisher,
		Push:       push,
		Logger:     logger,
	}

	roommateService := &roommate.DefaultRoommateService{
		Repo:     roommateRepo,
		UserRepo: userRepo,
		Cache:    utils.GetCacheClient(),
		Logger:   logger,
	}

	userService := &user.DefaultUserService{
		Repo:   userRepo,
		Logger: logger,
	}

	propertyService := &property.DefaultPropertyService{
		Repo:    propertyRepo,
		Storage: storageService,
		Logger:  logger,
	}

	// Background worker that cancels stale unpaid bookings.
	cron.InitExpiryWorker(bookingRepo, publisher, logger)

	// handlers.
	userHandler := handlers.NewUserHandler(userService, storageService, logger)
	propertyHandler := handlers.NewPropertyHandler(propertyService, logger)
	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	roommateHandler := handlers.NewRoommateHandler(roommateService, logger)
	paymentHandler := handlers.NewPaymentHandler(reconciler, logger)

	handlerBundle := handlers.NewHandlerBundle(userHandler, propertyHandler, bookingHandler, roommateHandler, paymentHandler)

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("Starting server on %s...", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("Forced shutdown: %v", err)
	}
	logger.Info("Server exited")
}
