package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"counselconnect/config"
	"counselconnect/cron"
	"counselconnect/handlers"
	"counselconnect/middleware"
	"counselconnect/routes"
	"counselconnect/services/booking"
	"counselconnect/services/calendar"
	"counselconnect/services/chat"
	"counselconnect/services/notification"
	"counselconnect/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitSessionCache()
	utils.InitReservationCache()
	utils.StartHealthMonitor([]*redis.Client{utils.SessionClient, utils.ReservationClient})

	registry := config.NewCounselorRegistry(config.AppConfig.Counselors)
	if len(registry.IDs()) == 0 {
		logger.Sugar().Fatal("main: no counselors configured")
	}
	location := config.Location()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Collaborators.
	credProvider := calendar.NewOAuthCredentialProvider(
		config.AppConfig.GoogleClientID,
		config.AppConfig.GoogleClientSecret,
		config.AppConfig.GoogleRedirectURL,
		registry,
	)
	calendarService := calendar.NewGoogleCalendarService(credProvider, logger)

	notificationService := notification.NewDefaultNotificationService(
		config.AppConfig.SMTPHost,
		config.AppConfig.SMTPPort,
		config.AppConfig.SMTPFrom,
		config.AppConfig.SMTPPassword,
		logger,
	)
	if config.AppConfig.TwilioAccountSID != "" {
		notificationService.WithTwilio(
			config.AppConfig.TwilioAccountSID,
			config.AppConfig.TwilioAuthToken,
			config.AppConfig.TwilioFrom,
		)
	}

	dispatcher := cron.NewDispatcher()
	defer dispatcher.Close()
	cron.InitNotificationWorker(notificationService)

	// Services.
	bookingService := &booking.DefaultBookingService{
		Calendar:     calendarService,
		Registry:     registry,
		Reservations: &booking.RedisReservationStore{Client: utils.GetReservationClient()},
		Dispatcher:   dispatcher,
		Location:     location,
		Timezone:     config.AppConfig.Timezone,
		Logger:       logger,
	}

	chatService := &chat.DefaultChatService{
		Store:    chat.NewRedisSessionStore(utils.GetSessionClient()),
		Booking:  bookingService,
		Registry: registry,
		Location: location,
		Logger:   logger,
	}

	// Handlers.
	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	chatHandler := handlers.NewChatHandler(chatService, logger)
	notifyHandler := handlers.NewNotifyHandler(notificationService, logger)
	authHandler := handlers.NewAuthHandler(credProvider, logger)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		CheckAvailableSlots: bookingHandler.CheckAvailableSlots,
		BookAppointment:     bookingHandler.BookAppointment,
		StartChatSession:    chatHandler.StartSession,
		AdvanceChat:         chatHandler.Advance,
		SendEmail:           notifyHandler.SendEmail,
		AuthConsentURL:      authHandler.ConsentURL,
		AuthCallback:        authHandler.Callback,
	}

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

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
