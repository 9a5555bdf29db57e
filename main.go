package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"seatwise/config"
	"seatwise/cron"
	"seatwise/database"
	catalogRepoPkg "seatwise/database/repository/catalog"
	ledgerRepoPkg "seatwise/database/repository/ledger"
	"seatwise/handlers"
	"seatwise/middleware"
	"seatwise/routes"
	catalogSvc "seatwise/services/catalog"
	"seatwise/services/notifier"
	"seatwise/services/reservation"
	"seatwise/services/status"
	"seatwise/services/tasks"
	"seatwise/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	utils.InitEventsClient()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	catRepo := catalogRepoPkg.NewMongoCatalogRepo()
	ledRepo := ledgerRepoPkg.NewMongoLedgerRepo()
	if err := catRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure catalog indexes: %v", err)
	}
	if err := ledRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure ledger indexes: %v", err)
	}

	// change notifier and push delivery.
	changeNotifier := notifier.NewRedisNotifier(utils.GetEventsClient())
	tokenStore := &notifier.RedisTokenStore{Client: utils.GetCacheClient()}
	pushSender := notifier.NewFCMPushSender(utils.FCMClient, tokenStore)

	// delayed approval reminders.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer asynqClient.Close()
	reminderScheduler := &tasks.AsynqReminderScheduler{
		Client: asynqClient,
		Delay:  time.Duration(config.AppConfig.ReminderDelayMinutes) * time.Minute,
	}
	cron.InitReminderWorker(ledRepo, pushSender)

	// services.
	reservationService := &reservation.DefaultReservationService{
		Catalog:  catRepo,
		Ledger:   ledRepo,
		Notifier: changeNotifier,
		Push:     pushSender,
		Cache:    status.NewSnapshotCache(utils.GetCacheClient()),
		Reminder: reminderScheduler,
		Logger:   logger,
	}
	catalogService := &catalogSvc.DefaultCatalogService{
		Repo:   catRepo,
		Ledger: ledRepo,
		Logger: logger,
	}

	// handlers.
	catalogHandler := handlers.NewCatalogHandler(catalogService, reservationService, logger)
	reservationHandler := handlers.NewReservationHandler(reservationService, logger)
	eventsHandler := handlers.NewEventsHandler(changeNotifier, logger)
	deviceHandler := handlers.NewDeviceHandler(tokenStore, logger)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// Catalog endpoints.
		CreateUnitHandler:      catalogHandler.CreateUnit,
		UpdateUnitHandler:      catalogHandler.UpdateUnit,
		DeleteUnitHandler:      catalogHandler.DeleteUnit,
		ListUnitsHandler:       catalogHandler.ListUnits,
		GetUnitStatusesHandler: catalogHandler.GetUnitStatuses,

		// Reservation endpoints.
		CreateReservationHandler:        reservationHandler.CreateReservation,
		DecideReservationHandler:        reservationHandler.DecideReservation,
		GetReservationHandler:           reservationHandler.GetReservation,
		ListMyReservationsHandler:       reservationHandler.ListMyReservations,
		ListProviderReservationsHandler: reservationHandler.ListProviderReservations,
		AttachPaymentRefHandler:         reservationHandler.AttachPaymentRef,

		// Event stream endpoints.
		StreamEventsHandler: eventsHandler.StreamEvents,

		// Device endpoints.
		UpdateUserPushTokenHandler:     deviceHandler.UpdateUserPushToken,
		UpdateProviderPushTokenHandler: deviceHandler.UpdateProviderPushToken,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(map[string]*redis.Client{
		"cache":  utils.GetCacheClient(),
		"auth":   utils.GetAuthCacheClient(),
		"events": utils.GetEventsClient(),
	}, database.MongoClient)

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
