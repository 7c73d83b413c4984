// File: agendly/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agendly/config"
	"agendly/cron"
	"agendly/database"
	appointmentRepo "agendly/database/repository/appointment"
	catalogRepo "agendly/database/repository/catalog"
	creditsRepo "agendly/database/repository/credits"
	scheduleRepo "agendly/database/repository/schedule"
	"agendly/handlers"
	"agendly/routes"
	"agendly/services/booking"
	"agendly/services/catalog"
	"agendly/services/credits"
	"agendly/services/scheduling"
	"agendly/services/tasks"
	"agendly/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	schedRepo := scheduleRepo.NewMongoScheduleRepo()
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()
	credRepo := creditsRepo.NewMongoCreditsRepo()
	catRepo := catalogRepo.NewMongoCatalogRepo()

	// services.
	schedulingEngine := &scheduling.DefaultSchedulingEngine{
		Schedule:     schedRepo,
		Appointments: apptRepo,
	}
	ledgerService := &credits.DefaultLedgerService{
		Repo: credRepo,
	}
	catalogService := &catalog.DefaultCatalogService{
		Repo:  catRepo,
		Cache: utils.GetCacheClient(),
	}

	eventPublisher := &booking.RedisEventPublisher{
		Client:  utils.GetCacheClient(),
		Channel: config.AppConfig.EventsChannel,
	}

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer asynqClient.Close()
	reminderScheduler := &tasks.AsynqReminderScheduler{
		Client:      asynqClient,
		LeadMinutes: config.AppConfig.ReminderLeadMinutes,
	}

	appointmentService := &booking.DefaultAppointmentService{
		Repo:      apptRepo,
		Scheduler: schedulingEngine,
		Catalog:   catalogService,
		Ledger:    ledgerService,
		Tx:        database.WithTransaction,
		Events:    eventPublisher,
		Reminders: reminderScheduler,
		Locks:     utils.NewProviderLocker(),
	}

	// background workers.
	cron.InitReminderWorker(apptRepo, eventPublisher.Publish)
	cron.InitBalanceSweeper(credRepo)

	// Assemble the handler bundle and register routes.
	handlerBundle := &routes.HandlerBundle{
		Availability: handlers.NewAvailabilityHandler(schedulingEngine, utils.GetCacheClient()),
		Schedule:     handlers.NewScheduleHandler(schedulingEngine),
		Appointments: handlers.NewAppointmentHandler(appointmentService),
		Credits:      handlers.NewCreditsHandler(ledgerService),
	}
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
