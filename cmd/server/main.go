package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"homeledger/server/config"
	"homeledger/server/internal/api"
	"homeledger/server/internal/database"
	"homeledger/server/internal/geocoding"
	"homeledger/server/internal/processor"
	"homeledger/server/internal/queue"
	"homeledger/server/internal/scheduler"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	// A missing .env file is fine; the environment may be set directly.
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file loaded")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	logger.Infof("Using database at: %s", cfg.Database.Path)
	db, err := database.NewDatabase(cfg.Database.Path, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	logger.Info("Running database migrations...")
	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	var geocoder *geocoding.Geocoder
	if cfg.Geocoding.Enabled {
		cacheDir := cfg.Geocoding.CacheDir
		if cacheDir == "" {
			cacheDir = filepath.Join(os.TempDir(), "homeledger", "geocode_cache")
		}
		geocoder = geocoding.NewGeocoder(logger, cacheDir)
		go geocodeMissing(db, geocoder, logger)
	}

	activityQueue := queue.NewActivityQueue(cfg.ActivityBatch.QueueSize, logger)
	batchProcessor := processor.NewBatchProcessor(db.GetDB(), activityQueue, cfg, logger)
	batchProcessor.Start()

	var reminderScheduler *scheduler.Scheduler
	if cfg.Reminders.Enabled {
		reminderScheduler = scheduler.NewScheduler(db, activityQueue, cfg.Reminders.StaleMonths, logger)
		reminderScheduler.Start()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	handler := api.NewHandler(db, cfg, logger, geocoder, activityQueue)
	api.SetupRoutes(router, handler)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Infof("Starting server on port %d", cfg.Server.Port)

	errCh := make(chan error, 1)
	go func() {
		errCh <- router.Run(addr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		logger.WithError(err).Fatal("Server failed to start")
	case sig := <-quit:
		logger.Infof("Received %s, shutting down", sig)
	}

	if reminderScheduler != nil {
		reminderScheduler.Stop()
	}
	if err := activityQueue.Close(); err != nil {
		logger.WithError(err).Warn("Failed to close activity queue")
	}
	batchProcessor.Stop()
	logger.Info("Shutdown complete")
}

// geocodeMissing resolves coordinates for houses that were created while
// geocoding was disabled or whose lookups failed earlier.
func geocodeMissing(db *database.Database, geocoder *geocoding.Geocoder, logger *logrus.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	houses, err := db.ListHousesMissingCoordinates(ctx)
	if err != nil {
		logger.WithError(err).Error("Failed to list houses missing coordinates")
		return
	}

	for _, house := range houses {
		lat, lon, err := geocoder.GeocodeAddress(house.Street, house.PostalCode, house.City, house.Country)
		if err != nil {
			logger.WithError(err).WithField("house_id", house.ID).Warn("Failed to geocode house")
			continue
		}
		if err := db.UpdateHouseCoordinates(ctx, house.ID, lat, lon); err != nil {
			logger.WithError(err).WithField("house_id", house.ID).Warn("Failed to store house coordinates")
		}
	}

	if len(houses) > 0 {
		logger.WithField("count", len(houses)).Info("Finished geocoding sweep")
	}
}
