package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"f3region/site-api/internal/api"
	"f3region/site-api/internal/config"
	"f3region/site-api/internal/repository"
	"f3region/site-api/internal/repository/memory"
	"f3region/site-api/internal/repository/mongo"
	"f3region/site-api/internal/service"
	"f3region/site-api/internal/storage"

	"github.com/gin-gonic/gin"
)

// repositories is what a storage driver hands to the services.
type repositories struct {
	regions   repository.RegionRepository
	locations repository.LocationRepository
	workouts  repository.WorkoutRepository
	tx        repository.Transactor
	close     func() error
}

func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("could not load config", "error", err)
		os.Exit(1)
	}
	setupLogger(cfg.Log)
	gin.SetMode(cfg.Server.Mode)
	slog.Info("configuration loaded", "driver", cfg.Database.Driver, "address", cfg.Server.Address)

	ctx := context.Background()

	// --- Storage Driver ---
	repos, err := openRepositories(ctx, cfg.Database)
	if err != nil {
		slog.Error("could not open store", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := repos.close(); err != nil {
			slog.Error("failed to close store", "error", err)
		}
	}()

	// --- Image Uploads ---
	var files storage.FileStorage
	if cfg.S3.Enabled() {
		files, err = storage.NewS3Storage(ctx, cfg.S3)
		if err != nil {
			slog.Error("could not initialize S3 storage", "error", err)
			os.Exit(1)
		}
		slog.Info("image uploads enabled", "bucket", cfg.S3.BucketName)
	} else {
		slog.Info("image uploads disabled: s3.bucket_name not set")
	}

	// --- Services ---
	services := api.Services{
		Region:   service.NewRegionService(repos.regions),
		Location: service.NewLocationService(repos.locations, repos.workouts, repos.tx),
		Workout:  service.NewWorkoutService(repos.workouts, repos.locations, repos.tx),
		Media:    service.NewMediaService(files),
	}
	gate := service.NewSecretGate(cfg.Admin.Secret, cfg.Admin.SecretHash)

	// --- Routes ---
	router := gin.New()
	api.SetupRoutes(router, api.Options{
		RequestTimeout:    cfg.Server.RequestTimeout,
		RequestsPerMinute: cfg.Admin.RequestsPerMinute,
		Burst:             cfg.Admin.Burst,
	}, gate, services)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.Server.RequestTimeout + 5*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "address", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}
	slog.Info("server exiting")
}

func openRepositories(ctx context.Context, cfg config.DatabaseConfig) (*repositories, error) {
	if cfg.Driver == config.DriverMemory {
		slog.Warn("using in-memory store; data is lost on restart")
		store := memory.NewStore()
		return &repositories{
			regions:   store.Regions(),
			locations: store.Locations(),
			workouts:  store.Workouts(),
			tx:        store,
			close:     func() error { return nil },
		}, nil
	}

	connector := mongo.NewConnector(cfg.URI, cfg.Name)
	db, err := connector.Connect(ctx, cfg.ConnectAttempts, cfg.ConnectBackoff)
	if err != nil {
		return nil, err
	}

	indexCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	if err := mongo.EnsureIndexes(indexCtx, db); err != nil {
		// Existing duplicate names block the unique index. Writes are still
		// checked by name in the service.
		slog.Warn("index creation failed", "error", err)
	}

	return &repositories{
		regions:   mongo.NewMongoRegionRepository(db),
		locations: mongo.NewMongoLocationRepository(db),
		workouts:  mongo.NewMongoWorkoutRepository(db),
		tx:        mongo.NewTransactor(db),
		close:     connector.Close,
	}, nil
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
