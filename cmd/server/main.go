package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/studyprep/content-service/internal/cache"
	"github.com/studyprep/content-service/internal/config"
	"github.com/studyprep/content-service/internal/handlers"
	"github.com/studyprep/content-service/internal/middleware"
	"github.com/studyprep/content-service/internal/remote"
	"github.com/studyprep/content-service/internal/repositories/postgres"
	"github.com/studyprep/content-service/internal/services"
	"github.com/studyprep/content-service/internal/utils"
	"github.com/studyprep/content-service/internal/validator"
	"github.com/studyprep/content-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := utils.NewLogger(cfg.Environment)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}

	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		logger.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	publisher, err := cfg.Events.CreateEventPublisher(logger)
	if err != nil {
		logger.Error("failed to create event publisher", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	if cfg.AuthEnabled {
		middleware.InitAuth(cfg)
	}

	v := validator.New()
	cacheService := cache.NewRedisCache(redisClient, logger)
	remoteClient := remote.NewClient(cfg.RemoteAPIBaseURL, cfg.RemoteAPIToken)
	jobRepo := postgres.NewImportJobRepository(db)

	templateService := services.NewTemplateService(remoteClient, cacheService, publisher, v, logger)
	importService := services.NewImportExportService(jobRepo, publisher, v, logger)

	router := gin.New()
	manager := handlers.NewHandlerManager(templateService, importService, remoteClient, logger)
	manager.SetupRoutes(router, cfg, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("content service listening", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
}
