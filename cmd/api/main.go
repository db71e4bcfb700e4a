package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stylesync/stylesync/internal/api"
	"github.com/stylesync/stylesync/internal/api/middleware"
	"github.com/stylesync/stylesync/internal/config"
	"github.com/stylesync/stylesync/internal/logger"
	"github.com/stylesync/stylesync/internal/repository"
	"github.com/stylesync/stylesync/internal/service"
	"github.com/stylesync/stylesync/internal/storage"
)

func main() {
	// CONFIG_PATH points at the YAML config in production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatal("Failed to load config: %v", err)
	}

	logger.SetDefaultLogger(logger.NewDefault())
	defer logger.Sync()

	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	profileRepo := repository.NewProfileRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)

	// Object storage is optional; without it looks are served inline only
	var objectStorage storage.ObjectStorage
	if cfg.Storage.Enabled {
		objectStorage, err = storage.New(&storage.Config{
			Type:      cfg.Storage.Type,
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			UseSSL:    cfg.Storage.UseSSL,
			Bucket:    cfg.Storage.Bucket,
			Region:    cfg.Storage.Region,
			PublicURL: cfg.Storage.PublicURL,
		})
		if err != nil {
			logger.Fatal("Failed to initialize storage: %v", err)
		}
		if err := objectStorage.EnsureBucket(context.Background()); err != nil {
			logger.Fatal("Failed to ensure storage bucket: %v", err)
		}
	}

	textGen := service.NewTextGenService(&service.TextGenConfig{
		Endpoint:    cfg.TextGen.Endpoint,
		APIKey:      cfg.TextGen.APIKey,
		MaxTokens:   cfg.TextGen.MaxTokens,
		Temperature: cfg.TextGen.Temperature,
		Timeout:     cfg.TextGen.Timeout,
	})
	if !textGen.IsConfigured() {
		logger.Warn("Text generation credential missing, serving deterministic recommendations")
	}

	imageGen := service.NewImageGenService(&service.ImageGenConfig{
		Endpoint: cfg.ImageGen.Endpoint,
		APIKey:   cfg.ImageGen.APIKey,
		Model:    cfg.ImageGen.Model,
		Size:     cfg.ImageGen.Size,
		Quality:  cfg.ImageGen.Quality,
		Style:    cfg.ImageGen.Style,
		Timeout:  cfg.ImageGen.Timeout,
	})
	if !imageGen.IsConfigured() {
		logger.Warn("Image generation credential missing, serving placeholder images")
	}

	lookService := service.NewLookService(textGen, imageGen, objectStorage, service.LookServiceOptions{
		PlaceholderOnly: cfg.Pipeline.PlaceholderOnly,
		StageDelay:      cfg.Pipeline.StageDelay,
		LookCount:       cfg.Pipeline.LookCount,
	})

	trendsAPIKey := cfg.TextGen.APIKey
	if !cfg.Trends.Enabled {
		// Unconfigured credential routes trends to the curated fallback
		trendsAPIKey = ""
	}
	trendsService := service.NewTrendsService(&service.TextGenConfig{
		Endpoint:  cfg.TextGen.Endpoint,
		APIKey:    trendsAPIKey,
		MaxTokens: cfg.Trends.MaxTokens,
		Timeout:   cfg.TextGen.Timeout,
	})

	router := api.SetupRouter(api.RouterDeps{
		LookService:   lookService,
		TrendsService: trendsService,
		ProfileRepo:   profileRepo,
		FavoriteRepo:  favoriteRepo,
		Store:         objectStorage,
		CORS: middleware.CORSConfig{
			AllowedOrigins:  cfg.Server.CORS.AllowedOrigins,
			AllowAllOrigins: cfg.Server.CORS.AllowAllOrigins,
		},
	}, cfg.Server.Mode)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Info("Starting API server: port=%d, mode=%s", cfg.Server.Port, cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}
