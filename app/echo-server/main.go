package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lottoLens/app/echo-server/router"
	"lottoLens/business/accuracy"
	"lottoLens/business/auth"
	"lottoLens/business/predictor"
	"lottoLens/business/results"
	"lottoLens/business/scraper"
	"lottoLens/business/stats"
	"lottoLens/internal/middleware"
	psqlRepo "lottoLens/internal/repository/postgres"
	redisRepo "lottoLens/internal/repository/redis"
	"lottoLens/internal/repository/sheets"
	"lottoLens/internal/rest"
	"lottoLens/pkg/config"
	"lottoLens/pkg/database"
	redisdb "lottoLens/pkg/database/redis"
	"lottoLens/pkg/logger"
	"lottoLens/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting LottoLens", "version", cfg.App.Version)

	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to redis", "error", err)
	}

	// Init repo
	drawRepo := psqlRepo.NewDrawRepository(db)
	predictionRepo := psqlRepo.NewPredictionRepository(db)
	accuracyRepo := psqlRepo.NewAccuracyRepository(db)
	modelStateRepo := psqlRepo.NewModelStateRepository(db)
	statsCache := redisRepo.NewStatsCache(redisClient)
	tokenRepo := redisRepo.NewTokenRepository(redisClient)
	sheetsRepo := sheets.NewSheetsRepository(sheets.SheetsConfig{
		ExportURLFormat: cfg.Sheets.ExportURLFormat,
	})

	// Init service
	predictorService := predictor.NewPredictorService(drawRepo, predictionRepo, modelStateRepo)
	accuracyService := accuracy.NewAccuracyService(predictionRepo, drawRepo, accuracyRepo, predictorService)
	scraperService := scraper.NewScraperService(cfg.Sheets.SheetIDs, sheetsRepo, drawRepo, statsCache, accuracyService)
	statsService := stats.NewStatsService(drawRepo, statsCache, cfg.Share.Key)
	resultService := results.NewResultService(drawRepo)
	authService := auth.NewAuthService(cfg.Admin, cfg.JWT.SecretKey, tokenRepo)

	// Init handler
	gameHandler := rest.NewGameHandler()
	resultHandler := rest.NewResultHandler(resultService)
	scrapeHandler := rest.NewScrapeHandler(scraperService)
	statsHandler := rest.NewStatsHandler(statsService)
	predictionHandler := rest.NewPredictionHandler(predictorService, accuracyService)
	authHandler := rest.NewAuthHandler(authService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Auth middleware
	authRequired := middleware.AuthMiddlewareWithRedis(cfg.JWT.SecretKey, tokenRepo)
	adminOnly := middleware.AdminOnly()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupGameRoutes(api, gameHandler)
	router.SetupResultRoutes(api, resultHandler)
	router.SetupScrapeRoutes(api, scrapeHandler, authRequired, adminOnly)
	router.SetupStatsRoutes(api, statsHandler)
	router.SetupPredictionRoutes(api, predictionHandler, authRequired, adminOnly)
	router.SetupAuthRoutes(api, authHandler, authRequired)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	if err := redisClient.Close(); err != nil {
		logger.Error("Redis close error", "error", err)
	}

	logger.Info("Server stopped")
}
