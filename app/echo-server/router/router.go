package router

import (
	"github.com/labstack/echo/v4"

	"lottoLens/internal/rest"
)

func SetupGameRoutes(api *echo.Group, handler *rest.GameHandler) {
	api.GET("/health", handler.Health)
	api.GET("/games", handler.ListGames)
}

func SetupResultRoutes(api *echo.Group, handler *rest.ResultHandler) {
	api.GET("/results/:game_type", handler.ListResults)
}

func SetupScrapeRoutes(api *echo.Group, handler *rest.ScrapeHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	api.POST("/scrape", handler.Scrape, authRequired, adminOnly)
	api.POST("/admin/maintenance/dedupe/:game_type", handler.Dedupe, authRequired, adminOnly)
}

func SetupStatsRoutes(api *echo.Group, handler *rest.StatsHandler) {
	statsGroup := api.Group("/stats")
	statsGroup.GET("/:game_type", handler.GetStats)
	statsGroup.GET("/:game_type/gaussian", handler.GetDistribution)
	statsGroup.GET("/:game_type/share", handler.CreateShareCode)

	api.GET("/shared/:code", handler.ResolveShareCode)
}

func SetupPredictionRoutes(api *echo.Group, handler *rest.PredictionHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	api.POST("/predict/:game_type", handler.Predict, authRequired, adminOnly)
	api.GET("/predictions/:game_type", handler.GetPredictions)
	api.GET("/predictions/:game_type/accuracy", handler.GetAccuracy)
}

func SetupAuthRoutes(api *echo.Group, handler *rest.AuthHandler, authRequired echo.MiddlewareFunc) {
	authGroup := api.Group("/auth")
	authGroup.POST("/login", handler.Login)
	authGroup.POST("/logout", handler.Logout, authRequired)
}
