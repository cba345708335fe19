package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"

	"lottoLens/business/stats"
	"lottoLens/domain"
	"lottoLens/pkg/logger"
)

type StatsService interface {
	GetStats(ctx context.Context, gameType string) (*domain.GameStats, error)
	GetDistribution(ctx context.Context, gameType string) (*domain.DrawDistribution, error)
	BuildShareCode(gameType string) (string, error)
	ResolveShareCode(ctx context.Context, code string) (*domain.GameStats, error)
}

type StatsHandler struct {
	statsService StatsService
	timeout      time.Duration
}

func NewStatsHandler(statsService StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
		timeout:      15 * time.Second,
	}
}

// GetStats returns frequency, hot, cold, overdue and summary figures
// for one game.
func (h *StatsHandler) GetStats(c echo.Context) error {
	gameType := c.Param("game_type")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	gameStats, err := h.statsService.GetStats(ctx, gameType)
	if err != nil {
		if errors.Is(err, stats.ErrUnknownGame) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to compute stats", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(gameStats))
}

// GetDistribution returns the sum and log-product distribution with a
// gaussian fit over the stored draws.
func (h *StatsHandler) GetDistribution(c echo.Context) error {
	gameType := c.Param("game_type")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	dist, err := h.statsService.GetDistribution(ctx, gameType)
	if err != nil {
		if errors.Is(err, stats.ErrUnknownGame) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to compute distribution", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(dist))
}

// CreateShareCode issues an encrypted code that resolves to this
// game's stats for the next day.
func (h *StatsHandler) CreateShareCode(c echo.Context) error {
	gameType := c.Param("game_type")

	code, err := h.statsService.BuildShareCode(gameType)
	if err != nil {
		if errors.Is(err, stats.ErrUnknownGame) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to build share code", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]string{
		"game_type": gameType,
		"code":      code,
	}))
}

// ResolveShareCode returns the stats behind a previously issued code.
func (h *StatsHandler) ResolveShareCode(c echo.Context) error {
	code := c.Param("code")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	gameStats, err := h.statsService.ResolveShareCode(ctx, code)
	if err != nil {
		if errors.Is(err, stats.ErrInvalidShareCode) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to resolve share code", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(gameStats))
}
