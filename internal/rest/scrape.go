package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"lottoLens/business/scraper"
	"lottoLens/domain"
	"lottoLens/pkg/logger"
)

type ScraperService interface {
	ScrapeGame(ctx context.Context, gameType string) (domain.ScrapeGameStats, error)
	ScrapeAll(ctx context.Context) (domain.ScrapeStats, error)
	CollapseDuplicates(ctx context.Context, gameType, keep string) (int, error)
}

type ScrapeHandler struct {
	scraperService ScraperService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewScrapeHandler(scraperService ScraperService) *ScrapeHandler {
	return &ScrapeHandler{
		scraperService: scraperService,
		validator:      validator.New(),
		// A full run fetches five sheets sequentially.
		timeout: 5 * time.Minute,
	}
}

type ScrapeRequest struct {
	GameType string `json:"game_type,omitempty"`
}

type DedupeRequest struct {
	Keep string `json:"keep" validate:"required,oneof=oldest newest"`
}

// Scrape ingests fresh draws for one game, or for every game when the
// body names none.
func (h *ScrapeHandler) Scrape(c echo.Context) error {
	var req ScrapeRequest

	// An empty body means a full run.
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid scrape request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if req.GameType == "" {
		stats, err := h.scraperService.ScrapeAll(ctx)
		if err != nil {
			logger.Error("Failed to scrape all games", err)
			return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusOK, fres.Response.StatusOK(stats))
	}

	stats, err := h.scraperService.ScrapeGame(ctx, req.GameType)
	if err != nil {
		return h.mapScrapeError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(stats))
}

// Dedupe collapses stored duplicates that share a draw date and draw
// number, keeping either the oldest or the newest row.
func (h *ScrapeHandler) Dedupe(c echo.Context) error {
	gameType := c.Param("game_type")

	var req DedupeRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid dedupe request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	removed, err := h.scraperService.CollapseDuplicates(ctx, gameType, req.Keep)
	if err != nil {
		switch {
		case errors.Is(err, scraper.ErrUnknownGame):
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		case errors.Is(err, scraper.ErrInvalidKeepPolicy):
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		case errors.Is(err, scraper.ErrScrapeInFlight):
			return c.JSON(http.StatusConflict, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to collapse duplicates", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]interface{}{
		"game_type": gameType,
		"keep":      req.Keep,
		"removed":   removed,
	}))
}

func (h *ScrapeHandler) mapScrapeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, scraper.ErrUnknownGame):
		return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
	case errors.Is(err, scraper.ErrScrapeInFlight):
		return c.JSON(http.StatusConflict, ResponseError{Message: err.Error()})
	case errors.Is(err, scraper.ErrSourceUnavailable):
		return c.JSON(http.StatusBadGateway, ResponseError{Message: err.Error()})
	}
	logger.Error("Failed to scrape game", err)
	return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
}
