package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"

	"lottoLens/business/accuracy"
	"lottoLens/business/predictor"
	"lottoLens/domain"
	"lottoLens/pkg/logger"
)

const defaultPredictionLimit = 50

type PredictorService interface {
	GeneratePredictions(ctx context.Context, gameType string) ([]domain.PredictionRecord, error)
	GetPredictions(ctx context.Context, gameType string, limit int) ([]domain.PredictionRecord, error)
}

type AccuracyService interface {
	GetAccuracy(ctx context.Context, gameType, modelType string, limit int) ([]domain.PredictionAccuracy, error)
}

type PredictionHandler struct {
	predictorService PredictorService
	accuracyService  AccuracyService
	timeout          time.Duration
}

func NewPredictionHandler(predictorService PredictorService, accuracyService AccuracyService) *PredictionHandler {
	return &PredictionHandler{
		predictorService: predictorService,
		accuracyService:  accuracyService,
		timeout:          30 * time.Second,
	}
}

// Predict runs every model against the stored history and persists
// one prediction per model for the next draw.
func (h *PredictionHandler) Predict(c echo.Context) error {
	gameType := c.Param("game_type")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	records, err := h.predictorService.GeneratePredictions(ctx, gameType)
	if err != nil {
		switch {
		case errors.Is(err, predictor.ErrUnknownGame):
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		case errors.Is(err, predictor.ErrInsufficientHistory):
			return c.JSON(http.StatusUnprocessableEntity, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to generate predictions", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(records))
}

// GetPredictions lists recently stored predictions for one game.
func (h *PredictionHandler) GetPredictions(c echo.Context) error {
	gameType := c.Param("game_type")

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 {
		limit = defaultPredictionLimit
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	records, err := h.predictorService.GetPredictions(ctx, gameType, limit)
	if err != nil {
		if errors.Is(err, predictor.ErrUnknownGame) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to list predictions", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(records))
}

// GetAccuracy lists accuracy records, optionally narrowed to one
// model with ?model=.
func (h *PredictionHandler) GetAccuracy(c echo.Context) error {
	gameType := c.Param("game_type")
	modelType := c.QueryParam("model")

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 {
		limit = defaultPredictionLimit
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	records, err := h.accuracyService.GetAccuracy(ctx, gameType, modelType, limit)
	if err != nil {
		if errors.Is(err, accuracy.ErrUnknownGame) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to list accuracy records", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(records))
}
