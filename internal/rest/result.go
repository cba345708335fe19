package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"

	"lottoLens/business/results"
	"lottoLens/pkg/logger"
)

type ResultService interface {
	ListResults(ctx context.Context, gameType string, page, pageSize int) (*results.ResultPage, error)
}

type ResultHandler struct {
	resultService ResultService
	timeout       time.Duration
}

func NewResultHandler(resultService ResultService) *ResultHandler {
	return &ResultHandler{
		resultService: resultService,
		timeout:       10 * time.Second,
	}
}

// ListResults returns a page of stored draws, newest first.
func (h *ResultHandler) ListResults(c echo.Context) error {
	gameType := c.Param("game_type")

	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("page_size"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	resultPage, err := h.resultService.ListResults(ctx, gameType, page, pageSize)
	if err != nil {
		if errors.Is(err, results.ErrUnknownGame) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to list results", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(resultPage))
}
