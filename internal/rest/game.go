package rest

import (
	"net/http"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"

	"lottoLens/domain"
)

type GameHandler struct{}

func NewGameHandler() *GameHandler {
	return &GameHandler{}
}

// ListGames returns the supported game catalog.
func (h *GameHandler) ListGames(c echo.Context) error {
	return c.JSON(http.StatusOK, fres.Response.StatusOK(domain.AllGames()))
}

// Health is the liveness probe.
func (h *GameHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
