package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lottoLens/pkg/logger"
)

// ErrorHandler is the echo HTTPErrorHandler. Handlers map their own
// service errors to statuses; anything reaching here is either an
// echo routing error or a panic recovered upstream.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "internal server error"

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("unhandled request error", "path", c.Request().URL.Path, "error", err)
	}

	if jsonErr := c.JSON(code, responseError{Message: message}); jsonErr != nil {
		logger.Error("failed to write error response", jsonErr)
	}
}
