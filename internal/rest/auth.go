package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"lottoLens/business/auth"
	"lottoLens/pkg/logger"
)

type AuthService interface {
	Login(ctx context.Context, email, password, ip, userAgent string) (*auth.LoginResult, error)
	Logout(ctx context.Context, email, token string) error
}

type AuthHandler struct {
	authService AuthService
	validator   *validator.Validate
	timeout     time.Duration
}

func NewAuthHandler(authService AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator.New(),
		timeout:     10 * time.Second,
	}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind login request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	ipAddress := c.RealIP()
	userAgent := c.Request().UserAgent()

	result, err := h.authService.Login(ctx, req.Email, req.Password, ipAddress, userAgent)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to login", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":    "Login successful",
		"token":      result.Token,
		"expires_at": result.ExpiresAt,
	})
}

// Logout revokes the caller's token. The email and token come from
// the auth middleware.
func (h *AuthHandler) Logout(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	email, ok := c.Get("email").(string)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "user not authenticated"})
	}
	token, ok := c.Get("token").(string)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "user not authenticated"})
	}

	if err := h.authService.Logout(ctx, email, token); err != nil {
		logger.Error("Failed to logout", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Logout successful"})
}
