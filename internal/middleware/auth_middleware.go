package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"lottoLens/pkg/logger"
	"lottoLens/pkg/utils"
)

// TokenValidator checks that a token was issued by us and has not
// been revoked.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (string, error)
}

type responseError struct {
	Message string `json:"message"`
}

func bearerToken(c echo.Context) (string, bool) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// AuthMiddleware validates the bearer JWT on its signature and expiry
// alone, without the Redis revocation check.
func AuthMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, ok := bearerToken(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, responseError{Message: "missing or malformed authorization header"})
			}

			claims, err := utils.ParseJWT(tokenString, secret)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, responseError{Message: "invalid token"})
			}

			expAt, err := claims.GetExpirationTime()
			if err != nil || time.Now().After(expAt.Time) {
				return c.JSON(http.StatusUnauthorized, responseError{Message: "token expired"})
			}

			c.Set("email", claims.Email)
			c.Set("role", claims.Role)
			c.Set("token", tokenString)

			return next(c)
		}
	}
}

// AuthMiddlewareWithRedis additionally requires the token to still be
// present in the Redis token store, so revoked tokens are rejected
// before their JWT expiry.
func AuthMiddlewareWithRedis(secret string, tokenValidator TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, ok := bearerToken(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, responseError{Message: "missing or malformed authorization header"})
			}

			claims, err := utils.ParseJWT(tokenString, secret)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, responseError{Message: "invalid token"})
			}

			expAt, err := claims.GetExpirationTime()
			if err != nil || time.Now().After(expAt.Time) {
				return c.JSON(http.StatusUnauthorized, responseError{Message: "token expired"})
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()

			email, err := tokenValidator.ValidateToken(ctx, tokenString)
			if err != nil {
				logger.Warn("token not found in redis", "error", err)
				return c.JSON(http.StatusUnauthorized, responseError{Message: "token expired or revoked"})
			}
			if email != claims.Email {
				return c.JSON(http.StatusUnauthorized, responseError{Message: "invalid token"})
			}

			c.Set("email", claims.Email)
			c.Set("role", claims.Role)
			c.Set("token", tokenString)

			return next(c)
		}
	}
}

// AdminOnly requires a prior auth middleware to have set the role.
func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(string)
			if !ok || strings.ToLower(role) != "admin" {
				return c.JSON(http.StatusForbidden, responseError{Message: "admin access required"})
			}

			return next(c)
		}
	}
}
