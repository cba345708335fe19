package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	redisrepo "lottoLens/internal/repository/redis"
	"lottoLens/pkg/config"
	"lottoLens/pkg/logger"
	"lottoLens/pkg/utils"
)

const tokenTTL = 24 * time.Hour

// ErrInvalidCredentials covers both a wrong email and a wrong
// password so the response does not leak which one failed.
var ErrInvalidCredentials = errors.New("invalid email or password")

// TokenStore contract interface
type TokenStore interface {
	StoreToken(ctx context.Context, data redisrepo.TokenData, ttl time.Duration) error
	RevokeToken(ctx context.Context, email, token string) error
}

// LoginResult carries the issued token back to the handler.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
}

type authService struct {
	admin  config.AdminConfig
	secret string
	tokens TokenStore
}

func NewAuthService(admin config.AdminConfig, secret string, tokens TokenStore) *authService {
	return &authService{
		admin:  admin,
		secret: secret,
		tokens: tokens,
	}
}

// Login checks the operator credentials and issues a JWT. The token
// is also recorded in Redis so it can be revoked before expiry.
func (s *authService) Login(ctx context.Context, email, password, ip, userAgent string) (*LoginResult, error) {
	if email != s.admin.Email {
		return nil, ErrInvalidCredentials
	}
	if !utils.CheckPassword(password, s.admin.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	expiresAt := now.Add(tokenTTL)

	token, err := utils.GenerateJWT(email, "admin", s.secret, tokenTTL, uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	data := redisrepo.TokenData{
		Email:     email,
		Role:      "admin",
		Token:     token,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
		IPAddress: ip,
		UserAgent: userAgent,
	}
	if err := s.tokens.StoreToken(ctx, data, tokenTTL); err != nil {
		// The JWT is still valid on its own signature; losing the
		// Redis copy only costs revocability.
		logger.Warn("failed to record token in redis", "email", email, "error", err)
	}

	return &LoginResult{Token: token, ExpiresAt: expiresAt}, nil
}

// Logout revokes the stored token. A token that was never recorded is
// treated as already revoked.
func (s *authService) Logout(ctx context.Context, email, token string) error {
	if err := s.tokens.RevokeToken(ctx, email, token); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}
