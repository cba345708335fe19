package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type TokenData struct {
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Token     string    `json:"token"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
	IPAddress string    `json:"ip_address,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
}

type TokenRepository struct {
	client *redis.Client
}

func NewTokenRepository(client *redis.Client) *TokenRepository {
	return &TokenRepository{
		client: client,
	}
}

func (r *TokenRepository) StoreToken(ctx context.Context, data TokenData, ttl time.Duration) error {
	key := fmt.Sprintf("token:user:%s", data.Email)

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal token data: %w", err)
	}

	if err := r.client.Set(ctx, key, jsonData, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store token in Redis: %w", err)
	}

	// reverse lookup token -> email for quick validation
	tokenKey := fmt.Sprintf("token:lookup:%s", data.Token)
	if err := r.client.Set(ctx, tokenKey, data.Email, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store token lookup: %w", err)
	}

	return nil
}

// ValidateToken checks that a token is still live and returns the
// email it belongs to.
func (r *TokenRepository) ValidateToken(ctx context.Context, token string) (string, error) {
	tokenKey := fmt.Sprintf("token:lookup:%s", token)

	email, err := r.client.Get(ctx, tokenKey).Result()
	if err != nil {
		if err == redis.Nil {
			return "", errors.New("token not found or expired")
		}
		return "", fmt.Errorf("failed to validate token: %w", err)
	}

	return email, nil
}

func (r *TokenRepository) RevokeToken(ctx context.Context, email, token string) error {
	key := fmt.Sprintf("token:user:%s", email)
	tokenKey := fmt.Sprintf("token:lookup:%s", token)

	if err := r.client.Del(ctx, key, tokenKey).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}
