//go:build !integration

package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	redisrepo "lottoLens/internal/repository/redis"
	"lottoLens/pkg/config"
	"lottoLens/pkg/utils"
)

type fakeTokenStore struct {
	stored  []redisrepo.TokenData
	revoked []string
}

func (f *fakeTokenStore) StoreToken(_ context.Context, data redisrepo.TokenData, _ time.Duration) error {
	f.stored = append(f.stored, data)
	return nil
}

func (f *fakeTokenStore) RevokeToken(_ context.Context, _, token string) error {
	f.revoked = append(f.revoked, token)
	return nil
}

const testSecret = "test-jwt-secret"

func newTestService(t *testing.T, store *fakeTokenStore) *authService {
	t.Helper()

	hash, err := utils.HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	admin := config.AdminConfig{Email: "ops@example.com", PasswordHash: hash}
	return NewAuthService(admin, testSecret, store)
}

func TestLogin_Success(t *testing.T) {
	store := &fakeTokenStore{}
	svc := newTestService(t, store)

	result, err := svc.Login(context.Background(), "ops@example.com", "correct-horse", "127.0.0.1", "test-agent")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.Token == "" {
		t.Fatal("empty token")
	}
	if !result.ExpiresAt.After(time.Now()) {
		t.Errorf("expiry %v is not in the future", result.ExpiresAt)
	}

	claims, err := utils.ParseJWT(result.Token, testSecret)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.Email != "ops@example.com" || claims.Role != "admin" {
		t.Errorf("claims = %s/%s, want ops@example.com/admin", claims.Email, claims.Role)
	}

	if len(store.stored) != 1 {
		t.Fatalf("stored tokens = %d, want 1", len(store.stored))
	}
	if store.stored[0].IPAddress != "127.0.0.1" || store.stored[0].UserAgent != "test-agent" {
		t.Errorf("token metadata = %+v", store.stored[0])
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestService(t, &fakeTokenStore{})

	_, err := svc.Login(context.Background(), "ops@example.com", "wrong", "", "")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLogin_WrongEmail(t *testing.T) {
	svc := newTestService(t, &fakeTokenStore{})

	_, err := svc.Login(context.Background(), "intruder@example.com", "correct-horse", "", "")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLogout_RevokesToken(t *testing.T) {
	store := &fakeTokenStore{}
	svc := newTestService(t, store)

	if err := svc.Logout(context.Background(), "ops@example.com", "some-token"); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if len(store.revoked) != 1 || store.revoked[0] != "some-token" {
		t.Errorf("revoked = %v, want [some-token]", store.revoked)
	}
}
