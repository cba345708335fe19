package stats

import (
	"context"
	"errors"
	"fmt"
	"lottoLens/domain"
	"lottoLens/pkg/logger"
	"strconv"
	"strings"
	"time"

	"github.com/pobyzaarif/goshortcute"
)

const shareCodeTTL = 24 * time.Hour

var ErrInvalidShareCode = errors.New("invalid or expired share code")

// BuildShareCode issues a time-limited opaque code that resolves to a
// game's stats snapshot, for dashboard links that need no login.
func (s *statsService) BuildShareCode(gameType string) (string, error) {
	if _, ok := domain.GameByType(gameType); !ok {
		return "", ErrUnknownGame
	}

	expAt := time.Now().Add(shareCodeTTL).Unix()
	payload := fmt.Sprintf("%v|%v", gameType, expAt)

	encrypted, err := goshortcute.AESCBCEncrypt([]byte(payload), []byte(s.shareKey))
	if err != nil {
		logger.Error("Failed to encrypt share code", err)
		return "", errors.New("failed to build share code")
	}

	return goshortcute.StringtoBase64Encode(encrypted), nil
}

// ResolveShareCode validates a share code and returns the stats it
// points at.
func (s *statsService) ResolveShareCode(ctx context.Context, code string) (*domain.GameStats, error) {
	strDecode := goshortcute.StringtoBase64Decode(code)

	payload, err := goshortcute.AESCBCDecrypt([]byte(strDecode), []byte(s.shareKey))
	if err != nil {
		logger.Error("Failed to decrypt share code", err)
		return nil, ErrInvalidShareCode
	}

	parts := strings.Split(payload, "|")
	if len(parts) != 2 {
		return nil, ErrInvalidShareCode
	}

	gameType := parts[0]

	ts, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return nil, ErrInvalidShareCode
	}

	if time.Now().After(time.Unix(ts, 0)) {
		return nil, ErrInvalidShareCode
	}

	return s.GetStats(ctx, gameType)
}
