package stats

import (
	"context"
	"errors"
	"fmt"
	"lottoLens/domain"
	"lottoLens/pkg/logger"
)

var ErrUnknownGame = errors.New("unknown game type")

// DrawRepository contract interface
type DrawRepository interface {
	FindAllByGame(ctx context.Context, gameType string) ([]domain.DrawRecord, error)
}

// StatsCache contract interface
type StatsCache interface {
	Get(ctx context.Context, gameType string) (*domain.GameStats, error)
	Set(ctx context.Context, gameType string, stats *domain.GameStats) error
}

type statsService struct {
	drawRepo DrawRepository
	cache    StatsCache
	shareKey string
}

func NewStatsService(drawRepo DrawRepository, cache StatsCache, shareKey string) *statsService {
	return &statsService{
		drawRepo: drawRepo,
		cache:    cache,
		shareKey: shareKey,
	}
}

// GetStats computes the full statistics projection for a game. An
// empty record set is a valid state, not an error: it yields a
// zero-count frequency table and an absent summary.
func (s *statsService) GetStats(ctx context.Context, gameType string) (*domain.GameStats, error) {
	game, ok := domain.GameByType(gameType)
	if !ok {
		return nil, ErrUnknownGame
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, gameType)
		if err != nil {
			logger.Warn("Stats cache read failed", "game_type", gameType, "error", err.Error())
		} else if cached != nil {
			return cached, nil
		}
	}

	records, err := s.drawRepo.FindAllByGame(ctx, gameType)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	stats := computeStats(game, records)

	if s.cache != nil {
		if err := s.cache.Set(ctx, gameType, stats); err != nil {
			logger.Warn("Stats cache write failed", "game_type", gameType, "error", err.Error())
		}
	}

	return stats, nil
}

// GetDistribution returns the Gaussian (sum, product) analysis of the
// stored draws.
func (s *statsService) GetDistribution(ctx context.Context, gameType string) (*domain.DrawDistribution, error) {
	game, ok := domain.GameByType(gameType)
	if !ok {
		return nil, ErrUnknownGame
	}

	records, err := s.drawRepo.FindAllByGame(ctx, gameType)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	dist := distribution(records, game)

	return &dist, nil
}

// computeStats is the pure projection: re-derivable at any time from
// the stored record set alone.
func computeStats(game domain.Game, records []domain.DrawRecord) *domain.GameStats {
	table := frequencyTable(records, game)

	return &domain.GameStats{
		GameType:       game.Type,
		Frequency:      table,
		HotNumbers:     hotNumbers(table),
		ColdNumbers:    coldNumbers(table),
		OverdueNumbers: overdueNumbers(records, game),
		Summary:        summarize(records),
	}
}
