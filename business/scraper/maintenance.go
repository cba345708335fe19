package scraper

import (
	"context"
	"errors"
	"fmt"
	"lottoLens/domain"
	"lottoLens/pkg/logger"
)

// Keep policies for duplicate collapse. Which variant of a duplicated
// key is authoritative is ambiguous in the historical data, so the
// caller must choose explicitly.
const (
	KeepOldest = "oldest"
	KeepNewest = "newest"
)

var ErrInvalidKeepPolicy = errors.New("keep policy must be oldest or newest")

// CollapseDuplicates removes records that share a composite key,
// keeping one per key according to the given policy. This is the only
// code path that deletes draw records; it exists to repair duplicate
// inflation left behind by earlier date-only-matching ingestion runs.
func (s *scraperService) CollapseDuplicates(ctx context.Context, gameType, keep string) (int, error) {
	if _, ok := domain.GameByType(gameType); !ok {
		return 0, ErrUnknownGame
	}

	if keep != KeepOldest && keep != KeepNewest {
		return 0, ErrInvalidKeepPolicy
	}

	if !s.acquire(gameType) {
		return 0, ErrScrapeInFlight
	}
	defer s.release(gameType)

	records, err := s.drawRepo.FindAllByGame(ctx, gameType)
	if err != nil {
		return 0, fmt.Errorf("failed to load records: %w", err)
	}

	keepers := make(map[string]domain.DrawRecord, len(records))
	var doomed []uint

	for _, rec := range records {
		key := compositeKey(rec.DrawDate, rec.DrawNumber)

		current, ok := keepers[key]
		if !ok {
			keepers[key] = rec
			continue
		}

		if prefer(rec, current, keep) {
			doomed = append(doomed, current.ID)
			keepers[key] = rec
		} else {
			doomed = append(doomed, rec.ID)
		}
	}

	if len(doomed) == 0 {
		return 0, nil
	}

	removed, err := s.drawRepo.DeleteByIDs(ctx, doomed)
	if err != nil {
		return 0, fmt.Errorf("failed to delete duplicates: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, gameType); err != nil {
			logger.Warn("Failed to invalidate stats cache", "game_type", gameType, "error", err.Error())
		}
	}

	logger.Info("Collapsed duplicate draw records",
		"game_type", gameType,
		"keep", keep,
		"removed", removed,
	)

	return int(removed), nil
}

// prefer reports whether candidate should replace current under the
// keep policy. Ties on created_at fall back to record ID so the
// outcome is stable across runs.
func prefer(candidate, current domain.DrawRecord, keep string) bool {
	if keep == KeepNewest {
		if candidate.CreatedAt.Equal(current.CreatedAt) {
			return candidate.ID > current.ID
		}
		return candidate.CreatedAt.After(current.CreatedAt)
	}

	if candidate.CreatedAt.Equal(current.CreatedAt) {
		return candidate.ID < current.ID
	}
	return candidate.CreatedAt.Before(current.CreatedAt)
}
