package scraper

import (
	"context"
	"errors"
	"fmt"
	"lottoLens/domain"
	"lottoLens/pkg/logger"
	"lottoLens/pkg/metrics"
	"sync"
	"time"
)

var (
	ErrUnknownGame       = errors.New("unknown game type")
	ErrSourceUnavailable = errors.New("sheet source unavailable")
	ErrScrapeInFlight    = errors.New("scrape already in progress for this game")
)

// SheetSource contract interface
type SheetSource interface {
	FetchRows(ctx context.Context, sheetID string) ([][]string, error)
}

// DrawRepository contract interface
type DrawRepository interface {
	CreateBatch(ctx context.Context, records []*domain.DrawRecord) error
	FindAllByGame(ctx context.Context, gameType string) ([]domain.DrawRecord, error)
	DeleteByIDs(ctx context.Context, ids []uint) (int64, error)
}

// StatsInvalidator drops cached statistics after new records land.
type StatsInvalidator interface {
	Invalidate(ctx context.Context, gameType string) error
}

// AccuracyScorer scores stored predictions against newly landed draws.
type AccuracyScorer interface {
	ScoreUnscored(ctx context.Context, gameType string) (int, error)
}

type scraperService struct {
	sheetIDs map[string]string
	source   SheetSource
	drawRepo DrawRepository
	cache    StatsInvalidator
	scorer   AccuracyScorer

	// At most one ingestion run per game may be in flight: the store
	// has no compare-and-swap on the composite key, so concurrent runs
	// for the same game could both insert the same draw.
	mu      sync.Mutex
	running map[string]bool
}

func NewScraperService(
	sheetIDs map[string]string,
	source SheetSource,
	drawRepo DrawRepository,
	cache StatsInvalidator,
	scorer AccuracyScorer,
) *scraperService {
	return &scraperService{
		sheetIDs: sheetIDs,
		source:   source,
		drawRepo: drawRepo,
		cache:    cache,
		scorer:   scorer,
		running:  make(map[string]bool),
	}
}

func (s *scraperService) acquire(gameType string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running[gameType] {
		return false
	}
	s.running[gameType] = true
	return true
}

func (s *scraperService) release(gameType string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.running, gameType)
}

// ScrapeGame runs the full ingestion pipeline for one game: fetch,
// parse, dedup, persist. Per-row failures are counted and skipped;
// only source unavailability and persistence failures surface as
// errors. A systemic parse failure (zero valid rows from a non-empty
// sheet) is reported as a warning on the returned stats.
func (s *scraperService) ScrapeGame(ctx context.Context, gameType string) (domain.ScrapeGameStats, error) {
	game, ok := domain.GameByType(gameType)
	if !ok {
		return domain.ScrapeGameStats{GameType: gameType}, ErrUnknownGame
	}

	sheetID, ok := s.sheetIDs[gameType]
	if !ok {
		return domain.ScrapeGameStats{GameType: gameType}, fmt.Errorf("%w: no sheet configured for %s", ErrSourceUnavailable, gameType)
	}

	if !s.acquire(gameType) {
		return domain.ScrapeGameStats{GameType: gameType}, ErrScrapeInFlight
	}
	defer s.release(gameType)

	metrics.ScrapeTotal.Inc()
	start := time.Now()
	defer func() {
		metrics.ScrapeDuration.Observe(time.Since(start).Seconds())
	}()

	stats := domain.ScrapeGameStats{
		GameType: gameType,
		GameName: game.Name,
	}

	rows, err := s.source.FetchRows(ctx, sheetID)
	if err != nil {
		metrics.ScrapeFailures.Inc()
		logger.Error("Failed to fetch sheet", "game_type", gameType, "error", err.Error())
		return stats, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	parsed, rejected := s.parseRows(game, rows)
	stats.TotalInSheet = len(parsed)
	stats.Rejected = rejected

	metrics.RowsParsed.Add(float64(len(parsed)))
	metrics.RowsRejected.Add(float64(rejected))

	if len(parsed) == 0 && len(rows) > 0 {
		// Usually a column-layout change upstream, not dirty data.
		stats.Warning = "no valid rows parsed from non-empty sheet"
		logger.Warn("Systemic parse failure", "game_type", gameType, "rows", len(rows))
		return stats, nil
	}

	existing, err := s.drawRepo.FindAllByGame(ctx, gameType)
	if err != nil {
		metrics.ScrapeFailures.Inc()
		logger.Error("Failed to load existing records", "game_type", gameType, "error", err.Error())
		return stats, fmt.Errorf("failed to load existing records: %w", err)
	}
	stats.ExistingInDB = len(existing)

	newRecords := filterNew(existing, parsed)
	stats.NewResults = len(newRecords)

	if len(newRecords) > 0 {
		batch := make([]*domain.DrawRecord, len(newRecords))
		for i := range newRecords {
			batch[i] = &newRecords[i]
		}

		if err := s.drawRepo.CreateBatch(ctx, batch); err != nil {
			metrics.ScrapeFailures.Inc()
			logger.Error("Failed to persist new records", "game_type", gameType, "error", err.Error())
			return stats, fmt.Errorf("failed to persist new records: %w", err)
		}

		stats.Added = len(newRecords)
		metrics.RecordsInserted.Add(float64(stats.Added))

		if s.cache != nil {
			if err := s.cache.Invalidate(ctx, gameType); err != nil {
				logger.Warn("Failed to invalidate stats cache", "game_type", gameType, "error", err.Error())
			}
		}

		if s.scorer != nil {
			if scored, err := s.scorer.ScoreUnscored(ctx, gameType); err != nil {
				logger.Warn("Failed to auto-score predictions", "game_type", gameType, "error", err.Error())
			} else if scored > 0 {
				logger.Info("Auto-scored predictions against new draws", "game_type", gameType, "scored", scored)
			}
		}
	}

	logger.Info("Scrape completed",
		"game_type", gameType,
		"parsed", len(parsed),
		"rejected", rejected,
		"existing", stats.ExistingInDB,
		"added", stats.Added,
	)

	return stats, nil
}

// ScrapeAll runs ingestion for every configured game. Per-game
// failures are recorded on that game's stats and do not stop the
// remaining games.
func (s *scraperService) ScrapeAll(ctx context.Context) (domain.ScrapeStats, error) {
	if err := ctx.Err(); err != nil {
		return domain.ScrapeStats{}, fmt.Errorf("context error: %w", err)
	}

	all := domain.ScrapeStats{
		TotalGames: len(s.sheetIDs),
		Games:      make(map[string]domain.ScrapeGameStats, len(s.sheetIDs)),
	}

	for _, game := range domain.AllGames() {
		if _, ok := s.sheetIDs[game.Type]; !ok {
			continue
		}

		stats, err := s.ScrapeGame(ctx, game.Type)
		if err != nil {
			stats.Error = err.Error()
		}

		all.Games[game.Type] = stats
		all.TotalNew += stats.NewResults
		all.TotalAdded += stats.Added
	}

	return all, nil
}

// parseRows walks the sheet rows once, resolving the column layout
// from the header when one is present. Returns the parsed records and
// the reject count; game-mismatch rows are skipped without counting.
func (s *scraperService) parseRows(game domain.Game, rows [][]string) ([]domain.DrawRecord, int) {
	if len(rows) == 0 {
		return nil, 0
	}

	layout, hasHeader := resolveColumns(rows[0])
	dataRows := rows
	if hasHeader {
		dataRows = rows[1:]
	}

	parsed := make([]domain.DrawRecord, 0, len(dataRows))
	rejected := 0

	for i, row := range dataRows {
		record, err := parseRow(game, layout, row)
		if err != nil {
			if errors.Is(err, errGameMismatch) {
				continue
			}
			rejected++
			logger.Debug("Rejected sheet row", "game_type", game.Type, "row", i, "error", err.Error())
			continue
		}
		parsed = append(parsed, record)
	}

	return parsed, rejected
}
