package results

import (
	"context"
	"errors"
	"fmt"

	"lottoLens/domain"
)

// ErrUnknownGame is returned for a game type outside the catalog.
var ErrUnknownGame = errors.New("unknown game type")

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

// DrawRepository contract interface
type DrawRepository interface {
	FindPageByGame(ctx context.Context, gameType string, limit, offset int) ([]domain.DrawRecord, error)
	CountByGame(ctx context.Context, gameType string) (int64, error)
}

// ResultPage is one page of stored draws, newest first.
type ResultPage struct {
	GameType string              `json:"game_type"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
	Total    int64               `json:"total"`
	Results  []domain.DrawRecord `json:"results"`
}

type resultService struct {
	drawRepo DrawRepository
}

func NewResultService(drawRepo DrawRepository) *resultService {
	return &resultService{drawRepo: drawRepo}
}

func (s *resultService) ListResults(ctx context.Context, gameType string, page, pageSize int) (*ResultPage, error) {
	if _, ok := domain.GameByType(gameType); !ok {
		return nil, ErrUnknownGame
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	total, err := s.drawRepo.CountByGame(ctx, gameType)
	if err != nil {
		return nil, fmt.Errorf("failed to count draw records: %w", err)
	}

	records, err := s.drawRepo.FindPageByGame(ctx, gameType, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to load draw records: %w", err)
	}

	return &ResultPage{
		GameType: gameType,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
		Results:  records,
	}, nil
}
