package scraper

import (
	"errors"
	"fmt"
	"lottoLens/domain"
	"strconv"
	"strings"
	"time"
)

// drawDateLayout matches the sheet's M/D/YYYY format, e.g. "4/1/2015".
const drawDateLayout = "1/2/2006"

// errGameMismatch marks a row that belongs to a different game in a
// mixed-game sheet. Skipped silently, not counted as a reject.
var errGameMismatch = errors.New("row belongs to a different game")

// columnLayout maps the sheet columns of interest to their indices.
// -1 means the column is absent.
type columnLayout struct {
	game        int
	combination int
	date        int
	jackpot     int
	winners     int
}

// defaultLayout is the PCSO result-table order:
// LOTTO GAME, COMBINATIONS, DRAW DATE, JACKPOT (PHP), WINNERS.
var defaultLayout = columnLayout{game: 0, combination: 1, date: 2, jackpot: 3, winners: 4}

// resolveColumns maps header names to a column layout. Exact names
// are preferred, partial matches are the fallback. Returns false when
// the header row does not carry the required columns, in which case
// the caller should assume the default positional layout with no
// header row.
func resolveColumns(header []string) (columnLayout, bool) {
	layout := columnLayout{game: -1, combination: -1, date: -1, jackpot: -1, winners: -1}

	for i, col := range header {
		name := strings.ToUpper(strings.TrimSpace(col))

		switch {
		case name == "COMBINATIONS":
			layout.combination = i
		case name == "DRAW DATE" || name == "DATE":
			layout.date = i
		case name == "LOTTO GAME" || name == "GAME":
			layout.game = i
		case strings.Contains(name, "JACKPOT") || strings.Contains(name, "PRIZE"):
			if layout.jackpot < 0 {
				layout.jackpot = i
			}
		case strings.Contains(name, "WINNER"):
			if layout.winners < 0 {
				layout.winners = i
			}
		case strings.Contains(name, "COMBINATION"):
			if layout.combination < 0 {
				layout.combination = i
			}
		case strings.Contains(name, "DATE") || strings.Contains(name, "DRAW"):
			if layout.date < 0 {
				layout.date = i
			}
		case strings.Contains(name, "GAME"):
			if layout.game < 0 {
				layout.game = i
			}
		}
	}

	if layout.combination < 0 || layout.date < 0 {
		return defaultLayout, false
	}

	return layout, true
}

// parseRow converts one sheet row into a draw record for the given
// game. A nil error with a populated record means the row is valid;
// errGameMismatch means skip without counting; any other error is a
// per-row reject.
func parseRow(game domain.Game, layout columnLayout, row []string) (domain.DrawRecord, error) {
	cell := func(idx int) string {
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	if name := cell(layout.game); name != "" {
		if normalizeGameName(name) != normalizeGameName(game.Name) {
			return domain.DrawRecord{}, errGameMismatch
		}
	}

	numbers, err := parseCombination(cell(layout.combination), game)
	if err != nil {
		return domain.DrawRecord{}, err
	}

	drawDate, err := time.Parse(drawDateLayout, cell(layout.date))
	if err != nil {
		return domain.DrawRecord{}, fmt.Errorf("invalid draw date %q: %w", cell(layout.date), err)
	}

	record := domain.DrawRecord{
		GameType: game.Type,
		DrawDate: drawDate,
		Jackpot:  parseJackpot(cell(layout.jackpot)),
		Winners:  parseWinners(cell(layout.winners)),
	}
	record.SetNumbers(numbers)

	return record, nil
}

// parseCombination splits a string like "40-11-14-39-04-32" into six
// distinct integers within the game's range.
func parseCombination(combo string, game domain.Game) ([6]int, error) {
	var numbers [6]int

	if combo == "" {
		return numbers, errors.New("empty combination")
	}

	tokens := strings.Split(combo, "-")
	if len(tokens) != game.NumbersCount {
		return numbers, fmt.Errorf("expected %d numbers, got %d", game.NumbersCount, len(tokens))
	}

	seen := make(map[int]bool, game.NumbersCount)
	for i, token := range tokens {
		n, err := strconv.Atoi(strings.TrimSpace(token))
		if err != nil {
			return numbers, fmt.Errorf("invalid number %q: %w", token, err)
		}
		if n < game.MinNumber || n > game.MaxNumber {
			return numbers, fmt.Errorf("number %d outside [%d, %d]", n, game.MinNumber, game.MaxNumber)
		}
		if seen[n] {
			return numbers, fmt.Errorf("duplicate number %d in combination", n)
		}
		seen[n] = true
		numbers[i] = n
	}

	return numbers, nil
}

// parseJackpot strips thousands separators and currency decoration
// before the numeric parse. Absent or unparsable values are stored as
// absent, never a row reject.
func parseJackpot(raw string) *float64 {
	if raw == "" {
		return nil
	}

	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}

	cleaned := b.String()
	if cleaned == "" {
		return nil
	}

	val, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || val < 0 {
		return nil
	}

	return &val
}

// parseWinners parses a non-negative winner count; absent or
// unparsable values are stored as absent.
func parseWinners(raw string) *int {
	if raw == "" {
		return nil
	}

	val, err := strconv.Atoi(raw)
	if err != nil || val < 0 {
		return nil
	}

	return &val
}

// normalizeGameName lowercases and drops spacing/punctuation so
// "Superlotto 6/49" matches the configured "Super Lotto 6/49".
func normalizeGameName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '/' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
