//go:build !integration

package scraper

import (
	"errors"
	"testing"
	"time"

	"lottoLens/domain"
)

func mustGame(t *testing.T, gameType string) domain.Game {
	t.Helper()
	game, ok := domain.GameByType(gameType)
	if !ok {
		t.Fatalf("game %s not in catalog", gameType)
	}
	return game
}

func TestParseRow_SheetRow(t *testing.T) {
	game := mustGame(t, "super_lotto_6_49")

	row := []string{"Superlotto 6/49", "40-11-14-39-04-32", "4/1/2015", "129,835,788.00", "0"}

	record, err := parseRow(game, defaultLayout, row)
	if err != nil {
		t.Fatalf("parseRow: %v", err)
	}

	wantNumbers := [6]int{4, 11, 14, 32, 39, 40}
	if record.Numbers() != wantNumbers {
		t.Errorf("numbers = %v, want %v", record.Numbers(), wantNumbers)
	}

	wantDate := time.Date(2015, 4, 1, 0, 0, 0, 0, time.UTC)
	if !record.DrawDate.Equal(wantDate) {
		t.Errorf("draw date = %v, want %v", record.DrawDate, wantDate)
	}

	if record.Jackpot == nil || *record.Jackpot != 129835788.00 {
		t.Errorf("jackpot = %v, want 129835788.00", record.Jackpot)
	}

	if record.Winners == nil || *record.Winners != 0 {
		t.Errorf("winners = %v, want 0", record.Winners)
	}
}

func TestParseRow_GameMismatchSkips(t *testing.T) {
	game := mustGame(t, "super_lotto_6_49")

	row := []string{"Mega Lotto 6/45", "01-02-03-04-05-06", "4/1/2015", "", ""}

	_, err := parseRow(game, defaultLayout, row)
	if !errors.Is(err, errGameMismatch) {
		t.Fatalf("err = %v, want errGameMismatch", err)
	}
}

func TestParseCombination_Rejects(t *testing.T) {
	game := mustGame(t, "lotto_6_42")

	cases := []struct {
		name  string
		combo string
	}{
		{"empty", ""},
		{"too few", "01-02-03-04-05"},
		{"too many", "01-02-03-04-05-06-07"},
		{"out of range", "01-02-03-04-05-43"},
		{"duplicate", "01-02-03-04-05-05"},
		{"not a number", "01-02-03-04-05-xx"},
	}

	for _, tc := range cases {
		if _, err := parseCombination(tc.combo, game); err == nil {
			t.Errorf("%s: expected error for %q", tc.name, tc.combo)
		}
	}
}

func TestParseJackpot(t *testing.T) {
	if got := parseJackpot("Php 29,700,000.00"); got == nil || *got != 29700000.00 {
		t.Errorf("got %v, want 29700000.00", got)
	}
	if got := parseJackpot(""); got != nil {
		t.Errorf("empty jackpot should be nil, got %v", *got)
	}
	if got := parseJackpot("n/a"); got != nil {
		t.Errorf("unparsable jackpot should be nil, got %v", *got)
	}
}

func TestResolveColumns(t *testing.T) {
	header := []string{"DRAW DATE", "LOTTO GAME", "COMBINATIONS", "JACKPOT (PHP)", "WINNERS"}

	layout, hasHeader := resolveColumns(header)
	if !hasHeader {
		t.Fatal("expected header to be recognized")
	}
	if layout.date != 0 || layout.game != 1 || layout.combination != 2 || layout.jackpot != 3 || layout.winners != 4 {
		t.Errorf("unexpected layout: %+v", layout)
	}
}

func TestResolveColumns_NoHeaderFallsBack(t *testing.T) {
	// A data row in first position should not be mistaken for a header.
	layout, hasHeader := resolveColumns([]string{"Lotto 6/42", "01-02-03-04-05-06", "4/1/2015", "5,000,000.00", "1"})
	if hasHeader {
		t.Fatal("data row misread as header")
	}
	if layout != defaultLayout {
		t.Errorf("layout = %+v, want default", layout)
	}
}

func TestNormalizeGameName(t *testing.T) {
	if normalizeGameName("Superlotto 6/49") != normalizeGameName("Super Lotto 6/49") {
		t.Error("spacing variants should normalize to the same name")
	}
	if normalizeGameName("Super Lotto 6/49") == normalizeGameName("Super Lotto 6/45") {
		t.Error("different games should not normalize to the same name")
	}
}
