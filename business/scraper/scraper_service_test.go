//go:build !integration

package scraper

import (
	"context"
	"errors"
	"testing"
	"time"

	"lottoLens/domain"
)

type fakeSheetSource struct {
	rows [][]string
	err  error
}

func (f *fakeSheetSource) FetchRows(_ context.Context, _ string) ([][]string, error) {
	return f.rows, f.err
}

type fakeDrawRepo struct {
	records []domain.DrawRecord
	nextID  uint
}

func (f *fakeDrawRepo) CreateBatch(_ context.Context, records []*domain.DrawRecord) error {
	for _, rec := range records {
		f.nextID++
		rec.ID = f.nextID
		f.records = append(f.records, *rec)
	}
	return nil
}

func (f *fakeDrawRepo) FindAllByGame(_ context.Context, gameType string) ([]domain.DrawRecord, error) {
	out := make([]domain.DrawRecord, 0, len(f.records))
	for _, rec := range f.records {
		if rec.GameType == gameType {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeDrawRepo) DeleteByIDs(_ context.Context, ids []uint) (int64, error) {
	doomed := make(map[uint]bool, len(ids))
	for _, id := range ids {
		doomed[id] = true
	}

	kept := f.records[:0]
	removed := int64(0)
	for _, rec := range f.records {
		if doomed[rec.ID] {
			removed++
			continue
		}
		kept = append(kept, rec)
	}
	f.records = kept
	return removed, nil
}

type fakeInvalidator struct {
	calls int
}

func (f *fakeInvalidator) Invalidate(_ context.Context, _ string) error {
	f.calls++
	return nil
}

var sheetRows = [][]string{
	{"LOTTO GAME", "COMBINATIONS", "DRAW DATE", "JACKPOT (PHP)", "WINNERS"},
	{"Super Lotto 6/49", "40-11-14-39-04-32", "4/1/2015", "129,835,788.00", "0"},
	{"Super Lotto 6/49", "05-12-19-26-33-40", "4/3/2015", "130,000,000.00", "1"},
	{"Superlotto 6/49", "40-11-14-39-04-32", "4/1/2015", "129,835,788.00", "0"},
}

func newTestService(source SheetSource, repo DrawRepository, cache StatsInvalidator) *scraperService {
	return NewScraperService(
		map[string]string{"super_lotto_6_49": "sheet-id"},
		source, repo, cache, nil,
	)
}

func TestScrapeGame_IngestsAndDedupes(t *testing.T) {
	repo := &fakeDrawRepo{}
	cache := &fakeInvalidator{}
	svc := newTestService(&fakeSheetSource{rows: sheetRows}, repo, cache)

	stats, err := svc.ScrapeGame(context.Background(), "super_lotto_6_49")
	if err != nil {
		t.Fatalf("ScrapeGame: %v", err)
	}

	// The third data row repeats the first draw date, so only two
	// records should land.
	if stats.Added != 2 {
		t.Errorf("added = %d, want 2", stats.Added)
	}
	if stats.Rejected != 0 {
		t.Errorf("rejected = %d, want 0", stats.Rejected)
	}
	if len(repo.records) != 2 {
		t.Errorf("stored = %d, want 2", len(repo.records))
	}
	if cache.calls != 1 {
		t.Errorf("cache invalidations = %d, want 1", cache.calls)
	}
}

func TestScrapeGame_SecondRunAddsNothing(t *testing.T) {
	repo := &fakeDrawRepo{}
	svc := newTestService(&fakeSheetSource{rows: sheetRows}, repo, &fakeInvalidator{})

	if _, err := svc.ScrapeGame(context.Background(), "super_lotto_6_49"); err != nil {
		t.Fatalf("first run: %v", err)
	}

	stats, err := svc.ScrapeGame(context.Background(), "super_lotto_6_49")
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if stats.Added != 0 {
		t.Errorf("second run added = %d, want 0", stats.Added)
	}
	if stats.ExistingInDB != 2 {
		t.Errorf("existing = %d, want 2", stats.ExistingInDB)
	}
}

func TestScrapeGame_SystemicParseFailureWarns(t *testing.T) {
	garbage := [][]string{
		{"nothing", "useful", "here"},
		{"still", "nothing", "useful"},
	}
	svc := newTestService(&fakeSheetSource{rows: garbage}, &fakeDrawRepo{}, &fakeInvalidator{})

	stats, err := svc.ScrapeGame(context.Background(), "super_lotto_6_49")
	if err != nil {
		t.Fatalf("systemic parse failure should not be an error, got %v", err)
	}
	if stats.Warning == "" {
		t.Error("expected a warning on the stats")
	}
	if stats.Added != 0 {
		t.Errorf("added = %d, want 0", stats.Added)
	}
}

func TestScrapeGame_SourceUnavailable(t *testing.T) {
	svc := newTestService(&fakeSheetSource{err: errors.New("boom")}, &fakeDrawRepo{}, &fakeInvalidator{})

	_, err := svc.ScrapeGame(context.Background(), "super_lotto_6_49")
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("err = %v, want ErrSourceUnavailable", err)
	}
}

func TestScrapeGame_UnknownGame(t *testing.T) {
	svc := newTestService(&fakeSheetSource{}, &fakeDrawRepo{}, &fakeInvalidator{})

	_, err := svc.ScrapeGame(context.Background(), "powerball")
	if !errors.Is(err, ErrUnknownGame) {
		t.Fatalf("err = %v, want ErrUnknownGame", err)
	}
}

func TestScrapeGame_InFlightGuard(t *testing.T) {
	svc := newTestService(&fakeSheetSource{rows: sheetRows}, &fakeDrawRepo{}, &fakeInvalidator{})

	if !svc.acquire("super_lotto_6_49") {
		t.Fatal("first acquire should succeed")
	}

	_, err := svc.ScrapeGame(context.Background(), "super_lotto_6_49")
	if !errors.Is(err, ErrScrapeInFlight) {
		t.Fatalf("err = %v, want ErrScrapeInFlight", err)
	}

	svc.release("super_lotto_6_49")
	if _, err := svc.ScrapeGame(context.Background(), "super_lotto_6_49"); err != nil {
		t.Fatalf("after release: %v", err)
	}
}

func TestFilterNew_CompositeKeyIncludesDrawNumber(t *testing.T) {
	date := time.Date(2015, 4, 1, 0, 0, 0, 0, time.UTC)
	n1, n2 := "1", "2"

	existing := []domain.DrawRecord{{DrawDate: date, DrawNumber: &n1}}
	parsed := []domain.DrawRecord{
		{DrawDate: date, DrawNumber: &n1},
		{DrawDate: date, DrawNumber: &n2},
		{DrawDate: date},
	}

	out := filterNew(existing, parsed)
	if len(out) != 2 {
		t.Fatalf("filtered = %d, want 2 (same date, different draw numbers)", len(out))
	}
}

func TestCollapseDuplicates(t *testing.T) {
	date := time.Date(2015, 4, 1, 0, 0, 0, 0, time.UTC)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	repo := &fakeDrawRepo{
		records: []domain.DrawRecord{
			{ID: 1, GameType: "super_lotto_6_49", DrawDate: date, CreatedAt: base},
			{ID: 2, GameType: "super_lotto_6_49", DrawDate: date, CreatedAt: base.Add(time.Hour)},
			{ID: 3, GameType: "super_lotto_6_49", DrawDate: date.AddDate(0, 0, 2), CreatedAt: base},
		},
		nextID: 3,
	}
	svc := newTestService(&fakeSheetSource{}, repo, &fakeInvalidator{})

	removed, err := svc.CollapseDuplicates(context.Background(), "super_lotto_6_49", KeepOldest)
	if err != nil {
		t.Fatalf("CollapseDuplicates: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}

	for _, rec := range repo.records {
		if rec.ID == 2 {
			t.Error("keep=oldest should have removed the newer duplicate")
		}
	}
}

func TestCollapseDuplicates_InvalidPolicy(t *testing.T) {
	svc := newTestService(&fakeSheetSource{}, &fakeDrawRepo{}, &fakeInvalidator{})

	_, err := svc.CollapseDuplicates(context.Background(), "super_lotto_6_49", "latest")
	if !errors.Is(err, ErrInvalidKeepPolicy) {
		t.Fatalf("err = %v, want ErrInvalidKeepPolicy", err)
	}
}
