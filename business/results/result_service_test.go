//go:build !integration

package results

import (
	"context"
	"errors"
	"testing"
	"time"

	"lottoLens/domain"
)

type fakeDrawRepo struct {
	records []domain.DrawRecord
}

func (f *fakeDrawRepo) FindPageByGame(_ context.Context, _ string, limit, offset int) ([]domain.DrawRecord, error) {
	if offset >= len(f.records) {
		return nil, nil
	}
	end := offset + limit
	if end > len(f.records) {
		end = len(f.records)
	}
	return f.records[offset:end], nil
}

func (f *fakeDrawRepo) CountByGame(_ context.Context, _ string) (int64, error) {
	return int64(len(f.records)), nil
}

func seedRecords(n int) []domain.DrawRecord {
	out := make([]domain.DrawRecord, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.DrawRecord{
			ID:       uint(i + 1),
			GameType: "lotto_6_42",
			DrawDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -i),
		})
	}
	return out
}

func TestListResults_Pagination(t *testing.T) {
	svc := NewResultService(&fakeDrawRepo{records: seedRecords(120)})

	page, err := svc.ListResults(context.Background(), "lotto_6_42", 2, 50)
	if err != nil {
		t.Fatalf("ListResults: %v", err)
	}

	if page.Total != 120 {
		t.Errorf("total = %d, want 120", page.Total)
	}
	if len(page.Results) != 50 {
		t.Errorf("results = %d, want 50", len(page.Results))
	}
	if page.Results[0].ID != 51 {
		t.Errorf("first ID on page 2 = %d, want 51", page.Results[0].ID)
	}
}

func TestListResults_DefaultsAndCaps(t *testing.T) {
	svc := NewResultService(&fakeDrawRepo{records: seedRecords(10)})

	page, err := svc.ListResults(context.Background(), "lotto_6_42", 0, 0)
	if err != nil {
		t.Fatalf("ListResults: %v", err)
	}
	if page.Page != 1 || page.PageSize != defaultPageSize {
		t.Errorf("page/size = %d/%d, want 1/%d", page.Page, page.PageSize, defaultPageSize)
	}

	capped, err := svc.ListResults(context.Background(), "lotto_6_42", 1, 10_000)
	if err != nil {
		t.Fatalf("ListResults: %v", err)
	}
	if capped.PageSize != maxPageSize {
		t.Errorf("page size = %d, want capped to %d", capped.PageSize, maxPageSize)
	}
}

func TestListResults_UnknownGame(t *testing.T) {
	svc := NewResultService(&fakeDrawRepo{})

	if _, err := svc.ListResults(context.Background(), "powerball", 1, 10); !errors.Is(err, ErrUnknownGame) {
		t.Fatalf("err = %v, want ErrUnknownGame", err)
	}
}
