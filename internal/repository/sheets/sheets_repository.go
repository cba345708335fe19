package sheets

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"
)

// SheetsConfig carries the CSV export endpoint. URLFormat takes the
// sheet ID as its single verb.
type SheetsConfig struct {
	ExportURLFormat string
}

type SheetsRepository struct {
	config SheetsConfig
	client *http.Client
}

func NewSheetsRepository(cfg SheetsConfig) *SheetsRepository {
	return &SheetsRepository{
		config: cfg,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// FetchRows downloads the published CSV export of a sheet and returns
// its rows, header included. Any transport error, non-2xx status or
// CSV parse failure means the source is unavailable for this run.
func (r *SheetsRepository) FetchRows(ctx context.Context, sheetID string) ([][]string, error) {
	url := fmt.Sprintf(r.config.ExportURLFormat, sheetID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build sheet request: %w", err)
	}

	res, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sheet %s: %w", sheetID, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("sheet %s returned status %d", sheetID, res.StatusCode)
	}

	reader := csv.NewReader(res.Body)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse sheet %s as csv: %w", sheetID, err)
	}

	return rows, nil
}
