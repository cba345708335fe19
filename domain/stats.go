package domain

import "time"

// NumberFrequency is one entry of the frequency table.
type NumberFrequency struct {
	Number    int `json:"number"`
	Frequency int `json:"frequency"`
}

// OverdueNumber reports how many of the most recent consecutive draws
// a number has missed.
type OverdueNumber struct {
	Number      int `json:"number"`
	DrawsMissed int `json:"draws_missed"`
}

type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// StatsSummary holds the aggregate view of a game's stored draws.
// AverageJackpot is absent when no record carries a known jackpot;
// DateRange is absent when there are no records at all.
type StatsSummary struct {
	TotalDraws     int        `json:"total_draws"`
	AverageJackpot *float64   `json:"average_jackpot,omitempty"`
	DateRange      *DateRange `json:"date_range,omitempty"`
}

// GameStats is the full read-side projection served to the dashboard.
type GameStats struct {
	GameType       string            `json:"game_type"`
	Frequency      []NumberFrequency `json:"frequency"`
	HotNumbers     []NumberFrequency `json:"hot_numbers"`
	ColdNumbers    []NumberFrequency `json:"cold_numbers"`
	OverdueNumbers []OverdueNumber   `json:"overdue_numbers"`
	Summary        StatsSummary      `json:"summary"`
}

// DistributionPoint is one draw mapped onto the (sum, product) plane.
type DistributionPoint struct {
	DrawDate time.Time `json:"draw_date"`
	Numbers  [6]int    `json:"numbers"`
	Sum      int       `json:"sum"`
	Product  float64   `json:"product"`
}

// GaussianFit carries mean/std pairs for the distribution chart.
type GaussianFit struct {
	SumMean        float64 `json:"sum_mean"`
	SumStd         float64 `json:"sum_std"`
	SumMin         int     `json:"sum_min"`
	SumMax         int     `json:"sum_max"`
	LogProductMean float64 `json:"log_product_mean"`
	LogProductStd  float64 `json:"log_product_std"`
	Count          int     `json:"count"`
}

// DrawDistribution is the Gaussian analysis payload.
type DrawDistribution struct {
	GameType string              `json:"game_type"`
	Points   []DistributionPoint `json:"points"`
	Fit      *GaussianFit        `json:"fit,omitempty"`
}

// ScrapeGameStats summarises one game's ingestion run.
type ScrapeGameStats struct {
	GameType     string `json:"game_type"`
	GameName     string `json:"game_name"`
	TotalInSheet int    `json:"total_in_sheet"`
	Rejected     int    `json:"rejected"`
	ExistingInDB int    `json:"existing_in_db"`
	NewResults   int    `json:"new_results"`
	Added        int    `json:"added"`
	Warning      string `json:"warning,omitempty"`
	Error        string `json:"error,omitempty"`
}

// ScrapeStats aggregates a multi-game scrape.
type ScrapeStats struct {
	TotalGames int                        `json:"total_games"`
	Games      map[string]ScrapeGameStats `json:"games"`
	TotalNew   int                        `json:"total_new"`
	TotalAdded int                        `json:"total_added"`
}
