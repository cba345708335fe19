package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	ScrapeDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "lotto_scrape_duration_seconds",
		Help:    "Duration of a single game ingestion run",
		Buckets: prometheus.DefBuckets,
	})

	ScrapeTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "lotto_scrape_runs_total",
		Help: "Total ingestion runs started",
	})

	ScrapeFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "lotto_scrape_failures_total",
		Help: "Ingestion runs that ended in a source or persistence failure",
	})

	RowsParsed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "lotto_rows_parsed_total",
		Help: "Sheet rows successfully parsed into draw records",
	})

	RowsRejected = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "lotto_rows_rejected_total",
		Help: "Sheet rows dropped by row validation",
	})

	RecordsInserted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "lotto_records_inserted_total",
		Help: "New draw records written after deduplication",
	})

	PredictDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "lotto_predict_duration_seconds",
		Help:    "Duration of a full prediction run across all models",
		Buckets: prometheus.DefBuckets,
	})

	PredictionsGenerated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "lotto_predictions_generated_total",
		Help: "Prediction records stored",
	})
)

func Init() {
	prometheus.MustRegister(
		ScrapeDuration,
		ScrapeTotal,
		ScrapeFailures,
		RowsParsed,
		RowsRejected,
		RecordsInserted,
		PredictDuration,
		PredictionsGenerated,
	)
}
