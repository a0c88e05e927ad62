package bigquery

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"

	"wcl_attendance/internal/attendance"

	"github.com/rs/zerolog/log"
)

// AttendanceRow is one exported report row. Each report run appends its
// rows stamped with the run time, so the table accumulates attendance
// history across runs.
type AttendanceRow struct {
	GeneratedAt time.Time `bigquery:"generated_at"`
	WindowDays  int       `bigquery:"window_days"`
	Player      string    `bigquery:"player"`
	Attended    int       `bigquery:"raids_attended"`
	Possible    int       `bigquery:"total_raids"`
	Rate        float64   `bigquery:"attendance_rate"`
}

// Exporter streams attendance report rows into a BigQuery table
type Exporter struct {
	client  *bigquery.Client
	dataset string
	table   string
}

// NewExporter creates a BigQuery exporter for the given project, dataset
// and table
func NewExporter(ctx context.Context, projectID, dataset, table string) (*Exporter, error) {
	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create bigquery client: %w", err)
	}

	return &Exporter{
		client:  client,
		dataset: dataset,
		table:   table,
	}, nil
}

// Close releases the underlying client
func (e *Exporter) Close() error {
	return e.client.Close()
}

// ExportReport appends one report's rows to the attendance history table
func (e *Exporter) ExportReport(ctx context.Context, rows []attendance.ReportRow, generatedAt time.Time, windowDays int) error {
	if len(rows) == 0 {
		log.Debug().Msg("Empty report, skipping BigQuery export")
		return nil
	}

	exported := make([]AttendanceRow, len(rows))
	for i, row := range rows {
		exported[i] = AttendanceRow{
			GeneratedAt: generatedAt,
			WindowDays:  windowDays,
			Player:      row.Player,
			Attended:    row.Attended,
			Possible:    row.Possible,
			Rate:        row.Rate,
		}
	}

	inserter := e.client.Dataset(e.dataset).Table(e.table).Inserter()
	if err := inserter.Put(ctx, exported); err != nil {
		return fmt.Errorf("failed to insert attendance rows: %w", err)
	}

	log.Info().
		Str("dataset", e.dataset).
		Str("table", e.table).
		Int("rows", len(exported)).
		Msg("Exported attendance report to BigQuery")

	return nil
}
