package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"wcl_attendance/internal/attendance"

	"github.com/rs/zerolog/log"
)

// ReportHeader is the column layout of the attendance CSV
var ReportHeader = []string{"Player", "Raids_Attended", "Total_Raids", "Attendance_Rate"}

// CSVWriter writes attendance reports as delimited text files
type CSVWriter struct{}

// NewCSVWriter creates a new CSV report writer
func NewCSVWriter() *CSVWriter {
	return &CSVWriter{}
}

// WriteReport writes the report rows to a CSV file at path. An empty row
// set still produces a file with the header line.
func (w *CSVWriter) WriteReport(path string, rows []attendance.ReportRow) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(ReportHeader); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.Player,
			strconv.Itoa(row.Attended),
			strconv.Itoa(row.Possible),
			attendance.FormatRate(row.Rate),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write report row for %s: %w", row.Player, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush report: %w", err)
	}

	log.Info().
		Str("path", path).
		Int("players", len(rows)).
		Msg("Wrote attendance report")

	return nil
}
