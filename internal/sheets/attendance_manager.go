package sheets

import (
	"context"
	"fmt"

	"wcl_attendance/internal/attendance"

	"github.com/rs/zerolog/log"
)

const attendanceSheetName = "Attendance"

// SheetsAPI defines the sheet operations the attendance manager needs
type SheetsAPI interface {
	UpdateRange(ctx context.Context, spreadsheetID, range_ string, values [][]interface{}) error
	ClearRange(ctx context.Context, spreadsheetID, range_ string) error
	CreateSheet(ctx context.Context, spreadsheetID, sheetName string) error
	SheetExists(ctx context.Context, spreadsheetID, sheetName string) (bool, error)
}

// AttendanceManager publishes attendance reports to a spreadsheet tab
type AttendanceManager struct {
	client        SheetsAPI
	spreadsheetID string
}

// NewAttendanceManager creates a manager bound to one spreadsheet
func NewAttendanceManager(client SheetsAPI, spreadsheetID string) *AttendanceManager {
	return &AttendanceManager{
		client:        client,
		spreadsheetID: spreadsheetID,
	}
}

// PublishReport rewrites the attendance tab with the given report rows.
// The tab is created on first use and cleared on every run so stale rows
// from longer previous reports never linger.
func (m *AttendanceManager) PublishReport(ctx context.Context, rows []attendance.ReportRow) error {
	exists, err := m.client.SheetExists(ctx, m.spreadsheetID, attendanceSheetName)
	if err != nil {
		return fmt.Errorf("failed to check for attendance sheet: %w", err)
	}

	if !exists {
		if err := m.client.CreateSheet(ctx, m.spreadsheetID, attendanceSheetName); err != nil {
			return err
		}
	} else {
		clearRange := fmt.Sprintf("%s!A:D", attendanceSheetName)
		if err := m.client.ClearRange(ctx, m.spreadsheetID, clearRange); err != nil {
			return fmt.Errorf("failed to clear attendance sheet: %w", err)
		}
	}

	values := BuildSheetValues(rows)
	updateRange := fmt.Sprintf("%s!A1", attendanceSheetName)
	if err := m.client.UpdateRange(ctx, m.spreadsheetID, updateRange, values); err != nil {
		return fmt.Errorf("failed to write attendance sheet: %w", err)
	}

	log.Info().
		Str("spreadsheet_id", m.spreadsheetID).
		Int("players", len(rows)).
		Msg("Published attendance report to spreadsheet")

	return nil
}

// BuildSheetValues converts report rows into the sheet value grid, header
// included. Returns [][]interface{} as mandated by the Google Sheets API.
func BuildSheetValues(rows []attendance.ReportRow) [][]interface{} {
	values := make([][]interface{}, 0, len(rows)+1)
	values = append(values, []interface{}{"Player", "Raids_Attended", "Total_Raids", "Attendance_Rate"})

	for _, row := range rows {
		values = append(values, []interface{}{
			row.Player,
			row.Attended,
			row.Possible,
			attendance.FormatRate(row.Rate),
		})
	}

	return values
}
