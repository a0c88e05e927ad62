package sheets

import (
	"context"
	"testing"

	"wcl_attendance/internal/attendance"
)

// fakeSheetsAPI is a test double tracking sheet operations
type fakeSheetsAPI struct {
	sheetExists   bool
	createdSheets []string
	clearedRanges []string
	updatedRanges []string
	updatedValues [][]interface{}
}

func (f *fakeSheetsAPI) UpdateRange(ctx context.Context, spreadsheetID, range_ string, values [][]interface{}) error {
	f.updatedRanges = append(f.updatedRanges, range_)
	f.updatedValues = values
	return nil
}

func (f *fakeSheetsAPI) ClearRange(ctx context.Context, spreadsheetID, range_ string) error {
	f.clearedRanges = append(f.clearedRanges, range_)
	return nil
}

func (f *fakeSheetsAPI) CreateSheet(ctx context.Context, spreadsheetID, sheetName string) error {
	f.createdSheets = append(f.createdSheets, sheetName)
	f.sheetExists = true
	return nil
}

func (f *fakeSheetsAPI) SheetExists(ctx context.Context, spreadsheetID, sheetName string) (bool, error) {
	return f.sheetExists, nil
}

func TestPublishReportCreatesSheetOnFirstUse(t *testing.T) {
	api := &fakeSheetsAPI{sheetExists: false}
	manager := NewAttendanceManager(api, "sheet-id")

	rows := []attendance.ReportRow{
		{Player: "Aldric", Attended: 3, Possible: 4, Rate: 75},
	}

	if err := manager.PublishReport(context.Background(), rows); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(api.createdSheets) != 1 || api.createdSheets[0] != "Attendance" {
		t.Errorf("Expected Attendance sheet to be created, got %v", api.createdSheets)
	}
	if len(api.clearedRanges) != 0 {
		t.Errorf("A freshly created sheet needs no clearing, got %v", api.clearedRanges)
	}
	if len(api.updatedRanges) != 1 {
		t.Fatalf("Expected one range update, got %d", len(api.updatedRanges))
	}
}

func TestPublishReportClearsExistingSheet(t *testing.T) {
	api := &fakeSheetsAPI{sheetExists: true}
	manager := NewAttendanceManager(api, "sheet-id")

	if err := manager.PublishReport(context.Background(), nil); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(api.createdSheets) != 0 {
		t.Errorf("Existing sheet must not be recreated, got %v", api.createdSheets)
	}
	if len(api.clearedRanges) != 1 {
		t.Errorf("Expected existing sheet to be cleared, got %v", api.clearedRanges)
	}
}

func TestBuildSheetValues(t *testing.T) {
	rows := []attendance.ReportRow{
		{Player: "Aldric", Attended: 10, Possible: 11, Rate: float64(10) / 11 * 100},
	}

	values := BuildSheetValues(rows)

	if len(values) != 2 {
		t.Fatalf("Expected header plus 1 row, got %d", len(values))
	}

	header := values[0]
	if header[0] != "Player" || header[3] != "Attendance_Rate" {
		t.Errorf("Unexpected header: %v", header)
	}

	row := values[1]
	if row[0] != "Aldric" || row[1] != 10 || row[2] != 11 || row[3] != "90.9%" {
		t.Errorf("Unexpected row: %v", row)
	}
}

func TestBuildSheetValuesEmptyReport(t *testing.T) {
	values := BuildSheetValues(nil)

	if len(values) != 1 {
		t.Errorf("Empty report still publishes the header row, got %d rows", len(values))
	}
}
