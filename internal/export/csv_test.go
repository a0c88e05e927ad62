package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"wcl_attendance/internal/attendance"
)

func TestWriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")

	rows := []attendance.ReportRow{
		{Player: "Aldric", Attended: 11, Possible: 11, Rate: 100},
		{Player: "Brenna", Attended: 10, Possible: 11, Rate: float64(10) / 11 * 100},
	}

	writer := NewCSVWriter()
	if err := writer.WriteReport(path, rows); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	expected := []string{
		"Player,Raids_Attended,Total_Raids,Attendance_Rate",
		"Aldric,11,11,100.0%",
		"Brenna,10,11,90.9%",
	}

	if len(lines) != len(expected) {
		t.Fatalf("Expected %d lines, got %d: %q", len(expected), len(lines), lines)
	}
	for i, want := range expected {
		if lines[i] != want {
			t.Errorf("Line %d: expected %q, got %q", i, want, lines[i])
		}
	}
}

func TestWriteReportEmptyStillWritesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")

	writer := NewCSVWriter()
	if err := writer.WriteReport(path, nil); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}

	if strings.TrimSpace(string(data)) != "Player,Raids_Attended,Total_Raids,Attendance_Rate" {
		t.Errorf("Expected header-only file, got %q", string(data))
	}
}

func TestWriteReportBadPath(t *testing.T) {
	writer := NewCSVWriter()

	err := writer.WriteReport(filepath.Join(t.TempDir(), "missing", "report.csv"), nil)
	if err == nil {
		t.Error("Expected error for unwritable path")
	}
}
