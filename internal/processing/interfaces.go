package processing

import (
	"context"
	"time"

	"wcl_attendance/internal/app"
	"wcl_attendance/internal/attendance"
)

// WCLClientInterface defines the Warcraft Logs client methods used by ReportProcessor
type WCLClientInterface interface {
	GetAttendanceSince(ctx context.Context, guildID int, cutoff time.Time) ([]app.AttendanceRaid, error)
	GetGuildRoster(ctx context.Context, guildID int) (map[string]struct{}, error)
	GetAPICallCount() int64
	ResetAPICallCount()
}

// ReportWriterInterface defines the CSV output surface used by ReportProcessor
type ReportWriterInterface interface {
	WriteReport(path string, rows []attendance.ReportRow) error
}

// SheetsPublisherInterface defines the spreadsheet output surface
type SheetsPublisherInterface interface {
	PublishReport(ctx context.Context, rows []attendance.ReportRow) error
}

// HistoryExporterInterface defines the warehouse export surface
type HistoryExporterInterface interface {
	ExportReport(ctx context.Context, rows []attendance.ReportRow, generatedAt time.Time, windowDays int) error
}

// ArtifactPublisherInterface defines the remote upload surface for finished
// report files
type ArtifactPublisherInterface interface {
	PublishFile(localPath, filename string) error
}
