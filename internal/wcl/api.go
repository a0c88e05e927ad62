package wcl

import (
	"context"
	"time"

	"wcl_attendance/internal/app"
)

// WCLAPI defines the interface for interacting with the Warcraft Logs API
// This separates infrastructure concerns from business logic
type WCLAPI interface {
	// Core API endpoints
	GetGuildAttendance(ctx context.Context, guildID, page int) (*app.AttendancePage, error)
	GetAttendanceSince(ctx context.Context, guildID int, cutoff time.Time) ([]app.AttendanceRaid, error)
	GetGuildRoster(ctx context.Context, guildID int) (map[string]struct{}, error)

	// API call tracking
	GetAPICallCount() int64
	IncrementAPICall()
	ResetAPICallCount()
}
