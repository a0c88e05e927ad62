package mocks

import (
	"context"
	"time"

	"wcl_attendance/internal/app"
)

// MockWCLClient is a test double for the wcl.Client
type MockWCLClient struct {
	// Responses to return
	AttendanceResponse []app.AttendanceRaid
	RosterResponse     map[string]struct{}

	// Errors to return
	AttendanceError error
	RosterError     error

	// Call tracking
	GetAttendanceSinceCalled bool
	GetGuildRosterCalled     bool
	AttendanceCalledWith     struct {
		GuildID int
		Cutoff  time.Time
	}
	RosterCalledWithGuildID int
	APICallCount            int64
	ResetCalled             bool
}

// NewMockWCLClient creates a new mock Warcraft Logs client
func NewMockWCLClient() *MockWCLClient {
	return &MockWCLClient{}
}

func (m *MockWCLClient) GetAttendanceSince(ctx context.Context, guildID int, cutoff time.Time) ([]app.AttendanceRaid, error) {
	m.GetAttendanceSinceCalled = true
	m.AttendanceCalledWith.GuildID = guildID
	m.AttendanceCalledWith.Cutoff = cutoff
	m.APICallCount++
	return m.AttendanceResponse, m.AttendanceError
}

func (m *MockWCLClient) GetGuildRoster(ctx context.Context, guildID int) (map[string]struct{}, error) {
	m.GetGuildRosterCalled = true
	m.RosterCalledWithGuildID = guildID
	m.APICallCount++
	return m.RosterResponse, m.RosterError
}

func (m *MockWCLClient) GetAPICallCount() int64 {
	return m.APICallCount
}

func (m *MockWCLClient) ResetAPICallCount() {
	m.ResetCalled = true
	m.APICallCount = 0
}
