package app

// Zone identifies a raid instance as reported by the API
type Zone struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// AttendancePlayer is one participant entry in an attendance record.
// The attendance endpoint reports the player's class in the Type field.
type AttendancePlayer struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// AttendanceRaid is one logged raid from the guild attendance endpoint
type AttendanceRaid struct {
	Zone      Zone               `json:"zone"`
	Code      string             `json:"code"`
	StartTime int64              `json:"startTime"` // Unix milliseconds
	Players   []AttendancePlayer `json:"players"`
}

// AttendancePage is one page of guild attendance data
type AttendancePage struct {
	Data         []AttendanceRaid `json:"data"`
	HasMorePages bool             `json:"has_more_pages"`
	CurrentPage  int              `json:"current_page"`
	Total        int              `json:"total"`
}

// GuildMember is one entry from the guild members endpoint
type GuildMember struct {
	Name    string `json:"name"`
	Level   int    `json:"level"`
	ClassID int    `json:"classID"`
}
