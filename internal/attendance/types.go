package attendance

import "time"

// ZoneID identifies a raid instance type (e.g. Molten Core)
type ZoneID int

// RawLog is one uploaded combat log: a zone, a start instant, and the set
// of character names seen in the log. Multiple raw logs may exist for the
// same raid night.
type RawLog struct {
	Zone      ZoneID
	StartTime time.Time
	Attendees map[string]struct{}
	Code      string
}

// OccurrenceKey identifies one real raid event: a zone on a calendar date
// in the reporting timezone.
type OccurrenceKey struct {
	Zone ZoneID
	Date string // "2006-01-02"
}

// Occurrence is the canonical attendance record chosen for one raid event
type Occurrence struct {
	Key       OccurrenceKey
	Attendees map[string]struct{}
	StartTime time.Time
	Code      string
}

// Tally counts attended raids against the total possible for one character.
// Possible is a property of the occurrence set and is identical across all
// characters in a single report.
type Tally struct {
	Attended int
	Possible int
}

// ReportRow is one formatted line of the attendance report
type ReportRow struct {
	Player   string
	Attended int
	Possible int
	Rate     float64
}

// NewAttendeeSet builds an attendee set from a list of names, ignoring empties
func NewAttendeeSet(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		if name != "" {
			set[name] = struct{}{}
		}
	}
	return set
}
