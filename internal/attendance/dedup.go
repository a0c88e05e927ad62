package attendance

import (
	"time"

	"github.com/rs/zerolog/log"
)

// Deduplicate collapses raw logs into one canonical occurrence per
// (zone, calendar date) key. A raid logged twice on the same night counts
// once; the log with the most attendees wins, ties going to the earliest
// start time. Attendee sets are never merged across duplicate logs, since
// overlapping re-uploads would overstate attendance.
//
// Pure function: No I/O beyond debug logging, safe on empty input.
func Deduplicate(logs []RawLog, loc *time.Location) map[OccurrenceKey]Occurrence {
	occurrences := make(map[OccurrenceKey]Occurrence)

	for _, raw := range logs {
		key := OccurrenceKey{
			Zone: raw.Zone,
			Date: raw.StartTime.In(loc).Format("2006-01-02"),
		}

		candidate := Occurrence{
			Key:       key,
			Attendees: raw.Attendees,
			StartTime: raw.StartTime,
			Code:      raw.Code,
		}

		existing, seen := occurrences[key]
		if !seen || betterCandidate(candidate, existing) {
			if seen {
				log.Debug().
					Int("zone_id", int(key.Zone)).
					Str("date", key.Date).
					Str("code", candidate.Code).
					Int("attendees", len(candidate.Attendees)).
					Int("previous_attendees", len(existing.Attendees)).
					Msg("Replacing canonical log for occurrence")
			}
			occurrences[key] = candidate
		} else {
			log.Debug().
				Int("zone_id", int(key.Zone)).
				Str("date", key.Date).
				Str("code", raw.Code).
				Int("attendees", len(raw.Attendees)).
				Msg("Skipping duplicate log, keeping fuller record")
		}
	}

	return occurrences
}

// betterCandidate reports whether candidate should replace existing as the
// canonical log for an occurrence: larger attendee set wins, ties broken by
// earlier start time.
func betterCandidate(candidate, existing Occurrence) bool {
	if len(candidate.Attendees) != len(existing.Attendees) {
		return len(candidate.Attendees) > len(existing.Attendees)
	}
	return candidate.StartTime.Before(existing.StartTime)
}
