package attendance

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestAttendanceProperties uses property-based testing to verify the core
// dedup/aggregation invariants
func TestAttendanceProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	// Property: the canonical set for every occurrence has cardinality >= every
	// candidate log sharing that key
	properties.Property("canonical set cardinality is maximal", prop.ForAll(
		func(logs []RawLog) bool {
			occurrences := Deduplicate(logs, time.UTC)

			for _, raw := range logs {
				key := OccurrenceKey{Zone: raw.Zone, Date: raw.StartTime.In(time.UTC).Format("2006-01-02")}
				canonical, ok := occurrences[key]
				if !ok {
					return false
				}
				if len(canonical.Attendees) < len(raw.Attendees) {
					return false
				}
			}
			return true
		},
		genRawLogs(),
	))

	// Property: possible equals the number of distinct (zone, date) keys,
	// with or without a roster filter
	properties.Property("possible equals distinct occurrence keys", prop.ForAll(
		func(logs []RawLog, roster map[string]struct{}) bool {
			occurrences := Deduplicate(logs, time.UTC)

			distinctKeys := make(map[OccurrenceKey]bool)
			for _, raw := range logs {
				distinctKeys[OccurrenceKey{Zone: raw.Zone, Date: raw.StartTime.In(time.UTC).Format("2006-01-02")}] = true
			}
			if len(occurrences) != len(distinctKeys) {
				return false
			}

			for _, tallies := range []map[string]Tally{
				Aggregate(occurrences, nil),
				Aggregate(occurrences, roster),
			} {
				for _, tally := range tallies {
					if tally.Possible != len(occurrences) {
						return false
					}
				}
			}
			return true
		},
		genRawLogs(),
		genRoster(),
	))

	// Property: attended never exceeds possible
	properties.Property("attended bounded by possible", prop.ForAll(
		func(logs []RawLog) bool {
			occurrences := Deduplicate(logs, time.UTC)
			for _, tally := range Aggregate(occurrences, nil) {
				if tally.Attended > tally.Possible || tally.Attended < 1 {
					return false
				}
			}
			return true
		},
		genRawLogs(),
	))

	// Property: roster filtering never increases attended counts and never
	// introduces characters outside the roster
	properties.Property("roster filter only removes", prop.ForAll(
		func(logs []RawLog, roster map[string]struct{}) bool {
			occurrences := Deduplicate(logs, time.UTC)
			unfiltered := Aggregate(occurrences, nil)
			filtered := Aggregate(occurrences, roster)

			for name, tally := range filtered {
				if _, member := roster[name]; !member {
					return false
				}
				if tally.Attended > unfiltered[name].Attended {
					return false
				}
			}
			return true
		},
		genRawLogs(),
		genRoster(),
	))

	// Property: report ordering is total and stable across repeated runs
	properties.Property("report ordering deterministic", prop.ForAll(
		func(logs []RawLog) bool {
			occurrences := Deduplicate(logs, time.UTC)
			tallies := Aggregate(occurrences, nil)

			first := BuildReport(tallies)
			second := BuildReport(tallies)

			if len(first) != len(second) {
				return false
			}
			for i := range first {
				if first[i] != second[i] {
					return false
				}
				if i > 0 && first[i-1].Rate < first[i].Rate {
					return false
				}
			}
			return true
		},
		genRawLogs(),
	))

	properties.TestingRun(t)
}

var propertyNames = []interface{}{
	"Aldric", "Brenna", "Cedric", "Doran", "Elara", "Fenwick", "Gorim", "Hilda",
}

// genRawLog generates a raw log in a two-week window across a few zones
func genRawLog() gopter.Gen {
	return gopter.CombineGens(
		gen.OneConstOf(ZoneID(1028), ZoneID(1034), ZoneID(1035)),
		gen.Int64Range(0, 14*24*3600),
		gen.SliceOf(gen.OneConstOf(propertyNames...)),
	).Map(func(values []interface{}) RawLog {
		base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
		names := values[2].([]string)

		return RawLog{
			Zone:      values[0].(ZoneID),
			StartTime: base.Add(time.Duration(values[1].(int64)) * time.Second),
			Attendees: NewAttendeeSet(names...),
		}
	})
}

// genRawLogs generates a bounded slice of raw logs
func genRawLogs() gopter.Gen {
	return gen.SliceOf(genRawLog()).SuchThat(func(logs []RawLog) bool {
		return len(logs) <= 50
	})
}

// genRoster generates a guild roster from the same name pool
func genRoster() gopter.Gen {
	return gen.SliceOf(gen.OneConstOf(propertyNames...)).Map(func(names []string) map[string]struct{} {
		return NewAttendeeSet(names...)
	})
}
