package attendance

// Aggregate folds canonical occurrences into per-character tallies.
// Possible is the number of distinct occurrences across all zones in scope.
// When roster is non-nil, attendee sets are intersected with it before
// counting: non-members never enter the tally at all. Characters who
// attended nothing are absent from the result, even if rostered.
//
// An empty occurrence set yields an empty map, not an error.
func Aggregate(occurrences map[OccurrenceKey]Occurrence, roster map[string]struct{}) map[string]Tally {
	tallies := make(map[string]Tally)
	possible := len(occurrences)

	for _, occ := range occurrences {
		for name := range occ.Attendees {
			if roster != nil {
				if _, member := roster[name]; !member {
					continue
				}
			}

			tally := tallies[name]
			tally.Attended++
			tally.Possible = possible
			tallies[name] = tally
		}
	}

	return tallies
}
