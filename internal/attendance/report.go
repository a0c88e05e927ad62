package attendance

import (
	"sort"
	"strconv"
)

// BuildReport converts tallies into sorted report rows. Sort order is
// attendance rate descending (compared numerically, not on the rendered
// string), then attended descending, then name ascending, so equal rates
// order deterministically across runs.
func BuildReport(tallies map[string]Tally) []ReportRow {
	rows := make([]ReportRow, 0, len(tallies))

	for name, tally := range tallies {
		if tally.Possible == 0 {
			// Guard against division by zero; an empty occurrence set
			// produces no tallies in the first place.
			continue
		}
		rows = append(rows, ReportRow{
			Player:   name,
			Attended: tally.Attended,
			Possible: tally.Possible,
			Rate:     float64(tally.Attended) / float64(tally.Possible) * 100,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Rate != rows[j].Rate {
			return rows[i].Rate > rows[j].Rate
		}
		if rows[i].Attended != rows[j].Attended {
			return rows[i].Attended > rows[j].Attended
		}
		return rows[i].Player < rows[j].Player
	})

	return rows
}

// FormatRate renders an attendance rate with exactly one decimal digit and
// a trailing percent marker, e.g. "90.9%". Rounding follows IEEE-754
// binary64 decimal formatting (round half to even at the printed digit).
func FormatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', 1, 64) + "%"
}
