package contract

import "time"

// YearRange returns the inclusive calendar bounds for a recap year in the
// local timezone, suitable for git --since/--until filters.
func YearRange(year int) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(year, time.December, 31, 23, 59, 59, 0, time.Local)
	return start, end
}

// DefaultYear returns the year a recap most likely targets: the previous
// calendar year.
func DefaultYear(now time.Time) int {
	return now.Year() - 1
}
