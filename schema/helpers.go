package schema

import (
	"fmt"
	"sort"
)

// WeekdayNames maps DailyDistribution indexes to display names, Sunday first
// to match time.Weekday.
var WeekdayNames = [DayBuckets]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// FileTypeCount is one file-type histogram entry prepared for display.
type FileTypeCount struct {
	Ext   string `json:"ext"`
	Count int    `json:"count"`
}

// PeakBucket returns the index of the largest value in counts.
// The first index wins on ties; an empty or all-zero slice returns -1.
func PeakBucket(counts []int) int {
	best := -1
	bestCount := 0
	for i, c := range counts {
		if c > bestCount {
			best = i
			bestCount = c
		}
	}
	return best
}

// HourLabel formats an hour-of-day bucket index as a wall-clock range.
func HourLabel(hour int) string {
	return fmt.Sprintf("%02d:00-%02d:00", hour, (hour+1)%HourBuckets)
}

// TopFileTypes flattens a file-type histogram into entries sorted by count
// descending, ties broken alphabetically, truncated to at most n entries.
func TopFileTypes(fileTypes map[string]int, n int) []FileTypeCount {
	entries := make([]FileTypeCount, 0, len(fileTypes))
	for ext, count := range fileTypes {
		entries = append(entries, FileTypeCount{Ext: ext, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Ext < entries[j].Ext
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
