package gamification

import (
	"sort"
	"time"
)

// RecentCompletionWindow bounds how many completion records the streak is
// computed from. Very long streaks with many habits per day can be
// under-counted.
const RecentCompletionWindow = 100

// DistinctDates returns the unique dates in descending order.
func DistinctDates(dates []string) []string {
	seen := make(map[string]struct{}, len(dates))
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out
}

// CurrentStreak counts consecutive calendar days with at least one
// completion, across all habits, ending today or yesterday. today must be a
// midnight in the user's location.
func CurrentStreak(dates []string, today time.Time) int {
	days := DistinctDates(dates)
	if len(days) == 0 {
		return 0
	}

	offset := 0
	switch days[0] {
	case FormatDate(today):
	case DaysBefore(today, 1):
		offset = 1
	default:
		return 0
	}

	streak := 0
	for i, d := range days {
		if d != DaysBefore(today, offset+i) {
			break
		}
		streak++
	}
	return streak
}

// LongestStreak returns the longest run of consecutive days in dates.
func LongestStreak(dates []string) int {
	days := DistinctDates(dates)
	longest, run := 0, 0
	var prev time.Time
	for i, d := range days {
		t, err := time.Parse(DateLayout, d)
		if err != nil {
			run = 0
			continue
		}
		if i > 0 && run > 0 && prev.AddDate(0, 0, -1).Equal(t) {
			run++
		} else {
			run = 1
		}
		prev = t
		if run > longest {
			longest = run
		}
	}
	return longest
}

// CountInWindow counts dates within [today-days, today] inclusive.
func CountInWindow(dates []string, today time.Time, days int) int {
	if days < 0 {
		return 0
	}
	from, to := DaysBefore(today, days), FormatDate(today)
	n := 0
	for _, d := range dates {
		if d >= from && d <= to {
			n++
		}
	}
	return n
}
