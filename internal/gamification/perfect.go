package gamification

// IsPerfectDay reports whether every active habit appears in completed.
// A user with no active habits never has a perfect day.
func IsPerfectDay(active []string, completed []string) bool {
	if len(active) == 0 {
		return false
	}
	done := make(map[string]struct{}, len(completed))
	for _, id := range completed {
		done[id] = struct{}{}
	}
	for _, id := range active {
		if _, ok := done[id]; !ok {
			return false
		}
	}
	return true
}

// CountPerfectDays counts the days in byDate (date -> habit ids completed)
// that are perfect against the given active habits.
func CountPerfectDays(active []string, byDate map[string][]string) int {
	n := 0
	for _, ids := range byDate {
		if IsPerfectDay(active, ids) {
			n++
		}
	}
	return n
}
