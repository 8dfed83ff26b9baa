package schedule

import "time"

// NextOccurrence computes the next instant at or after now at which an alarm
// with the given 12-hour wall-clock time and day set should fire, in now's
// location. It returns false when the day set is empty, since such an alarm
// has no occurrence.
//
// The function is pure: it never errors, panics, or touches the system clock.
func NextOccurrence(hour12, minute int, pm bool, days DaySet, now time.Time) (time.Time, bool) {
	if days.IsEmpty() {
		return time.Time{}, false
	}

	hour24 := hour12 % 12
	if pm {
		hour24 += 12
	}

	var best time.Time
	for _, weekday := range days.Weekdays() {
		// Candidate on the next occurrence of this weekday, today included.
		daysAhead := (int(weekday) - int(now.Weekday()) + 7) % 7
		candidate := time.Date(now.Year(), now.Month(), now.Day(), hour24, minute, 0, 0, now.Location())
		candidate = candidate.AddDate(0, 0, daysAhead)

		// Advancing by exactly 7 days preserves weekly periodicity.
		if !candidate.After(now) {
			candidate = candidate.AddDate(0, 0, 7)
		}

		if best.IsZero() || candidate.Before(best) {
			best = candidate
		}
	}
	return best, true
}
