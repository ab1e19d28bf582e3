package workcalendar

import "time"

// Generate builds a calendar for [from, to) counting Monday to Friday as working days, minus
// the given holidays. It stands in for a maintained DATES sheet when none is available.
func Generate(from, to time.Time, holidays []time.Time) []Day {
	off := make(map[time.Time]bool, len(holidays))
	for _, h := range holidays {
		off[dateOnly(h)] = true
	}
	isWorking := func(d time.Time) bool {
		if off[d] {
			return false
		}
		return d.Weekday() != time.Saturday && d.Weekday() != time.Sunday
	}

	var days []Day
	for monthStart := firstOfMonth(dateOnly(from)); monthStart.Before(to); monthStart = monthStart.AddDate(0, 1, 0) {
		monthEnd := monthStart.AddDate(0, 1, 0)
		var month []time.Time
		for d := monthStart; d.Before(monthEnd); d = d.AddDate(0, 0, 1) {
			month = append(month, d)
		}
		// walk backwards so each date knows how many working days follow it
		remaining := 0
		counts := make([]int, len(month))
		for i := len(month) - 1; i >= 0; i-- {
			if isWorking(month[i]) {
				remaining++
			}
			counts[i] = remaining
		}
		for i, d := range month {
			if d.Before(dateOnly(from)) || !d.Before(to) {
				continue
			}
			days = append(days, Day{Date: d, Remaining: counts[i]})
		}
	}
	return days
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
