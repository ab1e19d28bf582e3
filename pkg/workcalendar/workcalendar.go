// Package workcalendar holds the working-day calendar: for every date, how many working days
// remain in that date's month, counting the date itself.
package workcalendar

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// HoursPerDay converts working days into full-time-equivalent hours.
const HoursPerDay = 8

var ErrCalendarGap = errors.New("calendar has no entry")

type Day struct {
	Date      time.Time
	Remaining int
}

// Calendar is an immutable index of Days by date.
type Calendar struct {
	days map[time.Time]int
}

func New(days []Day) Calendar {
	index := make(map[time.Time]int, len(days))
	for _, d := range days {
		index[dateOnly(d.Date)] = d.Remaining
	}
	return Calendar{days: index}
}

// Remaining returns the remaining working days of date's month as of date.
func (c Calendar) Remaining(date time.Time) (int, error) {
	remaining, ok := c.days[dateOnly(date)]
	if !ok {
		return 0, fmt.Errorf("%w for %s", ErrCalendarGap, date.Format(time.DateOnly))
	}
	return remaining, nil
}

// MonthWorkingDays returns the number of working days of the calendar month starting at
// monthStart: the largest Remaining value among the month's dates.
func (c Calendar) MonthWorkingDays(monthStart time.Time) (int, error) {
	start := dateOnly(monthStart)
	end := start.AddDate(0, 1, 0)
	found := false
	max := 0
	for date := start; date.Before(end); date = date.AddDate(0, 0, 1) {
		remaining, ok := c.days[date]
		if !ok {
			continue
		}
		found = true
		if remaining > max {
			max = remaining
		}
	}
	if !found {
		return 0, fmt.Errorf("%w for month %s", ErrCalendarGap, start.Format("Jan 2006"))
	}
	return max, nil
}

// FTEHours converts working days into capacity hours.
func FTEHours(days int) float64 {
	return float64(days * HoursPerDay)
}

func (c Calendar) Len() int {
	return len(c.days)
}

// Days returns the calendar sorted by date.
func (c Calendar) Days() []Day {
	days := make([]Day, 0, len(c.days))
	for date, remaining := range c.days {
		days = append(days, Day{Date: date, Remaining: remaining})
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})
	return days
}

func (c Calendar) Clone() Calendar {
	return New(c.Days())
}

func dateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
