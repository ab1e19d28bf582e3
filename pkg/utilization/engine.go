package utilization

import (
	"fmt"
	"strings"
	"time"

	"github.com/klokku/utilization/pkg/activity"
	"github.com/klokku/utilization/pkg/fiscal"
	"github.com/klokku/utilization/pkg/timeentry"
	"github.com/klokku/utilization/pkg/workcalendar"
)

// HolidayActivity entries never move the current month forward.
const HolidayActivity = "Holiday"

// Input is everything Build needs. Build reads it and never writes to it.
type Input struct {
	Entries         []timeentry.Entry
	Classifications activity.Lookup
	Calendar        workcalendar.Calendar
	Person          string
	Method          Method
	BySemester      bool
	// Today caps the last day worked; entries dated after it do not move the current month.
	Today time.Time
}

// Build computes the utilization report of in.Person.
func Build(in Input) (Report, error) {
	person := strings.TrimSpace(in.Person)
	method := in.Method
	if method == "" {
		method = YearToDate
	}
	switch method {
	case MonthToDate, LastMonth, YearToDate:
	default:
		return Report{}, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}

	var entries []timeentry.Entry
	for _, e := range in.Entries {
		if strings.TrimSpace(e.UserName) != person {
			continue
		}
		if err := e.Validate(); err != nil {
			return Report{}, fmt.Errorf("%w: %w", ErrMalformedInput, err)
		}
		entries = append(entries, e)
	}
	if person == "" || len(entries) == 0 {
		return Report{}, fmt.Errorf("%w: %q", ErrPersonNotFound, in.Person)
	}

	hireDate, lastDayWorked, ok := workedSpan(entries)
	if !ok {
		return Report{}, fmt.Errorf("%w: %q only has %s entries", ErrPersonNotFound, in.Person, HolidayActivity)
	}
	if today := dateOnly(in.Today); !in.Today.IsZero() && lastDayWorked.After(today) {
		lastDayWorked = today
	}

	yearStart := fiscal.YearStart(lastDayWorked)
	current := fiscal.IndexOf(lastDayWorked)

	rows := make([]MonthRow, fiscal.MonthsInYear)
	for i, m := range fiscal.Months() {
		rows[i].Month = m
	}
	for _, e := range entries {
		date := dateOnly(e.EntryDate)
		if !fiscal.Contains(yearStart, date) {
			continue
		}
		row := &rows[fiscal.IndexOf(date)]
		switch in.Classifications.Classify(e.ActivityName) {
		case activity.RAndD:
			row.RAndD += e.HoursWorked
		case activity.Other:
			row.Other += e.HoursWorked
		case activity.TimeOff:
			row.TimeOff += e.HoursWorked
		default:
			row.Billable += e.HoursWorked
		}
	}

	if err := fillCapacity(rows, in.Calendar, yearStart, hireDate); err != nil {
		return Report{}, err
	}

	for i := range rows {
		rows[i].Utilization = ratio(rows[i].Billable, rows[i].Capacity)
		rows[i].UtilizationToDate = rows[i].Utilization
	}

	remaining, err := in.Calendar.Remaining(lastDayWorked)
	if err != nil {
		return Report{}, fmt.Errorf("%w: %w", ErrCalendarGap, err)
	}
	daysRemaining := remaining - 1
	cur := &rows[current]
	fteHoursToDate := cur.Capacity - workcalendar.FTEHours(daysRemaining)
	if cur.Capacity > 0 {
		cur.UtilizationToDate = ratio(cur.Billable, fteHoursToDate)
	}

	for i := 0; i <= current; i++ {
		rows[i].ProjectedHours = rows[i].UtilizationToDate * rows[i].Capacity
	}

	predicted := predict(rows, current, method, in.BySemester)
	for i := current + 1; i < len(rows); i++ {
		rows[i].ProjectedHours = predicted * rows[i].Capacity
		rows[i].Forecast = true
	}

	accumulate(rows, in.BySemester)

	return Report{
		Person:          person,
		Method:          method,
		BySemester:      in.BySemester,
		FiscalYearStart: yearStart,
		HireDate:        hireDate,
		LastDayWorked:   lastDayWorked,
		CurrentMonth:    fiscal.At(current),
		Predicted:       predicted,
		Months:          rows,
	}, nil
}

// workedSpan returns the first entry date and the last non-holiday entry date.
func workedSpan(entries []timeentry.Entry) (first, last time.Time, ok bool) {
	for _, e := range entries {
		date := dateOnly(e.EntryDate)
		if first.IsZero() || date.Before(first) {
			first = date
		}
		if strings.TrimSpace(e.ActivityName) == HolidayActivity {
			continue
		}
		if !ok || date.After(last) {
			last = date
			ok = true
		}
	}
	return first, last, ok
}

// fillCapacity sets the FTE hours of every month. Months before the hire month get none and the
// hire month only counts the working days from the hire date on.
func fillCapacity(rows []MonthRow, calendar workcalendar.Calendar, yearStart, hireDate time.Time) error {
	hireIndex := -1
	if fiscal.Contains(yearStart, hireDate) {
		hireIndex = fiscal.IndexOf(hireDate)
	}
	for i := range rows {
		var days int
		var err error
		switch {
		case i < hireIndex:
			continue
		case i == hireIndex:
			days, err = calendar.Remaining(hireDate)
		default:
			days, err = calendar.MonthWorkingDays(fiscal.MonthStart(yearStart, i))
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrCalendarGap, err)
		}
		rows[i].Capacity = workcalendar.FTEHours(days)
	}
	return nil
}

func predict(rows []MonthRow, current int, method Method, bySemester bool) float64 {
	switch method {
	case MonthToDate:
		return rows[current].UtilizationToDate
	case LastMonth:
		if current == 0 {
			return rows[current].UtilizationToDate
		}
		return rows[current-1].Utilization
	default:
		start := 0
		if bySemester {
			start = fiscal.SemesterStart(current)
		}
		var hours, capacity float64
		for _, row := range rows[start : current+1] {
			hours += row.ProjectedHours
			capacity += row.Capacity
		}
		return ratio(hours, capacity)
	}
}

// accumulate fills ProjectedUtilization with the running ratio of projected hours to capacity.
// By semester, the running sums restart with the second semester.
func accumulate(rows []MonthRow, bySemester bool) {
	var hours, capacity float64
	for i := range rows {
		if bySemester && i == fiscal.SecondSemesterStart {
			hours, capacity = 0, 0
		}
		hours += rows[i].ProjectedHours
		capacity += rows[i].Capacity
		rows[i].ProjectedUtilization = ratio(hours, capacity)
	}
}

func dateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
