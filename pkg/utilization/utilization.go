// Package utilization turns a person's time entries into a fiscal-year utilization report:
// actual utilization per month, an extrapolated figure for the month in progress and a
// projection for the rest of the year.
package utilization

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/klokku/utilization/pkg/fiscal"
)

var (
	ErrPersonNotFound = errors.New("person has no time entries")
	ErrMalformedInput = errors.New("malformed input")
	ErrCalendarGap    = errors.New("calendar gap")
	ErrUnknownMethod  = errors.New("unknown projection method")
)

// Method selects the ratio used to project the months after the current one.
type Method string

const (
	MonthToDate Method = "month_to_date"
	LastMonth   Method = "last_month"
	// YearToDate projects from the year, or the semester when reporting by semester, to date.
	YearToDate Method = "year_to_date"
)

var methodAliases = map[string]Method{
	"month_to_date":           MonthToDate,
	"month to date":           MonthToDate,
	"this month to date":      MonthToDate,
	"last_month":              LastMonth,
	"last month":              LastMonth,
	"year_to_date":            YearToDate,
	"semester_to_date":        YearToDate,
	"year to date":            YearToDate,
	"year (semester) to date": YearToDate,
}

// ParseMethod accepts the method identifiers and their display labels. An empty string
// selects YearToDate.
func ParseMethod(s string) (Method, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return YearToDate, nil
	}
	if m, ok := methodAliases[key]; ok {
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

func (m Method) Label() string {
	switch m {
	case MonthToDate:
		return "Month to Date"
	case LastMonth:
		return "Last Month"
	default:
		return "Year (Semester) to Date"
	}
}

// MonthRow holds the figures of one fiscal month. Ratios are fractions, 0.5 = 50%.
type MonthRow struct {
	Month    fiscal.Month
	Capacity float64
	Billable float64
	RAndD    float64
	Other    float64
	TimeOff  float64
	// Utilization is Billable / Capacity, 0 when Capacity is 0.
	Utilization float64
	// UtilizationToDate equals Utilization except in the current month, where it is
	// extrapolated from the capacity elapsed so far.
	UtilizationToDate    float64
	ProjectedHours       float64
	ProjectedUtilization float64
	Forecast             bool
}

func (r MonthRow) TotalHours() float64 {
	return r.Billable + r.RAndD + r.Other + r.TimeOff
}

// Report is the outcome of Build for one person: twelve rows in fiscal order.
type Report struct {
	Person          string
	Method          Method
	BySemester      bool
	FiscalYearStart time.Time

	// HireDate is the first entry of the person in any year, so it may fall before FiscalYearStart.
	// Only a hire date inside the fiscal year reduces capacity.
	HireDate      time.Time
	LastDayWorked time.Time
	CurrentMonth  fiscal.Month
	// Predicted is the ratio applied to the capacity of every month after CurrentMonth.
	Predicted float64
	Months    []MonthRow
}

// ValidThrough formats the last day worked for display.
func (r Report) ValidThrough() string {
	return r.LastDayWorked.Format("Monday, January 2, 2006")
}

func (r Report) CurrentIndex() int {
	return fiscal.Index(r.CurrentMonth)
}

// Row returns the row of month m.
func (r Report) Row(m fiscal.Month) MonthRow {
	return r.Months[fiscal.Index(m)]
}

// YearEndUtilization is the cumulative projected utilization of the final fiscal month.
func (r Report) YearEndUtilization() float64 {
	if len(r.Months) == 0 {
		return 0
	}
	return r.Months[len(r.Months)-1].ProjectedUtilization
}

func ratio(numerator, denominator float64) float64 {
	if denominator <= 0 {
		return 0
	}
	return numerator / denominator
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 0, 64) + "%"
}
