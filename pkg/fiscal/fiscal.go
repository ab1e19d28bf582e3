// Package fiscal describes the organization's fiscal year: twelve months from April to March,
// split into a seven month first semester and a five month second semester.
package fiscal

import (
	"fmt"
	"strings"
	"time"
)

// Month is the three-letter label of a fiscal month, e.g. "Apr".
type Month string

const (
	Apr Month = "Apr"
	May Month = "May"
	Jun Month = "Jun"
	Jul Month = "Jul"
	Aug Month = "Aug"
	Sep Month = "Sep"
	Oct Month = "Oct"
	Nov Month = "Nov"
	Dec Month = "Dec"
	Jan Month = "Jan"
	Feb Month = "Feb"
	Mar Month = "Mar"
)

// MonthsInYear is the length of the fiscal month sequence.
const MonthsInYear = 12

// SecondSemesterStart is the index of the first month of the second semester (Nov).
const SecondSemesterStart = 7

// StartMonth is the calendar month in which the fiscal year begins.
const StartMonth = time.April

var sequence = [MonthsInYear]Month{Apr, May, Jun, Jul, Aug, Sep, Oct, Nov, Dec, Jan, Feb, Mar}

// Months returns the fiscal month sequence, Apr..Mar. The returned slice is a fresh copy.
func Months() []Month {
	months := make([]Month, MonthsInYear)
	copy(months, sequence[:])
	return months
}

// Index returns the position of m in the fiscal sequence, or -1 when m is not a fiscal month.
func Index(m Month) int {
	for i, candidate := range sequence {
		if candidate == m {
			return i
		}
	}
	return -1
}

// At returns the month at the given fiscal index. It panics on an index outside 0..11.
func At(index int) Month {
	return sequence[index]
}

// ParseMonth accepts a fiscal month label in any letter case ("apr", "APR", "Apr").
func ParseMonth(s string) (Month, error) {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) != 3 {
		return "", fmt.Errorf("invalid fiscal month %q", s)
	}
	m := Month(strings.ToUpper(trimmed[:1]) + strings.ToLower(trimmed[1:]))
	if Index(m) < 0 {
		return "", fmt.Errorf("invalid fiscal month %q", s)
	}
	return m, nil
}

// MonthOf returns the fiscal month label of a calendar date.
func MonthOf(date time.Time) Month {
	return Month(date.Format("Jan"))
}

// IndexOf returns the fiscal index of the month containing date.
func IndexOf(date time.Time) int {
	return (int(date.Month()) - int(StartMonth) + MonthsInYear) % MonthsInYear
}

// YearStart returns April 1st of the fiscal year that contains date, in date's location.
func YearStart(date time.Time) time.Time {
	year := date.Year()
	if date.Month() < StartMonth {
		year--
	}
	return time.Date(year, StartMonth, 1, 0, 0, 0, 0, date.Location())
}

// MonthStart returns the first calendar day of the fiscal month at index within the fiscal
// year beginning at yearStart.
func MonthStart(yearStart time.Time, index int) time.Time {
	return yearStart.AddDate(0, index, 0)
}

// Contains reports whether date falls inside the fiscal year beginning at yearStart.
func Contains(yearStart time.Time, date time.Time) bool {
	end := yearStart.AddDate(1, 0, 0)
	return !date.Before(yearStart) && date.Before(end)
}

// Semester returns 1 or 2 for a fiscal month index.
func Semester(index int) int {
	if index >= SecondSemesterStart {
		return 2
	}
	return 1
}

// SemesterStart returns the index of the first month of the semester containing index.
func SemesterStart(index int) int {
	if index >= SecondSemesterStart {
		return SecondSemesterStart
	}
	return 0
}

// SemesterMonths returns the months of semester 1 or 2.
func SemesterMonths(semester int) []Month {
	if semester == 2 {
		return Months()[SecondSemesterStart:]
	}
	return Months()[:SecondSemesterStart]
}
