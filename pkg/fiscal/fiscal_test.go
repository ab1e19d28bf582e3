package fiscal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonths(t *testing.T) {
	months := Months()

	assert.Len(t, months, MonthsInYear)
	assert.Equal(t, Apr, months[0])
	assert.Equal(t, Mar, months[11])

	// mutating the returned slice must not affect the sequence
	months[0] = Mar
	assert.Equal(t, Apr, Months()[0])
}

func TestIndexOf(t *testing.T) {
	tests := []struct {
		date  time.Time
		index int
		month Month
	}{
		{time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), 0, Apr},
		{time.Date(2024, time.October, 31, 0, 0, 0, 0, time.UTC), 6, Oct},
		{time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC), 7, Nov},
		{time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC), 9, Jan},
		{time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC), 11, Mar},
	}
	for _, tt := range tests {
		t.Run(tt.date.Format("2006-01-02"), func(t *testing.T) {
			assert.Equal(t, tt.index, IndexOf(tt.date))
			assert.Equal(t, tt.month, MonthOf(tt.date))
			assert.Equal(t, tt.index, Index(MonthOf(tt.date)))
		})
	}
}

func TestYearStart(t *testing.T) {
	assert.Equal(t,
		time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
		YearStart(time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t,
		time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
		YearStart(time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)))

	start := YearStart(time.Date(2025, time.June, 3, 0, 0, 0, 0, time.UTC))
	assert.True(t, Contains(start, time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC)))
	assert.False(t, Contains(start, time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC), MonthStart(start, 7))
}

func TestSemesters(t *testing.T) {
	assert.Equal(t, []Month{Apr, May, Jun, Jul, Aug, Sep, Oct}, SemesterMonths(1))
	assert.Equal(t, []Month{Nov, Dec, Jan, Feb, Mar}, SemesterMonths(2))
	assert.Equal(t, 1, Semester(6))
	assert.Equal(t, 2, Semester(7))
	assert.Equal(t, 0, SemesterStart(3))
	assert.Equal(t, 7, SemesterStart(11))
}

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth(" nov ")
	require.NoError(t, err)
	assert.Equal(t, Nov, m)

	_, err = ParseMonth("November")
	assert.Error(t, err)
	_, err = ParseMonth("Abc")
	assert.Error(t, err)
}
