package timeentry

import (
	"strings"
	"testing"
	"time"

	"github.com/klokku/utilization/pkg/fiscal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dailyReport = `User Name,Entry Date,Activity Name,Hours Worked,Time Off Hrs,Time Off Type
Jane Doe,4/1/2024,Client Alpha   ,7.5,,
Jane Doe,4/2/2024,,0,8,Holiday
John Roe,2024-04-02,Internal R&D,0.1,0.2,
`

func TestParseReport(t *testing.T) {
	entries, err := ParseReport(strings.NewReader(dailyReport))

	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, Entry{
		UserName:     "Jane Doe",
		EntryDate:    time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
		ActivityName: "Client Alpha",
		HoursWorked:  7.5,
	}, entries[0])
	assert.Equal(t, "Holiday", entries[1].ActivityName, "time off type becomes the activity")
	assert.Equal(t, 8.0, entries[1].HoursWorked, "time off hours are added to hours worked")
	assert.Equal(t, 0.3, entries[2].HoursWorked, "hours are summed exactly")
	assert.Equal(t, fiscal.Apr, entries[2].FiscalMonth())
}

func TestParseReport_MinimalColumns(t *testing.T) {
	input := "User Name,Entry Date,Activity Name,Hours Worked\nJane Doe,2024-05-01,Client Alpha,4\n\n"

	entries, err := ParseReport(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 4.0, entries[0].HoursWorked)
}

func TestParseReport_Malformed(t *testing.T) {
	tests := map[string]string{
		"missing column": "User Name,Entry Date,Hours Worked\nJane,2024-04-01,3\n",
		"bad hours":      "User Name,Entry Date,Activity Name,Hours Worked\nJane,2024-04-01,A,three\n",
		"negative hours": "User Name,Entry Date,Activity Name,Hours Worked\nJane,2024-04-01,A,-1\n",
		"bad date":       "User Name,Entry Date,Activity Name,Hours Worked\nJane,someday,A,1\n",
		"empty activity": "User Name,Entry Date,Activity Name,Hours Worked\nJane,2024-04-01,  ,1\n",
		"empty user":     "User Name,Entry Date,Activity Name,Hours Worked\n,2024-04-01,A,1\n",
		"bad time off":   "User Name,Entry Date,Activity Name,Hours Worked,Time Off Hrs\nJane,2024-04-01,A,1,x\n",
		"empty hours":    "User Name,Entry Date,Activity Name,Hours Worked\nJane,2024-04-01,A,\n",
		"empty input":    "",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseReport(strings.NewReader(input))
			assert.ErrorIs(t, err, ErrMalformedEntry)
		})
	}
}
