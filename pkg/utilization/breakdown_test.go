package utilization

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBreakdown_Year(t *testing.T) {
	// given
	entries := append(aprilAndMay(), worked("Jane Doe", date(time.April, 8), 2, "Research", 8)...)
	report, err := Build(input(entries, YearToDate))
	require.NoError(t, err)

	// when
	breakdown := NewBreakdown(report)

	// then
	require.Len(t, breakdown.Columns, 13)
	apr := breakdown.Columns[0]
	assert.Equal(t, "Apr", apr.Label)
	assert.InDelta(t, 25.0, apr.Billable, delta)
	assert.InDelta(t, 10.0, apr.RAndD, delta)
	assert.InDelta(t, 35.0, apr.Total(), delta)
	assert.InDelta(t, 80.0/120.0*100, breakdown.Columns[1].Billable, delta)

	year := breakdown.Columns[12]
	assert.Equal(t, "Year", year.Label)
	assert.True(t, year.Aggregate)
	assert.InDelta(t, 120.0/320.0*100, year.Billable, delta)
	assert.InDelta(t, 16.0/320.0*100, year.RAndD, delta)
}

func TestNewBreakdown_YearIgnoresFutureMonths(t *testing.T) {
	// given vacation booked ahead in July
	entries := append(aprilAndMay(), worked("Jane Doe", date(time.July, 1), 2, "Vacation", 8)...)
	report, err := Build(input(entries, YearToDate))
	require.NoError(t, err)

	// when
	breakdown := NewBreakdown(report)

	// then the month shows it but the year to date does not
	assert.InDelta(t, 10.0, breakdown.Columns[3].TimeOff, delta)
	year := breakdown.Columns[12]
	assert.Equal(t, 0.0, year.TimeOff)
	assert.InDelta(t, 120.0/320.0*100, year.Billable, delta)
}

func TestNewBreakdown_BySemester(t *testing.T) {
	in := input(aprilAndMay(), YearToDate)
	in.BySemester = true
	report, err := Build(in)
	require.NoError(t, err)

	breakdown := NewBreakdown(report)

	require.Len(t, breakdown.Columns, 14)
	s1, s2 := breakdown.Columns[12], breakdown.Columns[13]
	assert.Equal(t, "S1", s1.Label)
	assert.InDelta(t, 37.5, s1.Billable, delta)
	// the second semester has not started yet
	assert.Equal(t, "S2", s2.Label)
	assert.Equal(t, 0.0, s2.Total())
}

func TestAssess(t *testing.T) {
	report, err := Build(input(aprilAndMay(), MonthToDate))
	require.NoError(t, err)
	predicted := report.YearEndUtilization() * 100

	t.Run("no target", func(t *testing.T) {
		outlook := Assess(report, 0)
		assert.Equal(t, NoTarget, outlook.Status)
		assert.Empty(t, outlook.Message())
	})

	t.Run("on track", func(t *testing.T) {
		outlook := Assess(report, 60)
		assert.Equal(t, OnTrack, outlook.Status)
		assert.InDelta(t, predicted, outlook.Predicted, delta)
		assert.Equal(t, "You're on track to meet your utilization!", outlook.Message())
	})

	t.Run("behind", func(t *testing.T) {
		outlook := Assess(report, 75)
		assert.Equal(t, Behind, outlook.Status)
		// predicted is about 63.2%
		assert.Equal(t, 12.0, outlook.Shortfall)
		assert.Equal(t, "You're on track to miss your target by 12%", outlook.Message())
	})
}

func TestCsvRenderer_RenderReport(t *testing.T) {
	report, err := Build(input(aprilAndMay(), MonthToDate))
	require.NoError(t, err)
	planned := make([]float64, 12)
	planned[0] = 70

	csv, err := NewCsvRenderer().RenderReport(Result{Report: report, Planned: planned})

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(csv, "\n"), "\n")
	require.Len(t, lines, 15)
	assert.Equal(t, "Month,FTE,Billable,R&D,Other,Time Off,Utilization,Util to Date,Predicted Hours,Predicted Utilization,Planned", lines[0])
	assert.Equal(t, "Apr,160.0000,40.0000,0.0000,0.0000,0.0000,0.2500,0.2500,40.0000,0.2500,0.7000", lines[1])
	assert.Equal(t, "Method,Month to Date", lines[13])
	assert.Equal(t, `Data valid through,"Wednesday, May 15, 2024"`, lines[14])
}

func TestTerminalRenderer_RenderReport(t *testing.T) {
	report, err := Build(input(aprilAndMay(), MonthToDate))
	require.NoError(t, err)

	out, err := NewTerminalRenderer().RenderReport(Result{Report: report, Outlook: Assess(report, 75)})

	require.NoError(t, err)
	assert.Contains(t, out, "JANE DOE")
	assert.Contains(t, out, "Month to Date")
	assert.Contains(t, out, "miss your target by 12%")
	assert.Contains(t, out, "Wednesday, May 15, 2024")
}
