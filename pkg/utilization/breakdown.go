package utilization

import (
	"github.com/klokku/utilization/pkg/fiscal"
)

// Share is one column of the breakdown view. Values are percentages of capacity.
type Share struct {
	Label     string
	Billable  float64
	RAndD     float64
	Other     float64
	TimeOff   float64
	Aggregate bool
}

func (s Share) Total() float64 {
	return s.Billable + s.RAndD + s.Other + s.TimeOff
}

// Breakdown splits each month's capacity into labor categories, followed by aggregate columns:
// "Year", or "S1" and "S2" when the report is by semester.
type Breakdown struct {
	Person       string
	CurrentMonth fiscal.Month
	BySemester   bool
	Columns      []Share
	// Planned holds the planned utilization per month in percent, nil when no plan exists.
	Planned []float64
}

func NewBreakdown(report Report) Breakdown {
	columns := make([]Share, 0, fiscal.MonthsInYear+2)
	for _, row := range report.Months {
		columns = append(columns, Share{
			Label:    string(row.Month),
			Billable: row.UtilizationToDate * 100,
			RAndD:    ratio(row.RAndD, row.Capacity) * 100,
			Other:    ratio(row.Other, row.Capacity) * 100,
			TimeOff:  ratio(row.TimeOff, row.Capacity) * 100,
		})
	}

	current := report.CurrentIndex()
	if report.BySemester {
		columns = append(columns,
			aggregate("S1", report.Months, 0, min(fiscal.SecondSemesterStart-1, current)),
			aggregate("S2", report.Months, fiscal.SecondSemesterStart, current),
		)
	} else {
		columns = append(columns, aggregate("Year", report.Months, 0, current))
	}

	return Breakdown{
		Person:       report.Person,
		CurrentMonth: report.CurrentMonth,
		BySemester:   report.BySemester,
		Columns:      columns,
	}
}

// aggregate sums rows[from..to] inclusive; an empty span yields zeros.
func aggregate(label string, rows []MonthRow, from, to int) Share {
	share := Share{Label: label, Aggregate: true}
	if to < from {
		return share
	}
	var total MonthRow
	for _, row := range rows[from : to+1] {
		total.Capacity += row.Capacity
		total.Billable += row.Billable
		total.RAndD += row.RAndD
		total.Other += row.Other
		total.TimeOff += row.TimeOff
	}
	share.Billable = ratio(total.Billable, total.Capacity) * 100
	share.RAndD = ratio(total.RAndD, total.Capacity) * 100
	share.Other = ratio(total.Other, total.Capacity) * 100
	share.TimeOff = ratio(total.TimeOff, total.Capacity) * 100
	return share
}
