package utilization

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	colorBorder  = lipgloss.Color("#575653")
	colorText    = lipgloss.Color("#FFFCF0")
	colorMuted   = lipgloss.Color("#6F6E69")
	colorAccent  = lipgloss.Color("#006040")
	colorGreen   = lipgloss.Color("#879A39")
	colorOrange  = lipgloss.Color("#DA702C")
	colorCurrent = lipgloss.Color("#5B9BD5")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Padding(0, 1)
	cellStyle     = lipgloss.NewStyle().Foreground(colorText).Padding(0, 1).Align(lipgloss.Right)
	labelStyle    = cellStyle.Align(lipgloss.Left)
	forecastStyle = cellStyle.Foreground(colorMuted)
	currentStyle  = cellStyle.Bold(true).Foreground(colorCurrent)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	successStyle  = lipgloss.NewStyle().Foreground(colorGreen)
	warnStyle     = lipgloss.NewStyle().Foreground(colorOrange)
)

// TerminalRenderer draws a report as a bordered table for the command line.
type TerminalRenderer struct {
}

func NewTerminalRenderer() *TerminalRenderer {
	return &TerminalRenderer{}
}

func (r *TerminalRenderer) RenderReport(result Result) (string, error) {
	report := result.Report
	current := report.CurrentIndex()

	headers := []string{"Month", "FTE", "Billable", "R&D", "Other", "Time Off", "Util", "To Date", "Projected", "Cumulative"}
	if result.Planned != nil {
		headers = append(headers, "Planned")
	}
	rows := make([][]string, 0, len(report.Months))
	for i, row := range report.Months {
		cells := []string{
			string(row.Month),
			hours(row.Capacity),
			hours(row.Billable),
			hours(row.RAndD),
			hours(row.Other),
			hours(row.TimeOff),
			percent(row.Utilization),
			percent(row.UtilizationToDate),
			hours(row.ProjectedHours),
			percent(row.ProjectedUtilization),
		}
		if result.Planned != nil {
			cells = append(cells, formatPercent(result.Planned[i]))
		}
		rows = append(rows, cells)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row == current:
				return currentStyle
			case row > current:
				return forecastStyle
			case col == 0:
				return labelStyle
			default:
				return cellStyle
			}
		})

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("UTILIZATION  %s", strings.ToUpper(report.Person))))
	b.WriteString("\n")
	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Method: %s", report.Method.Label()))
	if report.BySemester {
		b.WriteString(" (by semester)")
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Predicted utilization: %s\n", formatPercent(result.Outlook.Predicted)))
	switch result.Outlook.Status {
	case OnTrack:
		b.WriteString("  " + successStyle.Render(result.Outlook.Message()) + "\n")
	case Behind:
		b.WriteString("  " + warnStyle.Render(result.Outlook.Message()) + "\n")
	}
	b.WriteString("  " + mutedStyle.Render("Data valid through "+report.ValidThrough()) + "\n")
	return b.String(), nil
}

// RenderBreakdown draws the breakdown view with one row per column of the breakdown.
func (r *TerminalRenderer) RenderBreakdown(breakdown Breakdown) (string, error) {
	rows := make([][]string, 0, len(breakdown.Columns))
	for i, c := range breakdown.Columns {
		planned := ""
		if breakdown.Planned != nil && !c.Aggregate && i < len(breakdown.Planned) {
			planned = formatPercent(breakdown.Planned[i])
		}
		rows = append(rows, []string{
			c.Label,
			formatPercent(c.Billable),
			formatPercent(c.RAndD),
			formatPercent(c.Other),
			formatPercent(c.TimeOff),
			formatPercent(c.Total()),
			planned,
		})
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers("", "Utilization", "R&D", "Other", "Time Off", "Total", "Planned").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row < len(breakdown.Columns) && breakdown.Columns[row].Label == string(breakdown.CurrentMonth):
				return currentStyle
			case col == 0:
				return labelStyle
			default:
				return cellStyle
			}
		})

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("BREAKDOWN  %s", strings.ToUpper(breakdown.Person))))
	b.WriteString("\n")
	b.WriteString(t.Render())
	b.WriteString("\n")
	return b.String(), nil
}

func hours(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

func percent(ratio float64) string {
	return formatPercent(ratio * 100)
}
