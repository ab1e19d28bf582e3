package utilization

import (
	"bytes"
	"encoding/csv"
	"strconv"

	log "github.com/sirupsen/logrus"
)

type Renderer interface {
	RenderReport(result Result) (string, error)
}

type CsvRendererImpl struct {
}

func NewCsvRenderer() *CsvRendererImpl {
	return &CsvRendererImpl{}
}

var csvHeader = []string{
	"Month", "FTE", "Billable", "R&D", "Other", "Time Off",
	"Utilization", "Util to Date", "Predicted Hours", "Predicted Utilization", "Planned",
}

func (r *CsvRendererImpl) RenderReport(result Result) (string, error) {
	report := result.Report
	data := make([][]string, 0, len(report.Months)+3)
	data = append(data, csvHeader)
	for i, row := range report.Months {
		planned := ""
		if result.Planned != nil {
			planned = formatFloat(result.Planned[i] / 100)
		}
		data = append(data, []string{
			string(row.Month),
			formatFloat(row.Capacity),
			formatFloat(row.Billable),
			formatFloat(row.RAndD),
			formatFloat(row.Other),
			formatFloat(row.TimeOff),
			formatFloat(row.Utilization),
			formatFloat(row.UtilizationToDate),
			formatFloat(row.ProjectedHours),
			formatFloat(row.ProjectedUtilization),
			planned,
		})
	}
	data = append(data, []string{"Method", report.Method.Label()})
	data = append(data, []string{"Data valid through", report.ValidThrough()})

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	// the footer rows are shorter than the header
	for _, row := range data {
		if err := writer.Write(row); err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
