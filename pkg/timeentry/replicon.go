package timeentry

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klokku/utilization/internal/utils"
	"github.com/shopspring/decimal"
)

// Column names of the daily utilization report.
const (
	ColUserName     = "User Name"
	ColEntryDate    = "Entry Date"
	ColActivityName = "Activity Name"
	ColHoursWorked  = "Hours Worked"
	ColTimeOffHours = "Time Off Hrs"
	ColTimeOffType  = "Time Off Type"
)

// ParseReport reads the daily utilization report CSV. Time off is folded into the regular
// columns: its hours are added to Hours Worked and its type appended to the activity name.
// Activity names are trimmed because the export pads them with whitespace.
func ParseReport(r io.Reader) ([]Entry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEntry, err)
	}
	return ParseRows(rows)
}

// ParseRows converts report rows, header first, into entries. It is shared by the CSV import
// and the spreadsheet sync.
func ParseRows(rows [][]string) ([]Entry, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: missing header", ErrMalformedEntry)
	}
	columns := indexColumns(rows[0])
	for _, required := range []string{ColUserName, ColEntryDate, ColActivityName, ColHoursWorked} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrMalformedEntry, required)
		}
	}

	var entries []Entry
	for i, record := range rows[1:] {
		if isBlank(record) {
			continue
		}
		entry, err := parseRecord(record, columns)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func parseRecord(record []string, columns map[string]int) (Entry, error) {
	cell := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	date, err := utils.ParseDate(cell(ColEntryDate))
	if err != nil {
		return Entry{}, errors.Join(ErrMalformedEntry, err)
	}
	hours, err := parseHours(cell(ColHoursWorked), false)
	if err != nil {
		return Entry{}, err
	}
	timeOff, err := parseHours(cell(ColTimeOffHours), true)
	if err != nil {
		return Entry{}, err
	}

	entry := Entry{
		UserName:     strings.TrimSpace(cell(ColUserName)),
		EntryDate:    date,
		ActivityName: strings.TrimSpace(cell(ColActivityName) + cell(ColTimeOffType)),
		HoursWorked:  hours.Add(timeOff).InexactFloat64(),
	}
	if err := entry.Validate(); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

func parseHours(s string, optional bool) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" && optional {
		return decimal.Zero, nil
	}
	hours, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: invalid hours %q", ErrMalformedEntry, s)
	}
	if hours.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: negative hours %q", ErrMalformedEntry, s)
	}
	return hours, nil
}

func indexColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, h := range header {
		columns[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	return columns
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
