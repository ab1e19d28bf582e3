package workcalendar

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/klokku/utilization/internal/utils"
)

var ErrMalformedCalendar = errors.New("malformed calendar")

// ParseCSV reads a DATES export with "Date" and "Remaining" columns. Other columns are ignored.
func ParseCSV(r io.Reader) ([]Day, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCalendar, err)
	}
	return ParseRows(rows)
}

// ParseRows converts DATES rows, header first, into Days.
func ParseRows(rows [][]string) ([]Day, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: missing header", ErrMalformedCalendar)
	}
	dateCol, remainingCol := -1, -1
	for i, h := range rows[0] {
		switch strings.TrimSpace(h) {
		case "Date":
			dateCol = i
		case "Remaining":
			remainingCol = i
		}
	}
	if dateCol < 0 || remainingCol < 0 {
		return nil, fmt.Errorf("%w: header must contain Date and Remaining", ErrMalformedCalendar)
	}

	days := make([]Day, 0, len(rows)-1)
	for i, record := range rows[1:] {
		line := i + 2
		if len(record) <= dateCol || len(record) <= remainingCol {
			return nil, fmt.Errorf("%w: line %d: missing columns", ErrMalformedCalendar, line)
		}
		if strings.TrimSpace(record[dateCol]) == "" && strings.TrimSpace(record[remainingCol]) == "" {
			continue
		}
		day, err := ParseDay(record[dateCol], record[remainingCol])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		days = append(days, day)
	}
	return days, nil
}

// ParseDay converts raw Date/Remaining cells into a Day.
func ParseDay(date, remaining string) (Day, error) {
	d, err := utils.ParseDate(date)
	if err != nil {
		return Day{}, fmt.Errorf("%w: %v", ErrMalformedCalendar, err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(remaining))
	if err != nil || n < 0 {
		return Day{}, fmt.Errorf("%w: invalid remaining days %q", ErrMalformedCalendar, remaining)
	}
	return Day{Date: d, Remaining: n}, nil
}
