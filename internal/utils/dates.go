package utils

import (
	"fmt"
	"strings"
	"time"
)

// dateLayouts are the date formats found in spreadsheet and timesheet exports.
var dateLayouts = []string{
	time.DateOnly,
	"1/2/2006",
	"01/02/2006",
	"1/2/06",
	time.DateTime,
	"1/2/2006 15:04:05",
	"1/2/2006 3:04:05 PM",
	time.RFC3339,
}

// ParseDate parses a date in any of the supported export formats and returns midnight UTC of
// that day.
func ParseDate(s string) (time.Time, error) {
	trimmed := strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, trimmed)
		if err == nil {
			year, month, day := t.Date()
			return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
