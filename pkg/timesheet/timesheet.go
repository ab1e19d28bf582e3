// Package timesheet converts a Deltek timesheet export into the daily report layout the
// utilization import reads.
package timesheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/klokku/utilization/internal/utils"
	"github.com/klokku/utilization/pkg/timeentry"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// DefaultHeaderRow is the number of report preamble lines above the column header.
const DefaultHeaderRow = 20

// Columns of the export.
const (
	colProject  = "Project"
	colEmployee = "Employee"
	colDate     = "Date"
	colHours    = "Hours"
)

var (
	ErrMalformedTimesheet = errors.New("malformed timesheet")
	ErrUnmappedEmployee   = errors.New("employee missing from crosswalk")
)

// droppedColumns never reach the output. "Project.1" is the second Project column.
var droppedColumns = []string{"Project.1", "UDT10", "Comments"}

var outputHeader = []string{
	timeentry.ColUserName,
	timeentry.ColEntryDate,
	timeentry.ColActivityName,
	timeentry.ColHoursWorked,
	timeentry.ColTimeOffHours,
}

type Options struct {
	HeaderRow int
}

type Result struct {
	Rows      int
	Employees int
}

type row struct {
	userName string
	date     time.Time
	project  string
	hours    decimal.Decimal
}

// Reshape reads the export from r, maps employees to user names through the crosswalk and
// writes the normalized CSV to w, sorted by user name then date.
func Reshape(r io.Reader, crosswalk io.Reader, w io.Writer, opts Options) (Result, error) {
	names, err := ReadCrosswalk(crosswalk)
	if err != nil {
		return Result{}, err
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrMalformedTimesheet, err)
	}
	if len(records) <= opts.HeaderRow {
		return Result{}, fmt.Errorf("%w: no header at line %d", ErrMalformedTimesheet, opts.HeaderRow+1)
	}

	columns := keptColumns(records[opts.HeaderRow])
	for _, required := range []string{colProject, colEmployee, colDate, colHours} {
		if _, ok := columns[required]; !ok {
			return Result{}, fmt.Errorf("%w: missing column %q", ErrMalformedTimesheet, required)
		}
	}

	var rows []row
	var unmapped []string
	employees := map[string]bool{}
	project, employee := "", ""
	for i, record := range records[opts.HeaderRow+1:] {
		line := opts.HeaderRow + i + 2
		cell := func(name string) string {
			idx := columns[name]
			if idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		// project and employee are only printed on the first line of their group
		if v := cell(colProject); v != "" {
			project = v
		}
		if v := cell(colEmployee); v != "" {
			employee = v
		}
		if cell(colDate) == "" {
			continue
		}

		date, err := utils.ParseDate(cell(colDate))
		if err != nil {
			return Result{}, fmt.Errorf("%w: line %d: %v", ErrMalformedTimesheet, line, err)
		}
		hours, err := decimal.NewFromString(cell(colHours))
		if err != nil {
			return Result{}, fmt.Errorf("%w: line %d: invalid hours %q", ErrMalformedTimesheet, line, cell(colHours))
		}
		userName, ok := names[employee]
		if !ok {
			if !slices.Contains(unmapped, employee) {
				unmapped = append(unmapped, employee)
			}
			continue
		}
		employees[userName] = true
		rows = append(rows, row{userName: userName, date: date, project: project, hours: hours})
	}
	if len(unmapped) > 0 {
		return Result{}, fmt.Errorf("%w: %s", ErrUnmappedEmployee, strings.Join(unmapped, ", "))
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].userName != rows[j].userName {
			return rows[i].userName < rows[j].userName
		}
		return rows[i].date.Before(rows[j].date)
	})

	writer := csv.NewWriter(w)
	if err := writer.Write(outputHeader); err != nil {
		return Result{}, err
	}
	for _, r := range rows {
		err := writer.Write([]string{r.userName, r.date.Format(time.DateOnly), r.project, r.hours.String(), "0"})
		if err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return Result{}, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return Result{}, err
	}

	return Result{Rows: len(rows), Employees: len(employees)}, nil
}

// ReadCrosswalk reads the employee crosswalk: the first column holds the timesheet employee
// name, the "User Name" column the name used by the time tracking system.
func ReadCrosswalk(r io.Reader) (map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: crosswalk: %v", ErrMalformedTimesheet, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: crosswalk is empty", ErrMalformedTimesheet)
	}
	userCol := slices.IndexFunc(records[0], func(h string) bool {
		return strings.TrimSpace(h) == timeentry.ColUserName
	})
	if userCol <= 0 {
		return nil, fmt.Errorf("%w: crosswalk needs an employee column followed by %q", ErrMalformedTimesheet, timeentry.ColUserName)
	}
	names := make(map[string]string, len(records)-1)
	for _, record := range records[1:] {
		if len(record) <= userCol {
			continue
		}
		employee := strings.TrimSpace(record[0])
		userName := strings.TrimSpace(record[userCol])
		if employee == "" || userName == "" {
			continue
		}
		names[employee] = userName
	}
	return names, nil
}

// keptColumns indexes the header after renaming duplicates to "Name.1", "Name.2" and so on,
// and after dropping blank and Unnamed columns.
func keptColumns(header []string) map[string]int {
	seen := map[string]int{}
	columns := map[string]int{}
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" || strings.HasPrefix(name, "Unnamed") {
			continue
		}
		if n := seen[name]; n > 0 {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n)
		} else {
			seen[name] = 1
		}
		if slices.Contains(droppedColumns, name) {
			continue
		}
		columns[name] = i
	}
	return columns
}
