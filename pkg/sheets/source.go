// Package sheets reads the utilization inputs from Google Sheets: the hours export and the
// ACTIVITY, DATES, NAMES and TARGETS tabs of the inputs spreadsheet.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/klokku/utilization/internal/config"
	"github.com/klokku/utilization/pkg/activity"
	"github.com/klokku/utilization/pkg/fiscal"
	"github.com/klokku/utilization/pkg/target"
	"github.com/klokku/utilization/pkg/timeentry"
	"github.com/klokku/utilization/pkg/workcalendar"
)

// Tabs of the inputs spreadsheet.
const (
	ActivityTab = "ACTIVITY"
	DatesTab    = "DATES"
	NamesTab    = "NAMES"
	TargetsTab  = "TARGETS"
)

var ErrMalformedSheet = errors.New("malformed sheet")

// Snapshot is the content of both spreadsheets at one point in time.
type Snapshot struct {
	Entries    []timeentry.Entry
	Activities []activity.Activity
	Calendar   []workcalendar.Day
	Names      []string
	Targets    []target.Plan
}

type Source struct {
	reader ValuesReader
	cfg    config.Google
}

func NewSource(reader ValuesReader, cfg config.Google) *Source {
	return &Source{reader: reader, cfg: cfg}
}

func (s *Source) Snapshot(ctx context.Context) (Snapshot, error) {
	var snapshot Snapshot

	rows, err := s.reader.Read(ctx, s.cfg.HoursSpreadsheetId, s.cfg.HoursSheet)
	if err != nil {
		return Snapshot{}, err
	}
	if snapshot.Entries, err = timeentry.ParseRows(rows); err != nil {
		return Snapshot{}, fmt.Errorf("%s: %w", s.cfg.HoursSheet, err)
	}

	tabs := []struct {
		name  string
		parse func([][]string) error
	}{
		{ActivityTab, func(rows [][]string) (err error) {
			snapshot.Activities, err = ParseActivities(rows)
			return err
		}},
		{DatesTab, func(rows [][]string) (err error) {
			snapshot.Calendar, err = workcalendar.ParseRows(rows)
			return err
		}},
		{NamesTab, func(rows [][]string) (err error) {
			snapshot.Names, err = ParseNames(rows)
			return err
		}},
		{TargetsTab, func(rows [][]string) (err error) {
			snapshot.Targets, err = ParseTargets(rows)
			return err
		}},
	}
	for _, tab := range tabs {
		rows, err := s.reader.Read(ctx, s.cfg.InputsSpreadsheetId, tab.name)
		if err != nil {
			return Snapshot{}, err
		}
		if err := tab.parse(rows); err != nil {
			return Snapshot{}, fmt.Errorf("%s: %w", tab.name, err)
		}
	}
	return snapshot, nil
}

// ParseActivities reads the ACTIVITY tab: "Activity Name" and "Classification" columns.
func ParseActivities(rows [][]string) ([]activity.Activity, error) {
	t, err := newTable(rows, "Activity Name", "Classification")
	if err != nil {
		return nil, err
	}
	activities := make([]activity.Activity, 0, len(t.rows))
	for i, row := range t.rows {
		name := strings.TrimSpace(t.cell(row, "Activity Name"))
		if name == "" {
			continue
		}
		classification, err := activity.ParseClassification(t.cell(row, "Classification"))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedSheet, i+2, err)
		}
		activities = append(activities, activity.Activity{Name: name, Classification: classification})
	}
	return activities, nil
}

// ParseNames reads the unique user names of the NAMES tab in sheet order.
func ParseNames(rows [][]string) ([]string, error) {
	t, err := newTable(rows, "User Name")
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	var names []string
	for _, row := range t.rows {
		name := strings.TrimSpace(t.cell(row, "User Name"))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names, nil
}

// ParseTargets reads the TARGETS tab: a "User Name" column and one column per fiscal month
// holding the planned utilization ratio. Empty cells plan nothing for that month.
func ParseTargets(rows [][]string) ([]target.Plan, error) {
	t, err := newTable(rows, "User Name")
	if err != nil {
		return nil, err
	}
	var plans []target.Plan
	for i, row := range t.rows {
		name := strings.TrimSpace(t.cell(row, "User Name"))
		if name == "" {
			continue
		}
		plan := target.Plan{UserName: name, Months: map[fiscal.Month]float64{}}
		for _, m := range fiscal.Months() {
			raw := strings.TrimSpace(t.cell(row, string(m)))
			if raw == "" {
				continue
			}
			value, err := parseRatio(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d, %s: %v", ErrMalformedSheet, i+2, m, err)
			}
			plan.Months[m] = value
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

// parseRatio accepts "0.8" as well as the formatted "80%".
func parseRatio(raw string) (float64, error) {
	if percent, ok := strings.CutSuffix(raw, "%"); ok {
		v, err := strconv.ParseFloat(strings.TrimSpace(percent), 64)
		return v / 100, err
	}
	return strconv.ParseFloat(raw, 64)
}

type table struct {
	columns map[string]int
	rows    [][]string
}

func newTable(rows [][]string, required ...string) (table, error) {
	if len(rows) == 0 {
		return table{}, fmt.Errorf("%w: missing header", ErrMalformedSheet)
	}
	columns := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		columns[strings.TrimSpace(h)] = i
	}
	for _, r := range required {
		if _, ok := columns[r]; !ok {
			return table{}, fmt.Errorf("%w: missing column %q", ErrMalformedSheet, r)
		}
	}
	return table{columns: columns, rows: rows[1:]}, nil
}

// cell returns "" for absent columns and for cells past the end of a short row, as the Sheets
// API trims trailing empty cells.
func (t table) cell(row []string, column string) string {
	i, ok := t.columns[column]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}
