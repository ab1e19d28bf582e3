package utilization

import (
	"context"
	"testing"
	"time"

	"github.com/klokku/utilization/internal/event_bus"
	"github.com/klokku/utilization/internal/utils"
	"github.com/klokku/utilization/pkg/activity"
	"github.com/klokku/utilization/pkg/fiscal"
	"github.com/klokku/utilization/pkg/target"
	"github.com/klokku/utilization/pkg/timeentry"
	"github.com/klokku/utilization/pkg/workcalendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	service    *ServiceImpl
	entries    *timeentry.ServiceImpl
	activities *activity.ServiceImpl
	targets    *target.RepositoryStub
	clock      *utils.MockClock
}

func setup(t *testing.T, withBus bool) (fixture, context.Context) {
	ctx := context.Background()
	var bus *event_bus.EventBus
	if withBus {
		bus = event_bus.NewEventBus()
	}
	entries := timeentry.NewService(timeentry.NewRepositoryStub(), bus)
	activities := activity.NewService(activity.NewRepositoryStub(), bus)
	calendar := workcalendar.NewService(workcalendar.NewRepositoryStub(), bus)
	targets := target.NewRepositoryStub()

	require.NoError(t, calendar.ReplaceAll(ctx, flatCalendar().Days(), "test"))
	require.NoError(t, activities.ReplaceAll(ctx, []activity.Activity{{Name: "Research", Classification: activity.RAndD}}, "test"))
	_, err := entries.ReplaceAll(ctx, aprilAndMay(), "test")
	require.NoError(t, err)

	clock := &utils.MockClock{FixedNow: time.Date(2024, time.May, 20, 15, 30, 0, 0, time.UTC)}
	service := NewService(entries, activities, calendar, targets, clock, bus)

	return fixture{service: service, entries: entries, activities: activities, targets: targets, clock: clock}, ctx
}

func TestServiceImpl_Report(t *testing.T) {
	f, ctx := setup(t, true)
	require.NoError(t, f.targets.ReplaceAll(ctx, []target.Plan{
		{UserName: "Jane Doe", Months: map[fiscal.Month]float64{fiscal.Apr: 0.7, fiscal.May: 0.75}},
	}))

	// when
	result, err := f.service.Report(ctx, Params{Person: "Jane Doe", Method: MonthToDate, Target: 75})

	// then
	require.NoError(t, err)
	assert.Equal(t, fiscal.May, result.Report.CurrentMonth)
	assert.InDelta(t, 80.0/120.0, result.Report.Predicted, delta)
	assert.Equal(t, Behind, result.Outlook.Status)
	require.Len(t, result.Planned, 12)
	assert.InDelta(t, 70.0, result.Planned[0], delta)
	assert.InDelta(t, 75.0, result.Planned[1], delta)
}

func TestServiceImpl_ReportIsCappedByClock(t *testing.T) {
	f, ctx := setup(t, true)
	f.clock.SetNow(time.Date(2024, time.May, 10, 9, 0, 0, 0, time.UTC))

	// when
	result, err := f.service.Report(ctx, Params{Person: "Jane Doe", Method: MonthToDate})

	// then the entry of May 15th counts but the month ends on the 10th
	require.NoError(t, err)
	assert.Equal(t, date(time.May, 10), result.Report.LastDayWorked)
	assert.InDelta(t, 80.0, result.Report.Row(fiscal.May).Billable, delta)
	assert.InDelta(t, 1.0, result.Report.Predicted, delta)
}

func TestServiceImpl_ReportWithoutPlan(t *testing.T) {
	f, ctx := setup(t, true)

	result, err := f.service.Report(ctx, Params{Person: "John Roe"})

	require.NoError(t, err)
	assert.Nil(t, result.Planned)
	assert.Equal(t, NoTarget, result.Outlook.Status)
	assert.Equal(t, YearToDate, result.Report.Method)
}

func TestServiceImpl_ReloadsAfterInputsChange(t *testing.T) {
	f, ctx := setup(t, true)
	before, err := f.service.Report(ctx, Params{Person: "Jane Doe"})
	require.NoError(t, err)
	assert.Equal(t, 40.0, before.Report.Row(fiscal.Apr).Billable)

	// when
	_, err = f.activities.Classify(ctx, "Project X", activity.Other)
	require.NoError(t, err)

	// then
	after, err := f.service.Report(ctx, Params{Person: "Jane Doe"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, after.Report.Row(fiscal.Apr).Billable)
	assert.Equal(t, 40.0, after.Report.Row(fiscal.Apr).Other)
}

func TestServiceImpl_CachesUntilInvalidated(t *testing.T) {
	f, ctx := setup(t, false)
	_, err := f.service.Report(ctx, Params{Person: "Jane Doe"})
	require.NoError(t, err)

	// given new entries stored without an event bus
	_, err = f.entries.ReplaceAll(ctx, worked("Max Mustermann", date(time.April, 1), 2, "Project Z", 8), "test")
	require.NoError(t, err)

	// when
	cached, err := f.service.Report(ctx, Params{Person: "Jane Doe"})
	require.NoError(t, err)
	f.service.Invalidate()
	_, reloadErr := f.service.Report(ctx, Params{Person: "Jane Doe"})

	// then
	assert.Equal(t, 40.0, cached.Report.Row(fiscal.Apr).Billable)
	assert.ErrorIs(t, reloadErr, ErrPersonNotFound)
}

func TestServiceImpl_Breakdown(t *testing.T) {
	f, ctx := setup(t, true)

	breakdown, err := f.service.Breakdown(ctx, Params{Person: "Jane Doe", BySemester: true})

	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", breakdown.Person)
	assert.Len(t, breakdown.Columns, 14)
	assert.Nil(t, breakdown.Planned)
}

func TestServiceImpl_UnknownPerson(t *testing.T) {
	f, ctx := setup(t, true)

	_, err := f.service.Report(ctx, Params{Person: "Nobody"})

	assert.ErrorIs(t, err, ErrPersonNotFound)
}
