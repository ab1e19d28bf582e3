package utilization

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/klokku/utilization/internal/event_bus"
	"github.com/klokku/utilization/internal/utils"
	"github.com/klokku/utilization/pkg/activity"
	"github.com/klokku/utilization/pkg/target"
	"github.com/klokku/utilization/pkg/timeentry"
	"github.com/klokku/utilization/pkg/workcalendar"
	log "github.com/sirupsen/logrus"
)

type Params struct {
	Person     string
	Method     Method
	BySemester bool
	// Target is the utilization the person aims for, in percent. 0 means none.
	Target float64
}

type Result struct {
	Report  Report
	Outlook Outlook
	// Planned is the planned utilization per fiscal month in percent, nil without a plan.
	Planned []float64
}

type Service interface {
	Report(ctx context.Context, params Params) (Result, error)
	Breakdown(ctx context.Context, params Params) (Breakdown, error)
	// Invalidate drops the cached inputs so the next report reloads them.
	Invalidate()
}

type inputs struct {
	entries  []timeentry.Entry
	lookup   activity.Lookup
	calendar workcalendar.Calendar
}

type ServiceImpl struct {
	entries    timeentry.Service
	activities activity.Service
	calendar   workcalendar.Service
	targets    target.Repository
	clock      utils.Clock

	mu       sync.Mutex
	snapshot *inputs
}

func NewService(
	entries timeentry.Service,
	activities activity.Service,
	calendar workcalendar.Service,
	targets target.Repository,
	clock utils.Clock,
	eventBus *event_bus.EventBus,
) *ServiceImpl {
	s := &ServiceImpl{
		entries:    entries,
		activities: activities,
		calendar:   calendar,
		targets:    targets,
		clock:      clock,
	}
	if eventBus != nil {
		event_bus.SubscribeTyped(eventBus, event_bus.InputsChangedType, func(e event_bus.EventT[event_bus.InputsChanged]) error {
			log.Debugf("Utilization inputs changed (%s from %s), dropping cache", e.Data.Table, e.Data.Source)
			s.Invalidate()
			return nil
		})
	}
	return s
}

func (s *ServiceImpl) Report(ctx context.Context, params Params) (Result, error) {
	in, err := s.load(ctx)
	if err != nil {
		return Result{}, err
	}
	report, err := Build(Input{
		Entries:         in.entries,
		Classifications: in.lookup,
		Calendar:        in.calendar,
		Person:          params.Person,
		Method:          params.Method,
		BySemester:      params.BySemester,
		Today:           utils.Today(s.clock),
	})
	if err != nil {
		return Result{}, err
	}
	log.Debugf("Utilization for %s: current month %s, predicted %.4f", report.Person, report.CurrentMonth, report.Predicted)

	planned, err := s.planned(ctx, report.Person)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Report:  report,
		Outlook: Assess(report, params.Target),
		Planned: planned,
	}, nil
}

func (s *ServiceImpl) Breakdown(ctx context.Context, params Params) (Breakdown, error) {
	result, err := s.Report(ctx, params)
	if err != nil {
		return Breakdown{}, err
	}
	breakdown := NewBreakdown(result.Report)
	breakdown.Planned = result.Planned
	return breakdown, nil
}

func (s *ServiceImpl) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = nil
}

// load returns a private copy of the cached inputs, reading them first when needed.
func (s *ServiceImpl) load(ctx context.Context) (inputs, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot == nil {
		entries, err := s.entries.Entries(ctx)
		if err != nil {
			return inputs{}, err
		}
		lookup, err := s.activities.Lookup(ctx)
		if err != nil {
			return inputs{}, err
		}
		calendar, err := s.calendar.Calendar(ctx)
		if err != nil {
			return inputs{}, err
		}
		log.Tracef("Loaded %d entries, %d activities, %d calendar days", len(entries), len(lookup), calendar.Len())
		s.snapshot = &inputs{entries: entries, lookup: lookup, calendar: calendar}
	}

	return inputs{
		entries:  slices.Clone(s.snapshot.entries),
		lookup:   s.snapshot.lookup.Clone(),
		calendar: s.snapshot.calendar.Clone(),
	}, nil
}

func (s *ServiceImpl) planned(ctx context.Context, person string) ([]float64, error) {
	plan, err := s.targets.Get(ctx, person)
	if errors.Is(err, target.ErrPlanNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	series := plan.Series()
	for i := range series {
		series[i] *= 100
	}
	return series, nil
}
