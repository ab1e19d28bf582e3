package sheets

import (
	"context"
	"time"

	"github.com/klokku/utilization/internal/event_bus"
	"github.com/klokku/utilization/pkg/activity"
	"github.com/klokku/utilization/pkg/target"
	"github.com/klokku/utilization/pkg/timeentry"
	"github.com/klokku/utilization/pkg/workcalendar"
	log "github.com/sirupsen/logrus"
)

const syncSource = "google-sheets"

type SyncResult struct {
	Batch        string
	Entries      int
	Activities   int
	CalendarDays int
	People       int
	Targets      int
	Duration     time.Duration
}

type SnapshotSource interface {
	Snapshot(ctx context.Context) (Snapshot, error)
}

type SyncService interface {
	Sync(ctx context.Context) (SyncResult, error)
}

// SyncServiceImpl copies a spreadsheet snapshot into the local store, replacing what was there.
type SyncServiceImpl struct {
	source     SnapshotSource
	entries    timeentry.Service
	activities activity.Service
	calendar   workcalendar.Service
	targets    target.Repository
	eventBus   *event_bus.EventBus
}

func NewSyncService(
	source SnapshotSource,
	entries timeentry.Service,
	activities activity.Service,
	calendar workcalendar.Service,
	targets target.Repository,
	eventBus *event_bus.EventBus,
) *SyncServiceImpl {
	return &SyncServiceImpl{
		source:     source,
		entries:    entries,
		activities: activities,
		calendar:   calendar,
		targets:    targets,
		eventBus:   eventBus,
	}
}

func (s *SyncServiceImpl) Sync(ctx context.Context) (SyncResult, error) {
	started := time.Now()
	snapshot, err := s.source.Snapshot(ctx)
	if err != nil {
		return SyncResult{}, err
	}

	// lookup tables go first so the entry import event finds them in place
	if err := s.activities.ReplaceAll(ctx, snapshot.Activities, syncSource); err != nil {
		return SyncResult{}, err
	}
	if err := s.calendar.ReplaceAll(ctx, snapshot.Calendar, syncSource); err != nil {
		return SyncResult{}, err
	}
	if err := s.entries.ReplaceRoster(ctx, snapshot.Names); err != nil {
		return SyncResult{}, err
	}
	if err := s.targets.ReplaceAll(ctx, snapshot.Targets); err != nil {
		return SyncResult{}, err
	}
	s.publish(ctx, event_bus.InputsChanged{Table: "target", Source: syncSource, Rows: len(snapshot.Targets)})

	imported, err := s.entries.ReplaceAll(ctx, snapshot.Entries, syncSource)
	if err != nil {
		return SyncResult{}, err
	}

	result := SyncResult{
		Batch:        imported.Batch,
		Entries:      imported.Entries,
		Activities:   len(snapshot.Activities),
		CalendarDays: len(snapshot.Calendar),
		People:       len(snapshot.Names),
		Targets:      len(snapshot.Targets),
		Duration:     time.Since(started),
	}
	log.Infof("Synced %d entries, %d activities, %d calendar days, %d people and %d targets in %s",
		result.Entries, result.Activities, result.CalendarDays, result.People, result.Targets, result.Duration)
	return result, nil
}

func (s *SyncServiceImpl) publish(ctx context.Context, change event_bus.InputsChanged) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.InputsChangedType, change)); err != nil {
		log.Warnf("failed to publish %s change: %v", change.Table, err)
	}
}
