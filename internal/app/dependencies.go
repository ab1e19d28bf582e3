package app

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/utilization/internal/config"
	"github.com/klokku/utilization/internal/event_bus"
	"github.com/klokku/utilization/internal/utils"
	"github.com/klokku/utilization/pkg/activity"
	"github.com/klokku/utilization/pkg/sheets"
	"github.com/klokku/utilization/pkg/target"
	"github.com/klokku/utilization/pkg/timeentry"
	"github.com/klokku/utilization/pkg/utilization"
	"github.com/klokku/utilization/pkg/workcalendar"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus

	ActivityRepo    *activity.RepositoryImpl
	ActivityService *activity.ServiceImpl
	ActivityHandler *activity.Handler

	CalendarRepo    *workcalendar.RepositoryImpl
	CalendarService *workcalendar.ServiceImpl
	CalendarHandler *workcalendar.Handler

	TimeEntryRepo    *timeentry.RepositoryImpl
	TimeEntryService *timeentry.ServiceImpl
	TimeEntryHandler *timeentry.Handler

	TargetRepo    *target.RepositoryImpl
	TargetHandler *target.Handler

	UtilizationService  *utilization.ServiceImpl
	CsvRenderer         *utilization.CsvRendererImpl
	UtilizationHandler  *utilization.Handler
	UtilizationDefaults utilization.Params

	// SyncService and SyncHandler are nil when no spreadsheet is configured.
	SyncService *sheets.SyncServiceImpl
	SyncHandler *sheets.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(ctx context.Context, db *pgxpool.Pool, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.ActivityRepo = activity.NewRepository(db)
	deps.ActivityService = activity.NewService(deps.ActivityRepo, deps.EventBus)
	deps.ActivityHandler = activity.NewHandler(deps.ActivityService)

	deps.CalendarRepo = workcalendar.NewRepository(db)
	deps.CalendarService = workcalendar.NewService(deps.CalendarRepo, deps.EventBus)
	deps.CalendarHandler = workcalendar.NewHandler(deps.CalendarService)

	deps.TimeEntryRepo = timeentry.NewRepository(db)
	deps.TimeEntryService = timeentry.NewService(deps.TimeEntryRepo, deps.EventBus)
	deps.TimeEntryHandler = timeentry.NewHandler(deps.TimeEntryService)

	deps.TargetRepo = target.NewRepository(db)
	deps.TargetHandler = target.NewHandler(deps.TargetRepo)

	deps.UtilizationDefaults = reportDefaults(cfg.Report)
	deps.UtilizationService = utilization.NewService(
		deps.TimeEntryService,
		deps.ActivityService,
		deps.CalendarService,
		deps.TargetRepo,
		deps.Clock,
		deps.EventBus,
	)
	deps.CsvRenderer = utilization.NewCsvRenderer()
	deps.UtilizationHandler = utilization.NewHandler(deps.UtilizationService, deps.CsvRenderer, deps.UtilizationDefaults)

	if cfg.SheetsEnabled() {
		reader, err := sheets.NewApiReader(ctx, cfg.Google)
		if err != nil {
			log.Warnf("Google Sheets sync disabled: %v", err)
		} else {
			deps.SyncService = sheets.NewSyncService(
				sheets.NewSource(reader, cfg.Google),
				deps.TimeEntryService,
				deps.ActivityService,
				deps.CalendarService,
				deps.TargetRepo,
				deps.EventBus,
			)
			deps.SyncHandler = sheets.NewHandler(deps.SyncService)
		}
	} else {
		log.Info("Google Sheets sync not configured")
	}

	return deps
}

func reportDefaults(cfg config.Report) utilization.Params {
	method, err := utilization.ParseMethod(cfg.DefaultMethod)
	if err != nil {
		log.Warnf("Invalid report.defaultmethod %q, using %s", cfg.DefaultMethod, utilization.YearToDate)
		method = utilization.YearToDate
	}
	return utilization.Params{Method: method, BySemester: cfg.BySemester}
}
