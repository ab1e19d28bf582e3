package timeentry

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/klokku/utilization/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

type ImportResult struct {
	Batch   string
	Entries int
	Users   int
}

type Service interface {
	// Import replaces all stored entries with the contents of a daily report CSV.
	Import(ctx context.Context, report io.Reader, source string) (ImportResult, error)
	ReplaceAll(ctx context.Context, entries []Entry, source string) (ImportResult, error)
	ReplaceRoster(ctx context.Context, userNames []string) error
	Entries(ctx context.Context) ([]Entry, error)
	People(ctx context.Context) ([]string, error)
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
}

func NewService(repo Repository, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus}
}

func (s *ServiceImpl) Import(ctx context.Context, report io.Reader, source string) (ImportResult, error) {
	entries, err := ParseReport(report)
	if err != nil {
		log.Warnf("rejected %s import: %v", source, err)
		return ImportResult{}, err
	}
	return s.ReplaceAll(ctx, entries, source)
}

func (s *ServiceImpl) ReplaceAll(ctx context.Context, entries []Entry, source string) (ImportResult, error) {
	batch := uuid.NewString()
	users := map[string]struct{}{}
	stored := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return ImportResult{}, err
		}
		e.ImportBatch = batch
		users[e.UserName] = struct{}{}
		stored = append(stored, e)
	}

	if err := s.repo.ReplaceAll(ctx, stored); err != nil {
		return ImportResult{}, err
	}
	result := ImportResult{Batch: batch, Entries: len(stored), Users: len(users)}
	log.Infof("Imported %d time entries for %d people from %s (batch %s)", result.Entries, result.Users, source, batch)

	if s.eventBus != nil {
		err := s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.InputsChangedType, event_bus.InputsChanged{
			Table:  "time_entry",
			Source: source,
			Batch:  batch,
			Rows:   result.Entries,
		}))
		if err != nil {
			log.Warnf("failed to publish time entry import: %v", err)
		}
	}
	return result, nil
}

func (s *ServiceImpl) ReplaceRoster(ctx context.Context, userNames []string) error {
	return s.repo.ReplaceRoster(ctx, userNames)
}

func (s *ServiceImpl) Entries(ctx context.Context) ([]Entry, error) {
	return s.repo.ListAll(ctx)
}

func (s *ServiceImpl) People(ctx context.Context) ([]string, error) {
	return s.repo.ListUsers(ctx)
}
