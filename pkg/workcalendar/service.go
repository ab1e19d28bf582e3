package workcalendar

import (
	"context"

	"github.com/klokku/utilization/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	Calendar(ctx context.Context) (Calendar, error)
	ReplaceAll(ctx context.Context, days []Day, source string) error
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
}

func NewService(repo Repository, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus}
}

func (s *ServiceImpl) Calendar(ctx context.Context) (Calendar, error) {
	days, err := s.repo.List(ctx)
	if err != nil {
		return Calendar{}, err
	}
	return New(days), nil
}

func (s *ServiceImpl) ReplaceAll(ctx context.Context, days []Day, source string) error {
	if err := s.repo.ReplaceAll(ctx, days); err != nil {
		return err
	}
	if s.eventBus == nil {
		return nil
	}
	err := s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.InputsChangedType, event_bus.InputsChanged{
		Table:  "calendar_day",
		Source: source,
		Rows:   len(days),
	}))
	if err != nil {
		log.Warnf("failed to publish calendar change: %v", err)
	}
	return nil
}
