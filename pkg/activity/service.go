package activity

import (
	"context"
	"fmt"
	"strings"

	"github.com/klokku/utilization/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	List(ctx context.Context) ([]Activity, error)
	Lookup(ctx context.Context) (Lookup, error)
	Classify(ctx context.Context, name string, classification Classification) (Activity, error)
	ReplaceAll(ctx context.Context, activities []Activity, source string) error
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
}

func NewService(repo Repository, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus}
}

func (s *ServiceImpl) List(ctx context.Context) ([]Activity, error) {
	return s.repo.List(ctx)
}

func (s *ServiceImpl) Lookup(ctx context.Context) (Lookup, error) {
	activities, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return NewLookup(activities), nil
}

func (s *ServiceImpl) Classify(ctx context.Context, name string, classification Classification) (Activity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Activity{}, fmt.Errorf("activity name must not be empty")
	}
	a := Activity{Name: name, Classification: classification}
	if err := s.repo.Upsert(ctx, a); err != nil {
		return Activity{}, err
	}
	log.Debugf("Activity %q classified as %s", name, classification)
	s.publish(ctx, event_bus.InputsChanged{Table: "activity", Source: "api", Rows: 1})
	return a, nil
}

func (s *ServiceImpl) ReplaceAll(ctx context.Context, activities []Activity, source string) error {
	if err := s.repo.ReplaceAll(ctx, activities); err != nil {
		return err
	}
	s.publish(ctx, event_bus.InputsChanged{Table: "activity", Source: source, Rows: len(activities)})
	return nil
}

func (s *ServiceImpl) publish(ctx context.Context, changed event_bus.InputsChanged) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.InputsChangedType, changed)); err != nil {
		log.Warnf("failed to publish activity change: %v", err)
	}
}
