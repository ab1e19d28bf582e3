package target

import (
	"context"
	"maps"
)

type RepositoryStub struct {
	plans map[string]Plan
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{plans: map[string]Plan{}}
}

func (s *RepositoryStub) Get(ctx context.Context, userName string) (Plan, error) {
	plan, ok := s.plans[userName]
	if !ok {
		return Plan{}, ErrPlanNotFound
	}
	return Plan{UserName: plan.UserName, Months: maps.Clone(plan.Months)}, nil
}

func (s *RepositoryStub) ReplaceAll(ctx context.Context, plans []Plan) error {
	s.Cleanup()
	for _, p := range plans {
		s.plans[p.UserName] = Plan{UserName: p.UserName, Months: maps.Clone(p.Months)}
	}
	return nil
}

func (s *RepositoryStub) Cleanup() {
	s.plans = map[string]Plan{}
}
