package activity

import (
	"context"
	"sort"
)

type RepositoryStub struct {
	activities map[string]Activity
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{activities: map[string]Activity{}}
}

func (s *RepositoryStub) List(ctx context.Context) ([]Activity, error) {
	activities := make([]Activity, 0, len(s.activities))
	for _, a := range s.activities {
		activities = append(activities, a)
	}
	sort.Slice(activities, func(i, j int) bool {
		return activities[i].Name < activities[j].Name
	})
	return activities, nil
}

func (s *RepositoryStub) Upsert(ctx context.Context, activity Activity) error {
	s.activities[activity.Name] = activity
	return nil
}

func (s *RepositoryStub) ReplaceAll(ctx context.Context, activities []Activity) error {
	s.Cleanup()
	for _, a := range activities {
		s.activities[a.Name] = a
	}
	return nil
}

func (s *RepositoryStub) Cleanup() {
	s.activities = map[string]Activity{}
}
