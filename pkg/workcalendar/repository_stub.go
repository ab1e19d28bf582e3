package workcalendar

import "context"

type RepositoryStub struct {
	days []Day
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{}
}

func (s *RepositoryStub) List(ctx context.Context) ([]Day, error) {
	return New(s.days).Days(), nil
}

func (s *RepositoryStub) ReplaceAll(ctx context.Context, days []Day) error {
	s.days = append([]Day(nil), days...)
	return nil
}

func (s *RepositoryStub) Cleanup() {
	s.days = nil
}
