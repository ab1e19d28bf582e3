package timeentry

import (
	"context"
	"sort"
)

type RepositoryStub struct {
	entries []Entry
	roster  []string
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{}
}

func (s *RepositoryStub) ReplaceAll(ctx context.Context, entries []Entry) error {
	s.entries = append([]Entry(nil), entries...)
	return nil
}

func (s *RepositoryStub) ListAll(ctx context.Context) ([]Entry, error) {
	return append([]Entry(nil), s.entries...), nil
}

func (s *RepositoryStub) ListByUser(ctx context.Context, userName string) ([]Entry, error) {
	var entries []Entry
	for _, e := range s.entries {
		if e.UserName == userName {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (s *RepositoryStub) ListUsers(ctx context.Context) ([]string, error) {
	seen := map[string]bool{}
	users := []string{}
	for _, name := range s.roster {
		if !seen[name] {
			seen[name] = true
			users = append(users, name)
		}
	}
	for _, e := range s.entries {
		if !seen[e.UserName] {
			seen[e.UserName] = true
			users = append(users, e.UserName)
		}
	}
	sort.Strings(users)
	return users, nil
}

func (s *RepositoryStub) ReplaceRoster(ctx context.Context, userNames []string) error {
	s.roster = append([]string(nil), userNames...)
	return nil
}

func (s *RepositoryStub) Cleanup() {
	s.entries = nil
	s.roster = nil
}
