package utils

import "time"

// Clock is the source of "now" for anything that caps data at the present date.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (s SystemClock) Now() time.Time {
	return time.Now()
}

type MockClock struct {
	FixedNow time.Time
}

func (m *MockClock) Now() time.Time {
	return m.FixedNow
}

func (m *MockClock) SetNow(now time.Time) {
	m.FixedNow = now
}

// Today returns midnight of the clock's current day, in UTC, matching how dates are stored.
func Today(c Clock) time.Time {
	year, month, day := c.Now().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
