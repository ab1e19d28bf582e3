package timeentry

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEntry_Validate(t *testing.T) {
	valid := Entry{
		UserName:     "Jane Doe",
		EntryDate:    time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC),
		ActivityName: "Project X",
		HoursWorked:  7.5,
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		modify func(e *Entry)
	}{
		{"empty user", func(e *Entry) { e.UserName = "" }},
		{"zero date", func(e *Entry) { e.EntryDate = time.Time{} }},
		{"empty activity", func(e *Entry) { e.ActivityName = "" }},
		{"negative hours", func(e *Entry) { e.HoursWorked = -1 }},
		{"NaN hours", func(e *Entry) { e.HoursWorked = math.NaN() }},
		{"infinite hours", func(e *Entry) { e.HoursWorked = math.Inf(1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := valid
			tt.modify(&entry)
			assert.ErrorIs(t, entry.Validate(), ErrMalformedEntry)
		})
	}
}
