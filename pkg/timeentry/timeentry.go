package timeentry

import (
	"errors"
	"math"
	"time"

	"github.com/klokku/utilization/pkg/fiscal"
)

var ErrMalformedEntry = errors.New("malformed time entry")

// Entry is one logged work record as exported by the time tracking system.
type Entry struct {
	UserName     string
	EntryDate    time.Time
	ActivityName string
	HoursWorked  float64
	ImportBatch  string
}

func (e Entry) FiscalMonth() fiscal.Month {
	return fiscal.MonthOf(e.EntryDate)
}

// Validate checks the fields every downstream calculation depends on.
func (e Entry) Validate() error {
	switch {
	case e.UserName == "":
		return errors.Join(ErrMalformedEntry, errors.New("user name is empty"))
	case e.EntryDate.IsZero():
		return errors.Join(ErrMalformedEntry, errors.New("entry date is empty"))
	case e.ActivityName == "":
		return errors.Join(ErrMalformedEntry, errors.New("activity name is empty"))
	case math.IsNaN(e.HoursWorked) || math.IsInf(e.HoursWorked, 0):
		return errors.Join(ErrMalformedEntry, errors.New("hours worked is not a number"))
	case e.HoursWorked < 0:
		return errors.Join(ErrMalformedEntry, errors.New("hours worked is negative"))
	}
	return nil
}
