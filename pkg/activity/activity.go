package activity

import (
	"errors"
	"fmt"
	"strings"
)

// Classification is the labor category an activity counts towards.
type Classification string

const (
	Billable Classification = "Billable"
	RAndD    Classification = "R&D"
	Other    Classification = "Other"
	TimeOff  Classification = "Time Off"
)

var ErrUnknownClassification = errors.New("unknown classification")

// Classifications lists every classification in report column order.
var Classifications = []Classification{Billable, RAndD, Other, TimeOff}

func ParseClassification(s string) (Classification, error) {
	trimmed := strings.TrimSpace(s)
	for _, c := range Classifications {
		if strings.EqualFold(trimmed, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownClassification, s)
}

// Activity maps one activity name to its classification.
type Activity struct {
	Name           string
	Classification Classification
}

// Lookup resolves activity names to classifications. Activities missing from the lookup are
// billable.
type Lookup map[string]Classification

func NewLookup(activities []Activity) Lookup {
	lookup := make(Lookup, len(activities))
	for _, a := range activities {
		lookup[strings.TrimSpace(a.Name)] = a.Classification
	}
	return lookup
}

func (l Lookup) Classify(activityName string) Classification {
	if c, ok := l[strings.TrimSpace(activityName)]; ok {
		return c
	}
	return Billable
}

func (l Lookup) Clone() Lookup {
	clone := make(Lookup, len(l))
	for name, c := range l {
		clone[name] = c
	}
	return clone
}
