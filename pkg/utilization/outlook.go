package utilization

import "math"

type Status string

const (
	OnTrack  Status = "on_track"
	Behind   Status = "behind"
	NoTarget Status = "no_target"
)

// Outlook compares the projected year-end utilization with a target, both in percent.
type Outlook struct {
	Predicted float64
	Target    float64
	Status    Status
	// Shortfall is the rounded number of percentage points missing when Behind.
	Shortfall float64
}

func Assess(report Report, targetPercent float64) Outlook {
	predicted := report.YearEndUtilization() * 100
	outlook := Outlook{Predicted: predicted, Target: targetPercent}
	switch {
	case targetPercent <= 0:
		outlook.Status = NoTarget
	case predicted < targetPercent:
		outlook.Status = Behind
		outlook.Shortfall = math.Round(targetPercent - predicted)
	default:
		outlook.Status = OnTrack
	}
	return outlook
}

func (o Outlook) Message() string {
	switch o.Status {
	case OnTrack:
		return "You're on track to meet your utilization!"
	case Behind:
		return "You're on track to miss your target by " + formatPercent(o.Shortfall)
	default:
		return ""
	}
}
