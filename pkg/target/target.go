package target

import (
	"errors"

	"github.com/klokku/utilization/pkg/fiscal"
)

var ErrPlanNotFound = errors.New("utilization plan not found")

// Plan is the planned utilization ratio (0.8 = 80%) per fiscal month for one person.
type Plan struct {
	UserName string
	Months   map[fiscal.Month]float64
}

// Series returns the plan in fiscal order; months without a plan are 0.
func (p Plan) Series() []float64 {
	series := make([]float64, fiscal.MonthsInYear)
	for i, m := range fiscal.Months() {
		series[i] = p.Months[m]
	}
	return series
}
