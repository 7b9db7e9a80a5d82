package aggregate

import "github.com/kiranshivaraju/latencybench/pkg/models"

// Grade buckets a latency for display.
type Grade string

const (
	GradeNone     Grade = "none"
	GradeFast     Grade = "fast"
	GradeModerate Grade = "moderate"
	GradeSlow     Grade = "slow"
	GradeCritical Grade = "critical"
)

// thresholds are the exclusive lower bounds, in ms, of moderate, slow and
// critical.
var thresholds = map[models.QueryType][3]float64{
	models.QueryCold: {200, 500, 1000},
	models.QueryHot:  {100, 250, 500},
}

// GradeOf classifies m for the given query type. Means without data grade
// as GradeNone.
func GradeOf(m Mean, q models.QueryType) Grade {
	if !m.Valid() {
		return GradeNone
	}
	t := thresholds[q]
	switch {
	case m.Value > t[2]:
		return GradeCritical
	case m.Value > t[1]:
		return GradeSlow
	case m.Value > t[0]:
		return GradeModerate
	}
	return GradeFast
}
