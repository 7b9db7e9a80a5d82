// Package aggregate reshapes flat latency observations into the averages and
// daily series shown on the dashboard. All functions are pure and total.
package aggregate

import (
	"encoding/json"
	"math"

	"github.com/shopspring/decimal"
)

// Mean is an arithmetic mean together with the number of samples behind it.
// A Mean with Count == 0 means "no data" and is never a measured zero.
type Mean struct {
	Value float64
	Count int
}

// Valid reports whether the mean is backed by at least one sample.
func (m Mean) Valid() bool {
	return m.Count > 0
}

// Rounded returns the value rounded to two decimals, the precision of the
// source column.
func (m Mean) Rounded() float64 {
	return math.Round(m.Value*100) / 100
}

// MarshalJSON encodes a Mean as a number, or null when it has no samples.
func (m Mean) MarshalJSON() ([]byte, error) {
	if !m.Valid() {
		return []byte("null"), nil
	}
	return json.Marshal(m.Rounded())
}

// accumulator sums in decimal and converts to float64 only when dividing.
type accumulator struct {
	sum decimal.Decimal
	n   int
}

func (a *accumulator) add(v decimal.Decimal) {
	a.sum = a.sum.Add(v)
	a.n++
}

func (a *accumulator) mean() Mean {
	if a == nil || a.n == 0 {
		return Mean{}
	}
	return Mean{Value: a.sum.InexactFloat64() / float64(a.n), Count: a.n}
}

// MeanOf averages already-aggregated means, skipping those without data.
// It is used to collapse several databases of one region group into a
// single cell.
func MeanOf(means ...Mean) Mean {
	var sum float64
	var n int
	for _, m := range means {
		if !m.Valid() {
			continue
		}
		sum += m.Value
		n++
	}
	if n == 0 {
		return Mean{}
	}
	return Mean{Value: sum / float64(n), Count: n}
}
