package aggregate

import (
	"encoding/json"
	"strconv"

	"github.com/kiranshivaraju/latencybench/pkg/models"
)

// Pair identifies a (function, database) combination.
type Pair struct {
	FunctionID int
	DatabaseID int
}

// AggregatedLatency holds the per-pair mean latency for each query type.
type AggregatedLatency struct {
	Cold map[Pair]Mean
	Hot  map[Pair]Mean
}

// For returns the means for the given query type.
func (a AggregatedLatency) For(q models.QueryType) map[Pair]Mean {
	if q == models.QueryCold {
		return a.Cold
	}
	return a.Hot
}

// Get returns the mean for (q, functionID, databaseID). The boolean reports
// whether the pair is known at all, seeded or observed.
func (a AggregatedLatency) Get(q models.QueryType, functionID, databaseID int) (Mean, bool) {
	m, ok := a.For(q)[Pair{FunctionID: functionID, DatabaseID: databaseID}]
	return m, ok
}

// Nested converts the composite keys to {functionID: {databaseID: mean}}.
func (a AggregatedLatency) Nested(q models.QueryType) map[int]map[int]Mean {
	out := make(map[int]map[int]Mean)
	for p, m := range a.For(q) {
		inner, ok := out[p.FunctionID]
		if !ok {
			inner = make(map[int]Mean)
			out[p.FunctionID] = inner
		}
		inner[p.DatabaseID] = m
	}
	return out
}

// MarshalJSON renders {"cold": {fn: {db: avg}}, "hot": {...}} with null for
// pairs that have no observations.
func (a AggregatedLatency) MarshalJSON() ([]byte, error) {
	out := make(map[string]map[string]map[string]Mean, 2)
	for _, q := range models.QueryTypes {
		byFn := make(map[string]map[string]Mean)
		for fn, dbs := range a.Nested(q) {
			inner := make(map[string]Mean, len(dbs))
			for db, m := range dbs {
				inner[strconv.Itoa(db)] = m
			}
			byFn[strconv.Itoa(fn)] = inner
		}
		out[string(q)] = byFn
	}
	return json.Marshal(out)
}

// AverageByFunctionDatabase averages observations per (function, database,
// query type). Every pair from the reference lists is present in the result;
// pairs without observations carry the zero Mean. Observations referring to
// ids outside the reference lists are still averaged.
func AverageByFunctionDatabase(observations []models.Observation, functions []models.FunctionRegion, databases []models.DatabaseTarget) AggregatedLatency {
	result := AggregatedLatency{
		Cold: make(map[Pair]Mean, len(functions)*len(databases)),
		Hot:  make(map[Pair]Mean, len(functions)*len(databases)),
	}
	for _, fn := range functions {
		for _, db := range databases {
			p := Pair{FunctionID: fn.ID, DatabaseID: db.ID}
			result.Cold[p] = Mean{}
			result.Hot[p] = Mean{}
		}
	}

	type key struct {
		pair  Pair
		query models.QueryType
	}
	groups := make(map[key]*accumulator)
	for _, o := range observations {
		if !o.QueryType.Valid() {
			continue
		}
		k := key{pair: Pair{FunctionID: o.FunctionID, DatabaseID: o.DatabaseID}, query: o.QueryType}
		acc, ok := groups[k]
		if !ok {
			acc = &accumulator{}
			groups[k] = acc
		}
		acc.add(o.LatencyMs)
	}

	for k, acc := range groups {
		result.For(k.query)[k.pair] = acc.mean()
	}
	return result
}
