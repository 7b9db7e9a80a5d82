package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// QueryType distinguishes the first query against a scaled-to-zero database
// (cold) from a query against a running one (hot).
type QueryType string

const (
	QueryCold QueryType = "cold"
	QueryHot  QueryType = "hot"
)

// QueryTypes lists both query types in display order.
var QueryTypes = []QueryType{QueryCold, QueryHot}

// Valid reports whether q is a known query type.
func (q QueryType) Valid() bool {
	return q == QueryCold || q == QueryHot
}

// Observation is a single latency measurement from the stats table.
type Observation struct {
	FunctionID int             `db:"function_id" json:"function_id"`
	DatabaseID int             `db:"database_id" json:"database_id"`
	QueryType  QueryType       `db:"query_type"  json:"query_type"`
	LatencyMs  decimal.Decimal `db:"latency_ms"  json:"latency_ms"`
	Timestamp  time.Time       `db:"date_time"   json:"timestamp"`
}

// AvgStat is a database-side grouped average over a time window.
// AvgLatencyMs is nil when the group has no rows.
type AvgStat struct {
	FunctionID   int              `db:"function_id"    json:"function_id"`
	DatabaseID   int              `db:"database_id"    json:"database_id"`
	QueryType    QueryType        `db:"query_type"     json:"query_type"`
	AvgLatencyMs *decimal.Decimal `db:"avg_latency_ms" json:"avg_latency_ms"`
	Samples      int              `db:"samples"        json:"samples"`
}
