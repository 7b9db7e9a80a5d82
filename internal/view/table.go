package view

import (
	"fmt"

	"github.com/kiranshivaraju/latencybench/internal/aggregate"
	"github.com/kiranshivaraju/latencybench/pkg/models"
)

// Table is the latency matrix shown for a State: function rows by region
// group columns.
type Table struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	QueryTypes  []models.QueryType `json:"query_types"`
	Columns     []RegionGroup      `json:"columns"`
	Rows        []Row              `json:"rows"`
}

// Row is one function's latencies against every column.
type Row struct {
	Function models.FunctionRegion `json:"function"`
	Cells    []Cell                `json:"cells"`
}

// Cell is the intersection of a function and a region group.
type Cell struct {
	SameRegion bool        `json:"same_region"`
	Values     []CellValue `json:"values"`
}

// CellValue is the group-level latency for one query type.
type CellValue struct {
	QueryType models.QueryType `json:"query_type"`
	Latency   aggregate.Mean   `json:"latency_ms"`
	Grade     aggregate.Grade  `json:"grade"`
}

var connectionLabels = map[ConnectionFilter]string{
	ConnectionFilterHTTP:      "HTTP",
	ConnectionFilterWebSocket: "WebSocket",
	ConnectionFilterTCP:       "TCP",
}

// BuildTable projects aggregated latency through the view state.
func BuildTable(s State, c *Catalog, functions []models.FunctionRegion, latency aggregate.AggregatedLatency, windowDays int) Table {
	displayed := c.Displayed(s)
	groups := GroupDatabases(displayed)
	rows := FilterFunctions(s.Regions, SortFunctions(functions), displayed)
	queryTypes := s.Queries.QueryTypes()

	t := Table{
		Title:       title(s.Queries, windowDays),
		Description: description(s, len(functions)),
		QueryTypes:  queryTypes,
		Columns:     groups,
		Rows:        make([]Row, 0, len(rows)),
	}
	if t.Columns == nil {
		t.Columns = []RegionGroup{}
	}

	for _, fn := range rows {
		row := Row{Function: fn, Cells: make([]Cell, 0, len(groups))}
		for _, g := range groups {
			cell := Cell{
				SameRegion: SameRegion(g.RegionCode, fn.RegionCode),
				Values:     make([]CellValue, 0, len(queryTypes)),
			}
			for _, q := range queryTypes {
				m := groupLatency(latency, q, fn.ID, g)
				cell.Values = append(cell.Values, CellValue{QueryType: q, Latency: m, Grade: aggregate.GradeOf(m, q)})
			}
			row.Cells = append(row.Cells, cell)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// groupLatency averages the function's means over the group's databases,
// ignoring databases without data.
func groupLatency(latency aggregate.AggregatedLatency, q models.QueryType, functionID int, g RegionGroup) aggregate.Mean {
	means := make([]aggregate.Mean, 0, len(g.Databases))
	for _, db := range g.Databases {
		if m, ok := latency.Get(q, functionID, db.ID); ok {
			means = append(means, m)
		}
	}
	return aggregate.MeanOf(means...)
}

func title(f QueryFilter, windowDays int) string {
	switch f {
	case QueryFilterHot:
		return "Hot Query Latency"
	case QueryFilterCold:
		return "Cold Query Latency"
	}
	return fmt.Sprintf("%d-Day Latency Averages", windowDays)
}

func description(s State, functionCount int) string {
	var kind string
	switch s.Queries {
	case QueryFilterHot:
		kind = "hot"
	case QueryFilterCold:
		kind = "cold"
	default:
		kind = "cold and hot"
	}
	dbs := "databases"
	if label, ok := connectionLabels[s.Connection]; ok {
		dbs = fmt.Sprintf("databases using %s connections", label)
	}
	return fmt.Sprintf("Comparing %s query latency across %d %s and %d serverless functions",
		kind, len(s.Selected), dbs, functionCount)
}
