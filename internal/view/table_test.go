package view_test

import (
	"testing"
	"time"

	"github.com/kiranshivaraju/latencybench/internal/aggregate"
	"github.com/kiranshivaraju/latencybench/internal/view"
	"github.com/kiranshivaraju/latencybench/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func observation(fnID, dbID int, q models.QueryType, ms int64) models.Observation {
	return models.Observation{
		FunctionID: fnID,
		DatabaseID: dbID,
		QueryType:  q,
		LatencyMs:  decimal.NewFromInt(ms),
		Timestamp:  time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestBuildTable(t *testing.T) {
	databases := []models.DatabaseTarget{
		db(1, "us-east-1", models.ConnectionHTTP),
		db(2, "us-east-1", models.ConnectionHTTP),
		db(3, "eu-west-1", models.ConnectionHTTP),
		db(4, "us-east-1", models.ConnectionWebSocket),
	}
	functions := []models.FunctionRegion{fn(10, "us-east-1"), fn(11, "ap-south-1"), fn(12, "eu-west-1")}
	c := view.NewCatalog(databases)
	latency := aggregate.AverageByFunctionDatabase([]models.Observation{
		observation(10, 1, models.QueryHot, 10),
		observation(10, 2, models.QueryHot, 30),
		observation(10, 3, models.QueryHot, 300),
		observation(10, 1, models.QueryCold, 600),
		observation(12, 3, models.QueryHot, 5),
	}, functions, databases)

	s := view.Default(c)
	table := view.BuildTable(s, c, functions, latency, 30)

	assert.Equal(t, "Hot Query Latency", table.Title)
	assert.Equal(t, "Comparing hot query latency across 4 databases using HTTP connections and 3 serverless functions", table.Description)
	assert.Equal(t, []models.QueryType{models.QueryHot}, table.QueryTypes)

	// eu-west-1 sorts before us-east-1; ws database 4 is filtered out.
	require.Len(t, table.Columns, 2)
	assert.Equal(t, "eu-west-1", table.Columns[0].RegionCode)
	assert.Equal(t, []int{1, 2}, table.Columns[1].DatabaseIDs())

	// ap-south-1 function dropped under the matching filter.
	require.Len(t, table.Rows, 2)
	assert.Equal(t, 12, table.Rows[0].Function.ID)
	assert.Equal(t, 10, table.Rows[1].Function.ID)

	euRow := table.Rows[0]
	assert.True(t, euRow.Cells[0].SameRegion)
	assert.Equal(t, 5.0, euRow.Cells[0].Values[0].Latency.Value)
	assert.False(t, euRow.Cells[1].Values[0].Latency.Valid())
	assert.Equal(t, aggregate.GradeNone, euRow.Cells[1].Values[0].Grade)

	usRow := table.Rows[1]
	assert.False(t, usRow.Cells[0].SameRegion)
	assert.Equal(t, 300.0, usRow.Cells[0].Values[0].Latency.Value)
	assert.Equal(t, aggregate.GradeSlow, usRow.Cells[0].Values[0].Grade)
	assert.True(t, usRow.Cells[1].SameRegion)
	assert.Equal(t, 20.0, usRow.Cells[1].Values[0].Latency.Value)
	assert.Equal(t, aggregate.GradeFast, usRow.Cells[1].Values[0].Grade)
}

func TestBuildTable_BothQueryTypesAllRegions(t *testing.T) {
	databases := []models.DatabaseTarget{db(1, "us-east-1", models.ConnectionHTTP)}
	functions := []models.FunctionRegion{fn(10, "us-east-1"), fn(11, "ap-south-1")}
	c := view.NewCatalog(databases)
	latency := aggregate.AverageByFunctionDatabase([]models.Observation{
		observation(11, 1, models.QueryCold, 1200),
	}, functions, databases)

	s := view.Default(c).SetQueryFilter(view.QueryFilterBoth).SetRegionFilter(view.RegionFilterAll)
	table := view.BuildTable(s, c, functions, latency, 30)

	assert.Equal(t, "30-Day Latency Averages", table.Title)
	require.Len(t, table.Rows, 2)
	cell := table.Rows[1].Cells[0]
	require.Len(t, cell.Values, 2)
	assert.Equal(t, models.QueryCold, cell.Values[0].QueryType)
	assert.Equal(t, aggregate.GradeCritical, cell.Values[0].Grade)
	assert.False(t, cell.Values[1].Latency.Valid())
}

func TestBuildTable_EmptySelection(t *testing.T) {
	databases := []models.DatabaseTarget{db(1, "us-east-1", models.ConnectionHTTP)}
	c := view.NewCatalog(databases)
	s := view.Default(c).ToggleDatabase(1, c).SetConnectionFilter(view.ConnectionFilterAll, c)

	table := view.BuildTable(s, c, []models.FunctionRegion{fn(10, "us-east-1")}, aggregate.AggregatedLatency{}, 30)

	assert.Empty(t, table.Columns)
	assert.NotNil(t, table.Columns)
	assert.Empty(t, table.Rows)
	assert.Equal(t, "Comparing hot query latency across 0 databases and 1 serverless functions", table.Description)
}
