package dashboard

import (
	"errors"
	"time"

	"github.com/kiranshivaraju/latencybench/internal/aggregate"
	"github.com/kiranshivaraju/latencybench/internal/view"
	"github.com/kiranshivaraju/latencybench/pkg/models"
)

// ErrUnknownDatabase is returned for a database id absent from the snapshot.
var ErrUnknownDatabase = errors.New("unknown database")

// Data is the raw material of a snapshot, as cached.
type Data struct {
	Functions    []models.FunctionRegion `json:"functions"`
	Databases    []models.DatabaseTarget `json:"databases"`
	Observations []models.Observation    `json:"observations"`
	LoadedAt     time.Time               `json:"loaded_at"`
}

// Snapshot is an immutable view of the benchmark data at LoadedAt with the
// window averages precomputed. History is computed per call.
type Snapshot struct {
	data       Data
	windowDays int
	catalog    *view.Catalog
	latency    aggregate.AggregatedLatency
}

// NewSnapshot trims d to the trailing window and precomputes the averages.
func NewSnapshot(d Data, windowDays int) *Snapshot {
	windowed := aggregate.Window(d.Observations, windowDays, d.LoadedAt)
	d.Observations = windowed
	return &Snapshot{
		data:       d,
		windowDays: windowDays,
		catalog:    view.NewCatalog(d.Databases),
		latency:    aggregate.AverageByFunctionDatabase(windowed, d.Functions, d.Databases),
	}
}

func (s *Snapshot) Functions() []models.FunctionRegion { return s.data.Functions }
func (s *Snapshot) Databases() []models.DatabaseTarget { return s.data.Databases }
func (s *Snapshot) LoadedAt() time.Time                { return s.data.LoadedAt }
func (s *Snapshot) WindowDays() int                    { return s.windowDays }
func (s *Snapshot) Catalog() *view.Catalog             { return s.catalog }

// Latency returns the per (function, database) window averages.
func (s *Snapshot) Latency() aggregate.AggregatedLatency {
	return s.latency
}

// History returns the daily series of one database over the last days days.
// Values outside 1..WindowDays are clamped to the window.
func (s *Snapshot) History(databaseID, days int) ([]aggregate.DailyPoint, error) {
	if _, ok := s.catalog.Lookup(databaseID); !ok {
		return nil, ErrUnknownDatabase
	}
	return aggregate.DailySeries(s.data.Observations, databaseID, s.clampDays(days), s.data.LoadedAt), nil
}

// HistoryByDatabase returns the full-window daily series of every database
// in the snapshot, keyed by database id.
func (s *Snapshot) HistoryByDatabase() map[int][]aggregate.DailyPoint {
	return aggregate.DailySeriesByDatabase(s.data.Observations, s.data.Databases, s.windowDays, s.data.LoadedAt)
}

// FunctionHistory is History broken down by issuing function.
func (s *Snapshot) FunctionHistory(databaseID, days int) ([]aggregate.FunctionDailyPoint, error) {
	if _, ok := s.catalog.Lookup(databaseID); !ok {
		return nil, ErrUnknownDatabase
	}
	return aggregate.FunctionDailySeries(s.data.Observations, s.data.Functions, databaseID, s.clampDays(days), s.data.LoadedAt), nil
}

// Table projects the averages through a view state.
func (s *Snapshot) Table(st view.State) view.Table {
	return view.BuildTable(st, s.catalog, s.data.Functions, s.latency, s.windowDays)
}

func (s *Snapshot) clampDays(days int) int {
	if days < 1 || days > s.windowDays {
		return s.windowDays
	}
	return days
}
