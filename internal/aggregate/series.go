package aggregate

import (
	"sort"
	"time"

	"github.com/kiranshivaraju/latencybench/pkg/models"
)

// DateLayout is the calendar-date format used for series points.
const DateLayout = "2006-01-02"

// DailyPoint is the mean cold and hot latency for one calendar date.
type DailyPoint struct {
	Date string `json:"date"`
	Cold Mean   `json:"cold_latency_avg"`
	Hot  Mean   `json:"hot_latency_avg"`
}

// FunctionDailyPoint breaks a date down by the function that issued the
// queries.
type FunctionDailyPoint struct {
	Date      string             `json:"date"`
	Functions map[int]QueryMeans `json:"functions"`
}

// QueryMeans pairs a cold and a hot mean.
type QueryMeans struct {
	Cold Mean `json:"cold"`
	Hot  Mean `json:"hot"`
}

// WindowStart returns the inclusive lower bound of a trailing window.
func WindowStart(now time.Time, windowDays int) time.Time {
	return now.AddDate(0, 0, -windowDays)
}

// Window keeps observations with a timestamp at or after now - windowDays.
func Window(observations []models.Observation, windowDays int, now time.Time) []models.Observation {
	start := WindowStart(now, windowDays)
	out := make([]models.Observation, 0, len(observations))
	for _, o := range observations {
		if !o.Timestamp.Before(start) {
			out = append(out, o)
		}
	}
	return out
}

func dateOf(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

type dayBucket struct {
	cold accumulator
	hot  accumulator
}

func (b *dayBucket) add(o models.Observation) {
	switch o.QueryType {
	case models.QueryCold:
		b.cold.add(o.LatencyMs)
	case models.QueryHot:
		b.hot.add(o.LatencyMs)
	}
}

// DailySeries returns one point per UTC calendar date on which databaseID has
// observations inside the trailing window, ascending by date. A date without
// observations of one query type carries an empty Mean for it.
func DailySeries(observations []models.Observation, databaseID, windowDays int, now time.Time) []DailyPoint {
	buckets := make(map[string]*dayBucket)
	for _, o := range Window(observations, windowDays, now) {
		if o.DatabaseID != databaseID {
			continue
		}
		d := dateOf(o.Timestamp)
		b, ok := buckets[d]
		if !ok {
			b = &dayBucket{}
			buckets[d] = b
		}
		b.add(o)
	}

	points := make([]DailyPoint, 0, len(buckets))
	for d, b := range buckets {
		points = append(points, DailyPoint{Date: d, Cold: b.cold.mean(), Hot: b.hot.mean()})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}

// DailySeriesByDatabase computes DailySeries for every reference database.
// Databases without observations map to an empty, non-nil slice.
func DailySeriesByDatabase(observations []models.Observation, databases []models.DatabaseTarget, windowDays int, now time.Time) map[int][]DailyPoint {
	windowed := Window(observations, windowDays, now)
	out := make(map[int][]DailyPoint, len(databases))
	for _, db := range databases {
		out[db.ID] = DailySeries(windowed, db.ID, windowDays, now)
	}
	return out
}

// FunctionDailySeries groups one database's windowed observations by date and
// function. Every function in the reference list appears on every date.
func FunctionDailySeries(observations []models.Observation, functions []models.FunctionRegion, databaseID, windowDays int, now time.Time) []FunctionDailyPoint {
	byDate := make(map[string]map[int]*dayBucket)
	for _, o := range Window(observations, windowDays, now) {
		if o.DatabaseID != databaseID {
			continue
		}
		d := dateOf(o.Timestamp)
		fns, ok := byDate[d]
		if !ok {
			fns = make(map[int]*dayBucket)
			byDate[d] = fns
		}
		b, ok := fns[o.FunctionID]
		if !ok {
			b = &dayBucket{}
			fns[o.FunctionID] = b
		}
		b.add(o)
	}

	points := make([]FunctionDailyPoint, 0, len(byDate))
	for d, fns := range byDate {
		p := FunctionDailyPoint{Date: d, Functions: make(map[int]QueryMeans, len(functions))}
		for _, fn := range functions {
			p.Functions[fn.ID] = QueryMeans{}
		}
		for id, b := range fns {
			p.Functions[id] = QueryMeans{Cold: b.cold.mean(), Hot: b.hot.mean()}
		}
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}
