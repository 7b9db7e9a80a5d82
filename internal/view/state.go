// Package view holds the dashboard's filter state: which databases are
// selected, which transport, query type and region filters are active, how
// one control's change cascades into the others, and how the state is
// mirrored into URL query parameters.
package view

import (
	"sort"

	"github.com/kiranshivaraju/latencybench/pkg/models"
)

// ConnectionFilter restricts the displayed databases to one transport.
type ConnectionFilter string

const (
	ConnectionFilterHTTP                       = ConnectionFilter(models.ConnectionHTTP)
	ConnectionFilterWebSocket                  = ConnectionFilter(models.ConnectionWebSocket)
	ConnectionFilterTCP                        = ConnectionFilter(models.ConnectionTCP)
	ConnectionFilterAll       ConnectionFilter = "all"
)

// Valid reports whether f is a known connection filter.
func (f ConnectionFilter) Valid() bool {
	return f == ConnectionFilterAll || models.ConnectionMethod(f).Valid()
}

// Matches reports whether a database using method m passes the filter.
func (f ConnectionFilter) Matches(m models.ConnectionMethod) bool {
	return f == ConnectionFilterAll || models.ConnectionMethod(f) == m
}

// QueryFilter selects which query types are shown.
type QueryFilter string

const (
	QueryFilterCold QueryFilter = "cold"
	QueryFilterHot  QueryFilter = "hot"
	QueryFilterBoth QueryFilter = "both"
)

// Valid reports whether f is a known query filter.
func (f QueryFilter) Valid() bool {
	return f == QueryFilterCold || f == QueryFilterHot || f == QueryFilterBoth
}

// QueryTypes returns the query types shown under the filter, cold first.
func (f QueryFilter) QueryTypes() []models.QueryType {
	switch f {
	case QueryFilterCold:
		return []models.QueryType{models.QueryCold}
	case QueryFilterHot:
		return []models.QueryType{models.QueryHot}
	}
	return []models.QueryType{models.QueryCold, models.QueryHot}
}

// RegionFilter chooses between all function rows and only those whose region
// matches a displayed database.
type RegionFilter string

const (
	RegionFilterMatching RegionFilter = "matching"
	RegionFilterAll      RegionFilter = "all"
)

// Valid reports whether f is a known region filter.
func (f RegionFilter) Valid() bool {
	return f == RegionFilterMatching || f == RegionFilterAll
}

// Defaults applied when a URL parameter is absent or malformed.
const (
	DefaultConnection = ConnectionFilterHTTP
	DefaultQueries    = QueryFilterHot
	DefaultRegions    = RegionFilterMatching
)

// State is the complete view filter state. Selected is kept sorted and free
// of duplicates so that two equal states compare equal.
type State struct {
	Selected   []int            `json:"selected_database_ids"`
	Connection ConnectionFilter `json:"connection_filter"`
	Queries    QueryFilter      `json:"query_type_filter"`
	Regions    RegionFilter     `json:"region_filter"`
}

// Default returns the first-load state: every database selected and the
// default filters.
func Default(c *Catalog) State {
	return State{
		Selected:   c.IDs(),
		Connection: DefaultConnection,
		Queries:    DefaultQueries,
		Regions:    DefaultRegions,
	}
}

// IsSelected reports whether the database id is selected.
func (s State) IsSelected(id int) bool {
	i := sort.SearchInts(s.Selected, id)
	return i < len(s.Selected) && s.Selected[i] == id
}

// ToggleDatabase flips the selection of id. Selecting a database whose
// transport conflicts with an active connection filter widens the filter to
// "all" so the new selection is visible. Unknown ids leave the state as is.
func (s State) ToggleDatabase(id int, c *Catalog) State {
	db, ok := c.Lookup(id)
	if !ok {
		return s
	}
	next := s.clone()
	if s.IsSelected(id) {
		next.Selected = without(next.Selected, id)
		return next
	}
	next.Selected = normalize(append(next.Selected, id))
	if !next.Connection.Matches(db.ConnectionMethod) {
		next.Connection = ConnectionFilterAll
	}
	return next
}

// SetGroup checks or unchecks every database in ids at once, as the
// region-group checkbox does. Checking follows the same widening rule as
// ToggleDatabase.
func (s State) SetGroup(ids []int, checked bool, c *Catalog) State {
	next := s.clone()
	for _, id := range ids {
		db, ok := c.Lookup(id)
		if !ok {
			continue
		}
		if !checked {
			next.Selected = without(next.Selected, id)
			continue
		}
		if !next.IsSelected(id) {
			next.Selected = normalize(append(next.Selected, id))
		}
		if !next.Connection.Matches(db.ConnectionMethod) {
			next.Connection = ConnectionFilterAll
		}
	}
	return next
}

// SetConnectionFilter applies a connection filter chosen directly by the
// viewer. Selected databases that do not use the chosen transport are
// deselected, unless that would leave nothing selected; in that case the
// selection is kept and the filter widens to "all" instead. With an empty
// selection, every database using the chosen transport is selected.
func (s State) SetConnectionFilter(f ConnectionFilter, c *Catalog) State {
	if !f.Valid() {
		return s
	}
	next := s.clone()
	next.Connection = f
	if f == ConnectionFilterAll {
		return next
	}
	if len(s.Selected) == 0 {
		next.Selected = c.Matching(f)
		return next
	}

	pruned := make([]int, 0, len(s.Selected))
	for _, id := range s.Selected {
		if db, ok := c.Lookup(id); ok && f.Matches(db.ConnectionMethod) {
			pruned = append(pruned, id)
		}
	}
	if len(pruned) == 0 {
		next.Connection = ConnectionFilterAll
		return next
	}
	next.Selected = pruned
	return next
}

// SetQueryFilter sets the query type filter. Invalid values are ignored.
func (s State) SetQueryFilter(f QueryFilter) State {
	if !f.Valid() {
		return s
	}
	next := s.clone()
	next.Queries = f
	return next
}

// SetRegionFilter sets the region filter. Invalid values are ignored.
func (s State) SetRegionFilter(f RegionFilter) State {
	if !f.Valid() {
		return s
	}
	next := s.clone()
	next.Regions = f
	return next
}

func (s State) clone() State {
	next := s
	next.Selected = append([]int(nil), s.Selected...)
	if next.Selected == nil {
		next.Selected = []int{}
	}
	return next
}

func normalize(ids []int) []int {
	out := make([]int, 0, len(ids))
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

func without(ids []int, id int) []int {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
