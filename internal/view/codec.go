package view

import (
	"net/url"
	"strconv"
	"strings"
)

// URL query parameter names.
const (
	ParamDatabases  = "databases"
	ParamConnection = "connection"
	ParamQueries    = "queries"
	ParamRegions    = "regions"
)

const (
	databasesAll  = "all"
	databasesNone = "none"
	queriesAll    = "all"
	regionsMatch  = "match"
	regionsAll    = "all"
)

// Decode reads a State from URL query parameters. Each parameter falls back
// to its default independently when absent or malformed. An absent or empty
// databases parameter selects every database: that is the first-load case,
// distinct from "none", which an explicit deselect-all produces.
func Decode(v url.Values, c *Catalog) State {
	return State{
		Selected:   decodeDatabases(v.Get(ParamDatabases), c),
		Connection: decodeConnection(v.Get(ParamConnection)),
		Queries:    decodeQueries(v.Get(ParamQueries)),
		Regions:    decodeRegions(v.Get(ParamRegions)),
	}
}

// Encode writes a State as URL query parameters. Decode(Encode(s)) == s for
// every state whose selection is drawn from the catalog.
func Encode(s State, c *Catalog) url.Values {
	v := url.Values{}
	v.Set(ParamDatabases, encodeDatabases(s.Selected, c))
	v.Set(ParamConnection, string(s.Connection))
	v.Set(ParamQueries, encodeQueries(s.Queries))
	v.Set(ParamRegions, encodeRegions(s.Regions))
	return v
}

// Query returns the canonical encoded query string of s.
func (s State) Query(c *Catalog) string {
	return Encode(s, c).Encode()
}

// IsCanonical reports whether v is exactly the canonical encoding of the
// state it decodes to.
func IsCanonical(v url.Values, c *Catalog) bool {
	return Encode(Decode(v, c), c).Encode() == v.Encode()
}

func decodeDatabases(raw string, c *Catalog) []int {
	raw = strings.TrimSpace(raw)
	switch raw {
	case "", databasesAll:
		return c.IDs()
	case databasesNone:
		return []int{}
	}

	var ids []int
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		if _, ok := c.Lookup(id); ok {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return c.IDs()
	}
	return normalize(ids)
}

func encodeDatabases(selected []int, c *Catalog) string {
	if len(selected) == 0 {
		return databasesNone
	}
	if len(selected) == c.Len() {
		all := true
		for _, id := range selected {
			if _, ok := c.Lookup(id); !ok {
				all = false
				break
			}
		}
		if all {
			return databasesAll
		}
	}
	parts := make([]string, len(selected))
	for i, id := range selected {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

func decodeConnection(raw string) ConnectionFilter {
	f := ConnectionFilter(raw)
	if !f.Valid() {
		return DefaultConnection
	}
	return f
}

func decodeQueries(raw string) QueryFilter {
	switch raw {
	case string(QueryFilterCold):
		return QueryFilterCold
	case string(QueryFilterHot):
		return QueryFilterHot
	case queriesAll:
		return QueryFilterBoth
	}
	return DefaultQueries
}

func encodeQueries(f QueryFilter) string {
	if f == QueryFilterBoth {
		return queriesAll
	}
	return string(f)
}

func decodeRegions(raw string) RegionFilter {
	switch raw {
	case regionsAll:
		return RegionFilterAll
	case regionsMatch:
		return RegionFilterMatching
	}
	return DefaultRegions
}

func encodeRegions(f RegionFilter) string {
	if f == RegionFilterAll {
		return regionsAll
	}
	return regionsMatch
}
