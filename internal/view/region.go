package view

import (
	"sort"
	"strings"

	"github.com/kiranshivaraju/latencybench/pkg/models"
)

// regionOrder is the display order of AWS regions, grouped geographically.
var regionOrder = []string{
	// Europe
	"eu-central-1",
	"eu-west-2",
	"eu-west-3",
	"eu-north-1",
	"eu-west-1",
	// US East
	"us-east-1",
	"us-east-2",
	// US West
	"us-west-1",
	"us-west-2",
	// Asia East
	"ap-east-1",
	"ap-northeast-2",
	"ap-northeast-1",
	"ap-northeast-3",
	// Asia South/Southeast
	"ap-southeast-1",
	"ap-southeast-2",
	"ap-south-1",
	// Middle East & Africa
	"me-south-1",
	"af-south-1",
	// South America
	"sa-east-1",
}

var regionRank = func() map[string]int {
	m := make(map[string]int, len(regionOrder))
	for i, code := range regionOrder {
		m[code] = i
	}
	return m
}()

// RegionRank returns the display position of a region code. Unknown regions
// sort after every known one.
func RegionRank(code string) int {
	if r, ok := regionRank[strings.ToLower(code)]; ok {
		return r
	}
	return len(regionOrder)
}

// SameRegion reports whether two region codes name the same region.
func SameRegion(a, b string) bool {
	return strings.EqualFold(a, b)
}

// RegionGroup is a table column: the displayed databases sharing a region and
// a transport.
type RegionGroup struct {
	RegionCode  string                  `json:"region_code"`
	RegionLabel string                  `json:"region_label"`
	Connection  models.ConnectionMethod `json:"connection_method"`
	Databases   []models.DatabaseTarget `json:"databases"`
}

// DatabaseIDs returns the ids of the group's databases.
func (g RegionGroup) DatabaseIDs() []int {
	ids := make([]int, len(g.Databases))
	for i, db := range g.Databases {
		ids[i] = db.ID
	}
	return ids
}

// GroupDatabases groups databases by (region code, transport) and orders the
// groups by region rank, then transport name.
func GroupDatabases(databases []models.DatabaseTarget) []RegionGroup {
	type key struct {
		region string
		method models.ConnectionMethod
	}
	index := make(map[key]int)
	var groups []RegionGroup
	for _, db := range databases {
		k := key{region: strings.ToLower(db.RegionCode), method: db.ConnectionMethod}
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, RegionGroup{
				RegionCode:  db.RegionCode,
				RegionLabel: db.RegionLabel,
				Connection:  db.ConnectionMethod,
			})
		}
		groups[i].Databases = append(groups[i].Databases, db)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		ri, rj := RegionRank(groups[i].RegionCode), RegionRank(groups[j].RegionCode)
		if ri != rj {
			return ri < rj
		}
		if groups[i].RegionCode != groups[j].RegionCode {
			return strings.ToLower(groups[i].RegionCode) < strings.ToLower(groups[j].RegionCode)
		}
		return groups[i].Connection < groups[j].Connection
	})
	return groups
}

// SortFunctions orders functions by region rank, keeping the input order for
// functions in the same region.
func SortFunctions(functions []models.FunctionRegion) []models.FunctionRegion {
	out := append([]models.FunctionRegion(nil), functions...)
	sort.SliceStable(out, func(i, j int) bool {
		return RegionRank(out[i].RegionCode) < RegionRank(out[j].RegionCode)
	})
	return out
}

// FilterFunctions applies the region filter: under RegionFilterMatching a
// function is kept iff its region matches at least one displayed database.
func FilterFunctions(f RegionFilter, functions []models.FunctionRegion, displayed []models.DatabaseTarget) []models.FunctionRegion {
	if f == RegionFilterAll {
		return append([]models.FunctionRegion(nil), functions...)
	}
	regions := make(map[string]struct{}, len(displayed))
	for _, db := range displayed {
		regions[strings.ToLower(db.RegionCode)] = struct{}{}
	}
	out := []models.FunctionRegion{}
	for _, fn := range functions {
		if _, ok := regions[strings.ToLower(fn.RegionCode)]; ok {
			out = append(out, fn)
		}
	}
	return out
}
