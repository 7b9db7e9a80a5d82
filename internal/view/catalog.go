package view

import (
	"sort"

	"github.com/kiranshivaraju/latencybench/pkg/models"
)

// Catalog indexes the reference databases the view state refers to.
type Catalog struct {
	databases []models.DatabaseTarget
	byID      map[int]models.DatabaseTarget
	ids       []int
}

// NewCatalog builds a Catalog. Later duplicates of an id are ignored.
func NewCatalog(databases []models.DatabaseTarget) *Catalog {
	c := &Catalog{byID: make(map[int]models.DatabaseTarget, len(databases))}
	for _, db := range databases {
		if _, dup := c.byID[db.ID]; dup {
			continue
		}
		c.byID[db.ID] = db
		c.databases = append(c.databases, db)
		c.ids = append(c.ids, db.ID)
	}
	sort.Ints(c.ids)
	return c
}

// Databases returns the databases in their original order.
func (c *Catalog) Databases() []models.DatabaseTarget {
	return c.databases
}

// IDs returns every database id, ascending. The caller owns the slice.
func (c *Catalog) IDs() []int {
	return append([]int{}, c.ids...)
}

// Len returns the number of databases.
func (c *Catalog) Len() int {
	return len(c.ids)
}

// Lookup returns the database with the given id.
func (c *Catalog) Lookup(id int) (models.DatabaseTarget, bool) {
	db, ok := c.byID[id]
	return db, ok
}

// Matching returns the ids of databases passing the connection filter,
// ascending.
func (c *Catalog) Matching(f ConnectionFilter) []int {
	out := []int{}
	for _, id := range c.ids {
		if f.Matches(c.byID[id].ConnectionMethod) {
			out = append(out, id)
		}
	}
	return out
}

// Displayed returns the selected databases that pass the state's connection
// filter, in catalog order.
func (c *Catalog) Displayed(s State) []models.DatabaseTarget {
	out := []models.DatabaseTarget{}
	for _, db := range c.databases {
		if s.IsSelected(db.ID) && s.Connection.Matches(db.ConnectionMethod) {
			out = append(out, db)
		}
	}
	return out
}
