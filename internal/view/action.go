package view

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ErrInvalidAction is returned by ParseAction for unknown or malformed
// actions.
var ErrInvalidAction = errors.New("invalid view action")

// ActionKind names a viewer interaction.
type ActionKind string

const (
	ActionToggleDatabase ActionKind = "toggle_database"
	ActionCheckGroup     ActionKind = "check_group"
	ActionUncheckGroup   ActionKind = "uncheck_group"
	ActionSetConnection  ActionKind = "set_connection"
	ActionSetQueries     ActionKind = "set_queries"
	ActionSetRegions     ActionKind = "set_regions"
)

// Action parameter names, read alongside the state parameters.
const (
	ParamAction = "action"
	ParamID     = "id"
	ParamIDs    = "ids"
	ParamValue  = "value"
)

// Action is one transition request.
type Action struct {
	Kind  ActionKind
	IDs   []int
	Value string
}

// ParseAction reads an Action from query parameters.
func ParseAction(v url.Values) (Action, error) {
	a := Action{Kind: ActionKind(v.Get(ParamAction)), Value: v.Get(ParamValue)}
	switch a.Kind {
	case ActionToggleDatabase:
		id, err := strconv.Atoi(v.Get(ParamID))
		if err != nil {
			return Action{}, fmt.Errorf("%w: id must be an integer", ErrInvalidAction)
		}
		a.IDs = []int{id}
	case ActionCheckGroup, ActionUncheckGroup:
		for _, part := range strings.Split(v.Get(ParamIDs), ",") {
			id, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return Action{}, fmt.Errorf("%w: ids must be comma-separated integers", ErrInvalidAction)
			}
			a.IDs = append(a.IDs, id)
		}
	case ActionSetConnection:
		if !ConnectionFilter(a.Value).Valid() {
			return Action{}, fmt.Errorf("%w: unknown connection filter %q", ErrInvalidAction, a.Value)
		}
	case ActionSetQueries:
		if !QueryFilter(a.Value).Valid() {
			return Action{}, fmt.Errorf("%w: unknown query filter %q", ErrInvalidAction, a.Value)
		}
	case ActionSetRegions:
		if !RegionFilter(a.Value).Valid() {
			return Action{}, fmt.Errorf("%w: unknown region filter %q", ErrInvalidAction, a.Value)
		}
	default:
		return Action{}, fmt.Errorf("%w: unknown action %q", ErrInvalidAction, a.Kind)
	}
	return a, nil
}

// Apply runs the transition named by a against s.
func (s State) Apply(a Action, c *Catalog) State {
	switch a.Kind {
	case ActionToggleDatabase:
		if len(a.IDs) == 1 {
			return s.ToggleDatabase(a.IDs[0], c)
		}
	case ActionCheckGroup:
		return s.SetGroup(a.IDs, true, c)
	case ActionUncheckGroup:
		return s.SetGroup(a.IDs, false, c)
	case ActionSetConnection:
		return s.SetConnectionFilter(ConnectionFilter(a.Value), c)
	case ActionSetQueries:
		return s.SetQueryFilter(QueryFilter(a.Value))
	case ActionSetRegions:
		return s.SetRegionFilter(RegionFilter(a.Value))
	}
	return s
}
