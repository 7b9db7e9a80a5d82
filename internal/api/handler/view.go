package handler

import (
	"errors"
	"net/http"

	"github.com/kiranshivaraju/latencybench/internal/api/response"
	"github.com/kiranshivaraju/latencybench/internal/view"
)

// NewTableHandler returns an http.HandlerFunc for GET /api/v1/table. The
// view state is read from the same query parameters as the dashboard page;
// malformed values fall back to their defaults.
func NewTableHandler(svc SnapshotLoader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, ok := loadSnapshot(w, r, svc)
		if !ok {
			return
		}
		st := view.Decode(r.URL.Query(), snap.Catalog())

		m := meta(snap)
		m.Query = st.Query(snap.Catalog())
		response.WithMeta(w, snap.Table(st), m)
	}
}

type transitionResponse struct {
	State view.State `json:"state"`
	Table view.Table `json:"table"`
}

// NewTransitionHandler returns an http.HandlerFunc for
// GET /api/v1/view/transition. It decodes the current state, applies the
// single action named by the action parameters and returns the next state
// with its canonical query.
func NewTransitionHandler(svc SnapshotLoader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		action, err := view.ParseAction(q)
		if err != nil {
			if errors.Is(err, view.ErrInvalidAction) {
				response.Error(w, http.StatusBadRequest, "INVALID_ACTION", err.Error(), nil)
				return
			}
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"An unexpected error occurred", nil)
			return
		}

		snap, ok := loadSnapshot(w, r, svc)
		if !ok {
			return
		}

		next := view.Decode(q, snap.Catalog()).Apply(action, snap.Catalog())

		m := meta(snap)
		m.Query = next.Query(snap.Catalog())
		response.WithMeta(w, transitionResponse{State: next, Table: snap.Table(next)}, m)
	}
}
