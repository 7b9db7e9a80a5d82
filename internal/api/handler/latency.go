package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/kiranshivaraju/latencybench/internal/aggregate"
	"github.com/kiranshivaraju/latencybench/internal/api/response"
	"github.com/kiranshivaraju/latencybench/internal/dashboard"
	"github.com/kiranshivaraju/latencybench/pkg/models"
)

type referenceResponse struct {
	Functions []models.FunctionRegion `json:"functions"`
	Databases []models.DatabaseTarget `json:"databases"`
}

// NewReferenceHandler returns an http.HandlerFunc for GET /api/v1/reference.
func NewReferenceHandler(svc SnapshotLoader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, ok := loadSnapshot(w, r, svc)
		if !ok {
			return
		}
		response.WithMeta(w, referenceResponse{
			Functions: snap.Functions(),
			Databases: snap.Databases(),
		}, meta(snap))
	}
}

// NewLatencyHandler returns an http.HandlerFunc for GET /api/v1/latency.
func NewLatencyHandler(svc SnapshotLoader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, ok := loadSnapshot(w, r, svc)
		if !ok {
			return
		}
		response.WithMeta(w, snap.Latency(), meta(snap))
	}
}

type historyResponse struct {
	Database  models.DatabaseTarget          `json:"database"`
	Days      int                            `json:"days"`
	Points    []aggregate.DailyPoint         `json:"points"`
	Functions []aggregate.FunctionDailyPoint `json:"functions,omitempty"`
}

// NewHistoryHandler returns an http.HandlerFunc for
// GET /api/v1/databases/{id}/history. Query parameters: days (1..window,
// defaults to the window) and by=function for the per-function breakdown.
func NewHistoryHandler(svc SnapshotLoader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil || id <= 0 {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "id must be a positive integer", nil)
			return
		}

		days := 0
		if raw := r.URL.Query().Get("days"); raw != "" {
			days, err = strconv.Atoi(raw)
			if err != nil || days <= 0 {
				response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "days must be a positive integer", nil)
				return
			}
		}

		snap, ok := loadSnapshot(w, r, svc)
		if !ok {
			return
		}
		if days == 0 || days > snap.WindowDays() {
			days = snap.WindowDays()
		}

		points, err := snap.History(id, days)
		if errors.Is(err, dashboard.ErrUnknownDatabase) {
			response.Error(w, http.StatusNotFound, "NOT_FOUND", "Database not found", nil)
			return
		}

		resp := historyResponse{Days: days, Points: points}
		resp.Database, _ = snap.Catalog().Lookup(id)
		if r.URL.Query().Get("by") == "function" {
			resp.Functions, _ = snap.FunctionHistory(id, days)
		}
		response.WithMeta(w, resp, meta(snap))
	}
}
