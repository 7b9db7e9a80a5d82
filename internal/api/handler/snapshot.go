package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/kiranshivaraju/latencybench/internal/api/response"
	"github.com/kiranshivaraju/latencybench/internal/dashboard"
)

// SnapshotLoader defines the interface the handlers depend on.
type SnapshotLoader interface {
	Load(ctx context.Context) (*dashboard.Snapshot, error)
}

// loadSnapshot writes the error response itself and reports false when no
// snapshot is available.
func loadSnapshot(w http.ResponseWriter, r *http.Request, svc SnapshotLoader) (*dashboard.Snapshot, bool) {
	snap, err := svc.Load(r.Context())
	if err != nil {
		if errors.Is(err, dashboard.ErrDataUnavailable) {
			response.Error(w, http.StatusServiceUnavailable, "DATA_UNAVAILABLE",
				"Benchmark data is currently unavailable", nil)
			return nil, false
		}
		slog.Error("load snapshot", "error", err)
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
			"An unexpected error occurred", nil)
		return nil, false
	}
	return snap, true
}

func meta(snap *dashboard.Snapshot) response.Meta {
	return response.Meta{WindowDays: snap.WindowDays(), LoadedAt: snap.LoadedAt()}
}
