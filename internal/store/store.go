package store

import (
	"context"
	"errors"
	"time"

	"github.com/kiranshivaraju/latencybench/pkg/models"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Store is the read-only data access interface over the benchmark tables.
type Store interface {
	Ping(ctx context.Context) error

	ListFunctions(ctx context.Context) ([]models.FunctionRegion, error)
	ListDatabases(ctx context.Context) ([]models.DatabaseTarget, error)
	GetDatabase(ctx context.Context, id int) (*models.DatabaseTarget, error)

	ListObservationsSince(ctx context.Context, since time.Time) ([]models.Observation, error)
	ListObservationsForDatabase(ctx context.Context, databaseID int, since time.Time) ([]models.Observation, error)
	AverageLatencySince(ctx context.Context, since time.Time) ([]models.AvgStat, error)
}
