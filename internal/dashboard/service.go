// Package dashboard loads the benchmark data the dashboard renders and keeps
// a cached, precomputed snapshot of it.
package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/jonboulle/clockwork"
	"github.com/kiranshivaraju/latencybench/internal/aggregate"
	"github.com/kiranshivaraju/latencybench/internal/cache"
	"github.com/kiranshivaraju/latencybench/internal/metrics"
	"github.com/kiranshivaraju/latencybench/internal/store"
	"github.com/kiranshivaraju/latencybench/pkg/models"
)

// ErrDataUnavailable is returned for any failure to load benchmark data.
var ErrDataUnavailable = errors.New("benchmark data unavailable")

const (
	defaultWindowDays = 30
	defaultCacheTTL   = 5 * time.Minute

	fetchConcurrency = 3
)

// Config holds the Service dependencies and tuning.
type Config struct {
	Logger     *slog.Logger
	Store      store.Store
	Cache      cache.Cache
	Clock      clockwork.Clock
	WindowDays int
	CacheTTL   time.Duration
}

// Validate checks required dependencies and fills in defaults.
func (c *Config) Validate() error {
	if c.Logger == nil {
		return errors.New("logger is required")
	}
	if c.Store == nil {
		return errors.New("store is required")
	}
	if c.Cache == nil {
		return errors.New("cache is required")
	}
	if c.Clock == nil {
		c.Clock = clockwork.NewRealClock()
	}
	if c.WindowDays == 0 {
		c.WindowDays = defaultWindowDays
	}
	if c.WindowDays < 0 {
		return fmt.Errorf("window days must be positive, got %d", c.WindowDays)
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = defaultCacheTTL
	}
	return nil
}

// Service produces Snapshots. It is safe for concurrent use.
type Service struct {
	cfg  *Config
	pool pond.Pool
}

// NewService validates cfg and starts the fetch pool.
func NewService(cfg *Config) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dashboard config: %w", err)
	}
	return &Service{
		cfg:  cfg,
		pool: pond.NewPool(fetchConcurrency),
	}, nil
}

// WindowDays is the trailing window snapshots are computed over.
func (s *Service) WindowDays() int {
	return s.cfg.WindowDays
}

// Close stops the fetch pool, waiting for in-flight queries.
func (s *Service) Close() {
	s.pool.StopAndWait()
}

// Load returns the current snapshot, reading through the cache. Every
// failure to reach the data is reported as ErrDataUnavailable; cache
// failures only degrade to a direct load.
func (s *Service) Load(ctx context.Context) (*Snapshot, error) {
	key := cache.SnapshotKey(s.cfg.WindowDays)

	raw, found, err := s.cfg.Cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.SnapshotCacheTotal.WithLabelValues(metrics.CacheError).Inc()
		s.cfg.Logger.Warn("snapshot cache read failed", "key", key, "error", err)
	case found:
		var d Data
		if err := json.Unmarshal(raw, &d); err == nil {
			metrics.SnapshotCacheTotal.WithLabelValues(metrics.CacheHit).Inc()
			return NewSnapshot(d, s.cfg.WindowDays), nil
		}
		metrics.SnapshotCacheTotal.WithLabelValues(metrics.CacheError).Inc()
		s.cfg.Logger.Warn("discarding undecodable snapshot", "key", key, "error", err)
	default:
		metrics.SnapshotCacheTotal.WithLabelValues(metrics.CacheMiss).Inc()
	}

	d, err := s.fetch(ctx)
	if err != nil {
		s.cfg.Logger.Error("loading benchmark data", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrDataUnavailable, err)
	}

	if encoded, err := json.Marshal(d); err != nil {
		s.cfg.Logger.Warn("encoding snapshot", "error", err)
	} else if err := s.cfg.Cache.Set(ctx, key, encoded, s.cfg.CacheTTL); err != nil {
		s.cfg.Logger.Warn("snapshot cache write failed", "key", key, "error", err)
	}

	return NewSnapshot(d, s.cfg.WindowDays), nil
}

// fetch runs the reference data and observation queries concurrently.
func (s *Service) fetch(ctx context.Context) (Data, error) {
	start := time.Now()
	defer func() { metrics.SnapshotLoadDuration.Observe(time.Since(start).Seconds()) }()

	now := s.cfg.Clock.Now().UTC()
	since := aggregate.WindowStart(now, s.cfg.WindowDays)

	var (
		functions    []models.FunctionRegion
		databases    []models.DatabaseTarget
		observations []models.Observation
	)

	group := s.pool.NewGroupContext(ctx)
	group.SubmitErr(
		func() error {
			var err error
			functions, err = s.cfg.Store.ListFunctions(ctx)
			return stageErr("functions", err)
		},
		func() error {
			var err error
			databases, err = s.cfg.Store.ListDatabases(ctx)
			return stageErr("databases", err)
		},
		func() error {
			var err error
			observations, err = s.cfg.Store.ListObservationsSince(ctx, since)
			return stageErr("observations", err)
		},
	)
	if err := group.Wait(); err != nil {
		return Data{}, err
	}

	metrics.SnapshotObservations.Set(float64(len(observations)))

	return Data{
		Functions:    functions,
		Databases:    databases,
		Observations: observations,
		LoadedAt:     now,
	}, nil
}

func stageErr(stage string, err error) error {
	if err == nil {
		return nil
	}
	metrics.SnapshotLoadErrorsTotal.WithLabelValues(stage).Inc()
	return fmt.Errorf("fetch %s: %w", stage, err)
}
