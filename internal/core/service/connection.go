package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/berfenger/luxtronik2mqtt/pkg/luxtronik"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// MinTimeBetweenUpdates is the shortest interval between two real reads of the controller.
const MinTimeBetweenUpdates = 60 * time.Second

type ConnectionStats struct {
	Reads     uint64
	Coalesced uint64
	Failures  uint64
}

type ConnectionManagerOption func(*ConnectionManager)

func WithClock(now func() time.Time) ConnectionManagerOption {
	return func(cm *ConnectionManager) {
		cm.now = now
	}
}

func WithLogger(logger *zap.Logger) ConnectionManagerOption {
	return func(cm *ConnectionManager) {
		cm.logger = logger
	}
}

func WithMinTimeBetweenUpdates(d time.Duration) ConnectionManagerOption {
	return func(cm *ConnectionManager) {
		cm.minInterval = d
	}
}

// ConnectionManager owns the controller connection. Refreshes are throttled to
// one real read per MinTimeBetweenUpdates; calls inside the window are no-ops.
type ConnectionManager struct {
	reader      luxtronik.HeatpumpReader
	logger      *zap.Logger
	now         func() time.Time
	minInterval time.Duration
	limiter     *rate.Limiter

	mu sync.Mutex

	reads     atomic.Uint64
	coalesced atomic.Uint64
	failures  atomic.Uint64
}

// NewConnectionManager opens the reader and performs the first read, so
// lookups have data as soon as it returns.
func NewConnectionManager(reader luxtronik.HeatpumpReader, opts ...ConnectionManagerOption) (*ConnectionManager, error) {
	cm := &ConnectionManager{
		reader:      reader,
		logger:      zap.NewNop(),
		now:         time.Now,
		minInterval: MinTimeBetweenUpdates,
	}
	for _, opt := range opts {
		opt(cm)
	}
	cm.limiter = rate.NewLimiter(rate.Every(cm.minInterval), 1)

	if err := reader.Open(); err != nil {
		return nil, fmt.Errorf("open heatpump connection: %w", err)
	}
	if err := cm.Refresh(context.Background()); err != nil {
		_ = reader.Close()
		return nil, fmt.Errorf("initial heatpump read: %w", err)
	}
	return cm, nil
}

func (cm *ConnectionManager) Refresh(ctx context.Context) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	// the slot is consumed even when the read below fails
	if !cm.limiter.AllowN(cm.now(), 1) {
		cm.coalesced.Add(1)
		return nil
	}
	cm.reads.Add(1)
	if err := cm.reader.Read(); err != nil {
		cm.failures.Add(1)
		cm.logger.Warn("heatpump read failed", zap.Error(err))
		return err
	}
	cm.logger.Debug("heatpump data refreshed")
	return nil
}

// Lookup reads the current snapshot without cm.mu; the reader swaps its
// snapshots under its own lock.
func (cm *ConnectionManager) Lookup(group string, id string) (*luxtronik.Attribute, bool) {
	g, err := cm.reader.Group(group)
	if err != nil {
		return nil, false
	}
	return g.Get(id)
}

func (cm *ConnectionManager) WriteParameter(ctx context.Context, id string, value string) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return cm.reader.WriteParameter(id, value)
}

func (cm *ConnectionManager) Info() (*luxtronik.HeatpumpInfo, error) {
	return cm.reader.GetInfo()
}

func (cm *ConnectionManager) Stats() ConnectionStats {
	return ConnectionStats{
		Reads:     cm.reads.Load(),
		Coalesced: cm.coalesced.Load(),
		Failures:  cm.failures.Load(),
	}
}

func (cm *ConnectionManager) Close() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	return cm.reader.Close()
}
