package scheduler

import (
	"context"
	"errors"
	gosync "sync"
	"time"

	"go.uber.org/zap"

	appsync "github.com/varelaprogramador/plusdelivery-backend/internal/application/sync"
	"github.com/varelaprogramador/plusdelivery-backend/internal/domain/shared"
)

// OrderSyncer imports orders from the source platform
type OrderSyncer interface {
	SyncFromPlus(ctx context.Context) (*appsync.SyncReport, error)
}

// AutoSyncConfig holds configuration for the automatic order import
type AutoSyncConfig struct {
	Enabled  bool
	Interval time.Duration
}

// AutoSync periodically imports orders from the source platform. A tick
// that finds the gate busy is skipped; the next tick tries again.
type AutoSync struct {
	config AutoSyncConfig
	syncer OrderSyncer
	logger *zap.Logger

	cancel    context.CancelFunc
	wg        gosync.WaitGroup
	mu        gosync.Mutex
	isRunning bool
}

// NewAutoSync creates a new automatic sync loop
func NewAutoSync(config AutoSyncConfig, syncer OrderSyncer, logger *zap.Logger) *AutoSync {
	return &AutoSync{
		config: config,
		syncer: syncer,
		logger: logger.Named("autosync"),
	}
}

// Start starts the loop. A disabled config makes Start a no-op.
func (a *AutoSync) Start(ctx context.Context) error {
	if !a.config.Enabled {
		a.logger.Info("Auto sync disabled")
		return nil
	}
	if a.config.Interval <= 0 {
		return errors.New("scheduler: auto sync interval must be positive")
	}

	a.mu.Lock()
	if a.isRunning {
		a.mu.Unlock()
		return nil
	}
	a.isRunning = true
	a.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	a.wg.Add(1)
	go a.runLoop(ctx)

	a.logger.Info("Auto sync started", zap.Duration("interval", a.config.Interval))
	return nil
}

// Stop stops the loop, waiting for an in-flight run to finish
func (a *AutoSync) Stop(ctx context.Context) error {
	a.mu.Lock()
	if !a.isRunning {
		a.mu.Unlock()
		return nil
	}
	a.isRunning = false
	a.mu.Unlock()

	if a.cancel != nil {
		a.cancel()
	}

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		a.logger.Info("Auto sync stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *AutoSync) runLoop(ctx context.Context) {
	defer a.wg.Done()

	ticker := time.NewTicker(a.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.runOnce(ctx)
		}
	}
}

func (a *AutoSync) runOnce(ctx context.Context) {
	report, err := a.syncer.SyncFromPlus(ctx)
	if err != nil {
		if errors.Is(err, shared.ErrSyncInProgress) {
			a.logger.Debug("Sync already running, skipping tick")
			return
		}
		a.logger.Error("Scheduled order sync failed", zap.Error(err))
		return
	}

	a.logger.Info("Scheduled order sync finished",
		zap.Int("new_orders", report.Count),
	)
}
