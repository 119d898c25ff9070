package worker

import (
	"context"
	"sync"
	"time"

	"wallfleur-be/internal/config"
	"wallfleur-be/internal/logger"
	"wallfleur-be/internal/metrics"

	"go.uber.org/zap"
)

// ExpiredCartSweeper is the subset of cart.Service the sweeper needs.
type ExpiredCartSweeper interface {
	SweepExpired(ctx context.Context, ttl time.Duration, batchSize int) (int64, error)
}

// CartSweeper periodically deletes bag lines older than the cart TTL.
type CartSweeper struct {
	carts     ExpiredCartSweeper
	metrics   *metrics.Registry
	interval  time.Duration
	ttl       time.Duration
	batchSize int

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

func NewCartSweeper(carts ExpiredCartSweeper, reg *metrics.Registry, interval, ttl time.Duration, batchSize int) *CartSweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	return &CartSweeper{
		carts:     carts,
		metrics:   reg,
		interval:  interval,
		ttl:       ttl,
		batchSize: batchSize,
	}
}

func newCartSweeperFromConfig(cfg *config.Config, carts ExpiredCartSweeper, reg *metrics.Registry) *CartSweeper {
	return NewCartSweeper(carts, reg, cfg.CartSweepInterval, cfg.CartTTL, cfg.CartSweepBatchSize)
}

// Start launches the sweep loop. Calling Start twice without Stop is a no-op.
func (s *CartSweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.loop(runCtx)
}

// Stop cancels the loop and waits for an in-flight sweep to return.
func (s *CartSweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *CartSweeper) loop(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SweepOnce(ctx)
		}
	}
}

// SweepOnce runs a single sweep and returns the number of lines removed.
func (s *CartSweeper) SweepOnce(ctx context.Context) int64 {
	log := logger.FromCtx(ctx).With(zap.String("layer", "worker"), zap.String("method", "CartSweeper.SweepOnce"))

	n, err := s.carts.SweepExpired(ctx, s.ttl, s.batchSize)
	if n > 0 {
		s.metrics.CartLinesSwept.Add(uint64(n))
		log.Info("expired cart lines removed", zap.Int64("lines", n))
	}
	if err != nil && ctx.Err() == nil {
		log.Error("cart sweep failed", zap.Error(err))
	}
	return n
}
