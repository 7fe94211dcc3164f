// Package sweeper runs the booking expiry pass on a fixed interval, in
// addition to the pass every booking creation performs.
package sweeper

import (
	"context"
	"roomledger/pkg/logger"
	"time"
)

type Expirer interface {
	ExpireOld(ctx context.Context) (int64, error)
}

type Sweeper struct {
	expirer  Expirer
	interval time.Duration
	log      *logger.Logger
}

func New(expirer Expirer, interval time.Duration, log *logger.Logger) *Sweeper {
	return &Sweeper{
		expirer:  expirer,
		interval: interval,
		log:      log,
	}
}

// Run sweeps once immediately and then every interval until ctx is done.
// It returns the context's error.
func (s *Sweeper) Run(ctx context.Context) error {
	s.log.Info("Expiry sweeper started", "interval", s.interval)
	defer s.log.Info("Expiry sweeper stopped")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		s.RunOnce(ctx)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// RunOnce performs a single pass. Failures are logged and left for the next tick.
func (s *Sweeper) RunOnce(ctx context.Context) int64 {
	n, err := s.expirer.ExpireOld(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.log.Error("Expiry sweep failed", "error", err)
		}
		return 0
	}
	if n > 0 {
		s.log.Info("Expiry sweep completed", "expired", n)
	}
	return n
}
