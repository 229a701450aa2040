package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"ledger-chain.backend/pkg/logger"
)

// loop runs tick every interval until ctx is cancelled or stop is closed
type loop struct {
	name     string
	interval time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

func newLoop(name string, interval time.Duration) *loop {
	if interval <= 0 {
		interval = time.Minute
	}
	return &loop{name: name, interval: interval, stop: make(chan struct{})}
}

func (l *loop) run(ctx context.Context, tick func(context.Context)) {
	logger.Info(ctx, "Starting job", zap.String("job", l.name), zap.Duration("interval", l.interval))

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Job stopped (context cancelled)", zap.String("job", l.name))
			return
		case <-l.stop:
			logger.Info(ctx, "Job stopped", zap.String("job", l.name))
			return
		case <-ticker.C:
			tick(ctx)
		}
	}
}

// Stop ends the loop. Safe to call more than once.
func (l *loop) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}
