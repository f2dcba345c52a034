package trigger

import (
	"context"
	"time"

	"github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
)

// DefaultInterval is the tick period used when none is given.
const DefaultInterval = time.Second

// Ticker is a running recurring task. Stop cancels it.
type Ticker struct {
	// cancel stops the loop goroutine.
	cancel context.CancelFunc
	// done is closed when the loop goroutine returns.
	done chan struct{}
}

// Start calls tick every interval until ctx is cancelled or Stop is called.
// Ticks are delivered sequentially from a single goroutine.
func Start(ctx context.Context, interval time.Duration, tick func(time.Time)) *Ticker {
	if interval <= 0 {
		interval = DefaultInterval
	}

	ctx, cancel := context.WithCancel(ctx)

	t := &Ticker{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(t.done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				tick(now)
			}
		}
	}()

	return t
}

// Stop cancels the task and waits for the current tick to finish. It is safe
// to call more than once.
func (t *Ticker) Stop() {
	t.cancel()
	<-t.done
}

// Done is closed once the task has stopped.
func (t *Ticker) Done() <-chan struct{} {
	return t.done
}

// Source returns the current alarm collection for a scan.
type Source func(ctx context.Context) []alarm.Alarm

// Run scans the collection returned by source every interval until ctx is
// cancelled, then waits for in-flight side effects.
func (e *Engine) Run(ctx context.Context, interval time.Duration, source Source) {
	if interval <= 0 {
		interval = DefaultInterval
	}

	logger.DebugKV(ctx, "Alarm scan loop started", "interval", interval.String())

	t := Start(ctx, interval, func(time.Time) {
		e.Scan(ctx, e.now(), source(ctx))
	})

	<-t.Done()
	e.Wait()
}
