package persistence

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sbermejom01/api-BetsSoccer/internal/league"
	"github.com/sbermejom01/api-BetsSoccer/internal/metrics"
)

// Source hands out copies of the state that needs to be written and is told
// which batch became durable.
type Source interface {
	PendingBatch() league.Batch
	Committed(b league.Batch)
}

// Sink writes a batch in one transaction.
type Sink interface {
	SaveBatch(ctx context.Context, b league.Batch) error
}

// Coordinator keeps at most one flush in flight. Requests made while a flush
// runs collapse into a single follow-up flush.
type Coordinator struct {
	source  Source
	sink    Sink
	metrics metrics.Metrics
	timeout time.Duration

	mu       sync.Mutex
	idle     *sync.Cond
	inFlight bool
	pending  bool
	lastErr  error
}

func NewCoordinator(source Source, sink Sink, metrics metrics.Metrics, timeout time.Duration) *Coordinator {
	c := &Coordinator{
		source:  source,
		sink:    sink,
		metrics: metrics,
		timeout: timeout,
	}
	c.idle = sync.NewCond(&c.mu)
	return c
}

// Request asks for a flush and returns immediately.
func (c *Coordinator) Request() {
	c.mu.Lock()
	if c.inFlight {
		c.pending = true
		c.mu.Unlock()
		return
	}
	c.inFlight = true
	c.mu.Unlock()

	go c.run()
}

// Wait blocks until no flush is running or queued.
func (c *Coordinator) Wait() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.inFlight {
		c.idle.Wait()
	}
}

// Flush requests a flush and waits for it, returning the error of the last
// transaction.
func (c *Coordinator) Flush(ctx context.Context) error {
	c.Request()

	done := make(chan struct{})
	go func() {
		c.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func (c *Coordinator) run() {
	for {
		err := c.flushOnce()

		c.mu.Lock()
		c.lastErr = err
		if !c.pending {
			c.inFlight = false
			c.idle.Broadcast()
			c.mu.Unlock()
			return
		}
		c.pending = false
		c.mu.Unlock()
	}
}

func (c *Coordinator) flushOnce() error {
	batch := c.source.PendingBatch()

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	start := time.Now()
	err := c.sink.SaveBatch(ctx, batch)
	c.metrics.ObserveFlushDuration(time.Since(start).Seconds())
	if err != nil {
		c.metrics.IncFlushFailures()
		log.Error("Failed to flush league state", "error", err, "round", batch.State.CurrentRound)
		return err
	}

	c.source.Committed(batch)
	log.Debug("Flushed league state", "round", batch.State.CurrentRound, "matches", len(batch.Matches), "duration", time.Since(start))
	return nil
}
