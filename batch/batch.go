// Package batch runs bulk parse/encode operations across a worker pool,
// for callers holding many independent documents (a request body per line
// of a log file, a page of records fetched from storage) who want them
// converted concurrently without hand-rolling a fan-out/fan-in loop.
//
// A worker pool runs the per-item work; a per-item failure is stored in that
// item's result slot and logged, never propagated by panic. ants.Pool
// supplies the pool, and golang.org/x/sync/errgroup supplies
// cancellation-aware fan-out.
package batch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/panjf2000/ants/v2"
	"golang.org/x/sync/errgroup"

	"github.com/uniyakcom/jsonvalue/json"
)

// config holds the resolved Option settings for one ParseAll/EncodeAll call.
type config struct {
	workers int
	pool    *ants.Pool
	logger  *slog.Logger
}

// Option configures ParseAll/EncodeAll.
type Option func(*config)

// WithWorkers sets the worker pool size. Ignored if WithPool is also given.
// The default, 0, is passed to ants.NewPool as is, and ants treats a size
// <= 0 as a pool with no fixed capacity.
func WithWorkers(n int) Option {
	return func(c *config) { c.workers = n }
}

// WithPool supplies a caller-owned *ants.Pool instead of having one created
// and released per call, for a caller running many batches back to back.
func WithPool(p *ants.Pool) Option {
	return func(c *config) { c.pool = p }
}

// WithLogger overrides the default slog.Default() logger used for
// per-item failure warnings.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

func resolve(opts []Option) *config {
	c := &config{workers: 0, logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// acquirePool returns a pool to use plus a release func, honoring WithPool
// (caller-owned, not released here) versus a call-scoped pool (released
// when the returned func runs).
func (c *config) acquirePool() (*ants.Pool, func(), error) {
	if c.pool != nil {
		return c.pool, func() {}, nil
	}
	// ants substitutes its own default pool size when size <= 0.
	p, err := ants.NewPool(c.workers)
	if err != nil {
		return nil, nil, fmt.Errorf("batch: creating worker pool: %w", err)
	}
	return p, p.Release, nil
}

// ParseAll parses every element of inputs concurrently, preserving input
// order in the result slice: result[i] corresponds to inputs[i]. A
// per-item syntax error does not fail the batch: that slot holds the
// Error-kind Value Parse would have produced, and is logged at warn level.
// ctx cancellation stops scheduling further items and returns ctx.Err();
// items already dispatched still run to completion.
func ParseAll(ctx context.Context, inputs [][]byte, opts ...Option) ([]*json.Value, error) {
	c := resolve(opts)
	pool, release, err := c.acquirePool()
	if err != nil {
		return nil, err
	}
	defer release()

	results := make([]*json.Value, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	for i, data := range inputs {
		i, data := i, data
		g.Go(func() error {
			return submitAndWait(gctx, pool, func() {
				p := json.AcquireParser()
				defer json.ReleaseParser(p)
				v := p.ParseBytes(data)
				if v.IsError() {
					c.logger.Warn("batch: item failed to parse",
						"index", i, "error", v.ErrorText())
				}
				results[i] = v
			})
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// submitAndWait runs fn on pool and blocks the calling errgroup goroutine
// until fn completes; if ctx is cancelled first it still waits for fn and
// then returns ctx.Err(), so g.Wait() only returns once every dispatched
// item has actually finished, not merely been scheduled.
func submitAndWait(ctx context.Context, pool *ants.Pool, fn func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	done := make(chan struct{})
	if err := pool.Submit(func() {
		defer close(done)
		fn()
	}); err != nil {
		return fmt.Errorf("batch: submitting task: %w", err)
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		<-done
		return ctx.Err()
	}
}

// EncodeAll renders every element of values concurrently using style,
// preserving input order: result[i] corresponds to values[i]. Encoding a
// Value never fails on its own, so EncodeAll's error return is reserved
// for pool/context failures, not per-item problems.
func EncodeAll(ctx context.Context, values []*json.Value, style json.Whitespace, opts ...Option) ([][]byte, error) {
	c := resolve(opts)
	pool, release, err := c.acquirePool()
	if err != nil {
		return nil, err
	}
	defer release()

	results := make([][]byte, len(values))
	g, gctx := errgroup.WithContext(ctx)
	for i, v := range values {
		i, v := i, v
		g.Go(func() error {
			return submitAndWait(gctx, pool, func() {
				if v == nil {
					return
				}
				w := json.AcquireWriter()
				defer json.ReleaseWriter(w)
				if style == json.Compact {
					w.WriteValue(v)
				} else {
					w.WriteValuePretty(v, style)
				}
				out := make([]byte, w.Len())
				copy(out, w.Bytes())
				results[i] = out
			})
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
