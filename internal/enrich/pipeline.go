package enrich

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Pipeline runs a Stage for every item received on a channel. Each item gets
// its own goroutine as soon as it arrives, so the input does not have to be
// complete before the first result is available.
//
// Pipeline is generic over the input type In and the output type Out.
type Pipeline[In, Out any] struct {
	stage Stage[In, Out]
	limit int
}

// NewPipeline constructs a Pipeline applying stage to every item. Concurrency
// is unbounded until WithLimit is called.
func NewPipeline[In, Out any](stage Stage[In, Out]) *Pipeline[In, Out] {
	return &Pipeline[In, Out]{stage: stage}
}

// WithLimit bounds the number of stage calls in flight. When the bound is
// reached the pipeline stops reading its input until a call finishes, which
// pushes back on the producer. n <= 0 means unbounded.
func (p *Pipeline[In, Out]) WithLimit(n int) *Pipeline[In, Out] {
	p.limit = n
	return p
}

// Process consumes items from in and returns a channel that emits one result
// per item, in completion order rather than input order:
//   - The output channel is closed once in is closed and every started stage
//     call has returned.
//   - When ctx is canceled the pipeline stops reading in, results not yet
//     delivered are dropped and the output channel is closed after the
//     in-flight calls observe the cancellation.
func (p *Pipeline[In, Out]) Process(ctx context.Context, in <-chan In) <-chan Out {
	out := make(chan Out)
	go func() {
		defer close(out)

		var g errgroup.Group
		if p.limit > 0 {
			g.SetLimit(p.limit)
		}

	loop:
		for {
			select {
			case <-ctx.Done():
				break loop
			case item, ok := <-in:
				if !ok {
					break loop
				}
				g.Go(func() error {
					res := p.stage(ctx, item)
					if ctx.Err() != nil {
						return nil
					}
					select {
					case out <- res:
					case <-ctx.Done():
					}
					return nil
				})
			}
		}
		_ = g.Wait() // fan-in barrier: out closes only after every call is done
	}()
	return out
}
