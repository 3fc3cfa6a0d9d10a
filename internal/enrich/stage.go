// Package enrich provides the generic streaming building blocks used by the
// aggregation service: a concurrent map-then-merge pipeline over a channel, a
// timeout-with-fallback combinator and a channel-backed result stream.
package enrich

import (
	"context"
)

// Stage turns one input item into exactly one output item. A stage has no
// error return: failures must be converted into output data by the stage
// itself so that one broken item never stops its siblings.
//
// The context carries cancellation and request-scoped values such as the
// correlation id; stages must not stash it anywhere that outlives the call.
//
// Example:
//
//	func productName(ctx context.Context, p models.Product) string { return p.ProductName }
type Stage[In, Out any] func(ctx context.Context, in In) Out
