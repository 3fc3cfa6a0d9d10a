package userorders

import (
	"context"
	"errors"
	"time"

	"userorders/internal/enrich"
	"userorders/internal/metrics"
	"userorders/internal/models"
)

// enrichOrder looks up the products of one order, bounded by the product
// timeout, and reduces them to a single record. It never fails: a timeout or
// lookup error produces a degraded record.
func (s *Service) enrichOrder(ctx context.Context, uo userAndOrder) models.UserOrder {
	code := uo.order.ProductCode
	start := time.Now()

	products, err := enrich.WithTimeoutFallback[[]models.Product](ctx, s.clock, s.timeout, nil,
		func(ctx context.Context) ([]models.Product, error) {
			return s.products.ProductsByCode(ctx, code)
		})
	s.metrics.ObserveLookup(start)

	switch {
	case err == nil:
		s.log.Printf(ctx, "Received %d products for order %s code %s", len(products), uo.order.OrderNumber, code)
	case errors.Is(err, enrich.ErrTimeout):
		s.metrics.RecordsDegraded.WithLabelValues(metrics.ReasonTimeout).Inc()
		s.log.Printf(ctx, "Product lookup for order %s code %s timed out: %v", uo.order.OrderNumber, code, err)
	case ctx.Err() != nil:
		// request is going away, the record will not be delivered
	default:
		s.metrics.RecordsDegraded.WithLabelValues(metrics.ReasonError).Inc()
		s.log.Printf(ctx, "Product lookup for order %s code %s failed: %v", uo.order.OrderNumber, code, err)
	}

	rec := models.NewUserOrder(uo.user, uo.order, BestProduct(products))
	s.log.Printf(ctx, "Built record for order %s with product %q", rec.OrderNumber, rec.ProductID)
	return rec
}
