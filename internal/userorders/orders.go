package userorders

import (
	"context"
	"fmt"

	"userorders/internal/models"
)

// userAndOrder is the unit flowing from the order stream to enrichment.
type userAndOrder struct {
	user  models.User
	order models.Order
}

// streamOrders resolves the user and then streams the user's orders, each
// paired with that user. The returned channel is closed when the order source
// is exhausted, fails or ctx is canceled. Failures are reported by canceling
// ctx through fail with the cause.
func (s *Service) streamOrders(ctx context.Context, fail context.CancelCauseFunc, userID string) <-chan userAndOrder {
	out := make(chan userAndOrder)
	go func() {
		defer close(out)

		user, found, err := s.users.FindUserByID(ctx, userID)
		if err != nil {
			fail(fmt.Errorf("find user %s: %w", userID, err))
			return
		}
		if !found {
			s.log.Printf(ctx, "User %s not found, nothing to aggregate", userID)
			return
		}
		s.log.Printf(ctx, "Resolved user %s, fetching orders for phone %s", user.ID, user.Phone)

		err = s.orders.OrdersByPhone(ctx, user.Phone, func(o models.Order) error {
			s.log.Printf(ctx, "Fetched order %s with product code %s", o.OrderNumber, o.ProductCode)
			select {
			case out <- userAndOrder{user: user, order: o}:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		if err != nil && ctx.Err() == nil {
			fail(fmt.Errorf("orders for phone %s: %w", user.Phone, err))
		}
	}()
	return out
}
