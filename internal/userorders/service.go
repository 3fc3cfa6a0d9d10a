// Package userorders joins a user, the user's orders and the best product of
// each order into a stream of models.UserOrder records.
package userorders

import (
	"context"
	"errors"
	"time"

	"github.com/zoobzio/clockz"

	"userorders/internal/correlation"
	"userorders/internal/enrich"
	"userorders/internal/metrics"
	"userorders/internal/models"
)

// DefaultProductTimeout bounds every product lookup unless overridden.
const DefaultProductTimeout = 5 * time.Second

// Service is safe for concurrent use; it keeps no per-request state.
type Service struct {
	users    UserStore
	orders   OrderSource
	products ProductSource

	log         *correlation.Logger
	metrics     *metrics.Registry
	clock       clockz.Clock
	timeout     time.Duration
	maxInFlight int
}

type Option func(*Service)

func WithLogger(l *correlation.Logger) Option { return func(s *Service) { s.log = l } }

func WithMetrics(r *metrics.Registry) Option { return func(s *Service) { s.metrics = r } }

// WithClock replaces the clock measuring the product timeout.
func WithClock(c clockz.Clock) Option { return func(s *Service) { s.clock = c } }

func WithProductTimeout(d time.Duration) Option { return func(s *Service) { s.timeout = d } }

// WithMaxInFlight bounds concurrent enrichments per request. n <= 0 is unbounded.
func WithMaxInFlight(n int) Option { return func(s *Service) { s.maxInFlight = n } }

func NewService(users UserStore, orders OrderSource, products ProductSource, opts ...Option) *Service {
	s := &Service{
		users:    users,
		orders:   orders,
		products: products,
		log:      correlation.DefaultLogger(),
		metrics:  metrics.NewRegistry(),
		clock:    clockz.RealClock,
		timeout:  DefaultProductTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OrdersByUserID streams one record per order of the user identified by
// userID. Records are emitted in the order their product lookups finish.
//
// requestID becomes the correlation id of every log line produced while
// serving the call; an empty value is replaced with a generated id. An unknown
// user yields an empty stream. Failing to look up the user or the orders ends
// the stream with an error; product lookup problems never do.
//
// Canceling ctx cancels the order stream and every product lookup in flight.
func (s *Service) OrdersByUserID(ctx context.Context, userID, requestID string) *enrich.Stream[models.UserOrder] {
	ctx = correlation.With(ctx, correlation.Ensure(requestID))
	return enrich.NewStream[models.UserOrder](ctx, func(ctx context.Context, emit func(models.UserOrder) bool) error {
		ctx, cancel := context.WithCancelCause(ctx)
		defer cancel(nil)

		pairs := s.streamOrders(ctx, cancel, userID)
		pipeline := enrich.NewPipeline[userAndOrder, models.UserOrder](s.enrichOrder).WithLimit(s.maxInFlight)

		emitted := 0
		for rec := range pipeline.Process(ctx, pairs) {
			if !emit(rec) {
				break
			}
			emitted++
			s.metrics.RecordsEmitted.Inc()
		}

		err := context.Cause(ctx)
		s.finish(ctx, userID, emitted, err)
		return err
	})
}

func (s *Service) finish(ctx context.Context, userID string, emitted int, err error) {
	switch {
	case err == nil && emitted == 0:
		s.metrics.Requests.WithLabelValues(metrics.OutcomeEmpty).Inc()
	case err == nil:
		s.metrics.Requests.WithLabelValues(metrics.OutcomeOK).Inc()
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		s.metrics.Requests.WithLabelValues(metrics.OutcomeCanceled).Inc()
		s.log.Printf(ctx, "Request for user %s canceled after %d records", userID, emitted)
		return
	default:
		s.metrics.Requests.WithLabelValues(metrics.OutcomeError).Inc()
		s.log.Printf(ctx, "Request for user %s failed after %d records: %v", userID, emitted, err)
		return
	}
	s.log.Printf(ctx, "Request for user %s completed with %d records", userID, emitted)
}
