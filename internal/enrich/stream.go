package enrich

import "context"

// Producer pushes values through emit until it is done or emit returns false,
// which happens once the stream's context is canceled. A non-nil return value
// becomes the stream's terminal error.
type Producer[T any] func(ctx context.Context, emit func(T) bool) error

// Stream is a lazily produced sequence of T consumed through a channel. After
// Items is closed, Err reports whether the sequence ended normally.
//
// A consumer that stops reading before Items is closed must cancel the
// context the stream was created with; otherwise the producer blocks.
type Stream[T any] struct {
	items chan T
	done  chan struct{}
	err   error
}

// NewStream starts produce in its own goroutine and returns immediately.
func NewStream[T any](ctx context.Context, produce Producer[T]) *Stream[T] {
	s := &Stream[T]{
		items: make(chan T),
		done:  make(chan struct{}),
	}
	go func() {
		defer close(s.done)
		defer close(s.items)
		s.err = produce(ctx, func(v T) bool {
			select {
			case s.items <- v:
				return true
			case <-ctx.Done():
				return false
			}
		})
	}()
	return s
}

// Items returns the channel of produced values.
func (s *Stream[T]) Items() <-chan T {
	return s.items
}

// Err blocks until the producer has returned and reports its error.
func (s *Stream[T]) Err() error {
	<-s.done
	return s.err
}

// Collect drains the stream. Intended for tests and small result sets.
func (s *Stream[T]) Collect() ([]T, error) {
	var all []T
	for v := range s.items {
		all = append(all, v)
	}
	return all, s.Err()
}
