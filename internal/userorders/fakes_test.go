package userorders

import (
	"context"
	"sync"

	"userorders/internal/models"
)

type fakeUsers map[string]models.User

func (f fakeUsers) FindUserByID(_ context.Context, id string) (models.User, bool, error) {
	u, ok := f[id]
	return u, ok, nil
}

type failingUsers struct{ err error }

func (f failingUsers) FindUserByID(context.Context, string) (models.User, bool, error) {
	return models.User{}, false, f.err
}

// fakeOrders yields the orders registered for a phone. When afterFirst is set
// it waits for it to be closed between the first and the second order.
type fakeOrders struct {
	byPhone    map[string][]models.Order
	err        error
	afterFirst chan struct{}
}

func (f *fakeOrders) OrdersByPhone(ctx context.Context, phone string, yield func(models.Order) error) error {
	for i, o := range f.byPhone[phone] {
		if i == 1 && f.afterFirst != nil {
			select {
			case <-f.afterFirst:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if err := yield(o); err != nil {
			return err
		}
	}
	return f.err
}

type productFunc func(ctx context.Context, code string) ([]models.Product, error)

func (f productFunc) ProductsByCode(ctx context.Context, code string) ([]models.Product, error) {
	return f(ctx, code)
}

func productsFrom(byCode map[string][]models.Product) productFunc {
	return func(_ context.Context, code string) ([]models.Product, error) {
		return byCode[code], nil
	}
}

// syncBuffer is an io.Writer safe for concurrent loggers and readers.
type syncBuffer struct {
	mu  sync.Mutex
	buf []byte
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf = append(b.buf, p...)
	return len(p), nil
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.buf)
}
