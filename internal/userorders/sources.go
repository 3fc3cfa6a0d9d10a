package userorders

import (
	"context"

	"userorders/internal/models"
)

// UserStore resolves users by id. A missing user is reported as found=false
// with a nil error.
type UserStore interface {
	FindUserByID(ctx context.Context, id string) (user models.User, found bool, err error)
}

// OrderSource streams the orders placed with a phone number. yield is called
// once per order as soon as it is decoded; a non-nil error from yield stops
// the stream and is returned.
type OrderSource interface {
	OrdersByPhone(ctx context.Context, phone string, yield func(models.Order) error) error
}

// ProductSource returns every product candidate for a product code.
type ProductSource interface {
	ProductsByCode(ctx context.Context, code string) ([]models.Product, error)
}
