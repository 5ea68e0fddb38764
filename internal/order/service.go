package order

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"
)

var ErrInvalidOrder = errors.New("invalid order")

// Service provides business logic for orders.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// Place validates and persists a fully built order.
func (s *Service) Place(ctx context.Context, o Order) (Order, error) {
	if err := Validate(o); err != nil {
		return Order{}, err
	}
	return s.repo.Create(ctx, o)
}

func (s *Service) GetByID(ctx context.Context, id int) (Order, error) {
	if id <= 0 {
		return Order{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByIDs(ctx context.Context, ids []int) ([]Order, error) {
	if len(ids) == 0 {
		return []Order{}, nil
	}
	return s.repo.ListByIDs(ctx, ids)
}

// Validate checks the column limits and item quantities Place enforces, so
// callers can reject an order before any side effects.
func Validate(o Order) error {
	switch {
	case len(o.Items) == 0:
		return fmt.Errorf("%w: no items", ErrInvalidOrder)
	case o.OrderNumber == "" || utf8.RuneCountInString(o.OrderNumber) > 50:
		return fmt.Errorf("%w: order number", ErrInvalidOrder)
	case utf8.RuneCountInString(o.CustomerName) > 200:
		return fmt.Errorf("%w: customer name is longer than 200 characters", ErrInvalidOrder)
	case utf8.RuneCountInString(o.CustomerEmail) > 200:
		return fmt.Errorf("%w: customer email is longer than 200 characters", ErrInvalidOrder)
	case utf8.RuneCountInString(o.ShippingAddress) > 500:
		return fmt.Errorf("%w: shipping address is longer than 500 characters", ErrInvalidOrder)
	}
	for _, it := range o.Items {
		if it.Quantity <= 0 {
			return fmt.Errorf("%w: item %d has quantity %d", ErrInvalidOrder, it.ProductID, it.Quantity)
		}
	}
	return nil
}
