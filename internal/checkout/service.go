package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wichananm65/spaceship-store/internal/cart"
	"github.com/wichananm65/spaceship-store/internal/logkey"
	"github.com/wichananm65/spaceship-store/internal/order"
	"github.com/wichananm65/spaceship-store/internal/payment"
)

var ErrEmptyCart = errors.New("cart is empty")

// PaymentDeclinedError reports a charge the gateway refused or could not
// process. Message is safe to show to the customer.
type PaymentDeclinedError struct {
	Message string
}

func (e *PaymentDeclinedError) Error() string {
	return "payment declined: " + e.Message
}

type CartStore interface {
	Items(sess cart.Session) []cart.Item
	Clear(sess cart.Session) error
}

type Orders interface {
	Place(ctx context.Context, o order.Order) (order.Order, error)
	GetByID(ctx context.Context, id int) (order.Order, error)
}

// Customer holds the contact details entered on the checkout form.
type Customer struct {
	Name    string
	Email   string
	Address string
}

func (c Customer) withDefaults() Customer {
	c.Name = orDefault(c.Name, "Unknown")
	c.Email = orDefault(c.Email, "unknown@example.com")
	c.Address = orDefault(c.Address, "Unknown")
	return c
}

type Summary struct {
	Items []cart.Item
	Total decimal.Decimal
}

type Service struct {
	carts   CartStore
	gateway payment.Gateway
	orders  Orders
	now     func() time.Time
}

func NewService(carts CartStore, gateway payment.Gateway, orders Orders) *Service {
	return &Service{
		carts:   carts,
		gateway: gateway,
		orders:  orders,
		now:     time.Now,
	}
}

// Review returns what the customer is about to buy.
func (s *Service) Review(sess cart.Session) (Summary, error) {
	items := s.carts.Items(sess)
	if len(items) == 0 {
		return Summary{}, ErrEmptyCart
	}
	return Summary{Items: items, Total: cart.Total(items)}, nil
}

// PlaceOrder validates the order before charging the cart total, then records
// it. An invalid order is never charged. The cart is only cleared once the
// order is stored; a rejected or declined order leaves it intact.
func (s *Service) PlaceOrder(ctx context.Context, sess cart.Session, customer Customer) (order.Order, error) {
	items := s.carts.Items(sess)
	if len(items) == 0 {
		return order.Order{}, ErrEmptyCart
	}
	customer = customer.withDefaults()
	amount := cart.Total(items)

	now := s.now().UTC()
	draft := order.Order{
		OrderNumber:     order.NumberFor(now),
		OrderDate:       now,
		TotalAmount:     amount,
		CustomerName:    customer.Name,
		CustomerEmail:   customer.Email,
		ShippingAddress: customer.Address,
		Status:          order.StatusConfirmed,
		Items:           snapshot(items),
	}
	if err := order.Validate(draft); err != nil {
		return order.Order{}, err
	}

	res, err := s.gateway.Charge(ctx, amount, payment.Request{
		CustomerName:  customer.Name,
		CustomerEmail: customer.Email,
	})
	if err != nil {
		slog.Warn("payment gateway error", slog.String(logkey.Error, err.Error()))
		return order.Order{}, &PaymentDeclinedError{Message: "The payment could not be processed."}
	}
	if !res.Success {
		msg := res.ErrorMessage
		if msg == "" {
			msg = "The payment was declined."
		}
		return order.Order{}, &PaymentDeclinedError{Message: msg}
	}

	paidAt := s.now().UTC()
	draft.PaymentTransactionID = res.TransactionID
	draft.PaymentDate = &paidAt
	placed, err := s.orders.Place(ctx, draft)
	if err != nil {
		slog.Error("order not saved after successful payment",
			slog.String("transaction_id", res.TransactionID),
			slog.String(logkey.Amount, amount.StringFixed(2)),
			slog.String(logkey.Error, err.Error()))
		return order.Order{}, fmt.Errorf("failed to save order: %w", err)
	}

	if err := s.carts.Clear(sess); err != nil {
		return order.Order{}, err
	}
	slog.Info("order placed",
		slog.Int(logkey.OrderID, placed.ID),
		slog.String("order_number", placed.OrderNumber),
		slog.String(logkey.Amount, amount.StringFixed(2)))
	return placed, nil
}

func (s *Service) Confirmation(ctx context.Context, id int) (order.Order, error) {
	return s.orders.GetByID(ctx, id)
}

func snapshot(items []cart.Item) []order.Item {
	out := make([]order.Item, len(items))
	for i, it := range items {
		out[i] = order.Item{
			ProductID:   it.ProductID,
			ProductName: it.Name,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
			TotalPrice:  it.Subtotal(),
		}
	}
	return out
}

// orDefault substitutes fallback for blank input and keeps anything else as
// entered.
func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
