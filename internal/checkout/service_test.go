package checkout

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wichananm65/spaceship-store/internal/cart"
	"github.com/wichananm65/spaceship-store/internal/order"
	"github.com/wichananm65/spaceship-store/internal/payment"
	"github.com/wichananm65/spaceship-store/internal/product"
)

type mapSession map[string]interface{}

func (m mapSession) Get(key string) interface{}      { return m[key] }
func (m mapSession) Set(key string, val interface{}) { m[key] = val }

type finder map[int]product.Product

func (f finder) GetByID(_ context.Context, id int) (product.Product, error) {
	p, ok := f[id]
	if !ok {
		return product.Product{}, product.ErrNotFound
	}
	return p, nil
}

// recordingGateway answers with result or err and remembers every charge.
type recordingGateway struct {
	result  payment.Result
	err     error
	calls   int
	amount  decimal.Decimal
	request payment.Request
}

func (g *recordingGateway) Charge(_ context.Context, amount decimal.Decimal, req payment.Request) (payment.Result, error) {
	g.calls++
	g.amount = amount
	g.request = req
	return g.result, g.err
}

type fixture struct {
	carts   *cart.Store
	orders  *order.InMemoryRepository
	gateway *recordingGateway
	service *Service
}

func newFixture(result payment.Result) *fixture {
	f := &fixture{
		carts: cart.NewStore(finder{
			1: {ID: 1, Name: "Quantum Flux Drive MK-VII", Price: decimal.RequireFromString("15000.00")},
			2: {ID: 2, Name: "Plasma Ion Thruster Array", Price: decimal.RequireFromString("8500.50")},
		}),
		orders:  order.NewInMemoryRepository(),
		gateway: &recordingGateway{result: result},
	}
	f.service = NewService(f.carts, f.gateway, order.NewService(f.orders))
	f.service.now = func() time.Time { return time.Date(2025, 7, 1, 12, 30, 45, 0, time.UTC) }
	return f
}

func (f *fixture) fill(t *testing.T, sess cart.Session) {
	t.Helper()
	require.NoError(t, f.carts.Add(context.Background(), sess, 1, 2))
	require.NoError(t, f.carts.Add(context.Background(), sess, 2, 1))
}

func TestPlaceOrder_Success(t *testing.T) {
	f := newFixture(payment.Result{Success: true, TransactionID: "tx-1"})
	sess := mapSession{}
	f.fill(t, sess)

	placed, err := f.service.PlaceOrder(context.Background(), sess, Customer{Name: "Jean-Luc", Email: "jl@enterprise.example", Address: "Deck 8"})
	require.NoError(t, err)

	assert.Equal(t, 1, f.gateway.calls)
	assert.Equal(t, "38500.5", f.gateway.amount.String())
	assert.Equal(t, "Jean-Luc", f.gateway.request.CustomerName)

	assert.Equal(t, "ORD-20250701123045", placed.OrderNumber)
	assert.Equal(t, order.StatusConfirmed, placed.Status)
	assert.Equal(t, "tx-1", placed.PaymentTransactionID)
	require.NotNil(t, placed.PaymentDate)
	require.Len(t, placed.Items, 2)
	assert.Equal(t, "Quantum Flux Drive MK-VII", placed.Items[0].ProductName)
	assert.Equal(t, "30000", placed.Items[0].TotalPrice.String())
	assert.True(t, placed.TotalAmount.Equal(decimal.RequireFromString("38500.50")))

	stored, err := f.orders.GetByID(context.Background(), placed.ID)
	require.NoError(t, err)
	assert.Equal(t, placed.OrderNumber, stored.OrderNumber)
	assert.Empty(t, f.carts.Items(sess))
}

func TestPlaceOrder_SnapshotIgnoresLaterCartChanges(t *testing.T) {
	f := newFixture(payment.Result{Success: true, TransactionID: "tx-2"})
	sess := mapSession{}
	f.fill(t, sess)

	placed, err := f.service.PlaceOrder(context.Background(), sess, Customer{})
	require.NoError(t, err)

	require.NoError(t, f.carts.Add(context.Background(), sess, 1, 9))
	stored, err := f.orders.GetByID(context.Background(), placed.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Items[0].Quantity)
}

func TestPlaceOrder_BlankCustomerUsesDefaults(t *testing.T) {
	f := newFixture(payment.Result{Success: true, TransactionID: "tx-3"})
	sess := mapSession{}
	f.fill(t, sess)

	placed, err := f.service.PlaceOrder(context.Background(), sess, Customer{Name: "   ", Email: "", Address: "\t"})
	require.NoError(t, err)
	assert.Equal(t, "Unknown", placed.CustomerName)
	assert.Equal(t, "unknown@example.com", placed.CustomerEmail)
	assert.Equal(t, "Unknown", placed.ShippingAddress)
	assert.Equal(t, "unknown@example.com", f.gateway.request.CustomerEmail)
}

func TestPlaceOrder_CustomerFieldsKeptAsEntered(t *testing.T) {
	f := newFixture(payment.Result{Success: true, TransactionID: "tx-4"})
	sess := mapSession{}
	f.fill(t, sess)

	placed, err := f.service.PlaceOrder(context.Background(), sess, Customer{Name: "  Ripley ", Email: "ripley@nostromo.example", Address: " Bay 2"})
	require.NoError(t, err)
	assert.Equal(t, "  Ripley ", placed.CustomerName)
	assert.Equal(t, " Bay 2", placed.ShippingAddress)
	assert.Equal(t, "  Ripley ", f.gateway.request.CustomerName)
}

func TestPlaceOrder_InvalidOrderNotCharged(t *testing.T) {
	cases := map[string]Customer{
		"long name":    {Name: strings.Repeat("x", 201)},
		"long email":   {Email: strings.Repeat("e", 201)},
		"long address": {Address: strings.Repeat("a", 501)},
	}
	for name, customer := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(payment.Result{Success: true, TransactionID: "tx-5"})
			sess := mapSession{}
			f.fill(t, sess)

			_, err := f.service.PlaceOrder(context.Background(), sess, customer)
			assert.ErrorIs(t, err, order.ErrInvalidOrder)
			assert.Zero(t, f.gateway.calls)
			assert.Len(t, f.carts.Items(sess), 2)

			_, err = f.orders.GetByID(context.Background(), 1)
			assert.ErrorIs(t, err, order.ErrNotFound)
		})
	}
}

func TestPlaceOrder_DeclinedKeepsCart(t *testing.T) {
	f := newFixture(payment.Result{Success: false, ErrorMessage: "Insufficient funds."})
	sess := mapSession{}
	f.fill(t, sess)
	before := f.carts.Items(sess)

	_, err := f.service.PlaceOrder(context.Background(), sess, Customer{Name: "Han"})

	var declined *PaymentDeclinedError
	require.True(t, errors.As(err, &declined))
	assert.Equal(t, "Insufficient funds.", declined.Message)
	assert.Equal(t, before, f.carts.Items(sess))

	_, err = f.orders.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, order.ErrNotFound)
}

func TestPlaceOrder_GatewayErrorIsDecline(t *testing.T) {
	f := newFixture(payment.Result{})
	f.gateway.err = errors.New("dial tcp: timeout")
	sess := mapSession{}
	f.fill(t, sess)

	_, err := f.service.PlaceOrder(context.Background(), sess, Customer{})
	var declined *PaymentDeclinedError
	require.True(t, errors.As(err, &declined))
	assert.Len(t, f.carts.Items(sess), 2)
}

func TestPlaceOrder_EmptyCartSkipsGateway(t *testing.T) {
	f := newFixture(payment.Result{Success: true})

	_, err := f.service.PlaceOrder(context.Background(), mapSession{}, Customer{})
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Zero(t, f.gateway.calls)

	_, err = f.service.Review(mapSession{})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestReview_Totals(t *testing.T) {
	f := newFixture(payment.Result{})
	sess := mapSession{}
	f.fill(t, sess)

	summary, err := f.service.Review(sess)
	require.NoError(t, err)
	assert.Len(t, summary.Items, 2)
	assert.Equal(t, "38500.50", summary.Total.StringFixed(2))
	assert.Zero(t, f.gateway.calls)
}

func TestConfirmation_NotFound(t *testing.T) {
	f := newFixture(payment.Result{})
	_, err := f.service.Confirmation(context.Background(), 404)
	assert.ErrorIs(t, err, order.ErrNotFound)
}
