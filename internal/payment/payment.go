package payment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wichananm65/spaceship-store/internal/logkey"
)

type Request struct {
	CustomerName  string
	CustomerEmail string
}

// Result is the outcome of a charge. TransactionID is set on success,
// ErrorMessage on failure.
type Result struct {
	Success       bool
	TransactionID string
	ErrorMessage  string
}

// Gateway charges a customer. A returned error means the charge could not be
// attempted; a declined charge is reported through Result.
type Gateway interface {
	Charge(ctx context.Context, amount decimal.Decimal, req Request) (Result, error)
}

const (
	ProviderMock    = "mock"
	ProviderStripe  = "stripe"
	ProviderDecline = "decline"
)

// New returns the gateway for provider. There is no live card processor yet,
// so "stripe" is served by the mock gateway.
func New(provider string) (Gateway, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", ProviderMock:
		return NewMockGateway(), nil
	case ProviderStripe:
		slog.Warn("stripe payments are not available, using the mock gateway", slog.String(logkey.Provider, provider))
		return NewMockGateway(), nil
	case ProviderDecline:
		return DecliningGateway{Reason: "Card declined by issuer."}, nil
	default:
		return nil, fmt.Errorf("unknown payment provider %q", provider)
	}
}

// MockGateway approves every charge.
type MockGateway struct {
	newID func() string
}

func NewMockGateway() *MockGateway {
	return &MockGateway{newID: func() string {
		return strings.ReplaceAll(uuid.NewString(), "-", "")
	}}
}

func (g *MockGateway) Charge(ctx context.Context, amount decimal.Decimal, req Request) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	slog.Info("mock payment processed",
		slog.String("customer", req.CustomerName),
		slog.String(logkey.Amount, amount.StringFixed(2)))
	return Result{Success: true, TransactionID: g.newID()}, nil
}

// DecliningGateway rejects every charge with Reason. It is useful for
// exercising the payment failure path end to end.
type DecliningGateway struct {
	Reason string
}

func (g DecliningGateway) Charge(ctx context.Context, amount decimal.Decimal, req Request) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	return Result{Success: false, ErrorMessage: g.Reason}, nil
}
