package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "Pending"
	StatusConfirmed Status = "Confirmed"
	StatusShipped   Status = "Shipped"
	StatusDelivered Status = "Delivered"
	StatusCancelled Status = "Cancelled"
)

// Order is a placed purchase. Items are snapshots of the cart at checkout
// time and do not follow later catalog changes.
type Order struct {
	ID                   int             `json:"id"`
	OrderNumber          string          `json:"orderNumber"`
	OrderDate            time.Time       `json:"orderDate"`
	TotalAmount          decimal.Decimal `json:"totalAmount"`
	CustomerName         string          `json:"customerName"`
	CustomerEmail        string          `json:"customerEmail"`
	ShippingAddress      string          `json:"shippingAddress"`
	Status               Status          `json:"status"`
	PaymentTransactionID string          `json:"paymentTransactionId,omitempty"`
	PaymentDate          *time.Time      `json:"paymentDate,omitempty"`
	Items                []Item          `json:"items"`
}

type Item struct {
	ID          int             `json:"id"`
	OrderID     int             `json:"orderId"`
	ProductID   int             `json:"productId"`
	ProductName string          `json:"productName"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

// NumberFor formats the human facing order number for t.
func NumberFor(t time.Time) string {
	return "ORD-" + t.UTC().Format("20060102150405")
}

func (o Order) ItemCount() int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}
