package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Only active products are visible to shoppers.
type Product struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	ImageURL     string          `json:"imageUrl"`
	CategoryID   int             `json:"categoryId"`
	CategoryName string          `json:"categoryName,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	IsActive     bool            `json:"isActive"`
}

func (p Product) InStock() bool {
	return p.Stock > 0
}

// Filter narrows a catalog search. A blank Query and a nil CategoryID each
// disable their filter.
type Filter struct {
	Query      string
	CategoryID *int
}
