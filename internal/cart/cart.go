package cart

import (
	"github.com/shopspring/decimal"
	"github.com/wichananm65/spaceship-store/internal/product"
)

// Item is one line of a session cart. Name, UnitPrice and ImageURL are
// copied from the product when the line is first added.
type Item struct {
	ProductID int             `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	ImageURL  string          `json:"imageUrl"`
}

func (i Item) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// NewItem builds a line for p with the clamped quantity.
func NewItem(p product.Product, qty int) Item {
	return Item{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Quantity:  ClampQuantity(qty),
		ImageURL:  p.ImageURL,
	}
}

// ClampQuantity raises non-positive add quantities to 1.
func ClampQuantity(qty int) int {
	return max(1, qty)
}

// The functions below never modify their input; each returns a new list.

// IndexOf returns the position of productID in items, or -1.
func IndexOf(items []Item, productID int) int {
	for i, it := range items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}

// Merge adds item to the list. An existing line for the same product has the
// clamped quantity added to it; otherwise item is appended with a clamped
// quantity.
func Merge(items []Item, item Item) []Item {
	qty := ClampQuantity(item.Quantity)
	out := make([]Item, 0, len(items)+1)
	found := false
	for _, it := range items {
		if it.ProductID == item.ProductID {
			it.Quantity += qty
			found = true
		}
		out = append(out, it)
	}
	if !found {
		item.Quantity = qty
		out = append(out, item)
	}
	return out
}

// SetQuantity replaces the quantity of an existing line. qty <= 0 removes
// the line; an absent product leaves the list unchanged.
func SetQuantity(items []Item, productID, qty int) []Item {
	if qty <= 0 {
		return Without(items, productID)
	}
	out := make([]Item, len(items))
	for i, it := range items {
		if it.ProductID == productID {
			it.Quantity = qty
		}
		out[i] = it
	}
	return out
}

// Without drops the line for productID, keeping the order of the rest.
func Without(items []Item, productID int) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.ProductID != productID {
			out = append(out, it)
		}
	}
	return out
}

func Count(items []Item) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

func Total(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}
