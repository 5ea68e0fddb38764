package cart

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/wichananm65/spaceship-store/internal/product"
)

// SessionKey is the session value holding the serialized cart.
const SessionKey = "CART_V1"

// Session is the per-request key/value handle the cart is stored in.
// *session.Session from fiber satisfies it.
type Session interface {
	Get(key string) interface{}
	Set(key string, val interface{})
}

type ProductFinder interface {
	GetByID(ctx context.Context, id int) (product.Product, error)
}

// Store reads the whole cart from the session, transforms it and writes the
// whole cart back on every mutation.
type Store struct {
	products ProductFinder
}

func NewStore(products ProductFinder) *Store {
	return &Store{products: products}
}

func (s *Store) Items(sess Session) []Item {
	raw, _ := sess.Get(SessionKey).(string)
	return Decode(raw)
}

// Add puts qty (clamped to at least 1) of productID into the cart. A product
// missing from the catalog yields product.ErrNotFound and leaves the cart
// as it was.
func (s *Store) Add(ctx context.Context, sess Session, productID, qty int) error {
	items := s.Items(sess)
	if i := IndexOf(items, productID); i >= 0 {
		return s.save(sess, Merge(items, items[i].withQuantity(qty)))
	}

	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	return s.save(sess, Merge(items, NewItem(p, qty)))
}

func (s *Store) UpdateQuantity(sess Session, productID, qty int) error {
	return s.save(sess, SetQuantity(s.Items(sess), productID, qty))
}

func (s *Store) Remove(sess Session, productID int) error {
	return s.save(sess, Without(s.Items(sess), productID))
}

func (s *Store) Clear(sess Session) error {
	return s.save(sess, []Item{})
}

func (s *Store) Count(sess Session) int {
	return Count(s.Items(sess))
}

func (s *Store) Total(sess Session) decimal.Decimal {
	return Total(s.Items(sess))
}

func (s *Store) save(sess Session, items []Item) error {
	raw, err := Encode(items)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	sess.Set(SessionKey, raw)
	return nil
}

func (i Item) withQuantity(qty int) Item {
	i.Quantity = qty
	return i
}
