package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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

func newTestStore() *Store {
	return NewStore(finder{
		1: {ID: 1, Name: "Quantum Flux Drive MK-VII", Price: decimal.RequireFromString("10"), ImageURL: "qfd.png"},
		2: {ID: 2, Name: "Plasma Ion Thruster Array", Price: decimal.RequireFromString("2.50")},
	})
}

func TestStore_AddToEmptyCart(t *testing.T) {
	s := newTestStore()
	sess := mapSession{}

	require.NoError(t, s.Add(context.Background(), sess, 1, 2))

	assert.Equal(t, 2, s.Count(sess))
	assert.Equal(t, "20", s.Total(sess).String())
	items := s.Items(sess)
	require.Len(t, items, 1)
	assert.Equal(t, "Quantum Flux Drive MK-VII", items[0].Name)
	assert.Equal(t, "qfd.png", items[0].ImageURL)
}

func TestStore_MergeAdd(t *testing.T) {
	s := newTestStore()
	sess := mapSession{}
	require.NoError(t, s.Add(context.Background(), sess, 1, 2))
	require.NoError(t, s.Add(context.Background(), sess, 1, 3))

	items := s.Items(sess)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, "50", s.Total(sess).String())
}

func TestStore_AddClampsNonPositive(t *testing.T) {
	s := newTestStore()
	sess := mapSession{}
	require.NoError(t, s.Add(context.Background(), sess, 2, 0))
	require.NoError(t, s.Add(context.Background(), sess, 2, -5))

	assert.Equal(t, 2, s.Count(sess))
}

func TestStore_UpdateToZeroEmptiesCart(t *testing.T) {
	s := newTestStore()
	sess := mapSession{}
	require.NoError(t, s.Add(context.Background(), sess, 1, 5))

	require.NoError(t, s.UpdateQuantity(sess, 1, 0))
	assert.Empty(t, s.Items(sess))
}

func TestStore_UpdateMissingIsNoop(t *testing.T) {
	s := newTestStore()
	sess := mapSession{}
	require.NoError(t, s.Add(context.Background(), sess, 1, 1))

	require.NoError(t, s.UpdateQuantity(sess, 2, 4))
	items := s.Items(sess)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].ProductID)
}

func TestStore_AddUnknownProduct(t *testing.T) {
	s := newTestStore()
	sess := mapSession{}
	require.NoError(t, s.Add(context.Background(), sess, 1, 1))
	before := sess[SessionKey]

	err := s.Add(context.Background(), sess, 404, 1)
	assert.True(t, errors.Is(err, product.ErrNotFound))
	assert.Equal(t, before, sess[SessionKey], "failed add must not touch the cart")
}

func TestStore_RemoveAndClearAreIdempotent(t *testing.T) {
	s := newTestStore()
	sess := mapSession{}
	require.NoError(t, s.Add(context.Background(), sess, 1, 1))
	require.NoError(t, s.Add(context.Background(), sess, 2, 1))

	require.NoError(t, s.Remove(sess, 1))
	require.NoError(t, s.Remove(sess, 1))
	assert.Equal(t, 1, s.Count(sess))

	require.NoError(t, s.Clear(sess))
	assert.Empty(t, s.Items(sess))
	require.NoError(t, s.Clear(sess))
	assert.Empty(t, s.Items(sess))
	assert.Equal(t, 0, s.Count(sess))
}

func TestStore_CorruptSessionValue(t *testing.T) {
	s := newTestStore()

	for _, v := range []interface{}{"{{{", 42, nil, "null"} {
		sess := mapSession{SessionKey: v}
		assert.Empty(t, s.Items(sess))
		assert.Equal(t, 0, s.Count(sess))
	}

	sess := mapSession{SessionKey: "garbage"}
	require.NoError(t, s.Add(context.Background(), sess, 2, 1))
	assert.Equal(t, 1, s.Count(sess), "corrupt cart is replaced on the next write")
}
