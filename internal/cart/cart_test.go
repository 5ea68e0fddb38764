package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func item(id int, price string, qty int) Item {
	return Item{ProductID: id, Name: "part", UnitPrice: decimal.RequireFromString(price), Quantity: qty}
}

func TestClampQuantity(t *testing.T) {
	for _, q := range []int{-10, -1, 0} {
		assert.Equal(t, 1, ClampQuantity(q), "qty %d", q)
	}
	assert.Equal(t, 7, ClampQuantity(7))
}

func TestMerge_AppendsWithClampedQuantity(t *testing.T) {
	for _, q := range []int{0, -3} {
		got := Merge(nil, item(1, "10", q))
		assert.Len(t, got, 1)
		assert.Equal(t, 1, got[0].Quantity)
	}
}

func TestMerge_AddsToExistingLine(t *testing.T) {
	items := []Item{item(1, "10", 2), item(2, "5", 1)}

	got := Merge(items, item(1, "10", 3))
	assert.Len(t, got, 2)
	assert.Equal(t, 5, got[0].Quantity)
	assert.Equal(t, "50", Total(got[:1]).String())

	got = Merge(items, item(1, "10", 0))
	assert.Equal(t, 3, got[0].Quantity, "non-positive add merges as +1")

	assert.Equal(t, 2, items[0].Quantity, "input list must not be modified")
}

func TestSetQuantity(t *testing.T) {
	items := []Item{item(1, "10", 5), item(2, "5", 1)}

	got := SetQuantity(items, 1, 2)
	assert.Equal(t, 2, got[0].Quantity, "update replaces, not adds")

	assert.Equal(t, []Item{items[1]}, SetQuantity(items, 1, 0))
	assert.Equal(t, []Item{items[1]}, SetQuantity(items, 1, -4))
	assert.Equal(t, items, SetQuantity(items, 99, 3), "absent product is a no-op")
	assert.Equal(t, 5, items[0].Quantity)
}

func TestWithout_KeepsOrder(t *testing.T) {
	items := []Item{item(1, "1", 1), item(2, "2", 1), item(3, "3", 1)}

	assert.Equal(t, []Item{items[0], items[2]}, Without(items, 2))
	assert.Equal(t, items, Without(items, 42))
}

func TestAddThenRemove_RestoresCart(t *testing.T) {
	before := []Item{item(1, "1", 2), item(3, "3", 1)}
	after := Without(Merge(before, item(2, "2", 4)), 2)
	assert.Equal(t, before, after)
}

func TestCountAndTotal(t *testing.T) {
	assert.Equal(t, 0, Count(nil))
	assert.True(t, Total(nil).IsZero())

	items := []Item{item(1, "2499999.99", 2), item(2, "0.10", 3)}
	assert.Equal(t, 5, Count(items))
	assert.Equal(t, "5000000.28", Total(items).StringFixed(2))
	assert.Equal(t, "0.3", items[1].Subtotal().String())
}
