package order

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrNotFound       = errors.New("order not found")
	ErrUnknownProduct = errors.New("order references a product that no longer exists")
)

type Repository interface {
	// Create stores the order with its items and returns it with ids set.
	Create(ctx context.Context, o Order) (Order, error)
	GetByID(ctx context.Context, id int) (Order, error)
	// ListByIDs returns the matching orders in the order of ids. Unknown ids
	// are skipped.
	ListByIDs(ctx context.Context, ids []int) ([]Order, error)
}

// InMemoryRepository keeps orders in process memory.
type InMemoryRepository struct {
	mu         sync.RWMutex
	storage    map[int]Order
	nextID     int
	nextItemID int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		storage:    make(map[int]Order),
		nextID:     1,
		nextItemID: 1,
	}
}

func (r *InMemoryRepository) Create(_ context.Context, o Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o.ID = r.nextID
	r.nextID++
	items := make([]Item, len(o.Items))
	for i, it := range o.Items {
		it.ID = r.nextItemID
		it.OrderID = o.ID
		r.nextItemID++
		items[i] = it
	}
	o.Items = items
	r.storage[o.ID] = o
	return clone(o), nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id int) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.storage[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	return clone(o), nil
}

func (r *InMemoryRepository) ListByIDs(_ context.Context, ids []int) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Order, 0, len(ids))
	for _, id := range ids {
		if o, ok := r.storage[id]; ok {
			out = append(out, clone(o))
		}
	}
	return out, nil
}

// ReferencesProduct reports whether any stored order item points at the
// product. It stands in for the order_items foreign key in memory mode.
func (r *InMemoryRepository) ReferencesProduct(productID int) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.storage {
		for _, it := range o.Items {
			if it.ProductID == productID {
				return true
			}
		}
	}
	return false
}

func clone(o Order) Order {
	o.Items = append([]Item(nil), o.Items...)
	return o
}
