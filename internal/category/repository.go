package category

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"
)

var (
	ErrNotFound    = errors.New("category not found")
	ErrHasProducts = errors.New("category still has products")
)

// Repository provides access to category rows.
type Repository interface {
	List(ctx context.Context) ([]Category, error)
	GetByID(ctx context.Context, id int) (Category, error)
	Create(ctx context.Context, c Category) (Category, error)
	Delete(ctx context.Context, id int) error
}

// InMemoryRepository keeps categories in a slice. InUse lets callers model the
// products foreign key; Delete refuses ids for which it returns true.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Category
	nextID  int

	InUse func(id int) bool
}

func NewInMemoryRepository(seed []Category) *InMemoryRepository {
	r := &InMemoryRepository{
		storage: make([]Category, 0, len(seed)),
		nextID:  1,
	}
	for _, c := range seed {
		r.storage = append(r.storage, c)
		if c.ID >= r.nextID {
			r.nextID = c.ID + 1
		}
	}
	return r
}

func (r *InMemoryRepository) List(_ context.Context) ([]Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Category, len(r.storage))
	copy(out, r.storage)
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id int) (Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.storage {
		if c.ID == id {
			return c, nil
		}
	}
	return Category{}, ErrNotFound
}

func (r *InMemoryRepository) Create(_ context.Context, c Category) (Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = r.nextID
	r.nextID++
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	r.storage = append(r.storage, c)
	return c, nil
}

func (r *InMemoryRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID != id {
			continue
		}
		if r.InUse != nil && r.InUse(id) {
			return ErrHasProducts
		}
		r.storage = append(r.storage[:i], r.storage[i+1:]...)
		return nil
	}
	return ErrNotFound
}
