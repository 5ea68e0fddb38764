package product

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"
)

var (
	ErrNotFound        = errors.New("product not found")
	ErrUpdateConflict  = errors.New("product was deleted or changed by another request")
	ErrInUse           = errors.New("product is referenced by existing orders")
	ErrUnknownCategory = errors.New("category does not exist")
)

type Repository interface {
	// ListActive returns active products ordered by name.
	ListActive(ctx context.Context) ([]Product, error)
	// List returns every product, active or not, ordered by id.
	List(ctx context.Context) ([]Product, error)
	GetActiveByID(ctx context.Context, id int) (Product, error)
	ListFeatured(ctx context.Context, limit int) ([]Product, error)
	Search(ctx context.Context, f Filter) ([]Product, error)
	ListActiveByIDs(ctx context.Context, ids []int) ([]Product, error)
	Create(ctx context.Context, p Product) (Product, error)
	Update(ctx context.Context, p Product) (Product, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// InMemoryRepository is a simple in-memory implementation useful for tests and
// for running the store without a database. Category names are resolved
// through CategoryNames; InUse models the order_items restriction on Delete.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Product
	nextID  int

	CategoryNames map[int]string
	InUse         func(id int) bool
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	r := &InMemoryRepository{
		storage: make([]Product, 0, len(seed)),
		nextID:  1,
	}

	maxID := 0
	for _, p := range seed {
		r.storage = append(r.storage, p)
		if p.ID > maxID {
			maxID = p.ID
		}
	}

	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) ListActive(ctx context.Context) ([]Product, error) {
	return r.Search(ctx, Filter{})
}

func (r *InMemoryRepository) List(_ context.Context) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := r.withCategories(r.storage)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *InMemoryRepository) GetActiveByID(_ context.Context, id int) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.storage {
		if p.ID == id && p.IsActive {
			return r.withCategory(p), nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) ListFeatured(_ context.Context, limit int) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := r.withCategories(r.active())
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *InMemoryRepository) Search(_ context.Context, f Filter) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(f.Query)
	out := make([]Product, 0)
	for _, p := range r.active() {
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			continue
		}
		if f.CategoryID != nil && p.CategoryID != *f.CategoryID {
			continue
		}
		out = append(out, r.withCategory(p))
	}
	sortByName(out)
	return out, nil
}

func (r *InMemoryRepository) ListActiveByIDs(_ context.Context, ids []int) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	want := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	out := make([]Product, 0, len(ids))
	for _, p := range r.active() {
		if _, ok := want[p.ID]; ok {
			out = append(out, r.withCategory(p))
		}
	}
	return out, nil
}

func (r *InMemoryRepository) Create(_ context.Context, p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CategoryNames != nil {
		if _, ok := r.CategoryNames[p.CategoryID]; !ok {
			return Product{}, ErrUnknownCategory
		}
	}
	p.ID = r.nextID
	r.nextID++
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	r.storage = append(r.storage, p)
	return r.withCategory(p), nil
}

func (r *InMemoryRepository) Update(_ context.Context, p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == p.ID {
			p.CreatedAt = r.storage[i].CreatedAt
			r.storage[i] = p
			return r.withCategory(p), nil
		}
	}
	return Product{}, ErrUpdateConflict
}

func (r *InMemoryRepository) Delete(_ context.Context, id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID != id {
			continue
		}
		if r.InUse != nil && r.InUse(id) {
			return false, ErrInUse
		}
		r.storage = append(r.storage[:i], r.storage[i+1:]...)
		return true, nil
	}
	return false, nil
}

// HasCategory reports whether any product, active or not, belongs to the
// category. It backs the category delete restriction in memory mode.
func (r *InMemoryRepository) HasCategory(categoryID int) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.storage {
		if p.CategoryID == categoryID {
			return true
		}
	}
	return false
}

func (r *InMemoryRepository) active() []Product {
	out := make([]Product, 0, len(r.storage))
	for _, p := range r.storage {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out
}

func (r *InMemoryRepository) withCategories(in []Product) []Product {
	out := make([]Product, len(in))
	for i, p := range in {
		out[i] = r.withCategory(p)
	}
	return out
}

func (r *InMemoryRepository) withCategory(p Product) Product {
	if name, ok := r.CategoryNames[p.CategoryID]; ok {
		p.CategoryName = name
	}
	return p
}

// sortByName orders case-insensitively, like the category listing.
func sortByName(products []Product) {
	sort.SliceStable(products, func(i, j int) bool {
		a, b := strings.ToLower(products[i].Name), strings.ToLower(products[j].Name)
		if a != b {
			return a < b
		}
		return products[i].Name < products[j].Name
	})
}
