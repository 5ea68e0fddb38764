package product

import (
	"context"
	"strings"
	"time"

	"github.com/wichananm65/spaceship-store/internal/category"
)

// DefaultFeaturedCount is used when GetFeatured is called with a
// non-positive count.
const DefaultFeaturedCount = 10

type Service struct {
	repo       Repository
	categories category.Repository
}

func NewService(repo Repository, categories category.Repository) *Service {
	return &Service{repo: repo, categories: categories}
}

func (s *Service) GetAll(ctx context.Context) ([]Product, error) {
	return s.repo.ListActive(ctx)
}

// GetByID returns the active product with id. Inactive products are reported
// as ErrNotFound.
func (s *Service) GetByID(ctx context.Context, id int) (Product, error) {
	if id <= 0 {
		return Product{}, ErrNotFound
	}
	return s.repo.GetActiveByID(ctx, id)
}

func (s *Service) GetFeatured(ctx context.Context, count int) ([]Product, error) {
	if count <= 0 {
		count = DefaultFeaturedCount
	}
	return s.repo.ListFeatured(ctx, count)
}

// Search trims the query; a blank query does not filter by text.
func (s *Service) Search(ctx context.Context, query string, categoryID *int) ([]Product, error) {
	return s.repo.Search(ctx, Filter{Query: strings.TrimSpace(query), CategoryID: categoryID})
}

// GetAvailability returns the active products among ids keyed by id.
func (s *Service) GetAvailability(ctx context.Context, ids []int) (map[int]Product, error) {
	products, err := s.repo.ListActiveByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[int]Product, len(products))
	for _, p := range products {
		out[p.ID] = p
	}
	return out, nil
}

func (s *Service) List(ctx context.Context) ([]Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) Create(ctx context.Context, p Product) (Product, error) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) Update(ctx context.Context, p Product) (Product, error) {
	return s.repo.Update(ctx, p)
}

// Delete reports whether a product with id existed.
func (s *Service) Delete(ctx context.Context, id int) (bool, error) {
	return s.repo.Delete(ctx, id)
}

func (s *Service) GetCategories(ctx context.Context) ([]category.Category, error) {
	return s.categories.List(ctx)
}
