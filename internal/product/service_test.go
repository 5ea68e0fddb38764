package product

import (
	"context"
	"errors"
	"testing"

	"github.com/wichananm65/spaceship-store/internal/category"
)

func newTestService() *Service {
	cats := category.NewInMemoryRepository([]category.Category{
		{ID: 2, Name: "Defense Systems"},
		{ID: 1, Name: "Propulsion Systems"},
	})
	return NewService(newSeededRepo(), cats)
}

func TestService_GetByIDRejectsNonPositive(t *testing.T) {
	svc := newTestService()
	for _, id := range []int{0, -1} {
		if _, err := svc.GetByID(context.Background(), id); !errors.Is(err, ErrNotFound) {
			t.Fatalf("id %d: expected ErrNotFound, got %v", id, err)
		}
	}
}

func TestService_GetFeaturedDefaultsCount(t *testing.T) {
	svc := newTestService()
	items, err := svc.GetFeatured(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected all 3 active products with the default count, got %d", len(items))
	}
}

func TestService_SearchTrimsQuery(t *testing.T) {
	svc := newTestService()
	items, _ := svc.Search(context.Background(), "   ", nil)
	if len(items) != 3 {
		t.Fatalf("whitespace query should not filter, got %v", names(items))
	}
	items, _ = svc.Search(context.Background(), "  thruster ", nil)
	if len(items) != 1 || items[0].ID != 2 {
		t.Fatalf("expected the thruster, got %v", names(items))
	}
}

func TestService_GetAvailability(t *testing.T) {
	svc := newTestService()
	got, err := svc.GetAvailability(context.Background(), []int{1, 2, 4, 42})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected only active products, got %v", got)
	}
	if !got[1].InStock() || got[2].InStock() {
		t.Fatalf("unexpected stock flags")
	}
}

func TestService_GetCategoriesSorted(t *testing.T) {
	svc := newTestService()
	cats, err := svc.GetCategories(context.Background())
	if err != nil || len(cats) != 2 || cats[0].Name != "Defense Systems" {
		t.Fatalf("unexpected categories %+v %v", cats, err)
	}
}
