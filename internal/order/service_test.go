package order

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNumberFor_UsesUTCTimestamp(t *testing.T) {
	loc := time.FixedZone("station", 5*60*60)
	got := NumberFor(time.Date(2025, 12, 31, 23, 0, 5, 0, loc))
	if got != "ORD-20251231180005" {
		t.Fatalf("unexpected order number %q", got)
	}
}

func TestServicePlace_Validates(t *testing.T) {
	svc := NewService(NewInMemoryRepository())
	ctx := context.Background()

	empty := sampleOrder()
	empty.Items = nil
	if _, err := svc.Place(ctx, empty); !errors.Is(err, ErrInvalidOrder) {
		t.Fatalf("expected ErrInvalidOrder for order without items, got %v", err)
	}

	long := sampleOrder()
	long.ShippingAddress = strings.Repeat("x", 501)
	if _, err := svc.Place(ctx, long); !errors.Is(err, ErrInvalidOrder) {
		t.Fatalf("expected ErrInvalidOrder for long address, got %v", err)
	}

	zero := sampleOrder()
	zero.Items[0].Quantity = 0
	if _, err := svc.Place(ctx, zero); !errors.Is(err, ErrInvalidOrder) {
		t.Fatalf("expected ErrInvalidOrder for zero quantity, got %v", err)
	}
}

func TestServicePlace_PersistsAndReads(t *testing.T) {
	repo := NewInMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.Place(ctx, sampleOrder())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 1 || created.Items[1].ID != 2 || created.ItemCount() != 3 {
		t.Fatalf("unexpected order %+v", created)
	}

	got, err := svc.GetByID(ctx, created.ID)
	if err != nil || got.OrderNumber != created.OrderNumber {
		t.Fatalf("lookup failed: %+v %v", got, err)
	}
	if !repo.ReferencesProduct(4) || repo.ReferencesProduct(2) {
		t.Fatalf("unexpected product references")
	}

	if _, err := svc.GetByID(ctx, 0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for id 0, got %v", err)
	}

	second, _ := svc.Place(ctx, sampleOrder())
	list, err := svc.ListByIDs(ctx, []int{second.ID, 42, created.ID})
	if err != nil || len(list) != 2 || list[0].ID != second.ID {
		t.Fatalf("unexpected list %+v %v", list, err)
	}
}
