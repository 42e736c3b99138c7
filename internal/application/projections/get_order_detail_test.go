package projections

import (
	"context"
	"errors"
	"testing"
)

func TestQueryGetOrderDetailBackfillsProductNames(t *testing.T) {
	fetcher := newFakeFetcher()
	ep := fetcher.endpoints
	fetcher.ones[ep.User().Orders.GetByID("o1")] = map[string]any{
		"id":          "o1",
		"total_price": 70.0,
		"status":      "approved",
		"items": []any{
			map[string]any{"product_id": "p1", "quantity": float64(2), "price": 20.0},
			map[string]any{"product_id": "p1", "quantity": float64(1), "price": 20.0},
			map[string]any{"product_id": "p2", "quantity": float64(1), "price": 10.0},
		},
	}
	fetcher.ones[ep.User().Products.GetByID("p1")] = map[string]any{"id": "p1", "name": "Whey Protein"}
	fetcher.ones[ep.User().Products.GetByID("p2")] = map[string]any{"id": "p2", "name": "Shaker"}

	result, err := QueryGetOrderDetail(context.Background(), GetOrderDetailQuery{OrderID: "o1"},
		GetOrderDetailDeps{Fetcher: fetcher, Cache: newFakeCache()})
	if err != nil {
		t.Fatalf("QueryGetOrderDetail: %v", err)
	}

	if len(result.Order.Items) != 3 {
		t.Fatalf("got %d items, want 3", len(result.Order.Items))
	}
	if result.Order.Items[0].Name != "Whey Protein" {
		t.Errorf("item 0 name = %q", result.Order.Items[0].Name)
	}
	if result.Order.Items[2].Name != "Shaker" {
		t.Errorf("item 2 name = %q", result.Order.Items[2].Name)
	}
	// Two items share p1 but the lookup runs once per distinct product.
	if got := fetcher.callCount(ep.User().Products.GetByID("p1")); got != 1 {
		t.Errorf("p1 looked up %d times, want 1", got)
	}
}

func TestQueryGetOrderDetailFailedLookupKeepsPlaceholder(t *testing.T) {
	fetcher := newFakeFetcher()
	ep := fetcher.endpoints
	fetcher.ones[ep.User().Orders.GetByID("o1")] = map[string]any{
		"id":     "o1",
		"status": "pending",
		"items": []any{
			map[string]any{"product_id": "p1", "quantity": float64(1), "price": 20.0},
			map[string]any{"product_id": "p2", "quantity": float64(1), "price": 10.0},
		},
	}
	fetcher.ones[ep.User().Products.GetByID("p1")] = map[string]any{"id": "p1", "name": "Whey Protein"}
	fetcher.errs[ep.User().Products.GetByID("p2")] = errors.New("upstream returned 500")

	result, err := QueryGetOrderDetail(context.Background(), GetOrderDetailQuery{OrderID: "o1"},
		GetOrderDetailDeps{Fetcher: fetcher, Cache: newFakeCache()})
	if err != nil {
		t.Fatalf("QueryGetOrderDetail: %v", err)
	}

	// One lookup failing must not blank the other item's resolved name.
	if result.Order.Items[0].Name != "Whey Protein" {
		t.Errorf("item 0 name = %q", result.Order.Items[0].Name)
	}
	if result.Order.Items[1].Name == "Whey Protein" {
		t.Errorf("item 1 picked up the wrong product name")
	}
}

// TestQueryGetOrderDetailAcceptsArrayPayload covers a detail endpoint that
// answers with a single-element array instead of a bare object.
func TestQueryGetOrderDetailAcceptsArrayPayload(t *testing.T) {
	fetcher := newFakeFetcher()
	ep := fetcher.endpoints
	fetcher.ones[ep.Admin().Orders.GetByID("9")] = []any{
		map[string]any{"id": float64(9), "total_price": 150.5, "customer_name": "Aroha"},
	}

	result, err := QueryGetOrderDetail(context.Background(), GetOrderDetailQuery{OrderID: "9", Admin: true},
		GetOrderDetailDeps{Fetcher: fetcher, Cache: newFakeCache()})
	if err != nil {
		t.Fatalf("QueryGetOrderDetail: %v", err)
	}
	if result.Stale {
		t.Error("fresh fetch reported stale")
	}
	if result.Order.CustomerName != "Aroha" {
		t.Errorf("CustomerName = %q", result.Order.CustomerName)
	}
	if got := result.Order.OriginalTotal.StringFixed(2); got != "150.50" {
		t.Errorf("OriginalTotal = %s", got)
	}
}

func TestQueryGetOrderDetailServesCachedListCopy(t *testing.T) {
	fetcher := newFakeFetcher()
	ep := fetcher.endpoints
	fetcher.lists[ep.User().Orders.List()] = []map[string]any{
		{"id": "o1", "total_price": 42.5, "status": "approved", "customer_name": "Jo"},
	}
	store := newFakeCache()
	listDeps := GetOrderListDeps{Fetcher: fetcher, Cache: store}

	// Warm the cache through the list projection.
	if _, err := QueryGetOrderList(context.Background(), GetOrderListQuery{}, listDeps); err != nil {
		t.Fatalf("warm list: %v", err)
	}

	// The detail endpoint has no record (fake returns ErrNotFound).
	result, err := QueryGetOrderDetail(context.Background(), GetOrderDetailQuery{OrderID: "o1"},
		GetOrderDetailDeps{Fetcher: fetcher, Cache: store})
	if err != nil {
		t.Fatalf("QueryGetOrderDetail: %v", err)
	}
	if !result.Stale {
		t.Error("cached copy not marked stale")
	}
	if result.Order.CustomerName != "Jo" {
		t.Errorf("CustomerName = %q", result.Order.CustomerName)
	}
	if got := result.Order.OriginalTotal.StringFixed(2); got != "42.50" {
		t.Errorf("OriginalTotal = %s", got)
	}
}

func TestQueryGetOrderDetailNotFoundAnywhere(t *testing.T) {
	fetcher := newFakeFetcher()
	_, err := QueryGetOrderDetail(context.Background(), GetOrderDetailQuery{OrderID: "missing"},
		GetOrderDetailDeps{Fetcher: fetcher, Cache: newFakeCache()})
	if err == nil {
		t.Fatal("expected error for record absent upstream and in cache")
	}
}
