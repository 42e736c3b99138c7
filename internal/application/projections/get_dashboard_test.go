package projections

import (
	"context"
	"errors"
	"testing"
)

func TestQueryGetDashboardAggregates(t *testing.T) {
	fetcher := newFakeFetcher()
	ep := fetcher.endpoints.Admin()
	fetcher.lists[ep.Users.List()] = []map[string]any{
		{"id": "u1"}, {"id": "u2"}, {"id": "u3"},
	}
	fetcher.lists[ep.Products.List()] = []map[string]any{{"id": "p1"}}
	fetcher.lists[ep.Courses.List()] = []map[string]any{{"id": "c1"}, {"id": "c2"}}
	fetcher.lists[ep.Blogs.List()] = []map[string]any{{"id": "b1"}}
	fetcher.lists[ep.Orders.List()] = []map[string]any{
		{"id": "o1", "total_price": 100.0, "status": "approved", "discount_value": 10.0},
		{"id": "o2", "total_price": 50.0, "status": "pending"},
		{"id": "o3", "order": map[string]any{"total": 30.0, "status": "completed"}},
	}
	fetcher.lists[ep.TrainingRequests.List()] = []map[string]any{
		{"id": "t1", "status": "pending"},
		{"id": "t2", "status": "approved"},
		{"id": "t3"}, // absent status defaults to pending
	}
	fetcher.lists[ep.CourseRequests.List()] = []map[string]any{
		{"id": "cr1", "status": "rejected"},
	}
	fetcher.lists[ep.Bookings.List()] = []map[string]any{
		{"id": "bk1", "status": "pending"},
	}

	result, err := QueryGetDashboard(context.Background(), GetDashboardQuery{}, GetDashboardDeps{Fetcher: fetcher})
	if err != nil {
		t.Fatalf("QueryGetDashboard: %v", err)
	}

	if result.UserCount != 3 || result.ProductCount != 1 || result.CourseCount != 2 || result.BlogCount != 1 {
		t.Errorf("counts = %d/%d/%d/%d", result.UserCount, result.ProductCount, result.CourseCount, result.BlogCount)
	}
	if result.OrderCount != 3 {
		t.Errorf("OrderCount = %d, want 3", result.OrderCount)
	}
	if result.PendingOrders != 1 {
		t.Errorf("PendingOrders = %d, want 1", result.PendingOrders)
	}
	// o1 nets 90 after the 10% discount; o3's "completed" normalizes to
	// approved and contributes 30.
	if got := result.Revenue.StringFixed(2); got != "120.00" {
		t.Errorf("Revenue = %s, want 120.00", got)
	}
	if result.PendingTraining != 2 {
		t.Errorf("PendingTraining = %d, want 2", result.PendingTraining)
	}
	if result.PendingCourseReqs != 0 {
		t.Errorf("PendingCourseReqs = %d, want 0", result.PendingCourseReqs)
	}
	if result.PendingBookings != 1 {
		t.Errorf("PendingBookings = %d, want 1", result.PendingBookings)
	}
	if len(result.FailedPanels) != 0 {
		t.Errorf("FailedPanels = %v, want none", result.FailedPanels)
	}
}

func TestQueryGetDashboardPartialFailure(t *testing.T) {
	fetcher := newFakeFetcher()
	ep := fetcher.endpoints.Admin()
	fetcher.lists[ep.Users.List()] = []map[string]any{{"id": "u1"}}
	fetcher.errs[ep.Orders.List()] = errors.New("upstream returned 500")
	fetcher.errs[ep.Bookings.List()] = errors.New("upstream returned 500")

	result, err := QueryGetDashboard(context.Background(), GetDashboardQuery{}, GetDashboardDeps{Fetcher: fetcher})
	if err != nil {
		t.Fatalf("QueryGetDashboard: %v", err)
	}

	if result.UserCount != 1 {
		t.Errorf("UserCount = %d; healthy panels must still load", result.UserCount)
	}
	if len(result.FailedPanels) != 2 {
		t.Fatalf("FailedPanels = %v, want 2 entries", result.FailedPanels)
	}
	if result.FailedPanels[0] != "bookings" || result.FailedPanels[1] != "orders" {
		t.Errorf("FailedPanels = %v", result.FailedPanels)
	}
}
