package projections

import (
	"context"
	"sort"
	"sync"

	domainOrder "fitfront/internal/domain/order"
	domainRequest "fitfront/internal/domain/request"
	"fitfront/internal/reconcile"

	"github.com/shopspring/decimal"
)

// GetDashboardQuery carries query parameters.
type GetDashboardQuery struct {
	Token string
}

// GetDashboardDeps holds dependencies for the dashboard projection.
type GetDashboardDeps struct {
	Fetcher Fetcher
	Cache   CacheStore
}

// DashboardResult aggregates the back-office landing page panels. Each panel
// that could not be loaded is named in FailedPanels; the rest render from
// whatever did arrive.
type DashboardResult struct {
	UserCount         int
	ProductCount      int
	CourseCount       int
	BlogCount         int
	OrderCount        int
	PendingOrders     int
	Revenue           decimal.Decimal // net total of approved orders
	PendingTraining   int
	PendingCourseReqs int
	PendingBookings   int
	RecentOrders      []domainOrder.Order // newest five
	FailedPanels      []string
}

// QueryGetDashboard aggregates the admin dashboard. All section fetches run
// concurrently; one slow or failing endpoint must not blank the whole page.
// POST: FailedPanels lists every section whose fetch failed, in stable order
func QueryGetDashboard(ctx context.Context, query GetDashboardQuery, deps GetDashboardDeps) (DashboardResult, error) {
	ep := deps.Fetcher.Endpoints().Admin()
	result := DashboardResult{Revenue: decimal.Zero}

	var mu sync.Mutex
	var wg sync.WaitGroup
	fail := func(panel string) {
		mu.Lock()
		result.FailedPanels = append(result.FailedPanels, panel)
		mu.Unlock()
	}
	fetch := func(panel, url string, apply func(raws []reconcile.Raw)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			raws, err := deps.Fetcher.FetchList(ctx, query.Token, url)
			if err != nil {
				fail(panel)
				return
			}
			mu.Lock()
			apply(raws)
			mu.Unlock()
		}()
	}

	fetch("users", ep.Users.List(), func(raws []reconcile.Raw) {
		result.UserCount = len(raws)
	})
	fetch("products", ep.Products.List(), func(raws []reconcile.Raw) {
		result.ProductCount = len(raws)
	})
	fetch("courses", ep.Courses.List(), func(raws []reconcile.Raw) {
		result.CourseCount = len(raws)
	})
	fetch("blogs", ep.Blogs.List(), func(raws []reconcile.Raw) {
		result.BlogCount = len(raws)
	})
	fetch("orders", ep.Orders.List(), func(raws []reconcile.Raw) {
		result.OrderCount = len(raws)
		for _, raw := range raws {
			rec := reconcile.Reconcile(reconcile.SectionOrders, raw, "")
			o := mapOrder(raw, rec)
			switch o.Status {
			case domainOrder.StatusApproved:
				if rec.HasTotal {
					result.Revenue = result.Revenue.Add(o.NetTotal())
				}
			case domainOrder.StatusPending:
				result.PendingOrders++
			}
			result.RecentOrders = append(result.RecentOrders, o)
		}
		sort.SliceStable(result.RecentOrders, func(i, j int) bool {
			return result.RecentOrders[i].CreatedAt > result.RecentOrders[j].CreatedAt
		})
		if len(result.RecentOrders) > 5 {
			result.RecentOrders = result.RecentOrders[:5]
		}
	})
	fetch("training_requests", ep.TrainingRequests.List(), func(raws []reconcile.Raw) {
		for _, raw := range raws {
			rec := reconcile.Reconcile(reconcile.SectionTraining, raw, "")
			if rec.Status == domainRequest.StatusPending {
				result.PendingTraining++
			}
		}
	})
	fetch("course_requests", ep.CourseRequests.List(), func(raws []reconcile.Raw) {
		for _, raw := range raws {
			rec := reconcile.Reconcile(reconcile.SectionCourses, raw, "")
			if rec.Status == domainRequest.StatusPending {
				result.PendingCourseReqs++
			}
		}
	})
	fetch("bookings", ep.Bookings.List(), func(raws []reconcile.Raw) {
		for _, raw := range raws {
			if mapBooking(raw).Status == domainRequest.StatusPending {
				result.PendingBookings++
			}
		}
	})

	wg.Wait()
	sort.Strings(result.FailedPanels)
	return result, nil
}
