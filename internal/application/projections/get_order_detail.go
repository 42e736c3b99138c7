package projections

import (
	"context"
	"sync"

	domainOrder "fitfront/internal/domain/order"
	"fitfront/internal/reconcile"
)

// GetOrderDetailQuery carries query parameters.
type GetOrderDetailQuery struct {
	Token   string
	OrderID string
	Admin   bool
}

// GetOrderDetailResult carries the query result.
type GetOrderDetailResult struct {
	Order domainOrder.Order
	Stale bool
}

// GetOrderDetailDeps holds dependencies for GetOrderDetail.
type GetOrderDetailDeps struct {
	Fetcher Fetcher
	Cache   CacheStore
}

// QueryGetOrderDetail retrieves one order with its line items. Items that
// arrive with a product id but no display name get the name backfilled from
// the product catalog; lookups run concurrently, deduplicated per product,
// and a failed lookup leaves that item's placeholder name untouched.
func QueryGetOrderDetail(ctx context.Context, query GetOrderDetailQuery, deps GetOrderDetailDeps) (GetOrderDetailResult, error) {
	ep := deps.Fetcher.Endpoints()
	url := ep.User().Orders.GetByID(query.OrderID)
	if query.Admin {
		url = ep.Admin().Orders.GetByID(query.OrderID)
	}

	var raw reconcile.Raw
	stale := false
	payload, err := deps.Fetcher.FetchOne(ctx, query.Token, url)
	if err == nil {
		if obj, ok := reconcile.AsObject(payload); ok {
			raw = obj
		}
	}
	if raw == nil {
		cached, ok := cachedRecord(ctx, deps.Cache, cacheSectionOrders, query.OrderID)
		if !ok {
			if err != nil {
				return GetOrderDetailResult{}, err
			}
			return GetOrderDetailResult{}, errNotFound("order", query.OrderID)
		}
		raw = cached
		stale = true
	}

	rec := reconcile.Reconcile(reconcile.SectionOrders, raw, query.OrderID)
	order := mapOrder(raw, rec)
	backfillItemNames(ctx, &order, query.Token, deps)

	return GetOrderDetailResult{Order: order, Stale: stale}, nil
}

// backfillItemNames resolves product names for items that only carry an id.
// One lookup per distinct product id, all in flight at once.
func backfillItemNames(ctx context.Context, order *domainOrder.Order, token string, deps GetOrderDetailDeps) {
	missing := make(map[string]bool)
	for _, item := range order.Items {
		if item.ProductID != "" && (item.Name == "" || item.Name == reconcile.Placeholder) {
			missing[item.ProductID] = true
		}
	}
	if len(missing) == 0 {
		return
	}

	var mu sync.Mutex
	names := make(map[string]string, len(missing))
	var wg sync.WaitGroup
	for productID := range missing {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			result, err := QueryGetProductDetail(ctx, GetProductDetailQuery{
				Token:     token,
				ProductID: id,
			}, GetProductDetailDeps(deps))
			if err != nil || result.Product.Name == "" {
				return
			}
			mu.Lock()
			names[id] = result.Product.Name
			mu.Unlock()
		}(productID)
	}
	wg.Wait()

	for i, item := range order.Items {
		if name, ok := names[item.ProductID]; ok && (item.Name == "" || item.Name == reconcile.Placeholder) {
			order.Items[i].Name = name
		}
	}
}
