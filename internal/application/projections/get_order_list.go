package projections

import (
	"context"

	"fitfront/internal/application/listutil"
	domainOrder "fitfront/internal/domain/order"
	"fitfront/internal/reconcile"
)

// GetOrderListQuery carries query parameters.
type GetOrderListQuery struct {
	Token  string
	Params listutil.ListParams
	Admin  bool // back office sees all orders, customers only their own
}

// GetOrderListResult carries the query result.
type GetOrderListResult struct {
	Orders   []domainOrder.Order
	PageInfo listutil.PageInfo
	Stale    bool
}

// GetOrderListDeps holds dependencies for GetOrderList.
type GetOrderListDeps struct {
	Fetcher Fetcher
	Cache   CacheStore
}

// QueryGetOrderList retrieves orders. Each list element goes through the
// reconciler, so mixed envelope generations in one response still produce a
// uniform table.
func QueryGetOrderList(ctx context.Context, query GetOrderListQuery, deps GetOrderListDeps) (GetOrderListResult, error) {
	ep := deps.Fetcher.Endpoints()
	url := ep.User().Orders.List()
	section := cacheSectionOrders
	if query.Admin {
		url = ep.Admin().Orders.List()
	}

	raws, stale, err := fetchListWithFallback(ctx, deps.Fetcher, deps.Cache, query.Token, url, section)
	if err != nil {
		return GetOrderListResult{}, err
	}

	orders := make([]domainOrder.Order, 0, len(raws))
	for _, raw := range raws {
		rec := reconcile.Reconcile(reconcile.SectionOrders, raw, "")
		orders = append(orders, mapOrder(raw, rec))
	}

	orders = listutil.Search(orders, query.Params.Search, func(o domainOrder.Order) []string {
		return []string{o.ID, o.CustomerName, o.CustomerEmail}
	})
	orders = listutil.Filter(orders, query.Params.Filters["status"], func(o domainOrder.Order) string {
		return o.Status
	})
	if query.Params.Sort == "total" {
		orders = listutil.SortBy(orders, query.Params.Dir, func(a, b domainOrder.Order) bool {
			return a.NetTotal().LessThan(b.NetTotal())
		})
	}

	pageItems, pageInfo := listutil.Page(orders, query.Params.Page, query.Params.PerPage)
	return GetOrderListResult{Orders: pageItems, PageInfo: pageInfo, Stale: stale}, nil
}
