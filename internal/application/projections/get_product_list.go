package projections

import (
	"context"

	"fitfront/internal/application/listutil"
	domainCategory "fitfront/internal/domain/category"
	domainProduct "fitfront/internal/domain/product"
)

// GetProductListQuery carries query parameters.
type GetProductListQuery struct {
	Token  string // "" for anonymous storefront visitors
	Params listutil.ListParams
	Admin  bool // back-office listing uses the admin endpoint
}

// GetProductListResult carries the query result.
type GetProductListResult struct {
	Products   []domainProduct.Product
	Categories []domainCategory.Category
	PageInfo   listutil.PageInfo
	Stale      bool // served from the local cache after an upstream failure
}

// GetProductListDeps holds dependencies for GetProductList.
type GetProductListDeps struct {
	Fetcher Fetcher
	Cache   CacheStore
}

// QueryGetProductList retrieves the product catalog with categories for the
// filter sidebar. All narrowing happens in memory over the full fetched
// collection.
// POST: result reflects search, category filter, sort, and pagination from
// query.Params; on upstream failure the last cached copy is served with
// Stale set
func QueryGetProductList(ctx context.Context, query GetProductListQuery, deps GetProductListDeps) (GetProductListResult, error) {
	ep := deps.Fetcher.Endpoints()
	productsURL := ep.User().Products.List()
	categoriesURL := ep.Admin().Categories.List()
	if query.Admin {
		productsURL = ep.Admin().Products.List()
	}

	raws, stale, err := fetchListWithFallback(ctx, deps.Fetcher, deps.Cache, query.Token, productsURL, cacheSectionProducts)
	if err != nil {
		return GetProductListResult{}, err
	}

	products := make([]domainProduct.Product, 0, len(raws))
	for _, raw := range raws {
		products = append(products, mapProduct(raw))
	}

	// The category list rides along for the sidebar; losing it degrades the
	// filter UI, not the page.
	var categories []domainCategory.Category
	catRaws, catStale, catErr := fetchListWithFallback(ctx, deps.Fetcher, deps.Cache, query.Token, categoriesURL, cacheSectionCategories)
	if catErr == nil {
		for _, raw := range catRaws {
			categories = append(categories, mapCategory(raw))
		}
		stale = stale || catStale
	}

	products = listutil.Search(products, query.Params.Search, func(p domainProduct.Product) []string {
		return []string{p.Name, p.Description}
	})
	products = listutil.Filter(products, query.Params.Filters["category"], func(p domainProduct.Product) string {
		return p.CategoryID
	})
	products = sortProducts(products, query.Params)

	pageItems, pageInfo := listutil.Page(products, query.Params.Page, query.Params.PerPage)
	return GetProductListResult{
		Products:   pageItems,
		Categories: categories,
		PageInfo:   pageInfo,
		Stale:      stale,
	}, nil
}

func sortProducts(products []domainProduct.Product, params listutil.ListParams) []domainProduct.Product {
	switch params.Sort {
	case "price":
		return listutil.SortBy(products, params.Dir, func(a, b domainProduct.Product) bool {
			return a.Price.LessThan(b.Price)
		})
	case "stock":
		return listutil.SortBy(products, params.Dir, func(a, b domainProduct.Product) bool {
			return a.Stock < b.Stock
		})
	case "name":
		return listutil.SortBy(products, params.Dir, func(a, b domainProduct.Product) bool {
			return a.Name < b.Name
		})
	}
	return products
}
