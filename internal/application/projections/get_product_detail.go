package projections

import (
	"context"

	domainProduct "fitfront/internal/domain/product"
	"fitfront/internal/reconcile"
)

// GetProductDetailQuery carries query parameters.
type GetProductDetailQuery struct {
	Token     string
	ProductID string
}

// GetProductDetailResult carries the query result.
type GetProductDetailResult struct {
	Product domainProduct.Product
	Stale   bool
}

// GetProductDetailDeps holds dependencies for GetProductDetail.
type GetProductDetailDeps struct {
	Fetcher Fetcher
	Cache   CacheStore
}

// QueryGetProductDetail retrieves one product. When the detail call fails,
// the cached list-level copy of the record is served instead.
func QueryGetProductDetail(ctx context.Context, query GetProductDetailQuery, deps GetProductDetailDeps) (GetProductDetailResult, error) {
	url := deps.Fetcher.Endpoints().User().Products.GetByID(query.ProductID)
	payload, err := deps.Fetcher.FetchOne(ctx, query.Token, url)
	if err == nil {
		if raw, ok := reconcile.AsObject(payload); ok {
			return GetProductDetailResult{Product: mapProduct(raw)}, nil
		}
	}
	if raw, ok := cachedRecord(ctx, deps.Cache, cacheSectionProducts, query.ProductID); ok {
		return GetProductDetailResult{Product: mapProduct(raw), Stale: true}, nil
	}
	if err != nil {
		return GetProductDetailResult{}, err
	}
	return GetProductDetailResult{}, errNotFound("product", query.ProductID)
}
