package projections

import (
	"context"

	"fitfront/internal/application/listutil"
	domainService "fitfront/internal/domain/service"
)

// GetServiceListQuery carries query parameters.
type GetServiceListQuery struct {
	Token  string
	Params listutil.ListParams
	Admin  bool
}

// GetServiceListResult carries the query result.
type GetServiceListResult struct {
	Services []domainService.Service
	PageInfo listutil.PageInfo
	Stale    bool
}

// GetServiceListDeps holds dependencies for GetServiceList.
type GetServiceListDeps struct {
	Fetcher Fetcher
	Cache   CacheStore
}

// QueryGetServiceList retrieves the bookable services.
func QueryGetServiceList(ctx context.Context, query GetServiceListQuery, deps GetServiceListDeps) (GetServiceListResult, error) {
	ep := deps.Fetcher.Endpoints()
	url := ep.User().Services.List()
	if query.Admin {
		url = ep.Admin().Services.List()
	}

	raws, stale, err := fetchListWithFallback(ctx, deps.Fetcher, deps.Cache, query.Token, url, cacheSectionServices)
	if err != nil {
		return GetServiceListResult{}, err
	}

	services := make([]domainService.Service, 0, len(raws))
	for _, raw := range raws {
		services = append(services, mapService(raw))
	}

	services = listutil.Search(services, query.Params.Search, func(s domainService.Service) []string {
		return []string{s.Name, s.Description}
	})

	pageItems, pageInfo := listutil.Page(services, query.Params.Page, query.Params.PerPage)
	return GetServiceListResult{Services: pageItems, PageInfo: pageInfo, Stale: stale}, nil
}
