package projections

import (
	"context"
	"strings"

	"fitfront/internal/application/listutil"
	domainAdmin "fitfront/internal/domain/admin"
	domainCategory "fitfront/internal/domain/category"
	domainPromo "fitfront/internal/domain/promocode"
	domainService "fitfront/internal/domain/service"
	domainUser "fitfront/internal/domain/user"
)

// The small back-office tables share one query/deps shape. Users, admins,
// categories, promo codes, and bookings have no public variant and no
// section-specific narrowing beyond search and status.

// AdminListQuery carries query parameters for the small back-office tables.
type AdminListQuery struct {
	Token  string
	Params listutil.ListParams
}

// AdminListDeps holds dependencies for the back-office table queries.
type AdminListDeps struct {
	Fetcher Fetcher
	Cache   CacheStore
}

// GetUserListResult carries the customer table result.
type GetUserListResult struct {
	Users    []domainUser.User
	PageInfo listutil.PageInfo
}

// QueryGetUserList retrieves the customer accounts table.
func QueryGetUserList(ctx context.Context, query AdminListQuery, deps AdminListDeps) (GetUserListResult, error) {
	raws, err := deps.Fetcher.FetchList(ctx, query.Token, deps.Fetcher.Endpoints().Admin().Users.List())
	if err != nil {
		return GetUserListResult{}, err
	}
	users := make([]domainUser.User, 0, len(raws))
	for _, raw := range raws {
		users = append(users, mapUser(raw))
	}
	users = listutil.Search(users, query.Params.Search, func(u domainUser.User) []string {
		return []string{u.Name, u.Email, u.Phone}
	})
	pageItems, pageInfo := listutil.Page(users, query.Params.Page, query.Params.PerPage)
	return GetUserListResult{Users: pageItems, PageInfo: pageInfo}, nil
}

// GetAdminListResult carries the operator table result.
type GetAdminListResult struct {
	Admins   []domainAdmin.Admin
	PageInfo listutil.PageInfo
}

// QueryGetAdminList retrieves the operator accounts table.
func QueryGetAdminList(ctx context.Context, query AdminListQuery, deps AdminListDeps) (GetAdminListResult, error) {
	raws, err := deps.Fetcher.FetchList(ctx, query.Token, deps.Fetcher.Endpoints().Admin().Admins.List())
	if err != nil {
		return GetAdminListResult{}, err
	}
	admins := make([]domainAdmin.Admin, 0, len(raws))
	for _, raw := range raws {
		admins = append(admins, mapAdmin(raw))
	}
	admins = listutil.Search(admins, query.Params.Search, func(a domainAdmin.Admin) []string {
		return []string{a.Name, a.Email, a.Role}
	})
	pageItems, pageInfo := listutil.Page(admins, query.Params.Page, query.Params.PerPage)
	return GetAdminListResult{Admins: pageItems, PageInfo: pageInfo}, nil
}

// GetCategoryListResult carries the category table result.
type GetCategoryListResult struct {
	Categories []domainCategory.Category
	PageInfo   listutil.PageInfo
	Stale      bool
}

// QueryGetCategoryList retrieves the product category table.
func QueryGetCategoryList(ctx context.Context, query AdminListQuery, deps AdminListDeps) (GetCategoryListResult, error) {
	raws, stale, err := fetchListWithFallback(ctx, deps.Fetcher, deps.Cache, query.Token, deps.Fetcher.Endpoints().Admin().Categories.List(), cacheSectionCategories)
	if err != nil {
		return GetCategoryListResult{}, err
	}
	categories := make([]domainCategory.Category, 0, len(raws))
	for _, raw := range raws {
		categories = append(categories, mapCategory(raw))
	}
	categories = listutil.Search(categories, query.Params.Search, func(c domainCategory.Category) []string {
		return []string{c.Name, c.Description}
	})
	pageItems, pageInfo := listutil.Page(categories, query.Params.Page, query.Params.PerPage)
	return GetCategoryListResult{Categories: pageItems, PageInfo: pageInfo, Stale: stale}, nil
}

// GetPromoCodeListResult carries the promo code table result.
type GetPromoCodeListResult struct {
	PromoCodes []domainPromo.PromoCode
	PageInfo   listutil.PageInfo
}

// QueryGetPromoCodeList retrieves the promo code table.
func QueryGetPromoCodeList(ctx context.Context, query AdminListQuery, deps AdminListDeps) (GetPromoCodeListResult, error) {
	raws, err := deps.Fetcher.FetchList(ctx, query.Token, deps.Fetcher.Endpoints().Admin().PromoCodes.List())
	if err != nil {
		return GetPromoCodeListResult{}, err
	}
	codes := make([]domainPromo.PromoCode, 0, len(raws))
	for _, raw := range raws {
		codes = append(codes, mapPromoCode(raw))
	}
	codes = listutil.Search(codes, query.Params.Search, func(p domainPromo.PromoCode) []string {
		return []string{p.Code}
	})
	pageItems, pageInfo := listutil.Page(codes, query.Params.Page, query.Params.PerPage)
	return GetPromoCodeListResult{PromoCodes: pageItems, PageInfo: pageInfo}, nil
}

// QueryFindPromoCode scans the full promo table for a case-insensitive code
// match. Checkout validation must see every row, so nothing is paged here.
func QueryFindPromoCode(ctx context.Context, token, code string, deps AdminListDeps) (domainPromo.PromoCode, bool, error) {
	raws, err := deps.Fetcher.FetchList(ctx, token, deps.Fetcher.Endpoints().Admin().PromoCodes.List())
	if err != nil {
		return domainPromo.PromoCode{}, false, err
	}
	for _, raw := range raws {
		if promo := mapPromoCode(raw); strings.EqualFold(promo.Code, code) {
			return promo, true, nil
		}
	}
	return domainPromo.PromoCode{}, false, nil
}

// GetBookingListResult carries the booking table result.
type GetBookingListResult struct {
	Bookings []domainService.Booking
	PageInfo listutil.PageInfo
}

// QueryGetBookingList retrieves the service booking table.
func QueryGetBookingList(ctx context.Context, query AdminListQuery, deps AdminListDeps) (GetBookingListResult, error) {
	raws, err := deps.Fetcher.FetchList(ctx, query.Token, deps.Fetcher.Endpoints().Admin().Bookings.List())
	if err != nil {
		return GetBookingListResult{}, err
	}
	bookings := make([]domainService.Booking, 0, len(raws))
	for _, raw := range raws {
		bookings = append(bookings, mapBooking(raw))
	}
	bookings = listutil.Search(bookings, query.Params.Search, func(b domainService.Booking) []string {
		return []string{b.CustomerName, b.CustomerEmail, b.ServiceName}
	})
	bookings = listutil.Filter(bookings, query.Params.Filters["status"], func(b domainService.Booking) string {
		return b.Status
	})
	pageItems, pageInfo := listutil.Page(bookings, query.Params.Page, query.Params.PerPage)
	return GetBookingListResult{Bookings: pageItems, PageInfo: pageInfo}, nil
}
