// Package listutil provides list view parameter parsing and in-memory
// search, sort, and pagination over fetched collections. All filtering here
// happens client-side: collections are fetched whole from the upstream and
// narrowed in memory.
package listutil

import (
	"net/url"
	"strconv"
)

// DefaultPerPage is the default number of rows per page.
const DefaultPerPage = 20

// PerPageOptions are the allowed rows-per-page values.
var PerPageOptions = []int{10, 20, 50, 100}

// ListParams combines all list view parameters parsed from a request.
type ListParams struct {
	Page    int    // 1-indexed page number
	PerPage int    // rows per page
	Sort    string // column name, "" when unsorted
	Dir     string // "asc" or "desc"
	Search  string // free-text search query
	Filters map[string]string
}

// ParseListParams parses list parameters from URL query values. Sort columns
// and filter keys outside the allowed sets are dropped.
// POST: Page >= 1, PerPage is one of PerPageOptions, Dir is asc or desc
func ParseListParams(q url.Values, allowedSortCols, filterKeys []string) ListParams {
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	if !contains(PerPageOptions, perPage) {
		perPage = DefaultPerPage
	}

	sort := q.Get("sort")
	if !containsString(allowedSortCols, sort) {
		sort = ""
	}
	dir := q.Get("dir")
	if dir != "asc" && dir != "desc" {
		dir = "asc"
	}

	lp := ListParams{
		Page:    page,
		PerPage: perPage,
		Sort:    sort,
		Dir:     dir,
		Search:  q.Get("q"),
		Filters: make(map[string]string),
	}
	for _, key := range filterKeys {
		if v := q.Get(key); v != "" {
			lp.Filters[key] = v
		}
	}
	return lp
}

// PageInfo carries pagination metadata for rendering.
type PageInfo struct {
	Page       int
	PerPage    int
	Total      int
	TotalPages int // ceil(Total / PerPage)
}

// NewPageInfo computes pagination metadata.
// PRE: total >= 0
// POST: TotalPages = ceil(total/perPage), at least 1; Page clamped to range
func NewPageInfo(page, perPage, total int) PageInfo {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return PageInfo{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}

// Offset returns the index of the first row on the current page.
func (p PageInfo) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// StartRow returns the 1-indexed first row number on the current page.
func (p PageInfo) StartRow() int {
	if p.Total == 0 {
		return 0
	}
	return p.Offset() + 1
}

// EndRow returns the 1-indexed last row number on the current page.
func (p PageInfo) EndRow() int {
	end := p.Offset() + p.PerPage
	if end > p.Total {
		end = p.Total
	}
	return end
}

// PageNumbers returns at most 5 page numbers centered on the current page
// for pagination controls.
func (p PageInfo) PageNumbers() []int {
	const maxButtons = 5
	start := p.Page - maxButtons/2
	if start < 1 {
		start = 1
	}
	end := start + maxButtons - 1
	if end > p.TotalPages {
		end = p.TotalPages
		start = end - maxButtons + 1
		if start < 1 {
			start = 1
		}
	}
	pages := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	return pages
}

// ShowPagination reports whether pagination controls should be displayed.
func (p PageInfo) ShowPagination() bool {
	return p.Total > p.PerPage
}

func contains(opts []int, n int) bool {
	for _, o := range opts {
		if n == o {
			return true
		}
	}
	return false
}

func containsString(opts []string, s string) bool {
	for _, o := range opts {
		if s == o {
			return true
		}
	}
	return false
}
