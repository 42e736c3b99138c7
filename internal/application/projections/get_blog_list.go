package projections

import (
	"context"

	"fitfront/internal/application/listutil"
	domainBlog "fitfront/internal/domain/blog"
)

// GetBlogListQuery carries query parameters.
type GetBlogListQuery struct {
	Token  string
	Params listutil.ListParams
	Admin  bool
}

// GetBlogListResult carries the query result.
type GetBlogListResult struct {
	Posts      []domainBlog.Post
	Categories []domainBlog.Category
	PageInfo   listutil.PageInfo
	Stale      bool
}

// GetBlogListDeps holds dependencies for GetBlogList.
type GetBlogListDeps struct {
	Fetcher Fetcher
	Cache   CacheStore
}

// QueryGetBlogList retrieves blog posts with their category list.
func QueryGetBlogList(ctx context.Context, query GetBlogListQuery, deps GetBlogListDeps) (GetBlogListResult, error) {
	ep := deps.Fetcher.Endpoints()
	url := ep.User().Blogs.List()
	if query.Admin {
		url = ep.Admin().Blogs.List()
	}

	raws, stale, err := fetchListWithFallback(ctx, deps.Fetcher, deps.Cache, query.Token, url, cacheSectionBlogs)
	if err != nil {
		return GetBlogListResult{}, err
	}

	posts := make([]domainBlog.Post, 0, len(raws))
	for _, raw := range raws {
		posts = append(posts, mapBlogPost(raw))
	}

	var categories []domainBlog.Category
	catRaws, catStale, catErr := fetchListWithFallback(ctx, deps.Fetcher, deps.Cache, query.Token, ep.Admin().BlogCategories.List(), cacheSectionBlogCategories)
	if catErr == nil {
		for _, raw := range catRaws {
			categories = append(categories, mapBlogCategory(raw))
		}
		stale = stale || catStale
	}

	posts = listutil.Search(posts, query.Params.Search, func(p domainBlog.Post) []string {
		return []string{p.Title, p.Content, p.Author}
	})
	posts = listutil.Filter(posts, query.Params.Filters["category"], func(p domainBlog.Post) string {
		return p.CategoryID
	})

	pageItems, pageInfo := listutil.Page(posts, query.Params.Page, query.Params.PerPage)
	return GetBlogListResult{
		Posts:      pageItems,
		Categories: categories,
		PageInfo:   pageInfo,
		Stale:      stale,
	}, nil
}
