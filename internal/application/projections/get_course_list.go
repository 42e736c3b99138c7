package projections

import (
	"context"

	"fitfront/internal/application/listutil"
	domainCourse "fitfront/internal/domain/course"
)

// GetCourseListQuery carries query parameters.
type GetCourseListQuery struct {
	Token  string
	Params listutil.ListParams
	Admin  bool
}

// GetCourseListResult carries the query result.
type GetCourseListResult struct {
	Courses  []domainCourse.Course
	PageInfo listutil.PageInfo
	Stale    bool
}

// GetCourseListDeps holds dependencies for GetCourseList.
type GetCourseListDeps struct {
	Fetcher Fetcher
	Cache   CacheStore
}

// QueryGetCourseList retrieves the course catalog.
func QueryGetCourseList(ctx context.Context, query GetCourseListQuery, deps GetCourseListDeps) (GetCourseListResult, error) {
	ep := deps.Fetcher.Endpoints()
	url := ep.User().Courses.List()
	if query.Admin {
		url = ep.Admin().Courses.List()
	}

	raws, stale, err := fetchListWithFallback(ctx, deps.Fetcher, deps.Cache, query.Token, url, cacheSectionCourses)
	if err != nil {
		return GetCourseListResult{}, err
	}

	courses := make([]domainCourse.Course, 0, len(raws))
	for _, raw := range raws {
		courses = append(courses, mapCourse(raw))
	}

	courses = listutil.Search(courses, query.Params.Search, func(c domainCourse.Course) []string {
		return []string{c.Title, c.Description}
	})
	if query.Params.Sort == "price" {
		courses = listutil.SortBy(courses, query.Params.Dir, func(a, b domainCourse.Course) bool {
			return a.Price.LessThan(b.Price)
		})
	}

	pageItems, pageInfo := listutil.Page(courses, query.Params.Page, query.Params.PerPage)
	return GetCourseListResult{Courses: pageItems, PageInfo: pageInfo, Stale: stale}, nil
}
