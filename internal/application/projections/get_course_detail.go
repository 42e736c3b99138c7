package projections

import (
	"context"

	domainCourse "fitfront/internal/domain/course"
	"fitfront/internal/reconcile"
)

// GetCourseDetailQuery carries query parameters.
type GetCourseDetailQuery struct {
	Token    string
	CourseID string
}

// GetCourseDetailResult carries the query result.
type GetCourseDetailResult struct {
	Course domainCourse.Course
	Stale  bool
}

// GetCourseDetailDeps holds dependencies for GetCourseDetail.
type GetCourseDetailDeps struct {
	Fetcher Fetcher
	Cache   CacheStore
}

// QueryGetCourseDetail retrieves one course with its module and chapter
// tree, falling back to the cached list copy on upstream failure. The list
// copy may omit chapter content; the page still renders the outline.
func QueryGetCourseDetail(ctx context.Context, query GetCourseDetailQuery, deps GetCourseDetailDeps) (GetCourseDetailResult, error) {
	url := deps.Fetcher.Endpoints().User().Courses.GetByID(query.CourseID)
	payload, err := deps.Fetcher.FetchOne(ctx, query.Token, url)
	if err == nil {
		if raw, ok := reconcile.AsObject(payload); ok {
			return GetCourseDetailResult{Course: mapCourse(raw)}, nil
		}
	}
	if raw, ok := cachedRecord(ctx, deps.Cache, cacheSectionCourses, query.CourseID); ok {
		return GetCourseDetailResult{Course: mapCourse(raw), Stale: true}, nil
	}
	if err != nil {
		return GetCourseDetailResult{}, err
	}
	return GetCourseDetailResult{}, errNotFound("course", query.CourseID)
}
