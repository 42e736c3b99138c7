package projections

import (
	"context"

	"fitfront/internal/application/listutil"
	domainRequest "fitfront/internal/domain/request"
	"fitfront/internal/reconcile"
)

// GetRequestListQuery carries query parameters.
type GetRequestListQuery struct {
	Token  string
	Kind   string // request.KindTraining or request.KindCourse
	Params listutil.ListParams
}

// GetRequestListResult carries the query result.
type GetRequestListResult struct {
	Requests []domainRequest.Request
	PageInfo listutil.PageInfo
	Stale    bool
}

// GetRequestListDeps holds dependencies for GetRequestList.
type GetRequestListDeps struct {
	Fetcher Fetcher
	Cache   CacheStore
}

// QueryGetRequestList retrieves training or course requests for the back
// office. Request payloads are the least stable surface the upstream has;
// every element goes through the reconciler.
func QueryGetRequestList(ctx context.Context, query GetRequestListQuery, deps GetRequestListDeps) (GetRequestListResult, error) {
	ep := deps.Fetcher.Endpoints()
	url := ep.Admin().TrainingRequests.List()
	section := cacheSectionTraining
	reconcileSection := reconcile.SectionTraining
	if query.Kind == domainRequest.KindCourse {
		url = ep.Admin().CourseRequests.List()
		section = cacheSectionCourseRequests
		reconcileSection = reconcile.SectionCourses
	}

	raws, stale, err := fetchListWithFallback(ctx, deps.Fetcher, deps.Cache, query.Token, url, section)
	if err != nil {
		return GetRequestListResult{}, err
	}

	requests := make([]domainRequest.Request, 0, len(raws))
	for _, raw := range raws {
		rec := reconcile.Reconcile(reconcileSection, raw, "")
		requests = append(requests, mapRequest(query.Kind, raw, rec))
	}

	requests = listutil.Search(requests, query.Params.Search, func(r domainRequest.Request) []string {
		return []string{r.Name, r.Email, r.Goal, r.CourseTitle}
	})
	requests = listutil.Filter(requests, query.Params.Filters["status"], func(r domainRequest.Request) string {
		return r.Status
	})

	pageItems, pageInfo := listutil.Page(requests, query.Params.Page, query.Params.PerPage)
	return GetRequestListResult{Requests: pageItems, PageInfo: pageInfo, Stale: stale}, nil
}

// mapRequest builds a domain request from a reconciled record.
func mapRequest(kind string, raw reconcile.Raw, rec reconcile.Record) domainRequest.Request {
	return domainRequest.Request{
		ID:          rec.ID,
		Kind:        kind,
		Name:        rec.CustomerName,
		Email:       rec.CustomerEmail,
		Phone:       rec.CustomerPhone,
		Status:      rec.Status,
		CreatedAt:   rec.CreatedAt,
		Goal:        rec.Goal,
		HealthNotes: rec.HealthNotes,
		CourseID:    reconcile.StringAt(raw, "", "course_id", "courseId", "course.id"),
		CourseTitle: rec.CourseTitle,
	}
}
