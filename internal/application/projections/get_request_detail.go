package projections

import (
	"context"

	domainRequest "fitfront/internal/domain/request"
	"fitfront/internal/reconcile"
)

// GetRequestDetailQuery carries query parameters.
type GetRequestDetailQuery struct {
	Token     string
	Kind      string
	RequestID string
}

// GetRequestDetailResult carries the query result.
type GetRequestDetailResult struct {
	Request domainRequest.Request
	Stale   bool
}

// GetRequestDetailDeps holds dependencies for GetRequestDetail.
type GetRequestDetailDeps struct {
	Fetcher Fetcher
	Cache   CacheStore
}

// QueryGetRequestDetail retrieves one training or course request.
func QueryGetRequestDetail(ctx context.Context, query GetRequestDetailQuery, deps GetRequestDetailDeps) (GetRequestDetailResult, error) {
	ep := deps.Fetcher.Endpoints()
	url := ep.Admin().TrainingRequests.GetByID(query.RequestID)
	section := cacheSectionTraining
	reconcileSection := reconcile.SectionTraining
	if query.Kind == domainRequest.KindCourse {
		url = ep.Admin().CourseRequests.GetByID(query.RequestID)
		section = cacheSectionCourseRequests
		reconcileSection = reconcile.SectionCourses
	}

	var raw reconcile.Raw
	stale := false
	payload, err := deps.Fetcher.FetchOne(ctx, query.Token, url)
	if err == nil {
		if obj, ok := reconcile.AsObject(payload); ok {
			raw = obj
		}
	}
	if raw == nil {
		cached, ok := cachedRecord(ctx, deps.Cache, section, query.RequestID)
		if !ok {
			if err != nil {
				return GetRequestDetailResult{}, err
			}
			return GetRequestDetailResult{}, errNotFound("request", query.RequestID)
		}
		raw = cached
		stale = true
	}

	rec := reconcile.Reconcile(reconcileSection, raw, query.RequestID)
	return GetRequestDetailResult{Request: mapRequest(query.Kind, raw, rec), Stale: stale}, nil
}
