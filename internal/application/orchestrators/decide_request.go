package orchestrators

import (
	"context"
	"log/slog"
	"net/http"

	domainRequest "fitfront/internal/domain/request"
	"fitfront/internal/reconcile"
)

// RequestFetcher loads the current state of one request before a decision.
type RequestFetcher interface {
	FetchOne(ctx context.Context, token, url string) (any, error)
}

// CourseRequestCanceller walks the historical cancel paths for course
// requests, including the misspelled one.
type CourseRequestCanceller interface {
	CancelCourseRequest(ctx context.Context, token, id string) error
}

// DecideRequestInput identifies the request and the decision.
type DecideRequestInput struct {
	Token     string
	Kind      string // request.KindTraining or request.KindCourse
	RequestID string
	Approve   bool
}

// DecideRequestDeps holds dependencies for request decisions.
type DecideRequestDeps struct {
	Mutator   Mutator
	Fetcher   RequestFetcher
	Canceller CourseRequestCanceller
	Lister    Lister
	Cache     CacheStore
}

// ExecuteDecideRequest approves or cancels an intake request. The current
// status is re-fetched first: only pending requests transition, and a
// request already decided elsewhere surfaces ErrNotPending instead of
// silently re-posting.
// POST: request is approved or cancelled upstream; cached section refreshed
func ExecuteDecideRequest(ctx context.Context, input DecideRequestInput, deps DecideRequestDeps) error {
	ep := deps.Mutator.Endpoints().Admin()
	routes := ep.TrainingRequests
	section := sectionTraining
	reconcileSection := reconcile.SectionTraining
	if input.Kind == domainRequest.KindCourse {
		routes = ep.CourseRequests
		section = sectionCourseRequests
		reconcileSection = reconcile.SectionCourses
	}

	// Guard on the live status, not whatever the table showed.
	payload, err := deps.Fetcher.FetchOne(ctx, input.Token, routes.GetByID(input.RequestID))
	if err != nil {
		return err
	}
	rec := reconcile.Reconcile(reconcileSection, payload, input.RequestID)
	req := domainRequest.Request{ID: rec.ID, Kind: input.Kind, Status: rec.Status}
	if input.Approve {
		err = req.Approve()
	} else {
		err = req.Cancel()
	}
	if err != nil {
		return err
	}

	if input.Approve {
		result, err := deps.Mutator.Mutate(ctx, input.Token, http.MethodPost, routes.Approve(input.RequestID), nil)
		if err != nil {
			return err
		}
		if err := mutationError(result); err != nil {
			return err
		}
	} else if input.Kind == domainRequest.KindCourse && deps.Canceller != nil {
		if err := deps.Canceller.CancelCourseRequest(ctx, input.Token, input.RequestID); err != nil {
			return err
		}
	} else {
		result, err := deps.Mutator.Mutate(ctx, input.Token, http.MethodPost, routes.Cancel(input.RequestID), nil)
		if err != nil {
			return err
		}
		if err := mutationError(result); err != nil {
			return err
		}
	}

	slog.Info("admin_event", "event", "request_decided", "kind", input.Kind, "id", input.RequestID, "approved", input.Approve)
	refreshSection(ctx, deps.Lister, deps.Cache, input.Token, routes.List(), section)
	return nil
}

// ExecuteDeleteRequest removes a request record outright. No status guard:
// deletion is allowed from any state.
func ExecuteDeleteRequest(ctx context.Context, token, kind, id string, deps DecideRequestDeps) error {
	ep := deps.Mutator.Endpoints().Admin()
	routes := ep.TrainingRequests
	section := sectionTraining
	if kind == domainRequest.KindCourse {
		routes = ep.CourseRequests
		section = sectionCourseRequests
	}

	result, err := deps.Mutator.Mutate(ctx, token, http.MethodPost, routes.Delete(id), nil)
	if err != nil {
		return err
	}
	if err := mutationError(result); err != nil {
		return err
	}

	slog.Info("admin_event", "event", "request_deleted", "kind", kind, "id", id)
	refreshSection(ctx, deps.Lister, deps.Cache, token, routes.List(), section)
	return nil
}
