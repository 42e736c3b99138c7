package web

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"fitfront/internal/application/listutil"
	"fitfront/internal/application/orchestrators"
	"fitfront/internal/application/projections"
	domainRequest "fitfront/internal/domain/request"
)

func decideRequestDeps() orchestrators.DecideRequestDeps {
	return orchestrators.DecideRequestDeps{
		Mutator:   backends.Mutator,
		Fetcher:   backends.Fetcher,
		Canceller: backends.Canceller,
		Lister:    backends.Fetcher,
		Cache:     backends.Cache,
	}
}

// handleAdminOrders handles GET /admin/orders.
func handleAdminOrders(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	lp := listutil.ParseListParams(r.URL.Query(), []string{"created_at", "total", "status"}, []string{"status"})
	result, err := projections.QueryGetOrderList(r.Context(),
		projections.GetOrderListQuery{Token: sessionToken(r), Params: lp, Admin: true},
		projections.GetOrderListDeps{Fetcher: backends.Fetcher, Cache: backends.Cache})
	if err != nil {
		adminReadFailed(w, r, err, "admin_orders.html", map[string]any{"Params": lp})
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "admin_orders.html", map[string]any{
			"Orders":   result.Orders,
			"PageInfo": result.PageInfo,
			"Params":   lp,
			"Stale":    result.Stale,
		})
		return
	}
	writeJSON(w, result)
}

// handleAdminOrderDetail handles GET /admin/orders/{id}: the reconciled
// order with item names backfilled.
func handleAdminOrderDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id := pathSuffix(r, "/admin/orders/")
	if id == "" {
		http.NotFound(w, r)
		return
	}

	result, err := projections.QueryGetOrderDetail(r.Context(),
		projections.GetOrderDetailQuery{Token: sessionToken(r), OrderID: id, Admin: true},
		projections.GetOrderDetailDeps{Fetcher: backends.Fetcher, Cache: backends.Cache})
	if err != nil {
		orderDetailFailed(w, r, err, "/admin/orders")
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "order_detail.html", map[string]any{
			"Order":   result.Order,
			"Stale":   result.Stale,
			"BackTo":  "/admin/orders",
			"IsAdmin": true,
		})
		return
	}
	writeJSON(w, result)
}

// decision reads the record id and the Approve/Cancel action from the
// request. ok is false for anything unrecognized.
func decision(r *http.Request) (id string, approve, ok bool) {
	action := ""
	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			return "", false, false
		}
		id = r.FormValue("ID")
		action = r.FormValue("Action")
	} else {
		var body struct{ ID, Action string }
		if err := strictDecode(r, &body); err != nil {
			return "", false, false
		}
		id = body.ID
		action = body.Action
	}
	if id == "" {
		return "", false, false
	}
	switch strings.ToLower(action) {
	case "approve":
		return id, true, true
	case "cancel":
		return id, false, true
	}
	return "", false, false
}

// handleAdminOrderDecide handles POST /admin/orders/decide.
func handleAdminOrderDecide(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id, approve, ok := decision(r)
	if !ok {
		http.Error(w, "ID and an approve or cancel action are required", http.StatusBadRequest)
		return
	}

	err := orchestrators.ExecuteDecideOrder(r.Context(), orchestrators.DecideOrderInput{
		Token:   sessionToken(r),
		OrderID: id,
		Approve: approve,
	}, orchestrators.DecideOrderDeps{
		Mutator: backends.Mutator,
		Fetcher: backends.Fetcher,
		Lister:  backends.Fetcher,
		Cache:   backends.Cache,
	})
	if err != nil {
		mutationFailed(w, r, err, "/admin/orders")
		return
	}
	mutationDone(w, r, "/admin/orders")
}

// handleAdminOrderDelete handles POST /admin/orders/delete.
func handleAdminOrderDelete(w http.ResponseWriter, r *http.Request) {
	deleteEntity(w, r, "/admin/orders", func(id string) error {
		return orchestrators.ExecuteDeleteOrder(r.Context(), sessionToken(r), id, orchestrators.DecideOrderDeps{
			Mutator: backends.Mutator,
			Fetcher: backends.Fetcher,
			Lister:  backends.Fetcher,
			Cache:   backends.Cache,
		})
	})
}

// handleAdminBookings handles GET /admin/bookings.
func handleAdminBookings(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	lp := listutil.ParseListParams(r.URL.Query(), []string{"date", "status"}, []string{"status"})
	result, err := projections.QueryGetBookingList(r.Context(),
		projections.AdminListQuery{Token: sessionToken(r), Params: lp}, adminListDeps())
	if err != nil {
		adminReadFailed(w, r, err, "admin_bookings.html", map[string]any{"Params": lp})
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "admin_bookings.html", map[string]any{
			"Bookings": result.Bookings,
			"PageInfo": result.PageInfo,
			"Params":   lp,
		})
		return
	}
	writeJSON(w, result)
}

// handleAdminBookingDecide handles POST /admin/bookings/decide.
func handleAdminBookingDecide(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id, approve, ok := decision(r)
	if !ok {
		http.Error(w, "ID and an approve or cancel action are required", http.StatusBadRequest)
		return
	}

	err := orchestrators.ExecuteDecideBooking(r.Context(), orchestrators.DecideBookingInput{
		Token:     sessionToken(r),
		BookingID: id,
		Approve:   approve,
	}, orchestrators.DecideBookingDeps{
		Mutator: backends.Mutator,
		Fetcher: backends.Fetcher,
		Email:   backends.Email,
	})
	if err != nil {
		mutationFailed(w, r, err, "/admin/bookings")
		return
	}
	mutationDone(w, r, "/admin/bookings")
}

// handleAdminBookingDelete handles POST /admin/bookings/delete.
func handleAdminBookingDelete(w http.ResponseWriter, r *http.Request) {
	deleteEntity(w, r, "/admin/bookings", func(id string) error {
		return orchestrators.ExecuteDeleteBooking(r.Context(), sessionToken(r), id, orchestrators.DecideBookingDeps{
			Mutator: backends.Mutator,
			Fetcher: backends.Fetcher,
			Email:   backends.Email,
		})
	})
}

// requestBase returns the admin page root for one intake kind.
func requestBase(kind string) string {
	if kind == domainRequest.KindCourse {
		return "/admin/course-requests"
	}
	return "/admin/training-requests"
}

// handleRequestList returns the GET handler for one intake kind's table.
func handleRequestList(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		lp := listutil.ParseListParams(r.URL.Query(), []string{"name", "created_at", "status"}, []string{"status"})
		result, err := projections.QueryGetRequestList(r.Context(),
			projections.GetRequestListQuery{Token: sessionToken(r), Kind: kind, Params: lp},
			projections.GetRequestListDeps{Fetcher: backends.Fetcher, Cache: backends.Cache})
		if err != nil {
			adminReadFailed(w, r, err, "admin_requests.html", map[string]any{"Params": lp, "Kind": kind})
			return
		}

		if isHTMLRequest(r) {
			renderTemplate(w, r, "admin_requests.html", map[string]any{
				"Requests": result.Requests,
				"PageInfo": result.PageInfo,
				"Params":   lp,
				"Kind":     kind,
				"Base":     requestBase(kind),
				"Stale":    result.Stale,
			})
			return
		}
		writeJSON(w, result)
	}
}

// handleRequestDetail returns the GET handler for one intake record.
func handleRequestDetail(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		id := pathSuffix(r, requestBase(kind)+"/")
		if id == "" {
			http.NotFound(w, r)
			return
		}

		result, err := projections.QueryGetRequestDetail(r.Context(),
			projections.GetRequestDetailQuery{Token: sessionToken(r), Kind: kind, RequestID: id},
			projections.GetRequestDetailDeps{Fetcher: backends.Fetcher, Cache: backends.Cache})
		if err != nil {
			orderDetailFailed(w, r, err, requestBase(kind))
			return
		}

		if isHTMLRequest(r) {
			renderTemplate(w, r, "admin_request_detail.html", map[string]any{
				"Request": result.Request,
				"Kind":    kind,
				"Base":    requestBase(kind),
				"Stale":   result.Stale,
			})
			return
		}
		writeJSON(w, result)
	}
}

// handleRequestDecide returns the POST approve/cancel handler for one kind.
func handleRequestDecide(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		id, approve, ok := decision(r)
		if !ok {
			http.Error(w, "ID and an approve or cancel action are required", http.StatusBadRequest)
			return
		}

		err := orchestrators.ExecuteDecideRequest(r.Context(), orchestrators.DecideRequestInput{
			Token:     sessionToken(r),
			Kind:      kind,
			RequestID: id,
			Approve:   approve,
		}, decideRequestDeps())
		if err != nil {
			mutationFailed(w, r, err, requestBase(kind))
			return
		}
		mutationDone(w, r, requestBase(kind))
	}
}

// handleRequestDelete returns the POST delete handler for one kind.
func handleRequestDelete(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deleteEntity(w, r, requestBase(kind), func(id string) error {
			return orchestrators.ExecuteDeleteRequest(r.Context(), sessionToken(r), kind, id, decideRequestDeps())
		})
	}
}

// handleRequestBulk returns the POST bulk action handler for one kind. The
// result is reported coarsely: a flash with the failure count, or the full
// per-row breakdown for JSON clients.
func handleRequestBulk(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		input := orchestrators.BulkRequestInput{Token: sessionToken(r), Kind: kind}
		if isFormRequest(r) {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Invalid form submission", http.StatusBadRequest)
				return
			}
			input.Action = r.FormValue("Action")
			input.RequestIDs = r.Form["ID"]
		} else {
			var body struct {
				Action string
				IDs    []string
			}
			if err := strictDecode(r, &body); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}
			input.Action = body.Action
			input.RequestIDs = body.IDs
		}

		result := orchestrators.ExecuteBulkRequestAction(r.Context(), input, decideRequestDeps())

		if isHTMLRequest(r) {
			target := requestBase(kind)
			if result.Failed > 0 {
				flash := fmt.Sprintf("could not process %d of %d requests", result.Failed, result.Failed+result.Succeeded)
				target += "?error=" + url.QueryEscape(flash)
			}
			http.Redirect(w, r, target, http.StatusSeeOther)
			return
		}
		writeJSON(w, map[string]any{
			"succeeded": result.Succeeded,
			"failed":    result.Failed,
			"items":     bulkItems(result),
		})
	}
}

// bulkItems flattens per-row outcomes for the JSON response.
func bulkItems(result orchestrators.BulkRequestResult) []map[string]string {
	items := make([]map[string]string, 0, len(result.Items))
	for _, item := range result.Items {
		entry := map[string]string{"id": item.RequestID, "status": "ok"}
		if item.Err != nil {
			entry["status"] = "failed"
			entry["error"] = item.Err.Error()
		}
		items = append(items, entry)
	}
	return items
}
