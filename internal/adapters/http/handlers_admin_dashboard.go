package web

import (
	"net/http"
	"strconv"
	"time"

	"fitfront/internal/application/projections"
)

// handleAdminDashboard handles GET /admin: the seven-panel aggregate. Panels
// the upstream failed to serve are listed so the page can mark them.
func handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/admin" && r.URL.Path != "/admin/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	result, err := projections.QueryGetDashboard(r.Context(),
		projections.GetDashboardQuery{Token: sessionToken(r)},
		projections.GetDashboardDeps{Fetcher: backends.Fetcher, Cache: backends.Cache})
	if err != nil {
		adminReadFailed(w, r, err, "admin_dashboard.html", nil)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "admin_dashboard.html", map[string]any{
			"Dashboard": result,
		})
		return
	}
	writeJSON(w, result)
}

// handleAdminPerf handles GET /admin/perf: aggregated timing stats from the
// ring buffer. ?since_minutes=N narrows the window, ?top=N the list length.
func handleAdminPerf(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if perfCollector == nil {
		http.Error(w, "perf collection disabled", http.StatusNotFound)
		return
	}

	sinceMinutes := 60
	if v, err := strconv.Atoi(r.URL.Query().Get("since_minutes")); err == nil && v > 0 {
		sinceMinutes = v
	}
	topN := 10
	if v, err := strconv.Atoi(r.URL.Query().Get("top")); err == nil && v > 0 {
		topN = v
	}

	snapshot := perfCollector.Snapshot(timeNow().Add(-time.Duration(sinceMinutes)*time.Minute), topN)

	if isHTMLRequest(r) {
		renderTemplate(w, r, "admin_perf.html", map[string]any{
			"Snapshot":     snapshot,
			"SinceMinutes": sinceMinutes,
		})
		return
	}
	writeJSON(w, snapshot)
}
