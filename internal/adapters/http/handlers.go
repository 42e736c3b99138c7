package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/csrf"

	"fitfront/internal/adapters/email"
	"fitfront/internal/adapters/http/middleware"
	"fitfront/internal/adapters/upstream"
	"fitfront/internal/application/listutil"
	"fitfront/internal/application/orchestrators"
	"fitfront/internal/application/projections"
	domainProduct "fitfront/internal/domain/product"
	domainPromo "fitfront/internal/domain/promocode"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

const templatesDir = "internal/adapters/http/templates"

func isHTMLRequest(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html") || strings.Contains(accept, "application/xhtml+xml")
}

func isFormRequest(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") ||
		strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	role := ""
	name := ""
	email := ""
	if ok {
		role = sess.Role
		name = sess.Name
		email = sess.Email
	}
	isAdmin := ok && sess.IsAdmin()

	funcMap := template.FuncMap{
		"currentRole":  func() string { return role },
		"currentName":  func() string { return name },
		"currentEmail": func() string { return email },
		"isLoggedIn":   func() bool { return role != "" },
		"isAdmin":      func() bool { return isAdmin },
		"csrfToken":    func() string { return csrf.Token(r) },
		"flashError":   func() string { return r.URL.Query().Get("error") },
		"flashNotice":  func() string { return r.URL.Query().Get("notice") },
		"priceLabel":   domainProduct.PriceLabel,
		"renderMarkdown": func(md string) template.HTML {
			return projections.RenderMarkdown(md)
		},
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		"paginationQuery": func(page int, lp listutil.ListParams) template.URL {
			q := fmt.Sprintf("page=%d&per_page=%d", page, lp.PerPage)
			if lp.Sort != "" {
				q += "&sort=" + lp.Sort + "&dir=" + lp.Dir
			}
			if lp.Search != "" {
				q += "&q=" + url.QueryEscape(lp.Search)
			}
			for key, val := range lp.Filters {
				q += "&" + key + "=" + url.QueryEscape(val)
			}
			return template.URL(q)
		},
		"stripeRange": func(n int) []int {
			s := make([]int, n)
			for i := range s {
				s[i] = i
			}
			return s
		},
	}

	layoutPath := filepath.Join(templatesDir, "layout.html")
	pagePath := filepath.Join(templatesDir, templateName)
	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFiles(layoutPath, pagePath)
	if err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		http.Error(w, "Render error: "+err.Error(), http.StatusInternalServerError)
		return
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// authRejected reports whether an upstream error is a 401/403 rejection
// rather than a transport or server failure.
func authRejected(err error) bool {
	if errors.Is(err, upstream.ErrUnauthorized) {
		return true
	}
	var se *upstream.StatusError
	if errors.As(err, &se) {
		return se.Code == http.StatusUnauthorized || se.Code == http.StatusForbidden
	}
	return false
}

// readFailed applies the public read error policy: an auth rejection renders
// the empty-state page (anonymous visitors browse what the cache has), any
// other failure renders the page with a load error banner. JSON clients get
// a 502 either way.
// POST: a response has been written
func readFailed(w http.ResponseWriter, r *http.Request, err error, templateName string, emptyData map[string]any) {
	slog.Warn("read_failed", "path", r.URL.Path, "error", err.Error())
	if !isHTMLRequest(r) {
		w.WriteHeader(http.StatusBadGateway)
		writeJSON(w, map[string]string{"error": "upstream unavailable"})
		return
	}
	if emptyData == nil {
		emptyData = map[string]any{}
	}
	if !authRejected(err) {
		emptyData["LoadError"] = true
	}
	renderTemplate(w, r, templateName, emptyData)
}

// mutationFailed applies the write error policy: HTML clients are redirected
// back with a flash error (stay on page), JSON clients get the error body.
// POST: a response has been written
func mutationFailed(w http.ResponseWriter, r *http.Request, err error, backTo string) {
	slog.Warn("mutation_failed", "path", r.URL.Path, "error", err.Error())
	if isHTMLRequest(r) {
		http.Redirect(w, r, backTo+"?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}
	status := http.StatusBadRequest
	if authRejected(err) {
		status = http.StatusUnauthorized
	}
	w.WriteHeader(status)
	writeJSON(w, map[string]string{"error": err.Error()})
}

// mutationDone completes a successful write: redirect for HTML, 204 for JSON.
func mutationDone(w http.ResponseWriter, r *http.Request, backTo string) {
	if isHTMLRequest(r) {
		http.Redirect(w, r, backTo, http.StatusSeeOther)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// sessionToken returns the upstream bearer token for the current request,
// "" for anonymous visitors.
func sessionToken(r *http.Request) string {
	return middleware.TokenFromContext(r.Context())
}

// pathSuffix extracts the single trailing path segment after prefix, or "".
func pathSuffix(r *http.Request, prefix string) string {
	id := strings.TrimPrefix(r.URL.Path, prefix)
	if id == "" || strings.Contains(id, "/") {
		return ""
	}
	return id
}

func atoiOrZero(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// isNotFound reports whether an error means the record does not exist, in
// either the projection's or the upstream client's vocabulary.
func isNotFound(err error) bool {
	var nf *projections.NotFoundError
	return errors.As(err, &nf) || errors.Is(err, upstream.ErrNotFound)
}

// orderDetailFailed handles a failed detail read: unknown record is a 404,
// anything else sends the visitor back with a flash error.
func orderDetailFailed(w http.ResponseWriter, r *http.Request, err error, backTo string) {
	if isNotFound(err) {
		http.NotFound(w, r)
		return
	}
	mutationFailed(w, r, err, backTo)
}

// promoCatalog resolves promo codes at checkout against the upstream table.
type promoCatalog struct{}

func (promoCatalog) FindPromoCode(ctx context.Context, token, code string) (domainPromo.PromoCode, bool, error) {
	return projections.QueryFindPromoCode(ctx, token, code,
		projections.AdminListDeps{Fetcher: backends.Fetcher, Cache: backends.Cache})
}

// handleHome renders the storefront landing page with a small product and
// course sample. Failures degrade to an empty landing page.
func handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()
	token := sessionToken(r)

	sample := listutil.ListParams{Page: 1, PerPage: 4, Filters: map[string]string{}}
	products, _ := projections.QueryGetProductList(ctx, projections.GetProductListQuery{Token: token, Params: sample},
		projections.GetProductListDeps{Fetcher: backends.Fetcher, Cache: backends.Cache})
	courses, _ := projections.QueryGetCourseList(ctx, projections.GetCourseListQuery{Token: token, Params: sample},
		projections.GetCourseListDeps{Fetcher: backends.Fetcher, Cache: backends.Cache})

	if isHTMLRequest(r) {
		renderTemplate(w, r, "home.html", map[string]any{
			"Products": products.Products,
			"Courses":  courses.Courses,
		})
		return
	}
	writeJSON(w, map[string]any{"products": products.Products, "courses": courses.Courses})
}

// handleProducts handles GET /products: the storefront catalog with search,
// category filter, sort, and pagination.
func handleProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()
	lp := listutil.ParseListParams(r.URL.Query(), []string{"name", "price", "stock"}, []string{"category"})

	result, err := projections.QueryGetProductList(ctx,
		projections.GetProductListQuery{Token: sessionToken(r), Params: lp},
		projections.GetProductListDeps{Fetcher: backends.Fetcher, Cache: backends.Cache})
	if err != nil {
		readFailed(w, r, err, "product_list.html", map[string]any{"Params": lp})
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "product_list.html", map[string]any{
			"Products":   result.Products,
			"Categories": result.Categories,
			"PageInfo":   result.PageInfo,
			"Params":     lp,
			"Stale":      result.Stale,
		})
		return
	}
	writeJSON(w, result)
}

// handleProductDetail handles GET /products/{id}.
func handleProductDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/products/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	result, err := projections.QueryGetProductDetail(r.Context(),
		projections.GetProductDetailQuery{Token: sessionToken(r), ProductID: id},
		projections.GetProductDetailDeps{Fetcher: backends.Fetcher, Cache: backends.Cache})
	if err != nil {
		if isNotFound(err) {
			http.NotFound(w, r)
			return
		}
		readFailed(w, r, err, "product_detail.html", nil)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "product_detail.html", map[string]any{
			"Product": result.Product,
			"Stale":   result.Stale,
		})
		return
	}
	writeJSON(w, result)
}

// handleCourses handles GET /courses.
func handleCourses(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	lp := listutil.ParseListParams(r.URL.Query(), []string{"title", "price"}, nil)

	result, err := projections.QueryGetCourseList(r.Context(),
		projections.GetCourseListQuery{Token: sessionToken(r), Params: lp},
		projections.GetCourseListDeps{Fetcher: backends.Fetcher, Cache: backends.Cache})
	if err != nil {
		readFailed(w, r, err, "course_list.html", map[string]any{"Params": lp})
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "course_list.html", map[string]any{
			"Courses":  result.Courses,
			"PageInfo": result.PageInfo,
			"Params":   lp,
			"Stale":    result.Stale,
		})
		return
	}
	writeJSON(w, result)
}

// handleCourseDetail handles GET /courses/{id}: the course outline plus the
// enrollment request form.
func handleCourseDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/courses/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	result, err := projections.QueryGetCourseDetail(r.Context(),
		projections.GetCourseDetailQuery{Token: sessionToken(r), CourseID: id},
		projections.GetCourseDetailDeps{Fetcher: backends.Fetcher, Cache: backends.Cache})
	if err != nil {
		if isNotFound(err) {
			http.NotFound(w, r)
			return
		}
		readFailed(w, r, err, "course_detail.html", nil)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "course_detail.html", map[string]any{
			"Course": result.Course,
			"Stale":  result.Stale,
		})
		return
	}
	writeJSON(w, result)
}

// handleServices handles GET /services: bookable services with the booking
// form.
func handleServices(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	lp := listutil.ParseListParams(r.URL.Query(), []string{"name", "price"}, nil)

	result, err := projections.QueryGetServiceList(r.Context(),
		projections.GetServiceListQuery{Token: sessionToken(r), Params: lp},
		projections.GetServiceListDeps{Fetcher: backends.Fetcher, Cache: backends.Cache})
	if err != nil {
		readFailed(w, r, err, "service_list.html", map[string]any{"Params": lp})
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "service_list.html", map[string]any{
			"Services": result.Services,
			"PageInfo": result.PageInfo,
			"Params":   lp,
			"Stale":    result.Stale,
		})
		return
	}
	writeJSON(w, result)
}

// handleBlog handles GET /blog.
func handleBlog(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	lp := listutil.ParseListParams(r.URL.Query(), []string{"title", "author"}, []string{"category"})

	result, err := projections.QueryGetBlogList(r.Context(),
		projections.GetBlogListQuery{Token: sessionToken(r), Params: lp},
		projections.GetBlogListDeps{Fetcher: backends.Fetcher, Cache: backends.Cache})
	if err != nil {
		readFailed(w, r, err, "blog_list.html", map[string]any{"Params": lp})
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "blog_list.html", map[string]any{
			"Posts":      result.Posts,
			"Categories": result.Categories,
			"PageInfo":   result.PageInfo,
			"Params":     lp,
			"Stale":      result.Stale,
		})
		return
	}
	writeJSON(w, result)
}

// handleBlogDetail handles GET /blog/{id}: one post with its markdown body
// rendered to HTML.
func handleBlogDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/blog/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	result, err := projections.QueryGetBlogDetail(r.Context(),
		projections.GetBlogDetailQuery{Token: sessionToken(r), PostID: id},
		projections.GetBlogDetailDeps{Fetcher: backends.Fetcher, Cache: backends.Cache})
	if err != nil {
		if isNotFound(err) {
			http.NotFound(w, r)
			return
		}
		readFailed(w, r, err, "blog_detail.html", nil)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "blog_detail.html", map[string]any{
			"Post":     result.Post,
			"Rendered": result.RenderedHTML,
			"Stale":    result.Stale,
		})
		return
	}
	writeJSON(w, map[string]any{"post": result.Post, "stale": result.Stale})
}

// handleBookings handles POST /bookings: the public service booking form.
func handleBookings(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	input := orchestrators.SubmitBookingInput{Token: sessionToken(r)}
	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.ServiceID = r.FormValue("ServiceID")
		input.ServiceName = r.FormValue("ServiceName")
		input.CustomerName = r.FormValue("CustomerName")
		input.CustomerEmail = r.FormValue("CustomerEmail")
		input.CustomerPhone = r.FormValue("CustomerPhone")
		input.Date = r.FormValue("Date")
		input.Notes = r.FormValue("Notes")
	} else {
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
	}

	err := orchestrators.ExecuteSubmitBooking(r.Context(), input,
		orchestrators.SubmitBookingDeps{Mutator: backends.Mutator, Email: backends.Email})
	if err != nil {
		mutationFailed(w, r, err, "/services")
		return
	}

	notifyAdmin(r, "New booking", fmt.Sprintf(
		"<p>%s booked %s for %s.</p>", input.CustomerName, input.ServiceName, input.Date))
	mutationDone(w, r, "/services?notice="+url.QueryEscape("Booking received"))
}

// handleTrainingRequests handles POST /training-requests: the personal
// training intake form.
func handleTrainingRequests(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	input := orchestrators.SubmitTrainingRequestInput{Token: sessionToken(r)}
	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.Name = r.FormValue("Name")
		input.Email = r.FormValue("Email")
		input.Phone = r.FormValue("Phone")
		input.Goal = r.FormValue("Goal")
		input.HealthNotes = r.FormValue("HealthNotes")
	} else {
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
	}

	err := orchestrators.ExecuteSubmitTrainingRequest(r.Context(), input,
		orchestrators.SubmitRequestDeps{Mutator: backends.Mutator})
	if err != nil {
		mutationFailed(w, r, err, "/")
		return
	}
	notifyAdmin(r, "New training request", fmt.Sprintf("<p>%s (%s) asked about personal training.</p>", input.Name, input.Email))
	mutationDone(w, r, "/?notice="+url.QueryEscape("Request received"))
}

// handleCourseRequests handles POST /course-requests: enrollment interest
// submitted from a course page.
func handleCourseRequests(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	input := orchestrators.SubmitCourseRequestInput{Token: sessionToken(r)}
	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.Name = r.FormValue("Name")
		input.Email = r.FormValue("Email")
		input.Phone = r.FormValue("Phone")
		input.CourseID = r.FormValue("CourseID")
		input.CourseTitle = r.FormValue("CourseTitle")
	} else {
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
	}

	err := orchestrators.ExecuteSubmitCourseRequest(r.Context(), input,
		orchestrators.SubmitRequestDeps{Mutator: backends.Mutator})
	if err != nil {
		mutationFailed(w, r, err, "/courses/"+input.CourseID)
		return
	}
	mutationDone(w, r, "/courses/"+input.CourseID+"?notice="+url.QueryEscape("Enrollment request received"))
}

// notifyAdmin sends a best-effort notification to the configured admin
// address. No address or no sender means no email.
func notifyAdmin(r *http.Request, subject, html string) {
	if backends.Email == nil || adminNotifyAddress == "" {
		return
	}
	_, err := backends.Email.Send(r.Context(), email.SendRequest{
		To:      []string{adminNotifyAddress},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		slog.Warn("admin_notify_failed", "subject", subject, "error", err.Error())
	}
}
