package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"fitfront/internal/application/listutil"
	"fitfront/internal/application/orchestrators"
	"fitfront/internal/application/projections"
)

// catalogDeps bundles the standard write-side dependency set.
func catalogDeps() orchestrators.CatalogDeps {
	return orchestrators.CatalogDeps{
		Mutator: backends.Mutator,
		Lister:  backends.Fetcher,
		Cache:   backends.Cache,
	}
}

func adminListDeps() projections.AdminListDeps {
	return projections.AdminListDeps{Fetcher: backends.Fetcher, Cache: backends.Cache}
}

// parsePrice parses a money form field. Empty means zero.
func parsePrice(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price %q", s)
	}
	return d, nil
}

// handleAdminProducts handles GET (table) and POST (save) for /admin/products.
func handleAdminProducts(w http.ResponseWriter, r *http.Request) {
	token := sessionToken(r)

	if r.Method == "GET" {
		lp := listutil.ParseListParams(r.URL.Query(), []string{"name", "price", "stock"}, []string{"category"})
		result, err := projections.QueryGetProductList(r.Context(),
			projections.GetProductListQuery{Token: token, Params: lp, Admin: true},
			projections.GetProductListDeps{Fetcher: backends.Fetcher, Cache: backends.Cache})
		if err != nil {
			adminReadFailed(w, r, err, "admin_products.html", map[string]any{"Params": lp})
			return
		}
		if isHTMLRequest(r) {
			renderTemplate(w, r, "admin_products.html", map[string]any{
				"Products":   result.Products,
				"Categories": result.Categories,
				"PageInfo":   result.PageInfo,
				"Params":     lp,
				"Stale":      result.Stale,
			})
			return
		}
		writeJSON(w, result)
		return
	}

	if r.Method == "POST" {
		input := orchestrators.SaveProductInput{Token: token}
		if isFormRequest(r) {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Invalid form submission", http.StatusBadRequest)
				return
			}
			price, err := parsePrice(r.FormValue("Price"))
			if err != nil {
				mutationFailed(w, r, err, "/admin/products")
				return
			}
			input.ID = r.FormValue("ID")
			input.Name = r.FormValue("Name")
			input.Description = r.FormValue("Description")
			input.Price = price
			input.Stock = atoiOrZero(r.FormValue("Stock"))
			input.ImageURL = r.FormValue("ImageURL")
			input.CategoryID = r.FormValue("CategoryID")
		} else {
			if err := strictDecode(r, &input); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}
			input.Token = token
		}

		if err := orchestrators.ExecuteSaveProduct(r.Context(), input, catalogDeps()); err != nil {
			mutationFailed(w, r, err, "/admin/products")
			return
		}
		mutationDone(w, r, "/admin/products")
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleAdminProductDelete handles POST /admin/products/delete.
func handleAdminProductDelete(w http.ResponseWriter, r *http.Request) {
	deleteEntity(w, r, "/admin/products", func(id string) error {
		return orchestrators.ExecuteDeleteProduct(r.Context(), sessionToken(r), id, catalogDeps())
	})
}

// deleteEntity runs the shared delete flow: POST only, id from the form or
// JSON body, flash-redirect policy on failure.
func deleteEntity(w http.ResponseWriter, r *http.Request, backTo string, del func(id string) error) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id := entityID(r)
	if id == "" {
		http.Error(w, "ID is required", http.StatusBadRequest)
		return
	}
	if err := del(id); err != nil {
		mutationFailed(w, r, err, backTo)
		return
	}
	mutationDone(w, r, backTo)
}

// entityID reads the record id from a form post or a JSON body.
func entityID(r *http.Request) string {
	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			return ""
		}
		return r.FormValue("ID")
	}
	var body struct{ ID string }
	if err := strictDecode(r, &body); err != nil {
		return ""
	}
	return body.ID
}

// adminReadFailed handles a failed back-office read: a rejected token means
// the upstream session died, so the operator is sent back to the login
// screen. Anything else renders the table with a load error banner.
func adminReadFailed(w http.ResponseWriter, r *http.Request, err error, templateName string, emptyData map[string]any) {
	if authRejected(err) {
		if isHTMLRequest(r) {
			http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		writeJSON(w, map[string]string{"error": "session expired"})
		return
	}
	readFailed(w, r, err, templateName, emptyData)
}

// handleAdminCategories handles GET and POST for /admin/categories.
func handleAdminCategories(w http.ResponseWriter, r *http.Request) {
	token := sessionToken(r)

	if r.Method == "GET" {
		lp := listutil.ParseListParams(r.URL.Query(), []string{"name"}, nil)
		result, err := projections.QueryGetCategoryList(r.Context(),
			projections.AdminListQuery{Token: token, Params: lp}, adminListDeps())
		if err != nil {
			adminReadFailed(w, r, err, "admin_categories.html", map[string]any{"Params": lp})
			return
		}
		if isHTMLRequest(r) {
			renderTemplate(w, r, "admin_categories.html", map[string]any{
				"Categories": result.Categories,
				"PageInfo":   result.PageInfo,
				"Params":     lp,
				"Stale":      result.Stale,
			})
			return
		}
		writeJSON(w, result)
		return
	}

	if r.Method == "POST" {
		input := orchestrators.SaveCategoryInput{Token: token}
		if isFormRequest(r) {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Invalid form submission", http.StatusBadRequest)
				return
			}
			input.ID = r.FormValue("ID")
			input.Name = r.FormValue("Name")
			input.Description = r.FormValue("Description")
		} else {
			if err := strictDecode(r, &input); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}
			input.Token = token
		}

		if err := orchestrators.ExecuteSaveCategory(r.Context(), input, catalogDeps()); err != nil {
			mutationFailed(w, r, err, "/admin/categories")
			return
		}
		mutationDone(w, r, "/admin/categories")
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

func handleAdminCategoryDelete(w http.ResponseWriter, r *http.Request) {
	deleteEntity(w, r, "/admin/categories", func(id string) error {
		return orchestrators.ExecuteDeleteCategory(r.Context(), sessionToken(r), id, catalogDeps())
	})
}

// handleAdminCourses handles GET and POST for /admin/courses. The course
// outline (modules and chapters) arrives as a JSON blob from the form
// editor, or inline for JSON clients.
func handleAdminCourses(w http.ResponseWriter, r *http.Request) {
	token := sessionToken(r)

	if r.Method == "GET" {
		lp := listutil.ParseListParams(r.URL.Query(), []string{"title", "price"}, nil)
		result, err := projections.QueryGetCourseList(r.Context(),
			projections.GetCourseListQuery{Token: token, Params: lp, Admin: true},
			projections.GetCourseListDeps{Fetcher: backends.Fetcher, Cache: backends.Cache})
		if err != nil {
			adminReadFailed(w, r, err, "admin_courses.html", map[string]any{"Params": lp})
			return
		}
		if isHTMLRequest(r) {
			renderTemplate(w, r, "admin_courses.html", map[string]any{
				"Courses":  result.Courses,
				"PageInfo": result.PageInfo,
				"Params":   lp,
				"Stale":    result.Stale,
			})
			return
		}
		writeJSON(w, result)
		return
	}

	if r.Method == "POST" {
		input := orchestrators.SaveCourseInput{Token: token}
		if isFormRequest(r) {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Invalid form submission", http.StatusBadRequest)
				return
			}
			price, err := parsePrice(r.FormValue("Price"))
			if err != nil {
				mutationFailed(w, r, err, "/admin/courses")
				return
			}
			input.ID = r.FormValue("ID")
			input.Title = r.FormValue("Title")
			input.Description = r.FormValue("Description")
			input.Price = price
			input.ImageURL = r.FormValue("ImageURL")
			if outline := r.FormValue("ModulesJSON"); outline != "" {
				if err := json.Unmarshal([]byte(outline), &input.Modules); err != nil {
					mutationFailed(w, r, fmt.Errorf("invalid course outline: %w", err), "/admin/courses")
					return
				}
			}
		} else {
			if err := strictDecode(r, &input); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}
			input.Token = token
		}

		if err := orchestrators.ExecuteSaveCourse(r.Context(), input, catalogDeps()); err != nil {
			mutationFailed(w, r, err, "/admin/courses")
			return
		}
		mutationDone(w, r, "/admin/courses")
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

func handleAdminCourseDelete(w http.ResponseWriter, r *http.Request) {
	deleteEntity(w, r, "/admin/courses", func(id string) error {
		return orchestrators.ExecuteDeleteCourse(r.Context(), sessionToken(r), id, catalogDeps())
	})
}

// handleAdminBlogs handles GET and POST for /admin/blogs.
func handleAdminBlogs(w http.ResponseWriter, r *http.Request) {
	token := sessionToken(r)

	if r.Method == "GET" {
		lp := listutil.ParseListParams(r.URL.Query(), []string{"title", "author"}, []string{"category"})
		result, err := projections.QueryGetBlogList(r.Context(),
			projections.GetBlogListQuery{Token: token, Params: lp, Admin: true},
			projections.GetBlogListDeps{Fetcher: backends.Fetcher, Cache: backends.Cache})
		if err != nil {
			adminReadFailed(w, r, err, "admin_blogs.html", map[string]any{"Params": lp})
			return
		}
		if isHTMLRequest(r) {
			renderTemplate(w, r, "admin_blogs.html", map[string]any{
				"Posts":      result.Posts,
				"Categories": result.Categories,
				"PageInfo":   result.PageInfo,
				"Params":     lp,
				"Stale":      result.Stale,
			})
			return
		}
		writeJSON(w, result)
		return
	}

	if r.Method == "POST" {
		input := orchestrators.SaveBlogPostInput{Token: token}
		if isFormRequest(r) {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Invalid form submission", http.StatusBadRequest)
				return
			}
			input.ID = r.FormValue("ID")
			input.Title = r.FormValue("Title")
			input.Content = r.FormValue("Content")
			input.Author = r.FormValue("Author")
			input.CategoryID = r.FormValue("CategoryID")
			input.ImageURL = r.FormValue("ImageURL")
		} else {
			if err := strictDecode(r, &input); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}
			input.Token = token
		}

		if err := orchestrators.ExecuteSaveBlogPost(r.Context(), input, catalogDeps()); err != nil {
			mutationFailed(w, r, err, "/admin/blogs")
			return
		}
		mutationDone(w, r, "/admin/blogs")
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

func handleAdminBlogDelete(w http.ResponseWriter, r *http.Request) {
	deleteEntity(w, r, "/admin/blogs", func(id string) error {
		return orchestrators.ExecuteDeleteBlogPost(r.Context(), sessionToken(r), id, catalogDeps())
	})
}

// handleAdminBlogCategories handles GET and POST for /admin/blog-categories.
func handleAdminBlogCategories(w http.ResponseWriter, r *http.Request) {
	token := sessionToken(r)

	if r.Method == "GET" {
		// Blog categories ride along on the blog list projection.
		result, err := projections.QueryGetBlogList(r.Context(),
			projections.GetBlogListQuery{
				Token:  token,
				Params: listutil.ListParams{Page: 1, PerPage: 100, Filters: map[string]string{}},
				Admin:  true,
			},
			projections.GetBlogListDeps{Fetcher: backends.Fetcher, Cache: backends.Cache})
		if err != nil {
			adminReadFailed(w, r, err, "admin_blog_categories.html", nil)
			return
		}
		if isHTMLRequest(r) {
			renderTemplate(w, r, "admin_blog_categories.html", map[string]any{
				"Categories": result.Categories,
			})
			return
		}
		writeJSON(w, map[string]any{"categories": result.Categories})
		return
	}

	if r.Method == "POST" {
		input := orchestrators.SaveBlogCategoryInput{Token: token}
		if isFormRequest(r) {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Invalid form submission", http.StatusBadRequest)
				return
			}
			input.ID = r.FormValue("ID")
			input.Name = r.FormValue("Name")
		} else {
			if err := strictDecode(r, &input); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}
			input.Token = token
		}

		if err := orchestrators.ExecuteSaveBlogCategory(r.Context(), input, catalogDeps()); err != nil {
			mutationFailed(w, r, err, "/admin/blog-categories")
			return
		}
		mutationDone(w, r, "/admin/blog-categories")
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

func handleAdminBlogCategoryDelete(w http.ResponseWriter, r *http.Request) {
	deleteEntity(w, r, "/admin/blog-categories", func(id string) error {
		return orchestrators.ExecuteDeleteBlogCategory(r.Context(), sessionToken(r), id, catalogDeps())
	})
}

// handleAdminServices handles GET and POST for /admin/services.
func handleAdminServices(w http.ResponseWriter, r *http.Request) {
	token := sessionToken(r)

	if r.Method == "GET" {
		lp := listutil.ParseListParams(r.URL.Query(), []string{"name", "price"}, nil)
		result, err := projections.QueryGetServiceList(r.Context(),
			projections.GetServiceListQuery{Token: token, Params: lp, Admin: true},
			projections.GetServiceListDeps{Fetcher: backends.Fetcher, Cache: backends.Cache})
		if err != nil {
			adminReadFailed(w, r, err, "admin_services.html", map[string]any{"Params": lp})
			return
		}
		if isHTMLRequest(r) {
			renderTemplate(w, r, "admin_services.html", map[string]any{
				"Services": result.Services,
				"PageInfo": result.PageInfo,
				"Params":   lp,
				"Stale":    result.Stale,
			})
			return
		}
		writeJSON(w, result)
		return
	}

	if r.Method == "POST" {
		input := orchestrators.SaveServiceInput{Token: token}
		if isFormRequest(r) {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Invalid form submission", http.StatusBadRequest)
				return
			}
			price, err := parsePrice(r.FormValue("Price"))
			if err != nil {
				mutationFailed(w, r, err, "/admin/services")
				return
			}
			input.ID = r.FormValue("ID")
			input.Name = r.FormValue("Name")
			input.Description = r.FormValue("Description")
			input.Price = price
			input.DurationMinutes = atoiOrZero(r.FormValue("DurationMinutes"))
			input.ImageURL = r.FormValue("ImageURL")
		} else {
			if err := strictDecode(r, &input); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}
			input.Token = token
		}

		if err := orchestrators.ExecuteSaveService(r.Context(), input, catalogDeps()); err != nil {
			mutationFailed(w, r, err, "/admin/services")
			return
		}
		mutationDone(w, r, "/admin/services")
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

func handleAdminServiceDelete(w http.ResponseWriter, r *http.Request) {
	deleteEntity(w, r, "/admin/services", func(id string) error {
		return orchestrators.ExecuteDeleteService(r.Context(), sessionToken(r), id, catalogDeps())
	})
}

// handleAdminPromoCodes handles GET and POST for /admin/promocodes. The
// validity window arrives from HTML date inputs.
func handleAdminPromoCodes(w http.ResponseWriter, r *http.Request) {
	token := sessionToken(r)

	if r.Method == "GET" {
		lp := listutil.ParseListParams(r.URL.Query(), []string{"code"}, nil)
		result, err := projections.QueryGetPromoCodeList(r.Context(),
			projections.AdminListQuery{Token: token, Params: lp}, adminListDeps())
		if err != nil {
			adminReadFailed(w, r, err, "admin_promocodes.html", map[string]any{"Params": lp})
			return
		}
		if isHTMLRequest(r) {
			renderTemplate(w, r, "admin_promocodes.html", map[string]any{
				"PromoCodes": result.PromoCodes,
				"PageInfo":   result.PageInfo,
				"Params":     lp,
			})
			return
		}
		writeJSON(w, result)
		return
	}

	if r.Method == "POST" {
		input := orchestrators.SavePromoCodeInput{Token: token}
		if isFormRequest(r) {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Invalid form submission", http.StatusBadRequest)
				return
			}
			discount, err := parsePrice(r.FormValue("DiscountValue"))
			if err != nil {
				mutationFailed(w, r, err, "/admin/promocodes")
				return
			}
			input.ID = r.FormValue("ID")
			input.Code = r.FormValue("Code")
			input.DiscountValue = discount
			input.ValidFrom = parseDateField(r.FormValue("ValidFrom"))
			input.ValidTo = parseDateField(r.FormValue("ValidTo"))
		} else {
			if err := strictDecode(r, &input); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}
			input.Token = token
		}

		if err := orchestrators.ExecuteSavePromoCode(r.Context(), input, catalogDeps()); err != nil {
			mutationFailed(w, r, err, "/admin/promocodes")
			return
		}
		mutationDone(w, r, "/admin/promocodes")
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

func handleAdminPromoCodeDelete(w http.ResponseWriter, r *http.Request) {
	deleteEntity(w, r, "/admin/promocodes", func(id string) error {
		return orchestrators.ExecuteDeletePromoCode(r.Context(), sessionToken(r), id, catalogDeps())
	})
}

// parseDateField parses an HTML date input value. Empty or unparseable
// means the zero time (open-ended window).
func parseDateField(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// handleAdminImageUpload handles POST /admin/images: multipart passthrough
// of an entity image to the upstream.
func handleAdminImageUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseMultipartForm(16 << 20); err != nil {
		http.Error(w, "Invalid upload", http.StatusBadRequest)
		return
	}

	input := orchestrators.UploadImageInput{
		Token:    sessionToken(r),
		Entity:   r.FormValue("Entity"),
		EntityID: r.FormValue("EntityID"),
		ImageURL: r.FormValue("ImageURL"),
	}
	backTo := "/admin/" + input.Entity
	if file, header, err := r.FormFile("Image"); err == nil {
		defer file.Close()
		input.File = file
		input.Filename = header.Filename
	}

	err := orchestrators.ExecuteUploadImage(r.Context(), input,
		orchestrators.UploadImageDeps{Uploader: backends.Uploader})
	if err != nil {
		mutationFailed(w, r, err, backTo)
		return
	}
	mutationDone(w, r, backTo)
}
