package web

import (
	"net/http"

	"fitfront/internal/application/listutil"
	"fitfront/internal/application/orchestrators"
	"fitfront/internal/application/projections"
)

// handleAdminUsers handles GET (table) and POST (save) for /admin/users.
func handleAdminUsers(w http.ResponseWriter, r *http.Request) {
	token := sessionToken(r)

	if r.Method == "GET" {
		lp := listutil.ParseListParams(r.URL.Query(), []string{"name", "email"}, nil)
		result, err := projections.QueryGetUserList(r.Context(),
			projections.AdminListQuery{Token: token, Params: lp}, adminListDeps())
		if err != nil {
			adminReadFailed(w, r, err, "admin_users.html", map[string]any{"Params": lp})
			return
		}
		if isHTMLRequest(r) {
			renderTemplate(w, r, "admin_users.html", map[string]any{
				"Users":    result.Users,
				"PageInfo": result.PageInfo,
				"Params":   lp,
			})
			return
		}
		writeJSON(w, result)
		return
	}

	if r.Method == "POST" {
		input := orchestrators.SaveUserInput{Token: token}
		if isFormRequest(r) {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Invalid form submission", http.StatusBadRequest)
				return
			}
			input.ID = r.FormValue("ID")
			input.Name = r.FormValue("Name")
			input.Email = r.FormValue("Email")
			input.Phone = r.FormValue("Phone")
			input.Password = r.FormValue("Password")
		} else {
			if err := strictDecode(r, &input); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}
			input.Token = token
		}

		// New accounts are checked for duplicate emails against the
		// loaded list before the round trip.
		if input.ID == "" {
			existing, err := projections.QueryGetUserList(r.Context(),
				projections.AdminListQuery{
					Token:  token,
					Params: listutil.ListParams{Page: 1, PerPage: 100, Filters: map[string]string{}},
				}, adminListDeps())
			if err == nil {
				input.Existing = existing.Users
			}
		}

		if err := orchestrators.ExecuteSaveUser(r.Context(), input, catalogDeps()); err != nil {
			mutationFailed(w, r, err, "/admin/users")
			return
		}
		mutationDone(w, r, "/admin/users")
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

func handleAdminUserDelete(w http.ResponseWriter, r *http.Request) {
	deleteEntity(w, r, "/admin/users", func(id string) error {
		return orchestrators.ExecuteDeleteUser(r.Context(), sessionToken(r), id, catalogDeps())
	})
}

// handleAdminAdmins handles GET and POST for /admin/admins. The route is
// superadmin-gated in registerRoutes.
func handleAdminAdmins(w http.ResponseWriter, r *http.Request) {
	token := sessionToken(r)

	if r.Method == "GET" {
		lp := listutil.ParseListParams(r.URL.Query(), []string{"name", "email", "role"}, []string{"role"})
		result, err := projections.QueryGetAdminList(r.Context(),
			projections.AdminListQuery{Token: token, Params: lp}, adminListDeps())
		if err != nil {
			adminReadFailed(w, r, err, "admin_admins.html", map[string]any{"Params": lp})
			return
		}
		if isHTMLRequest(r) {
			renderTemplate(w, r, "admin_admins.html", map[string]any{
				"Admins":   result.Admins,
				"PageInfo": result.PageInfo,
				"Params":   lp,
			})
			return
		}
		writeJSON(w, result)
		return
	}

	if r.Method == "POST" {
		input := orchestrators.SaveAdminInput{Token: token}
		if isFormRequest(r) {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Invalid form submission", http.StatusBadRequest)
				return
			}
			input.ID = r.FormValue("ID")
			input.Name = r.FormValue("Name")
			input.Email = r.FormValue("Email")
			input.Phone = r.FormValue("Phone")
			input.Role = r.FormValue("Role")
			input.Password = r.FormValue("Password")
		} else {
			if err := strictDecode(r, &input); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}
			input.Token = token
		}

		if err := orchestrators.ExecuteSaveAdmin(r.Context(), input, catalogDeps()); err != nil {
			mutationFailed(w, r, err, "/admin/admins")
			return
		}
		mutationDone(w, r, "/admin/admins")
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

func handleAdminAdminDelete(w http.ResponseWriter, r *http.Request) {
	deleteEntity(w, r, "/admin/admins", func(id string) error {
		return orchestrators.ExecuteDeleteAdmin(r.Context(), sessionToken(r), id, catalogDeps())
	})
}
