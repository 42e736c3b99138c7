package web

import (
	"net/http"
	"net/url"

	"fitfront/internal/adapters/http/middleware"
	"fitfront/internal/application/listutil"
	"fitfront/internal/application/orchestrators"
	"fitfront/internal/application/projections"
)

// startSession stores the upstream session material and sets the cookie.
// The bearer token never reaches the browser; the cookie holds a local
// random token keyed to it.
func startSession(w http.ResponseWriter, result orchestrators.LoginResult) error {
	token, err := sessions.Create(middleware.Session{
		Name:          result.Name,
		Email:         result.Email,
		Role:          result.Role,
		UpstreamToken: result.Token,
	})
	if err != nil {
		return err
	}
	middleware.SetSessionCookie(w, token)
	return nil
}

// handleLogin handles GET (form) and POST (credentials) for /login.
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		if _, ok := middleware.GetSessionFromContext(r.Context()); ok {
			http.Redirect(w, r, "/account", http.StatusSeeOther)
			return
		}
		renderTemplate(w, r, "login.html", map[string]any{"AdminLogin": false})
		return
	}
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	input := orchestrators.LoginInput{}
	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.Email = r.FormValue("Email")
		input.Password = r.FormValue("Password")
	} else {
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
	}

	result, err := orchestrators.ExecuteLogin(r.Context(), input,
		orchestrators.LoginDeps{Auth: backends.Auth})
	if err != nil {
		mutationFailed(w, r, err, "/login")
		return
	}
	if err := startSession(w, result); err != nil {
		internalError(w, err)
		return
	}
	mutationDone(w, r, "/account")
}

// handleAdminLogin is the back-office variant of /login: the same upstream
// exchange, but a session without an operator role is rejected outright.
func handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		if middleware.IsAdmin(r.Context()) {
			http.Redirect(w, r, "/admin", http.StatusSeeOther)
			return
		}
		renderTemplate(w, r, "login.html", map[string]any{"AdminLogin": true})
		return
	}
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	input := orchestrators.LoginInput{}
	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.Email = r.FormValue("Email")
		input.Password = r.FormValue("Password")
	} else {
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
	}

	result, err := orchestrators.ExecuteLogin(r.Context(), input,
		orchestrators.LoginDeps{Auth: backends.Auth})
	if err != nil {
		mutationFailed(w, r, err, "/admin/login")
		return
	}
	session := middleware.Session{
		Name:          result.Name,
		Email:         result.Email,
		Role:          result.Role,
		UpstreamToken: result.Token,
	}
	if !session.IsAdmin() {
		mutationFailed(w, r, orchestrators.ErrInvalidCredentials, "/admin/login")
		return
	}
	if err := startSession(w, result); err != nil {
		internalError(w, err)
		return
	}
	mutationDone(w, r, "/admin")
}

// handleRegister handles GET (form) and POST for /register.
func handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		renderTemplate(w, r, "register.html", nil)
		return
	}
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	input := orchestrators.RegisterInput{}
	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.Name = r.FormValue("Name")
		input.Email = r.FormValue("Email")
		input.Phone = r.FormValue("Phone")
		input.Password = r.FormValue("Password")
	} else {
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
	}

	err := orchestrators.ExecuteRegister(r.Context(), input,
		orchestrators.RegisterDeps{Mutator: backends.Mutator})
	if err != nil {
		mutationFailed(w, r, err, "/register")
		return
	}
	mutationDone(w, r, "/login?notice="+url.QueryEscape("Account created, please log in"))
}

// handleLogout handles POST /logout.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if token := middleware.SessionToken(r); token != "" {
		sessions.Delete(token)
	}
	middleware.ClearSessionCookie(w)
	mutationDone(w, r, "/")
}

// handleAccount handles the customer dashboard: GET shows the profile and
// order history, POST updates the profile.
func handleAccount(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if r.Method == "GET" {
		lp := listutil.ParseListParams(r.URL.Query(), []string{"created_at", "total"}, []string{"status"})
		orders, err := projections.QueryGetOrderList(r.Context(),
			projections.GetOrderListQuery{Token: sess.UpstreamToken, Params: lp},
			projections.GetOrderListDeps{Fetcher: backends.Fetcher, Cache: backends.Cache})
		if err != nil {
			readFailed(w, r, err, "account.html", map[string]any{"Params": lp})
			return
		}
		if isHTMLRequest(r) {
			renderTemplate(w, r, "account.html", map[string]any{
				"Orders":   orders.Orders,
				"PageInfo": orders.PageInfo,
				"Params":   lp,
				"Stale":    orders.Stale,
			})
			return
		}
		writeJSON(w, orders)
		return
	}

	if r.Method == "POST" {
		input := orchestrators.UpdateProfileInput{Token: sess.UpstreamToken}
		if isFormRequest(r) {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Invalid form submission", http.StatusBadRequest)
				return
			}
			input.Name = r.FormValue("Name")
			input.Email = r.FormValue("Email")
			input.Phone = r.FormValue("Phone")
			input.NewPassword = r.FormValue("NewPassword")
		} else {
			if err := strictDecode(r, &input); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}
		}

		err := orchestrators.ExecuteUpdateProfile(r.Context(), input,
			orchestrators.UpdateProfileDeps{Mutator: backends.Mutator})
		if err != nil {
			mutationFailed(w, r, err, "/account")
			return
		}

		// Keep the session header in sync with the saved profile.
		sess.Name = input.Name
		sess.Email = input.Email
		sessions.Update(middleware.SessionToken(r), sess)
		mutationDone(w, r, "/account?notice="+url.QueryEscape("Profile updated"))
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleAccountOrderDetail handles GET /account/orders/{id}.
func handleAccountOrderDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id := pathSuffix(r, "/account/orders/")
	if id == "" {
		http.NotFound(w, r)
		return
	}

	result, err := projections.QueryGetOrderDetail(r.Context(),
		projections.GetOrderDetailQuery{Token: sessionToken(r), OrderID: id},
		projections.GetOrderDetailDeps{Fetcher: backends.Fetcher, Cache: backends.Cache})
	if err != nil {
		orderDetailFailed(w, r, err, "/account")
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "order_detail.html", map[string]any{
			"Order":   result.Order,
			"Stale":   result.Stale,
			"BackTo":  "/account",
			"IsAdmin": false,
		})
		return
	}
	writeJSON(w, result)
}

// handleCheckout handles GET /checkout (cart review form) and POST /checkout
// (order submission). Cart contents travel in the form; the server holds no
// cart state.
func handleCheckout(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		renderTemplate(w, r, "checkout.html", nil)
		return
	}
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	input := orchestrators.SubmitOrderInput{Token: sessionToken(r)}
	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.PromoCode = r.FormValue("PromoCode")
		ids := r.Form["ProductID"]
		quantities := r.Form["Quantity"]
		for i, id := range ids {
			if id == "" {
				continue
			}
			qty := 0
			if i < len(quantities) {
				qty = atoiOrZero(quantities[i])
			}
			input.Items = append(input.Items, orchestrators.OrderItemInput{ProductID: id, Quantity: qty})
		}
	} else {
		var body struct {
			PromoCode string
			Items     []orchestrators.OrderItemInput
		}
		if err := strictDecode(r, &body); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		input.PromoCode = body.PromoCode
		input.Items = body.Items
	}

	err := orchestrators.ExecuteSubmitOrder(r.Context(), input, orchestrators.SubmitOrderDeps{
		Mutator: backends.Mutator,
		Promos:  promoCatalog{},
		Lister:  backends.Fetcher,
		Cache:   backends.Cache,
	})
	if err != nil {
		mutationFailed(w, r, err, "/checkout")
		return
	}
	mutationDone(w, r, "/account?notice="+url.QueryEscape("Order placed"))
}
