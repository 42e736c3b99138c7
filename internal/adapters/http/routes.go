package web

import (
	"net/http"

	"fitfront/internal/adapters/http/middleware"
	domainAdmin "fitfront/internal/domain/admin"
	domainRequest "fitfront/internal/domain/request"
)

// registerRoutes attaches all application routes to the mux. Public
// storefront paths take anonymous traffic; /account requires a session;
// /admin paths require an operator role, /admin/admins a superadmin.
func registerRoutes(mux *http.ServeMux) {
	admin := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireAdmin(h)
	}
	superadmin := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireAdmin(middleware.RequireRole(domainAdmin.RoleSuperAdmin)(h))
	}

	// Storefront
	mux.HandleFunc("/", handleHome)
	mux.HandleFunc("/products", handleProducts)
	mux.HandleFunc("/products/", handleProductDetail)
	mux.HandleFunc("/courses", handleCourses)
	mux.HandleFunc("/courses/", handleCourseDetail)
	mux.HandleFunc("/services", handleServices)
	mux.HandleFunc("/blog", handleBlog)
	mux.HandleFunc("/blog/", handleBlogDetail)

	// Public intake forms
	mux.HandleFunc("/bookings", handleBookings)
	mux.HandleFunc("/training-requests", handleTrainingRequests)
	mux.HandleFunc("/course-requests", handleCourseRequests)

	// Auth
	mux.HandleFunc("/login", handleLogin)
	mux.HandleFunc("/register", handleRegister)
	mux.HandleFunc("/logout", handleLogout)

	// Customer area
	mux.Handle("/account", middleware.RequireAuth(http.HandlerFunc(handleAccount)))
	mux.Handle("/account/orders/", middleware.RequireAuth(http.HandlerFunc(handleAccountOrderDetail)))
	mux.Handle("/checkout", middleware.RequireAuth(http.HandlerFunc(handleCheckout)))

	// Back office
	mux.HandleFunc("/admin/login", handleAdminLogin)
	mux.Handle("/admin", admin(handleAdminDashboard))
	mux.Handle("/admin/perf", admin(handleAdminPerf))

	mux.Handle("/admin/users", admin(handleAdminUsers))
	mux.Handle("/admin/users/delete", admin(handleAdminUserDelete))
	mux.Handle("/admin/admins", superadmin(handleAdminAdmins))
	mux.Handle("/admin/admins/delete", superadmin(handleAdminAdminDelete))

	mux.Handle("/admin/products", admin(handleAdminProducts))
	mux.Handle("/admin/products/delete", admin(handleAdminProductDelete))
	mux.Handle("/admin/categories", admin(handleAdminCategories))
	mux.Handle("/admin/categories/delete", admin(handleAdminCategoryDelete))
	mux.Handle("/admin/courses", admin(handleAdminCourses))
	mux.Handle("/admin/courses/delete", admin(handleAdminCourseDelete))
	mux.Handle("/admin/blogs", admin(handleAdminBlogs))
	mux.Handle("/admin/blogs/delete", admin(handleAdminBlogDelete))
	mux.Handle("/admin/blog-categories", admin(handleAdminBlogCategories))
	mux.Handle("/admin/blog-categories/delete", admin(handleAdminBlogCategoryDelete))
	mux.Handle("/admin/services", admin(handleAdminServices))
	mux.Handle("/admin/services/delete", admin(handleAdminServiceDelete))
	mux.Handle("/admin/promocodes", admin(handleAdminPromoCodes))
	mux.Handle("/admin/promocodes/delete", admin(handleAdminPromoCodeDelete))
	mux.Handle("/admin/images", admin(handleAdminImageUpload))

	mux.Handle("/admin/orders", admin(handleAdminOrders))
	mux.Handle("/admin/orders/", admin(handleAdminOrderDetail))
	mux.Handle("/admin/orders/decide", admin(handleAdminOrderDecide))
	mux.Handle("/admin/orders/delete", admin(handleAdminOrderDelete))
	mux.Handle("/admin/bookings", admin(handleAdminBookings))
	mux.Handle("/admin/bookings/decide", admin(handleAdminBookingDecide))
	mux.Handle("/admin/bookings/delete", admin(handleAdminBookingDelete))

	mux.Handle("/admin/training-requests", admin(handleRequestList(domainRequest.KindTraining)))
	mux.Handle("/admin/training-requests/", admin(handleRequestDetail(domainRequest.KindTraining)))
	mux.Handle("/admin/training-requests/decide", admin(handleRequestDecide(domainRequest.KindTraining)))
	mux.Handle("/admin/training-requests/delete", admin(handleRequestDelete(domainRequest.KindTraining)))
	mux.Handle("/admin/training-requests/bulk", admin(handleRequestBulk(domainRequest.KindTraining)))
	mux.Handle("/admin/course-requests", admin(handleRequestList(domainRequest.KindCourse)))
	mux.Handle("/admin/course-requests/", admin(handleRequestDetail(domainRequest.KindCourse)))
	mux.Handle("/admin/course-requests/decide", admin(handleRequestDecide(domainRequest.KindCourse)))
	mux.Handle("/admin/course-requests/delete", admin(handleRequestDelete(domainRequest.KindCourse)))
	mux.Handle("/admin/course-requests/bulk", admin(handleRequestBulk(domainRequest.KindCourse)))
}
