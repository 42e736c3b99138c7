// Package upstream is the adapter for the legacy REST service that remains
// the system of record. It centralizes the endpoint URL surface, adds the
// bearer token, and absorbs the payload-shape inconsistencies the service is
// known for.
package upstream

import "strings"

// Endpoints is the central map of upstream URL builders, grouped by the two
// permission domains the service exposes.
type Endpoints struct {
	base string
}

// NewEndpoints creates the URL builder map for a service base URL.
func NewEndpoints(base string) Endpoints {
	return Endpoints{base: strings.TrimRight(base, "/")}
}

// EntityRoutes builds the parameterized routes for one entity collection.
type EntityRoutes struct {
	root string
}

// List returns the collection URL.
func (r EntityRoutes) List() string { return r.root }

// Add returns the creation URL.
func (r EntityRoutes) Add() string { return r.root + "/add" }

// GetByID returns the detail URL for one record.
func (r EntityRoutes) GetByID(id string) string { return r.root + "/" + id }

// Update returns the mutation URL for one record.
func (r EntityRoutes) Update(id string) string { return r.root + "/update/" + id }

// Delete returns the deletion URL for one record.
func (r EntityRoutes) Delete(id string) string { return r.root + "/delete/" + id }

// Approve returns the approval URL for one record.
func (r EntityRoutes) Approve(id string) string { return r.root + "/approve/" + id }

// Cancel returns the cancellation URL for one record.
func (r EntityRoutes) Cancel(id string) string { return r.root + "/cancel/" + id }

// AdminFunctions groups the back-office endpoint builders.
type AdminFunctions struct {
	Users            EntityRoutes
	Admins           EntityRoutes
	Products         EntityRoutes
	Categories       EntityRoutes
	Courses          EntityRoutes
	Blogs            EntityRoutes
	BlogCategories   EntityRoutes
	PromoCodes       EntityRoutes
	Services         EntityRoutes
	Bookings         EntityRoutes
	TrainingRequests EntityRoutes
	CourseRequests   EntityRoutes
	Orders           EntityRoutes
}

// UserFunctions groups the public and customer-facing endpoint builders.
type UserFunctions struct {
	Login    string
	Register string
	Profile  string

	Products EntityRoutes
	Courses  EntityRoutes
	Services EntityRoutes
	Blogs    EntityRoutes
	Orders   EntityRoutes

	TrainingRequestAdd string
	CourseRequestAdd   string
	BookingAdd         string
}

// Admin returns the back-office endpoint group.
func (e Endpoints) Admin() AdminFunctions {
	return AdminFunctions{
		Users:            e.entity("/admin/users"),
		Admins:           e.entity("/admin/admins"),
		Products:         e.entity("/admin/products"),
		Categories:       e.entity("/admin/categories"),
		Courses:          e.entity("/admin/courses"),
		Blogs:            e.entity("/admin/blogs"),
		BlogCategories:   e.entity("/admin/blog-categories"),
		PromoCodes:       e.entity("/admin/promocodes"),
		Services:         e.entity("/admin/services"),
		Bookings:         e.entity("/admin/bookings"),
		TrainingRequests: e.entity("/admin/training-requests"),
		CourseRequests:   e.entity("/admin/course-requests"),
		Orders:           e.entity("/admin/orders"),
	}
}

// User returns the customer-facing endpoint group.
func (e Endpoints) User() UserFunctions {
	return UserFunctions{
		Login:              e.base + "/auth/login",
		Register:           e.base + "/auth/register",
		Profile:            e.base + "/user/profile",
		Products:           e.entity("/products"),
		Courses:            e.entity("/courses"),
		Services:           e.entity("/services"),
		Blogs:              e.entity("/blogs"),
		Orders:             e.entity("/user/orders"),
		TrainingRequestAdd: e.base + "/training-requests/add",
		CourseRequestAdd:   e.base + "/course-requests/add",
		BookingAdd:         e.base + "/bookings/add",
	}
}

// CourseRequestCancelPaths returns the near-duplicate cancel URLs tried in
// order when cancelling a course request. The upstream exposes the operation
// under several historical paths, one of them misspelled ("canecl"). This is
// a compatibility shim, not a pattern: remove everything but the first entry
// once the real endpoint is confirmed.
func (e Endpoints) CourseRequestCancelPaths(id string) []string {
	return []string{
		e.base + "/admin/course-requests/cancel/" + id,
		e.base + "/admin/course-requests/canecl/" + id,
		e.base + "/admin/courserequest/cancel/" + id,
	}
}

func (e Endpoints) entity(path string) EntityRoutes {
	return EntityRoutes{root: e.base + path}
}
