// Package reconcile normalizes heterogeneous upstream payloads into canonical
// records. The upstream's field naming is not contractually stable: the same
// logical order may arrive with `total_price` at the top level, `order.total`
// nested one deep, or an older spelling entirely. Rather than branch per
// variant, every canonical field is resolved by scanning an ordered candidate
// list of source paths and taking the first defined, non-null value. Missing
// data is never an error; it degrades to a placeholder.
package reconcile

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Section discriminates which candidate tables apply to a payload.
type Section string

// Sections recognized by the reconciler.
const (
	SectionTraining Section = "training"
	SectionCourses  Section = "courses"
	SectionOrders   Section = "orders"
)

// Placeholder is the display value substituted when no source field matches.
const Placeholder = "-"

// Raw is a decoded JSON object as returned by the upstream.
type Raw = map[string]any

// Record is the canonical flat shape consumed by views. Fields with no
// matching source default to Placeholder, the zero time, or an empty list.
type Record struct {
	ID            string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Status        string // always one of pending, approved, cancelled
	CreatedAt     string // "2006-01-02 15:04" or empty when unparseable
	TotalPrice    decimal.Decimal
	HasTotal      bool
	Items         []Item // orders only

	// Section-specific free-text fields.
	Goal        string // training
	HealthNotes string // training
	CourseTitle string // courses
}

// Item is a canonical order line item.
type Item struct {
	ProductID string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

// fieldCandidates maps each canonical field to its priority-ordered source
// paths, per section. Paths use dots for nesting (e.g. "order.total").
// Kept as data so new upstream variants are additive.
var fieldCandidates = map[Section]map[string][]string{
	SectionOrders: {
		"id":     {"id", "order_id", "orderId", "_id", "order.id", "order.order_id"},
		"total":  {"total_price", "total", "totalPrice", "amount", "order_total", "grand_total", "order.total_price", "order.total", "order.amount"},
		"name":   {"customer_name", "customerName", "full_name", "name", "user_name", "username", "customer.name", "user.name", "user.full_name", "order.customer_name"},
		"email":  {"customer_email", "customerEmail", "email", "user_email", "customer.email", "user.email", "order.customer_email"},
		"phone":  {"customer_phone", "phone", "mobile", "phone_number", "customer.phone", "user.phone"},
		"status": {"status", "order_status", "payment_status", "order.status", "order.payment_status"},
	},
	SectionTraining: {
		"id":     {"id", "request_id", "requestId", "_id", "request.id"},
		"name":   {"name", "customer_name", "full_name", "user_name", "username", "user.name", "user.full_name", "request.name"},
		"email":  {"email", "customer_email", "user_email", "user.email", "request.email"},
		"phone":  {"phone", "customer_phone", "mobile", "phone_number", "user.phone", "request.phone"},
		"goal":   {"goal", "fitness_goal", "goals", "training_goal", "request.goal"},
		"health": {"health", "health_condition", "health_notes", "health_issues", "medical_conditions", "request.health"},
		"status": {"status", "request_status", "request.status"},
	},
	SectionCourses: {
		"id":     {"id", "request_id", "course_request_id", "requestId", "_id", "request.id"},
		"name":   {"name", "customer_name", "full_name", "user_name", "username", "user.name", "user.full_name", "request.name"},
		"email":  {"email", "customer_email", "user_email", "user.email", "request.email"},
		"phone":  {"phone", "customer_phone", "mobile", "phone_number", "user.phone", "request.phone"},
		"course": {"course_title", "course_name", "courseName", "title", "course.title", "course.name", "request.course_title"},
		"status": {"status", "request_status", "request.status"},
	},
}

// Reconcile produces a canonical Record from a raw upstream payload.
// The payload may be an object or an array; arrays contribute their first
// object element. fallbackID is used when the payload omits identifying
// information.
// PRE: section is one of the declared Section constants
// POST: every Record field is populated; missing sources become placeholders
func Reconcile(section Section, payload any, fallbackID string) Record {
	raw := asObject(payload)
	candidates := fieldCandidates[section]

	rec := Record{
		ID:            stringField(raw, candidates["id"], fallbackID),
		CustomerName:  stringField(raw, candidates["name"], Placeholder),
		CustomerEmail: stringField(raw, candidates["email"], Placeholder),
		CustomerPhone: stringField(raw, candidates["phone"], Placeholder),
		Status:        NormalizeStatus(lookupFirst(raw, candidates["status"])),
		CreatedAt:     ExtractDate(raw),
	}

	switch section {
	case SectionTraining:
		rec.Goal = stringField(raw, candidates["goal"], Placeholder)
		rec.HealthNotes = stringField(raw, candidates["health"], Placeholder)
	case SectionCourses:
		rec.CourseTitle = stringField(raw, candidates["course"], Placeholder)
	case SectionOrders:
		if total, ok := decimalValue(lookupFirst(raw, candidates["total"])); ok {
			rec.TotalPrice = total
			rec.HasTotal = true
		}
		rec.Items = extractItems(raw, rec.TotalPrice)
	}

	return rec
}

// AsObject coerces a payload into a Raw object. Arrays yield their first
// object element. The second return reports whether anything usable was
// found; callers that need to distinguish "empty" from "absent" use it.
func AsObject(payload any) (Raw, bool) {
	switch v := payload.(type) {
	case Raw:
		return v, true
	case []any:
		for _, el := range v {
			if obj, ok := el.(Raw); ok {
				return obj, true
			}
		}
	}
	return Raw{}, false
}

func asObject(payload any) Raw {
	raw, _ := AsObject(payload)
	return raw
}

// lookupFirst scans the candidate paths in order and returns the first
// defined, non-null value.
func lookupFirst(raw Raw, paths []string) any {
	for _, path := range paths {
		if v, ok := lookupPath(raw, path); ok {
			return v
		}
	}
	return nil
}

// lookupPath resolves a dot-separated path against nested objects.
// POST: returns (value, true) only for a defined, non-null leaf
func lookupPath(raw Raw, path string) (any, bool) {
	cur := any(raw)
	for _, key := range strings.Split(path, ".") {
		obj, ok := cur.(Raw)
		if !ok {
			return nil, false
		}
		cur, ok = obj[key]
		if !ok || cur == nil {
			return nil, false
		}
	}
	return cur, true
}

// stringField resolves candidates to a trimmed display string. Values that
// are blank after trimming are skipped like nulls; fallback is substituted
// when nothing usable matches.
func stringField(raw Raw, paths []string, fallback string) string {
	for _, path := range paths {
		if v, ok := lookupPath(raw, path); ok {
			if s := strings.TrimSpace(stringValue(v)); s != "" {
				return s
			}
		}
	}
	return fallback
}
