package reconcile

import (
	"strings"
	"time"
)

// dateCandidates lists every known spelling and location of a record's
// creation date across upstream versions, in priority order.
var dateCandidates = []string{
	"created_at",
	"createdAt",
	"created",
	"created_on",
	"date",
	"order_date",
	"orderDate",
	"request_date",
	"booking_date",
	"timestamp",
	"order.created_at",
	"order.date",
	"request.created_at",
	"request.date",
	"user.created_at",
}

// dateLayouts are tried in order against the chosen source value.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
	"January 2, 2006",
}

// displayDateLayout is the canonical display format for reconciled dates.
const displayDateLayout = "2006-01-02 15:04"

// ExtractDate scans the date candidates and returns the first parseable
// value formatted for display. Unparseable or absent dates yield "".
// POST: never returns an error; degradation is the empty string
func ExtractDate(raw Raw) string {
	v := lookupFirst(raw, dateCandidates)
	if v == nil {
		return ""
	}
	// Numeric values are unix seconds from one upstream version.
	if n, ok := v.(float64); ok && n > 0 {
		return time.Unix(int64(n), 0).UTC().Format(displayDateLayout)
	}
	s := strings.TrimSpace(stringValue(v))
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(displayDateLayout)
		}
	}
	return ""
}
