package reconcile

import "strings"

// Canonical status values. Every upstream status string maps into exactly
// one of these three.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusCancelled = "cancelled"
)

// approvedSynonyms and cancelledSynonyms are exact matches after lowering
// and trimming. Prefix families (success*, cancel*) are handled separately.
var approvedSynonyms = map[string]bool{
	"approve":   true,
	"approved":  true,
	"completed": true,
	"complete":  true,
	"paid":      true,
	"1":         true,
	"true":      true,
}

var cancelledSynonyms = map[string]bool{
	"rejected": true,
	"declined": true,
	"failed":   true,
	"0":        true,
	"false":    true,
}

// NormalizeStatus maps any historical upstream status value onto the closed
// three-state classification, uniformly across sections.
// POST: returns StatusApproved, StatusCancelled, or StatusPending; absence
// and unrecognized values map to StatusPending
func NormalizeStatus(v any) string {
	s := strings.ToLower(strings.TrimSpace(stringValue(v)))
	if s == "" {
		return StatusPending
	}
	if approvedSynonyms[s] || strings.HasPrefix(s, "success") {
		return StatusApproved
	}
	if cancelledSynonyms[s] || strings.HasPrefix(s, "cancel") {
		return StatusCancelled
	}
	return StatusPending
}
