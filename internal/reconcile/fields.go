package reconcile

import "github.com/shopspring/decimal"

// The exported field accessors below serve entity payloads outside the three
// reconciled sections. Catalog entities (products, courses, blogs, services)
// have mostly stable shapes, but individual fields still drift between
// upstream versions, so mapping code resolves them through the same
// candidate-path scan.

// StringAt resolves the first non-blank string among candidate paths,
// substituting fallback when nothing usable matches.
func StringAt(raw Raw, fallback string, paths ...string) string {
	return stringField(raw, paths, fallback)
}

// DecimalAt resolves the first candidate path that parses as money.
func DecimalAt(raw Raw, paths ...string) (decimal.Decimal, bool) {
	return decimalValue(lookupFirst(raw, paths))
}

// IntAt resolves the first candidate path that parses as a count.
func IntAt(raw Raw, paths ...string) int {
	return intValue(lookupFirst(raw, paths))
}

// ListAt resolves the first candidate path holding an array of objects.
func ListAt(raw Raw, paths ...string) []Raw {
	for _, path := range paths {
		v, ok := lookupPath(raw, path)
		if !ok {
			continue
		}
		arr, ok := v.([]any)
		if !ok {
			continue
		}
		out := make([]Raw, 0, len(arr))
		for _, el := range arr {
			if obj, ok := el.(Raw); ok {
				out = append(out, obj)
			}
		}
		return out
	}
	return nil
}
