package listutil

import (
	"sort"
	"strings"
)

// Search narrows a collection to items matching the term in any of the
// fields selected by the fields function. Matching is case-insensitive
// substring. Search is a pure function of (items, term): the empty term
// returns the input unchanged, and searching twice with the same term yields
// identical results.
func Search[T any](items []T, term string, fields func(T) []string) []T {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return items
	}
	matched := make([]T, 0, len(items))
	for _, item := range items {
		for _, f := range fields(item) {
			if strings.Contains(strings.ToLower(f), term) {
				matched = append(matched, item)
				break
			}
		}
	}
	return matched
}

// Filter narrows a collection to items whose key function returns the
// wanted value. An empty wanted value returns the input unchanged.
func Filter[T any](items []T, wanted string, key func(T) string) []T {
	if wanted == "" {
		return items
	}
	matched := make([]T, 0, len(items))
	for _, item := range items {
		if key(item) == wanted {
			matched = append(matched, item)
		}
	}
	return matched
}

// SortBy sorts a copy of the collection with the given less function,
// reversed when dir is "desc". The input slice is not mutated.
func SortBy[T any](items []T, dir string, less func(a, b T) bool) []T {
	sorted := make([]T, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		if dir == "desc" {
			return less(sorted[j], sorted[i])
		}
		return less(sorted[i], sorted[j])
	})
	return sorted
}

// Page slices one page out of a collection.
// POST: concatenating all pages in order reproduces the collection exactly
// once; the returned PageInfo reflects the full collection size
func Page[T any](items []T, page, perPage int) ([]T, PageInfo) {
	info := NewPageInfo(page, perPage, len(items))
	start := info.Offset()
	if start >= len(items) {
		return []T{}, info
	}
	end := start + info.PerPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], info
}
