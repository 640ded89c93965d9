// Package pager slices the record cache into fixed-size pages and computes the
// summary shown above the mouthpiece table.
package pager

import (
	"sort"

	"github.com/atinyakov/mouthpiecer/internal/models"
)

// PageSize is the number of rows shown per page.
const PageSize = 10

// PageCount returns ceil(n/size), never less than 1.
func PageCount(n, size int) int {
	if size <= 0 {
		size = PageSize
	}
	if n <= 0 {
		return 1
	}
	return (n + size - 1) / size
}

// Clamp limits page to [0, PageCount(n, size)-1].
func Clamp(page, n, size int) int {
	last := PageCount(n, size) - 1
	switch {
	case page < 0:
		return 0
	case page > last:
		return last
	default:
		return page
	}
}

// Bounds returns the half-open index range [lo, hi) of page.
func Bounds(page, n, size int) (lo, hi int) {
	if size <= 0 {
		size = PageSize
	}
	page = Clamp(page, n, size)
	lo = page * size
	hi = min(lo+size, n)
	if lo > hi {
		lo = hi
	}
	return lo, hi
}

// TypeCount is the number of records of one type.
type TypeCount struct {
	Type  models.Type
	Count int
}

// Stats summarizes a collection.
type Stats struct {
	Total int
	Makes int
	// ByType lists counts in prompt order; types with no records are omitted.
	// Unknown types found in the data follow, sorted by name.
	ByType []TypeCount
}

// Summarize computes the stats of records.
func Summarize(records []models.Mouthpiece) Stats {
	makes := make(map[string]struct{})
	counts := make(map[models.Type]int)
	for _, r := range records {
		makes[r.Make] = struct{}{}
		counts[r.Type]++
	}

	st := Stats{Total: len(records), Makes: len(makes)}
	for _, t := range models.Types {
		if c := counts[t]; c > 0 {
			st.ByType = append(st.ByType, TypeCount{Type: t, Count: c})
			delete(counts, t)
		}
	}
	extra := make([]TypeCount, 0, len(counts))
	for t, c := range counts {
		extra = append(extra, TypeCount{Type: t, Count: c})
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i].Type < extra[j].Type })
	st.ByType = append(st.ByType, extra...)
	return st
}
