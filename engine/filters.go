package engine

// ============================================================================
// FILTERS — Dimension-Based Filtering via RecordView
// ============================================================================
// Single-pass filter: checks ALL dimension constraints per record in one loop.
// Returns a SubView (index list into parent) — zero data copy.
//
// Matching is exact: no trimming, no case folding. A record whose value is
// missing ("") never matches a constrained dimension.
// ============================================================================

// Apply returns the records of view matching the selection.
func Apply(view RecordView, sel Selection) RecordView {
	return ApplyFilters(view, sel.Filters())
}

// ApplyFilters returns a view of records matching all dimension filters.
// Dimensions are AND-combined; values within a dimension are OR-combined.
// Empty filter = no restriction (returns original view).
func ApplyFilters(view RecordView, filters Filters) RecordView {
	if filters.IsEmpty() {
		return view
	}

	type constraint struct {
		dim     string
		allowed map[string]bool
	}
	constraints := make([]constraint, 0, len(filters.Dimensions))
	for dim, allowed := range filters.Dimensions {
		if len(allowed) > 0 {
			constraints = append(constraints, constraint{dim: dim, allowed: toSet(allowed)})
		}
	}

	// Single pass — record passes if it matches ALL dimension filters
	n := view.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		pass := true
		for _, c := range constraints {
			val := view.Dimension(i, c.dim)
			if val == "" || !c.allowed[val] {
				pass = false
				break
			}
		}
		if pass {
			indices = append(indices, i)
		}
	}

	return newSubView(view, indices)
}

// toSet converts a string slice to a lookup set.
func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
