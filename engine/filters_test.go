package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// FILTER TESTS
// ============================================================================

func TestApplyEmptySelectionReturnsAll(t *testing.T) {
	view := sampleView()
	got := Apply(view, Selection{})
	assert.Equal(t, view.Len(), got.Len())
	assert.Equal(t, names(view), names(got))
}

func TestApplySingleDimensionMatchesNaiveScan(t *testing.T) {
	view := sampleView()
	tests := []struct {
		name    string
		sel     Selection
		dim     string
		allowed []string
	}{
		{"one region", Selection{Regions: []string{"Jawa Barat"}}, DimRegion, []string{"Jawa Barat"}},
		{"two categories", Selection{Categories: []string{"Siaga", "Penggalang"}}, DimCategory, []string{"Siaga", "Penggalang"}},
		{"sub-region", Selection{SubRegions: []string{"Surabaya"}}, DimSubRegion, []string{"Surabaya"}},
		{"classes", Selection{Classes: []string{"5", "8"}}, DimClass, []string{"5", "8"}},
		{"unknown value", Selection{Regions: []string{"Bali"}}, DimRegion, []string{"Bali"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(Apply(view, tt.sel))
			want := naiveFilter(view, tt.dim, tt.allowed)
			if len(want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestApplyTwoDimensionsIsIntersection(t *testing.T) {
	view := sampleView()
	sel := Selection{Regions: []string{"Jawa Timur"}, Categories: []string{"Siaga"}}

	regions := naiveFilter(view, DimRegion, sel.Regions)
	categories := naiveFilter(view, DimCategory, sel.Categories)
	var want []string
	for _, r := range regions {
		for _, c := range categories {
			if r == c {
				want = append(want, r)
			}
		}
	}

	assert.Equal(t, want, names(Apply(view, sel)))
	assert.Equal(t, []string{"Eka"}, want)
}

func TestApplyMissingValueNeverMatches(t *testing.T) {
	view := sampleView()
	got := Apply(view, Selection{SubRegions: []string{""}})
	assert.Equal(t, 0, got.Len())

	// Fajar has no sub-region but still matches a region filter
	got = Apply(view, Selection{Regions: []string{"Jawa Barat"}})
	assert.Contains(t, names(got), "Fajar")
}

func TestApplyIsExactMatch(t *testing.T) {
	view := sampleView()
	assert.Equal(t, 0, Apply(view, Selection{Regions: []string{"jawa barat"}}).Len())
	assert.Equal(t, 0, Apply(view, Selection{Regions: []string{" Jawa Barat"}}).Len())
}

func TestApplyParentAndChildAreConjunctive(t *testing.T) {
	view := sampleView()
	// Bogor is in Jawa Barat, so Jawa Timur + Bogor matches nothing
	got := Apply(view, Selection{Regions: []string{"Jawa Timur"}, SubRegions: []string{"Bogor"}})
	assert.Equal(t, 0, got.Len())

	got = Apply(view, Selection{Regions: []string{"Jawa Barat"}, SubRegions: []string{"Bogor"}})
	require.Equal(t, 1, got.Len())
	assert.Equal(t, "Budi", got.Dimension(0, DimName))
}

func TestApplyChainedViews(t *testing.T) {
	view := sampleView()
	first := Apply(view, Selection{Regions: []string{"Jawa Timur"}})
	second := Apply(first, Selection{Classes: []string{"7"}})
	require.Equal(t, 1, second.Len())
	assert.Equal(t, "Citra", second.Dimension(0, DimName))
	assert.Equal(t, 90.0, second.Measure(0, MeasureScore))
}

func TestSelectionFilters(t *testing.T) {
	sel := Selection{Regions: []string{"A"}, Classes: []string{"5"}}
	f := sel.Filters()
	assert.True(t, f.HasFilter(DimRegion))
	assert.True(t, f.HasFilter(DimClass))
	assert.False(t, f.HasFilter(DimCategory))
	assert.False(t, f.IsEmpty())
	assert.True(t, Selection{}.Filters().IsEmpty())
	assert.True(t, Selection{}.IsEmpty())
}
