package engine

import "sort"

// ============================================================================
// CASCADE — Parent → child option mappings for dependent filter controls
// ============================================================================
// Built once from the full dataset, never from a filtered view, so the
// options of a child control do not shrink as other filters change.
// ============================================================================

// Mapping records which child values co-occur with each parent value.
type Mapping struct {
	Parent string `json:"parent"`
	Child  string `json:"child"`

	children map[string]map[string]struct{}
}

// BuildMapping derives the parent → children mapping from view. Records
// missing either value are skipped.
func BuildMapping(view RecordView, parentKey, childKey string) Mapping {
	m := Mapping{
		Parent:   parentKey,
		Child:    childKey,
		children: make(map[string]map[string]struct{}),
	}
	for i := 0; i < view.Len(); i++ {
		p := view.Dimension(i, parentKey)
		c := view.Dimension(i, childKey)
		if p == "" || c == "" {
			continue
		}
		set, ok := m.children[p]
		if !ok {
			set = make(map[string]struct{})
			m.children[p] = set
		}
		set[c] = struct{}{}
	}
	return m
}

// ClassMapping maps category → class.
func ClassMapping(view RecordView) Mapping {
	return BuildMapping(view, DimCategory, DimClass)
}

// SubRegionMapping maps region → sub-region.
func SubRegionMapping(view RecordView) Mapping {
	return BuildMapping(view, DimRegion, DimSubRegion)
}

// Children returns the sorted child values of parent. Unknown parents
// yield nil.
func (m Mapping) Children(parent string) []string {
	return sortedKeys(m.children[parent])
}

// Allowed returns the sorted union of children for the given parents.
func (m Mapping) Allowed(parents []string) []string {
	union := make(map[string]struct{})
	for _, p := range parents {
		for c := range m.children[p] {
			union[c] = struct{}{}
		}
	}
	return sortedKeys(union)
}

// Parents returns every parent value, sorted.
func (m Mapping) Parents() []string {
	out := make([]string, 0, len(m.children))
	for p := range m.children {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Table returns the mapping as plain sorted lists.
func (m Mapping) Table() map[string][]string {
	out := make(map[string][]string, len(m.children))
	for p, set := range m.children {
		out[p] = sortedKeys(set)
	}
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ============================================================================
// CONTROLS — option lists for the four filter widgets
// ============================================================================

// Control is one multi-select filter widget.
type Control struct {
	Dimension string   `json:"dimension"`
	Label     string   `json:"label"`
	Options   []string `json:"options"`
	Selected  []string `json:"selected,omitempty"`
	Disabled  bool     `json:"disabled"`
}

// Controls are the cascading filter widgets in display order.
type Controls struct {
	Region    Control `json:"region"`
	SubRegion Control `json:"subRegion"`
	Category  Control `json:"category"`
	Class     Control `json:"class"`
}

// BuildControls computes the option lists for sel. A child control offers
// every value while its parent is unset; once a parent is chosen it offers
// only the values mapped from the chosen parents and is locked.
func BuildControls(view RecordView, classes, subRegions Mapping, sel Selection) Controls {
	c := Controls{
		Region: Control{
			Dimension: DimRegion,
			Label:     "Region",
			Options:   SortedValues(view, DimRegion),
			Selected:  sel.Regions,
		},
		SubRegion: childControl(view, subRegions, DimSubRegion, "Sub-region", sel.Regions, sel.SubRegions),
		Category: Control{
			Dimension: DimCategory,
			Label:     "Category",
			Options:   SortedValues(view, DimCategory),
			Selected:  sel.Categories,
		},
		Class: childControl(view, classes, DimClass, "Class", sel.Categories, sel.Classes),
	}
	return c
}

func childControl(view RecordView, m Mapping, dim, label string, parents, selected []string) Control {
	if len(parents) == 0 {
		return Control{
			Dimension: dim,
			Label:     label,
			Options:   SortedValues(view, dim),
			Selected:  selected,
		}
	}
	return Control{
		Dimension: dim,
		Label:     label + " (follows " + LabelForDimension(m.Parent) + ")",
		Options:   m.Allowed(parents),
		Selected:  selected,
		Disabled:  true,
	}
}
