package schema

import "github.com/spektr-org/bebras/engine"

// ============================================================================
// SCHEMA — Describes the columns of a contest results file
// ============================================================================
// The layout is fixed: every source (CSV, XLSX, SQLite) is matched against
// the same Config. Headers are compared in snake_case, and each field
// accepts its canonical English header as well as the original export's
// header.
// ============================================================================

// Config describes the complete shape of a dataset.
type Config struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`

	Dimensions []DimensionMeta `json:"dimensions"`
	Measures   []MeasureMeta   `json:"measures"`
}

// DimensionMeta describes a string field used for grouping/filtering.
type DimensionMeta struct {
	Key         string   `json:"key"`
	DisplayName string   `json:"displayName"`
	Aliases     []string `json:"aliases"` // accepted headers, snake_case
	Required    bool     `json:"required"`
	Filterable  bool     `json:"filterable"`
	Parent      string   `json:"parent,omitempty"` // Parent dimension key for cascades
}

// MeasureMeta describes a numeric field used for aggregation.
type MeasureMeta struct {
	Key         string   `json:"key"`
	DisplayName string   `json:"displayName"`
	Aliases     []string `json:"aliases"`
	Required    bool     `json:"required"`
	Unit        string   `json:"unit,omitempty"` // "points", "minutes"
}

// Contest returns the schema of a contest results file.
func Contest() Config {
	return Config{
		Name:    "Contest results",
		Version: "1.0",
		Dimensions: []DimensionMeta{
			{Key: engine.DimName, DisplayName: "Name", Aliases: []string{"name", "nama"}, Required: true},
			{Key: engine.DimClass, DisplayName: "Class", Aliases: []string{"class", "kelas", "grade"}, Required: true, Filterable: true, Parent: engine.DimCategory},
			{Key: engine.DimCategory, DisplayName: "Category", Aliases: []string{"category", "kategori"}, Required: true, Filterable: true},
			{Key: engine.DimRegion, DisplayName: "Region", Aliases: []string{"region", "provinsi", "province"}, Required: true, Filterable: true},
			{Key: engine.DimSubRegion, DisplayName: "Sub-region", Aliases: []string{"sub_region", "subregion", "city", "sekolah_kota_kabupaten"}, Required: true, Filterable: true, Parent: engine.DimRegion},
			{Key: engine.DimSchool, DisplayName: "School", Aliases: []string{"school_name", "school", "sekolah_nama"}, Required: true},
			{Key: engine.DimGender, DisplayName: "Gender", Aliases: []string{"gender", "jenis_kelamin", "sex"}, Required: true},
		},
		Measures: []MeasureMeta{
			{Key: engine.MeasureScore, DisplayName: "Score", Aliases: []string{"score", "nilai"}, Required: true, Unit: "points"},
			{Key: engine.MeasureDuration, DisplayName: "Duration (min)", Aliases: []string{"duration_minutes", "duration_min", "durasi_min"}, Unit: "minutes"},
		},
	}
}

// DimensionKeys returns all dimension keys.
func (c Config) DimensionKeys() []string {
	keys := make([]string, len(c.Dimensions))
	for i, d := range c.Dimensions {
		keys[i] = d.Key
	}
	return keys
}

// MeasureKeys returns all measure keys.
func (c Config) MeasureKeys() []string {
	keys := make([]string, len(c.Measures))
	for i, m := range c.Measures {
		keys[i] = m.Key
	}
	return keys
}

// FilterableKeys returns the keys of dimensions with a filter control.
func (c Config) FilterableKeys() []string {
	var keys []string
	for _, d := range c.Dimensions {
		if d.Filterable {
			keys = append(keys, d.Key)
		}
	}
	return keys
}

// field is the common view of a dimension or measure used for matching.
type field struct {
	key      string
	aliases  []string
	required bool
	measure  bool
}

func (c Config) fields() []field {
	out := make([]field, 0, len(c.Dimensions)+len(c.Measures))
	for _, d := range c.Dimensions {
		out = append(out, field{key: d.Key, aliases: d.Aliases, required: d.Required})
	}
	for _, m := range c.Measures {
		out = append(out, field{key: m.Key, aliases: m.Aliases, required: m.Required, measure: true})
	}
	return out
}
