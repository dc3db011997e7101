package engine

// Dataset is the loaded record set. It is built once at startup and only
// read afterwards, so one value can be shared by every interaction.
type Dataset struct {
	records     []Participant
	view        RecordView
	hasDuration bool
	source      string
}

// NewDataset copies records into an immutable dataset. hasDuration tells
// whether the source carried a duration column at all; source is a label
// for logs and reports (usually the file path).
func NewDataset(records []Participant, hasDuration bool, source string) *Dataset {
	owned := make([]Participant, len(records))
	copy(owned, records)
	return &Dataset{
		records:     owned,
		view:        ParticipantView(owned),
		hasDuration: hasDuration,
		source:      source,
	}
}

// View returns the full dataset as a RecordView.
func (d *Dataset) View() RecordView { return d.view }

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.records) }

// HasDuration reports whether the source had a duration column.
func (d *Dataset) HasDuration() bool { return d.hasDuration }

// Source returns the label the dataset was loaded from.
func (d *Dataset) Source() string { return d.source }

// Record returns a copy of the i-th record.
func (d *Dataset) Record(i int) (Participant, bool) {
	if i < 0 || i >= len(d.records) {
		return Participant{}, false
	}
	return d.records[i], true
}
