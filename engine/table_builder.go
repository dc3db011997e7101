package engine

import (
	"fmt"
)

// ============================================================================
// TABLE BUILDER — Produces TableData for the ranking and data tables
// ============================================================================

var participantColumns = []Column{
	{Key: DimName, Label: "Name", Type: "text", Align: "left"},
	{Key: DimClass, Label: "Class", Type: "text", Align: "left"},
	{Key: DimSchool, Label: "School", Type: "text", Align: "left"},
	{Key: DimSubRegion, Label: "Sub-region", Type: "text", Align: "left"},
	{Key: MeasureScore, Label: "Score", Type: "number", Align: "right"},
}

// BuildTopScorersTable lists the ranked participants with their rank as
// the first column and scores to two decimals.
func BuildTopScorersTable(ranked []RankedParticipant) TableData {
	columns := make([]Column, 0, len(participantColumns)+1)
	columns = append(columns, Column{Key: "rank", Label: "#", Type: "number", Align: "center"})
	columns = append(columns, participantColumns...)

	rows := make([][]string, 0, len(ranked))
	for _, p := range ranked {
		rows = append(rows, []string{
			fmt.Sprintf("%d", p.Rank),
			p.Name,
			p.Class,
			p.School,
			p.SubRegion,
			fmt.Sprintf("%.2f", p.Score),
		})
	}

	return TableData{
		Title:   fmt.Sprintf("Top %d participants by score", len(ranked)),
		Columns: columns,
		Rows:    rows,
	}
}

// BuildRowsTable lists every filtered participant.
func BuildRowsTable(data []ParticipantRow) TableData {
	columns := make([]Column, len(participantColumns))
	copy(columns, participantColumns)

	rows := make([][]string, 0, len(data))
	for _, p := range data {
		rows = append(rows, []string{
			p.Name,
			p.Class,
			p.School,
			p.SubRegion,
			p.Score.String(),
		})
	}

	return TableData{
		Title:   "All participants",
		Columns: columns,
		Rows:    rows,
		Summary: &Summary{
			Label: "Total",
			Values: map[string]string{
				DimName: fmt.Sprintf("%s participants", FormatInt(len(data))),
			},
		},
	}
}
