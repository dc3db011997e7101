package engine

import "math"

// ============================================================================
// TEST FIXTURES
// ============================================================================

var nan = math.NaN()

// sampleParticipants is a small contest with two regions, two categories,
// one missing score and one missing sub-region.
func sampleParticipants() []Participant {
	return []Participant{
		{Name: "Ayu", Class: "5", Category: "Siaga", Region: "Jawa Barat", SubRegion: "Bandung", School: "SD 1", Gender: "P", Score: 80, DurationMinutes: 30},
		{Name: "Budi", Class: "6", Category: "Siaga", Region: "Jawa Barat", SubRegion: "Bogor", School: "SD 2", Gender: "L", Score: 60, DurationMinutes: 40},
		{Name: "Citra", Class: "7", Category: "Penggalang", Region: "Jawa Timur", SubRegion: "Surabaya", School: "SMP 1", Gender: "P", Score: 90, DurationMinutes: 25},
		{Name: "Dodi", Class: "8", Category: "Penggalang", Region: "Jawa Timur", SubRegion: "Malang", School: "SMP 2", Gender: "L", Score: 70, DurationMinutes: 35},
		{Name: "Eka", Class: "5", Category: "Siaga", Region: "Jawa Timur", SubRegion: "Surabaya", School: "SD 3", Gender: "P", Score: nan, DurationMinutes: nan},
		{Name: "Fajar", Class: "6", Category: "Siaga", Region: "Jawa Barat", SubRegion: "", School: "SD 4", Gender: "L", Score: 50, DurationMinutes: 45},
	}
}

func sampleView() RecordView {
	return ParticipantView(sampleParticipants())
}

// names collects the name of every record in view.
func names(view RecordView) []string {
	out := make([]string, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		out = append(out, view.Dimension(i, DimName))
	}
	return out
}

// naiveFilter scans view for records whose dim value is in allowed.
func naiveFilter(view RecordView, dim string, allowed []string) []string {
	var out []string
	for i := 0; i < view.Len(); i++ {
		v := view.Dimension(i, dim)
		for _, a := range allowed {
			if v != "" && v == a {
				out = append(out, view.Dimension(i, DimName))
				break
			}
		}
	}
	return out
}
