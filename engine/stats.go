package engine

import (
	"math"
	"sort"
)

// ============================================================================
// DISTRIBUTION STATS — histogram, box summaries, OLS trend
// ============================================================================

// DefaultBins is the histogram bucket count used by the dashboard.
const DefaultBins = 10

// measureValues collects the finite values of measure in view order.
func measureValues(view RecordView, measure string) []float64 {
	vals := make([]float64, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		v := view.Measure(i, measure)
		if !missing(v) {
			vals = append(vals, v)
		}
	}
	return vals
}

// Histogram splits the range of measure into bins equal-width buckets.
// The last bucket is closed on the right. A constant measure yields a
// single bucket; no values yield nil.
func Histogram(view RecordView, measure string, bins int) []Bin {
	if bins <= 0 {
		bins = DefaultBins
	}
	vals := measureValues(view, measure)
	if len(vals) == 0 {
		return nil
	}

	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	// Working in halves keeps the span finite when lo and hi sit near the
	// float limits.
	halfWidth := (hi/2 - lo/2) / float64(bins)
	if lo == hi || halfWidth == 0 {
		return []Bin{{Lower: lo, Upper: hi, Count: len(vals)}}
	}

	out := make([]Bin, bins)
	for i := range out {
		out[i].Lower = binEdge(lo, halfWidth, i)
		out[i].Upper = binEdge(lo, halfWidth, i+1)
	}
	out[bins-1].Upper = hi

	for _, v := range vals {
		idx := int((v/2 - lo/2) / halfWidth)
		if idx < 0 {
			idx = 0
		}
		if idx >= bins {
			idx = bins - 1
		}
		out[idx].Count++
	}
	return out
}

// binEdge is lo + i·width, added in two halves so it cannot overflow.
func binEdge(lo, halfWidth float64, i int) float64 {
	step := halfWidth * float64(i)
	return lo + step + step
}

// Box computes the five-number summary of measure with Tukey whiskers
// (1.5 × IQR). Quartiles use linear interpolation between order statistics.
func Box(view RecordView, measure string) BoxSummary {
	vals := measureValues(view, measure)
	return boxOf(vals)
}

// BoxBy computes one box per distinct value of dim, in first-seen order.
func BoxBy(view RecordView, dim, measure string) []GroupBox {
	groups := groupBySingle(view, dim)
	out := make([]GroupBox, 0, len(groups))
	for _, g := range groups {
		out = append(out, GroupBox{Label: g.Label, Box: Box(g.View, measure)})
	}
	return out
}

func boxOf(vals []float64) BoxSummary {
	if len(vals) == 0 {
		return BoxSummary{}
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	q1 := quantile(sorted, 0.25)
	med := quantile(sorted, 0.5)
	q3 := quantile(sorted, 0.75)
	iqr := q3 - q1
	lowFence := q1 - 1.5*iqr
	highFence := q3 + 1.5*iqr

	box := BoxSummary{
		Count:  len(sorted),
		Min:    Some(sorted[0]),
		Q1:     Some(q1),
		Median: Some(med),
		Q3:     Some(q3),
		Max:    Some(sorted[len(sorted)-1]),
	}

	lower, upper := math.NaN(), math.NaN()
	for _, v := range sorted {
		if v < lowFence || v > highFence {
			box.Outliers = append(box.Outliers, v)
			continue
		}
		if math.IsNaN(lower) {
			lower = v
		}
		upper = v
	}
	box.LowerWhisker = Some(lower)
	box.UpperWhisker = Some(upper)
	return box
}

// quantile returns the q-quantile of sorted values by linear interpolation.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// Trend fits y = intercept + slope·x by ordinary least squares over the
// records where both measures are present. Fewer than two pairs or a
// constant x leave the fit invalid; the points are still returned.
func Trend(view RecordView, xMeasure, yMeasure string) Regression {
	pts := make([]Point, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		x := view.Measure(i, xMeasure)
		y := view.Measure(i, yMeasure)
		if missing(x) || missing(y) {
			continue
		}
		pts = append(pts, Point{X: x, Y: y})
	}

	reg := Regression{N: len(pts), Points: pts}
	if len(pts) < 2 {
		return reg
	}

	var sx, sy float64
	for _, p := range pts {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(pts))
	mx, my := sx/n, sy/n

	var sxx, sxy, syy float64
	for _, p := range pts {
		dx, dy := p.X-mx, p.Y-my
		sxx += dx * dx
		sxy += dx * dy
		syy += dy * dy
	}
	if sxx == 0 {
		return reg
	}

	slope := sxy / sxx
	reg.Slope = Some(slope)
	reg.Intercept = Some(my - slope*mx)
	if syy == 0 {
		// every y equal: the line fits exactly
		reg.R2 = Some(1)
	} else {
		reg.R2 = Some((sxy * sxy) / (sxx * syy))
	}
	return reg
}
