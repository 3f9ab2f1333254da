package sections

import "math"

// MeasureVisibility returns, for each of n contiguous sections of size
// extent, the fraction of it inside a viewport of the same size starting at
// offset. The result is freshly allocated on every call.
func MeasureVisibility(offset, extent float64, n int) []float64 {
	vis := make([]float64, n)
	if extent <= 0 {
		return vis
	}
	viewEnd := offset + extent
	for i := range vis {
		start := float64(i) * extent
		end := start + extent
		visible := math.Min(end, viewEnd) - math.Max(start, offset)
		if visible > 0 {
			vis[i] = visible / extent
		}
	}
	return vis
}

// mostVisible returns the index with the largest visibility. Ties go to the
// lower index; an all-zero measurement returns (0, 0).
func mostVisible(vis []float64) (int, float64) {
	best, bestVis := 0, 0.0
	for i, v := range vis {
		if v > bestVis {
			best, bestVis = i, v
		}
	}
	return best, bestVis
}
