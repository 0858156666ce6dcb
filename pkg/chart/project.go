package chart

const (
	// plotSpan is the share of the height used by the line.
	plotSpan = 0.9
	// plotMargin is kept free at the top and bottom edges.
	plotMargin = 0.05
)

// Point is a position in drawable space. The origin is the bottom-left
// corner and y grows upward.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Project maps samples (oldest first) onto a width x height area. The oldest
// sample is leftmost and the newest sits on the right edge.
//
// Fewer than two samples cannot form a line, so the result is empty.
func Project(samples []float64, policy Policy, width, height float64) []Point {
	if len(samples) < 2 {
		return []Point{}
	}

	stepX := width / float64(max(len(samples)-1, 1))
	points := make([]Point, len(samples))
	for i, v := range samples {
		points[i] = Point{
			X: float64(i) * stepX,
			Y: policy.Normalize(v)*height*plotSpan + height*plotMargin,
		}
	}
	return points
}
