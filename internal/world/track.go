package world

import (
	"sort"

	"github.com/Faultbox/trackview/pkg/math"
)

// Track is a polyline parameterized by distance along it.
type Track struct {
	Points []math.Vec3
	dist   []float64 // cumulative distance at each point
}

// NewTrack builds a track from its waypoints.
func NewTrack(points []math.Vec3) *Track {
	t := &Track{Points: points, dist: make([]float64, len(points))}
	for i := 1; i < len(points); i++ {
		t.dist[i] = t.dist[i-1] + float64(points[i].Sub(points[i-1]).Length())
	}
	return t
}

// Length returns the total track length.
func (t *Track) Length() float64 {
	if len(t.dist) == 0 {
		return 0
	}
	return t.dist[len(t.dist)-1]
}

// segment returns the index i such that position lies on [Points[i], Points[i+1]]
// and the interpolation factor along it.
func (t *Track) segment(position float64) (int, float32) {
	if position <= 0 {
		return 0, 0
	}
	n := len(t.Points)
	if position >= t.Length() {
		return n - 2, 1
	}
	i := sort.SearchFloat64s(t.dist, position) - 1
	if i < 0 {
		i = 0
	}
	span := t.dist[i+1] - t.dist[i]
	if span == 0 {
		return i, 0
	}
	return i, float32((position - t.dist[i]) / span)
}

// PositionAt returns the world position at a track position, clamped to the ends.
func (t *Track) PositionAt(position float64) math.Vec3 {
	switch len(t.Points) {
	case 0:
		return math.Vec3{}
	case 1:
		return t.Points[0]
	}
	i, f := t.segment(position)
	return t.Points[i].Lerp(t.Points[i+1], f)
}

// DirectionAt returns the unit tangent at a track position.
func (t *Track) DirectionAt(position float64) math.Vec3 {
	if len(t.Points) < 2 {
		return math.Vec3{Z: 1}
	}
	i, _ := t.segment(position)
	return t.Points[i+1].Sub(t.Points[i]).Normalize()
}
