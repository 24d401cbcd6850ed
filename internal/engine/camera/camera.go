// Package camera provides the track-following camera.
package camera

import (
	"github.com/Faultbox/trackview/internal/world"
	"github.com/Faultbox/trackview/pkg/math"
)

// TrackCamera rides along a track at a fixed height and looks ahead along it.
type TrackCamera struct {
	Track *world.Track

	// Position along the track
	TrackPosition float64

	Height    float32 // eye height above the track
	LookAhead float64 // distance of the look-at point ahead of the eye

	// Speed in track units per second at full throttle
	Speed float64

	// Viewing window along the track
	ForwardDistance  float64
	BackwardDistance float64

	// Limits for viewing distance changes
	MinDistance float64
	MaxDistance float64

	// RestrictOverlayAlpha is set by camera modes that draw overlays in 3D
	// and need them all blended.
	RestrictOverlayAlpha bool
}

// NewTrackCamera creates a camera on track with default settings.
func NewTrackCamera(track *world.Track) *TrackCamera {
	return &TrackCamera{
		Track:            track,
		Height:           3.0,
		LookAhead:        20.0,
		Speed:            20.0,
		ForwardDistance:  600.0,
		BackwardDistance: 100.0,
		MinDistance:      10.0,
		MaxDistance:      5000.0,
	}
}

// Eye returns the camera position in world space.
func (c *TrackCamera) Eye() math.Vec3 {
	return c.Track.PositionAt(c.TrackPosition).Add(math.Vec3{Y: c.Height})
}

// ViewMatrix returns the view matrix looking down the track.
func (c *TrackCamera) ViewMatrix() math.Mat4 {
	eye := c.Eye()
	target := c.Track.PositionAt(c.TrackPosition + c.LookAhead).Add(math.Vec3{Y: c.Height * 0.8})
	if target == eye {
		target = eye.Add(c.Track.DirectionAt(c.TrackPosition))
	}
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	return math.LookAt(eye, target, up)
}

// Advance moves the camera by throttle (-1..1) for dt seconds, clamped to the
// track ends, and returns the new track position.
func (c *TrackCamera) Advance(dt, throttle float64) float64 {
	c.TrackPosition += throttle * c.Speed * dt
	if c.TrackPosition < 0 {
		c.TrackPosition = 0
	}
	if l := c.Track.Length(); c.TrackPosition > l {
		c.TrackPosition = l
	}
	return c.TrackPosition
}

// ScaleViewingDistance multiplies both window distances by factor, clamped to
// [MinDistance, MaxDistance]. It reports whether either distance changed.
func (c *TrackCamera) ScaleViewingDistance(factor float64) bool {
	f := clamp(c.ForwardDistance*factor, c.MinDistance, c.MaxDistance)
	b := clamp(c.BackwardDistance*factor, c.MinDistance, c.MaxDistance)
	changed := f != c.ForwardDistance || b != c.BackwardDistance
	c.ForwardDistance, c.BackwardDistance = f, b
	return changed
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
