package viewer

import (
	"fmt"

	"github.com/Faultbox/trackview/internal/engine/batch"
	"github.com/Faultbox/trackview/internal/engine/camera"
	"github.com/Faultbox/trackview/internal/engine/scene"
)

// SweepResult summarizes a headless run.
type SweepResult struct {
	Frames       int
	Reversals    int
	DistanceHops int
	PeakFaces    int
	Final        batch.Stats
}

// sweepStep is the simulated frame time in seconds.
const sweepStep = 1.0 / 60

// distancePeriod is how many frames pass between viewing distance changes.
const distancePeriod = 97

// Sweep drives the camera along the whole track for frames frames, turning
// around at either end and periodically resizing the viewing window. The
// registry is validated after every frame.
func Sweep(s *scene.Scene, cam *camera.TrackCamera, frames int) (SweepResult, error) {
	var res SweepResult

	// Cover the track once per direction in roughly a third of the run.
	if frames > 0 {
		cam.Speed = 3 * cam.Track.Length() / (float64(frames) * sweepStep)
	}
	throttle := 1.0
	grow := false

	for frame := 0; frame < frames; frame++ {
		pos := cam.Advance(sweepStep, throttle)
		if (throttle > 0 && pos >= cam.Track.Length()) || (throttle < 0 && pos <= 0) {
			throttle = -throttle
			res.Reversals++
		}

		changed := false
		if frame > 0 && frame%distancePeriod == 0 {
			factor := 0.5
			if grow {
				factor = 2
			}
			grow = !grow
			if cam.ScaleViewingDistance(factor) {
				s.Visibility.Forward = cam.ForwardDistance
				s.Visibility.Backward = cam.BackwardDistance
				changed = true
				res.DistanceHops++
			}
		}

		s.Frame(pos, changed, cam.Eye())
		if err := s.Registry.Validate(); err != nil {
			return res, fmt.Errorf("frame %d at %.2f: %w", frame, pos, err)
		}

		if n := s.Stats().TotalFaces(); n > res.PeakFaces {
			res.PeakFaces = n
		}
		res.Frames++
	}

	res.Final = s.Stats()
	return res, nil
}
