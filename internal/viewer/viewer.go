// Package viewer runs the track viewer: it wires the world, the scene and the
// camera together and drives them either headless or in an SDL2 window.
package viewer

import (
	"fmt"
	"time"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/trackview/internal/config"
	"github.com/Faultbox/trackview/internal/engine/camera"
	"github.com/Faultbox/trackview/internal/engine/gpu"
	"github.com/Faultbox/trackview/internal/engine/input"
	"github.com/Faultbox/trackview/internal/engine/scene"
	"github.com/Faultbox/trackview/internal/engine/window"
	"github.com/Faultbox/trackview/internal/logger"
	"github.com/Faultbox/trackview/pkg/math"
)

// distanceStep is the factor applied per +/- key press.
const distanceStep = 1.25

const fovY = 60 * math32.Pi / 180

// Viewer is the main viewer instance.
type Viewer struct {
	cfg    *config.Config
	Scene  *scene.Scene
	Camera *camera.TrackCamera

	window   *window.Window
	renderer *gpu.BatchRenderer
	input    *input.Input

	log *zap.Logger
}

// New builds the world and scene. In windowed mode it also opens the window
// and GL renderer.
func New(cfg *config.Config) (*Viewer, error) {
	cat, err := LoadCatalog(cfg.World)
	if err != nil {
		return nil, err
	}

	s := scene.New(cat, scene.Config{
		ForwardDistance:         cfg.Visibility.ForwardDistance,
		BackwardDistance:        cfg.Visibility.BackwardDistance,
		Epsilon:                 cfg.Visibility.Epsilon,
		OverlayAlphaRestriction: cfg.Camera.OverlayAlphaRestriction,
	})

	cam := camera.NewTrackCamera(cat.Track)
	cam.TrackPosition = cfg.Camera.StartPosition
	cam.Speed = cfg.Camera.Speed
	cam.ForwardDistance = cfg.Visibility.ForwardDistance
	cam.BackwardDistance = cfg.Visibility.BackwardDistance
	cam.RestrictOverlayAlpha = cfg.Camera.OverlayAlphaRestriction

	v := &Viewer{cfg: cfg, Scene: s, Camera: cam, log: logger.Named("viewer")}

	if cfg.Graphics.Headless {
		return v, nil
	}

	v.window, err = window.New(window.Config{
		Title:      "TrackView",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The GL context must exist before the renderer
	v.renderer, err = gpu.NewBatchRenderer()
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	v.renderer.Resize(v.window.Size())
	v.input = input.New()
	return v, nil
}

// start shows the initial visible set and every dynamic object.
func (v *Viewer) start() {
	v.Scene.InitializeVisibility(v.Camera.TrackPosition)
	n := v.Scene.ShowDynamicObjects()
	v.log.Info("scene ready",
		zap.Int("dynamic_objects", n),
		zap.Int("active_entries", v.Scene.Registry.EntryCount()),
	)
}

// Run starts the headless sweep or the windowed loop.
func (v *Viewer) Run() error {
	v.start()
	if v.window == nil {
		return v.runHeadless()
	}
	return v.runWindowed()
}

func (v *Viewer) runHeadless() error {
	started := time.Now()
	res, err := Sweep(v.Scene, v.Camera, v.cfg.World.Frames)
	if err != nil {
		return fmt.Errorf("headless sweep: %w", err)
	}
	v.log.Info("headless sweep finished",
		zap.Int("frames", res.Frames),
		zap.Int("reversals", res.Reversals),
		zap.Int("distance_changes", res.DistanceHops),
		zap.Int("peak_faces", res.PeakFaces),
		zap.Int("entries", res.Final.Entries),
		zap.Int("static_groups", res.Final.StaticGroups),
		zap.Int("static_holes", res.Final.StaticHoles),
		zap.Duration("elapsed", time.Since(started)),
	)
	return nil
}

func (v *Viewer) runWindowed() error {
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting render loop")
	for {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		ctl := v.input.Update()
		if ctl.Quit {
			return nil
		}
		if ctl.Resized {
			v.renderer.Resize(v.window.Size())
		}

		changed := v.applyControls(ctl, dt)
		v.Scene.Frame(v.Camera.TrackPosition, changed, v.Camera.Eye())

		proj := math.Perspective(fovY, v.window.Aspect(), 0.5, float32(v.Camera.ForwardDistance)+50)
		v.renderer.Render(v.Scene.Registry, proj, v.Camera.ViewMatrix())
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			st := v.Scene.Stats()
			v.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.Float64("position", v.Camera.TrackPosition),
				zap.Int("faces", st.TotalFaces()),
			)
			v.window.SetTitle(fmt.Sprintf("TrackView  %.0f m  %d fps", v.Camera.TrackPosition, frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
}

// applyControls moves the camera and applies distance and overlay changes.
// It reports whether the viewing distances changed.
func (v *Viewer) applyControls(ctl input.Controls, dt float64) bool {
	v.Camera.Advance(dt, ctl.Throttle)

	if ctl.ToggleOverlayAlpha {
		v.Camera.RestrictOverlayAlpha = !v.Camera.RestrictOverlayAlpha
		v.Scene.SetOverlayAlphaRestriction(v.Camera.RestrictOverlayAlpha)
		v.log.Info("overlay alpha restriction", zap.Bool("on", v.Camera.RestrictOverlayAlpha))
	}

	if ctl.DistanceSteps == 0 {
		return false
	}
	factor := distanceStep
	steps := ctl.DistanceSteps
	if steps < 0 {
		factor = 1 / distanceStep
		steps = -steps
	}
	changed := false
	for range steps {
		if v.Camera.ScaleViewingDistance(factor) {
			changed = true
		}
	}
	if changed {
		v.Scene.Visibility.Forward = v.Camera.ForwardDistance
		v.Scene.Visibility.Backward = v.Camera.BackwardDistance
	}
	return changed
}

// Close releases the renderer and window.
func (v *Viewer) Close() {
	if v.renderer != nil {
		v.renderer.Destroy()
	}
	if v.window != nil {
		v.window.Close()
	}
}
