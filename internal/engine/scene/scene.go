// Package scene ties the object catalog, the batch registry, the visibility
// controller and the depth sorter into one context owned by the frame loop.
package scene

import (
	"go.uber.org/zap"

	"github.com/Faultbox/trackview/internal/engine/batch"
	"github.com/Faultbox/trackview/internal/engine/visibility"
	"github.com/Faultbox/trackview/internal/logger"
	"github.com/Faultbox/trackview/internal/world"
	"github.com/Faultbox/trackview/pkg/math"
)

// Config contains scene configuration options.
type Config struct {
	ForwardDistance         float64
	BackwardDistance        float64
	Epsilon                 float64
	OverlayAlphaRestriction bool
}

// DefaultConfig returns a default scene configuration.
func DefaultConfig() Config {
	return Config{
		ForwardDistance:  600,
		BackwardDistance: 100,
		Epsilon:          visibility.DefaultEpsilon,
	}
}

// Scene is the per-session engine state. Everything in it is mutated only from
// the frame loop; the draw-call emitter reads the registry lists.
type Scene struct {
	Catalog    *world.Catalog
	Registry   *batch.Registry
	Visibility *visibility.Controller

	sorter batch.DepthSorter
	log    *zap.Logger
}

// New creates a scene over catalog. Nothing is shown until InitializeVisibility.
func New(catalog *world.Catalog, cfg Config) *Scene {
	reg := batch.NewRegistry(catalog)
	reg.SetOverlayAlphaRestriction(cfg.OverlayAlphaRestriction)

	vis := visibility.New(catalog, reg, cfg.ForwardDistance, cfg.BackwardDistance)
	if cfg.Epsilon > 0 {
		vis.Epsilon = cfg.Epsilon
	}

	return &Scene{
		Catalog:    catalog,
		Registry:   reg,
		Visibility: vis,
		log:        logger.Named("scene"),
	}
}

// InitializeVisibility shows every static object visible at trackPosition.
func (s *Scene) InitializeVisibility(trackPosition float64) {
	s.Visibility.Initialize(trackPosition)
}

// UpdateVisibility moves the viewing window to trackPosition.
func (s *Scene) UpdateVisibility(trackPosition float64) {
	s.Visibility.Update(trackPosition)
}

// UpdateVisibilityWith moves the viewing window, re-examining both edges when
// the viewing distances changed since the last update.
func (s *Scene) UpdateVisibilityWith(trackPosition float64, viewingDistanceChanged bool) {
	if viewingDistanceChanged {
		s.Visibility.UpdateWithViewingDistanceChange(trackPosition)
		return
	}
	s.Visibility.Update(trackPosition)
}

// SetViewingDistance resizes the viewing window around the last position.
func (s *Scene) SetViewingDistance(forward, backward float64) {
	if forward == s.Visibility.Forward && backward == s.Visibility.Backward {
		return
	}
	s.Visibility.Forward = forward
	s.Visibility.Backward = backward
	s.UpdateVisibilityWith(s.Visibility.LastPosition(), true)
	s.log.Debug("viewing distance changed",
		zap.Float64("forward", forward),
		zap.Float64("backward", backward),
	)
}

// SetOverlayAlphaRestriction switches the camera's overlay restriction and
// reclassifies every active object when it changes.
func (s *Scene) SetOverlayAlphaRestriction(on bool) {
	s.Registry.SetOverlayAlphaRestriction(on)
}

// ShowObject activates one object with the given kind.
func (s *Scene) ShowObject(objectIndex int, kind batch.RenderKind) {
	s.Registry.ShowObject(objectIndex, kind)
}

// HideObject deactivates one object.
func (s *Scene) HideObject(objectIndex int) {
	s.Registry.HideObject(objectIndex)
}

// ReAddObjects reclassifies every active object.
func (s *Scene) ReAddObjects() {
	s.Registry.ReAddObjects()
}

// ShowDynamicObjects activates every dynamic catalog object, as overlay when
// flagged so. The visibility controller never touches these.
func (s *Scene) ShowDynamicObjects() int {
	n := 0
	for i := range s.Catalog.Objects {
		obj := &s.Catalog.Objects[i]
		if !obj.Dynamic {
			continue
		}
		kind := batch.RenderDynamic
		if obj.Overlay {
			kind = batch.RenderOverlay
		}
		s.Registry.ShowObject(i, kind)
		n++
	}
	return n
}

// HideDynamicObjects deactivates every dynamic catalog object.
func (s *Scene) HideDynamicObjects() int {
	n := 0
	for i := range s.Catalog.Objects {
		obj := &s.Catalog.Objects[i]
		if !obj.Dynamic || obj.RendererIndex == 0 {
			continue
		}
		s.Registry.HideObject(i)
		n++
	}
	return n
}

// SortTranslucent orders both alpha lists back to front for camera.
func (s *Scene) SortTranslucent(camera math.Vec3) {
	s.sorter.Sort(s.Registry, batch.ListDynamicAlpha, camera)
	s.sorter.Sort(s.Registry, batch.ListOverlayAlpha, camera)
}

// Frame runs the per-frame engine work: move the window, then sort the
// translucent lists.
func (s *Scene) Frame(trackPosition float64, viewingDistanceChanged bool, camera math.Vec3) {
	s.UpdateVisibilityWith(trackPosition, viewingDistanceChanged)
	s.SortTranslucent(camera)
}

// Stats returns registry statistics.
func (s *Scene) Stats() batch.Stats {
	return s.Registry.Stats()
}
