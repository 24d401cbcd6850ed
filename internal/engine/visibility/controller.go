// Package visibility maintains the set of static catalog objects whose track
// interval overlaps the camera's viewing window, updating it incrementally as
// the camera moves along the track.
package visibility

import (
	"sort"

	"go.uber.org/zap"

	"github.com/Faultbox/trackview/internal/engine/batch"
	"github.com/Faultbox/trackview/internal/logger"
	"github.com/Faultbox/trackview/internal/world"
)

// DefaultEpsilon is the perturbation used to re-examine both window edges
// after a change of viewing distance.
const DefaultEpsilon = 1e-3

// Activator shows and hides catalog objects. *batch.Registry implements it.
type Activator interface {
	ShowObject(objectIndex int, kind batch.RenderKind)
	HideObject(objectIndex int)
}

// Controller walks two pointers over the static objects sorted by starting and
// by ending distance. An object is visible at track position p when
// StartingDistance <= p+Forward and EndingDistance >= p-Backward.
type Controller struct {
	catalog   *world.Catalog
	activator Activator

	Forward  float64
	Backward float64
	Epsilon  float64

	sortedByStart []int
	sortedByEnd   []int
	startPointer  int
	endPointer    int
	lastPosition  float64
}

// New creates a controller. Call Initialize before Update.
func New(catalog *world.Catalog, activator Activator, forward, backward float64) *Controller {
	return &Controller{
		catalog:   catalog,
		activator: activator,
		Forward:   forward,
		Backward:  backward,
		Epsilon:   DefaultEpsilon,
	}
}

// Initialize sorts the static objects and shows every object visible at
// trackPosition.
func (c *Controller) Initialize(trackPosition float64) {
	objects := c.catalog.Objects
	c.sortedByStart = c.sortedByStart[:0]
	for i := range objects {
		if !objects[i].Dynamic {
			c.sortedByStart = append(c.sortedByStart, i)
		}
	}
	c.sortedByEnd = append(c.sortedByEnd[:0], c.sortedByStart...)

	sort.SliceStable(c.sortedByStart, func(a, b int) bool {
		return objects[c.sortedByStart[a]].StartingDistance < objects[c.sortedByStart[b]].StartingDistance
	})
	sort.SliceStable(c.sortedByEnd, func(a, b int) bool {
		return objects[c.sortedByEnd[a]].EndingDistance < objects[c.sortedByEnd[b]].EndingDistance
	})

	c.startPointer = 0
	c.endPointer = 0
	c.lastPosition = trackPosition

	shown := 0
	for _, i := range c.sortedByStart {
		if c.visible(&objects[i], trackPosition) {
			c.activator.ShowObject(i, batch.RenderStatic)
			shown++
		}
	}
	c.seat(trackPosition)

	logger.Info("visibility initialized",
		zap.Int("static", len(c.sortedByStart)),
		zap.Int("visible", shown),
		zap.Float64("position", trackPosition),
	)
}

// seat advances both pointers from 0 to where a forward pass ending at p would
// leave them, so that the first Update may move in either direction.
func (c *Controller) seat(p float64) {
	objects := c.catalog.Objects
	n := len(c.sortedByStart)
	for c.startPointer < n && objects[c.sortedByStart[c.startPointer]].StartingDistance <= p+c.Forward {
		c.startPointer++
	}
	for c.endPointer < n && objects[c.sortedByEnd[c.endPointer]].EndingDistance < p-c.Backward {
		c.endPointer++
	}
}

func (c *Controller) visible(obj *world.PlacedObject, p float64) bool {
	return obj.StartingDistance <= p+c.Forward && obj.EndingDistance >= p-c.Backward
}

// Update moves the window to trackPosition, hiding objects that left it and
// showing objects that entered it.
func (c *Controller) Update(trackPosition float64) {
	defer func() { c.lastPosition = trackPosition }()

	n := len(c.sortedByStart)
	if n == 0 {
		return
	}
	objects := c.catalog.Objects
	p := trackPosition
	delta := p - c.lastPosition

	switch {
	case delta < 0:
		c.clampPointers(n)
		// Objects whose start scrolled past the forward edge.
		for c.startPointer >= 0 {
			o := c.sortedByStart[c.startPointer]
			if objects[o].StartingDistance <= p+c.Forward {
				break
			}
			c.activator.HideObject(o)
			c.startPointer--
		}
		// Objects whose end re-entered the backward edge.
		for c.endPointer >= 0 {
			o := c.sortedByEnd[c.endPointer]
			if objects[o].EndingDistance < p-c.Backward {
				break
			}
			if objects[o].StartingDistance <= p+c.Forward {
				c.activator.ShowObject(o, batch.RenderStatic)
			}
			c.endPointer--
		}

	case delta > 0:
		c.clampPointers(n)
		// Objects whose end scrolled past the backward edge.
		for c.endPointer < n {
			o := c.sortedByEnd[c.endPointer]
			if objects[o].EndingDistance >= p-c.Backward {
				break
			}
			c.activator.HideObject(o)
			c.endPointer++
		}
		// Objects whose start entered the forward edge.
		for c.startPointer < n {
			o := c.sortedByStart[c.startPointer]
			if objects[o].StartingDistance > p+c.Forward {
				break
			}
			if objects[o].EndingDistance >= p-c.Backward {
				c.activator.ShowObject(o, batch.RenderStatic)
			}
			c.startPointer++
		}
	}
}

func (c *Controller) clampPointers(n int) {
	c.startPointer = min(max(c.startPointer, 0), n-1)
	c.endPointer = min(max(c.endPointer, 0), n-1)
}

// UpdateWithViewingDistanceChange re-evaluates the window after Forward or
// Backward changed. A size-only change has no positional delta, so the window
// is nudged back and forth to run both the backward and the forward pass.
func (c *Controller) UpdateWithViewingDistanceChange(trackPosition float64) {
	c.Update(trackPosition)
	c.Update(trackPosition - c.Epsilon)
	c.Update(trackPosition + c.Epsilon)
	c.Update(trackPosition)
}

// LastPosition returns the track position of the last update.
func (c *Controller) LastPosition() float64 {
	return c.lastPosition
}
